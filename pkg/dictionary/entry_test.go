package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	approxerrors "github.com/bastiangx/approxdict/pkg/errors"
)

func TestParseEntry(t *testing.T) {
	tests := []struct {
		line string
		want Entry
	}{
		{"hello\t12", Entry{"hello", 12}},
		{"new york\t3", Entry{"new york", 3}},
		{"x\t 7 ", Entry{"x", 7}},
		{"zero\t0", Entry{"zero", 0}},
		{"max\t4294967295", Entry{"max", 4294967295}},
		{"a\tb\t1", Entry{}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseEntry(tt.line)
			if tt.want == (Entry{}) {
				require.ErrorIs(t, err, approxerrors.ErrMalformedEntry)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEntryMalformed(t *testing.T) {
	for _, line := range []string{
		"",
		"no tab here",
		"word\t",
		"word\tmany",
		"word\t-1",
		"word\t4294967296",
		"\t5",
	} {
		_, err := ParseEntry(line)
		assert.ErrorIs(t, err, approxerrors.ErrMalformedEntry, "%q", line)
	}
}
