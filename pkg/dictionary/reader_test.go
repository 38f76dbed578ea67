package dictionary

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestReaderEach(t *testing.T) {
	input := "test\t10\r\ntext\t5\n\nbroken line\ntent\t1\nbad\tfreq\ntests\t2"

	var got []Entry
	stats, err := NewReader(strings.NewReader(input)).WithLogger(quietLogger()).Each(func(e Entry) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []Entry{{"test", 10}, {"text", 5}, {"tent", 1}, {"tests", 2}}, got)
	assert.Equal(t, ReadStats{Lines: 7, Entries: 4, Malformed: 2}, stats)
}

func TestReaderStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	_, err := NewReader(strings.NewReader("a\t1\nb\t2\n")).Each(func(Entry) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestReaderLineTooLong(t *testing.T) {
	input := strings.Repeat("x", maxLineSize+1) + "\t1\n"
	_, err := NewReader(strings.NewReader(input)).Each(func(Entry) error { return nil })
	assert.Error(t, err)
}
