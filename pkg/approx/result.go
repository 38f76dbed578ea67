package approx

import (
	"bytes"
	"encoding/json"
	"io"
	"slices"
	"strings"
)

// Result - one matched dictionary word
type Result struct {
	Word     string `json:"word" msgpack:"w"`
	Freq     uint32 `json:"freq" msgpack:"f"`
	Distance uint32 `json:"distance" msgpack:"d"`
}

// Less is the ranking order of results: smaller distance first, then higher
// frequency, then the word in byte order. No two results of one query
// compare equal, so the order is total.
func Less(a, b Result) bool {
	return compare(a, b) < 0
}

func compare(a, b Result) int {
	switch {
	case a.Distance != b.Distance:
		if a.Distance < b.Distance {
			return -1
		}
		return 1
	case a.Freq != b.Freq:
		if a.Freq > b.Freq {
			return -1
		}
		return 1
	default:
		return strings.Compare(a.Word, b.Word)
	}
}

// Sort orders results by Less
func Sort(results []Result) {
	slices.SortFunc(results, compare)
}

// WriteJSON writes results as a single JSON array followed by a newline.
// An empty or nil slice is written as [].
func WriteJSON(w io.Writer, results []Result) error {
	if results == nil {
		results = []Result{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(results); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
