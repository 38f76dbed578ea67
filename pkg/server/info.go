package server

import (
	"fmt"

	"github.com/bastiangx/approxdict/pkg/trie"
)

// DictInfo describes a loaded dictionary.
type DictInfo struct {
	Path        string `msgpack:"path,omitempty" json:"path,omitempty"`
	Records     int    `msgpack:"records" json:"records"`
	Words       int    `msgpack:"words" json:"words"`
	StringsSize int    `msgpack:"strings_size" json:"strings_size"`
	Size        int    `msgpack:"size" json:"size"`
	Digest      string `msgpack:"digest" json:"digest"`
	MaxQueryLen int    `msgpack:"max_query_len" json:"max_query_len"`
}

// NewDictInfo collects the description of v. Counting words visits every
// record, so callers compute it once per dictionary.
func NewDictInfo(path string, v *trie.View, maxQueryLen int) DictInfo {
	return DictInfo{
		Path:        path,
		Records:     v.Len(),
		Words:       v.Words(),
		StringsSize: v.StringsSize(),
		Size:        v.Size(),
		Digest:      fmt.Sprintf("%016x", v.Digest()),
		MaxQueryLen: maxQueryLen,
	}
}
