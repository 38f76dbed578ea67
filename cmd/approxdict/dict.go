package main

import (
	"github.com/charmbracelet/log"

	"github.com/bastiangx/approxdict/internal/utils"
	"github.com/bastiangx/approxdict/pkg/approx"
	"github.com/bastiangx/approxdict/pkg/server"
	"github.com/bastiangx/approxdict/pkg/trie"
)

// loadedDict is a loaded dictionary ready to be searched.
type loadedDict struct {
	mapping  *trie.Mapping
	searcher *approx.Searcher
	info     server.DictInfo
}

// loadDictionary maps the dictionary at path. Any failure is fatal: no
// query may run against a dictionary that did not load.
func loadDictionary(path string, opts ...approx.Option) *loadedDict {
	resolved := path
	if pr, err := utils.NewPathResolver(); err == nil {
		if p, err := pr.Resolve(path); err == nil {
			resolved = p
		}
	} else {
		log.Debugf("Path resolver unavailable: %v", err)
	}

	m, err := trie.OpenWithOptions(resolved, appConfig.OpenOptions())
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}

	v := m.View()
	opts = append(append(appConfig.SearcherOptions(), approx.WithMapping(m)), opts...)
	s := approx.NewSearcher(v, opts...)
	info := server.NewDictInfo(resolved, v, s.MaxQueryLen())
	log.Debug("Dictionary loaded", "path", resolved, "records", info.Records,
		"words", info.Words, "bytes", info.Size, "digest", info.Digest)

	return &loadedDict{mapping: m, searcher: s, info: info}
}

func (d *loadedDict) Close() {
	if err := d.mapping.Close(); err != nil {
		log.Errorf("Failed to unmap dictionary: %v", err)
	}
}
