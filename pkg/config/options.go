package config

import (
	"time"

	"github.com/bastiangx/approxdict/pkg/approx"
	"github.com/bastiangx/approxdict/pkg/dictionary"
	"github.com/bastiangx/approxdict/pkg/trie"
)

// OpenOptions returns the dictionary load options of the [load] section.
func (c *Config) OpenOptions() trie.OpenOptions {
	return trie.OpenOptions{
		Verify:   c.Load.Verify,
		Prefault: c.Load.Prefault,
	}
}

// SearcherOptions returns the searcher options of the [search] section.
func (c *Config) SearcherOptions() []approx.Option {
	return []approx.Option{
		approx.WithMaxQueryLen(c.Search.MaxQueryLen),
		approx.WithWorkers(c.Search.Workers),
	}
}

// CompileOptions returns the compiler options of the [compile] section.
func (c *Config) CompileOptions() dictionary.CompileOptions {
	return dictionary.CompileOptions{Canonical: c.Compile.Canonical}
}

// ReadTimeout returns the HTTP read timeout.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSec) * time.Second
}

// WriteTimeout returns the HTTP write timeout.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSec) * time.Second
}
