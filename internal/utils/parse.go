package utils

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// DecodeTOMLFile decodes path into v. It returns the keys present in the
// file that v has no field for.
func DecodeTOMLFile(path string, v any) ([]string, error) {
	md, err := toml.DecodeFile(path, v)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}

// DecodeTOMLTables decodes path without a target struct, so a value of the
// wrong type does not fail the whole file
func DecodeTOMLTables(path string) (map[string]any, error) {
	tables := make(map[string]any)
	if _, err := toml.DecodeFile(path, &tables); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return tables, nil
}

// Section returns the table named name
func Section(data map[string]any, name string) (map[string]any, bool) {
	section, ok := data[name].(map[string]any)
	return section, ok
}

// Lookup returns data[key] when it holds a T
func Lookup[T any](data map[string]any, key string) (T, bool) {
	val, ok := data[key].(T)
	return val, ok
}

// LookupInt returns an integer key. TOML integers decode as int64.
func LookupInt(data map[string]any, key string) (int, bool) {
	val, ok := data[key].(int64)
	return int(val), ok
}
