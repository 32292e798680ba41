// Package utils holds the file probes and TOML helpers shared by the word
// store, config and the command.
package utils

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DecodeTOMLFile decodes path into v and returns the keys v had no field for.
func DecodeTOMLFile(path string, v any) ([]string, error) {
	md, err := toml.DecodeFile(path, v)
	if err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", path, err)
		return nil, err
	}
	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}

// LooseTOML parses path into a generic document, for picking out values
// when strict decoding failed on types.
func LooseTOML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := make(map[string]any)
	if _, err := toml.Decode(string(data), &doc); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v", path, err)
		return nil, err
	}
	return doc, nil
}

// Lookup returns doc[section][key] when it holds a T. TOML integers are
// int64 and are handed out as int.
func Lookup[T any](doc map[string]any, section, key string) (T, bool) {
	var zero T
	table, ok := doc[section].(map[string]any)
	if !ok {
		return zero, false
	}
	raw, ok := table[key]
	if !ok {
		return zero, false
	}
	if n, isInt := raw.(int64); isInt {
		raw = int(n)
	}
	v, ok := raw.(T)
	return v, ok
}
