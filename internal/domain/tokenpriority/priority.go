// Package tokenpriority holds the native and popular token symbol sets that
// decide the leading tiers of token search results.
package tokenpriority

import (
	_ "embed"
	"fmt"
	"os"

	"bridgequote/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

//go:embed priority.yaml
var defaultTable []byte

type rawTable struct {
	Native  map[string][]string `yaml:"native"`
	Popular []string            `yaml:"popular"`
}

// Table answers native/popular membership questions.
type Table struct {
	native  map[entity.ChainID]map[string]struct{}
	popular map[string]struct{}
}

// Default returns the built-in table.
func Default() *Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("embedded token priority table is invalid: %v", err))
	}
	return t
}

// Load reads a table from a YAML file, or returns the built-in table for an empty path.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read token priority file: %w", err)
	}
	return Parse(b)
}

// Parse decodes a YAML table.
func Parse(b []byte) (*Table, error) {
	var raw rawTable
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse token priority table: %w", err)
	}

	t := &Table{
		native:  make(map[entity.ChainID]map[string]struct{}, len(raw.Native)),
		popular: make(map[string]struct{}, len(raw.Popular)),
	}
	for chain, symbols := range raw.Native {
		set := make(map[string]struct{}, len(symbols))
		for _, s := range symbols {
			set[s] = struct{}{}
		}
		t.native[entity.ChainID(chain)] = set
	}
	for _, s := range raw.Popular {
		t.popular[s] = struct{}{}
	}
	return t, nil
}

// IsNative reports whether symbol is a native token of the chain. Matching is case-sensitive.
func (t *Table) IsNative(chainID entity.ChainID, symbol string) bool {
	_, ok := t.native[chainID][symbol]
	return ok
}

// IsPopular reports whether symbol is in the popular set. Matching is case-sensitive.
func (t *Table) IsPopular(symbol string) bool {
	_, ok := t.popular[symbol]
	return ok
}
