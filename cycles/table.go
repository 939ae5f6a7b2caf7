package cycles

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed db/cycles.json
var builtinDB []byte

// Table maps canonical instruction keys to their cycle-cost components.
// A single component is a fixed cost. For branches the two components are
// (not taken, taken). For reglist keys they are (base, per register).
// Tables are built once and never mutated afterwards.
type Table map[string][]int

// LoadTable parses a JSON cycle database of the form
// {"move.w dn,dn": [4], "bne.w": [12, 10], ...}.
func LoadTable(data []byte) (Table, error) {
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing cycle database: %w", err)
	}
	for key, comps := range t {
		if len(comps) == 0 {
			return nil, fmt.Errorf("cycle database entry %q has no cycle values", key)
		}
	}
	return t, nil
}

// BuiltinTable loads the cycle database bundled with the tool.
func BuiltinTable() (Table, error) {
	return LoadTable(builtinDB)
}

// Lookup returns the cost components for a canonical key.
func (t Table) Lookup(key string) ([]int, bool) {
	comps, ok := t[key]
	return comps, ok
}
