package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidValue marks a user-supplied value outside the allowed set.
// Commands failing with it are rejected before any network call.
var ErrInvalidValue = errors.New("invalid value")

// Table is a bidirectional code to name mapping. Construction panics on a
// duplicate name so a bad table cannot ship.
type Table struct {
	names map[int]string
	codes map[string]int
}

func NewTable(names map[int]string) Table {
	codes := make(map[string]int, len(names))
	for code, name := range names {
		if _, dup := codes[name]; dup {
			panic(fmt.Sprintf("entity: duplicate name %q in lookup table", name))
		}
		codes[name] = code
	}
	return Table{names: names, codes: codes}
}

func (t Table) Name(code int) (string, bool) {
	name, ok := t.names[code]
	return name, ok
}

func (t Table) Code(name string) (int, bool) {
	code, ok := t.codes[name]
	return code, ok
}

// Names translates a code list, skipping codes the table does not know.
func (t Table) Names(codes []int) []string {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if name, ok := t.names[code]; ok {
			out = append(out, name)
		}
	}
	return out
}
