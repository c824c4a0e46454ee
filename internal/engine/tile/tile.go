package tile

import (
	"maps"
	"math"

	"github.com/gdamore/tcell/v2"
)

// ID identifies a tile definition inside a Registry.
type ID uint16

// Void is the reserved identifier for an empty cell.
const Void ID = 0

// MaxID is the largest identifier the registry can hand out.
const MaxID ID = math.MaxUint16

// IsVoid returns true for the empty-cell identifier.
func (id ID) IsVoid() bool {
	return id == Void
}

// Definition describes a registered tile.
type Definition struct {
	ID             ID
	Char           rune
	Name           string
	Color          tcell.Color
	BlocksMovement bool
	BlocksSight    bool
	Properties     map[string]any
}

// Clone returns a copy that does not share the property map.
func (d Definition) Clone() Definition {
	if d.Properties != nil {
		d.Properties = maps.Clone(d.Properties)
	}
	return d
}

// Attrs holds the registration fields other than the character and name.
type Attrs struct {
	Color          tcell.Color
	BlocksMovement bool
	BlocksSight    bool
	Properties     map[string]any
}

// Update carries the optional fields accepted by Registry.Update.
// Nil fields are left unchanged.
type Update struct {
	Name  *string
	Color *tcell.Color
}

// Persister stores the full set of definitions after every mutation.
type Persister interface {
	Persist(defs []Definition) error
}

// PersisterFunc adapts a function to the Persister interface.
type PersisterFunc func(defs []Definition) error

// Persist calls f(defs).
func (f PersisterFunc) Persist(defs []Definition) error {
	return f(defs)
}
