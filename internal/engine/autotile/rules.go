package autotile

import (
	"sync"

	"github.com/dshills/tilesmith/internal/engine/tile"
)

// Variants maps each neighbour mask to a tile. Void entries fall back to
// the base tile.
type Variants [16]tile.ID

// Rules resolves tiles through a static variant table.
type Rules struct {
	mu     sync.RWMutex
	grid   Reader
	table  map[tile.ID]Variants
	family map[tile.ID]tile.ID
}

// NewRules creates an empty rule table reading neighbours from g.
func NewRules(g Reader) *Rules {
	return &Rules{
		grid:   g,
		table:  make(map[tile.ID]Variants),
		family: make(map[tile.ID]tile.ID),
	}
}

// Add sets the variants for base. A neighbour belongs to the family when
// it holds base or any of its variants.
func (r *Rules) Add(base tile.ID, v Variants) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.table[base]; ok {
		for _, id := range old {
			if r.family[id] == base {
				delete(r.family, id)
			}
		}
	}
	r.table[base] = v
	r.family[base] = base
	for _, id := range v {
		if id != tile.Void {
			r.family[id] = base
		}
	}
}

// Remove deletes the rule for base.
func (r *Rules) Remove(base tile.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.table[base]
	if !ok {
		return
	}
	for _, id := range v {
		if r.family[id] == base {
			delete(r.family, id)
		}
	}
	delete(r.family, base)
	delete(r.table, base)
}

// Len returns the number of base tiles with rules.
func (r *Rules) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.table)
}

// Resolve returns the variant of base selected by the neighbours of (x, y),
// or base itself when there is no rule.
func (r *Rules) Resolve(x, y int, base tile.ID) tile.ID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.table[base]
	if !ok {
		return base
	}
	mask := NeighbourMask(r.grid, x, y, func(id tile.ID) bool {
		fam, ok := r.family[id]
		return ok && fam == base
	})
	if id := v[mask]; id != tile.Void {
		return id
	}
	return base
}
