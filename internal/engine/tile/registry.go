package tile

import (
	"log/slog"
	"slices"
	"sync"
)

type subscriber struct {
	id       uint64
	observer Observer
}

// Registry maps tile characters to identifiers and owns tile metadata.
// All methods are safe for concurrent use. Observers and the persister are
// invoked after the lock is released.
type Registry struct {
	mu sync.RWMutex

	defs   map[ID]*Definition
	byChar map[rune]ID
	order  []ID
	nextID ID

	persister   Persister
	subscribers []subscriber
	nextSubID   uint64

	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithPersister sets the hook called after every mutation.
func WithPersister(p Persister) Option {
	return func(r *Registry) {
		r.persister = p
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		defs:   make(map[ID]*Definition),
		byChar: make(map[rune]ID),
		nextID: 1,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetPersister replaces the persistence hook. Nil disables persistence.
func (r *Registry) SetPersister(p Persister) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.persister = p
}

// Register binds char to a definition and returns its identifier.
// An unseen character gets the next unused identifier; a known character
// keeps its identifier and has every other field overwritten.
// Returns Void if the identifier space is exhausted.
func (r *Registry) Register(char rune, name string, attrs Attrs) ID {
	r.mu.Lock()
	id, exists := r.byChar[char]
	if !exists {
		id = r.allocLocked()
		if id == Void {
			r.mu.Unlock()
			r.logger.Warn("tile identifiers exhausted", "char", string(char))
			return Void
		}
		r.byChar[char] = id
		r.order = append(r.order, id)
	}
	def := Definition{
		ID:             id,
		Char:           char,
		Name:           name,
		Color:          attrs.Color,
		BlocksMovement: attrs.BlocksMovement,
		BlocksSight:    attrs.BlocksSight,
		Properties:     attrs.Properties,
	}.Clone()
	r.defs[id] = &def
	r.mu.Unlock()

	r.changed(Change{Type: ChangeRegister, Definition: def.Clone()})
	return id
}

// allocLocked returns the next free identifier, or Void when none is left.
// Identifiers of deleted tiles are not handed out again until the counter
// has wrapped, so stale grid cells do not silently change meaning.
func (r *Registry) allocLocked() ID {
	if r.nextID != Void {
		id := r.nextID
		if id == MaxID {
			r.nextID = Void
		} else {
			r.nextID++
		}
		return id
	}
	for id := ID(1); ; id++ {
		if _, used := r.defs[id]; !used {
			return id
		}
		if id == MaxID {
			return Void
		}
	}
}

// Update changes the provided non-identity fields of an existing tile.
// Returns false if id is unknown.
func (r *Registry) Update(id ID, u Update) bool {
	r.mu.Lock()
	def, ok := r.defs[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	if u.Name != nil {
		def.Name = *u.Name
	}
	if u.Color != nil {
		def.Color = *u.Color
	}
	snapshot := def.Clone()
	r.mu.Unlock()

	r.changed(Change{Type: ChangeUpdate, Definition: snapshot})
	return true
}

// Delete removes a definition and its character binding.
// Returns false if id is unknown.
func (r *Registry) Delete(id ID) bool {
	r.mu.Lock()
	def, ok := r.defs[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	delete(r.defs, id)
	delete(r.byChar, def.Char)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	removed := *def
	r.mu.Unlock()

	r.changed(Change{Type: ChangeDelete, Definition: removed})
	return true
}

// Restore replaces the registry contents with persisted definitions,
// keeping their identifiers. Definitions with a Void identifier or a
// duplicate character are skipped. The persister is not called.
func (r *Registry) Restore(defs []Definition) {
	r.mu.Lock()
	r.defs = make(map[ID]*Definition, len(defs))
	r.byChar = make(map[rune]ID, len(defs))
	r.order = r.order[:0]
	maxID := Void
	for _, d := range defs {
		if d.ID == Void {
			continue
		}
		if _, dup := r.byChar[d.Char]; dup {
			continue
		}
		if _, dup := r.defs[d.ID]; dup {
			continue
		}
		def := d.Clone()
		r.defs[def.ID] = &def
		r.byChar[def.Char] = def.ID
		r.order = append(r.order, def.ID)
		maxID = max(maxID, def.ID)
	}
	switch maxID {
	case MaxID:
		r.nextID = Void
	default:
		r.nextID = maxID + 1
	}
	subs := slices.Clone(r.subscribers)
	r.mu.Unlock()

	for _, s := range subs {
		s.observer(Change{Type: ChangeReload})
	}
}

// Get returns the definition for id.
func (r *Registry) Get(id ID) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[id]
	if !ok {
		return Definition{}, false
	}
	return def.Clone(), true
}

// IDOf returns the identifier bound to char, or Void if there is none.
func (r *Registry) IDOf(char rune) ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byChar[char]
}

// CharOf returns the character bound to id.
func (r *Registry) CharOf(id ID) (rune, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[id]
	if !ok {
		return 0, false
	}
	return def.Char, true
}

// All returns every definition in registration order.
func (r *Registry) All() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.allLocked()
}

func (r *Registry) allLocked() []Definition {
	result := make([]Definition, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.defs[id].Clone())
	}
	return result
}

// Len returns the number of registered tiles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Cycle returns the tile step positions away from id in registration order,
// wrapping at both ends. An unknown id starts from the first tile.
// Returns Void for an empty registry.
func (r *Registry) Cycle(id ID, step int) ID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.order)
	if n == 0 {
		return Void
	}
	i := slices.Index(r.order, id)
	if i < 0 {
		return r.order[0]
	}
	i = ((i+step)%n + n) % n
	return r.order[i]
}

// Subscribe registers an observer for all registry changes.
func (r *Registry) Subscribe(observer Observer) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSubID++
	r.subscribers = append(r.subscribers, subscriber{id: r.nextSubID, observer: observer})
	return &Subscription{id: r.nextSubID, reg: r}
}

func (r *Registry) unsubscribe(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = slices.DeleteFunc(r.subscribers, func(s subscriber) bool {
		return s.id == id
	})
}

// changed persists the registry and notifies subscribers.
func (r *Registry) changed(change Change) {
	r.mu.RLock()
	p := r.persister
	subs := slices.Clone(r.subscribers)
	var defs []Definition
	if p != nil {
		defs = r.allLocked()
	}
	r.mu.RUnlock()

	if p != nil {
		if err := p.Persist(defs); err != nil {
			r.logger.Error("persisting tile definitions failed",
				"change", change.Type.String(), "id", change.Definition.ID, "err", err)
		}
	}
	for _, s := range subs {
		s.observer(change)
	}
}
