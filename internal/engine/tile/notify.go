package tile

// ChangeType identifies the kind of registry mutation.
type ChangeType int

const (
	// ChangeRegister indicates a definition was created or overwritten.
	ChangeRegister ChangeType = iota

	// ChangeUpdate indicates non-identity fields of a definition changed.
	ChangeUpdate

	// ChangeDelete indicates a definition was removed.
	ChangeDelete

	// ChangeReload indicates the whole registry was restored.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeRegister:
		return "register"
	case ChangeUpdate:
		return "update"
	case ChangeDelete:
		return "delete"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change describes a registry mutation.
// Definition is the state after the change, or the removed definition for
// deletes. It is zero for reloads.
type Change struct {
	Type       ChangeType
	Definition Definition
}

// Observer receives registry changes.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id  uint64
	reg *Registry
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.reg == nil {
		return
	}
	s.reg.unsubscribe(s.id)
	s.reg = nil
}
