package subject

import "github.com/tf2stats/logparser/rawevent"

// Entry pairs a subject's descriptive Data with the handler-owned per-subject state
// attached to it. State is opaque to this package; handlers define their own state
// types and type-assert when reading it back.
type Entry struct {
	Data  Data
	State any
}

// Map is the single owner of every subject seen while parsing a match: its descriptive
// data and whatever per-subject state the handler pipeline accumulates for it.
// Insertion is idempotent by identity, and insertion order is preserved so that
// handlers needing a stable traversal (rendering output, for instance) don't have to
// sort subjects themselves.
type Map struct {
	entries map[Identity]*Entry
	order   []Identity
}

// NewMap returns an empty subject map.
func NewMap() *Map {
	return &Map{entries: make(map[Identity]*Entry)}
}

// Resolve resolves d to an identity and ensures it has an entry in the map, creating
// one with freshly-extracted Data and newState() if this is the first time the
// identity has been seen. It returns the identity and its entry.
func (m *Map) Resolve(d rawevent.Descriptor, newState func() any) (Identity, *Entry) {
	id := Resolve(d)
	if e, ok := m.entries[id]; ok {
		return id, e
	}
	e := &Entry{Data: dataFromDescriptor(d, id), State: newState()}
	m.entries[id] = e
	m.order = append(m.order, id)
	return id, e
}

// Get returns the entry for id, if one has been inserted.
func (m *Map) Get(id Identity) (*Entry, bool) {
	e, ok := m.entries[id]
	return e, ok
}

// Order returns the identities in first-insertion order.
func (m *Map) Order() []Identity {
	return m.order
}

// Len reports the number of distinct subjects seen.
func (m *Map) Len() int {
	return len(m.entries)
}
