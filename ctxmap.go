package ctxmap

// slot is one storage cell of a map's table. Content is one of: empty (no
// override, default not yet materialized), default-resolved (def cached for
// the map's lifetime) or overridden (a caller value installed for the extent
// of an enclosing With call). Overrides and the cached default are tracked
// separately so removing an override re-exposes the default untouched.
// A mutable override holds a *T installed by WithMut instead of a T, so Set
// can write through the caller's pointer.
type slot struct {
	override   any
	overridden bool
	mutable    bool
	def        any
	resolved   bool
}

// table is the storage shared by a CtxMap and the views derived from it.
// active tracks the innermost live view; nil means the owner itself is the
// accessor in charge.
type table struct {
	schema   *Schema
	slots    []slot
	active   *View
	poisoned bool
}

// CtxMap exclusively owns one slot table sized to its schema's key count.
// Defaults are not computed at construction; each key's default materializes
// on that key's first read and stays cached for the map's lifetime.
//
// A CtxMap is not safe for concurrent use and is not safe to keep using
// after recovering a panic that crossed one of its With scopes.
type CtxMap struct {
	t table
}

// New constructs an empty map for schema s. Construction seals the schema:
// its key count is fixed from here on and later key registration panics.
func New(s *Schema) *CtxMap {
	if s == nil {
		panic("ctxmap: New called with nil schema")
	}
	n := s.seal()
	return &CtxMap{t: table{schema: s, slots: make([]slot, n)}}
}

// Schema returns the schema the map was built for.
func (m *CtxMap) Schema() *Schema { return m.t.schema }

// AsView returns a root view over the map, so helpers can take a *View
// uniformly whether or not an override scope is active yet. A root view is
// honored exactly when the map itself would be.
func (m *CtxMap) AsView() *View {
	return &View{t: &m.t, root: true}
}

func (m *CtxMap) tab() *table { return &m.t }

func (m *CtxMap) ensureLive() {
	if m.t.poisoned {
		panic("ctxmap: map poisoned by a panic that escaped an override scope; rebuild the map")
	}
	if m.t.active != nil {
		panic("ctxmap: map accessed while an override scope is active; use the view passed to the callback")
	}
}
