package ctxmap

// View is a non-owning accessor over a map's slot table, handed to With
// callbacks so nested overrides chain without re-deriving access through the
// owner. A view is bounded by the With call that created it: it is honored
// only while it is the innermost live accessor of its table, and any use
// after its callback returns panics.
//
// Go has no borrow checker to reject escapes at compile time, so the
// guarantee is enforced at run time instead: every access verifies the view
// is still the table's active accessor. Storing a view past its callback,
// moving it to another goroutine's With nesting, or swapping the contents of
// two views from independent scopes all fail this identity check on first
// use.
type View struct {
	t    *table
	root bool
	dead bool
}

// Schema returns the schema of the underlying map.
func (v *View) Schema() *Schema { return v.t.schema }

func (v *View) tab() *table { return v.t }

func (v *View) ensureLive() {
	if v.t.poisoned {
		panic("ctxmap: map poisoned by a panic that escaped an override scope; rebuild the map")
	}
	if v.root {
		if v.t.active != nil {
			panic("ctxmap: root view accessed while an override scope is active; use the view passed to the callback")
		}
		return
	}
	if v.dead || v.t.active != v {
		panic("ctxmap: view used outside the override scope that created it")
	}
}
