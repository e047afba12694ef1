// Package ctxmap provides a statically-typed, heterogeneous, lifetime-scoped
// key/value container.
//
// A ctxmap stores values of unrelated types under a fixed set of typed keys,
// each declared against a schema with its own value type and optional default.
// Values can be temporarily overridden for the duration of a callback and are
// guaranteed to revert afterward, which makes the container suitable for
// ambient-context patterns: pushing a short-lived override into deeply nested
// calls without threading it through every parameter.
//
// Core components include:
//   - Schema: a private numbering space fixing the set of keys a map can hold
//   - Key: a typed identifier bound to one slot, with a default policy
//   - CtxMap: the owning container, with lazily materialized defaults
//   - View: a scoped, non-owning accessor handed to override callbacks
//   - With: the scoped-override protocol, restoring slots unconditionally
//   - WithMut/Set: scoped overrides that mutable keys can reassign in scope
//
// Usage follows a declare-then-use shape:
//
//	var (
//	    schema = ctxmap.NewSchema("app")
//	    keyA   = ctxmap.NewKeyDefault[uint32](schema, "a", 10)
//	    keyB   = ctxmap.NewKeyDefault[string](schema, "b", "abc")
//	)
//
//	m := ctxmap.New(schema)
//	ctxmap.MustGet(m, keyA) // 10
//	ctxmap.Do(m, keyA, 20, func(v *ctxmap.View) {
//	    ctxmap.MustGet(v, keyA) // 20
//	})
//	ctxmap.MustGet(m, keyA) // 10
//
// The container is single-threaded by design: a map is exclusively owned, and
// at most one accessor (the map or the innermost view) is honored at a time.
// Accessing a stale view, or the map while an override scope is active, is a
// programming error and panics. A panic that crosses With still restores the
// overridden slot but poisons the map; recovering callers must abandon the
// handle rather than resume with it.
package ctxmap
