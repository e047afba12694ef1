package ctxmap

import "fmt"

// Accessor is the uniform read surface shared by *CtxMap and *View. Get,
// GetOr, MustGet, With and Do accept either; nested callbacks always receive
// a *View, so depth-one and depth-n code look the same.
type Accessor interface {
	tab() *table
	ensureLive()
}

// checkedTable validates the accessor is live and the key belongs to the
// accessor's schema, then returns the backing table.
func checkedTable[T any](a Accessor, key *Key[T]) *table {
	a.ensureLive()
	t := a.tab()
	if t.schema != key.schema {
		panic(fmt.Sprintf("ctxmap: key %s used with a map of schema %s", key, t.schema))
	}
	return t
}

// Get returns the value visible for key: the innermost active override if one
// is installed, else the key's default (materialized and cached on first
// read), else the zero value and false. Absence is a normal, branchable
// condition; Get never panics for a valid live accessor.
func Get[T any](a Accessor, key *Key[T]) (T, bool) {
	t := checkedTable(a, key)
	s := &t.slots[key.index]
	if s.overridden {
		if s.mutable {
			return *s.override.(*T), true
		}
		// Comma-ok: a nil interface value is a legal override and must read
		// back as nil, not trip an interface conversion.
		v, _ := s.override.(T)
		return v, true
	}
	if key.policy == defaultNone {
		var zero T
		return zero, false
	}
	if !s.resolved {
		s.def = key.factory()
		s.resolved = true
	}
	v, _ := s.def.(T)
	return v, true
}

// GetOr returns fallback when key has no visible value.
func GetOr[T any](a Accessor, key *Key[T], fallback T) T {
	if v, ok := Get(a, key); ok {
		return v
	}
	return fallback
}

// MustGet is the indexing analogue of Get: requesting a key with no override
// and no default is a programming error and panics.
func MustGet[T any](a Accessor, key *Key[T]) T {
	v, ok := Get(a, key)
	if !ok {
		panic(fmt.Sprintf("ctxmap: no value for key %s", key))
	}
	return v
}

// With installs value as key's override, runs fn with a view scoped to this
// call, then unconditionally restores the slot's prior content before
// returning fn's result. Restoration runs in a defer, so nested overrides
// unwind in LIFO order whether fn returns or panics. After With returns, the
// map reads exactly as it did before the call.
//
// Re-overriding the same key in a nested With shadows the outer override;
// the outer override becomes visible again when the inner call returns.
//
// A panic escaping fn poisons the map after restoring the slot: the handle
// must not be reused by a caller that recovers the panic.
func With[T, R any](a Accessor, key *Key[T], value T, fn func(*View) R) R {
	return withOverride(a, key, value, false, fn)
}

// WithMut is With for an override that can be reassigned in scope. The value
// is installed through the caller's pointer: writes made via Set are visible
// through the same pointer after WithMut returns, and the slot itself is
// restored exactly as With restores it. WithMut works on any key; Set
// additionally requires the key to be declared mutable.
func WithMut[T, R any](a Accessor, key *Key[T], value *T, fn func(*View) R) R {
	if value == nil {
		panic(fmt.Sprintf("ctxmap: nil value pointer for key %s", key))
	}
	return withOverride[T, R](a, key, value, true, fn)
}

func withOverride[T, R any](a Accessor, key *Key[T], value any, mutable bool, fn func(*View) R) R {
	t := checkedTable(a, key)
	s := &t.slots[key.index]
	savedVal, savedSet, savedMut := s.override, s.overridden, s.mutable
	s.override, s.overridden, s.mutable = value, true, mutable

	v := &View{t: t}
	prev := t.active
	t.active = v

	completed := false
	defer func() {
		v.dead = true
		t.active = prev
		s.override, s.overridden, s.mutable = savedVal, savedSet, savedMut
		if !completed {
			t.poisoned = true
		}
	}()

	out := fn(v)
	completed = true
	return out
}

// Set reassigns the value of key's innermost override. The key must have
// been declared mutable and the innermost override for it must have been
// installed by WithMut; anything else is a programming error and panics.
// The write lands through the pointer given to WithMut, so it outlives the
// scope in the caller's variable while the slot itself still reverts.
func Set[T any](a Accessor, key *Key[T], value T) {
	t := checkedTable(a, key)
	if !key.mutable {
		panic(fmt.Sprintf("ctxmap: key %s is not declared mutable", key))
	}
	s := &t.slots[key.index]
	if !s.overridden || !s.mutable {
		panic(fmt.Sprintf("ctxmap: no mutable override in scope for key %s", key))
	}
	*s.override.(*T) = value
}

// Do is With for callbacks that produce no result.
func Do[T any](a Accessor, key *Key[T], value T, fn func(*View)) {
	With(a, key, value, func(v *View) struct{} {
		fn(v)
		return struct{}{}
	})
}

// DoMut is WithMut for callbacks that produce no result.
func DoMut[T any](a Accessor, key *Key[T], value *T, fn func(*View)) {
	WithMut(a, key, value, func(v *View) struct{} {
		fn(v)
		return struct{}{}
	})
}
