package ctxmap

import (
	"fmt"
	"reflect"
)

// defaultPolicy selects what an un-overridden slot yields on read.
type defaultPolicy int

const (
	// defaultNone: reads yield absent.
	defaultNone defaultPolicy = iota
	// defaultEager: a value captured at declaration time.
	defaultEager
	// defaultFactory: computed on first read, at most once per map.
	defaultFactory
)

// Key identifies one slot of a schema together with the value type stored
// there and the key's default policy. Keys are created once, at program
// startup, via NewKey, NewKeyDefault or NewKeyFactory, and never mutated.
//
// A key's index is meaningless outside its schema; using a key with a map
// built for a different schema panics.
type Key[T any] struct {
	schema *Schema
	index  int
	name   string
	typ    reflect.Type

	policy  defaultPolicy
	factory func() T
	mutable bool
}

// NewKey registers a key with no default. Reading the key through a map that
// has no active override for it yields absent.
func NewKey[T any](s *Schema, name string) *Key[T] {
	return newKey[T](s, name, defaultNone, nil)
}

// NewKeyDefault registers a key whose default is the given value. The value
// is captured now and surfaced lazily on the key's first read per map.
func NewKeyDefault[T any](s *Schema, name string, value T) *Key[T] {
	return newKey(s, name, defaultEager, func() T { return value })
}

// NewKeyFactory registers a key whose default is computed by factory on the
// key's first read, at most once per owning map, and cached for that map's
// remaining lifetime. Factories of independent maps run independently.
func NewKeyFactory[T any](s *Schema, name string, factory func() T) *Key[T] {
	if factory == nil {
		panic(fmt.Sprintf("ctxmap: nil factory for key %q", name))
	}
	return newKey(s, name, defaultFactory, factory)
}

// NewMutKey registers a mutable key with no default. Mutable keys accept
// in-scope reassignment through Set while a WithMut override is active.
func NewMutKey[T any](s *Schema, name string) *Key[T] {
	k := newKey[T](s, name, defaultNone, nil)
	k.mutable = true
	return k
}

// NewMutKeyDefault registers a mutable key whose default is the given value.
func NewMutKeyDefault[T any](s *Schema, name string, value T) *Key[T] {
	k := newKey(s, name, defaultEager, func() T { return value })
	k.mutable = true
	return k
}

func newKey[T any](s *Schema, name string, policy defaultPolicy, factory func() T) *Key[T] {
	if s == nil {
		panic(fmt.Sprintf("ctxmap: nil schema for key %q", name))
	}
	typ := reflect.TypeOf((*T)(nil)).Elem()
	return &Key[T]{
		schema:  s,
		index:   s.register(name, typ),
		name:    name,
		typ:     typ,
		policy:  policy,
		factory: factory,
	}
}

// Name returns the name the key was declared with.
func (k *Key[T]) Name() string { return k.name }

// Index returns the key's slot index within its schema.
func (k *Key[T]) Index() int { return k.index }

// Type returns the key's declared value type.
func (k *Key[T]) Type() reflect.Type { return k.typ }

// Schema returns the schema the key was registered against.
func (k *Key[T]) Schema() *Schema { return k.schema }

func (k *Key[T]) String() string {
	return fmt.Sprintf("%s.%s (%s)", k.schema.name, k.name, k.typ)
}
