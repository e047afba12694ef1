package ctxmap

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
)

// Schema is a private numbering space for keys. Each key registered against a
// schema receives the next densely-packed slot index, and a map built for the
// schema allocates exactly one slot per registered key.
//
// Keys must be registered before the first map for the schema is constructed.
// Construction seals the schema; registering against a sealed schema panics.
type Schema struct {
	id   uuid.UUID
	name string

	mu     deadlock.RWMutex
	keys   []keyInfo
	sealed bool
}

type keyInfo struct {
	name string
	typ  reflect.Type
}

// NewSchema creates an empty schema. The name is used in diagnostics only;
// two schemas with the same name remain distinct numbering spaces.
func NewSchema(name string) *Schema {
	return &Schema{id: uuid.New(), name: name}
}

// ID returns the schema's unique instance identity.
func (s *Schema) ID() uuid.UUID { return s.id }

// Name returns the name the schema was declared with.
func (s *Schema) Name() string { return s.name }

func (s *Schema) String() string {
	return fmt.Sprintf("%s (%s)", s.name, s.id)
}

// Len returns the number of keys registered against the schema.
func (s *Schema) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// register assigns the next slot index to a key. Called by the key
// constructors; key names must be unique within a schema.
func (s *Schema) register(name string, typ reflect.Type) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sealed {
		panic(fmt.Sprintf("ctxmap: key %q registered on schema %s after a map was constructed", name, s))
	}
	for _, k := range s.keys {
		if k.name == name {
			panic(fmt.Sprintf("ctxmap: key %q is already registered on schema %s", name, s))
		}
	}

	index := len(s.keys)
	s.keys = append(s.keys, keyInfo{name: name, typ: typ})
	return index
}

// seal fixes the schema's key count and returns it. Idempotent.
func (s *Schema) seal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sealed = true
	return len(s.keys)
}
