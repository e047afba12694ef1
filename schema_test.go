package ctxmap

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaRegistration(t *testing.T) {
	s := NewSchema("reg")

	keyA := NewKeyDefault[uint32](s, "a", 10)
	keyB := NewKey[string](s, "b")
	keyC := NewKeyFactory(s, "c", func() int { return 42 })

	// Indices are contiguous, starting at 0, in declaration order.
	assert.Equal(t, 0, keyA.Index())
	assert.Equal(t, 1, keyB.Index())
	assert.Equal(t, 2, keyC.Index())
	assert.Equal(t, 3, s.Len())

	assert.Equal(t, "a", keyA.Name())
	assert.Equal(t, reflect.TypeOf(uint32(0)), keyA.Type())
	assert.Same(t, s, keyA.Schema())
}

func TestSchemaIdentity(t *testing.T) {
	s1 := NewSchema("same")
	s2 := NewSchema("same")

	// Same name, distinct numbering spaces.
	assert.NotEqual(t, s1.ID(), s2.ID())
	assert.Equal(t, "same", s1.Name())
	assert.Contains(t, s1.String(), "same")
}

func TestDuplicateKeyNamePanics(t *testing.T) {
	s := NewSchema("dup")
	NewKey[int](s, "k")

	assert.Panics(t, func() {
		NewKey[string](s, "k")
	})
}

func TestRegistrationAfterSealPanics(t *testing.T) {
	s := NewSchema("sealed")
	NewKey[int](s, "k")

	m := New(s)
	require.NotNil(t, m)

	// The first map construction fixes the key count.
	assert.Panics(t, func() {
		NewKey[int](s, "late")
	})
}

func TestNilFactoryPanics(t *testing.T) {
	s := NewSchema("nilfactory")
	assert.Panics(t, func() {
		NewKeyFactory[int](s, "k", nil)
	})
}

func TestKeyString(t *testing.T) {
	s := NewSchema("app")
	key := NewKey[uint32](s, "retries")

	assert.Equal(t, "app.retries (uint32)", key.String())
}
