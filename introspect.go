package ctxmap

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
)

// KeyInfo describes one declared key of a schema.
type KeyInfo struct {
	Name string
	Type reflect.Type
}

// Keys returns the schema's declared keys in slot-index order. This is a
// diagnostic surface; it does not support looking values up by name.
func (s *Schema) Keys() []KeyInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]KeyInfo, len(s.keys))
	for i, k := range s.keys {
		out[i] = KeyInfo{Name: k.name, Type: k.typ}
	}
	return out
}

// Describe returns a JSON Schema representation of every key's value type,
// keyed by key name.
func (s *Schema) Describe() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]any, len(s.keys))
	for _, k := range s.keys {
		out[k.name] = typeToSchema(k.typ)
	}
	return out
}

// TypeSchema returns a JSON Schema representation of the key's value type.
func (k *Key[T]) TypeSchema() map[string]any {
	return typeToSchema(k.typ)
}

// typeToSchema converts a reflect.Type to a JSON schema map.
func typeToSchema(t reflect.Type) map[string]any {
	instance := reflect.New(t).Interface()
	reflector := jsonschema.Reflector{
		ExpandedStruct:            true,
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(instance)

	// Marshal and unmarshal to convert to a plain map.
	data, err := json.Marshal(schema)
	if err != nil {
		return map[string]any{"type": "object", "properties": map[string]any{}}
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(data, &schemaMap); err != nil {
		return map[string]any{"type": "object", "properties": map[string]any{}}
	}
	return schemaMap
}
