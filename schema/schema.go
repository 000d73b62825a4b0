package schema

import "encoding/json"

// Schema is the contract for typed payloads exchanged with agents and tools.
// Concrete schemas embed Base and describe their fields with json and
// jsonschema struct tags so language models can be instructed to produce them.
type Schema interface {
	schema()
}

// Stringify serializes a schema for inclusion in a chat message.
func Stringify(s Schema) string {
	if v, ok := s.(String); ok {
		return string(v)
	}
	bs, _ := json.Marshal(s)
	return string(bs)
}

// ToBytes serializes a schema to raw bytes.
func ToBytes(s Schema) []byte {
	if v, ok := s.(String); ok {
		return []byte(v)
	}
	bs, _ := json.Marshal(s)
	return bs
}
