package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// ExampleOf renders an indented JSON example of the given schema type,
// suitable for embedding in a prompt so the model knows the expected output
// shape. Field descriptions from jsonschema tags become the placeholder
// values of string fields.
func ExampleOf(v any) string {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(v)
	bs, _ := json.MarshalIndent(exampleValue(s), "", "  ")
	return string(bs)
}

func exampleValue(s *jsonschema.Schema) any {
	if s == nil {
		return nil
	}
	switch s.Type {
	case "object":
		obj := make(map[string]any)
		if s.Properties != nil {
			for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
				obj[pair.Key] = exampleValue(pair.Value)
			}
		}
		return obj
	case "array":
		if s.Items == nil {
			return []any{}
		}
		return []any{exampleValue(s.Items)}
	case "integer", "number":
		return 0
	case "boolean":
		return false
	default:
		if s.Description != "" {
			return s.Description
		}
		return s.Title
	}
}
