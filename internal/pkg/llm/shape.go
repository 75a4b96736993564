package llm

import "google.golang.org/genai"

// FieldType enumerates the primitive types a response field may have.
type FieldType string

const (
	FieldString      FieldType = "string"
	FieldNumber      FieldType = "number"
	FieldStringArray FieldType = "string-array"
)

// Field is one required field of a response shape.
type Field struct {
	Name        string
	Description string
	Type        FieldType
}

// Shape declares the JSON object a provider must return: field names, types
// and whether they are array-valued. Every field is required.
type Shape struct {
	// Name identifies the shape; used as the cache key for the compiled
	// validation schema. Kebab-case, e.g. "math-problem".
	Name   string
	Fields []Field
}

// GenaiSchema renders the shape as a Gemini response schema.
func (s *Shape) GenaiSchema() *genai.Schema {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(s.Fields)),
	}
	for _, f := range s.Fields {
		var prop *genai.Schema
		switch f.Type {
		case FieldNumber:
			prop = &genai.Schema{Type: genai.TypeNumber}
		case FieldStringArray:
			prop = &genai.Schema{
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			}
		default:
			prop = &genai.Schema{Type: genai.TypeString}
		}
		prop.Description = f.Description
		schema.Properties[f.Name] = prop
		schema.Required = append(schema.Required, f.Name)
	}
	return schema
}

// JSONSchema renders the shape as a JSON Schema document for post-decode
// validation.
func (s *Shape) JSONSchema() map[string]any {
	props := make(map[string]any, len(s.Fields))
	required := make([]any, 0, len(s.Fields))
	for _, f := range s.Fields {
		var prop map[string]any
		switch f.Type {
		case FieldNumber:
			prop = map[string]any{"type": "number"}
		case FieldStringArray:
			prop = map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			}
		default:
			prop = map[string]any{"type": "string"}
		}
		if f.Description != "" {
			prop["description"] = f.Description
		}
		props[f.Name] = prop
		required = append(required, f.Name)
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}
