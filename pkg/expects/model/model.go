// Package model builds structural validators from resolved trigger input
// fields. A Model validates a whole payload in one pass, producing either a
// coerced record or a list of field-addressable violations, and can render
// itself as a JSON Schema document.
package model

import (
	"github.com/flowspec/expects/pkg/fieldtype"
)

// Field is one resolved input field. A field without a default is required.
type Field struct {
	// Name is the payload key this field binds to
	Name string

	// Type is the resolved type the value must conform to
	Type fieldtype.Type

	// Description documents the field in the generated schema
	Description string

	// Default is the value filled in when the payload omits the field.
	// Only meaningful when HasDefault is true; an explicit null default
	// is distinct from no default.
	Default any

	// HasDefault records whether a default was declared
	HasDefault bool
}

// Violation describes one payload conformance failure.
type Violation struct {
	// Path addresses the failing value (e.g. "count", "tags[2]")
	Path string `json:"path"`

	// Message is the human-readable failure description
	Message string `json:"message"`

	// Value is the offending payload value, if one was supplied
	Value any `json:"value,omitempty"`
}

// Model validates payloads against a fixed set of fields. Models are
// immutable after construction and safe for concurrent use.
type Model struct {
	fields []Field
}

// New builds a Model from resolved fields. Field order is preserved and
// drives violation ordering and the schema's required list.
func New(fields []Field) *Model {
	return &Model{fields: fields}
}

// Fields returns the model's fields in declaration order.
func (m *Model) Fields() []Field {
	return m.fields
}

// Validate checks payload against every field in a single pass and returns
// the coerced record. Missing fields fill their default or violate when
// required. Violations accumulate across fields rather than failing fast.
// Payload keys that are not declared are dropped from the result.
func (m *Model) Validate(payload map[string]any) (map[string]any, []Violation) {
	parsed := make(map[string]any, len(m.fields))
	var violations []Violation

	for _, field := range m.fields {
		value, present := payload[field.Name]
		if !present {
			if field.HasDefault {
				parsed[field.Name] = field.Default
				continue
			}
			violations = append(violations, Violation{
				Path:    field.Name,
				Message: "required field is missing",
			})
			continue
		}

		coerced, problems := field.Type.Check(value)
		if len(problems) > 0 {
			for _, p := range problems {
				violations = append(violations, Violation{
					Path:    field.Name + p.Path,
					Message: p.Message,
					Value:   value,
				})
			}
			continue
		}
		parsed[field.Name] = coerced
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return parsed, nil
}
