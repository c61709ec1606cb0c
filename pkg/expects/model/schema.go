package model

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/flowspec/expects/pkg/fieldtype"
)

// Schema renders the model's native JSON Schema document. Enum types are
// emitted as named definitions under $defs and referenced with
// "#/$defs/<name>" pointers, mirroring how shared substructures appear in
// generated schemas. Per-field description and default keys sit beside the
// $ref so field-level values survive reference inlining.
func (m *Model) Schema(title string) map[string]any {
	properties := make(map[string]any, len(m.fields))
	defs := make(map[string]any)
	var required []string

	for _, field := range m.fields {
		node := typeNode(field.Type, field.Name, defs)
		if field.Description != "" {
			node["description"] = field.Description
		}
		if field.HasDefault {
			node["default"] = field.Default
		} else {
			required = append(required, field.Name)
		}
		properties[field.Name] = node
	}

	doc := map[string]any{
		"title":      title,
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	if len(defs) > 0 {
		doc["$defs"] = defs
	}
	return doc
}

// typeNode renders the schema fragment for one type. nameHint seeds the
// definition name for enum types.
func typeNode(t fieldtype.Type, nameHint string, defs map[string]any) map[string]any {
	switch t.Kind {
	case fieldtype.KindStr:
		return map[string]any{"type": "string"}
	case fieldtype.KindInt:
		return map[string]any{"type": "integer"}
	case fieldtype.KindFloat:
		return map[string]any{"type": "number"}
	case fieldtype.KindBool:
		return map[string]any{"type": "boolean"}
	case fieldtype.KindDatetime:
		return map[string]any{"type": "string", "format": "date-time"}
	case fieldtype.KindDuration:
		return map[string]any{"type": "string", "format": "duration"}
	case fieldtype.KindList:
		return map[string]any{
			"type":  "array",
			"items": typeNode(*t.Elem, nameHint, defs),
		}
	case fieldtype.KindOptional:
		return map[string]any{
			"anyOf": []any{
				typeNode(*t.Elem, nameHint, defs),
				map[string]any{"type": "null"},
			},
		}
	case fieldtype.KindEnum:
		name := defineEnum(t, nameHint, defs)
		return map[string]any{"$ref": "#/$defs/" + name}
	default: // KindAny
		return map[string]any{}
	}
}

// defineEnum registers an enum definition under defs and returns its name.
// Identical enums share a definition; distinct enums with colliding name
// hints get a numeric suffix.
func defineEnum(t fieldtype.Type, nameHint string, defs map[string]any) string {
	members := make([]any, len(t.Members))
	for i, m := range t.Members {
		members[i] = m
	}

	base := defName(nameHint)
	name := base
	for i := 2; ; i++ {
		existing, taken := defs[name]
		if !taken {
			break
		}
		node, ok := existing.(map[string]any)
		if ok && reflect.DeepEqual(node["enum"], members) {
			return name
		}
		name = fmt.Sprintf("%s%d", base, i)
	}

	defs[name] = map[string]any{
		"title": name,
		"type":  "string",
		"enum":  members,
	}
	return name
}

// defName derives a definition name from a field name: "log_level" -> "LogLevel".
func defName(fieldName string) string {
	parts := strings.FieldsFunc(fieldName, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	if len(parts) == 0 {
		return "Enum"
	}
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
