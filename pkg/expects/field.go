package expects

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/flowspec/expects/pkg/errors"
)

// AnyType is the permissive type expression substituted for declarations
// that cannot be parsed.
const AnyType = "Any"

// ExpectedField declares one expected trigger input field. The field name is
// carried externally as the ExpectsMap key.
type ExpectedField struct {
	// Type is the type expression, canonical or surface syntax
	// (e.g. "str", "Integer", "list[str]", "Any")
	Type string

	// Description documents the field for schema consumers
	Description string

	// Default is the value used when the payload omits the field.
	// Only meaningful when HasDefault is true.
	Default any

	// HasDefault records whether the declaration carried a default key.
	// An explicit null default is distinct from no default.
	HasDefault bool
}

// Validate checks the descriptor's shape. name attributes the error to the
// declared field.
func (f ExpectedField) Validate(name string) error {
	if name == "" {
		return &errors.DescriptorError{Reason: "field name is empty"}
	}
	if strings.TrimSpace(f.Type) == "" {
		return &errors.DescriptorError{Field: name, Reason: "type string is empty"}
	}
	return nil
}

// UnmarshalYAML decodes a field declaration, recording whether the default
// key was present.
func (f *ExpectedField) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("field declaration must be a mapping, got %s", yamlKindName(node.Kind))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]
		switch key {
		case "type":
			if err := value.Decode(&f.Type); err != nil {
				return fmt.Errorf("decoding type: %w", err)
			}
		case "description":
			if err := value.Decode(&f.Description); err != nil {
				return fmt.Errorf("decoding description: %w", err)
			}
		case "default":
			var v any
			if err := value.Decode(&v); err != nil {
				return fmt.Errorf("decoding default: %w", err)
			}
			f.Default = v
			f.HasDefault = true
		}
	}
	return nil
}

// MarshalYAML encodes the declaration with its keys in a stable order,
// emitting the default key only when one was declared.
func (f ExpectedField) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if err := appendMapEntry(node, "type", f.Type); err != nil {
		return nil, err
	}
	if f.Description != "" {
		if err := appendMapEntry(node, "description", f.Description); err != nil {
			return nil, err
		}
	}
	if f.HasDefault {
		if err := appendMapEntry(node, "default", f.Default); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// UnmarshalJSON decodes a field declaration, recording whether the default
// key was present.
func (f *ExpectedField) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("field declaration must be an object: %w", err)
	}
	if t, ok := raw["type"]; ok {
		if err := json.Unmarshal(t, &f.Type); err != nil {
			return fmt.Errorf("decoding type: %w", err)
		}
	}
	if d, ok := raw["description"]; ok {
		if err := json.Unmarshal(d, &f.Description); err != nil {
			return fmt.Errorf("decoding description: %w", err)
		}
	}
	if d, ok := raw["default"]; ok {
		var v any
		if err := json.Unmarshal(d, &v); err != nil {
			return fmt.Errorf("decoding default: %w", err)
		}
		f.Default = v
		f.HasDefault = true
	}
	return nil
}

// MarshalJSON encodes the declaration, emitting the default key only when
// one was declared.
func (f ExpectedField) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	if err := writeJSON(&buf, f.Type); err != nil {
		return nil, err
	}
	if f.Description != "" {
		buf.WriteString(`,"description":`)
		if err := writeJSON(&buf, f.Description); err != nil {
			return nil, err
		}
	}
	if f.HasDefault {
		buf.WriteString(`,"default":`)
		if err := writeJSON(&buf, f.Default); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ExpectsMap is an insertion-ordered mapping from field name to declaration.
// Declaration order is preserved through validation error ordering and the
// generated schema's required list; it carries no semantic weight.
//
// The zero value and nil are both usable as an empty map.
type ExpectsMap struct {
	names  []string
	fields map[string]ExpectedField
}

// NewExpectsMap returns an empty ExpectsMap.
func NewExpectsMap() *ExpectsMap {
	return &ExpectsMap{fields: make(map[string]ExpectedField)}
}

// IsEmpty reports whether the map is nil or holds no fields.
func (m *ExpectsMap) IsEmpty() bool {
	return m == nil || len(m.names) == 0
}

// Len returns the number of declared fields.
func (m *ExpectsMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Names returns the field names in declaration order.
func (m *ExpectsMap) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, len(m.names))
	copy(names, m.names)
	return names
}

// Get returns the declaration for name.
func (m *ExpectsMap) Get(name string) (ExpectedField, bool) {
	if m == nil {
		return ExpectedField{}, false
	}
	f, ok := m.fields[name]
	return f, ok
}

// Set adds or replaces a declaration. New names append to the declaration
// order; replacing keeps the original position.
func (m *ExpectsMap) Set(name string, field ExpectedField) {
	if m.fields == nil {
		m.fields = make(map[string]ExpectedField)
	}
	if _, exists := m.fields[name]; !exists {
		m.names = append(m.names, name)
	}
	m.fields[name] = field
}

// UnmarshalYAML decodes an ordered mapping of field declarations.
func (m *ExpectsMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expects must be a mapping, got %s", yamlKindName(node.Kind))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var field ExpectedField
		if err := node.Content[i+1].Decode(&field); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		m.Set(name, field)
	}
	return nil
}

// MarshalYAML encodes the map preserving declaration order.
func (m *ExpectsMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if m == nil {
		return node, nil
	}
	for _, name := range m.names {
		if err := appendMapEntry(node, name, m.fields[name]); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// UnmarshalJSON decodes an ordered object of field declarations. The
// standard decoder loses object key order, so keys are read token by token.
func (m *ExpectsMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expects must be an object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expects key is not a string")
		}
		var field ExpectedField
		if err := dec.Decode(&field); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		m.Set(name, field)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the map preserving declaration order.
func (m *ExpectsMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, m.fields[name]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func appendMapEntry(node *yaml.Node, key string, value any) error {
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
	valueNode := &yaml.Node{}
	if value == nil {
		valueNode.Kind = yaml.ScalarNode
		valueNode.Tag = "!!null"
		valueNode.Value = "null"
	} else if err := valueNode.Encode(value); err != nil {
		return err
	}
	node.Content = append(node.Content, keyNode, valueNode)
	return nil
}

func writeJSON(buf *bytes.Buffer, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

func yamlKindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
