// Package fieldtype implements the type expression grammar used by workflow
// trigger input declarations. A type expression is parsed into a small closed
// set of type variants which can validate and coerce runtime values.
package fieldtype

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies a type variant.
type Kind int

const (
	// KindAny accepts every value, including null.
	KindAny Kind = iota
	// KindStr accepts strings.
	KindStr
	// KindInt accepts integers, including whole JSON numbers.
	KindInt
	// KindFloat accepts floating point and integer numbers.
	KindFloat
	// KindBool accepts booleans.
	KindBool
	// KindDatetime accepts RFC 3339 timestamp strings.
	KindDatetime
	// KindDuration accepts Go duration strings (e.g. "30s", "1h30m").
	KindDuration
	// KindList accepts sequences whose elements conform to Elem.
	KindList
	// KindEnum accepts one of a fixed set of string members.
	KindEnum
	// KindOptional accepts null or a value conforming to Elem.
	KindOptional
)

// Type is a resolved type expression. The zero value is the permissive
// "Any" type.
type Type struct {
	Kind Kind

	// Elem is the element type for KindList and the wrapped type for
	// KindOptional.
	Elem *Type

	// Members holds the allowed values for KindEnum.
	Members []string
}

// Any is the permissive type that accepts every value.
var Any = Type{Kind: KindAny}

// String renders the canonical type expression for this type.
func (t Type) String() string {
	switch t.Kind {
	case KindAny:
		return "Any"
	case KindStr:
		return "str"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDatetime:
		return "datetime"
	case KindDuration:
		return "duration"
	case KindList:
		return fmt.Sprintf("list[%s]", t.Elem.String())
	case KindEnum:
		quoted := make([]string, len(t.Members))
		for i, m := range t.Members {
			quoted[i] = strconv.Quote(m)
		}
		return fmt.Sprintf("enum[%s]", strings.Join(quoted, ", "))
	case KindOptional:
		return fmt.Sprintf("%s | None", t.Elem.String())
	default:
		return "Any"
	}
}

// Problem describes one conformance failure found by Check. Path is relative
// to the checked value ("" for the value itself, "[2]" for a list element).
type Problem struct {
	Path    string
	Message string
}

// Check validates value against the type and returns the coerced value.
// Coercions follow JSON decoding conventions: whole float64 values coerce to
// int64, integers widen to float64, datetime and duration values are parsed
// from their string forms. A non-empty problem list means the value does not
// conform; the coerced value is only meaningful when the list is empty.
func (t Type) Check(value any) (any, []Problem) {
	switch t.Kind {
	case KindAny:
		return value, nil

	case KindStr:
		s, ok := value.(string)
		if !ok {
			return nil, []Problem{{Message: fmt.Sprintf("expected a string, got %s", typeName(value))}}
		}
		return s, nil

	case KindInt:
		switch v := value.(type) {
		case int:
			return int64(v), nil
		case int32:
			return int64(v), nil
		case int64:
			return v, nil
		case float64:
			// JSON numbers decode as float64; accept whole values only.
			if v != float64(int64(v)) {
				return nil, []Problem{{Message: fmt.Sprintf("expected an integer, got %v", v)}}
			}
			return int64(v), nil
		default:
			return nil, []Problem{{Message: fmt.Sprintf("expected an integer, got %s", typeName(value))}}
		}

	case KindFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		default:
			return nil, []Problem{{Message: fmt.Sprintf("expected a number, got %s", typeName(value))}}
		}

	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, []Problem{{Message: fmt.Sprintf("expected a boolean, got %s", typeName(value))}}
		}
		return b, nil

	case KindDatetime:
		switch v := value.(type) {
		case time.Time:
			return v, nil
		case string:
			ts, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return nil, []Problem{{Message: fmt.Sprintf("expected an RFC 3339 timestamp, got %q", v)}}
			}
			return ts, nil
		default:
			return nil, []Problem{{Message: fmt.Sprintf("expected an RFC 3339 timestamp, got %s", typeName(value))}}
		}

	case KindDuration:
		switch v := value.(type) {
		case time.Duration:
			return v, nil
		case string:
			d, err := time.ParseDuration(v)
			if err != nil {
				return nil, []Problem{{Message: fmt.Sprintf("expected a duration such as \"30s\" or \"1h\", got %q", v)}}
			}
			return d, nil
		default:
			return nil, []Problem{{Message: fmt.Sprintf("expected a duration string, got %s", typeName(value))}}
		}

	case KindList:
		items, ok := value.([]any)
		if !ok {
			return nil, []Problem{{Message: fmt.Sprintf("expected a list, got %s", typeName(value))}}
		}
		coerced := make([]any, len(items))
		var problems []Problem
		for i, item := range items {
			v, elemProblems := t.Elem.Check(item)
			if len(elemProblems) > 0 {
				for _, p := range elemProblems {
					problems = append(problems, Problem{
						Path:    fmt.Sprintf("[%d]%s", i, p.Path),
						Message: p.Message,
					})
				}
				continue
			}
			coerced[i] = v
		}
		if len(problems) > 0 {
			return nil, problems
		}
		return coerced, nil

	case KindEnum:
		s, ok := value.(string)
		if !ok {
			return nil, []Problem{{Message: fmt.Sprintf("expected one of %s, got %s", enumMembers(t.Members), typeName(value))}}
		}
		for _, m := range t.Members {
			if m == s {
				return s, nil
			}
		}
		return nil, []Problem{{Message: fmt.Sprintf("value %q is not one of %s", s, enumMembers(t.Members))}}

	case KindOptional:
		if value == nil {
			return nil, nil
		}
		return t.Elem.Check(value)

	default:
		return value, nil
	}
}

// typeName reports a human-readable name for a runtime value's type.
// Error messages never include the value itself.
func typeName(value any) string {
	if value == nil {
		return "null"
	}
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int32, int64:
		return "integer"
	case float32, float64:
		return "number"
	case []any:
		return "list"
	case map[string]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func enumMembers(members []string) string {
	quoted := make([]string, len(members))
	for i, m := range members {
		quoted[i] = strconv.Quote(m)
	}
	return strings.Join(quoted, ", ")
}
