package fieldtype

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/flowspec/expects/pkg/errors"
)

// typeAliases maps surface-syntax aliases to canonical primitive names.
// Matching is case-sensitive and word-bounded so identifiers that merely
// contain an alias (e.g. "MyString") are left alone.
var typeAliases = []struct {
	pattern   *regexp.Regexp
	canonical string
}{
	{regexp.MustCompile(`\bstring\b`), "str"},
	{regexp.MustCompile(`\bString\b`), "str"},
	{regexp.MustCompile(`\binteger\b`), "int"},
	{regexp.MustCompile(`\bInteger\b`), "int"},
	{regexp.MustCompile(`\bboolean\b`), "bool"},
	{regexp.MustCompile(`\bBoolean\b`), "bool"},
}

// NormalizeAliases rewrites whole-word occurrences of surface-syntax type
// aliases to their canonical primitive names. The transform is idempotent and
// leaves unrelated identifiers and generic brackets untouched.
func NormalizeAliases(typeStr string) string {
	normalized := typeStr
	for _, alias := range typeAliases {
		normalized = alias.pattern.ReplaceAllString(normalized, alias.canonical)
	}
	return normalized
}

var primitives = map[string]Kind{
	"str":      KindStr,
	"int":      KindInt,
	"float":    KindFloat,
	"bool":     KindBool,
	"datetime": KindDatetime,
	"duration": KindDuration,
}

// Parse resolves a type expression to a concrete Type. Surface aliases are
// normalized first, so both "String" and "str" resolve to the string type.
// fieldName is only used to attribute errors.
//
// Grammar:
//
//	any | Any
//	str | int | float | bool | datetime | duration
//	list[T]
//	enum["a", "b", ...]
//	T | None        (optional)
func Parse(typeStr, fieldName string) (Type, error) {
	normalized := strings.TrimSpace(NormalizeAliases(typeStr))
	if normalized == "" {
		return Type{}, &errors.TypeParseError{
			Field:      fieldName,
			TypeString: typeStr,
			Reason:     "type expression is empty",
		}
	}

	t, err := parseExpr(normalized)
	if err != nil {
		return Type{}, &errors.TypeParseError{
			Field:      fieldName,
			TypeString: typeStr,
			Reason:     err.Error(),
		}
	}
	return t, nil
}

func parseExpr(s string) (Type, error) {
	parts := splitUnion(s)
	if len(parts) > 1 {
		// The only supported union form is "T | None" (in either order).
		if len(parts) != 2 {
			return Type{}, fmt.Errorf("unions other than \"T | None\" are not supported")
		}
		var inner string
		switch {
		case parts[0] == "None":
			inner = parts[1]
		case parts[1] == "None":
			inner = parts[0]
		default:
			return Type{}, fmt.Errorf("unions other than \"T | None\" are not supported")
		}
		elem, err := parseTerm(inner)
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: KindOptional, Elem: &elem}, nil
	}
	return parseTerm(parts[0])
}

func parseTerm(s string) (Type, error) {
	switch {
	case s == "any" || s == "Any":
		return Type{Kind: KindAny}, nil

	case s == "None":
		return Type{}, fmt.Errorf("\"None\" is not a standalone type")

	case strings.HasPrefix(s, "list[") && strings.HasSuffix(s, "]"):
		inner := strings.TrimSpace(s[len("list[") : len(s)-1])
		if inner == "" {
			return Type{}, fmt.Errorf("list requires an element type")
		}
		elem, err := parseExpr(inner)
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: KindList, Elem: &elem}, nil

	case strings.HasPrefix(s, "enum[") && strings.HasSuffix(s, "]"):
		inner := s[len("enum[") : len(s)-1]
		members, err := parseEnumMembers(inner)
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: KindEnum, Members: members}, nil
	}

	if kind, ok := primitives[s]; ok {
		return Type{Kind: kind}, nil
	}
	return Type{}, fmt.Errorf("unknown type name %q", s)
}

// parseEnumMembers parses the quoted member list of an enum expression.
// Members may use single or double quotes.
func parseEnumMembers(s string) ([]string, error) {
	var members []string
	for _, raw := range splitTopLevel(s, ',') {
		part := strings.TrimSpace(raw)
		if part == "" {
			return nil, fmt.Errorf("enum member list contains an empty entry")
		}
		if len(part) < 2 {
			return nil, fmt.Errorf("enum member %s is not a quoted string", part)
		}
		quote := part[0]
		if (quote != '"' && quote != '\'') || part[len(part)-1] != quote {
			return nil, fmt.Errorf("enum member %s is not a quoted string", part)
		}
		members = append(members, part[1:len(part)-1])
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("enum requires at least one member")
	}
	return members, nil
}

// splitUnion splits a type expression on top-level "|" separators and trims
// each part.
func splitUnion(s string) []string {
	parts := splitTopLevel(s, '|')
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// splitTopLevel splits s on sep, ignoring separators nested inside brackets
// or quoted strings.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}
