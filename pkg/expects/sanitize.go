package expects

import (
	"log/slog"

	"github.com/flowspec/expects/pkg/fieldtype"
)

// Sanitizer defensively normalizes raw expects declarations before they are
// persisted, so malformed type strings or incompatible defaults never reach
// stored workflow definitions. Sanitization never fails: invalid pieces are
// downgraded or dropped, and every downgrade is logged as a warning.
type Sanitizer struct {
	logger *slog.Logger
}

// NewSanitizer creates a Sanitizer logging through slog.Default().
func NewSanitizer() *Sanitizer {
	return &Sanitizer{logger: slog.Default()}
}

// WithLogger sets the logger used for sanitization warnings.
func (s *Sanitizer) WithLogger(logger *slog.Logger) *Sanitizer {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Sanitize validates and sanitizes an expects mapping. Per field:
//
//   - an invalid descriptor is replaced with a bare permissive "Any" entry
//   - an unresolvable type string is downgraded to "Any"
//   - a non-null default incompatible with its own declared type is dropped
//   - an explicit null default is always kept, independent of declared type
//
// Fields are never dropped, only downgraded, so the result has the same keys
// in the same order as the input. An empty or nil input yields nil, not an
// empty map: callers must distinguish "no expectations" from "expectations
// that sanitized to nothing".
func (s *Sanitizer) Sanitize(expects *ExpectsMap) *ExpectsMap {
	if expects.IsEmpty() {
		return nil
	}

	sanitized := NewExpectsMap()
	for _, name := range expects.Names() {
		declared, _ := expects.Get(name)

		if err := declared.Validate(name); err != nil {
			s.logger.Warn("Invalid expected field declaration during sanitation; defaulting to Any",
				"field_name", name,
				"error", err.Error())
			sanitized.Set(name, ExpectedField{Type: AnyType})
			continue
		}

		resolved, err := fieldtype.Parse(declared.Type, name)
		if err != nil {
			s.logger.Warn("Failed to parse expected field type during sanitation; defaulting to Any",
				"field_name", name,
				"declared_type", declared.Type,
				"error", err.Error())
			resolved = fieldtype.Any
			declared.Type = AnyType
		}

		entry := ExpectedField{Type: declared.Type}
		if declared.Description != "" {
			entry.Description = declared.Description
		}

		if declared.HasDefault {
			if declared.Default == nil {
				// An explicit null default is always legal; it means
				// "optional, unset".
				entry.Default = nil
				entry.HasDefault = true
			} else if _, problems := resolved.Check(declared.Default); len(problems) > 0 {
				s.logger.Warn("Default value is incompatible with declared type; dropping default",
					"field_name", name,
					"declared_type", declared.Type)
			} else {
				entry.Default = declared.Default
				entry.HasDefault = true
			}
		}

		sanitized.Set(name, entry)
	}
	return sanitized
}

// Sanitize validates and sanitizes an expects mapping with the default
// sanitizer. See Sanitizer.Sanitize.
func Sanitize(expects *ExpectsMap) *ExpectsMap {
	return NewSanitizer().Sanitize(expects)
}
