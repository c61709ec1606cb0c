package expects

import (
	"fmt"

	"github.com/flowspec/expects/pkg/errors"
	"github.com/flowspec/expects/pkg/expects/model"
	"github.com/flowspec/expects/pkg/fieldtype"
)

// DefaultValidatorName is the model name used in validation messages when no
// override is given.
const DefaultValidatorName = "TriggerInputsValidator"

// ValidateOption configures a validation run.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	validatorName string
}

// WithValidatorName overrides the model name surfaced in error messages.
func WithValidatorName(name string) ValidateOption {
	return func(cfg *validateConfig) {
		if name != "" {
			cfg.validatorName = name
		}
	}
}

// ValidateTriggerInputs validates a trigger payload against a workflow's
// declared expects and returns a structured result.
//
// When expects is empty the payload is accepted as-is: a mapping payload
// passes through as ParsedInputs, a nil payload yields an empty record, and
// anything else yields no record. Declaring "no expectations" never rejects.
//
// A non-mapping, non-nil payload skips validation entirely; type-checking
// such payloads is the caller's responsibility.
//
// On success ParsedInputs holds the coerced record with defaults filled. The
// caller's payload is never mutated. On payload failure the result carries
// Status "error" and one detail per violation; use
// ValidateTriggerInputsStrict when the failure should surface as an error
// value instead.
//
// The returned error is reserved for malformed declarations (invalid
// descriptor or unresolvable type) reaching this non-sanitizing path.
func ValidateTriggerInputs(expects *ExpectsMap, payload any, opts ...ValidateOption) (*Result, error) {
	cfg := validateConfig{validatorName: DefaultValidatorName}
	for _, opt := range opts {
		opt(&cfg)
	}

	if expects.IsEmpty() {
		result := &Result{
			Status:  StatusSuccess,
			Message: "No trigger input schema, skipping validation.",
		}
		switch p := payload.(type) {
		case nil:
			result.ParsedInputs = map[string]any{}
		case map[string]any:
			passthrough := make(map[string]any, len(p))
			for k, v := range p {
				passthrough[k] = v
			}
			result.ParsedInputs = passthrough
		}
		return result, nil
	}

	fields, err := resolveFields(expects)
	if err != nil {
		return nil, err
	}

	var payloadMapping map[string]any
	switch p := payload.(type) {
	case nil:
		payloadMapping = map[string]any{}
	case map[string]any:
		payloadMapping = p
	default:
		// Non-mapping payloads are not validated here; the result stays
		// successful with no parsed record.
		return &Result{
			Status:  StatusSuccess,
			Message: "Trigger inputs are valid.",
		}, nil
	}

	parsed, violations := model.New(fields).Validate(payloadMapping)
	if len(violations) > 0 {
		return &Result{
			Status: StatusError,
			Message: fmt.Sprintf(
				"Validation error in trigger inputs (%s). Please refer to the schema for more details.",
				cfg.validatorName),
			Details: detailsFromViolations(violations),
		}, nil
	}

	return &Result{
		Status:       StatusSuccess,
		Message:      "Trigger inputs are valid.",
		ParsedInputs: parsed,
	}, nil
}

// ValidateTriggerInputsStrict behaves like ValidateTriggerInputs but
// converts a payload validation failure into a *PayloadValidationError.
// This is the boundary adapter for out-of-process task runners that rely on
// returned errors for their own retry and reporting policy; the core
// validation algorithm always returns a result.
func ValidateTriggerInputsStrict(expects *ExpectsMap, payload any, opts ...ValidateOption) (*Result, error) {
	cfg := validateConfig{validatorName: DefaultValidatorName}
	for _, opt := range opts {
		opt(&cfg)
	}

	result, err := ValidateTriggerInputs(expects, payload, opts...)
	if err != nil {
		return nil, err
	}
	if result.Status == StatusError {
		return nil, &PayloadValidationError{
			Model:   cfg.validatorName,
			Details: result.Details,
		}
	}
	return result, nil
}

// resolveFields validates each declaration, normalizes type aliases and
// resolves the type expressions, preserving declaration order. The
// declaration is rebuilt only when normalization changed the type string.
func resolveFields(expects *ExpectsMap) ([]model.Field, error) {
	fields := make([]model.Field, 0, expects.Len())
	for _, name := range expects.Names() {
		declared, _ := expects.Get(name)
		if err := declared.Validate(name); err != nil {
			return nil, err
		}

		if normalized := fieldtype.NormalizeAliases(declared.Type); normalized != declared.Type {
			declared.Type = normalized
		}

		typ, err := fieldtype.Parse(declared.Type, name)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving field %q", name)
		}

		fields = append(fields, model.Field{
			Name:        name,
			Type:        typ,
			Description: declared.Description,
			Default:     declared.Default,
			HasDefault:  declared.HasDefault,
		})
	}
	return fields, nil
}
