package expects

import (
	"fmt"
	"strings"

	"github.com/flowspec/expects/pkg/expects/model"
)

// Status reports the outcome of a validation run.
type Status string

const (
	// StatusSuccess means the payload conformed (or validation was skipped).
	StatusSuccess Status = "success"
	// StatusError means the payload failed structural validation.
	StatusError Status = "error"
)

// ValidationDetail is one field-addressable validation failure.
type ValidationDetail struct {
	// Path addresses the failing value (e.g. "count", "tags[2]")
	Path string `json:"path"`

	// Message is the human-readable failure description
	Message string `json:"message"`

	// Value is the offending payload value, if one was supplied
	Value any `json:"value,omitempty"`
}

// Result is the outcome of validating a trigger payload.
//
// ParsedInputs is deliberately marshalled without omitempty: a null value
// means validation never produced a record (non-mapping payload), while an
// empty object means an empty record passed.
type Result struct {
	// Status is "success" or "error"
	Status Status `json:"status"`

	// Message is a human-readable summary
	Message string `json:"message"`

	// ParsedInputs is the coerced, defaulted record on success. Nil when
	// no record was produced.
	ParsedInputs map[string]any `json:"parsed_inputs"`

	// Details lists every violation on error, in the order the validator
	// reported them.
	Details []ValidationDetail `json:"details,omitempty"`
}

// OK reports whether the result is a success.
func (r *Result) OK() bool {
	return r != nil && r.Status == StatusSuccess
}

func detailsFromViolations(violations []model.Violation) []ValidationDetail {
	details := make([]ValidationDetail, len(violations))
	for i, v := range violations {
		details[i] = ValidationDetail{Path: v.Path, Message: v.Message, Value: v.Value}
	}
	return details
}

// PayloadValidationError is the thrown form of a failed validation, used by
// callers that opt into strict mode at an out-of-process task boundary.
type PayloadValidationError struct {
	// Model names the validator that rejected the payload
	Model string

	// Details lists every violation
	Details []ValidationDetail
}

// Error implements the error interface.
func (e *PayloadValidationError) Error() string {
	paths := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		paths = append(paths, d.Path)
	}
	return fmt.Sprintf("trigger input validation failed (%s): %d violation(s) at %s",
		e.Model, len(e.Details), strings.Join(paths, ", "))
}
