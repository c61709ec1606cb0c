package workflow

import (
	"context"

	"github.com/flowspec/expects/pkg/expects"
)

// ValidateTriggerInputsInput carries a workflow definition together with the
// payload a trigger delivered for it.
type ValidateTriggerInputsInput struct {
	Definition    *Definition `json:"definition"`
	TriggerInputs any         `json:"trigger_inputs"`
}

// ValidateTriggerInputsActivity validates a trigger payload against the
// definition's entrypoint contract. A contract violation is returned as a
// *expects.PayloadValidationError so orchestration layers can surface the
// per-field details; declaration errors come back as-is.
//
// The successful result carries the coerced record; the caller's payload is
// never modified.
func ValidateTriggerInputsActivity(ctx context.Context, input ValidateTriggerInputsInput) (*expects.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var declared *expects.ExpectsMap
	if input.Definition != nil {
		declared = input.Definition.Entrypoint.Expects
	}
	return expects.ValidateTriggerInputsStrict(declared, input.TriggerInputs,
		expects.WithValidatorName(activityValidatorName(input.Definition)))
}

func activityValidatorName(def *Definition) string {
	if def == nil || def.Name == "" {
		return expects.DefaultValidatorName
	}
	return def.Name
}
