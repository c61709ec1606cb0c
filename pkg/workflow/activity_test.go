package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowspec/expects/pkg/expects"
)

func TestValidateTriggerInputsActivity(t *testing.T) {
	def, err := ParseDefinition([]byte(sampleDefinition))
	require.NoError(t, err)

	result, err := ValidateTriggerInputsActivity(context.Background(), ValidateTriggerInputsInput{
		Definition:    def,
		TriggerInputs: map[string]any{"severity": "high", "message": "disk full"},
	})
	require.NoError(t, err)
	require.True(t, result.OK())
	assert.Equal(t, 0, result.ParsedInputs["retries"], "default filled")
}

func TestValidateTriggerInputsActivity_ContractViolation(t *testing.T) {
	def, err := ParseDefinition([]byte(sampleDefinition))
	require.NoError(t, err)

	_, err = ValidateTriggerInputsActivity(context.Background(), ValidateTriggerInputsInput{
		Definition:    def,
		TriggerInputs: map[string]any{"severity": "urgent"},
	})
	require.Error(t, err)

	var payloadErr *expects.PayloadValidationError
	require.ErrorAs(t, err, &payloadErr)
	assert.Equal(t, "notify-oncall", payloadErr.Model, "workflow name labels the failure")
	assert.NotEmpty(t, payloadErr.Details)
}

func TestValidateTriggerInputsActivity_NoDefinition(t *testing.T) {
	result, err := ValidateTriggerInputsActivity(context.Background(), ValidateTriggerInputsInput{
		TriggerInputs: map[string]any{"anything": true},
	})
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, map[string]any{"anything": true}, result.ParsedInputs)
}

func TestValidateTriggerInputsActivity_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ValidateTriggerInputsActivity(ctx, ValidateTriggerInputsInput{})
	assert.ErrorIs(t, err, context.Canceled)
}
