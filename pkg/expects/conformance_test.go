package expects_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/require"

	"github.com/flowspec/expects/pkg/expects"
)

// compileSchema runs a generated document through a real JSON Schema
// compiler, so the exported shape is checked against the standard rather
// than against our own reading of it.
func compileSchema(t *testing.T, doc map[string]any) *jsonschema.Schema {
	t.Helper()

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	require.NoError(t, compiler.AddResource("trigger-inputs.json", parsed))
	schema, err := compiler.Compile("trigger-inputs.json")
	require.NoError(t, err)
	return schema
}

func TestGeneratedSchemaConformance(t *testing.T) {
	in := expects.NewExpectsMap()
	in.Set("name", expects.ExpectedField{Type: "str"})
	in.Set("count", expects.ExpectedField{Type: "int", Default: 1, HasDefault: true})
	in.Set("priority", expects.ExpectedField{Type: `enum["low", "high"]`, Default: "low", HasDefault: true})
	in.Set("tags", expects.ExpectedField{Type: "list[str]", Default: []any{}, HasDefault: true})
	in.Set("deadline", expects.ExpectedField{Type: "datetime | None", Default: nil, HasDefault: true})

	doc, err := expects.BuildTriggerInputsSchema(in)
	require.NoError(t, err)

	schema := compileSchema(t, doc)

	valid := []map[string]any{
		{"name": "incident-42"},
		{"name": "x", "count": json.Number("3"), "priority": "high"},
		{"name": "x", "tags": []any{"a", "b"}, "deadline": nil},
		{"name": "x", "deadline": "2026-01-02T15:04:05Z"},
	}
	for i, payload := range valid {
		require.NoErrorf(t, schema.Validate(payload), "payload %d should validate", i)
	}

	invalid := []map[string]any{
		{},                                       // missing required name
		{"name": json.Number("7")},               // wrong type
		{"name": "x", "priority": "urgent"},      // outside the enum
		{"name": "x", "tags": []any{"a", false}}, // heterogeneous list
	}
	for i, payload := range invalid {
		require.Errorf(t, schema.Validate(payload), "payload %d should be rejected", i)
	}
}

// A payload our validator accepts must also satisfy the schema we publish
// for the same declarations.
func TestValidatorAndSchemaAgree(t *testing.T) {
	in := expects.NewExpectsMap()
	in.Set("region", expects.ExpectedField{Type: `enum["us", "eu"]`})
	in.Set("retries", expects.ExpectedField{Type: "int", Default: 0, HasDefault: true})

	payload := map[string]any{"region": "eu", "retries": json.Number("2")}

	result, err := expects.ValidateTriggerInputs(in, map[string]any{"region": "eu", "retries": 2})
	require.NoError(t, err)
	require.True(t, result.OK())

	doc, err := expects.BuildTriggerInputsSchema(in)
	require.NoError(t, err)
	schema := compileSchema(t, doc)
	require.NoError(t, schema.Validate(payload))
}
