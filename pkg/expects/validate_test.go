package expects

import (
	"testing"

	"github.com/flowspec/expects/pkg/errors"
)

func expectsFrom(t *testing.T, pairs ...any) *ExpectsMap {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("expectsFrom requires name/field pairs")
	}
	m := NewExpectsMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(ExpectedField))
	}
	return m
}

func TestValidateTriggerInputs_NoSchema(t *testing.T) {
	tests := []struct {
		name        string
		expects     *ExpectsMap
		payload     any
		wantParsed  map[string]any
		parsedUnset bool
	}{
		{
			name:       "nil expects nil payload",
			expects:    nil,
			payload:    nil,
			wantParsed: map[string]any{},
		},
		{
			name:       "empty expects nil payload",
			expects:    NewExpectsMap(),
			payload:    nil,
			wantParsed: map[string]any{},
		},
		{
			name:       "mapping payload passes through untouched",
			expects:    nil,
			payload:    map[string]any{"anything": 42, "goes": true},
			wantParsed: map[string]any{"anything": 42, "goes": true},
		},
		{
			name:        "non-mapping payload leaves parsed inputs unset",
			expects:     nil,
			payload:     "not a mapping",
			parsedUnset: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateTriggerInputs(tt.expects, tt.payload)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.OK() {
				t.Fatalf("status = %s, want success", result.Status)
			}
			if tt.parsedUnset {
				if result.ParsedInputs != nil {
					t.Errorf("ParsedInputs = %v, want unset", result.ParsedInputs)
				}
				return
			}
			if result.ParsedInputs == nil {
				t.Fatal("ParsedInputs unset, want a record")
			}
			if len(result.ParsedInputs) != len(tt.wantParsed) {
				t.Errorf("ParsedInputs = %v, want %v", result.ParsedInputs, tt.wantParsed)
			}
			for k, want := range tt.wantParsed {
				if result.ParsedInputs[k] != want {
					t.Errorf("ParsedInputs[%s] = %v, want %v", k, result.ParsedInputs[k], want)
				}
			}
		})
	}
}

func TestValidateTriggerInputs_Success(t *testing.T) {
	expects := expectsFrom(t,
		"title", ExpectedField{Type: "String"}, // surface alias resolves
		"count", ExpectedField{Type: "int", Default: 1, HasDefault: true},
		"urgent", ExpectedField{Type: "bool", Default: false, HasDefault: true},
	)

	result, err := ValidateTriggerInputs(expects, map[string]any{
		"title": "disk full",
		"count": float64(4),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK() {
		t.Fatalf("status = %s, details = %v", result.Status, result.Details)
	}

	// Every declared field is present, defaults filled where omitted.
	if result.ParsedInputs["title"] != "disk full" {
		t.Errorf("title = %v", result.ParsedInputs["title"])
	}
	if result.ParsedInputs["count"] != int64(4) {
		t.Errorf("count = %v (%T), want coerced int64", result.ParsedInputs["count"], result.ParsedInputs["count"])
	}
	if result.ParsedInputs["urgent"] != false {
		t.Errorf("urgent = %v, want default filled", result.ParsedInputs["urgent"])
	}
}

func TestValidateTriggerInputs_DoesNotMutatePayload(t *testing.T) {
	expects := expectsFrom(t, "count", ExpectedField{Type: "int"})
	payload := map[string]any{"count": float64(4), "extra": "kept"}

	result, err := ValidateTriggerInputs(expects, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK() {
		t.Fatalf("status = %s", result.Status)
	}

	// The coerced record is returned; the caller's payload stays untouched.
	if payload["count"] != float64(4) {
		t.Errorf("payload mutated: count = %v (%T)", payload["count"], payload["count"])
	}
	if _, present := payload["extra"]; !present {
		t.Error("payload mutated: extra key removed")
	}
	if result.ParsedInputs["count"] != int64(4) {
		t.Errorf("parsed count = %v (%T), want int64", result.ParsedInputs["count"], result.ParsedInputs["count"])
	}
}

func TestValidateTriggerInputs_WrongType(t *testing.T) {
	expects := expectsFrom(t,
		"title", ExpectedField{Type: "str"},
		"count", ExpectedField{Type: "int"},
	)

	result, err := ValidateTriggerInputs(expects, map[string]any{
		"title": "ok",
		"count": "five",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OK() {
		t.Fatal("status = success, want error")
	}
	if result.ParsedInputs != nil {
		t.Errorf("ParsedInputs = %v, want unset on failure", result.ParsedInputs)
	}

	found := false
	for _, d := range result.Details {
		if d.Path == "count" {
			found = true
		}
	}
	if !found {
		t.Errorf("details = %v, want an entry naming count", result.Details)
	}
}

func TestValidateTriggerInputs_NilPayloadValidatedAsEmpty(t *testing.T) {
	expects := expectsFrom(t,
		"count", ExpectedField{Type: "int", Default: 7, HasDefault: true},
	)

	result, err := ValidateTriggerInputs(expects, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK() {
		t.Fatalf("status = %s, details = %v", result.Status, result.Details)
	}
	if result.ParsedInputs["count"] != 7 {
		t.Errorf("count = %v, want default", result.ParsedInputs["count"])
	}

	// A required field with no default fails against an empty payload.
	required := expectsFrom(t, "title", ExpectedField{Type: "str"})
	result, err = ValidateTriggerInputs(required, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OK() {
		t.Fatal("status = success, want error for missing required field")
	}
}

func TestValidateTriggerInputs_NonMappingPayloadSkipsValidation(t *testing.T) {
	expects := expectsFrom(t, "title", ExpectedField{Type: "str"})

	result, err := ValidateTriggerInputs(expects, []any{"not", "a", "mapping"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK() {
		t.Fatalf("status = %s, want success (non-mapping payloads are the caller's problem)", result.Status)
	}
	if result.ParsedInputs != nil {
		t.Errorf("ParsedInputs = %v, want unset", result.ParsedInputs)
	}
}

func TestValidateTriggerInputs_BadDeclarationPropagates(t *testing.T) {
	t.Run("unresolvable type", func(t *testing.T) {
		expects := expectsFrom(t, "a", ExpectedField{Type: "not-a-real-type"})
		_, err := ValidateTriggerInputs(expects, map[string]any{"a": 1})
		if err == nil {
			t.Fatal("expected error for unresolvable type in non-sanitizing path")
		}
		var parseErr *errors.TypeParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("error type = %T, want *TypeParseError", err)
		}
	})

	t.Run("invalid descriptor", func(t *testing.T) {
		expects := expectsFrom(t, "a", ExpectedField{})
		_, err := ValidateTriggerInputs(expects, map[string]any{"a": 1})
		if err == nil {
			t.Fatal("expected error for invalid descriptor in non-sanitizing path")
		}
		var descErr *errors.DescriptorError
		if !errors.As(err, &descErr) {
			t.Errorf("error type = %T, want *DescriptorError", err)
		}
	})
}

func TestValidateTriggerInputs_ErrorMessageNamesValidator(t *testing.T) {
	expects := expectsFrom(t, "count", ExpectedField{Type: "int"})

	result, err := ValidateTriggerInputs(expects, map[string]any{"count": "x"},
		WithValidatorName("ReleasePipelineInputs"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Validation error in trigger inputs (ReleasePipelineInputs). Please refer to the schema for more details."
	if result.Message != want {
		t.Errorf("message = %q, want %q", result.Message, want)
	}
}

func TestValidateTriggerInputsStrict(t *testing.T) {
	expects := expectsFrom(t, "count", ExpectedField{Type: "int"})

	t.Run("success returns result", func(t *testing.T) {
		result, err := ValidateTriggerInputsStrict(expects, map[string]any{"count": 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.OK() {
			t.Errorf("status = %s", result.Status)
		}
	})

	t.Run("failure surfaces as error", func(t *testing.T) {
		_, err := ValidateTriggerInputsStrict(expects, map[string]any{"count": "x"})
		if err == nil {
			t.Fatal("expected error in strict mode")
		}
		var payloadErr *PayloadValidationError
		if !errors.As(err, &payloadErr) {
			t.Fatalf("error type = %T, want *PayloadValidationError", err)
		}
		if payloadErr.Model != DefaultValidatorName {
			t.Errorf("model = %q, want %q", payloadErr.Model, DefaultValidatorName)
		}
		if len(payloadErr.Details) == 0 || payloadErr.Details[0].Path != "count" {
			t.Errorf("details = %v, want violation at count", payloadErr.Details)
		}
	})
}
