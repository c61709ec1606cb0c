package expects

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestExpectsMap_YAMLOrderAndDefaults(t *testing.T) {
	src := `
zebra:
  type: str
  description: Last alphabetically, first declared
alpha:
  type: int
  default: 3
flag:
  type: bool
  default: null
plain:
  type: str
`
	var m ExpectsMap
	if err := yaml.Unmarshal([]byte(src), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	wantNames := []string{"zebra", "alpha", "flag", "plain"}
	names := m.Names()
	if len(names) != len(wantNames) {
		t.Fatalf("names = %v, want %v", names, wantNames)
	}
	for i, want := range wantNames {
		if names[i] != want {
			t.Errorf("names[%d] = %q, want %q (declaration order must survive)", i, names[i], want)
		}
	}

	alpha, _ := m.Get("alpha")
	if !alpha.HasDefault || alpha.Default != 3 {
		t.Errorf("alpha = %+v, want default 3", alpha)
	}

	// An explicit null default is distinct from no default.
	flag, _ := m.Get("flag")
	if !flag.HasDefault || flag.Default != nil {
		t.Errorf("flag = %+v, want explicit null default", flag)
	}
	plain, _ := m.Get("plain")
	if plain.HasDefault {
		t.Errorf("plain = %+v, want no default", plain)
	}

	zebra, _ := m.Get("zebra")
	if zebra.Description != "Last alphabetically, first declared" {
		t.Errorf("zebra description = %q", zebra.Description)
	}
}

func TestExpectsMap_YAMLRoundTrip(t *testing.T) {
	m := NewExpectsMap()
	m.Set("zebra", ExpectedField{Type: "str"})
	m.Set("alpha", ExpectedField{Type: "bool", Default: nil, HasDefault: true})

	data, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got ExpectsMap
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	names := got.Names()
	if len(names) != 2 || names[0] != "zebra" || names[1] != "alpha" {
		t.Errorf("round-tripped names = %v, want [zebra alpha]", names)
	}
	alpha, _ := got.Get("alpha")
	if !alpha.HasDefault || alpha.Default != nil {
		t.Errorf("alpha lost its explicit null default: %+v", alpha)
	}
}

func TestExpectsMap_JSONOrderAndDefaults(t *testing.T) {
	src := `{
		"zebra": {"type": "str"},
		"alpha": {"type": "int", "default": 3},
		"flag": {"type": "bool", "default": null}
	}`

	var m ExpectsMap
	if err := json.Unmarshal([]byte(src), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	names := m.Names()
	if len(names) != 3 || names[0] != "zebra" || names[1] != "alpha" || names[2] != "flag" {
		t.Fatalf("names = %v, want [zebra alpha flag]", names)
	}

	alpha, _ := m.Get("alpha")
	if !alpha.HasDefault || alpha.Default != float64(3) {
		t.Errorf("alpha = %+v, want default 3", alpha)
	}
	flag, _ := m.Get("flag")
	if !flag.HasDefault || flag.Default != nil {
		t.Errorf("flag = %+v, want explicit null default", flag)
	}

	// Marshalling preserves declaration order and omits absent defaults.
	data, err := json.Marshal(&m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"zebra":{"type":"str"},"alpha":{"type":"int","default":3},"flag":{"type":"bool","default":null}}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}

func TestExpectedField_Validate(t *testing.T) {
	tests := []struct {
		name    string
		field   ExpectedField
		key     string
		wantErr bool
	}{
		{name: "valid", field: ExpectedField{Type: "str"}, key: "a"},
		{name: "empty type", field: ExpectedField{}, key: "a", wantErr: true},
		{name: "whitespace type", field: ExpectedField{Type: "   "}, key: "a", wantErr: true},
		{name: "empty name", field: ExpectedField{Type: "str"}, key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.field.Validate(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpectsMap_SetReplacesInPlace(t *testing.T) {
	m := NewExpectsMap()
	m.Set("a", ExpectedField{Type: "str"})
	m.Set("b", ExpectedField{Type: "int"})
	m.Set("a", ExpectedField{Type: "bool"})

	names := m.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("names = %v, want [a b]", names)
	}
	a, _ := m.Get("a")
	if a.Type != "bool" {
		t.Errorf("a.Type = %q, want replaced value", a.Type)
	}
}

func TestExpectsMap_NilSafety(t *testing.T) {
	var m *ExpectsMap
	if !m.IsEmpty() {
		t.Error("nil map should be empty")
	}
	if m.Len() != 0 {
		t.Error("nil map length should be 0")
	}
	if _, ok := m.Get("a"); ok {
		t.Error("nil map should hold nothing")
	}
}
