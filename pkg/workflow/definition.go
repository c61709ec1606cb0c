// Package workflow provides the workflow definition surface that trigger
// input contracts hang off of.
//
// A definition is a YAML document naming the workflow and its entrypoint.
// The entrypoint declares the workflow's expected trigger inputs, which is
// the contract validated against incoming payloads and exported as a JSON
// Schema for webhook consumers.
package workflow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flowspec/expects/pkg/errors"
	"github.com/flowspec/expects/pkg/expects"
	"github.com/flowspec/expects/pkg/fieldtype"
)

// Definition represents a YAML-based workflow definition.
//
// The Version field is optional and defaults to "1.0" if not specified,
// allowing minimal definitions that only carry a name and entrypoint.
type Definition struct {
	// Name is the workflow identifier
	Name string `yaml:"name" json:"name"`

	// Description provides human-readable context about the workflow
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Version tracks the workflow definition schema version (optional, defaults to "1.0")
	Version string `yaml:"version,omitempty" json:"version,omitempty"`

	// Entrypoint defines how this workflow is invoked and what inputs it expects
	Entrypoint Entrypoint `yaml:"entrypoint" json:"entrypoint"`
}

// Entrypoint names the action a trigger dispatches to and declares the
// trigger input contract enforced before dispatch.
type Entrypoint struct {
	// Ref is the entry action reference
	Ref string `yaml:"ref,omitempty" json:"ref,omitempty"`

	// Expects declares the expected trigger inputs, keyed by field name
	// in declaration order
	Expects *expects.ExpectsMap `yaml:"expects,omitempty" json:"expects,omitempty"`
}

// DefaultVersion is applied when a definition omits its version field.
const DefaultVersion = "1.0"

// ParseDefinition parses a workflow definition from YAML bytes.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse workflow definition: %w", err)
	}

	def.ApplyDefaults()

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workflow definition: %w", err)
	}

	return &def, nil
}

// LoadDefinition reads and parses a workflow definition file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow definition: %w", err)
	}
	return ParseDefinition(data)
}

// ApplyDefaults applies default values to omitted definition fields.
func (d *Definition) ApplyDefaults() {
	if d.Version == "" {
		d.Version = DefaultVersion
	}
}

// Validate checks the definition for structural problems: a missing name,
// or an expects declaration whose type strings do not resolve. It does not
// sanitize; authoring-time validation reports bad declarations instead of
// silently repairing them.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return &errors.ValidationError{
			Field:      "name",
			Message:    "workflow name is required",
			Suggestion: "add a descriptive name for the workflow",
		}
	}

	if d.Entrypoint.Expects.IsEmpty() {
		return nil
	}
	for _, name := range d.Entrypoint.Expects.Names() {
		field, _ := d.Entrypoint.Expects.Get(name)
		if err := field.Validate(name); err != nil {
			return err
		}
		declared := fieldtype.NormalizeAliases(field.Type)
		if _, err := fieldtype.Parse(declared, name); err != nil {
			return err
		}
	}
	return nil
}
