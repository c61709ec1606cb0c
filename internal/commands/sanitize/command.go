// Copyright 2025 The Expects Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sanitize

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/flowspec/expects/internal/commands/shared"
	"github.com/flowspec/expects/pkg/expects"
	"github.com/flowspec/expects/pkg/workflow"
)

// NewCommand creates the sanitize command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sanitize <workflow>",
		Short: "Show a workflow's trigger input contract after defensive repair",
		Long: `Sanitize applies the same defensive repair that runs before a workflow
definition is persisted: unresolvable types are downgraded to Any and
defaults that do not fit their declared type are dropped. Every repair
is logged as a warning; sanitize never rejects a contract.

The repaired declarations are printed as YAML, or JSON with --json.

See also: expects validate, expects schema`,
		Example: `  # Preview what persistence would store
  expects sanitize workflow.yaml

  # Machine-readable form
  expects sanitize workflow.yaml --json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSanitize(cmd, args[0])
		},
	}

	return cmd
}

func runSanitize(cmd *cobra.Command, workflowPath string) error {
	// Load without Validate: sanitize exists precisely for definitions
	// that would not pass authoring-time validation.
	raw, err := loadRawDefinition(workflowPath)
	if err != nil {
		return shared.NewInvalidWorkflowError("failed to load workflow", err)
	}

	sanitized := expects.NewSanitizer().
		WithLogger(slog.Default()).
		Sanitize(raw.Entrypoint.Expects)
	if sanitized.IsEmpty() {
		if !shared.GetQuiet() {
			cmd.PrintErrln("no trigger inputs declared")
		}
		return nil
	}

	if shared.GetJSON() {
		type sanitizeResponse struct {
			shared.JSONResponse
			Workflow string              `json:"workflow"`
			Expects  *expects.ExpectsMap `json:"expects"`
		}
		return shared.EmitJSON(cmd.OutOrStdout(), sanitizeResponse{
			JSONResponse: shared.JSONResponse{
				Version: "1.0",
				Command: "sanitize",
				Success: true,
			},
			Workflow: raw.Name,
			Expects:  sanitized,
		})
	}

	rendered, err := yaml.Marshal(sanitized)
	if err != nil {
		return err
	}
	cmd.Print(string(rendered))
	return nil
}

// loadRawDefinition decodes a definition file without running the
// authoring-time validation that LoadDefinition applies.
func loadRawDefinition(path string) (*workflow.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var def workflow.Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	def.ApplyDefaults()
	return &def, nil
}
