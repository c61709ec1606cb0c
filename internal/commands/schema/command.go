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

package schema

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowspec/expects/internal/commands/shared"
	"github.com/flowspec/expects/pkg/expects"
	"github.com/flowspec/expects/pkg/workflow"
)

// NewCommand creates the schema command
func NewCommand() *cobra.Command {
	var (
		title   string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "schema <workflow>",
		Short: "Export a workflow's trigger input contract as JSON Schema",
		Long: `Schema generates a standalone JSON Schema document for a workflow's
declared trigger inputs. The declarations are sanitized first, so the
exported schema matches what validation would enforce after persistence.
Internal references are inlined so consumers need no $defs resolution.

A workflow with no declared inputs produces no document and exits zero.

See also: expects validate, expects sanitize`,
		Example: `  # Print the schema for a workflow
  expects schema workflow.yaml

  # Write it for a webhook consumer
  expects schema workflow.yaml -o trigger-inputs.schema.json

  # Override the document title
  expects schema workflow.yaml --title IncidentTriggerInputs`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(cmd, args[0], title, outPath)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Schema document title (default: WorkflowTriggerInputs)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the schema to a file instead of stdout")

	return cmd
}

func runSchema(cmd *cobra.Command, workflowPath, title, outPath string) error {
	def, err := workflow.LoadDefinition(workflowPath)
	if err != nil {
		return shared.NewInvalidWorkflowError("failed to load workflow", err)
	}

	var opts []expects.SchemaOption
	if title != "" {
		opts = append(opts, expects.WithSchemaTitle(title))
	}

	doc, err := expects.BuildTriggerInputsSchema(def.Entrypoint.Expects, opts...)
	if err != nil {
		return shared.NewInvalidWorkflowError("failed to build schema", err)
	}
	if doc == nil {
		if !shared.GetQuiet() {
			cmd.PrintErrf("workflow %q declares no trigger inputs\n", def.Name)
		}
		return nil
	}

	rendered, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	rendered = append(rendered, '\n')

	if outPath != "" {
		return os.WriteFile(outPath, rendered, 0o644)
	}
	cmd.Print(string(rendered))
	return nil
}
