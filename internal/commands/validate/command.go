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

package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowspec/expects/internal/commands/shared"
	"github.com/flowspec/expects/pkg/expects"
	"github.com/flowspec/expects/pkg/workflow"
)

// NewCommand creates the validate command
func NewCommand() *cobra.Command {
	var payloadPath string

	cmd := &cobra.Command{
		Use:   "validate <workflow>",
		Short: "Validate a trigger payload against a workflow's input contract",
		Long: `Validate parses a workflow definition, resolves its declared trigger
inputs, and checks a payload against them. The payload is read as JSON
from --payload (use '-' for stdin); with no payload an empty object is
validated, which exercises required fields and defaults.

On success the coerced record is printed, with defaults filled and
undeclared keys dropped. On contract violations each offending field is
reported and the command exits non-zero.

See also: expects schema, expects sanitize`,
		Example: `  # Validate a payload file
  expects validate workflow.yaml --payload payload.json

  # Validate stdin with JSON output for parsing
  echo '{"severity": "high"}' | expects validate workflow.yaml --payload - --json

  # Check which fields a bare trigger would be missing
  expects validate workflow.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], payloadPath)
		},
	}

	cmd.Flags().StringVarP(&payloadPath, "payload", "p", "", "Path to a JSON payload file ('-' for stdin)")

	return cmd
}

func runValidate(cmd *cobra.Command, workflowPath, payloadPath string) error {
	useJSON := shared.GetJSON()

	def, err := workflow.LoadDefinition(workflowPath)
	if err != nil {
		if useJSON {
			shared.EmitJSONError(cmd.OutOrStdout(), "validate", []shared.JSONError{{
				Code:       shared.ErrorCodeInvalidYAML,
				Message:    err.Error(),
				Suggestion: "Check the workflow file path and YAML syntax",
			}})
			return &shared.ExitError{Code: shared.ExitInvalidWorkflow, Message: ""}
		}
		return shared.NewInvalidWorkflowError("failed to load workflow", err)
	}

	payload, err := readPayload(cmd, payloadPath)
	if err != nil {
		if useJSON {
			shared.EmitJSONError(cmd.OutOrStdout(), "validate", []shared.JSONError{{
				Code:       shared.ErrorCodeInvalidPayload,
				Message:    err.Error(),
				Suggestion: "Pass a JSON object via --payload or stdin",
			}})
			return &shared.ExitError{Code: shared.ExitInvalidPayload, Message: ""}
		}
		return shared.NewInvalidPayloadError("failed to read payload", err)
	}

	result, err := expects.ValidateTriggerInputs(def.Entrypoint.Expects, payload,
		expects.WithValidatorName(def.Name))
	if err != nil {
		// Declaration errors; the definition passed Validate so this is
		// unexpected, but surface it the same way.
		return shared.NewInvalidWorkflowError("failed to resolve trigger input contract", err)
	}

	if useJSON {
		type validateResponse struct {
			shared.JSONResponse
			Workflow string          `json:"workflow"`
			Result   *expects.Result `json:"result"`
		}
		resp := validateResponse{
			JSONResponse: shared.JSONResponse{
				Version: "1.0",
				Command: "validate",
				Success: result.OK(),
			},
			Workflow: def.Name,
			Result:   result,
		}
		if err := shared.EmitJSON(cmd.OutOrStdout(), resp); err != nil {
			return err
		}
		if !result.OK() {
			return &shared.ExitError{Code: shared.ExitValidationFailed, Message: ""}
		}
		return nil
	}

	if !result.OK() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", result.Message)
		for _, detail := range result.Details {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", detail.Path, detail.Message)
		}
		return &shared.ExitError{Code: shared.ExitValidationFailed, Message: "validation failed"}
	}

	if !shared.GetQuiet() {
		cmd.Printf("%s\n", result.Message)
		if result.ParsedInputs != nil {
			record, err := json.MarshalIndent(result.ParsedInputs, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(record))
		}
	}
	return nil
}

// readPayload decodes the payload source as a JSON value. A missing
// --payload flag means an empty payload.
func readPayload(cmd *cobra.Command, path string) (any, error) {
	if path == "" {
		return nil, nil
	}

	var reader io.Reader
	if path == "-" {
		reader = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		reader = f
	}

	var payload any
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("payload is not valid JSON: %w", err)
	}
	return payload, nil
}
