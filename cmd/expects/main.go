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

package main

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/flowspec/expects/internal/cli"
	"github.com/flowspec/expects/internal/commands/sanitize"
	"github.com/flowspec/expects/internal/commands/schema"
	"github.com/flowspec/expects/internal/commands/validate"
	versioncmd "github.com/flowspec/expects/internal/commands/version"
	"github.com/flowspec/expects/internal/log"
)

// Version information (injected via ldflags at build time)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	// Each invocation carries a correlation ID so sanitizer warnings from
	// one run can be grouped in aggregated logs.
	logger := log.New(log.FromEnv())
	logger = log.WithCorrelationID(logger, uuid.NewString())
	slog.SetDefault(logger)

	cli.SetVersion(version, commit, buildDate)

	rootCmd := cli.NewRootCommand()
	rootCmd.AddCommand(validate.NewCommand())
	rootCmd.AddCommand(schema.NewCommand())
	rootCmd.AddCommand(sanitize.NewCommand())
	rootCmd.AddCommand(versioncmd.NewCommand())

	if err := rootCmd.Execute(); err != nil {
		cli.HandleExitError(err)
	}
}
