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

package errors

import "fmt"

// ValidationError represents user input validation failures.
// Use this for invalid user input, malformed data, or constraint violations.
type ValidationError struct {
	// Field identifies which input field failed validation
	Field string

	// Message is the human-readable error description
	Message string

	// Suggestion provides actionable guidance for fixing the error
	Suggestion string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// DescriptorError represents a malformed expected-field descriptor.
// Use this when a declared field's shape is wrong before any type
// resolution happens (e.g. a missing type string).
type DescriptorError struct {
	// Field is the name of the declared field
	Field string

	// Reason explains what is wrong with the descriptor
	Reason string

	// Cause is the underlying error (if any)
	Cause error
}

// Error implements the error interface.
func (e *DescriptorError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid field descriptor %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid field descriptor: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *DescriptorError) Unwrap() error {
	return e.Cause
}

// TypeParseError represents a type expression that cannot be resolved
// to a concrete type.
type TypeParseError struct {
	// Field is the name of the declared field the type belongs to
	Field string

	// TypeString is the offending type expression
	TypeString string

	// Reason explains why parsing failed
	Reason string
}

// Error implements the error interface.
func (e *TypeParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("cannot parse type %q for field %q: %s", e.TypeString, e.Field, e.Reason)
	}
	return fmt.Sprintf("cannot parse type %q: %s", e.TypeString, e.Reason)
}

// ConfigError represents configuration problems.
// Use this for configuration file errors, missing settings, or invalid config values.
type ConfigError struct {
	// Key is the configuration key that has the problem (e.g., "workflow", "payload")
	Key string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., file read error, parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}
