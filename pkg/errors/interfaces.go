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

// UserVisibleError defines errors that should be displayed to end users
// with user-friendly messages and actionable suggestions.
type UserVisibleError interface {
	error

	// IsUserVisible returns true if this error should be shown to users.
	// Internal errors or debugging details should return false.
	IsUserVisible() bool

	// Suggestion returns actionable guidance for resolving the error.
	// Returns empty string if no suggestion is available.
	Suggestion() string
}

// IsUserVisible implements UserVisibleError.
func (e *TypeParseError) IsUserVisible() bool { return true }

// Suggestion implements UserVisibleError.
func (e *TypeParseError) Suggestion() string {
	return "use a supported type such as str, int, float, bool, datetime, duration, list[...], enum[...] or \"T | None\""
}

// IsUserVisible implements UserVisibleError.
func (e *DescriptorError) IsUserVisible() bool { return true }

// Suggestion implements UserVisibleError.
func (e *DescriptorError) Suggestion() string {
	return "give each expected field a non-empty name and type"
}
