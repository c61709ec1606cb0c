// Package expects implements the trigger input contract of a workflow: a
// named set of typed field declarations, runtime payload validation against
// those declarations, defensive sanitization of hand-authored declarations
// before they are persisted, and export of the declarations as a standalone
// JSON Schema document.
//
// The three operations share one source of truth for what a legal
// declaration is:
//
//	raw expects -> Sanitize -> canonical expects -> ValidateTriggerInputs
//	                                             -> BuildTriggerInputsSchema
//
// All operations are pure functions over their inputs; each call builds its
// own validator, so concurrent calls need no coordination.
package expects
