// Package errors provides the structured error type fetchkit hands to
// callers that need to render a failure: a machine-readable code, a
// human-readable message, the HTTP status it came from and whether trying
// again may help.
package errors
