// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used by the console interpreter and
//              its hosts. Every diagnostic the parser or a built-in command
//              reports carries one of these codes.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-17 v0.2.0: Reduced to the console interpreter taxonomy

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Interpreter codes
	CodeUnknownCommand         Code = "UNKNOWN_COMMAND"
	CodeUnknownVariable        Code = "UNKNOWN_VARIABLE"
	CodeArityMismatch          Code = "ARITY_MISMATCH"
	CodeInvalidVariableName    Code = "INVALID_VARIABLE_NAME"
	CodeMalformedNumeric       Code = "MALFORMED_NUMERIC"
	CodeAliasRecursionExceeded Code = "ALIAS_RECURSION_EXCEEDED"
	CodeInvalidCommand         Code = "INVALID_COMMAND"
	CodeUnterminatedString     Code = "UNTERMINATED_STRING"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Remote console
	CodeConnectionFailed Code = "CONNECTION_FAILED"
	CodeInvalidMessage   Code = "INVALID_MESSAGE"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsInterpreterCode reports whether the code belongs to the parser or the
// built-in commands. Those errors are surfaced on the output sink and never
// abort a parse.
func (c Code) IsInterpreterCode() bool {
	switch c {
	case CodeUnknownCommand, CodeUnknownVariable, CodeArityMismatch,
		CodeInvalidVariableName, CodeMalformedNumeric, CodeAliasRecursionExceeded,
		CodeInvalidCommand, CodeUnterminatedString:
		return true
	default:
		return false
	}
}
