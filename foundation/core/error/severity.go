// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. The logger maps severities
//              to log levels when an error is logged with LogError.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-17 v0.2.0: Severity mapping for interpreter codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow covers user input mistakes: unknown commands, bad arity
	SeverityLow Severity = iota

	// SeverityMedium covers recoverable runtime problems
	SeverityMedium

	// SeverityHigh covers failures of a host component (config, transport)
	SeverityHigh

	// SeverityCritical makes the process unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines the default severity for a code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeConfigError, CodeInvalidConfig, CodeConnectionFailed:
		return SeverityHigh
	case CodeAliasRecursionExceeded, CodeUnterminatedString, CodeInvalidMessage:
		return SeverityMedium
	case CodeUnknownCommand, CodeUnknownVariable, CodeArityMismatch,
		CodeInvalidVariableName, CodeMalformedNumeric, CodeInvalidCommand,
		CodeNotFound, CodeInvalidInput:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
