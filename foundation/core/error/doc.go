// Package error provides structured errors for the hcmd interpreter.
//
// Package: error
// Title: Structured Error Handling
// Description: Errors carry a code, a severity, an operation name and free
//              form details. Interpreter diagnostics are built from these
//              values and the same values are logged as structured data.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-17 v0.2.0: Reduced to the codes used by the console interpreter
//
// Usage:
//
//	err := mdwerror.New("minValue is higher than maxValue").
//		WithCode(mdwerror.CodeInvalidInput).
//		WithOperation("builtins.incrementvar").
//		WithDetail("min", min)
//
//	if mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
//		// ...
//	}
package error
