// Package log provides structured logging for the hcmd interpreter and its
// hosts.
//
// Package: log
// Title: Structured Logging
// Description: Leveled logger with persistent fields, session tagging and
//              JSON, text and colored console formats. The interpreter logs
//              token streams at trace level and recoverable input problems
//              at warn level; user-facing diagnostics go to the output sink,
//              never to the log.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-17 v0.2.0: Reduced to what the console hosts need
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatJSON})
//	logger = logger.WithField("component", "parser")
//	logger.Debug("statement parsed", log.Fields{"command": "echo", "args": 1})
package log
