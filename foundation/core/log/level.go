// File: level.go
// Title: Log Level Definitions
// Description: Severity levels of the interpreter log and their names. The
//              long name appears in JSON output and configuration files, the
//              three letter tag in text and console lines.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard log levels
// - 2026-10-17 v0.2.0: Removed audit level, colors moved to the console formatter
// - 2026-10-17 v0.3.0: Level names kept in one table shared by parsing and printing

package log

import (
	"strings"
)

// Level is the severity of a log entry. Higher values are more severe.
type Level int

// Levels from most verbose to most severe. Token streams are logged at
// trace, per statement parser summaries at debug and rejected input at warn
// or error.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// levelNames is indexed by Level
var levelNames = [...]struct {
	long, tag string
	aliases   []string
}{
	LevelTrace: {"trace", "TRC", nil},
	LevelDebug: {"debug", "DBG", nil},
	LevelInfo:  {"info", "INF", []string{"information"}},
	LevelWarn:  {"warn", "WRN", []string{"warning"}},
	LevelError: {"error", "ERR", nil},
	LevelFatal: {"fatal", "FTL", nil},
}

// levelsByName accepts the long name, the tag and any alias, lower case
var levelsByName = func() map[string]Level {
	m := make(map[string]Level)
	for i, n := range levelNames {
		m[n.long] = Level(i)
		m[strings.ToLower(n.tag)] = Level(i)
		for _, a := range n.aliases {
			m[a] = Level(i)
		}
	}
	return m
}()

func (l Level) known() bool {
	return l >= LevelTrace && int(l) < len(levelNames)
}

// String returns the lower case level name, "unknown" out of range
func (l Level) String() string {
	if !l.known() {
		return "unknown"
	}
	return levelNames[l].long
}

// ShortString returns the three letter tag used in text lines
func (l Level) ShortString() string {
	if !l.known() {
		return "???"
	}
	return levelNames[l].tag
}

// ShouldLog reports whether an entry at l passes a logger set to minLevel
func (l Level) ShouldLog(minLevel Level) bool {
	return l >= minLevel
}

// ParseLevel maps a configured level name to a Level. Case and surrounding
// whitespace are ignored. Unknown names yield LevelInfo and a *ParseError.
func ParseLevel(level string) (Level, error) {
	if l, ok := levelsByName[strings.ToLower(strings.TrimSpace(level))]; ok {
		return l, nil
	}
	return LevelInfo, &ParseError{Input: level, Type: "level"}
}

// ParseError reports a log setting that could not be parsed
type ParseError struct {
	Input string
	Type  string
}

func (e *ParseError) Error() string {
	return "invalid " + e.Type + ": " + e.Input
}
