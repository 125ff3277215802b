// File: color.go
// Title: Colored Console Sink
// Description: Terminal sink that prints diagnostics in red through
//              fatih/color and leaves regular output untouched.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package output

import (
	"io"

	"github.com/fatih/color"
)

// ColorSink writes to an io.Writer and prints diagnostics in red. Colors
// follow fatih/color detection, so redirected output stays plain.
type ColorSink struct {
	*WriterSink
	diag *color.Color
}

// NewColorSink creates a color aware sink over w
func NewColorSink(w io.Writer) *ColorSink {
	return &ColorSink{
		WriterSink: NewWriterSink(w),
		diag:       color.New(color.FgRed),
	}
}

// DisableColor forces plain output
func (s *ColorSink) DisableColor() {
	s.diag.DisableColor()
}

// Diagnostic implements DiagnosticSink
func (s *ColorSink) Diagnostic(text string) {
	s.Println(s.diag.Sprint(text))
}
