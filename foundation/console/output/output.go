// File: output.go
// Title: Console Output Sinks
// Description: The write-only text sink the interpreter and command handlers
//              print to, the record helpers shared by all callers and the
//              stock sink implementations.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

// Package output provides the text sinks console interpreters write to.
package output

import (
	"io"
	"strings"
	"sync"
)

// Sink receives user-visible text. Print writes text as is, Println appends
// a newline.
type Sink interface {
	Print(text string)
	Println(text string)
}

// DiagnosticSink is implemented by sinks that render diagnostics differently
// from regular output. text carries no trailing newline.
type DiagnosticSink interface {
	Sink
	Diagnostic(text string)
}

// UnknownCommand writes the unknown command record
func UnknownCommand(s Sink, name string) {
	Diagnostic(s, "unknown command \""+name+"\"")
}

// CommandUsage writes the usage record "<name> <usage>\n"
func CommandUsage(s Sink, name, usage string) {
	s.Print(name + " " + usage + "\n")
}

// Diagnostic writes text as a diagnostic line
func Diagnostic(s Sink, text string) {
	text = strings.TrimSuffix(text, "\n")
	if ds, ok := s.(DiagnosticSink); ok {
		ds.Diagnostic(text)
		return
	}
	s.Println(text)
}

// WriterSink writes to an io.Writer. Write errors are dropped; the sink is
// write-only by contract.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink creates a sink over w
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Print implements Sink
func (s *WriterSink) Print(text string) {
	_, _ = io.WriteString(s.w, text)
}

// Println implements Sink
func (s *WriterSink) Println(text string) {
	_, _ = io.WriteString(s.w, text+"\n")
}

// Buffer collects output in memory. It is safe for concurrent use so a host
// may drain it from another goroutine.
type Buffer struct {
	mu sync.Mutex
	sb strings.Builder
}

// NewBuffer creates an empty buffer sink
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Print implements Sink
func (b *Buffer) Print(text string) {
	b.mu.Lock()
	b.sb.WriteString(text)
	b.mu.Unlock()
}

// Println implements Sink
func (b *Buffer) Println(text string) {
	b.mu.Lock()
	b.sb.WriteString(text)
	b.sb.WriteByte('\n')
	b.mu.Unlock()
}

// String returns everything written so far
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.String()
}

// Drain returns everything written so far and empties the buffer
func (b *Buffer) Drain() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	text := b.sb.String()
	b.sb.Reset()
	return text
}

// Reset empties the buffer
func (b *Buffer) Reset() {
	b.mu.Lock()
	b.sb.Reset()
	b.mu.Unlock()
}

type discard struct{}

func (discard) Print(string)   {}
func (discard) Println(string) {}

// Discard drops all output
var Discard Sink = discard{}
