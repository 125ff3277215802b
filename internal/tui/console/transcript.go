// ============================================================================
// hcmd - embeddable console command interpreter
// ============================================================================
//
// Package:     console
// Description: Output sink that keeps the console transcript for rendering
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package console

import (
	"strings"
)

// maxTranscriptLines bounds the scrollback
const maxTranscriptLines = 2000

type lineKind int

const (
	lineOutput lineKind = iota
	lineDiagnostic
	lineInput
)

type line struct {
	kind lineKind
	text string
}

// transcript is the interpreter's sink inside the TUI. Text without a
// trailing newline stays pending until the line is completed.
type transcript struct {
	lines   []line
	pending strings.Builder
}

func newTranscript() *transcript {
	return &transcript{}
}

// Print implements output.Sink
func (t *transcript) Print(text string) {
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			t.pending.WriteString(text)
			return
		}
		t.pending.WriteString(text[:i])
		t.push(line{kind: lineOutput, text: t.pending.String()})
		t.pending.Reset()
		text = text[i+1:]
	}
}

// Println implements output.Sink
func (t *transcript) Println(text string) {
	t.Print(text + "\n")
}

// Diagnostic implements output.DiagnosticSink
func (t *transcript) Diagnostic(text string) {
	t.flush()
	t.push(line{kind: lineDiagnostic, text: text})
}

func (t *transcript) input(prompt, text string) {
	t.flush()
	t.push(line{kind: lineInput, text: prompt + text})
}

func (t *transcript) clear() {
	t.lines = nil
	t.pending.Reset()
}

func (t *transcript) flush() {
	if t.pending.Len() > 0 {
		t.push(line{kind: lineOutput, text: t.pending.String()})
		t.pending.Reset()
	}
}

func (t *transcript) push(l line) {
	t.lines = append(t.lines, l)
	if over := len(t.lines) - maxTranscriptLines; over > 0 {
		t.lines = append(t.lines[:0], t.lines[over:]...)
	}
}

// render returns the styled transcript including pending text
func (t *transcript) render() string {
	var b strings.Builder
	for i, l := range t.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch l.kind {
		case lineDiagnostic:
			b.WriteString(DiagnosticStyle.Render(l.text))
		case lineInput:
			b.WriteString(InputEchoStyle.Render(l.text))
		default:
			b.WriteString(OutputStyle.Render(l.text))
		}
	}
	if t.pending.Len() > 0 {
		if len(t.lines) > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(OutputStyle.Render(t.pending.String()))
	}
	return b.String()
}

// plain returns the transcript without styling
func (t *transcript) plain() string {
	texts := make([]string, 0, len(t.lines)+1)
	for _, l := range t.lines {
		texts = append(texts, l.text)
	}
	if t.pending.Len() > 0 {
		texts = append(texts, t.pending.String())
	}
	return strings.Join(texts, "\n")
}
