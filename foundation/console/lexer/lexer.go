// File: lexer.go
// Title: Console Lexical Analyzer
// Description: Converts console input into a lazy stream of tokens. Lexing
//              is context sensitive: a bare word becomes a Command token
//              only when the caller's view of registered command names
//              contains it and the previous token was not a Command.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

// Package lexer implements the tokenizer of the console command language.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/msto63/hcmd/foundation/console/token"
)

// CommandSet is the read-only view of command names the lexer consults to
// classify bare words
type CommandSet interface {
	HasCommand(name string) bool
}

// Lexer tokenizes a single input buffer. It is not safe for concurrent use.
type Lexer struct {
	input        string     // Input buffer
	position     int        // Byte offset of the next unread rune
	last         token.Type // Type of the previously emitted token
	unterminated int        // Quoted strings that ran to end of buffer
}

// New creates a lexer positioned at the start of input
func New(input string) *Lexer {
	return &Lexer{input: input, last: token.None}
}

// Position returns the byte offset of the next unread rune. It never
// decreases and never exceeds the input length.
func (l *Lexer) Position() int {
	return l.position
}

// Input returns the buffer being tokenized
func (l *Lexer) Input() string {
	return l.input
}

// Unterminated returns how many quoted strings reached the end of the buffer
// without a closing quote
func (l *Lexer) Unterminated() int {
	return l.unterminated
}

// NextToken returns the next token. Once the buffer is exhausted every call
// returns an EndOfInput token.
func (l *Lexer) NextToken(names CommandSet) token.Token {
	tok := l.scan(names)
	l.last = tok.Type
	return tok
}

func (l *Lexer) scan(names CommandSet) token.Token {
	l.skipWhitespace()

	if l.atEnd() {
		return token.New(token.EndOfInput, "")
	}

	switch r, size := l.peek(); r {
	case token.Separator:
		l.position += size
		return token.New(token.EndOfStatement, string(token.Separator))
	case '"':
		l.position += size
		return token.New(token.String, l.readQuoted())
	}

	word := l.readWord()
	switch {
	case l.last != token.Command && names != nil && names.HasCommand(word):
		return token.New(token.Command, word)
	case strings.HasPrefix(word, "$"):
		return token.New(token.Variable, word)
	default:
		return token.New(token.String, word)
	}
}

// readQuoted consumes a quoted string body; the opening quote is already
// consumed. \" yields a quote, any other backslash is kept as is.
func (l *Lexer) readQuoted() string {
	var sb strings.Builder

	for !l.atEnd() {
		r, size := l.peek()
		l.position += size

		switch r {
		case '"':
			return sb.String()
		case '\\':
			if next, nsize := l.peek(); !l.atEnd() && next == '"' {
				l.position += nsize
				sb.WriteRune('"')
				continue
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}

	l.unterminated++
	return sb.String()
}

// readWord consumes a maximal run of runes that are neither whitespace nor
// the statement separator
func (l *Lexer) readWord() string {
	start := l.position
	for !l.atEnd() {
		r, size := l.peek()
		if unicode.IsSpace(r) || r == token.Separator {
			break
		}
		l.position += size
	}
	return l.input[start:l.position]
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		r, size := l.peek()
		if !unicode.IsSpace(r) {
			return
		}
		l.position += size
	}
}

func (l *Lexer) peek() (rune, int) {
	return utf8.DecodeRuneInString(l.input[l.position:])
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// Tokenize returns every token of input up to and including the final
// EndOfInput token
func Tokenize(input string, names CommandSet) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken(names)
		tokens = append(tokens, tok)
		if tok.Type == token.EndOfInput {
			return tokens
		}
	}
}
