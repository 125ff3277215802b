// File: token.go
// Title: Console Token Model
// Description: Lexical categories produced by the console lexer and the
//              immutable token value passed from lexer to parser.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

// Package token defines the tokens of the console command language.
package token

import "fmt"

// Type represents the lexical category of a token
type Type int

const (
	None           Type = iota // no token read yet
	Variable                   // $name
	String                     // bare word or quoted string
	Command                    // bare word naming a registered command
	EndOfInput                 // buffer exhausted
	EndOfStatement             // ;
)

// Separator terminates a statement
const Separator = ';'

// String returns a string representation of the token type
func (t Type) String() string {
	switch t {
	case None:
		return "NONE"
	case Variable:
		return "VARIABLE"
	case String:
		return "STRING"
	case Command:
		return "COMMAND"
	case EndOfInput:
		return "EOF"
	case EndOfStatement:
		return "EOS"
	default:
		return "UNKNOWN"
	}
}

// Token is a single lexical unit. Tokens are values and never change after
// the lexer produced them.
type Token struct {
	Type  Type
	Value string
}

// New creates a token
func New(typ Type, value string) Token {
	return Token{Type: typ, Value: value}
}

// IsEnd reports whether the token ends a statement or the input
func (t Token) IsEnd() bool {
	return t.Type == EndOfInput || t.Type == EndOfStatement
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q)", t.Type, t.Value)
}
