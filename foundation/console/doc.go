// Package console provides an embeddable command interpreter.
//
// Package: console
// Title: Console Command Interpreter
// Description: Interprets lines of console input made of commands, plain or
//              quoted arguments, $variable references and ; separators.
//              Variables double as aliases: a bare word naming a variable is
//              replaced by the variable's text, which is interpreted as
//              commands in turn. Alias expansion is bounded per input.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation
//
// Subpackages:
//   - token:    token kinds and values
//   - lexer:    context sensitive tokenizer
//   - registry: command metadata and the variable store
//   - dispatch: handler table and invocation context
//   - parser:   statement loop and alias expansion
//   - output:   text sinks
//   - builtins: help, echo, alias, variables, variable, incrementvar
//
// Usage:
//
//	interp := console.New(console.Options{Output: output.NewWriterSink(os.Stdout)})
//	interp.Register(registry.Command{Name: "quit", Usage: "- leaves the console"},
//		dispatch.HandlerFunc(func(ctx *dispatch.Context) error { ... }))
//	interp.Parse(`alias greet echo hello; greet`)
package console
