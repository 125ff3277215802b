// File: parser.go
// Title: Console Statement Parser
// Description: Drives the lexer over console input, expands aliases, checks
//              argument counts and dispatches commands. Alias bodies are run
//              as sub-programs on an explicit stack of suspended lexers; the
//              number of contexts pushed during one Parse call is capped.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

// Package parser interprets console input against a command registry.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/msto63/hcmd/foundation/console/dispatch"
	"github.com/msto63/hcmd/foundation/console/lexer"
	"github.com/msto63/hcmd/foundation/console/output"
	"github.com/msto63/hcmd/foundation/console/registry"
	"github.com/msto63/hcmd/foundation/console/token"
	mdwerror "github.com/msto63/hcmd/foundation/core/error"
	"github.com/msto63/hcmd/foundation/core/log"
)

// DefaultMaxAliasContexts is the default number of alias contexts one Parse
// call may push
const DefaultMaxAliasContexts = 50000

// Options configures a parser
type Options struct {
	Logger *log.Logger

	// Output replaces the registry's sink for this parser only; the
	// registry keeps its own sink
	Output output.Sink

	// MaxAliasContexts caps alias expansions per Parse call;
	// 0 selects DefaultMaxAliasContexts
	MaxAliasContexts int
}

// frame is a lexer suspended while an alias body runs
type frame struct {
	lex   *lexer.Lexer
	alias string
}

// Parser interprets input against one registry and dispatch table. It is not
// safe for concurrent use.
type Parser struct {
	reg         *registry.Registry
	table       *dispatch.Table
	out         output.Sink
	override    output.Sink
	logger      *log.Logger
	maxContexts int

	// state of the running Parse call
	lex     *lexer.Lexer
	stack   []frame
	current token.Token
	pushed  int
	stats   Stats
}

// Stats summarises one Parse call
type Stats struct {
	Statements int // commands dispatched or rejected
	Dispatched int // handlers invoked
	Contexts   int // alias contexts pushed
	Aborted    int // alias expansions cut off by the context cap
}

// New creates a parser over reg and table
func New(reg *registry.Registry, table *dispatch.Table, opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = log.GetDefault()
	}
	if opts.MaxAliasContexts <= 0 {
		opts.MaxAliasContexts = DefaultMaxAliasContexts
	}

	return &Parser{
		reg:         reg,
		table:       table,
		out:         reg.Output(),
		override:    opts.Output,
		logger:      opts.Logger.WithField("component", "console-parser"),
		maxContexts: opts.MaxAliasContexts,
	}
}

// Parse runs every statement in input, including everything aliases expand
// to. Problems are reported to the output sink; Parse never fails.
func (p *Parser) Parse(input string) {
	p.out = p.reg.Output()
	if p.override != nil {
		p.out = p.override
	}
	p.lex = lexer.New(input)
	p.stack = p.stack[:0]
	p.current = token.Token{}
	p.pushed = 0
	p.stats = Stats{}

	for {
		p.advance()

		if p.current.Type == token.EndOfInput {
			p.checkUnterminated(p.lex)
			if !p.pop() {
				break
			}
			continue
		}

		if value, ok := p.aliasValue(p.current); ok {
			p.expand(p.current.Value, value)
			continue
		}

		switch p.current.Type {
		case token.Command:
			p.handleCommand()
		case token.String:
			p.stats.Statements++
			output.UnknownCommand(p.out, p.current.Value)
			if p.logger.IsLevelEnabled(log.LevelDebug) {
				p.logger.LogError(mdwerror.New("unknown command").
					WithCode(mdwerror.CodeUnknownCommand).
					WithOperation("parser.Parse").
					WithDetail("name", p.current.Value))
			}
			p.skipStatement()
		}
	}

	p.logger.Debug("input parsed", log.Fields{
		"statements": p.stats.Statements,
		"dispatched": p.stats.Dispatched,
		"contexts":   p.stats.Contexts,
		"aborted":    p.stats.Aborted,
	})
}

// LastStats returns statistics of the most recent Parse call
func (p *Parser) LastStats() Stats {
	return p.stats
}

func (p *Parser) advance() {
	p.current = p.lex.NextToken(p.reg.Names())
	if p.logger.IsLevelEnabled(log.LevelTrace) {
		p.logger.Trace("token", log.Fields{
			"type":  p.current.Type.String(),
			"value": p.current.Value,
			"depth": len(p.stack),
		})
	}
}

// skipStatement advances until the current token ends a statement
func (p *Parser) skipStatement() {
	for !p.current.IsEnd() {
		p.advance()
	}
}

// aliasValue returns the stored text when tok names a variable with a
// non-empty value. An empty variable does not expand; its name is handled
// like any other word.
func (p *Parser) aliasValue(tok token.Token) (string, bool) {
	switch tok.Type {
	case token.String, token.Variable, token.Command:
		v, ok := p.reg.Variable(tok.Value)
		return v, ok && v != ""
	default:
		return "", false
	}
}

// expand suspends the active lexer and starts one over the alias body. Past
// the context cap, every alias frame is dropped and the top-level lexer
// resumes after the word that started the expansion.
func (p *Parser) expand(name, body string) {
	if p.pushed >= p.maxContexts {
		p.abortExpansion(name)
		return
	}

	p.pushed++
	p.stats.Contexts++
	p.stack = append(p.stack, frame{lex: p.lex, alias: name})
	p.lex = lexer.New(body)
}

func (p *Parser) abortExpansion(name string) {
	p.stats.Aborted++
	if len(p.stack) > 0 {
		p.lex = p.stack[0].lex
		p.stack = p.stack[:0]
	}

	output.Diagnostic(p.out, fmt.Sprintf(
		"alias expansion aborted: limit of %d nested contexts reached", p.maxContexts))
	p.logger.LogError(mdwerror.New("alias expansion aborted").
		WithCode(mdwerror.CodeAliasRecursionExceeded).
		WithOperation("parser.expand").
		WithDetails(map[string]interface{}{
			"alias": name,
			"limit": p.maxContexts,
		}))
}

// pop resumes the most recently suspended lexer
func (p *Parser) pop() bool {
	n := len(p.stack)
	if n == 0 {
		return false
	}
	p.lex = p.stack[n-1].lex
	p.stack = p.stack[:n-1]
	return true
}

func (p *Parser) checkUnterminated(l *lexer.Lexer) {
	if n := l.Unterminated(); n > 0 {
		p.logger.Warn("unterminated quoted string", log.Fields{
			"code":  mdwerror.CodeUnterminatedString,
			"count": n,
			"input": l.Input(),
		})
	}
}

// handleCommand runs the statement starting at the current Command token and
// leaves the parser on the token that ended it
func (p *Parser) handleCommand() {
	p.stats.Statements++

	name := p.current.Value
	cmd, ok := p.reg.Lookup(name, false)
	if !ok {
		p.reg.ReportUnknown(p.out, name)
		p.skipStatement()
		return
	}

	args := p.collectArgs()
	if cmd.MaxArgs == 1 && len(args) > 1 {
		args = []string{strings.Join(args, " ")}
	}

	if !cmd.Accepts(len(args)) {
		p.rejectArity(cmd, len(args))
		return
	}

	p.stats.Dispatched++
	err := p.table.Invoke(&dispatch.Context{
		Registry: p.reg,
		Command:  cmd,
		Args:     args,
		Output:   p.out,
		Logger:   p.logger,
	})
	if err != nil {
		p.reportHandlerError(cmd, err)
	}
}

// collectArgs consumes argument tokens up to the end of the statement.
// $name is replaced by the value of name when it is defined.
func (p *Parser) collectArgs() []string {
	var args []string
	for {
		p.advance()
		if p.current.IsEnd() {
			return args
		}

		switch p.current.Type {
		case token.Variable:
			if value, ok := p.reg.Variable(strings.TrimPrefix(p.current.Value, "$")); ok {
				args = append(args, value)
			} else {
				args = append(args, p.current.Value)
			}
		default:
			args = append(args, p.current.Value)
		}
	}
}

func (p *Parser) rejectArity(cmd registry.Command, n int) {
	output.CommandUsage(p.out, cmd.Name, cmd.Usage)
	if n > 0 {
		output.Diagnostic(p.out, fmt.Sprintf(
			"arguments size must be within range [%d, %d], but size is %d", cmd.MinArgs, cmd.MaxArgs, n))
	}

	p.logger.LogError(mdwerror.New("argument count out of range").
		WithCode(mdwerror.CodeArityMismatch).
		WithOperation("parser.handleCommand").
		WithDetails(map[string]interface{}{
			"name":   cmd.Name,
			"min":    cmd.MinArgs,
			"max":    cmd.MaxArgs,
			"actual": n,
		}))
}

func (p *Parser) reportHandlerError(cmd registry.Command, err error) {
	var mdwErr *mdwerror.Error
	if errors.As(err, &mdwErr) {
		output.Diagnostic(p.out, mdwErr.Message())
	} else {
		output.Diagnostic(p.out, err.Error())
	}

	p.logger.LogError(mdwerror.Wrap(err, "command failed").WithDetail("command", cmd.Name))
}

// Parse runs input against reg and table, writing to out. It is a shortcut
// for New followed by Parse.
func Parse(reg *registry.Registry, table *dispatch.Table, out output.Sink, input string) {
	New(reg, table, Options{Output: out}).Parse(input)
}
