// File: console.go
// Title: Console Interpreter Facade
// Description: Wires registry, dispatch table, parser and built-in commands
//              into one Interpreter. Each interpreter has its own session
//              id, output sink and variable store.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package console

import (
	"sort"

	"github.com/google/uuid"

	"github.com/msto63/hcmd/foundation/console/builtins"
	"github.com/msto63/hcmd/foundation/console/dispatch"
	"github.com/msto63/hcmd/foundation/console/output"
	"github.com/msto63/hcmd/foundation/console/parser"
	"github.com/msto63/hcmd/foundation/console/registry"
	mdwerror "github.com/msto63/hcmd/foundation/core/error"
	"github.com/msto63/hcmd/foundation/core/log"
)

// Options configures an Interpreter
type Options struct {
	Logger           *log.Logger
	Output           output.Sink
	MaxAliasContexts int
	Suggest          bool

	// Aliases are stored as variables at startup
	Aliases map[string]string
}

// Interpreter is a console command interpreter with the built-in commands
// registered. It is not safe for concurrent use; hosts own one interpreter
// per session.
type Interpreter struct {
	reg       *registry.Registry
	table     *dispatch.Table
	parser    *parser.Parser
	sessionID string
	logger    *log.Logger
}

// New creates an interpreter. Startup aliases that cannot be stored are
// logged and skipped.
func New(opts Options) *Interpreter {
	if opts.Logger == nil {
		opts.Logger = log.GetDefault()
	}
	if opts.Output == nil {
		opts.Output = output.Discard
	}

	sessionID := uuid.NewString()
	logger := opts.Logger.WithSession(sessionID)

	reg := registry.New(registry.Options{
		Logger:  logger,
		Output:  opts.Output,
		Suggest: opts.Suggest,
	})
	table := dispatch.NewTable()
	if err := builtins.Register(reg, table); err != nil {
		// built-in metadata is static; failing here is a programming error
		panic(err)
	}

	i := &Interpreter{
		reg:   reg,
		table: table,
		parser: parser.New(reg, table, parser.Options{
			Logger:           logger,
			MaxAliasContexts: opts.MaxAliasContexts,
		}),
		sessionID: sessionID,
		logger:    logger.WithField("component", "console"),
	}

	i.applyAliases(opts.Aliases)

	i.logger.Info("interpreter created", log.Fields{
		"commands": len(reg.Commands()),
		"aliases":  reg.VariableCount(),
	})
	return i
}

func (i *Interpreter) applyAliases(aliases map[string]string) {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := i.reg.SetVariable(name, aliases[name]); err != nil {
			i.logger.LogError(mdwerror.Wrap(err, "startup alias skipped"))
		}
	}
}

// Register adds a command and binds its handler
func (i *Interpreter) Register(cmd registry.Command, h dispatch.Handler) error {
	if h == nil {
		return mdwerror.New("handler must not be nil").
			WithCode(mdwerror.CodeInvalidCommand).
			WithOperation("console.Register").
			WithDetail("name", cmd.Name)
	}

	added, err := i.reg.Register(cmd)
	if err != nil {
		return err
	}
	if !added {
		return mdwerror.Newf("command %q already registered", cmd.Name).
			WithCode(mdwerror.CodeInvalidCommand).
			WithOperation("console.Register").
			WithDetail("name", cmd.Name)
	}

	i.table.Register(cmd.Name, h)
	return nil
}

// Unregister removes a command and its handler
func (i *Interpreter) Unregister(name string) bool {
	i.table.Remove(name)
	return i.reg.Delete(name)
}

// Parse interprets input, writing to the interpreter's sink
func (i *Interpreter) Parse(input string) {
	i.parser.Parse(input)
}

// Exec parses each line in order
func (i *Interpreter) Exec(lines ...string) {
	for _, line := range lines {
		i.parser.Parse(line)
	}
}

// SetOutput redirects all further output
func (i *Interpreter) SetOutput(s output.Sink) {
	i.reg.SetOutput(s)
}

// Output returns the current sink
func (i *Interpreter) Output() output.Sink {
	return i.reg.Output()
}

// Registry returns the interpreter's registry
func (i *Interpreter) Registry() *registry.Registry {
	return i.reg
}

// Table returns the interpreter's dispatch table
func (i *Interpreter) Table() *dispatch.Table {
	return i.table
}

// SessionID returns the id attached to every log entry of this interpreter
func (i *Interpreter) SessionID() string {
	return i.sessionID
}

// LastStats returns statistics of the most recent Parse call
func (i *Interpreter) LastStats() parser.Stats {
	return i.parser.LastStats()
}

// Init returns a registry and dispatch table populated with the built-in
// commands, for callers that drive the parser directly
func Init(opts Options) (*registry.Registry, *dispatch.Table) {
	i := New(opts)
	return i.reg, i.table
}

// Parse interprets input against reg and table, writing to out
func Parse(reg *registry.Registry, table *dispatch.Table, out output.Sink, input string) {
	parser.Parse(reg, table, out, input)
}
