// File: registry.go
// Title: Console Command Registry
// Description: Holds command metadata in registration order together with
//              the variable store that doubles as the alias table. Lookups
//              that miss can report to the output sink and optionally
//              suggest the closest command name.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package registry

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/msto63/hcmd/foundation/console/output"
	mdwerror "github.com/msto63/hcmd/foundation/core/error"
	"github.com/msto63/hcmd/foundation/core/log"
	"github.com/msto63/hcmd/foundation/utils/stringx"
)

// maxSuggestDistance bounds edit distance for typo suggestions
const maxSuggestDistance = 2

// Options configures a registry
type Options struct {
	Logger  *log.Logger
	Output  output.Sink
	Suggest bool // print "did you mean" after unknown commands
}

// Registry owns commands and variables of one interpreter. It is not safe
// for concurrent mutation.
type Registry struct {
	commands  []Command
	index     map[string]int
	names     NameSet
	variables map[string]string
	out       output.Sink
	logger    *log.Logger
	suggest   bool
}

// New creates an empty registry
func New(opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = log.GetDefault()
	}
	if opts.Output == nil {
		opts.Output = output.Discard
	}

	return &Registry{
		index:     make(map[string]int),
		names:     newNameSet(nil),
		variables: make(map[string]string),
		out:       opts.Output,
		logger:    opts.Logger.WithField("component", "console-registry"),
		suggest:   opts.Suggest,
	}
}

// Output returns the sink the registry reports to
func (r *Registry) Output() output.Sink {
	return r.out
}

// SetOutput replaces the sink
func (r *Registry) SetOutput(s output.Sink) {
	if s == nil {
		s = output.Discard
	}
	r.out = s
}

// Register adds cmd. It returns false without error when a command with the
// same name exists; the first registration wins.
func (r *Registry) Register(cmd Command) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	if _, exists := r.index[cmd.Name]; exists {
		r.logger.Debug("command already registered", log.Fields{"name": cmd.Name})
		return false, nil
	}

	r.index[cmd.Name] = len(r.commands)
	r.commands = append(r.commands, cmd)
	r.names = newNameSet(r.commands)

	r.logger.Debug("command registered", log.Fields{
		"name": cmd.Name,
		"min":  cmd.MinArgs,
		"max":  cmd.MaxArgs,
	})
	return true, nil
}

// Lookup finds a command by name. On a miss with report set, the unknown
// command record is written to the sink.
func (r *Registry) Lookup(name string, report bool) (Command, bool) {
	if i, ok := r.index[name]; ok {
		return r.commands[i], true
	}

	if report {
		r.ReportUnknown(r.out, name)
	}
	return Command{}, false
}

// ReportUnknown writes the unknown command record for name to s, followed by
// a suggestion when suggestions are enabled
func (r *Registry) ReportUnknown(s output.Sink, name string) {
	output.UnknownCommand(s, name)
	if r.suggest {
		if hint := r.Suggest(name); hint != "" {
			output.Diagnostic(s, "did you mean \""+hint+"\"?")
		}
	}
}

// HasCommand reports whether name is registered
func (r *Registry) HasCommand(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Delete removes the command called name
func (r *Registry) Delete(name string) bool {
	i, ok := r.index[name]
	if !ok {
		return false
	}

	r.commands = append(r.commands[:i:i], r.commands[i+1:]...)
	r.index = make(map[string]int, len(r.commands))
	for j, c := range r.commands {
		r.index[c.Name] = j
	}
	r.names = newNameSet(r.commands)

	r.logger.Debug("command deleted", log.Fields{"name": name})
	return true
}

// Commands returns the commands in registration order
func (r *Registry) Commands() []Command {
	result := make([]Command, len(r.commands))
	copy(result, r.commands)
	return result
}

// Names returns the current snapshot of command names
func (r *Registry) Names() NameSet {
	return r.names
}

// Suggest returns the registered name closest to name, or "" when nothing
// is close
func (r *Registry) Suggest(name string) string {
	if name == "" || len(r.commands) == 0 {
		return ""
	}

	candidates := make([]string, len(r.commands))
	for i, c := range r.commands {
		candidates[i] = c.Name
	}

	if ranks := fuzzy.RankFindFold(name, candidates); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", maxSuggestDistance+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(c)); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}

// Variable returns the value stored under name
func (r *Registry) Variable(name string) (string, bool) {
	v, ok := r.variables[name]
	return v, ok
}

// SetVariable stores value under name, overwriting any previous value. Names
// that are empty, contain whitespace or collide with a command are rejected.
func (r *Registry) SetVariable(name, value string) error {
	if err := r.checkVariableName(name); err != nil {
		return err
	}

	r.variables[name] = value
	r.logger.Debug("variable set", log.Fields{"name": name, "value": stringx.Truncate(value, 80, "...")})
	return nil
}

func (r *Registry) checkVariableName(name string) error {
	var msg string
	switch {
	case name == "":
		msg = "variable name can not be empty."
	case stringx.ContainsSpace(name):
		msg = "variable name can not have whitespace."
	case r.HasCommand(name):
		msg = name + " is a command name, therefore this variable can not be created"
	default:
		return nil
	}

	return mdwerror.New(msg).
		WithCode(mdwerror.CodeInvalidVariableName).
		WithOperation("registry.SetVariable").
		WithDetail("name", name)
}

// UnsetVariable removes name and reports whether it existed
func (r *Registry) UnsetVariable(name string) bool {
	if _, ok := r.variables[name]; !ok {
		return false
	}
	delete(r.variables, name)
	r.logger.Debug("variable unset", log.Fields{"name": name})
	return true
}

// Variables returns all variables sorted by name
func (r *Registry) Variables() []Variable {
	result := make([]Variable, 0, len(r.variables))
	for name, value := range r.variables {
		result = append(result, Variable{Name: name, Value: value})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// VariableCount returns the number of stored variables
func (r *Registry) VariableCount() int {
	return len(r.variables)
}
