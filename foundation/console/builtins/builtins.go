// File: builtins.go
// Title: Built-in Console Commands
// Description: The commands every interpreter starts with: help, echo,
//              alias, variables, variable and incrementvar.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

// Package builtins provides the standard console commands.
package builtins

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/msto63/hcmd/foundation/console/dispatch"
	"github.com/msto63/hcmd/foundation/console/output"
	"github.com/msto63/hcmd/foundation/console/registry"
	mdwerror "github.com/msto63/hcmd/foundation/core/error"
)

// Builtin pairs command metadata with its handler
type Builtin struct {
	Command registry.Command
	Handler dispatch.Handler
}

// All returns the built-in commands in registration order
func All() []Builtin {
	return []Builtin{
		{
			Command: registry.Command{Name: "help", MinArgs: 0, MaxArgs: 1,
				Usage: "<command?> - shows a list of commands usages or the usage of a specific command"},
			Handler: dispatch.HandlerFunc(help),
		},
		{
			Command: registry.Command{Name: "echo", MinArgs: 1, MaxArgs: 1,
				Usage: "<message> - echoes a message to the console"},
			Handler: dispatch.HandlerFunc(echo),
		},
		{
			Command: registry.Command{Name: "alias", MinArgs: 1, MaxArgs: registry.MaxArity,
				Usage: "<var> <commands?> - creates/deletes variables"},
			Handler: dispatch.HandlerFunc(alias),
		},
		{
			Command: registry.Command{Name: "variables", MinArgs: 0, MaxArgs: 0,
				Usage: "- list of variables"},
			Handler: dispatch.HandlerFunc(variables),
		},
		{
			Command: registry.Command{Name: "variable", MinArgs: 1, MaxArgs: 1,
				Usage: "- shows variable value"},
			Handler: dispatch.HandlerFunc(variable),
		},
		{
			Command: registry.Command{Name: "incrementvar", MinArgs: 4, MaxArgs: 4,
				Usage: "<var> <minValue> <maxValue> <delta> - increments the value of a variable"},
			Handler: dispatch.HandlerFunc(incrementVar),
		},
	}
}

// Register adds every built-in to reg and binds its handler in table. A
// built-in whose name is already registered keeps the existing entry.
func Register(reg *registry.Registry, table *dispatch.Table) error {
	for _, b := range All() {
		added, err := reg.Register(b.Command)
		if err != nil {
			return mdwerror.Wrap(err, "register built-in "+b.Command.Name)
		}
		if added {
			table.Register(b.Command.Name, b.Handler)
		}
	}
	return nil
}

func help(ctx *dispatch.Context) error {
	if len(ctx.Args) == 1 {
		cmd, ok := ctx.Registry.Lookup(ctx.Args[0], false)
		if !ok {
			ctx.Registry.ReportUnknown(ctx.Output, ctx.Args[0])
			return nil
		}
		output.CommandUsage(ctx.Output, cmd.Name, cmd.Usage)
		return nil
	}

	for _, cmd := range ctx.Registry.Commands() {
		output.CommandUsage(ctx.Output, cmd.Name, cmd.Usage)
	}
	return nil
}

func echo(ctx *dispatch.Context) error {
	ctx.Println(strings.Join(ctx.Args, " "))
	return nil
}

// alias with one argument deletes the variable; otherwise the remaining
// arguments joined by spaces become its value
func alias(ctx *dispatch.Context) error {
	name := ctx.Arg(0)
	if len(ctx.Args) == 1 {
		ctx.Registry.UnsetVariable(name)
		return nil
	}
	return ctx.Registry.SetVariable(name, strings.Join(ctx.Args[1:], " "))
}

func variables(ctx *dispatch.Context) error {
	vars := ctx.Registry.Variables()

	var sb strings.Builder
	fmt.Fprintf(&sb, "amount of variables: %d\n", len(vars))
	for _, v := range vars {
		fmt.Fprintf(&sb, "%s = \"%s\"\n", v.Name, v.Value)
	}
	ctx.Print(sb.String())
	return nil
}

func variable(ctx *dispatch.Context) error {
	name := ctx.Arg(0)
	value, ok := ctx.Registry.Variable(name)
	if !ok {
		return mdwerror.Newf("variable \"%s\" does not exist", name).
			WithCode(mdwerror.CodeUnknownVariable).
			WithOperation("builtins.variable").
			WithDetail("name", name)
	}

	ctx.Println(fmt.Sprintf("%s = \"%s\"", name, value))
	return nil
}

// incrementVar adds delta to a numeric variable. Values leaving
// [min, max] wrap to the opposite bound.
func incrementVar(ctx *dispatch.Context) error {
	name := ctx.Arg(0)

	minValue, err := parseNumber("minValue", ctx.Arg(1))
	if err != nil {
		return err
	}
	maxValue, err := parseNumber("maxValue", ctx.Arg(2))
	if err != nil {
		return err
	}
	delta, err := parseNumber("delta", ctx.Arg(3))
	if err != nil {
		return err
	}

	if minValue > maxValue {
		return mdwerror.New("minValue is higher than maxValue").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("builtins.incrementvar").
			WithDetails(map[string]interface{}{"min": minValue, "max": maxValue})
	}

	current, ok := ctx.Registry.Variable(name)
	if !ok {
		return mdwerror.Newf("unknown variable \"%s\"", name).
			WithCode(mdwerror.CodeUnknownVariable).
			WithOperation("builtins.incrementvar").
			WithDetail("name", name)
	}

	value, err := parseNumber(name, current)
	if err != nil {
		return err
	}

	value += delta
	if value > maxValue {
		value = minValue
	} else if value < minValue {
		value = maxValue
	}

	return ctx.Registry.SetVariable(name, strconv.FormatFloat(value, 'f', -1, 64))
}

func parseNumber(what, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, mdwerror.Newf("%s is not a number: \"%s\"", what, text).
			WithCode(mdwerror.CodeMalformedNumeric).
			WithOperation("builtins.incrementvar").
			WithDetail("value", text)
	}
	return v, nil
}
