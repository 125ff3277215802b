package console

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/hcmd/foundation/console/dispatch"
	"github.com/msto63/hcmd/foundation/console/output"
	"github.com/msto63/hcmd/foundation/console/registry"
	mdwerror "github.com/msto63/hcmd/foundation/core/error"
	"github.com/msto63/hcmd/foundation/core/log"
)

func newInterpreter(opts Options) (*Interpreter, *output.Buffer) {
	buf := output.NewBuffer()
	opts.Output = buf
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	return New(opts), buf
}

func TestNewRegistersBuiltins(t *testing.T) {
	i, _ := newInterpreter(Options{})

	for _, name := range []string{"help", "echo", "alias", "variables", "variable", "incrementvar"} {
		_, ok := i.Registry().Lookup(name, false)
		assert.True(t, ok, name)
		_, ok = i.Table().Lookup(name)
		assert.True(t, ok, name)
	}

	_, err := uuid.Parse(i.SessionID())
	assert.NoError(t, err)
}

func TestSessionsAreIndependent(t *testing.T) {
	a, outA := newInterpreter(Options{})
	b, outB := newInterpreter(Options{})

	a.Parse("alias x 1")
	b.Parse("variable x")

	assert.Empty(t, outA.String())
	assert.Equal(t, "variable \"x\" does not exist\n", outB.String())
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}

func TestVariablesPersistAcrossParseCalls(t *testing.T) {
	i, out := newInterpreter(Options{})

	i.Parse("alias greet echo hi")
	i.Parse("greet")
	assert.Equal(t, "hi\n", out.String())
}

func TestStartupAliases(t *testing.T) {
	i, out := newInterpreter(Options{Aliases: map[string]string{
		"hello": "echo hello world",
		"echo":  "shadowing is rejected",
	}})

	i.Parse("hello")
	assert.Equal(t, "hello world\n", out.String())

	_, ok := i.Registry().Variable("echo")
	assert.False(t, ok)
}

func TestRegisterCustomCommand(t *testing.T) {
	i, out := newInterpreter(Options{})

	quit := false
	err := i.Register(registry.Command{Name: "quit", Usage: "- leaves the console"},
		dispatch.HandlerFunc(func(*dispatch.Context) error {
			quit = true
			return nil
		}))
	require.NoError(t, err)

	i.Parse("quit")
	assert.True(t, quit)

	err = i.Register(registry.Command{Name: "quit"}, dispatch.HandlerFunc(func(*dispatch.Context) error { return nil }))
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidCommand))

	err = i.Register(registry.Command{Name: "other"}, nil)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidCommand))

	assert.True(t, i.Unregister("quit"))
	i.Parse("quit")
	assert.Equal(t, "unknown command \"quit\"\n", out.String())
}

func TestExec(t *testing.T) {
	i, out := newInterpreter(Options{})
	i.Exec("alias n 0", "incrementvar n 0 5 2", "variable n")
	assert.Equal(t, "n = \"2\"\n", out.String())
}

func TestDiagnosticsPrintNamesVerbatim(t *testing.T) {
	i, out := newInterpreter(Options{})
	i.Parse(`C:\tmp; foo"bar; variable a\b`)

	want := "unknown command \"C:\\tmp\"\n" +
		"unknown command \"foo\"bar\"\n" +
		"variable \"a\\b\" does not exist\n"
	assert.Equal(t, want, out.String())
}

func TestSuggestOption(t *testing.T) {
	i, out := newInterpreter(Options{Suggest: true})
	i.Parse("ehco hi")
	assert.Equal(t, "unknown command \"ehco\"\ndid you mean \"echo\"?\n", out.String())
}

func TestMaxAliasContextsOption(t *testing.T) {
	i, out := newInterpreter(Options{MaxAliasContexts: 10})
	i.Parse("alias loop loop; loop")
	assert.Equal(t, "alias expansion aborted: limit of 10 nested contexts reached\n", out.String())
	assert.Equal(t, 10, i.LastStats().Contexts)
}

func TestSetOutput(t *testing.T) {
	i, first := newInterpreter(Options{})
	second := output.NewBuffer()

	i.SetOutput(second)
	i.Parse("echo moved; nope")

	assert.Empty(t, first.String())
	assert.Equal(t, "moved\nunknown command \"nope\"\n", second.String())
	assert.Same(t, second, i.Output())
}

func TestInitAndParse(t *testing.T) {
	reg, table := Init(Options{Logger: log.Discard()})
	out := output.NewBuffer()

	Parse(reg, table, out, "alias x hello; echo $x; echo $y")
	assert.Equal(t, "hello\n$y\n", out.String())
}
