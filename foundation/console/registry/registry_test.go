package registry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/hcmd/foundation/console/output"
	mdwerror "github.com/msto63/hcmd/foundation/core/error"
	"github.com/msto63/hcmd/foundation/core/log"
)

func newTestRegistry(t *testing.T, suggest bool) (*Registry, *output.Buffer) {
	t.Helper()
	buf := output.NewBuffer()
	r := New(Options{Logger: log.Discard(), Output: buf, Suggest: suggest})
	for _, c := range []Command{
		{Name: "help", MinArgs: 0, MaxArgs: 1, Usage: "<command?>"},
		{Name: "echo", MinArgs: 1, MaxArgs: 1, Usage: "<message>"},
		{Name: "alias", MinArgs: 1, MaxArgs: MaxArity, Usage: "<var> <commands?>"},
	} {
		ok, err := r.Register(c)
		require.NoError(t, err)
		require.True(t, ok)
	}
	return r, buf
}

func TestRegisterFirstWins(t *testing.T) {
	r, _ := newTestRegistry(t, false)

	ok, err := r.Register(Command{Name: "echo", MinArgs: 0, MaxArgs: 5, Usage: "other"})
	require.NoError(t, err)
	assert.False(t, ok)

	cmd, found := r.Lookup("echo", false)
	require.True(t, found)
	assert.Equal(t, "<message>", cmd.Usage)
	assert.Equal(t, 1, cmd.MaxArgs)
}

func TestRegisterRejectsInvalidCommands(t *testing.T) {
	r, _ := newTestRegistry(t, false)

	tests := []struct {
		name string
		cmd  Command
	}{
		{"empty name", Command{Name: "", MaxArgs: 1}},
		{"name with space", Command{Name: "a b", MaxArgs: 1}},
		{"name with separator", Command{Name: "a;b", MaxArgs: 1}},
		{"negative min", Command{Name: "x", MinArgs: -1, MaxArgs: 1}},
		{"min above max", Command{Name: "x", MinArgs: 2, MaxArgs: 1}},
		{"max above limit", Command{Name: "x", MinArgs: 0, MaxArgs: MaxArity + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := r.Register(tt.cmd)
			assert.False(t, ok)
			assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidCommand))
		})
	}
}

func TestLookupReportsMissing(t *testing.T) {
	r, buf := newTestRegistry(t, false)

	_, found := r.Lookup("nope", false)
	assert.False(t, found)
	assert.Empty(t, buf.String())

	_, found = r.Lookup("nope", true)
	assert.False(t, found)
	assert.Equal(t, "unknown command \"nope\"\n", buf.String())
}

func TestLookupSuggestions(t *testing.T) {
	r, buf := newTestRegistry(t, true)

	r.Lookup("ehco", true)
	assert.Equal(t, "unknown command \"ehco\"\ndid you mean \"echo\"?\n", buf.Drain())

	r.Lookup("al", true)
	assert.Equal(t, "unknown command \"al\"\ndid you mean \"alias\"?\n", buf.Drain())

	r.Lookup("zzzzzz", true)
	assert.Equal(t, "unknown command \"zzzzzz\"\n", buf.Drain())
}

func TestSuggestOffByDefault(t *testing.T) {
	r, buf := newTestRegistry(t, false)
	r.Lookup("ehco", true)
	assert.NotContains(t, buf.String(), "did you mean")
}

func TestDeleteKeepsOrder(t *testing.T) {
	r, _ := newTestRegistry(t, false)

	assert.True(t, r.Delete("echo"))
	assert.False(t, r.Delete("echo"))

	var names []string
	for _, c := range r.Commands() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"help", "alias"}, names)

	cmd, ok := r.Lookup("alias", false)
	require.True(t, ok)
	assert.Equal(t, MaxArity, cmd.MaxArgs)
}

func TestNameSetIsSnapshot(t *testing.T) {
	r, _ := newTestRegistry(t, false)

	before := r.Names()
	_, err := r.Register(Command{Name: "quit"})
	require.NoError(t, err)

	assert.False(t, before.HasCommand("quit"))
	assert.True(t, r.Names().HasCommand("quit"))
	assert.Equal(t, 4, r.Names().Len())

	r.Delete("echo")
	assert.True(t, before.HasCommand("echo"))
	assert.False(t, r.Names().HasCommand("echo"))
}

func TestVariables(t *testing.T) {
	r, _ := newTestRegistry(t, false)

	require.NoError(t, r.SetVariable("b", "2"))
	require.NoError(t, r.SetVariable("a", "1"))
	require.NoError(t, r.SetVariable("b", "3"))

	v, ok := r.Variable("b")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	want := []Variable{{Name: "a", Value: "1"}, {Name: "b", Value: "3"}}
	if diff := cmp.Diff(want, r.Variables()); diff != "" {
		t.Errorf("Variables() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, r.VariableCount())

	assert.True(t, r.UnsetVariable("a"))
	assert.False(t, r.UnsetVariable("a"))
	_, ok = r.Variable("a")
	assert.False(t, ok)
}

func TestSetVariableRejectsBadNames(t *testing.T) {
	r, _ := newTestRegistry(t, false)

	tests := []struct {
		name    string
		varName string
		wantMsg string
	}{
		{"command collision", "echo", "echo is a command name, therefore this variable can not be created"},
		{"whitespace", "a b", "variable name can not have whitespace."},
		{"empty", "", "variable name can not be empty."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.SetVariable(tt.varName, "foo")
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidVariableName))
			_, ok := r.Variable(tt.varName)
			assert.False(t, ok)
		})
	}
}

func TestCommandAccepts(t *testing.T) {
	c := Command{Name: "x", MinArgs: 1, MaxArgs: 2}
	assert.False(t, c.Accepts(0))
	assert.True(t, c.Accepts(1))
	assert.True(t, c.Accepts(2))
	assert.False(t, c.Accepts(3))
}
