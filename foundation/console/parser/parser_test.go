package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/hcmd/foundation/console/dispatch"
	"github.com/msto63/hcmd/foundation/console/output"
	"github.com/msto63/hcmd/foundation/console/registry"
	"github.com/msto63/hcmd/foundation/core/log"
)

type call struct {
	Name string
	Args []string
}

type harness struct {
	reg   *registry.Registry
	table *dispatch.Table
	out   *output.Buffer
	calls []call
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		out:   output.NewBuffer(),
		table: dispatch.NewTable(),
	}
	h.reg = registry.New(registry.Options{Logger: log.Discard(), Output: h.out})

	h.add(t, registry.Command{Name: "echo", MinArgs: 1, MaxArgs: 1, Usage: "<message>"}, func(ctx *dispatch.Context) error {
		ctx.Println(ctx.Arg(0))
		return nil
	})
	h.add(t, registry.Command{Name: "pair", MinArgs: 2, MaxArgs: 2, Usage: "<a> <b>"}, nil)
	h.add(t, registry.Command{Name: "list", MinArgs: 0, MaxArgs: 8, Usage: "<items...>"}, nil)
	h.add(t, registry.Command{Name: "alias", MinArgs: 1, MaxArgs: registry.MaxArity, Usage: "<var> <value?>"}, func(ctx *dispatch.Context) error {
		if len(ctx.Args) == 1 {
			ctx.Registry.UnsetVariable(ctx.Args[0])
			return nil
		}
		return ctx.Registry.SetVariable(ctx.Args[0], strings.Join(ctx.Args[1:], " "))
	})
	return h
}

// add registers cmd with a handler that records its invocation before
// running fn
func (h *harness) add(t *testing.T, cmd registry.Command, fn func(*dispatch.Context) error) {
	t.Helper()
	ok, err := h.reg.Register(cmd)
	require.NoError(t, err)
	require.True(t, ok)

	h.table.Register(cmd.Name, dispatch.HandlerFunc(func(ctx *dispatch.Context) error {
		h.calls = append(h.calls, call{Name: ctx.Command.Name, Args: append([]string(nil), ctx.Args...)})
		if fn != nil {
			return fn(ctx)
		}
		return nil
	}))
}

func (h *harness) parse(input string, opts ...Options) *Parser {
	o := Options{Logger: log.Discard()}
	if len(opts) > 0 {
		o = opts[0]
	}
	p := New(h.reg, h.table, o)
	p.Parse(input)
	return p
}

func (h *harness) reset() {
	h.calls = nil
	h.out.Reset()
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []call
	}{
		{
			name:  "single argument join",
			input: "echo a b c",
			want:  []call{{"echo", []string{"a b c"}}},
		},
		{
			name:  "statement separation",
			input: "echo a; echo b;",
			want:  []call{{"echo", []string{"a"}}, {"echo", []string{"b"}}},
		},
		{
			name:  "no join above one argument",
			input: "pair x y",
			want:  []call{{"pair", []string{"x", "y"}}},
		},
		{
			name:  "command name as argument",
			input: "list echo pair",
			want:  []call{{"list", []string{"echo", "pair"}}},
		},
		{
			name:  "quoted argument keeps spaces",
			input: `pair "a b" c`,
			want:  []call{{"pair", []string{"a b", "c"}}},
		},
		{
			name:  "empty statements",
			input: ";;list;;",
			want:  []call{{"list", nil}},
		},
		{
			name:  "undefined variable stays literal",
			input: "echo $y",
			want:  []call{{"echo", []string{"$y"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.parse(tt.input)
			if diff := cmp.Diff(tt.want, h.calls); diff != "" {
				t.Errorf("calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArityRejection(t *testing.T) {
	h := newHarness(t)

	h.parse("echo")
	assert.Empty(t, h.calls)
	assert.Equal(t, "echo <message>\n", h.out.Drain())

	h.parse("pair x")
	assert.Empty(t, h.calls)
	assert.Equal(t, "pair <a> <b>\narguments size must be within range [2, 2], but size is 1\n", h.out.Drain())

	h.parse("pair x y z; echo next")
	assert.Equal(t, []call{{"echo", []string{"next"}}}, h.calls)
	assert.Equal(t, "pair <a> <b>\narguments size must be within range [2, 2], but size is 3\nnext\n", h.out.Drain())
}

func TestUnknownCommandSkipsStatement(t *testing.T) {
	h := newHarness(t)

	h.parse("frobnicate echo x; echo y")
	assert.Equal(t, []call{{"echo", []string{"y"}}}, h.calls)
	assert.Equal(t, "unknown command \"frobnicate\"\ny\n", h.out.String())
}

func TestVariableSubstitution(t *testing.T) {
	h := newHarness(t)

	h.parse("alias x hello")
	h.reset()

	h.parse("echo $x")
	assert.Equal(t, []call{{"echo", []string{"hello"}}}, h.calls)
	assert.Equal(t, "hello\n", h.out.String())
}

func TestAliasAsCommand(t *testing.T) {
	h := newHarness(t)

	h.parse("alias greet echo hi")
	h.reset()

	h.parse("greet;")
	assert.Equal(t, "hi\n", h.out.String())
}

func TestAliasResumesAfterTriggeringWord(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.reg.SetVariable("both", "echo one; echo two"))

	h.parse("echo before; both; echo after")
	assert.Equal(t, "before\none\ntwo\nafter\n", h.out.String())
}

func TestNestedAliases(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.reg.SetVariable("inner", "echo in"))
	require.NoError(t, h.reg.SetVariable("outer", "echo start; inner; echo end"))

	p := h.parse("outer; echo done")
	assert.Equal(t, "start\nin\nend\ndone\n", h.out.String())
	assert.Equal(t, 2, p.LastStats().Contexts)
}

func TestAliasStatementDoesNotLeakIntoParent(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.reg.SetVariable("half", "pair a"))

	h.parse("half b")
	assert.Empty(t, h.calls)
	assert.Contains(t, h.out.String(), "but size is 1")
}

func TestSelfReferentialAliasTerminates(t *testing.T) {
	h := newHarness(t)
	h.parse("alias loop loop")
	h.reset()

	done := make(chan *Parser, 1)
	go func() {
		done <- h.parse("loop; echo after")
	}()

	select {
	case p := <-done:
		assert.Equal(t, "alias expansion aborted: limit of 50000 nested contexts reached\nafter\n", h.out.String())
		assert.Equal(t, DefaultMaxAliasContexts, p.LastStats().Contexts)
		assert.Equal(t, 1, p.LastStats().Aborted)
	case <-time.After(10 * time.Second):
		t.Fatal("self-referential alias did not terminate")
	}
}

func TestExponentialAliasIsBounded(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.reg.SetVariable("a", "a; a"))

	p := h.parse("a; echo after", Options{Logger: log.Discard(), MaxAliasContexts: 100})
	stats := p.LastStats()
	assert.Equal(t, 100, stats.Contexts)
	assert.GreaterOrEqual(t, stats.Aborted, 1)
	assert.True(t, strings.HasSuffix(h.out.String(), "after\n"))
}

func TestContextCounterIsPerParse(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.reg.SetVariable("greet", "echo hi"))
	opts := Options{Logger: log.Discard(), MaxAliasContexts: 2}

	h.parse("greet; greet", opts)
	assert.Equal(t, "hi\nhi\n", h.out.Drain())

	h.parse("greet; greet; greet", opts)
	assert.Equal(t, "hi\nhi\nalias expansion aborted: limit of 2 nested contexts reached\n", h.out.Drain())

	h.parse("greet", opts)
	assert.Equal(t, "hi\n", h.out.Drain())
}

func TestVariableShadowsLaterCommand(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.reg.SetVariable("late", "echo from alias"))
	h.add(t, registry.Command{Name: "late", MaxArgs: 0}, nil)

	h.parse("late")
	assert.Equal(t, "from alias\n", h.out.String())
	assert.Equal(t, []call{{"echo", []string{"from alias"}}}, h.calls)
}

func TestHandlerErrorIsReported(t *testing.T) {
	h := newHarness(t)
	h.add(t, registry.Command{Name: "fail", MaxArgs: 0}, func(*dispatch.Context) error {
		return errors.New("it broke")
	})

	h.parse("fail; echo next")
	assert.Equal(t, "it broke\nnext\n", h.out.String())
}

func TestMissingHandlerIsReported(t *testing.T) {
	h := newHarness(t)
	_, err := h.reg.Register(registry.Command{Name: "orphan", MaxArgs: 0})
	require.NoError(t, err)

	h.parse("orphan")
	assert.Equal(t, "no handler bound to command \"orphan\"\n", h.out.String())
}

func TestUnterminatedStringIsLogged(t *testing.T) {
	h := newHarness(t)
	var logs bytes.Buffer
	logger := log.NewWithConfig(log.Config{Level: log.LevelWarn, Format: log.FormatText, Output: &logs})

	h.parse(`echo "no end`, Options{Logger: logger})
	assert.Equal(t, "no end\n", h.out.String())
	assert.Contains(t, logs.String(), "unterminated quoted string")
}

func TestOutputOption(t *testing.T) {
	h := newHarness(t)
	other := output.NewBuffer()

	Parse(h.reg, h.table, other, "nope; echo x")
	assert.Equal(t, "unknown command \"nope\"\nx\n", other.String())
	assert.Empty(t, h.out.String())
}

func TestParseHelperKeepsRegistrySink(t *testing.T) {
	h := newHarness(t)
	other := output.NewBuffer()

	Parse(h.reg, h.table, other, "nope")
	h.parse("echo back")

	assert.Same(t, h.out, h.reg.Output())
	assert.Equal(t, "unknown command \"nope\"\n", other.String())
	assert.Equal(t, "back\n", h.out.String())
}

func TestEmptyVariableDoesNotExpand(t *testing.T) {
	h := newHarness(t)

	p := h.parse(`alias e ""; e; echo after`)
	assert.Equal(t, "unknown command \"e\"\nafter\n", h.out.String())
	assert.Equal(t, 0, p.LastStats().Contexts)

	v, ok := h.reg.Variable("e")
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestUnknownCommandKeepsBackslashes(t *testing.T) {
	h := newHarness(t)

	h.parse(`C:\tmp; foo"bar`)
	assert.Equal(t, "unknown command \"C:\\tmp\"\nunknown command \"foo\"bar\"\n", h.out.String())
}
