// ============================================================================
// hcmd - embeddable console command interpreter
// ============================================================================
//
// Package:     console
// Description: Bubbletea model for the interactive hcmd console
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	hconsole "github.com/msto63/hcmd/foundation/console"
	"github.com/msto63/hcmd/foundation/console/dispatch"
	"github.com/msto63/hcmd/foundation/console/registry"
	mdwlog "github.com/msto63/hcmd/foundation/core/log"
	"github.com/msto63/hcmd/foundation/utils/stringx"
)

// Config holds console TUI configuration
type Config struct {
	Title       string
	Prompt      string
	HistorySize int
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Title:       "hcmd console",
		Prompt:      "> ",
		HistorySize: 100,
	}
}

// session is shared by all copies of the model; console commands mutate it
type session struct {
	quit  bool
	clear bool
}

// Model is the Bubbletea model of the interactive console
type Model struct {
	// State
	width  int
	height int
	ready  bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Console state
	interp     *hconsole.Interpreter
	transcript *transcript
	history    *History
	session    *session
	cfg        Config
	logger     *mdwlog.Logger
}

// New creates the console model around interp. The interpreter's output is
// redirected to the transcript and the quit, exit and clear commands are
// registered.
func New(interp *hconsole.Interpreter, cfg Config) (Model, error) {
	def := DefaultConfig()
	cfg.Title = stringx.FirstNonBlank(cfg.Title, def.Title)
	if cfg.Prompt == "" {
		cfg.Prompt = def.Prompt
	}

	ti := textinput.New()
	ti.Prompt = PromptStyle.Render(cfg.Prompt)
	ti.Placeholder = "type a command, help lists all commands"
	ti.CharLimit = 4096
	ti.Focus()

	m := Model{
		input:      ti,
		interp:     interp,
		transcript: newTranscript(),
		history:    NewHistory(cfg.HistorySize),
		session:    &session{},
		cfg:        cfg,
		logger:     mdwlog.GetDefault().WithField("component", "console-tui"),
	}

	interp.SetOutput(m.transcript)
	if err := m.registerCommands(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) registerCommands() error {
	st := m.session
	leave := dispatch.HandlerFunc(func(*dispatch.Context) error {
		st.quit = true
		return nil
	})

	commands := []struct {
		cmd registry.Command
		h   dispatch.Handler
	}{
		{registry.Command{Name: "quit", Usage: "- leaves the console"}, leave},
		{registry.Command{Name: "exit", Usage: "- leaves the console"}, leave},
		{registry.Command{Name: "clear", Usage: "- clears the screen"}, dispatch.HandlerFunc(func(*dispatch.Context) error {
			st.clear = true
			return nil
		})},
	}

	for _, c := range commands {
		if err := m.interp.Register(c.cmd, c.h); err != nil {
			return err
		}
	}
	return nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2 // title + blank line
		footerHeight := 4 // input + help + borders
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 4 - len(m.cfg.Prompt)
		m.updateViewportContent()
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		return m, tea.Quit

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyUp:
		if entry, ok := m.history.Prev(m.input.Value()); ok {
			m.input.SetValue(entry)
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if entry, ok := m.history.Next(); ok {
			m.input.SetValue(entry)
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the current input through the interpreter
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	m.input.Reset()

	m.transcript.input(m.cfg.Prompt, text)
	if !stringx.IsBlank(text) {
		m.history.Add(text)
		m.interp.Parse(text)
		m.logger.Debug("input executed", mdwlog.Fields{
			"session":    m.interp.SessionID(),
			"dispatched": m.interp.LastStats().Dispatched,
		})
	}

	if m.session.clear {
		m.session.clear = false
		m.transcript.clear()
	}
	if m.session.quit {
		return m, tea.Quit
	}

	m.updateViewportContent()
	return m, nil
}

// updateViewportContent updates the viewport with the transcript
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.transcript.render())
	m.viewport.GotoBottom()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "starting console..."
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.cfg.Title))
	b.WriteString(" ")
	b.WriteString(SessionStyle.Render(m.interp.SessionID()))
	b.WriteString("\n")

	b.WriteString(TranscriptPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")

	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHelpBar() string {
	keys := []struct{ key, desc string }{
		{"enter", "run"},
		{"↑/↓", "history"},
		{"pgup/pgdn", "scroll"},
		{"ctrl+c", "quit"},
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", HelpKeyStyle.Render(k.key), HelpStyle.Render(k.desc)))
	}
	return strings.Join(parts, HelpStyle.Render(" • "))
}

// Transcript returns the unstyled console transcript
func (m Model) Transcript() string {
	return m.transcript.plain()
}

// Run starts the console TUI
func Run(interp *hconsole.Interpreter, cfg Config) error {
	m, err := New(interp, cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
