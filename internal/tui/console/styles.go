// ============================================================================
// hcmd - embeddable console command interpreter
// ============================================================================
//
// Package:     console
// Description: Styles for the interactive console TUI
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package console

import (
	"github.com/charmbracelet/lipgloss"
)

// Color Palette
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray
	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
)

// Header styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SessionStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)

// Transcript styles
var (
	TranscriptPanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(ColorDimmed).
				Padding(0, 1)

	InputEchoStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	OutputStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	DiagnosticStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)

// Input and help styles
var (
	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)
)
