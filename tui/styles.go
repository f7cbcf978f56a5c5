// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import "github.com/charmbracelet/lipgloss"

const displayWidth = 28

var (
	accent = lipgloss.Color("#00c3a3")
	muted  = lipgloss.Color("#94a3b8")
	danger = lipgloss.Color("#f87171")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)

	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Width(displayWidth).
			Align(lipgloss.Right)

	errorDisplayStyle = displayStyle.
				BorderForeground(danger).
				Foreground(danger)

	statusStyle   = lipgloss.NewStyle().Foreground(muted).Italic(true)
	helpStyle     = lipgloss.NewStyle().Foreground(muted)
	headingStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	entryStyle    = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = entryStyle.Foreground(accent).Bold(true)
	agoStyle      = lipgloss.NewStyle().Foreground(muted)
)
