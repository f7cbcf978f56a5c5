// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/danielhkuo/quickly-calc/calc"
	"github.com/danielhkuo/quickly-calc/history"
	"github.com/dustin/go-humanize"
)

// errorExpiredMsg redraws once the error display has run out
type errorExpiredMsg struct{}

// StatusLine is a calc.Notifier that keeps the latest notification for
// the status line
type StatusLine struct {
	text string
}

func (s *StatusLine) Notify(title, body string) {
	s.text = title + ": " + body
}

func (s *StatusLine) String() string {
	return s.text
}

// Model is the Bubble Tea model of the terminal calculator
type Model struct {
	ctrl    *calc.Controller
	history *history.Store
	status  *StatusLine
	now     func() time.Time

	showHistory bool
	selected    int
	entries     []history.Entry
	quitting    bool
}

type Option func(*Model)

// WithClock sets the clock used for relative history times
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// New builds a calculator over store. status may be nil.
func New(store *history.Store, status *StatusLine, opts ...Option) Model {
	if status == nil {
		status = &StatusLine{}
	}
	m := Model{
		history: store,
		status:  status,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.ctrl = calc.NewController(calc.NewBuffer(), store,
		calc.WithNotifier(status),
		calc.WithClock(m.now),
	)
	return m
}

// Run starts the interactive program and blocks until it quits
func Run(m Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case errorExpiredMsg:
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.showHistory = !m.showHistory
		m.reload()
		return m, nil

	case "up":
		if m.showHistory && m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "down":
		if m.showHistory && m.selected < len(m.entries)-1 {
			m.selected++
		}
		return m, nil

	case "ctrl+r":
		if m.showHistory && m.selected < len(m.entries) {
			m.ctrl.Recall(m.entries[m.selected].Result)
		}
		return m, nil

	case "ctrl+x":
		if err := m.history.Clear(); err != nil {
			slog.Warn("failed to clear history", "error", err)
			m.status.text = "History could not be cleared"
		}
		m.reload()
		return m, nil

	case "ctrl+n":
		_ = m.ctrl.Do(calc.ActionNegate)
		return m, nil
	}

	name, ok := keyName(msg)
	if !ok {
		return m, nil
	}

	_, err := m.ctrl.Key(name)
	if err != nil {
		return m, tea.Tick(calc.ErrorDuration, func(time.Time) tea.Msg {
			return errorExpiredMsg{}
		})
	}
	if name == "Enter" || name == "=" {
		m.reload()
	}
	return m, nil
}

// keyName translates a terminal key to the controller's keyboard name
func keyName(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		return "Enter", true
	case tea.KeyBackspace:
		return "Backspace", true
	case tea.KeyEsc:
		return "Escape", true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return string(msg.Runes), true
		}
	}
	return "", false
}

func (m *Model) reload() {
	m.entries = m.history.List()
	if m.selected >= len(m.entries) {
		m.selected = max(len(m.entries)-1, 0)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Simple Calculator"))
	b.WriteString("\n")

	if msg, _ := m.ctrl.ErrorText(); msg != "" {
		b.WriteString(errorDisplayStyle.Render(msg))
	} else {
		b.WriteString(displayStyle.Render(m.ctrl.Display()))
	}
	b.WriteString("\n")

	if s := m.status.String(); s != "" {
		b.WriteString(statusStyle.Render(s))
		b.WriteString("\n")
	}

	if m.showHistory {
		b.WriteString(headingStyle.Render("History"))
		b.WriteString("\n")
		b.WriteString(m.historyView())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter = · esc clear · ctrl+n ± · tab history · ctrl+c quit"))
	if m.showHistory {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select · ctrl+r recall · ctrl+x clear history"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) historyView() string {
	if len(m.entries) == 0 {
		return entryStyle.Render("No history yet") + "\n"
	}

	now := m.now()
	var b strings.Builder
	for i, e := range m.entries {
		style := entryStyle
		if i == m.selected {
			style = selectedStyle
		}
		line := fmt.Sprintf("%s = %s", e.Expression, e.Result)
		b.WriteString(style.Render(line))
		b.WriteString(" ")
		b.WriteString(agoStyle.Render(humanize.RelTime(e.Time(), now, "ago", "from now")))
		b.WriteString("\n")
	}
	return b.String()
}
