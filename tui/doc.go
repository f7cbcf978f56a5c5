// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tui is the interactive terminal calculator, built on Bubble Tea.

	store := history.NewStore(kv)
	err := tui.Run(tui.New(store, nil), tea.WithAltScreen())

Keys are passed to calc.Controller under their keyboard names: enter,
backspace and esc become Enter, Backspace and Escape, and printable keys
are passed as typed. On top of that:

	ctrl+n  negate the last operand
	tab     show or hide history
	↑/↓     select a history entry
	ctrl+r  recall the selected entry's result
	ctrl+x  clear history
	ctrl+c  quit

A failed evaluation shows its error for calc.ErrorDuration; the model
schedules a redraw for when it expires.
*/
package tui
