// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/danielhkuo/quickly-calc/auth"
	"github.com/danielhkuo/quickly-calc/calc"
	"github.com/danielhkuo/quickly-calc/handlers"
	"github.com/danielhkuo/quickly-calc/history"
	"github.com/danielhkuo/quickly-calc/tui"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// localNamespace holds the history of the terminal UI and eval
const localNamespace = "local"

var (
	sessionID string
	noHistory bool
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal calculator",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression...>",
	Short: "Evaluate an expression and record it in history",
	Long: `Evaluates one expression. Arguments are joined with spaces, so quoting is
optional:

  quickly-calc eval 7+3
  quickly-calc eval "12 × 3 − 50%"

An expression that starts with "-" must follow "--" so it is not read
as a flag:

  quickly-calc eval -- -5+3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or clear history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List history, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var historyNamespacesCmd = &cobra.Command{
	Use:   "namespaces",
	Short: "List stored histories, most recently used first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryNamespaces,
}

func init() {
	for _, cmd := range []*cobra.Command{tuiCmd, evalCmd, historyListCmd, historyClearCmd} {
		cmd.Flags().StringVar(&sessionID, "session", "", "Use the history of a web session instead of the local one")
	}
	evalCmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record the result")
	evalCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w (use -- before an expression that starts with -)", err)
	})

	historyCmd.AddCommand(historyListCmd, historyClearCmd, historyNamespacesCmd)
}

// openHistory opens the history selected by --session
func openHistory() (*history.Store, func() error, error) {
	namespace := localNamespace
	if sessionID != "" {
		if err := auth.ValidateSessionID(sessionID); err != nil {
			return nil, nil, err
		}
		namespace = handlers.SessionNamespace(sessionID)
	}

	store, conn, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return history.NewStore(store.Namespace(namespace)), conn.Close, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	store, closeDB, err := openHistory()
	if err != nil {
		return err
	}
	defer closeDB()

	return tui.Run(tui.New(store, nil), tea.WithAltScreen())
}

func runEval(cmd *cobra.Command, args []string) error {
	var recorder calc.Recorder
	if !noHistory {
		store, closeDB, err := openHistory()
		if err != nil {
			return err
		}
		defer closeDB()
		recorder = store
	}

	buf := calc.NewBuffer()
	buf.SetText(strings.Join(args, " "))
	ctrl := calc.NewController(buf, recorder)

	if err := ctrl.Evaluate(); err != nil {
		msg := calc.MessageError
		if errors.Is(err, calc.ErrInvalidInput) {
			msg = calc.MessageInvalidInput
		}
		return fmt.Errorf("%s: %w", msg, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), ctrl.Display())
	return nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, closeDB, err := openHistory()
	if err != nil {
		return err
	}
	defer closeDB()

	out := cmd.OutOrStdout()
	entries := store.List()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No history yet")
		return nil
	}
	for i, e := range entries {
		fmt.Fprintf(out, "%2d  %s = %s  (%s)\n", i, e.Expression, e.Result, humanize.Time(e.Time()))
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, closeDB, err := openHistory()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := store.Clear(); err != nil {
		return err
	}
	slog.Info("history cleared")
	fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
	return nil
}

func runHistoryNamespaces(cmd *cobra.Command, args []string) error {
	store, conn, err := openStore()
	if err != nil {
		return err
	}
	defer conn.Close()

	names, err := store.Namespaces()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
