// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielhkuo/quickly-calc/assets"
	"github.com/danielhkuo/quickly-calc/cliparse"
	"github.com/danielhkuo/quickly-calc/db"
	"github.com/danielhkuo/quickly-calc/middleware"
	"github.com/danielhkuo/quickly-calc/router"
	"github.com/spf13/cobra"
)

var (
	flags *cliparse.Flags
	cfg   cliparse.Config
)

var rootCmd = &cobra.Command{
	Use:   "quickly-calc",
	Short: "Simple calculator: HTTP API, web shell and terminal UI",
	Long: `quickly-calc is a simple four-function calculator with percent, sign
toggle and a bounded history of past results.

Run "quickly-calc serve" for the HTTP API and web shell, or
"quickly-calc tui" for the terminal calculator.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cliparse.LoadDotEnv(); err != nil {
			return err
		}

		var err error
		cfg, err = flags.Resolve()
		if err != nil {
			return err
		}

		level, _ := cfg.SlogLevel()
		var out io.Writer = os.Stderr
		// the terminal UI owns the screen
		if cmd == tuiCmd {
			out = io.Discard
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and web shell",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	flags = cliparse.BindFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(serveCmd, tuiCmd, evalCmd, historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore connects to the configured database and creates the schema
func openStore() (*db.KVStore, *sql.DB, error) {
	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		return nil, nil, err
	}

	conn, err := db.Open(dialect, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("database schema ready", "type", dialect)

	return db.NewKVStore(conn, dialect), conn, nil
}

// newWorker builds the asset worker and precaches the web shell. A failed
// precache is logged; the worker still serves from the origin.
func newWorker(ctx context.Context) (*assets.Worker, error) {
	var origin assets.Origin = assets.NewFSOrigin(assets.Web())
	if cfg.AssetUpstream != "" {
		upstream, err := assets.NewHTTPOrigin(cfg.AssetUpstream, &http.Client{Timeout: 10 * time.Second})
		if err != nil {
			return nil, err
		}
		origin = upstream
	}

	worker := assets.NewWorker(origin, assets.NewCache(), cfg.CacheVersion)
	if err := worker.Install(ctx); err != nil {
		slog.Warn("asset precache failed", "error", err)
		return worker, nil
	}
	worker.Activate()
	return worker, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	store, conn, err := openStore()
	if err != nil {
		return err
	}
	defer conn.Close()

	worker, err := newWorker(cmd.Context())
	if err != nil {
		return fmt.Errorf("asset upstream: %w", err)
	}

	mux := router.NewRouter(store, cfg, worker)

	server := http.Server{
		Handler: middleware.RequestID(middleware.CORS(mux)),
		Addr:    cfg.Addr(),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		server.Close()
	}()

	slog.Info("listening", "port", cfg.Port, "database", cfg.DatabaseType, "cache", worker.CacheName())
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("server closed", "error", err)
		return err
	}
	slog.Info("server closed")
	return nil
}
