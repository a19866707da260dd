package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/farxc/painel-seguros/internal/config"
	"github.com/farxc/painel-seguros/internal/db"
	"github.com/farxc/painel-seguros/internal/env"
	"github.com/farxc/painel-seguros/internal/logger"
	"github.com/farxc/painel-seguros/internal/painel"
	"github.com/farxc/painel-seguros/internal/painel/downloader"
	"github.com/farxc/painel-seguros/internal/painel/types"
	"github.com/farxc/painel-seguros/internal/store"
	"github.com/spf13/cobra"
)

var (
	envFile string
	verbose bool
)

// app holds what the subcommands need; close releases the database, if any.
type app struct {
	cfg     config.Config
	service *painel.Service
	close   func()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "painel",
		Short: "Query the policy renewal tracking spreadsheet",
		Long: `painel loads the broker's tracking spreadsheet, lists its tabs and
prints filtered reports with status counters and premium totals.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional .env file with the configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	rootCmd.AddCommand(newTabsCmd(), newReportCmd(), newHistoryCmd())
	return rootCmd
}

func setup(needHistory bool) (*app, error) {
	if err := env.Load(envFile); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	cfg, err := config.Load()
	if err != nil && !(needHistory && errors.Is(err, types.ErrConfigMissing)) {
		return nil, err
	}

	level := logger.LevelWarn
	if verbose {
		level = cfg.LogLevel
	}
	appLogger := logger.New(level)

	a := &app{cfg: cfg, close: func() { appLogger.Sync() }}

	var storage *store.Storage
	if cfg.DB.Enabled() {
		conn, err := db.New(cfg.DB.Driver, cfg.DB.Addr, cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns, cfg.DB.MaxIdleTime)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(context.Background(), conn); err != nil {
			conn.Close()
			return nil, err
		}
		storage = store.NewStorage(conn)
		a.close = func() {
			conn.Close()
			appLogger.Sync()
		}
	} else if needHistory {
		return nil, errors.New("load history requires DB_ADDR (and DB_DRIVER) to be set")
	}

	a.service = painel.NewService(
		painel.ServiceConfig{Source: cfg.Source, RequiredColumns: cfg.RequiredColumns},
		painel.NewLoader(downloader.New(cfg.FetchTimeout, appLogger), appLogger),
		painel.NewCache(cfg.CacheTTL),
		storage,
		appLogger,
	)
	return a, nil
}
