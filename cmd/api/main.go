package main

import (
	"context"
	"errors"
	"log"

	"github.com/farxc/painel-seguros/internal/config"
	"github.com/farxc/painel-seguros/internal/db"
	"github.com/farxc/painel-seguros/internal/env"
	"github.com/farxc/painel-seguros/internal/logger"
	"github.com/farxc/painel-seguros/internal/painel"
	"github.com/farxc/painel-seguros/internal/painel/downloader"
	"github.com/farxc/painel-seguros/internal/painel/types"
	"github.com/farxc/painel-seguros/internal/store"
)

func main() {
	const component = "Main"

	if err := env.Load(); err != nil {
		log.Fatalf("failed to read .env: %v", err)
	}

	cfg, cfgErr := config.Load()
	appLogger := logger.New(cfg.LogLevel)
	defer appLogger.Sync()

	switch {
	case errors.Is(cfgErr, types.ErrConfigMissing):
		appLogger.Warn(component, "%v; requests will fail until configured", cfgErr)
	case cfgErr != nil:
		appLogger.Fatal(component, "Invalid configuration: %v", cfgErr)
	}

	var storage *store.Storage
	if cfg.DB.Enabled() {
		conn, err := db.New(
			cfg.DB.Driver,
			cfg.DB.Addr,
			cfg.DB.MaxOpenConns,
			cfg.DB.MaxIdleConns,
			cfg.DB.MaxIdleTime)
		if err != nil {
			appLogger.Fatal(component, "Database connection failed: %v", err)
		}
		defer conn.Close()

		if err := store.Migrate(context.Background(), conn); err != nil {
			appLogger.Fatal(component, "Database migration failed: %v", err)
		}
		appLogger.Info(component, "Database connection pool established: driver=%s", cfg.DB.Driver)
		storage = store.NewStorage(conn)
	}

	loader := painel.NewLoader(downloader.New(cfg.FetchTimeout, appLogger), appLogger)
	service := painel.NewService(
		painel.ServiceConfig{Source: cfg.Source, RequiredColumns: cfg.RequiredColumns},
		loader,
		painel.NewCache(cfg.CacheTTL),
		storage,
		appLogger,
	)

	app := &application{
		config:    cfg,
		service:   service,
		appLogger: appLogger,
	}

	mux := app.mount()

	if err := app.run(mux); err != nil {
		appLogger.Fatal(component, "Server stopped: %v", err)
	}
}
