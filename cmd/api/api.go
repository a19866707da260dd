package main

import (
	"net/http"
	"time"

	"github.com/farxc/painel-seguros/internal/config"
	"github.com/farxc/painel-seguros/internal/logger"
	"github.com/farxc/painel-seguros/internal/painel"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type application struct {
	config    config.Config
	service   *painel.Service
	appLogger *logger.Logger
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Route("/sheets", func(r chi.Router) {
			r.Get("/", app.handleGetSheets)
			r.Post("/reload", app.handleReloadSheets)
			r.Get("/{tab}/report", app.handleGetReport)
		})
		r.Route("/loads", func(r chi.Router) {
			r.Get("/history", app.handleGetLoadHistory)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	const component = "API"

	srv := &http.Server{
		Addr:         app.config.Addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.appLogger.Info(component, "Server started on %s", app.config.Addr)
	return srv.ListenAndServe()
}
