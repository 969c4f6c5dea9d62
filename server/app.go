// Package server is the HTTP dashboard: a JSON API over the engine and a
// server-rendered HTML page. The dataset is loaded once and shared read-only;
// every request carries its own selection.
package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/spektr-org/socialdash/engine"
	"github.com/spektr-org/socialdash/internal/logging"
)

//go:embed templates/*
var embeddedFiles embed.FS

// Config holds server settings.
type Config struct {
	Theme         string // default heatmap theme when the request names none
	HistogramBins int
}

// App is the dashboard HTTP application.
type App struct {
	router    *chi.Mux
	dataset   *engine.Dataset
	config    Config
	templates *template.Template
	note      template.HTML
	log       *logging.Logger
}

// NewApp builds the router and parses the embedded templates.
func NewApp(ds *engine.Dataset, config Config, logger *logging.Logger) (*App, error) {
	if ds == nil {
		return nil, engine.ErrNoDataset
	}
	if logger == nil {
		logger = logging.NewFromEnv()
	}
	theme, err := engine.ParseTheme(config.Theme)
	if err != nil {
		return nil, err
	}
	config.Theme = theme

	funcMap := template.FuncMap{
		"join": joinLabels,
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}

	md, err := embeddedFiles.ReadFile("templates/heatmap_note.md")
	if err != nil {
		return nil, errors.Wrap(err, "read heatmap note")
	}

	app := &App{
		router:    chi.NewRouter(),
		dataset:   ds,
		config:    config,
		templates: templates,
		note:      template.HTML(markdown.ToHTML(md, nil, nil)),
		log:       logger,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app, nil
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)

	a.router.Get("/api/options", a.handleOptions)
	a.router.Get("/api/dashboard", a.handleDashboard)
	a.router.Get("/api/charts/{id}", a.handleChart)
	a.router.Get("/api/export.csv", a.handleExportCSV)
	a.router.Get("/api/export.xlsx", a.handleExportXLSX)
}

// Handler exposes the router.
func (a *App) Handler() http.Handler { return a.router }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("🌐 dashboard listening on %s (%d students)", addr, a.dataset.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.log.Info("shutting down dashboard")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
