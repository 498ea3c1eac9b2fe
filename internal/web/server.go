// Package web serves the dashboard: three pages behind a sidebar, an upload
// form on the two analysis pages and a small JSON API over the same
// pipelines. Nothing is kept between requests.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/KaramelBytes/datainsights/internal/analysis"
	"github.com/KaramelBytes/datainsights/internal/chart"
)

//go:embed templates/*.html
var templateFS embed.FS

// Config holds the server settings.
type Config struct {
	Addr        string
	MaxUploadMB int
	Analysis    analysis.Options
	// AccessLog receives one line per request; nil discards.
	AccessLog io.Writer
}

// Server is the dashboard HTTP server.
type Server struct {
	app      *fiber.App
	cfg      Config
	renderer chart.Renderer
	log      *slog.Logger
	tmpl     *template.Template
}

// New builds the fiber app and registers routes.
func New(cfg Config, renderer chart.Renderer, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.Default()
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 200
	}
	if cfg.AccessLog == nil {
		cfg.AccessLog = io.Discard
	}
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"cell": func(s string) string {
			if s == "" {
				return "NaN"
			}
			return s
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s := &Server{cfg: cfg, renderer: renderer, log: log, tmpl: tmpl}
	s.app = fiber.New(fiber.Config{
		AppName:               "Data Insights",
		DisableStartupMessage: true,
		BodyLimit:             cfg.MaxUploadMB << 20,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(fiberrecover.New())
	s.app.Use(logger.New(logger.Config{Output: cfg.AccessLog}))

	s.app.Get("/", s.handleIndex)
	s.app.Post("/", s.handleUpload)
	api := s.app.Group("/api")
	api.Post("/analytics", s.handleAPIAnalytics)
	api.Post("/insights", s.handleAPIInsights)
	return s, nil
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info("dashboard listening", "addr", s.cfg.Addr)
		errc <- s.app.Listen(s.cfg.Addr)
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	s.log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.app.ShutdownWithContext(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= 500 {
		s.log.Error("request failed", "path", c.Path(), "err", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
