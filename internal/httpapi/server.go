// Package httpapi serves the formatter over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/r9s-ai/reindent/internal/format"
	"github.com/r9s-ai/reindent/internal/metrics"
)

// DefaultMaxBytes caps request bodies when Options.MaxBytes is unset.
const DefaultMaxBytes int64 = 4 << 20

// maxIndent bounds the per-request indent option, matching the CLI.
const maxIndent = 16

const shutdownTimeout = 5 * time.Second

// Options configures New.
type Options struct {
	Logger   *slog.Logger
	Metrics  *metrics.Exporter
	Defaults format.Config
	MaxBytes int64
}

// Server routes format and check requests to the engine.
type Server struct {
	echo     *echo.Echo
	logger   *slog.Logger
	metrics  *metrics.Exporter
	defaults format.Config
}

// Request is the body of both API endpoints.
type Request struct {
	Code    string          `json:"code"`
	Options *RequestOptions `json:"options,omitempty"`
}

// RequestOptions overrides the server defaults for one request. Missing
// fields keep the defaults.
type RequestOptions struct {
	Indent   int    `json:"indent,omitempty"`
	Spaces   *bool  `json:"spaces,omitempty"`
	Language string `json:"language,omitempty"`
}

// CheckResponse lists the structural issues of a checked text.
type CheckResponse struct {
	Issues []format.Issue `json:"issues"`
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewExporter(metrics.DefaultConfig())
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.Defaults == (format.Config{}) {
		opts.Defaults = format.DefaultConfig()
	}

	s := &Server{
		echo:     echo.New(),
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		defaults: opts.Defaults,
	}
	e := s.echo
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				s.logger.Warn("request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			s.logger.Info("request", attrs...)
			return nil
		},
	}))

	api := e.Group("/api/v1", middleware.BodyLimit(fmt.Sprintf("%dB", opts.MaxBytes)))
	api.POST("/format", s.handleFormat)
	api.POST("/check", s.handleCheck)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run listens on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http api listening", "addr", addr)
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http api: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http api shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleFormat(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return err
	}
	cfg, err := s.config(req.Options)
	if err != nil {
		return err
	}

	start := time.Now()
	res := format.Format(req.Code, cfg)
	s.metrics.RecordFormat(cfg.Variant.String(), len(req.Code), time.Since(start), res.OK())
	if !res.OK() {
		s.logger.Error("format failed", "language", cfg.Variant.String(), "error", res.Err())
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) handleCheck(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return err
	}
	cfg, err := s.config(req.Options)
	if err != nil {
		return err
	}
	issues := format.Check(req.Code, cfg.Variant)
	if issues == nil {
		issues = []format.Issue{}
	}
	return c.JSON(http.StatusOK, CheckResponse{Issues: issues})
}

func (s *Server) config(opts *RequestOptions) (format.Config, error) {
	cfg := s.defaults
	if opts == nil {
		return cfg, nil
	}
	if opts.Indent != 0 {
		if opts.Indent < 1 || opts.Indent > maxIndent {
			return cfg, echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("options.indent must be between 1 and %d, got %d", maxIndent, opts.Indent))
		}
		cfg.IndentWidth = opts.Indent
	}
	if opts.Spaces != nil {
		cfg.UseSpaces = *opts.Spaces
	}
	if opts.Language != "" {
		cfg.Variant, _ = format.ParseVariant(opts.Language)
	}
	return cfg, nil
}
