// Package ioweb is an HTTP wrapper around the load calculation.
package ioweb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnplet/internal/iofields"
	"github.com/gnames/gnplet/internal/iolookup"
	"github.com/gnames/gnplet/internal/iorun"
	"github.com/gnames/gnplet/pkg/config"
	"github.com/gnames/gnplet/pkg/db"
	"github.com/gnames/gnplet/pkg/field"
	"github.com/gnames/gnplet/pkg/lifecycle"
	"github.com/gnames/gnplet/pkg/plet"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	operator db.Operator
}

// NewServer creates an HTTP Server. The operator is used only when lookup
// tables come from the database and must be connected by the caller.
func NewServer(op db.Operator) lifecycle.Server {
	return &server{operator: op}
}

// Serve loads lookup tables and serves requests until ctx is done.
func (s *server) Serve(ctx context.Context, cfg *config.Config) error {
	set, err := iolookup.Load(ctx, cfg, s.operator)
	if err != nil {
		return err
	}

	e := New(plet.New(set, cfg.Model), cfg.JobsNumber)
	addr := fmt.Sprintf(":%d", cfg.Serve.Port)

	chErr := make(chan error, 1)
	go func() {
		chErr <- e.Start(addr)
	}()
	slog.Info("Server started", "port", cfg.Serve.Port)
	gn.Info("Listening on <em>%s</em>", addr)

	select {
	case err = <-chErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return ServeError(cfg.Serve.Port, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		return ServeError(cfg.Serve.Port, err)
	}
	slog.Info("Server stopped")
	return nil
}

// New creates routes of the HTTP wrapper.
func New(calc *plet.Calculator, jobs int) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	h := &handler{calc: calc, jobs: jobs}
	e.GET("/ping", h.Ping)
	e.POST("/result", h.Result)
	return e
}

type handler struct {
	calc *plet.Calculator
	jobs int
}

// Ping is a health check.
func (h *handler) Ping(c echo.Context) error {
	return c.String(http.StatusOK, "pong")
}

// Result accepts a FeatureCollection of fields and returns it with
// derived properties, in the same order.
func (h *handler) Result(c echo.Context) error {
	feats, err := iofields.DecodeGeoJSON(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			map[string]string{"error": err.Error()})
	}

	recs := make([]field.Record, len(feats))
	for i, f := range feats {
		recs[i] = f.Record
	}

	ctx := c.Request().Context()
	res, err := iorun.Process(ctx, h.calc, recs, h.jobs, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError,
			map[string]string{"error": err.Error()})
	}
	iorun.LogConditions(res)

	fc, err := iofields.Collection(feats, res)
	if err != nil {
		return c.JSON(http.StatusInternalServerError,
			map[string]string{"error": err.Error()})
	}
	slog.Info("Request processed", "fields", len(res))
	return c.JSON(http.StatusOK, fc)
}
