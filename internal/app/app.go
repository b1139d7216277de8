package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thushan/shifter/internal/adapter/proxy"
	"github.com/thushan/shifter/internal/adapter/sampling"
	"github.com/thushan/shifter/internal/adapter/stats"
	"github.com/thushan/shifter/internal/app/handlers"
	"github.com/thushan/shifter/internal/config"
	"github.com/thushan/shifter/internal/core/domain"
	"github.com/thushan/shifter/internal/logger"
	"github.com/thushan/shifter/pkg/format"
)

const DefaultShutdownTimeout = 10 * time.Second

// Application wires the interceptor together from a loaded config.
type Application struct {
	config       *config.Config
	logger       logger.StyledLogger
	proxyService *proxy.Service
	collector    *stats.Collector
	handlers     *handlers.Application
}

func New(cfg *config.Config, log logger.StyledLogger) (*Application, error) {
	profiles := NewProfileTable(cfg)
	collector := stats.NewCollector(log)

	proxyService, err := proxy.NewService(cfg.Backend.URL(), &proxy.Configuration{
		ConnectionTimeout:   cfg.Backend.ConnectionTimeout,
		ConnectionKeepAlive: cfg.Backend.KeepAlive,
		StreamBufferSize:    cfg.Backend.StreamBufferSize,
	}, collector, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create proxy service: %w", err)
	}

	h, err := handlers.NewApplication(cfg, profiles, proxyService, collector, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create handlers: %w", err)
	}

	return &Application{
		config:       cfg,
		logger:       log,
		proxyService: proxyService,
		collector:    collector,
		handlers:     h,
	}, nil
}

// NewProfileTable builds the sampling table, applying any explicit_thinking
// overrides from config on top of the General values.
func NewProfileTable(cfg *config.Config) *sampling.Table {
	override := cfg.Modes.ExplicitThinking
	if override.IsEmpty() {
		return sampling.NewTable()
	}
	return sampling.NewTable(
		sampling.WithProfile(domain.ModeExplicitThinking, override.Apply(sampling.General)))
}

func (a *Application) Handler() http.Handler {
	return a.handlers.Handler()
}

// Run serves until ctx is cancelled or the listener fails, then shuts the
// server down within the configured grace period.
func (a *Application) Run(ctx context.Context) error {
	server := a.handlers.GetServer()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.handlers.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		timeout := a.config.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = DefaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		a.logger.Info("Shutting down", "timeout", timeout)
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	a.proxyService.Cleanup()
	a.logSummary()
	return err
}

func (a *Application) logSummary() {
	ps := a.collector.GetProxyStats()
	a.logger.Info("Shifter stopped",
		"requests", ps.TotalRequests,
		"failed", ps.FailedRequests,
		"rejected", ps.RejectedRequests,
		"relayed", format.Bytes(ps.TotalBytes),
		"avg_latency", format.Latency(ps.AverageLatency),
		"uptime", format.Uptime(time.Since(ps.StartedAt)))
}
