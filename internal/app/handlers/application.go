package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/thushan/shifter/internal/adapter/inspector"
	"github.com/thushan/shifter/internal/adapter/resolver"
	"github.com/thushan/shifter/internal/adapter/rewriter"
	"github.com/thushan/shifter/internal/config"
	"github.com/thushan/shifter/internal/core/ports"
	"github.com/thushan/shifter/internal/logger"
	"github.com/thushan/shifter/internal/router"
)

// Application holds all the dependencies needed for the HTTP handlers
type Application struct {
	Config         *config.Config
	logger         logger.StyledLogger
	inspector      *inspector.ChatInspector
	resolver       *resolver.Resolver
	rewriter       ports.RequestRewriter
	profiles       ports.ProfileTable
	proxyService   ports.ProxyService
	statsCollector ports.StatsCollector
	routeRegistry  *router.RouteRegistry
	server         *http.Server
	StartTime      time.Time
}

// NewApplication creates a new Application instance with all required dependencies
func NewApplication(
	cfg *config.Config,
	profiles ports.ProfileTable,
	proxyService ports.ProxyService,
	statsCollector ports.StatsCollector,
	logger logger.StyledLogger,
) (*Application, error) {
	chatInspector, err := inspector.NewChatInspector()
	if err != nil {
		return nil, fmt.Errorf("failed to create chat inspector: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Server.GetAddress(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	return &Application{
		Config:         cfg,
		logger:         logger,
		inspector:      chatInspector,
		resolver:       resolver.New(cfg.Trigger),
		rewriter:       rewriter.New(profiles),
		profiles:       profiles,
		proxyService:   proxyService,
		statsCollector: statsCollector,
		routeRegistry:  router.NewRouteRegistry(logger),
		server:         server,
		StartTime:      time.Now(),
	}, nil
}

// GetRouteRegistry returns the route registry for wiring up routes
func (a *Application) GetRouteRegistry() *router.RouteRegistry {
	return a.routeRegistry
}

// GetServer returns the HTTP server instance
func (a *Application) GetServer() *http.Server {
	return a.server
}

func (a *Application) GetStatsCollector() ports.StatsCollector {
	return a.statsCollector
}
