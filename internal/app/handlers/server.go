package handlers

import (
	"net/http"

	"github.com/thushan/shifter/internal/app/middleware"
)

// Handler builds the routed handler chain once; later calls return the
// installed handler.
func (a *Application) Handler() http.Handler {
	if a.server.Handler != nil {
		return a.server.Handler
	}

	mux := http.NewServeMux()
	a.registerRoutes()
	a.routeRegistry.WireUp(mux, nil)

	var handler http.Handler = middleware.Recovery(a.logger)(mux)
	if a.Config.Logging.FileOutput {
		handler = middleware.AccessLoggingMiddleware(a.logger)(handler)
	}
	if a.Config.Server.RequestLogging {
		handler = middleware.LoggingMiddleware(a.logger, a.Config.Verbose)(handler)
	} else {
		handler = middleware.WithRequestID(handler)
	}

	a.server.Handler = handler
	return handler
}

func (a *Application) logServerStart() {
	configServer := a.Config.Server
	backend := a.Config.Backend.URL().String()

	a.logger.Info("Starting Shifter Server...",
		"host", configServer.Host,
		"port", configServer.Port,
		"read_header_timeout", configServer.ReadHeaderTimeout,
		"idle_timeout", configServer.IdleTimeout)

	a.logger.InfoWithEndpoint("Forwarding", backend,
		"listen", configServer.GetAddress(),
		"trigger", string(a.Config.Trigger))
	a.logger.Info(a.Config.Trigger.Description())
}

// ListenAndServe starts the listener and blocks until it closes. A clean
// shutdown returns http.ErrServerClosed.
func (a *Application) ListenAndServe() error {
	a.Handler()
	a.logServerStart()
	return a.server.ListenAndServe()
}
