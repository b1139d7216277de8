package handlers

import (
	"net/http"

	"github.com/thushan/shifter/internal/core/constants"
	"github.com/thushan/shifter/internal/router"
)

// registerRoutes sets up the complete HTTP routing table. Method-qualified
// patterns win over the catch-all, so a GET on the chat path is bridged.
func (a *Application) registerRoutes() {
	a.routeRegistry.RegisterProxyRoute(constants.PathV1ChatCompletions, a.chatCompletionsHandler, "Chat completions (mode shifted)", http.MethodPost)

	a.routeRegistry.RegisterWithMethod(constants.DefaultHealthCheckEndpoint, a.healthHandler, "Health check endpoint", http.MethodGet)
	a.routeRegistry.RegisterWithMethod(constants.DefaultStatsEndpoint, a.statsHandler, "Interceptor statistics", http.MethodGet)
	a.routeRegistry.RegisterWithMethod(constants.DefaultVersionEndpoint, a.versionHandler, "Shifter version information", http.MethodGet)

	a.routeRegistry.RegisterProxyRoute(constants.DefaultPathPrefix, a.bridgeHandler, "Bridge to llama-server (verbatim)", router.MethodAny)
}
