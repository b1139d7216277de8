package handlers

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status  string `json:"status"`
	Trigger string `json:"trigger"`
	Uptime  string `json:"uptime"`
}

// healthHandler reports on the interceptor only. Backend health is bridged
// through /health.
func (a *Application) healthHandler(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, healthResponse{
		Status:  "healthy",
		Trigger: string(a.Config.Trigger),
		Uptime:  time.Since(a.StartTime).Truncate(time.Second).String(),
	})
}
