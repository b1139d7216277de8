package handlers

import (
	"net/http"
)

// bridgeHandler forwards anything that is not an intercepted chat
// completion to the backend untouched.
func (a *Application) bridgeHandler(w http.ResponseWriter, r *http.Request) {
	stats := newRequestStats(r)
	rlog := a.logger.WithRequestID(stats.RequestID)

	if a.Config.Verbose {
		rlog.Info("bridge", "method", r.Method, "path", r.URL.Path)
	} else {
		rlog.Debug("bridge", "method", r.Method, "path", r.URL.Path)
	}

	a.forward(w, r, nil, &stats, rlog)
}
