package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/thushan/shifter/internal/logger"
)

// Recovery turns a handler panic into a 500 and keeps the listener alive.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery(styledLogger logger.StyledLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				styledLogger.WithRequestID(GetRequestID(r.Context())).Error("Handler panic recovered",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
