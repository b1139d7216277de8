package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/thushan/shifter/internal/core/constants"
	"github.com/thushan/shifter/internal/logger"
	"github.com/thushan/shifter/internal/util"
	"github.com/thushan/shifter/pkg/format"
)

// responseWriter wraps http.ResponseWriter to capture response size and status
type responseWriter struct {
	http.ResponseWriter
	status      int
	size        int64
	wroteHeader bool
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	size, err := rw.ResponseWriter.Write(b)
	rw.size += int64(size)
	return size, err
}

func (rw *responseWriter) WriteHeader(s int) {
	if rw.wroteHeader {
		return
	}
	rw.status = s
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(s)
}

// Flush passes through so streamed chunks are not held back by the wrapper.
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func capture(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, status: http.StatusOK}
}

// declaredSize is the Content-Length, or zero when the client streams the body.
func declaredSize(r *http.Request) int64 {
	return max(r.ContentLength, 0)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constants.ContextRequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithRequestID assigns a fresh request ID, stores it with the pickup time in
// the context and echoes it on the response.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := GetRequestID(r.Context())
		if requestID == "" {
			requestID = util.GenerateRequestID()
		}

		ctx := context.WithValue(r.Context(), constants.ContextRequestIDKey, requestID)
		ctx = context.WithValue(ctx, constants.ContextRequestTimeKey, time.Now())
		w.Header().Set(constants.HeaderRequestID, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoggingMiddleware logs request start and completion. Request logging is
// at debug level unless verbose, the handlers log their own mode decisions.
func LoggingMiddleware(styledLogger logger.StyledLogger, verbose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := GetRequestID(r.Context())
			rlog := styledLogger.WithRequestID(requestID)

			requestSize := declaredSize(r)

			logf := rlog.Debug
			if verbose {
				logf = rlog.Info
			}

			logf("Request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", util.GetClientIP(r),
				"user_agent", r.UserAgent(),
				"request_size", format.Bytes(requestSize))

			wrapped := capture(w)
			next.ServeHTTP(wrapped, r)

			logf("Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.status,
				"duration", format.Latency(time.Since(start).Milliseconds()),
				"size_flow", format.Bytes(requestSize)+" -> "+format.Bytes(wrapped.size))
		}))
	}
}

// AccessLoggingMiddleware writes one access record per request to the log
// file only. Install it when file output is enabled.
func AccessLoggingMiddleware(styledLogger logger.StyledLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestSize := declaredSize(r)

			wrapped := capture(w)
			next.ServeHTTP(wrapped, r)

			detailedCtx := context.WithValue(r.Context(), logger.DefaultDetailedCookie, true)
			styledLogger.GetUnderlying().InfoContext(detailedCtx, "Access log",
				"timestamp", start.Format(time.RFC3339),
				"request_id", GetRequestID(r.Context()),
				"remote_addr", util.GetClientIP(r),
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"status", wrapped.status,
				"mode", wrapped.Header().Get(constants.HeaderMode),
				"source", wrapped.Header().Get(constants.HeaderSource),
				"request_bytes", requestSize,
				"response_bytes", wrapped.size,
				"duration_ms", time.Since(start).Milliseconds(),
				"user_agent", r.UserAgent(),
				"content_type", r.Header.Get(constants.HeaderContentType))
		})
	}
}
