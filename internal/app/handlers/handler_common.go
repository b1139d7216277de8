package handlers

import (
	"errors"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/thushan/shifter/internal/adapter/proxy/common"
	"github.com/thushan/shifter/internal/app/middleware"
	"github.com/thushan/shifter/internal/core/constants"
	"github.com/thushan/shifter/internal/core/domain"
	"github.com/thushan/shifter/internal/core/ports"
	"github.com/thushan/shifter/internal/logger"
	"github.com/thushan/shifter/internal/util"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OpenAI-style error types.
const (
	ErrorTypeInvalidRequest = "invalid_request_error"
	ErrorTypeBackend        = "backend_error"
	ErrorTypeServer         = "server_error"
)

type errorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, errType string) {
	_ = writeJSON(w, status, errorResponse{Error: errorBody{Message: message, Type: errType}})
}

// newRequestStats seeds stats with the id and pickup time the middleware
// placed on the context, falling back to fresh values.
func newRequestStats(r *http.Request) ports.RequestStats {
	stats := ports.RequestStats{
		RequestID: middleware.GetRequestID(r.Context()),
		StartTime: time.Now(),
	}
	if stats.RequestID == "" {
		stats.RequestID = util.GenerateRequestID()
	}
	if t, ok := r.Context().Value(constants.ContextRequestTimeKey).(time.Time); ok {
		stats.StartTime = t
	}
	return stats
}

// forward relays to the backend and answers the client only when the proxy
// failed before writing anything.
func (a *Application) forward(w http.ResponseWriter, r *http.Request, body []byte, stats *ports.RequestStats, rlog logger.StyledLogger) {
	err := a.proxyService.Forward(r.Context(), w, r, body, stats, rlog)
	if err == nil {
		rlog.Debug("Request completed",
			"status", stats.StatusCode,
			"total_bytes", stats.TotalBytes,
			"latency_ms", stats.Latency,
			"backend_response_ms", stats.BackendResponseMs,
			"first_data_ms", stats.FirstDataMs,
			"streaming_ms", stats.StreamingMs)
		return
	}

	if errors.Is(err, common.ErrClientDisconnected) || stats.StatusCode != 0 {
		return
	}

	var backendErr *domain.BackendError
	if errors.As(err, &backendErr) {
		writeError(w, common.StatusForBackendError(backendErr.Timeout), backendErr.Err.Error(), ErrorTypeBackend)
		return
	}

	rlog.Error("Request failed", "error", err, "latency_ms", stats.Latency)
	writeError(w, http.StatusBadGateway, err.Error(), ErrorTypeBackend)
}
