package ports

import (
	"context"
	"net/http"
	"time"

	"github.com/thushan/shifter/internal/core/domain"
	"github.com/thushan/shifter/internal/logger"
)

// ProxyService relays a request to the inference backend and streams the
// reply back. A nil body forwards r.Body untouched.
type ProxyService interface {
	Forward(ctx context.Context, w http.ResponseWriter, r *http.Request, body []byte, stats *RequestStats, rlog logger.StyledLogger) error
	Cleanup()
}

// RequestStats is filled in as a request moves through the proxy.
type RequestStats struct {
	StartTime time.Time
	EndTime   time.Time

	RequestID string
	TargetUrl string
	Mode      string
	Source    string

	StatusCode int
	TotalBytes int

	BackendResponseMs int64
	FirstDataMs       int64
	StreamingMs       int64
	Latency           int64

	ClientDisconnected bool
}
