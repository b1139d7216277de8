package proxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/thushan/shifter/internal/adapter/proxy/common"
	"github.com/thushan/shifter/internal/core/domain"
	"github.com/thushan/shifter/internal/core/ports"
	"github.com/thushan/shifter/internal/logger"
	"github.com/thushan/shifter/internal/util"
	"github.com/thushan/shifter/pkg/pool"
)

const (
	DefaultStreamBufferSize = 8 * 1024
	DefaultTimeout          = 30 * time.Second
	DefaultKeepAlive        = 60 * time.Second

	DefaultSetNoDelay = true

	// llama-server is a single local engine; a small idle pool is plenty
	DefaultMaxIdleConns        = 20
	DefaultMaxIdleConnsPerHost = 10
	DefaultIdleConnTimeout     = 90 * time.Second
)

// Configuration holds the forwarder settings. No response or read timeout
// applies; generations can run for minutes.
type Configuration struct {
	ConnectionTimeout   time.Duration
	ConnectionKeepAlive time.Duration
	StreamBufferSize    int
}

func (c *Configuration) GetConnectionTimeout() time.Duration {
	if c.ConnectionTimeout == 0 {
		return DefaultTimeout
	}
	return c.ConnectionTimeout
}

func (c *Configuration) GetConnectionKeepAlive() time.Duration {
	if c.ConnectionKeepAlive == 0 {
		return DefaultKeepAlive
	}
	return c.ConnectionKeepAlive
}

func (c *Configuration) GetStreamBufferSize() int {
	if c.StreamBufferSize <= 0 {
		return DefaultStreamBufferSize
	}
	return c.StreamBufferSize
}

// Service forwards requests to a single llama-server and relays the reply.
type Service struct {
	backend        *url.URL
	transport      *http.Transport
	configuration  *Configuration
	bufferPool     *pool.Pool[*[]byte]
	statsCollector ports.StatsCollector
	logger         logger.StyledLogger
}

func NewService(backend *url.URL, configuration *Configuration, statsCollector ports.StatsCollector, log logger.StyledLogger) (*Service, error) {
	if backend == nil {
		return nil, errors.New("backend url is required")
	}
	if configuration == nil {
		configuration = &Configuration{}
	}

	bufferPool, err := pool.NewLitePool(func() *[]byte {
		buf := make([]byte, configuration.GetStreamBufferSize())
		return &buf
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create buffer pool: %w", err)
	}

	transport := &http.Transport{
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:     DefaultIdleConnTimeout,
		// pass the backend's encoding through untouched
		DisableCompression: true,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{
				Timeout:   configuration.GetConnectionTimeout(),
				KeepAlive: configuration.GetConnectionKeepAlive(),
			}
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			// tokens arrive a few bytes at a time, don't let Nagle batch them
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				if terr := tcpConn.SetNoDelay(DefaultSetNoDelay); terr != nil {
					log.Warn("failed to set NoDelay", "err", terr)
				}
			}
			return conn, nil
		},
	}

	return &Service{
		backend:        backend,
		transport:      transport,
		configuration:  configuration,
		bufferPool:     bufferPool,
		statsCollector: statsCollector,
		logger:         log,
	}, nil
}

func (s *Service) Backend() *url.URL {
	return s.backend
}

// Forward sends r (with body in place of r.Body when non-nil) to the same
// path on the backend. The outbound request shares ctx, so a client that
// goes away cancels the backend read.
//
// Errors returned before stats.StatusCode is set mean nothing was written to
// w and the caller should answer; *domain.BackendError carries the cause.
func (s *Service) Forward(ctx context.Context, w http.ResponseWriter, r *http.Request, body []byte, stats *ports.RequestStats, rlog logger.StyledLogger) (err error) {
	s.statsCollector.RecordConnection(1)
	defer s.statsCollector.RecordConnection(-1)

	defer func() {
		stats.EndTime = time.Now()
		stats.Latency = stats.EndTime.Sub(stats.StartTime).Milliseconds()
		s.statsCollector.RecordRequest(stats, err == nil && stats.StatusCode < http.StatusInternalServerError)
	}()

	targetURL := util.TargetURL(s.backend, r.URL.Path, r.URL.RawQuery)
	stats.TargetUrl = targetURL.String()

	var reqBody io.Reader = http.NoBody
	contentLength := int64(0)
	switch {
	case body != nil:
		reqBody = bytes.NewReader(body)
		contentLength = int64(len(body))
	case r.Body != nil && r.Body != http.NoBody:
		reqBody = r.Body
		contentLength = r.ContentLength
	}

	proxyReq, err := http.NewRequestWithContext(ctx, r.Method, stats.TargetUrl, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create proxy request: %w", err)
	}
	proxyReq.ContentLength = contentLength
	CopyHeaders(proxyReq, r)

	rlog.Debug("forwarding to backend", "method", r.Method, "target", stats.TargetUrl, "bytes", contentLength)

	backendStart := time.Now()
	resp, err := s.transport.RoundTrip(proxyReq)
	stats.BackendResponseMs = time.Since(backendStart).Milliseconds()

	if err != nil {
		if ctx.Err() != nil {
			stats.ClientDisconnected = true
			rlog.Info("client disconnected before backend responded", "waited_ms", stats.BackendResponseMs)
			return fmt.Errorf("%w: %w", common.ErrClientDisconnected, ctx.Err())
		}
		friendly := common.MakeUserFriendlyError(err, time.Since(stats.StartTime), "request")
		rlog.Error("backend request failed", "target", stats.TargetUrl, "error", friendly)
		return &domain.BackendError{Err: friendly, TargetURL: stats.TargetUrl, Timeout: common.IsTimeout(err)}
	}
	defer resp.Body.Close()

	SetResponseHeaders(w, resp, stats)
	w.WriteHeader(resp.StatusCode)
	stats.StatusCode = resp.StatusCode

	if resp.StatusCode >= http.StatusBadRequest {
		rlog.Warn("backend returned error status, relaying", "status", resp.StatusCode)
	}

	buffer := s.bufferPool.Get()
	defer s.bufferPool.Put(buffer)

	streamStart := time.Now()
	state, err := s.streamResponse(ctx, w, resp.Body, *buffer, rlog)
	stats.StreamingMs = time.Since(streamStart).Milliseconds()
	stats.TotalBytes = state.totalBytes
	stats.ClientDisconnected = state.clientDisconnected
	if state.firstDataAt.After(streamStart) {
		stats.FirstDataMs = state.firstDataAt.Sub(stats.StartTime).Milliseconds()
	}

	if err != nil {
		if state.clientDisconnected {
			rlog.Info("client disconnected during streaming",
				"total_bytes", state.totalBytes,
				"read_count", state.readCount)
			return fmt.Errorf("%w: %w", common.ErrClientDisconnected, err)
		}
		friendly := common.MakeUserFriendlyError(err, time.Since(stats.StartTime), "streaming")
		rlog.Error("stream relay failed", "error", friendly, "total_bytes", state.totalBytes)
		return friendly
	}

	return nil
}

// Cleanup closes idle backend connections.
func (s *Service) Cleanup() {
	s.transport.CloseIdleConnections()
}
