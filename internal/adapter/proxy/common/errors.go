package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"
)

// ErrClientDisconnected is returned when the caller went away mid-request.
var ErrClientDisconnected = errors.New("client disconnected")

// MakeUserFriendlyError turns transport failures into messages that point at
// the likely cause. The original error stays wrapped where it adds detail.
//
//nolint:gocognit // a flat switch reads better than helper splitting here
func MakeUserFriendlyError(err error, duration time.Duration, errorContext string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled):
		if duration < 2*time.Second {
			return fmt.Errorf("request cancelled after %.1fs - client disconnected immediately", duration.Seconds())
		}
		return fmt.Errorf("request cancelled after %.1fs - client disconnected during %s", duration.Seconds(), errorContext)

	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("request timeout after %.1fs - llama-server did not answer in time", duration.Seconds())

	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		if errorContext == "streaming" {
			return fmt.Errorf("llama-server closed connection after %.1fs - response stream ended unexpectedly", duration.Seconds())
		}
		return fmt.Errorf("connection closed after %.1fs - llama-server ended communication unexpectedly", duration.Seconds())
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("connection refused after %.1fs - llama-server is not running or not accepting connections", duration.Seconds())
	}
	if errors.Is(err, syscall.ECONNRESET) {
		return fmt.Errorf("connection reset after %.1fs - llama-server forcibly closed connection (possibly overloaded)", duration.Seconds())
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch opErr.Op {
		case "dial":
			if opErr.Timeout() {
				return fmt.Errorf("connection timeout after %.1fs - cannot reach llama-server at %s", duration.Seconds(), opErr.Addr)
			}
			return fmt.Errorf("connection failed after %.1fs - cannot reach llama-server at %s (check it is running)", duration.Seconds(), opErr.Addr)
		case "read":
			return fmt.Errorf("connection lost after %.1fs while reading response - llama-server disconnected", duration.Seconds())
		case "write":
			return fmt.Errorf("connection lost after %.1fs while sending request - llama-server unavailable", duration.Seconds())
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("network timeout after %.1fs - llama-server did not respond", duration.Seconds())
	}

	if strings.Contains(err.Error(), "no such host") {
		return fmt.Errorf("DNS lookup failed after %.1fs - cannot resolve llama-server hostname (check --llm-host)", duration.Seconds())
	}

	return fmt.Errorf("request failed after %.1fs: %w", duration.Seconds(), err)
}

// IsTimeout reports whether err is a deadline or network timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// StatusForBackendError maps a transport failure onto the gateway status
// reported to the client.
func StatusForBackendError(timeout bool) int {
	if timeout {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}
