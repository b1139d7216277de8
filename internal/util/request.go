package util

import (
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
)

// GenerateRequestID returns a short, readable id for correlating log lines,
// e.g. "suri_grazing_1a2b". Not unique enough for anything but logs.
func GenerateRequestID() string {
	actions := []string{
		"grazing", "trekking", "humming", "spitting", "prancing",
		"carrying", "leading", "following", "resting", "alerting",
		"browsing", "foraging", "wandering", "galloping", "ambling",
	}
	llamas := []string{
		"huacaya", "suri", "vicuna", "alpaca", "guanaco",
		"woolly", "silky", "fluffy", "curly", "shaggy",
		"noble", "gentle", "swift", "steady", "proud",
	}

	group := llamas[rand.IntN(len(llamas))]
	action := actions[rand.IntN(len(actions))]
	suffix := fmt.Sprintf("%04x", rand.IntN(65536))

	return fmt.Sprintf("%s_%s_%s", group, action, suffix)
}

// GetClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then
// the socket peer address.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}
	return RemoteHost(r)
}

// RemoteHost strips the port from r.RemoteAddr.
func RemoteHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
