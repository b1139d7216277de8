package format

import (
	"fmt"
	"time"

	"github.com/docker/go-units"
)

const zeroLatency = "0ms"

// Bytes renders a byte count in decimal units, e.g. "1.5MB".
func Bytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return units.HumanSize(float64(n))
}

// Latency renders milliseconds compactly: 850ms, 2.4s.
func Latency(ms int64) string {
	if ms <= 0 {
		return zeroLatency
	}
	if ms >= 1000 {
		return fmt.Sprintf("%.1fs", float64(ms)/1000.0)
	}
	return fmt.Sprintf("%dms", ms)
}

// Uptime renders a coarse human duration, e.g. "3 hours".
func Uptime(d time.Duration) string {
	if d < time.Second {
		return "less than a second"
	}
	return units.HumanDuration(d)
}
