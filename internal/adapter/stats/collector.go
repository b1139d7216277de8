package stats

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/thushan/shifter/internal/core/ports"
	"github.com/thushan/shifter/internal/logger"
)

// ModeBridge groups pass-through requests that never went through mode
// resolution.
const ModeBridge = "bridge"

// Collector aggregates request outcomes for /internal/stats. Nothing on the
// request path reads it back, so it never influences forwarding.
type Collector struct {
	startedAt time.Time
	logger    logger.StyledLogger

	modes    *xsync.Map[string, *modeData]
	statuses *xsync.Map[int, *xsync.Counter]
	latency  *LatencySampler

	totalRequests      *xsync.Counter
	successfulRequests *xsync.Counter
	failedRequests     *xsync.Counter
	rejectedRequests   *xsync.Counter
	clientDisconnects  *xsync.Counter
	activeConnections  *xsync.Counter
	totalBytes         *xsync.Counter
	totalLatency       *xsync.Counter

	minLatency atomic.Int64
	maxLatency atomic.Int64
}

type modeData struct {
	sources  *xsync.Map[string, *xsync.Counter]
	requests *xsync.Counter
	bytes    *xsync.Counter
	name     string
}

func NewCollector(log logger.StyledLogger) *Collector {
	c := &Collector{
		startedAt:          time.Now(),
		logger:             log,
		modes:              xsync.NewMap[string, *modeData](),
		statuses:           xsync.NewMap[int, *xsync.Counter](),
		latency:            NewLatencySampler(DefaultLatencySamples),
		totalRequests:      xsync.NewCounter(),
		successfulRequests: xsync.NewCounter(),
		failedRequests:     xsync.NewCounter(),
		rejectedRequests:   xsync.NewCounter(),
		clientDisconnects:  xsync.NewCounter(),
		activeConnections:  xsync.NewCounter(),
		totalBytes:         xsync.NewCounter(),
		totalLatency:       xsync.NewCounter(),
	}
	c.minLatency.Store(-1)
	return c
}

func (c *Collector) RecordRequest(stats *ports.RequestStats, success bool) {
	if stats == nil {
		c.logger.Warn("BUGCHECK: request recorded without stats, please file a bug report.")
		return
	}

	c.totalRequests.Inc()
	c.totalBytes.Add(int64(stats.TotalBytes))

	if stats.ClientDisconnected {
		c.clientDisconnects.Inc()
	}
	if stats.StatusCode > 0 {
		c.statusCounter(stats.StatusCode).Inc()
	}

	if success {
		c.successfulRequests.Inc()
		c.totalLatency.Add(stats.Latency)
		c.latency.Add(stats.Latency)
		c.updateLatencyBounds(stats.Latency)
	} else {
		c.failedRequests.Inc()
	}

	mode := stats.Mode
	if mode == "" {
		mode = ModeBridge
	}
	data := c.getOrInitMode(mode)
	data.requests.Inc()
	data.bytes.Add(int64(stats.TotalBytes))
	if stats.Source != "" {
		counter, _ := data.sources.LoadOrCompute(stats.Source, func() (*xsync.Counter, bool) {
			return xsync.NewCounter(), false
		})
		counter.Inc()
	}
}

// RecordRejected counts requests answered with 400 before reaching the backend.
func (c *Collector) RecordRejected() {
	c.rejectedRequests.Inc()
	c.statusCounter(400).Inc()
}

func (c *Collector) RecordConnection(delta int) {
	c.activeConnections.Add(int64(delta))
}

func (c *Collector) GetProxyStats() ports.ProxyStats {
	successful := c.successfulRequests.Value()

	var avgLatency int64
	if successful > 0 {
		avgLatency = c.totalLatency.Value() / successful
	}

	minLatency := c.minLatency.Load()
	if minLatency < 0 {
		minLatency = 0
	}

	p50, p95, p99 := c.latency.Percentiles()

	codes := make(map[string]int64)
	c.statuses.Range(func(code int, counter *xsync.Counter) bool {
		codes[strconv.Itoa(code)] = counter.Value()
		return true
	})

	return ports.ProxyStats{
		StartedAt:          c.startedAt,
		TotalRequests:      c.totalRequests.Value(),
		SuccessfulRequests: successful,
		FailedRequests:     c.failedRequests.Value(),
		RejectedRequests:   c.rejectedRequests.Value(),
		ClientDisconnects:  c.clientDisconnects.Value(),
		ActiveConnections:  c.activeConnections.Value(),
		TotalBytes:         c.totalBytes.Value(),
		AverageLatency:     avgLatency,
		MinLatency:         minLatency,
		MaxLatency:         c.maxLatency.Load(),
		P50Latency:         p50,
		P95Latency:         p95,
		P99Latency:         p99,
		StatusCodes:        codes,
	}
}

func (c *Collector) GetModeStats() map[string]ports.ModeStats {
	result := make(map[string]ports.ModeStats)

	c.modes.Range(func(name string, data *modeData) bool {
		sources := make(map[string]int64)
		data.sources.Range(func(source string, counter *xsync.Counter) bool {
			sources[source] = counter.Value()
			return true
		})
		result[name] = ports.ModeStats{
			Mode:       data.name,
			Requests:   data.requests.Value(),
			BySource:   sources,
			TotalBytes: data.bytes.Value(),
		}
		return true
	})

	return result
}

func (c *Collector) statusCounter(code int) *xsync.Counter {
	counter, _ := c.statuses.LoadOrCompute(code, func() (*xsync.Counter, bool) {
		return xsync.NewCounter(), false
	})
	return counter
}

func (c *Collector) getOrInitMode(name string) *modeData {
	data, _ := c.modes.LoadOrCompute(name, func() (*modeData, bool) {
		return &modeData{
			name:     name,
			sources:  xsync.NewMap[string, *xsync.Counter](),
			requests: xsync.NewCounter(),
			bytes:    xsync.NewCounter(),
		}, false
	})
	return data
}

func (c *Collector) updateLatencyBounds(ms int64) {
	for {
		current := c.minLatency.Load()
		if current != -1 && current <= ms {
			break
		}
		if c.minLatency.CompareAndSwap(current, ms) {
			break
		}
	}
	for {
		current := c.maxLatency.Load()
		if current >= ms {
			break
		}
		if c.maxLatency.CompareAndSwap(current, ms) {
			break
		}
	}
}
