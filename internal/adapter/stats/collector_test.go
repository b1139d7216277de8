package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thushan/shifter/internal/core/ports"
	"github.com/thushan/shifter/internal/logger"
)

func createTestLogger() logger.StyledLogger {
	loggerCfg := &logger.Config{Level: "error", Theme: "default"}
	log, _, _ := logger.New(loggerCfg)
	return logger.NewPlainStyledLogger(log)
}

func TestCollector_RecordRequest(t *testing.T) {
	c := NewCollector(createTestLogger())

	c.RecordRequest(&ports.RequestStats{Mode: "non-thinking", Source: "alias", StatusCode: 200, TotalBytes: 100, Latency: 40}, true)
	c.RecordRequest(&ports.RequestStats{Mode: "non-thinking", Source: "prompt", StatusCode: 200, TotalBytes: 50, Latency: 20}, true)
	c.RecordRequest(&ports.RequestStats{Mode: "general", Source: "default", StatusCode: 500, TotalBytes: 10, Latency: 5}, false)
	c.RecordRequest(&ports.RequestStats{StatusCode: 200, TotalBytes: 7, Latency: 1}, true)

	ps := c.GetProxyStats()
	assert.Equal(t, int64(4), ps.TotalRequests)
	assert.Equal(t, int64(3), ps.SuccessfulRequests)
	assert.Equal(t, int64(1), ps.FailedRequests)
	assert.Equal(t, int64(167), ps.TotalBytes)
	assert.Equal(t, int64(1), ps.MinLatency)
	assert.Equal(t, int64(40), ps.MaxLatency)
	assert.Equal(t, int64((40+20+1)/3), ps.AverageLatency)
	assert.Equal(t, int64(3), ps.StatusCodes["200"])
	assert.Equal(t, int64(1), ps.StatusCodes["500"])

	modes := c.GetModeStats()
	require.Contains(t, modes, "non-thinking")
	assert.Equal(t, int64(2), modes["non-thinking"].Requests)
	assert.Equal(t, int64(150), modes["non-thinking"].TotalBytes)
	assert.Equal(t, map[string]int64{"alias": 1, "prompt": 1}, modes["non-thinking"].BySource)
	assert.Equal(t, int64(1), modes[ModeBridge].Requests)
	assert.Empty(t, modes[ModeBridge].BySource)
}

func TestCollector_RejectedAndDisconnects(t *testing.T) {
	c := NewCollector(createTestLogger())

	c.RecordRejected()
	c.RecordRequest(&ports.RequestStats{Mode: "precise", Source: "prompt", StatusCode: 200, ClientDisconnected: true}, false)
	c.RecordRequest(nil, true)

	ps := c.GetProxyStats()
	assert.Equal(t, int64(1), ps.RejectedRequests)
	assert.Equal(t, int64(1), ps.ClientDisconnects)
	assert.Equal(t, int64(1), ps.StatusCodes["400"])
	assert.Equal(t, int64(1), ps.TotalRequests)
	assert.Equal(t, int64(0), ps.MinLatency)
}

func TestCollector_Connections(t *testing.T) {
	c := NewCollector(createTestLogger())
	c.RecordConnection(1)
	c.RecordConnection(1)
	c.RecordConnection(-1)
	assert.Equal(t, int64(1), c.GetProxyStats().ActiveConnections)
}

func TestCollector_Concurrent(t *testing.T) {
	c := NewCollector(createTestLogger())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mode := "general"
			if i%2 == 0 {
				mode = "precise"
			}
			c.RecordConnection(1)
			c.RecordRequest(&ports.RequestStats{Mode: mode, Source: "alias", StatusCode: 200, TotalBytes: 1, Latency: int64(i)}, true)
			c.RecordConnection(-1)
		}(i)
	}
	wg.Wait()

	ps := c.GetProxyStats()
	assert.Equal(t, int64(50), ps.TotalRequests)
	assert.Equal(t, int64(0), ps.ActiveConnections)
	assert.Equal(t, int64(0), ps.MinLatency)
	assert.Equal(t, int64(49), ps.MaxLatency)

	modes := c.GetModeStats()
	assert.Equal(t, int64(25), modes["general"].Requests)
	assert.Equal(t, int64(25), modes["precise"].Requests)
}

func TestLatencySampler(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		p50, p95, p99 := NewLatencySampler(10).Percentiles()
		assert.Zero(t, p50)
		assert.Zero(t, p95)
		assert.Zero(t, p99)
	})

	t.Run("ordering", func(t *testing.T) {
		ls := NewLatencySampler(10)
		for i := int64(1); i <= 100; i++ {
			ls.Add(i)
		}
		assert.Equal(t, int64(100), ls.Count())
		p50, p95, p99 := ls.Percentiles()
		assert.LessOrEqual(t, p50, p95)
		assert.LessOrEqual(t, p95, p99)
	})

	t.Run("exact when under capacity", func(t *testing.T) {
		ls := NewLatencySampler(0)
		for i := int64(1); i <= 100; i++ {
			ls.Add(i)
		}
		p50, p95, p99 := ls.Percentiles()
		assert.Equal(t, int64(51), p50)
		assert.Equal(t, int64(96), p95)
		assert.Equal(t, int64(100), p99)
	})
}
