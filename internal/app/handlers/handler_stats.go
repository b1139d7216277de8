package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/thushan/shifter/internal/core/ports"
	"github.com/thushan/shifter/pkg/format"
	"github.com/thushan/shifter/pkg/nerdstats"
)

type statsSummary struct {
	Uptime         string `json:"uptime"`
	TotalBytes     string `json:"total_bytes"`
	AverageLatency string `json:"avg_latency"`
	P95Latency     string `json:"p95_latency"`
}

type runtimeSummary struct {
	*nerdstats.NerdStats
	HeapAllocHuman string `json:"heap_alloc"`
	AverageGCPause string `json:"avg_gc_pause"`
}

type statsResponse struct {
	Timestamp time.Time         `json:"timestamp"`
	Backend   string            `json:"backend"`
	Trigger   string            `json:"trigger"`
	Summary   statsSummary      `json:"summary"`
	Proxy     ports.ProxyStats  `json:"proxy"`
	Modes     []ports.ModeStats `json:"modes"`
	Runtime   runtimeSummary    `json:"runtime"`
}

func (a *Application) statsHandler(w http.ResponseWriter, r *http.Request) {
	proxyStats := a.statsCollector.GetProxyStats()
	modeStats := a.statsCollector.GetModeStats()

	modes := make([]ports.ModeStats, 0, len(modeStats))
	for _, ms := range modeStats {
		modes = append(modes, ms)
	}
	sort.Slice(modes, func(i, j int) bool {
		return modes[i].Mode < modes[j].Mode
	})

	ns := nerdstats.Snapshot(a.StartTime)

	resp := statsResponse{
		Timestamp: time.Now(),
		Backend:   a.Config.Backend.URL().String(),
		Trigger:   string(a.Config.Trigger),
		Summary: statsSummary{
			Uptime:         format.Uptime(ns.Uptime),
			TotalBytes:     format.Bytes(proxyStats.TotalBytes),
			AverageLatency: format.Latency(proxyStats.AverageLatency),
			P95Latency:     format.Latency(proxyStats.P95Latency),
		},
		Proxy: proxyStats,
		Modes: modes,
		Runtime: runtimeSummary{
			NerdStats:      ns,
			HeapAllocHuman: format.Bytes(int64(ns.HeapAlloc)),
			AverageGCPause: ns.AverageGCPause().String(),
		},
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		a.logger.Debug("Failed to write stats response", "error", err)
	}
}
