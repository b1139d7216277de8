package nerdstats

import (
	"runtime"
	"time"
)

// NerdStats is a small runtime snapshot surfaced on /internal/stats and in
// the shutdown summary.
type NerdStats struct {
	GoVersion     string        `json:"go_version"`
	Uptime        time.Duration `json:"-"`
	HeapAlloc     uint64        `json:"heap_alloc_bytes"`
	HeapSys       uint64        `json:"heap_sys_bytes"`
	TotalAlloc    uint64        `json:"total_alloc_bytes"`
	TotalGCPause  time.Duration `json:"-"`
	NumGoroutines int           `json:"goroutines"`
	NumCPU        int           `json:"num_cpu"`
	NumGC         uint32        `json:"num_gc"`
}

func Snapshot(startTime time.Time) *NerdStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &NerdStats{
		GoVersion:     runtime.Version(),
		Uptime:        time.Since(startTime),
		HeapAlloc:     m.HeapAlloc,
		HeapSys:       m.HeapSys,
		TotalAlloc:    m.TotalAlloc,
		TotalGCPause:  time.Duration(m.PauseTotalNs),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		NumGC:         m.NumGC,
	}
}

// AverageGCPause is zero until the first collection.
func (ns *NerdStats) AverageGCPause() time.Duration {
	if ns.NumGC == 0 {
		return 0
	}
	return ns.TotalGCPause / time.Duration(ns.NumGC)
}
