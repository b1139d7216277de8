package ports

import "time"

type StatsCollector interface {
	RecordRequest(stats *RequestStats, success bool)
	RecordRejected()
	RecordConnection(delta int)

	GetProxyStats() ProxyStats
	GetModeStats() map[string]ModeStats
}

type ProxyStats struct {
	StartedAt          time.Time `json:"started_at"`
	TotalRequests      int64     `json:"total_requests"`
	SuccessfulRequests int64     `json:"successful_requests"`
	FailedRequests     int64     `json:"failed_requests"`
	RejectedRequests   int64     `json:"rejected_requests"`
	ClientDisconnects  int64     `json:"client_disconnects"`
	ActiveConnections  int64     `json:"active_connections"`
	TotalBytes         int64     `json:"total_bytes"`
	AverageLatency     int64     `json:"avg_latency_ms"`
	MinLatency         int64     `json:"min_latency_ms"`
	MaxLatency         int64     `json:"max_latency_ms"`
	P50Latency         int64     `json:"p50_latency_ms"`
	P95Latency         int64     `json:"p95_latency_ms"`
	P99Latency         int64     `json:"p99_latency_ms"`

	StatusCodes map[string]int64 `json:"status_codes"`
}

type ModeStats struct {
	Mode       string           `json:"mode"`
	Requests   int64            `json:"requests"`
	BySource   map[string]int64 `json:"by_source"`
	TotalBytes int64            `json:"total_bytes"`
}
