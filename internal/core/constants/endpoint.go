package constants

const (
	DefaultHealthCheckEndpoint = "/internal/health"
	DefaultStatsEndpoint       = "/internal/stats"
	DefaultVersionEndpoint     = "/version"
	DefaultPathPrefix          = "/"

	PathV1ChatCompletions = "/v1/chat/completions"
)
