package constants

type contextKey string

const (
	ContextRequestIDKey   contextKey = "request_id"   // generated by each intercepted/bridged request
	ContextRequestTimeKey contextKey = "request_time" // when the handler picked the request up
)
