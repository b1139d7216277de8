package constants

const (
	ContentTypeJSON        = "application/json"
	ContentTypeText        = "text/plain"
	ContentTypeEventStream = "text/event-stream"

	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
)
