package constants

const (
	HeaderRequestID = "X-Shifter-Request-ID"
	HeaderMode      = "X-Shifter-Mode"
	HeaderSource    = "X-Shifter-Source"
)
