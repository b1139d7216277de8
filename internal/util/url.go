package util

import (
	"net"
	"net/url"
	"strconv"
)

// BackendURL builds the base URL of the inference backend, bracketing IPv6
// literals where needed.
func BackendURL(host string, port int) *url.URL {
	return &url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
	}
}

// TargetURL resolves an inbound request path and query against the backend
// base. The inbound path is used verbatim, it is already rooted.
func TargetURL(base *url.URL, path, rawQuery string) *url.URL {
	target := *base
	target.Path = path
	target.RawPath = ""
	target.RawQuery = rawQuery
	return &target
}
