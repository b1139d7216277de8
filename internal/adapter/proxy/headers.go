package proxy

import (
	"net/http"
	"strings"

	"github.com/thushan/shifter/internal/core/constants"
	"github.com/thushan/shifter/internal/core/ports"
	"github.com/thushan/shifter/internal/util"
	"github.com/thushan/shifter/internal/version"
)

// RFC 7230 section 6.1, plus Proxy-Connection which some clients still send.
var hopByHopHeaders = map[string]struct{}{
	"Connection":          {},
	"Proxy-Connection":    {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
}

func isHopByHopHeader(header string) bool {
	_, ok := hopByHopHeaders[http.CanonicalHeaderKey(header)]
	return ok
}

// connectionTokens lists extra headers named in Connection, which are also
// hop-by-hop for this message.
func connectionTokens(h http.Header) map[string]struct{} {
	values := h.Values("Connection")
	if len(values) == 0 {
		return nil
	}
	tokens := make(map[string]struct{})
	for _, v := range values {
		for _, tok := range strings.Split(v, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				tokens[http.CanonicalHeaderKey(tok)] = struct{}{}
			}
		}
	}
	return tokens
}

func copyEndToEnd(dst, src http.Header) {
	extra := connectionTokens(src)
	for header, values := range src {
		if isHopByHopHeader(header) {
			continue
		}
		if _, ok := extra[http.CanonicalHeaderKey(header)]; ok {
			continue
		}
		dst[header] = append([]string(nil), values...)
	}
}

// CopyHeaders copies the client's end-to-end headers onto the backend
// request. Authorization is kept since llama-server may run with --api-key.
// Host is left to the target URL.
func CopyHeaders(proxyReq, originalReq *http.Request) {
	proxyReq.Header = make(http.Header, len(originalReq.Header)+4)
	copyEndToEnd(proxyReq.Header, originalReq.Header)

	// the body may have been rewritten; net/http derives it from ContentLength
	proxyReq.Header.Del(constants.HeaderContentLength)

	proxyReq.Header.Set("X-Proxied-By", version.ProxiedBy())
	if via := originalReq.Header.Get("Via"); via != "" {
		proxyReq.Header.Set("Via", via+", "+version.Via())
	} else {
		proxyReq.Header.Set("Via", version.Via())
	}

	updateForwardedHeaders(proxyReq, originalReq)
}

func updateForwardedHeaders(proxyReq, originalReq *http.Request) {
	remote := util.RemoteHost(originalReq)

	if forwarded := originalReq.Header.Get("X-Forwarded-For"); forwarded != "" && remote != "" {
		proxyReq.Header.Set("X-Forwarded-For", forwarded+", "+remote)
	} else if remote != "" {
		proxyReq.Header.Set("X-Forwarded-For", remote)
	}

	if originalReq.Header.Get("X-Forwarded-Proto") == "" {
		if originalReq.TLS != nil {
			proxyReq.Header.Set("X-Forwarded-Proto", "https")
		} else {
			proxyReq.Header.Set("X-Forwarded-Proto", "http")
		}
	}

	if originalReq.Header.Get("X-Forwarded-Host") == "" && originalReq.Host != "" {
		proxyReq.Header.Set("X-Forwarded-Host", originalReq.Host)
	}
}

// SetResponseHeaders mirrors the backend's end-to-end headers and tags the
// response with the request id and, for intercepted requests, the mode.
func SetResponseHeaders(w http.ResponseWriter, resp *http.Response, stats *ports.RequestStats) {
	h := w.Header()
	copyEndToEnd(h, resp.Header)

	h.Set("Via", version.Via())

	if stats == nil {
		return
	}
	if stats.RequestID != "" {
		h.Set(constants.HeaderRequestID, stats.RequestID)
	}
	if stats.Mode != "" {
		h.Set(constants.HeaderMode, stats.Mode)
		h.Set(constants.HeaderSource, stats.Source)
	}
}
