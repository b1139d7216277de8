package proxy

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thushan/shifter/internal/core/ports"
)

func TestCopyHeaders(t *testing.T) {
	orig := httptest.NewRequest(http.MethodPost, "http://shifter.local/v1/chat/completions", nil)
	orig.RemoteAddr = "192.168.1.9:40000"
	orig.Header.Set("Authorization", "Bearer x")
	orig.Header.Set("Content-Type", "application/json")
	orig.Header.Set("Content-Length", "999")
	orig.Header.Set("Keep-Alive", "timeout=5")
	orig.Header.Set("Transfer-Encoding", "chunked")
	orig.Header.Set("Upgrade", "h2c")
	orig.Header.Set("X-Forwarded-For", "203.0.113.7")
	orig.Header.Set("Via", "1.1 edge")
	orig.Header.Add("Accept", "text/event-stream")
	orig.Header.Add("Accept", "application/json")

	proxyReq := httptest.NewRequest(http.MethodPost, "http://localhost:8188/v1/chat/completions", nil)
	CopyHeaders(proxyReq, orig)

	h := proxyReq.Header
	assert.Equal(t, "Bearer x", h.Get("Authorization"))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Empty(t, h.Get("Content-Length"))
	assert.Empty(t, h.Get("Keep-Alive"))
	assert.Empty(t, h.Get("Transfer-Encoding"))
	assert.Empty(t, h.Get("Upgrade"))
	assert.Equal(t, []string{"text/event-stream", "application/json"}, h.Values("Accept"))
	assert.Equal(t, "203.0.113.7, 192.168.1.9", h.Get("X-Forwarded-For"))
	assert.Equal(t, "http", h.Get("X-Forwarded-Proto"))
	assert.Equal(t, "shifter.local", h.Get("X-Forwarded-Host"))
	assert.Contains(t, h.Get("Via"), "1.1 edge, 1.1 shifter/")
	assert.NotEmpty(t, h.Get("X-Proxied-By"))
}

func TestCopyHeaders_TLSAndExistingForwarded(t *testing.T) {
	orig := httptest.NewRequest(http.MethodGet, "/v1/models", nil)
	orig.TLS = &tls.ConnectionState{}
	orig.Header.Set("X-Forwarded-Host", "public.example")

	proxyReq := httptest.NewRequest(http.MethodGet, "/v1/models", nil)
	CopyHeaders(proxyReq, orig)

	assert.Equal(t, "https", proxyReq.Header.Get("X-Forwarded-Proto"))
	assert.Equal(t, "public.example", proxyReq.Header.Get("X-Forwarded-Host"))
}

func TestSetResponseHeaders(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Content-Type", "text/event-stream")
	resp.Header.Set("Cache-Control", "no-cache")
	resp.Header.Set("Connection", "close")
	resp.Header.Set("Transfer-Encoding", "chunked")

	rec := httptest.NewRecorder()
	SetResponseHeaders(rec, resp, &ports.RequestStats{RequestID: "rid", Mode: "precise", Source: "prompt"})

	h := rec.Header()
	assert.Equal(t, "text/event-stream", h.Get("Content-Type"))
	assert.Equal(t, "no-cache", h.Get("Cache-Control"))
	assert.Empty(t, h.Get("Connection"))
	assert.Empty(t, h.Get("Transfer-Encoding"))
	assert.Equal(t, "rid", h.Get("X-Shifter-Request-ID"))
	assert.Equal(t, "precise", h.Get("X-Shifter-Mode"))
	assert.Equal(t, "prompt", h.Get("X-Shifter-Source"))
}

func TestSetResponseHeaders_Bridge(t *testing.T) {
	resp := &http.Response{Header: http.Header{"Content-Type": {"application/json"}}}
	rec := httptest.NewRecorder()
	SetResponseHeaders(rec, resp, &ports.RequestStats{RequestID: "rid"})

	assert.Equal(t, "rid", rec.Header().Get("X-Shifter-Request-ID"))
	assert.Empty(t, rec.Header().Get("X-Shifter-Mode"))
	assert.Empty(t, rec.Header().Get("X-Shifter-Source"))
}
