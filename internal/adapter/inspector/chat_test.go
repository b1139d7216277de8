package inspector

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thushan/shifter/internal/core/domain"
)

func TestParseChatRequest_Valid(t *testing.T) {
	body := []byte(`{"model":"openai/Qwen3.5-NonThinking","stream":true,"max_tokens":64,` +
		`"messages":[{"role":"system","content":"/no_thinking Be direct"},{"role":"user","content":"Hi"}]}`)

	req, err := ParseChatRequest(body)
	require.NoError(t, err)

	assert.Equal(t, "openai/Qwen3.5-NonThinking", req.Model)
	assert.True(t, req.Stream)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, domain.Message{Role: "system", Content: "/no_thinking Be direct", ContentKind: domain.ContentString}, req.Messages[0])
	assert.Equal(t, "user", req.Messages[1].Role)
	assert.Equal(t, body, req.Body)

	sys, ok := req.LeadingSystem()
	assert.True(t, ok)
	assert.Equal(t, "/no_thinking Be direct", sys.Content)
}

func TestParseChatRequest_StreamFlag(t *testing.T) {
	tests := []struct {
		body   string
		stream bool
	}{
		{`{"model":"m","messages":[]}`, false},
		{`{"model":"m","messages":[],"stream":false}`, false},
		{`{"model":"m","messages":[],"stream":true}`, true},
		{`{"model":"m","messages":[],"stream":"true"}`, false},
	}
	for _, tt := range tests {
		req, err := ParseChatRequest([]byte(tt.body))
		require.NoError(t, err, tt.body)
		assert.Equal(t, tt.stream, req.Stream, tt.body)
	}
}

func TestParseChatRequest_ContentKinds(t *testing.T) {
	body := []byte(`{"model":"m","messages":[
		{"role":"system","content":[{"type":"image_url","image_url":{"url":"x"}},{"type":"text","text":"/precise parts"},{"type":"text","text":"second"}]},
		{"role":"assistant","content":null,"tool_calls":[]},
		{"role":"tool"},
		{"role":"user","content":{"weird":true}}
	]}`)

	req, err := ParseChatRequest(body)
	require.NoError(t, err)
	require.Len(t, req.Messages, 4)

	assert.Equal(t, domain.ContentParts, req.Messages[0].ContentKind)
	assert.Equal(t, "/precise parts", req.Messages[0].Content)
	assert.Equal(t, domain.ContentAbsent, req.Messages[1].ContentKind)
	assert.Equal(t, domain.ContentAbsent, req.Messages[2].ContentKind)
	assert.Equal(t, domain.ContentOther, req.Messages[3].ContentKind)
	assert.Empty(t, req.Messages[3].Content)
}

func TestParseChatRequest_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"empty", ``, ""},
		{"whitespace", "  \n", ""},
		{"broken json", `{"model":`, ""},
		{"array root", `[{"model":"m"}]`, ""},
		{"string root", `"hello"`, ""},
		{"missing model", `{"messages":[]}`, "model"},
		{"numeric model", `{"model":7,"messages":[]}`, "model"},
		{"null model", `{"model":null,"messages":[]}`, "model"},
		{"missing messages", `{"model":"m"}`, "messages"},
		{"messages object", `{"model":"m","messages":{"role":"user"}}`, "messages"},
		{"message not object", `{"model":"m","messages":["hi"]}`, "messages[0]"},
		{"role missing", `{"model":"m","messages":[{"role":"user","content":"a"},{"content":"b"}]}`, "messages[1].role"},
		{"role numeric", `{"model":"m","messages":[{"role":1}]}`, "messages[0].role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseChatRequest([]byte(tt.body))
			assert.Nil(t, req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidRequest))

			var verr *domain.RequestValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestChatInspector_ReadBody(t *testing.T) {
	ci, err := NewChatInspector()
	require.NoError(t, err)

	payload := `{"model":"m","messages":[]}`
	r := httptest.NewRequest("POST", "/v1/chat/completions", strings.NewReader(payload))

	body, err := ci.ReadBody(r)
	require.NoError(t, err)
	assert.Equal(t, payload, string(body))

	// a second read must not alias the pooled buffer of the first
	r2 := httptest.NewRequest("POST", "/v1/chat/completions", strings.NewReader(`{"model":"other","messages":[]}`))
	_, err = ci.ReadBody(r2)
	require.NoError(t, err)
	assert.Equal(t, payload, string(body))

	req, err := ci.Parse(body)
	require.NoError(t, err)
	assert.Equal(t, "m", req.Model)
}
