package inspector

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/thushan/shifter/internal/core/domain"
	"github.com/thushan/shifter/pkg/pool"
)

const (
	fieldModel    = "model"
	fieldMessages = "messages"
	fieldStream   = "stream"
	fieldRole     = "role"
	fieldContent  = "content"
	fieldType     = "type"
	fieldText     = "text"

	partTypeText = "text"
)

// ChatInspector reads and validates chat completion bodies. Only the fields
// needed for mode resolution are decoded; the raw bytes are kept as-is.
type ChatInspector struct {
	bufferPool *pool.Pool[*bytes.Buffer]
}

func NewChatInspector() (*ChatInspector, error) {
	bufPool, err := pool.NewLitePool(func() *bytes.Buffer {
		return new(bytes.Buffer)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create buffer pool: %w", err)
	}
	return &ChatInspector{bufferPool: bufPool}, nil
}

// ReadBody drains r.Body into a freshly allocated slice.
func (ci *ChatInspector) ReadBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	buffer := ci.bufferPool.Get()
	defer func() {
		buffer.Reset()
		ci.bufferPool.Put(buffer)
	}()

	if r.ContentLength > 0 {
		buffer.Grow(int(r.ContentLength))
	}
	if _, err := io.Copy(buffer, r.Body); err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return bytes.Clone(buffer.Bytes()), nil
}

// Parse validates body and returns the inspectable view. Errors are
// *domain.RequestValidationError and wrap domain.ErrInvalidRequest.
func (ci *ChatInspector) Parse(body []byte) (*domain.ChatRequest, error) {
	return ParseChatRequest(body)
}

func ParseChatRequest(body []byte) (*domain.ChatRequest, error) {
	if len(bytes.TrimSpace(body)) == 0 || !gjson.ValidBytes(body) {
		return nil, errNotJSON
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, errNotObject
	}

	fields := root.Map()

	model, ok := fields[fieldModel]
	if !ok {
		return nil, errModelMissing
	}
	if model.Type != gjson.String {
		return nil, errModelType
	}

	rawMessages, ok := fields[fieldMessages]
	if !ok {
		return nil, errMessagesMissing
	}
	if !rawMessages.IsArray() {
		return nil, errMessagesType
	}

	items := rawMessages.Array()
	messages := make([]domain.Message, 0, len(items))
	for i, item := range items {
		msg, err := parseMessage(i, item)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return &domain.ChatRequest{
		Model:    model.String(),
		Messages: messages,
		Stream:   fields[fieldStream].Type == gjson.True,
		Body:     body,
	}, nil
}

func parseMessage(index int, item gjson.Result) (domain.Message, error) {
	if !item.IsObject() {
		return domain.Message{}, invalid(fmt.Sprintf("messages[%d]", index), "must be an object")
	}

	role := item.Get(fieldRole)
	if role.Type != gjson.String {
		return domain.Message{}, invalid(fmt.Sprintf("messages[%d].role", index), "must be a string")
	}

	msg := domain.Message{Role: role.String()}
	content := item.Get(fieldContent)

	switch {
	case !content.Exists() || content.Type == gjson.Null:
		msg.ContentKind = domain.ContentAbsent
	case content.Type == gjson.String:
		msg.ContentKind = domain.ContentString
		msg.Content = content.String()
	case content.IsArray():
		msg.ContentKind = domain.ContentParts
		msg.Content = firstTextPart(content)
	default:
		msg.ContentKind = domain.ContentOther
	}

	return msg, nil
}

// firstTextPart returns the text of the first {"type":"text"} part.
func firstTextPart(parts gjson.Result) string {
	var text string
	parts.ForEach(func(_, part gjson.Result) bool {
		if part.Get(fieldType).String() != partTypeText {
			return true
		}
		if t := part.Get(fieldText); t.Type == gjson.String {
			text = t.String()
			return false
		}
		return true
	})
	return text
}
