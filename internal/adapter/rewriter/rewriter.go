package rewriter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/thushan/shifter/internal/core/domain"
	"github.com/thushan/shifter/internal/core/ports"
)

const pathMessages = "messages"

func contentPath(index int) string {
	return pathMessages + "." + strconv.Itoa(index) + ".content"
}

// Rewriter builds outbound bodies. Edits go through sjson so every byte the
// client sent outside the touched keys survives unchanged.
type Rewriter struct {
	profiles ports.ProfileTable
}

func New(profiles ports.ProfileTable) *Rewriter {
	return &Rewriter{profiles: profiles}
}

// Rewrite injects the mode tag for alias decisions and then overwrites the
// six sampling keys with the mode's profile.
func (rw *Rewriter) Rewrite(req *domain.ChatRequest, decision domain.Decision) ([]byte, error) {
	out := bytes.Clone(req.Body)

	if decision.Source == domain.ProvenanceAlias {
		var err error
		if out, err = InjectTag(req, out, decision.Mode.Tag()); err != nil {
			return nil, err
		}
	}

	return MergeProfile(out, rw.profiles.ProfileFor(decision.Mode))
}

// MergeProfile sets each sampling key on body, replacing any client value.
func MergeProfile(body []byte, profile domain.SamplingProfile) ([]byte, error) {
	var err error
	for _, p := range profile.Params() {
		body, err = sjson.SetBytes(body, p.Key, p.Value)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", p.Key, err)
		}
	}
	return body, nil
}

// InjectTag puts tag at the front of the first system message wherever it
// sits, inserting one at messages[0] only when the request has none.
func InjectTag(req *domain.ChatRequest, body []byte, tag string) ([]byte, error) {
	if tag == "" {
		return body, nil
	}

	index, sys, ok := req.FirstSystem()
	if !ok {
		return insertSystemMessage(body, tag)
	}

	path := contentPath(index)
	switch sys.ContentKind {
	case domain.ContentString:
		if hasTag(sys.Content, tag) {
			return body, nil
		}
		return setString(body, path, prefixed(tag, sys.Content))
	case domain.ContentParts:
		return injectIntoParts(body, path, tag)
	default:
		return setString(body, path, tag)
	}
}

func injectIntoParts(body []byte, partsPath, tag string) ([]byte, error) {
	parts := gjson.GetBytes(body, partsPath)
	index := -1
	var text string
	for i, part := range parts.Array() {
		if part.Get("type").String() != "text" {
			continue
		}
		if t := part.Get("text"); t.Type == gjson.String {
			index = i
			text = t.String()
			break
		}
	}

	if index >= 0 {
		if hasTag(text, tag) {
			return body, nil
		}
		path := partsPath + "." + strconv.Itoa(index) + ".text"
		return setString(body, path, prefixed(tag, text))
	}

	part, err := sjson.SetBytes([]byte(`{"type":"text"}`), "text", tag)
	if err != nil {
		return nil, fmt.Errorf("building text part: %w", err)
	}
	return prependRaw(body, partsPath, parts, part)
}

func insertSystemMessage(body []byte, tag string) ([]byte, error) {
	msg, err := sjson.SetBytes([]byte(`{"role":"system"}`), "content", tag)
	if err != nil {
		return nil, fmt.Errorf("building system message: %w", err)
	}
	return prependRaw(body, pathMessages, gjson.GetBytes(body, pathMessages), msg)
}

// prependRaw rebuilds the array at path with first in front, reusing the raw
// bytes of the existing elements.
func prependRaw(body []byte, path string, existing gjson.Result, first []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(existing.Raw) + len(first) + 2)
	buf.WriteByte('[')
	buf.Write(first)
	existing.ForEach(func(_, item gjson.Result) bool {
		buf.WriteByte(',')
		buf.WriteString(item.Raw)
		return true
	})
	buf.WriteByte(']')

	out, err := sjson.SetRawBytes(body, path, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("rewriting %s: %w", path, err)
	}
	return out, nil
}

func setString(body []byte, path, value string) ([]byte, error) {
	out, err := sjson.SetBytes(body, path, value)
	if err != nil {
		return nil, fmt.Errorf("rewriting %s: %w", path, err)
	}
	return out, nil
}

func hasTag(content, tag string) bool {
	return strings.HasPrefix(strings.TrimLeftFunc(content, unicode.IsSpace), tag)
}

func prefixed(tag, content string) string {
	if content == "" {
		return tag
	}
	return tag + " " + content
}
