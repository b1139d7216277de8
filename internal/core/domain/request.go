package domain

// ChatRequest is the parsed view of an inbound chat completion. Body keeps
// the original bytes; every field not modelled here travels inside it.
type ChatRequest struct {
	Model    string
	Body     []byte
	Messages []Message
	Stream   bool
}

// Message is one chat message. Content is the inspectable text: the string
// content itself, or the first text part when content is an array of parts.
type Message struct {
	Role        string
	Content     string
	ContentKind ContentKind
}

type ContentKind int

const (
	ContentAbsent ContentKind = iota
	ContentString
	ContentParts
	ContentOther
)

// LeadingSystem returns messages[0] when it is a system message. A system
// message anywhere else does not count as the system prompt.
func (r *ChatRequest) LeadingSystem() (Message, bool) {
	if r == nil || len(r.Messages) == 0 {
		return Message{}, false
	}
	if r.Messages[0].Role != RoleSystem {
		return Message{}, false
	}
	return r.Messages[0], true
}

// FirstSystem returns the first system message at any position along with
// its index. It is where an alias tag goes.
func (r *ChatRequest) FirstSystem() (int, Message, bool) {
	if r == nil {
		return -1, Message{}, false
	}
	for i, m := range r.Messages {
		if m.Role == RoleSystem {
			return i, m, true
		}
	}
	return -1, Message{}, false
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
