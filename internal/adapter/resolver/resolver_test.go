package resolver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thushan/shifter/internal/core/domain"
)

func chat(model string, msgs ...domain.Message) *domain.ChatRequest {
	return &domain.ChatRequest{Model: model, Messages: msgs}
}

func system(content string) domain.Message {
	return domain.Message{Role: domain.RoleSystem, Content: content, ContentKind: domain.ContentString}
}

func user(content string) domain.Message {
	return domain.Message{Role: domain.RoleUser, Content: content, ContentKind: domain.ContentString}
}

func TestResolve_PromptTrigger(t *testing.T) {
	r := New(domain.TriggerPrompt)

	tests := []struct {
		name   string
		req    *domain.ChatRequest
		mode   domain.Mode
		source domain.Provenance
		match  string
	}{
		{"no_thinking tag", chat("qwen", system("/no_thinking Be direct"), user("Hi")), domain.ModeNonThinking, domain.ProvenancePrompt, "/no_thinking"},
		{"precise tag", chat("qwen", system("/precise You are a coder")), domain.ModePrecise, domain.ProvenancePrompt, "/precise"},
		{"thinking tag", chat("qwen", system("/thinking")), domain.ModeExplicitThinking, domain.ProvenancePrompt, "/thinking"},
		{"leading whitespace trimmed", chat("qwen", system("  \n\t/precise go")), domain.ModePrecise, domain.ProvenancePrompt, "/precise"},
		{"unicode whitespace trimmed", chat("qwen", system("\u00a0\v\f/thinking go")), domain.ModeExplicitThinking, domain.ProvenancePrompt, "/thinking"},
		{"no system message", chat("qwen", user("Hi")), domain.ModeGeneral, domain.ProvenanceDefault, ""},
		{"empty message list", chat("qwen"), domain.ModeGeneral, domain.ProvenanceDefault, ""},
		{"tag mid-string ignored", chat("qwen", system("Please use /no_thinking")), domain.ModeGeneral, domain.ProvenanceDefault, ""},
		{"tag case-sensitive", chat("qwen", system("/No_Thinking hi")), domain.ModeGeneral, domain.ProvenanceDefault, ""},
		{"system not first", chat("qwen", user("Hi"), system("/no_thinking")), domain.ModeGeneral, domain.ProvenanceDefault, ""},
		{"alias ignored", chat("qwen-nonthinking", user("Hi")), domain.ModeGeneral, domain.ProvenanceDefault, ""},
		{"unrecognised tag", chat("qwen", system("/creative write a poem")), domain.ModeGeneral, domain.ProvenanceDefault, ""},
		{"first prefix governs", chat("qwen", system("/precise then /no_thinking")), domain.ModePrecise, domain.ProvenancePrompt, "/precise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := r.Resolve(tt.req)
			assert.Equal(t, tt.mode, d.Mode)
			assert.Equal(t, tt.source, d.Source)
			assert.Equal(t, tt.match, d.Match)
		})
	}
}

func TestResolve_AliasTrigger(t *testing.T) {
	r := New(domain.TriggerAlias)

	tests := []struct {
		model string
		mode  domain.Mode
		match string
	}{
		{"openai/Qwen3.5-NonThinking", domain.ModeNonThinking, "nonthinking"},
		{"qwen3-no_thinking", domain.ModeNonThinking, "no_thinking"},
		{"qwen3-Non-Thinking", domain.ModeNonThinking, "non-thinking"},
		{"qwen3-not-thinking", domain.ModeNonThinking, "not-thinking"},
		{"qwen3-FAST", domain.ModeNonThinking, "fast"},
		{"Qwen3-30B-A3B-Instruct", domain.ModeNonThinking, "instruct"},
		{"qwen-precise", domain.ModePrecise, "precise"},
		{"qwen3-coder", domain.ModePrecise, "coder"},
		{"qwen-code", domain.ModePrecise, "code"},
		{"qwen-webdev", domain.ModePrecise, "webdev"},
		{"qwen-thinking", domain.ModeExplicitThinking, "thinking"},
		{"qwen-reasoning", domain.ModeExplicitThinking, "reasoning"},
		{"qwen-think", domain.ModeExplicitThinking, "think"},
		{"qwen-thinking-coder", domain.ModePrecise, "coder"},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			d := r.Resolve(chat(tt.model, system("/thinking ignored under alias")))
			assert.Equal(t, tt.mode, d.Mode)
			assert.Equal(t, domain.ProvenanceAlias, d.Source)
			assert.Equal(t, tt.match, d.Match)
		})
	}

	t.Run("no match", func(t *testing.T) {
		d := r.Resolve(chat("llama-3.1-8b", user("Hi")))
		assert.Equal(t, domain.DefaultDecision(), d)
	})

	t.Run("empty model", func(t *testing.T) {
		d := r.Resolve(chat("", user("Hi")))
		assert.True(t, d.IsDefault())
	})
}

func TestResolve_AliasNonThinkingProperty(t *testing.T) {
	r := New(domain.TriggerAlias)
	for _, model := range []string{"nonthinking", "NONTHINKING", "x-NonThinking-y", "org/model-nOnThInKiNg:latest", "think-nonthinking"} {
		d := r.Resolve(chat(model))
		assert.Equal(t, domain.ModeNonThinking, d.Mode, "model %q", model)
	}
}

func TestResolve_AnyTrigger(t *testing.T) {
	r := New(domain.TriggerAny)

	t.Run("prompt overrides alias", func(t *testing.T) {
		d := r.Resolve(chat("qwen-nonthinking", system("/precise You are a coder")))
		assert.Equal(t, domain.ModePrecise, d.Mode)
		assert.Equal(t, domain.ProvenancePrompt, d.Source)
	})

	t.Run("precise alias loses to thinking tag", func(t *testing.T) {
		d := r.Resolve(chat("qwen-precise", system("/thinking")))
		assert.Equal(t, domain.ModeExplicitThinking, d.Mode)
		assert.Equal(t, domain.ProvenancePrompt, d.Source)
	})

	t.Run("alias stands without tag", func(t *testing.T) {
		d := r.Resolve(chat("qwen-fast", system("Be nice")))
		assert.Equal(t, domain.ModeNonThinking, d.Mode)
		assert.Equal(t, domain.ProvenanceAlias, d.Source)
	})

	t.Run("unrecognised tag falls through to alias", func(t *testing.T) {
		d := r.Resolve(chat("qwen-coder", system("/creative anything")))
		assert.Equal(t, domain.ModePrecise, d.Mode)
		assert.Equal(t, domain.ProvenanceAlias, d.Source)
	})

	t.Run("nothing matches", func(t *testing.T) {
		d := r.Resolve(chat("llama", user("Hi")))
		assert.True(t, d.IsDefault())
		assert.Equal(t, domain.ModeGeneral, d.Mode)
	})
}

func TestResolve_NilRequest(t *testing.T) {
	for _, trig := range []domain.Trigger{domain.TriggerPrompt, domain.TriggerAlias, domain.TriggerAny} {
		assert.Equal(t, domain.DefaultDecision(), New(trig).Resolve(nil))
	}
}

func TestNewWithAliases_CustomOrder(t *testing.T) {
	r := NewWithAliases(domain.TriggerAlias, []Pattern{
		{Needle: "THINK", Mode: domain.ModeExplicitThinking},
		{Needle: "", Mode: domain.ModePrecise},
		{Needle: "nonthinking", Mode: domain.ModeNonThinking},
	})

	d := r.Resolve(chat("qwen-nonthinking"))
	assert.Equal(t, domain.ModeExplicitThinking, d.Mode, "first pattern in table order wins")
	assert.Equal(t, "think", d.Match)
}

func TestDefaultAliases_NonThinkingBeforeThinking(t *testing.T) {
	firstThinking := -1
	for i, p := range DefaultAliases {
		if p.Mode == domain.ModeExplicitThinking && firstThinking == -1 {
			firstThinking = i
		}
	}
	for i, p := range DefaultAliases {
		if p.Mode == domain.ModeNonThinking {
			assert.Less(t, i, firstThinking, fmt.Sprintf("%q must precede thinking patterns", p.Needle))
		}
	}
}

func BenchmarkResolve_Any(b *testing.B) {
	r := New(domain.TriggerAny)
	req := chat("openai/Qwen3.5-Reasoning", system("You are helpful"), user("Hi"))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Resolve(req)
	}
}
