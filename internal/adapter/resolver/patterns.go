package resolver

import (
	"strings"
	"unicode"

	"github.com/thushan/shifter/internal/core/domain"
)

// Pattern maps a needle to the Mode it implies.
type Pattern struct {
	Needle string
	Mode   domain.Mode
}

// DefaultAliases is evaluated top to bottom and the first hit wins. The
// non-thinking spellings sit ahead of "thinking" because they contain it.
var DefaultAliases = []Pattern{
	{Needle: "nonthinking", Mode: domain.ModeNonThinking},
	{Needle: "no_thinking", Mode: domain.ModeNonThinking},
	{Needle: "non-thinking", Mode: domain.ModeNonThinking},
	{Needle: "not-thinking", Mode: domain.ModeNonThinking},
	{Needle: "fast", Mode: domain.ModeNonThinking},
	{Needle: "instruct", Mode: domain.ModeNonThinking},

	{Needle: "precise", Mode: domain.ModePrecise},
	{Needle: "coder", Mode: domain.ModePrecise},
	{Needle: "code", Mode: domain.ModePrecise},
	{Needle: "webdev", Mode: domain.ModePrecise},

	{Needle: "thinking", Mode: domain.ModeExplicitThinking},
	{Needle: "reasoning", Mode: domain.ModeExplicitThinking},
	{Needle: "think", Mode: domain.ModeExplicitThinking},
}

// PromptTags is checked in order against the start of the system content.
// Matching is case-sensitive.
var PromptTags = []Pattern{
	{Needle: domain.TagNoThinking, Mode: domain.ModeNonThinking},
	{Needle: domain.TagPrecise, Mode: domain.ModePrecise},
	{Needle: domain.TagThinking, Mode: domain.ModeExplicitThinking},
}

// matchAlias does a case-insensitive containment scan of model.
func matchAlias(patterns []Pattern, model string) (Pattern, bool) {
	if model == "" {
		return Pattern{}, false
	}
	lower := strings.ToLower(model)
	for _, p := range patterns {
		if strings.Contains(lower, p.Needle) {
			return p, true
		}
	}
	return Pattern{}, false
}

// matchTag checks for a tag prefix after trimming leading whitespace. A tag
// further into the content never counts.
func matchTag(content string) (Pattern, bool) {
	trimmed := strings.TrimLeftFunc(content, unicode.IsSpace)
	if trimmed == "" {
		return Pattern{}, false
	}
	for _, p := range PromptTags {
		if strings.HasPrefix(trimmed, p.Needle) {
			return p, true
		}
	}
	return Pattern{}, false
}
