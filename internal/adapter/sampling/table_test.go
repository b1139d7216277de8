package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thushan/shifter/internal/core/domain"
)

func TestProfileFor_Defaults(t *testing.T) {
	table := NewTable()

	tests := []struct {
		mode     domain.Mode
		expected domain.SamplingProfile
	}{
		{domain.ModeGeneral, domain.SamplingProfile{Temperature: 1.0, TopP: 0.95, TopK: 20, MinP: 0.0, PresencePenalty: 1.5, RepeatPenalty: 1.0}},
		{domain.ModeNonThinking, domain.SamplingProfile{Temperature: 0.7, TopP: 0.8, TopK: 20, MinP: 0.0, PresencePenalty: 1.5, RepeatPenalty: 1.0}},
		{domain.ModePrecise, domain.SamplingProfile{Temperature: 0.6, TopP: 0.95, TopK: 20, MinP: 0.0, PresencePenalty: 0.0, RepeatPenalty: 1.0}},
		{domain.ModeExplicitThinking, domain.SamplingProfile{Temperature: 1.0, TopP: 0.95, TopK: 20, MinP: 0.0, PresencePenalty: 1.5, RepeatPenalty: 1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, table.ProfileFor(tt.mode))
		})
	}
}

func TestProfileFor_Deterministic(t *testing.T) {
	table := NewTable()
	for _, mode := range domain.AllModes() {
		first := table.ProfileFor(mode)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, table.ProfileFor(mode))
		}
	}
}

func TestProfileFor_ReturnsCopy(t *testing.T) {
	table := NewTable()
	p := table.ProfileFor(domain.ModeNonThinking)
	p.Temperature = 42

	assert.InDelta(t, 0.7, table.ProfileFor(domain.ModeNonThinking).Temperature, 1e-9)
	assert.InDelta(t, 0.7, NonThinking.Temperature, 1e-9)
}

func TestProfileFor_UnknownModeFallsBackToGeneral(t *testing.T) {
	table := NewTable()
	assert.Equal(t, General, table.ProfileFor(domain.Mode(99)))
	assert.Equal(t, General, table.ProfileFor(domain.Mode(-1)))
}

func TestWithProfile_OverridesExplicitThinkingOnly(t *testing.T) {
	custom := General
	custom.Temperature = 0.8
	table := NewTable(WithProfile(domain.ModeExplicitThinking, custom))

	assert.InDelta(t, 0.8, table.ProfileFor(domain.ModeExplicitThinking).Temperature, 1e-9)
	assert.Equal(t, General, table.ProfileFor(domain.ModeGeneral))
}

func TestWithProfile_IgnoresInvalidMode(t *testing.T) {
	table := NewTable(WithProfile(domain.Mode(7), Precise))
	for _, mode := range domain.AllModes() {
		assert.NotPanics(t, func() { table.ProfileFor(mode) })
	}
	assert.Equal(t, General, table.ProfileFor(domain.ModeGeneral))
}
