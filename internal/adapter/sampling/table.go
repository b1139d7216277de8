package sampling

import (
	"github.com/thushan/shifter/internal/core/domain"
)

// Built-in profiles. ExplicitThinking starts out identical to General and
// only diverges when configured to.
var (
	General = domain.SamplingProfile{
		Temperature:     1.0,
		TopP:            0.95,
		TopK:            20,
		MinP:            0.0,
		PresencePenalty: 1.5,
		RepeatPenalty:   1.0,
	}
	NonThinking = domain.SamplingProfile{
		Temperature:     0.7,
		TopP:            0.8,
		TopK:            20,
		MinP:            0.0,
		PresencePenalty: 1.5,
		RepeatPenalty:   1.0,
	}
	Precise = domain.SamplingProfile{
		Temperature:     0.6,
		TopP:            0.95,
		TopK:            20,
		MinP:            0.0,
		PresencePenalty: 0.0,
		RepeatPenalty:   1.0,
	}
)

// Table maps every Mode to exactly one profile. It is filled in by NewTable
// and read-only afterwards, so it is safe to share across requests.
type Table struct {
	profiles [modeCount]domain.SamplingProfile
}

const modeCount = int(domain.ModeExplicitThinking) + 1

type Option func(*Table)

// WithProfile replaces the profile for mode. Invalid modes are ignored.
func WithProfile(mode domain.Mode, p domain.SamplingProfile) Option {
	return func(t *Table) {
		if mode.Valid() {
			t.profiles[mode] = p
		}
	}
}

func NewTable(opts ...Option) *Table {
	t := &Table{}
	t.profiles[domain.ModeGeneral] = General
	t.profiles[domain.ModeNonThinking] = NonThinking
	t.profiles[domain.ModePrecise] = Precise
	t.profiles[domain.ModeExplicitThinking] = General

	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ProfileFor is total: anything outside the known modes gets General.
func (t *Table) ProfileFor(mode domain.Mode) domain.SamplingProfile {
	if !mode.Valid() {
		return t.profiles[domain.ModeGeneral]
	}
	return t.profiles[mode]
}
