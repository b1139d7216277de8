package domain

import "fmt"

// Mode is the reasoning mode applied to a single chat completion.
type Mode int

const (
	ModeGeneral Mode = iota
	ModeNonThinking
	ModePrecise
	ModeExplicitThinking
)

// Tags the backend chat template keys its think-token handling on. They must
// appear at the very start of the system message content.
const (
	TagNoThinking = "/no_thinking"
	TagPrecise    = "/precise"
	TagThinking   = "/thinking"
)

// AllModes lists every mode in declaration order.
func AllModes() []Mode {
	return []Mode{ModeGeneral, ModeNonThinking, ModePrecise, ModeExplicitThinking}
}

func (m Mode) String() string {
	switch m {
	case ModeGeneral:
		return "general"
	case ModeNonThinking:
		return "non-thinking"
	case ModePrecise:
		return "precise"
	case ModeExplicitThinking:
		return "thinking"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Tag returns the canonical marker for the mode, empty for ModeGeneral.
func (m Mode) Tag() string {
	switch m {
	case ModeNonThinking:
		return TagNoThinking
	case ModePrecise:
		return TagPrecise
	case ModeExplicitThinking:
		return TagThinking
	default:
		return ""
	}
}

// DisplayName is the banner used in verbose diagnostics.
func (m Mode) DisplayName() string {
	switch m {
	case ModeNonThinking:
		return "MODE: NON-THINKING / INSTRUCT"
	case ModePrecise:
		return "MODE: THINKING (Precise WebDev)"
	case ModeExplicitThinking:
		return "MODE: THINKING (Explicit)"
	default:
		return "MODE: THINKING (General)"
	}
}

func (m Mode) Valid() bool {
	return m >= ModeGeneral && m <= ModeExplicitThinking
}

// Provenance records which signal produced a Decision.
type Provenance string

const (
	ProvenancePrompt  Provenance = "prompt"
	ProvenanceAlias   Provenance = "alias"
	ProvenanceDefault Provenance = "default"
)

// Decision is the per-request outcome of mode resolution. Match holds the
// alias pattern or prompt tag that fired, empty for the default decision.
type Decision struct {
	Source Provenance
	Match  string
	Mode   Mode
}

func DefaultDecision() Decision {
	return Decision{Mode: ModeGeneral, Source: ProvenanceDefault}
}

func (d Decision) IsDefault() bool {
	return d.Source == ProvenanceDefault
}
