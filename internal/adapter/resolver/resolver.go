package resolver

import (
	"strings"

	"github.com/thushan/shifter/internal/core/domain"
)

// Resolver decides the Mode for a request. It holds no per-request state
// and is safe for concurrent use.
type Resolver struct {
	aliases []Pattern
	trigger domain.Trigger
}

func New(trigger domain.Trigger) *Resolver {
	return NewWithAliases(trigger, DefaultAliases)
}

// NewWithAliases lowercases and copies the table so callers can't mutate it
// after the fact.
func NewWithAliases(trigger domain.Trigger, aliases []Pattern) *Resolver {
	table := make([]Pattern, 0, len(aliases))
	for _, a := range aliases {
		if a.Needle == "" {
			continue
		}
		table = append(table, Pattern{Needle: strings.ToLower(a.Needle), Mode: a.Mode})
	}
	return &Resolver{trigger: trigger, aliases: table}
}

func (r *Resolver) Trigger() domain.Trigger {
	return r.trigger
}

// Resolve applies the trigger rules. With TriggerAny the alias result is
// computed first and a recognised prompt tag replaces it outright.
func (r *Resolver) Resolve(req *domain.ChatRequest) domain.Decision {
	if req == nil {
		return domain.DefaultDecision()
	}

	decision := domain.DefaultDecision()

	if r.trigger.UsesAlias() {
		if d, ok := r.fromAlias(req.Model); ok {
			decision = d
		}
	}

	if r.trigger.UsesPrompt() {
		if d, ok := fromPrompt(req); ok {
			decision = d
		}
	}

	return decision
}

func (r *Resolver) fromAlias(model string) (domain.Decision, bool) {
	p, ok := matchAlias(r.aliases, model)
	if !ok {
		return domain.Decision{}, false
	}
	return domain.Decision{Mode: p.Mode, Source: domain.ProvenanceAlias, Match: p.Needle}, true
}

func fromPrompt(req *domain.ChatRequest) (domain.Decision, bool) {
	sys, ok := req.LeadingSystem()
	if !ok {
		return domain.Decision{}, false
	}
	p, ok := matchTag(sys.Content)
	if !ok {
		return domain.Decision{}, false
	}
	return domain.Decision{Mode: p.Mode, Source: domain.ProvenancePrompt, Match: p.Needle}, true
}
