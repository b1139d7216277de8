package ports

import "github.com/thushan/shifter/internal/core/domain"

type ModeResolver interface {
	Resolve(req *domain.ChatRequest) domain.Decision
}

type ProfileTable interface {
	ProfileFor(mode domain.Mode) domain.SamplingProfile
}

// RequestRewriter produces the outbound body for a decision. It never
// modifies req.Body in place.
type RequestRewriter interface {
	Rewrite(req *domain.ChatRequest, decision domain.Decision) ([]byte, error)
}

type RequestParser interface {
	Parse(body []byte) (*domain.ChatRequest, error)
}
