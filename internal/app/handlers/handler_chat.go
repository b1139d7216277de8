package handlers

import (
	"fmt"
	"net/http"

	"github.com/thushan/shifter/internal/core/domain"
	"github.com/thushan/shifter/internal/logger"
)

func (a *Application) chatCompletionsHandler(w http.ResponseWriter, r *http.Request) {
	stats := newRequestStats(r)
	rlog := a.logger.WithRequestID(stats.RequestID)

	body, err := a.inspector.ReadBody(r)
	if err != nil {
		a.rejectRequest(w, rlog, err)
		return
	}

	req, err := a.inspector.Parse(body)
	if err != nil {
		a.rejectRequest(w, rlog, err)
		return
	}

	decision := a.resolver.Resolve(req)
	outgoing, err := a.rewriter.Rewrite(req, decision)
	if err != nil {
		rlog.Error("Failed to rewrite request", "error", err, "mode", decision.Mode.String())
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to rewrite request: %v", err), ErrorTypeServer)
		return
	}

	stats.Mode = decision.Mode.String()
	stats.Source = string(decision.Source)
	a.logDecision(rlog, req, decision)

	a.forward(w, r, outgoing, &stats, rlog)
}

func (a *Application) rejectRequest(w http.ResponseWriter, rlog logger.StyledLogger, err error) {
	a.statsCollector.RecordRejected()
	rlog.Warn("Rejected chat completion", "error", err)
	writeError(w, http.StatusBadRequest, err.Error(), ErrorTypeInvalidRequest)
}

// logDecision emits the mode diagnostic: at info when verbose, else debug.
func (a *Application) logDecision(rlog logger.StyledLogger, req *domain.ChatRequest, decision domain.Decision) {
	profile := a.profiles.ProfileFor(decision.Mode)

	args := make([]any, 0, 24)
	args = append(args,
		"mode", decision.Mode.String(),
		"model", req.Model,
		"source", string(decision.Source),
		"trigger", string(a.resolver.Trigger()),
		"stream", req.Stream)
	if decision.Match != "" {
		args = append(args, "match", decision.Match)
	}
	args = append(args, profile.LogArgs()...)

	if a.Config.Verbose {
		rlog.InfoWithMode("Intercepted", decision.Mode, args...)
		return
	}
	rlog.Debug("Intercepted "+decision.Mode.DisplayName(), args...)
}
