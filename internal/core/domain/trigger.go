package domain

import (
	"fmt"
	"strings"
)

// Trigger selects which request signals are allowed to choose a Mode.
type Trigger string

const (
	TriggerPrompt Trigger = "prompt"
	TriggerAlias  Trigger = "alias"
	TriggerAny    Trigger = "any"
)

func ParseTrigger(s string) (Trigger, error) {
	switch t := Trigger(strings.ToLower(strings.TrimSpace(s))); t {
	case TriggerPrompt, TriggerAlias, TriggerAny:
		return t, nil
	case "":
		return TriggerPrompt, nil
	default:
		return "", fmt.Errorf("unknown trigger %q (expected prompt, alias or any)", s)
	}
}

func (t Trigger) UsesPrompt() bool {
	return t == TriggerPrompt || t == TriggerAny
}

func (t Trigger) UsesAlias() bool {
	return t == TriggerAlias || t == TriggerAny
}

// Description is shown in the startup banner.
func (t Trigger) Description() string {
	switch t {
	case TriggerAlias:
		return "Detecting modes from model name patterns"
	case TriggerAny:
		return "Detecting from model name or prompt (prompt tags take priority)"
	default:
		return "Detecting modes from system prompt tags"
	}
}
