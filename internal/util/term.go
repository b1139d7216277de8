package util

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// colourOverride reads one environment variable and reports whether it
// settles the colour decision.
type colourOverride struct {
	env    string
	decide func(value string) bool
}

// Checked in order; the first variable that is set wins. See no-color.org.
var colourOverrides = []colourOverride{
	{env: "NO_COLOR", decide: func(string) bool { return false }},
	{env: "FORCE_COLOR", decide: func(v string) bool { return v != "0" }},
	{env: "SHIFTER_FORCE_COLORS", decide: func(v string) bool {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		}
		return false
	}},
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ShouldUseColors honours the environment overrides before falling back to
// terminal detection.
func ShouldUseColors() bool {
	for _, o := range colourOverrides {
		if v, ok := os.LookupEnv(o.env); ok && v != "" {
			return o.decide(v)
		}
	}
	return IsTerminal()
}
