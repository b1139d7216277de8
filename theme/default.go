package theme

import (
	"github.com/pterm/pterm"
)

// Theme defines the colour scheme and styling for the application
type Theme struct {
	// Log level colours
	Debug *pterm.Style
	Info  *pterm.Style
	Warn  *pterm.Style
	Error *pterm.Style

	// Component colours
	Good     *pterm.Style
	Muted    *pterm.Style
	Counts   *pterm.Style
	Numbers  *pterm.Style
	Endpoint *pterm.Style

	// Reasoning mode colours
	ModeGeneral     *pterm.Style
	ModeNonThinking *pterm.Style
	ModePrecise     *pterm.Style
	ModeThinking    *pterm.Style
}

// Default returns the default application theme
func Default() *Theme {
	return &Theme{
		Debug: pterm.NewStyle(pterm.FgLightBlue),
		Info:  pterm.NewStyle(pterm.FgGreen),
		Warn:  pterm.NewStyle(pterm.FgYellow, pterm.Bold),
		Error: pterm.NewStyle(pterm.FgRed, pterm.Bold),

		Good:     pterm.NewStyle(pterm.FgGreen, pterm.Bold),
		Muted:    pterm.NewStyle(pterm.FgGray),
		Counts:   pterm.NewStyle(pterm.FgLightYellow),
		Numbers:  pterm.NewStyle(pterm.FgLightCyan),
		Endpoint: pterm.NewStyle(pterm.FgCyan, pterm.Bold),

		ModeGeneral:     pterm.NewStyle(pterm.FgLightMagenta),
		ModeNonThinking: pterm.NewStyle(pterm.FgLightGreen, pterm.Bold),
		ModePrecise:     pterm.NewStyle(pterm.FgLightBlue, pterm.Bold),
		ModeThinking:    pterm.NewStyle(pterm.FgMagenta, pterm.Bold),
	}
}

// Dark returns a dark theme variant
func Dark() *Theme {
	t := Default()
	t.Info = pterm.NewStyle(pterm.FgLightGreen)
	t.Warn = pterm.NewStyle(pterm.FgLightYellow, pterm.Bold)
	t.Error = pterm.NewStyle(pterm.FgLightRed, pterm.Bold)
	t.Endpoint = pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)
	return t
}

// Light returns a light theme variant
func Light() *Theme {
	t := Default()
	t.Debug = pterm.NewStyle(pterm.FgBlue)
	t.Info = pterm.NewStyle(pterm.FgBlack)
	t.Counts = pterm.NewStyle(pterm.FgBlue)
	t.Numbers = pterm.NewStyle(pterm.FgBlue)
	t.Endpoint = pterm.NewStyle(pterm.FgBlue, pterm.Bold)
	t.ModeGeneral = pterm.NewStyle(pterm.FgMagenta)
	t.ModeNonThinking = pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	t.ModePrecise = pterm.NewStyle(pterm.FgBlue, pterm.Bold)
	return t
}

// GetTheme returns the appropriate theme based on environment or preference
func GetTheme(name string) *Theme {
	switch name {
	case "dark":
		return Dark()
	case "light":
		return Light()
	default:
		return Default()
	}
}

// ColourSplash Colours for the splash screen
func ColourSplash(message ...any) string {
	return pterm.LightMagenta(message...)
}

// ColourVersion Colours Version numbers, used for the splash screen
func ColourVersion(message ...any) string {
	return pterm.LightYellow(message...)
}

// StyleUrl Colours for URLs and hyperlinks
func StyleUrl(message ...any) string {
	return pterm.LightBlue(message...)
}

// Hyperlink creates a hyperlink in the terminal
func Hyperlink(uri string, text string) string {
	return "\x1b]8;;" + uri + "\x07" + text + "\x1b]8;;\x07" + "\u001b[0m"
}
