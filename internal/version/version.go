package version

import (
	"fmt"
	"io"
	"strings"

	"github.com/thushan/shifter/theme"
)

var (
	Name        = "shifter"
	ShortName   = "shifter"
	Authors     = "Thushan Fernando"
	Description = "Reasoning mode interceptor for llama-server"
	Version     = "v0.0.1"
	Commit      = "none"
	Date        = "nowish"
	User        = "local"
)

const (
	GithubHomeText  = "github.com/thushan/shifter"
	GithubHomeUri   = "https://github.com/thushan/shifter"
	GithubLatestUri = "https://github.com/thushan/shifter/releases/latest"
)

// ProxiedBy is used for the Via and X-Proxied-By headers.
func ProxiedBy() string {
	return Name + "/" + Version
}

func Via() string {
	return "1.1 " + ShortName + "/" + Version
}

func PrintVersionInfo(extendedInfo bool, w io.Writer) {
	githubUri := theme.Hyperlink(GithubHomeUri, GithubHomeText)
	latestUri := theme.Hyperlink(GithubLatestUri, Version)

	var b strings.Builder

	b.WriteString(theme.ColourSplash(`
╭───────────────────────────────────────────────────╮
│   ┌─┐┬ ┬┬┌─┐┌┬┐┌─┐┬─┐    /no_thinking  ·  fast   │
│   └─┐├─┤│├┤  │ ├┤ ├┬┘    /precise      ·  code   │
│   └─┘┴ ┴┴└   ┴ └─┘┴└─    /thinking     ·  think  │` + "\n"))

	b.WriteString(theme.ColourSplash("│   "))
	b.WriteString(theme.StyleUrl(githubUri))
	b.WriteString(" ")
	b.WriteString(theme.ColourVersion(latestUri))
	b.WriteString(fmt.Sprintf("%*s", max(1, 22-len(Version)), ""))
	b.WriteString(theme.ColourSplash("│\n"))
	b.WriteString(theme.ColourSplash("╰───────────────────────────────────────────────────╯"))

	if extendedInfo {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf(" Commit: %s\n", Commit))
		b.WriteString(fmt.Sprintf("  Built: %s\n", Date))
		b.WriteString(fmt.Sprintf("  Using: %s\n", User))
	}

	fmt.Fprintln(w, b.String())
}
