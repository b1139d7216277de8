package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/thushan/shifter/internal/adapter/resolver"
	"github.com/thushan/shifter/internal/core/domain"
	"github.com/thushan/shifter/internal/core/ports"
)

// PrintModeTables writes the alias, prompt tag and sampling tables shown at
// startup in verbose mode.
func PrintModeTables(w io.Writer, profiles ports.ProfileTable) error {
	aliasData := [][]string{{"MODEL NAME CONTAINS", "MODE", "TAG"}}
	for _, p := range resolver.DefaultAliases {
		aliasData = append(aliasData, []string{p.Needle, p.Mode.String(), p.Mode.Tag()})
	}

	tagData := [][]string{{"SYSTEM PROMPT STARTS WITH", "MODE"}}
	for _, p := range resolver.PromptTags {
		tagData = append(tagData, []string{p.Needle, p.Mode.String()})
	}

	modeData := [][]string{{"MODE", "TEMP", "TOP_P", "TOP_K", "MIN_P", "PRESENCE", "REPEAT"}}
	for _, mode := range domain.AllModes() {
		p := profiles.ProfileFor(mode)
		modeData = append(modeData, []string{
			mode.DisplayName(),
			formatFloat(p.Temperature),
			formatFloat(p.TopP),
			strconv.Itoa(p.TopK),
			formatFloat(p.MinP),
			formatFloat(p.PresencePenalty),
			formatFloat(p.RepeatPenalty),
		})
	}

	for _, data := range [][][]string{aliasData, tagData, modeData} {
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
		if _, err := fmt.Fprintln(w, table); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
