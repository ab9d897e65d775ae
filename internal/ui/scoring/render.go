package scoring

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"arete/internal/score"
)

const completionPreviewLines = 30

// renderSession renders the full scoring screen.
func renderSession(state State, inputView string, noColor bool) string {
	if state.Done {
		line := fmt.Sprintf("Scoring complete: %d scored, %d skipped.", state.Scored(), state.Skipped)
		return stylize(line, noColor, lipgloss.Color("34")) + "\n"
	}
	item, ok := state.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	header := fmt.Sprintf("Item %s | %d remaining | %d scored", item.BlindID, state.Remaining(), state.Scored())
	b.WriteString(stylize(header, noColor, lipgloss.Color("33")))
	b.WriteString("\n\n")
	b.WriteString(stylize("Problem: "+item.ProblemID, noColor, lipgloss.Color("242")))
	b.WriteString("\n")
	b.WriteString(truncateLines(item.Prompt, 6))
	b.WriteString("\n")
	b.WriteString(stylize("Completion:", noColor, lipgloss.Color("242")))
	b.WriteString("\n")
	b.WriteString(truncateLines(item.Completion, completionPreviewLines))
	b.WriteString("\n\n")
	b.WriteString(score.Rubric)
	b.WriteString("\n\n")
	if state.ErrLine != "" {
		b.WriteString(stylize(state.ErrLine, noColor, lipgloss.Color("160")))
		b.WriteString("\n")
	}
	b.WriteString(inputView)
	b.WriteString("\n")
	b.WriteString(stylize("enter: submit  ctrl+s: skip  esc: quit", noColor, lipgloss.Color("240")))
	b.WriteString("\n")
	return b.String()
}

func truncateLines(text string, limit int) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= limit {
		return text
	}
	kept := lines[:limit]
	return strings.Join(kept, "\n") + fmt.Sprintf("\n... (%d more lines)", len(lines)-limit)
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
