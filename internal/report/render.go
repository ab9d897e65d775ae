// Package report renders a reconciled run as terminal text.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"arete/internal/condition"
	"arete/internal/reconcile"
	"arete/internal/score"
)

// RenderText formats the full reveal report. With noColor set the
// output is plain text suitable for piping.
func RenderText(rep reconcile.Report, noColor bool) string {
	var b strings.Builder

	writeSection(&b, "RESULTS BY CONDITION", noColor)
	b.WriteString(conditionTable(rep, noColor))

	if len(rep.VsControl) > 0 {
		writeSection(&b, "COMPARISON VS CONTROL", noColor)
		b.WriteString(comparisonTable(rep, noColor))
	}

	writeSection(&b, "DIMENSION BREAKDOWN", noColor)
	b.WriteString(dimensionTable(rep))

	writeSection(&b, "PASS RATE BY PROBLEM", noColor)
	b.WriteString(problemTable(rep))

	if rep.Best != "" {
		b.WriteString("\n")
		b.WriteString(stylize(fmt.Sprintf("Highest quality scores: %s", rep.Best), noColor, lipgloss.Color("33")))
		b.WriteString("\n")
	}
	return b.String()
}

func writeSection(b *strings.Builder, title string, noColor bool) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(stylize(title, noColor, lipgloss.Color("252")))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(title)))
	b.WriteString("\n")
}

func conditionTable(rep reconcile.Report, noColor bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-20s %7s %10s %10s %10s\n", "condition", "n", "pass rate", "mean", "stdev")
	for _, stats := range rep.Conditions {
		line := fmt.Sprintf("%-20s %7d %9.1f%% %10.2f %10.2f",
			stats.Condition, stats.Samples, stats.PassRate*100, stats.TotalMean, stats.TotalStdDev)
		if stats.Unknown > 0 {
			line += fmt.Sprintf("  (%d unknown)", stats.Unknown)
		}
		if stats.Condition == condition.ControlName {
			line = stylize(line, noColor, lipgloss.Color("242"))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func comparisonTable(rep reconcile.Report, noColor bool) string {
	var b strings.Builder
	for _, comparison := range rep.VsControl {
		arrow := "→"
		color := lipgloss.Color("242")
		if comparison.Delta > 0 {
			arrow = "↑"
			color = lipgloss.Color("34")
		} else if comparison.Delta < 0 {
			arrow = "↓"
			color = lipgloss.Color("160")
		}
		line := fmt.Sprintf("%-20s %s %+.2f (%+.1f%%)  d=%.2f",
			comparison.Condition, arrow, comparison.Delta, comparison.PercentDelta, comparison.EffectSize)
		b.WriteString(stylize(line, noColor, color))
		b.WriteString("\n")
	}
	return b.String()
}

func dimensionTable(rep reconcile.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-20s", "condition")
	for _, dim := range score.Dimensions {
		fmt.Fprintf(&b, " %14s", dim)
	}
	b.WriteString("\n")
	for _, stats := range rep.Conditions {
		fmt.Fprintf(&b, "%-20s", stats.Condition)
		for _, dim := range score.Dimensions {
			fmt.Fprintf(&b, " %14.2f", stats.DimensionMeans[dim])
		}
		b.WriteString("\n")
	}
	return b.String()
}

func problemTable(rep reconcile.Report) string {
	var b strings.Builder
	for _, stats := range rep.Problems {
		fmt.Fprintf(&b, "%-20s %3d/%3d = %.1f%%\n",
			stats.ProblemID, stats.Passed, stats.Evaluated, stats.PassRate*100)
	}
	return b.String()
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
