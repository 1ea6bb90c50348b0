// internal/cli/render.go
package frameworkstats

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"

	"github.com/mwiater/frameworkstats/internal/frameworks"
	"github.com/mwiater/frameworkstats/internal/stats"
)

var (
	headingText  = color.New(color.FgCyan, color.Bold).SprintFunc()
	positiveText = color.New(color.FgRed).SprintFunc()
	negativeText = color.New(color.FgGreen).SprintFunc()
)

// printSummary writes one line per framework after a successful run. Z-scores
// below the cohort mean are green, above it red.
func printSummary(w io.Writer, file *stats.File) {
	fmt.Fprintln(w, headingText(fmt.Sprintf("Stats generated at %s", file.Metadata.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"))))
	for _, id := range summaryOrder(file) {
		s := file.Frameworks[id]
		fmt.Fprintf(w, "  %-12s bundle %8.2fKB (z %s)  render %8.2fms (z %s)  complexity %5.1f (z %s)  chars %6.0f\n",
			id,
			s.BundleSize, zText(s.BundleSizeZScore),
			s.RenderTime, zText(s.RenderTimeZScore),
			s.ComplexityScore, zText(s.ComplexityZScore),
			s.CharacterCount,
		)
	}
}

func zText(z float64) string {
	text := fmt.Sprintf("%+.2f", z)
	switch {
	case z > 0:
		return positiveText(text)
	case z < 0:
		return negativeText(text)
	default:
		return text
	}
}

// summaryOrder lists ids in the order recorded in the metadata, falling back
// to the canonical order for files without one.
func summaryOrder(file *stats.File) []string {
	if len(file.Metadata.Frameworks) > 0 {
		return file.Metadata.Frameworks
	}
	var ids []string
	for _, id := range frameworks.IDs() {
		if _, ok := file.Frameworks[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// renderStatsTable renders the cohort in the given order as a bordered table.
func renderStatsTable(records map[string]stats.FrameworkStats, order []string) string {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Padding(0, 1)

	rows := make([][]string, 0, len(order))
	for _, id := range order {
		s, ok := records[id]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			frameworks.DisplayName(id),
			fmt.Sprintf("%.2f", s.BundleSize),
			fmt.Sprintf("%+.2f", s.BundleSizeZScore),
			fmt.Sprintf("%.2f", s.RenderTime),
			fmt.Sprintf("%+.2f", s.RenderTimeZScore),
			fmt.Sprintf("%.1f", s.ComplexityScore),
			fmt.Sprintf("%+.2f", s.ComplexityZScore),
			fmt.Sprintf("%.0f", s.CharacterCount),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("242"))).
		Headers("Framework", "Bundle (KB)", "z", "Render (ms)", "z", "Complexity", "z", "Chars").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}
