package cli

import "github.com/charmbracelet/lipgloss"

// Report styles. lipgloss drops colour when output is not a terminal, so
// the same text reaches pipes and tests.
var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
)

func heading(text string) string {
	return headingStyle.Render(text)
}

func muted(text string) string {
	return mutedStyle.Render(text)
}

func warning(text string) string {
	return warnStyle.Render(text)
}
