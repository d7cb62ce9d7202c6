package review

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/diff"
)

var (
	colorBreaking = lipgloss.Color("#ef4444") // red
	colorRisky    = lipgloss.Color("#eab308") // yellow
	colorSafe     = lipgloss.Color("#22c55e") // green
	colorCosmetic = lipgloss.Color("#6b7280") // gray
	colorAccent   = lipgloss.Color("#3b82f6") // blue
	colorMuted    = lipgloss.Color("#9ca3af")
	colorWhite    = lipgloss.Color("#f9fafb")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(colorAccent).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(lipgloss.Color("#374151"))

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	helpStyle  = lipgloss.NewStyle().Foreground(colorMuted)

	breakingStyle = lipgloss.NewStyle().Foreground(colorBreaking).Bold(true)
	riskyStyle    = lipgloss.NewStyle().Foreground(colorRisky)
	safeStyle     = lipgloss.NewStyle().Foreground(colorSafe)
	cosmeticStyle = lipgloss.NewStyle().Foreground(colorCosmetic)
)

func severityStyle(s diff.Severity) lipgloss.Style {
	switch s {
	case diff.SeverityBreaking:
		return breakingStyle
	case diff.SeverityRisky:
		return riskyStyle
	case diff.SeveritySafe:
		return safeStyle
	case diff.SeverityCosmetic:
		return cosmeticStyle
	default:
		return mutedStyle
	}
}
