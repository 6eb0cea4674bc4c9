package theme

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Colors
var (
	Primary = lipgloss.Color("#33A8FF")
	Muted   = lipgloss.Color("#6B7280")
	Success = lipgloss.Color("#10B981")
	Warning = lipgloss.Color("#F59E0B")
	Error   = lipgloss.Color("#EF4444")
)

// Shared styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(1, 0, 0, 0)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)
)

// StatusColor maps signature lifecycle statuses to theme colors.
func StatusColor(status string) color.Color {
	switch strings.ToLower(status) {
	case "valid", "active", "signed":
		return Success
	case "expired", "invalid", "error":
		return Error
	case "expiring", "pending":
		return Warning
	default:
		return Muted
	}
}

// RenderStatus renders a status string with a colored bullet.
func RenderStatus(status string) string {
	c := StatusColor(status)
	bullet := lipgloss.NewStyle().Foreground(c).Render("●")
	return bullet + " " + status
}
