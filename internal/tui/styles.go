package tui

import (
	"charm.land/lipgloss/v2"

	"tasnim.dev/presign/internal/tui/theme"
)

var (
	// Watch-specific styles that compose from the shared theme
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary)

	labelStyle = theme.MutedStyle

	successStyle = theme.SuccessStyle

	warningStyle = theme.WarningStyle

	expiredStyle = theme.ErrorStyle

	helpStyle = theme.HelpStyle
)
