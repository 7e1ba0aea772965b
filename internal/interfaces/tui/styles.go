package tui

import (
	"github.com/charmbracelet/lipgloss"

	"jojo-client/internal/domain/voice"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	idleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("33")).
			Padding(0, 2)

	connectingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("220")).
			Padding(0, 2)

	liveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("160")).
			Padding(0, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	assistantStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	transcriptStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("250"))
)

// buttonStyle is blue while idle, yellow while connecting and red while live.
func buttonStyle(s voice.Status) lipgloss.Style {
	switch s {
	case voice.StatusConnecting:
		return connectingStyle
	case voice.StatusConnected:
		return liveStyle
	default:
		return idleStyle
	}
}

func buttonText(s voice.Status) string {
	switch s {
	case voice.StatusConnecting:
		return "MIC …"
	case voice.StatusConnected:
		return "STOP"
	default:
		return "MIC"
	}
}
