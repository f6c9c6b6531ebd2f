// Package output holds the terminal styling shared by the CLI commands.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles is the palette used across commands.
type Styles struct {
	Title   lipgloss.Style
	Prompt  lipgloss.Style
	Reply   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Badge   lipgloss.Style
}

// NewStyles builds the palette. Styling is disabled when noColor is set,
// NO_COLOR is in the environment, or stdout is not a terminal.
func NewStyles(noColor bool) *Styles {
	plain := noColor || os.Getenv("NO_COLOR") != "" ||
		termenv.NewOutput(os.Stdout).Profile == termenv.Ascii

	if plain {
		s := lipgloss.NewStyle()
		return &Styles{Title: s, Prompt: s, Reply: s, Success: s, Error: s, Muted: s, Badge: s}
	}

	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Prompt:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Reply:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Badge:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
	}
}
