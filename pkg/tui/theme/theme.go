// Package theme centralizes Lip Gloss styles for the Bubble Tea UI.
package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme groups the styles shared across pages and components.
type Theme struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	Label    lipgloss.Style
	Selected lipgloss.Style
	Faint    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Status   lipgloss.Style
	Frame    lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Title:    lipgloss.NewStyle().Bold(true).Underline(true),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Faint:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2),
	}
}
