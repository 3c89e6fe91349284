package vmtypes

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	name   lipgloss.Style
	cell   lipgloss.Style
	empty  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true),
		header: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		name:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		cell:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		empty:  lipgloss.NewStyle().Faint(true),
	}
}
