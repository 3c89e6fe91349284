// Package vmtypes renders the appliance's vm_types collection for the
// terminal.
package vmtypes

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/opsman-cli/internal/domain"
)

// Render returns the styled listing of the collection.
func Render(collection domain.VMTypeCollection) string {
	return renderView(collection, newStyles())
}

func renderView(collection domain.VMTypeCollection, s styles) string {
	lines := []string{
		s.title.Render("VM Types"),
		s.header.Render(fmt.Sprintf("vm types: %d", len(collection))),
	}

	if len(collection) == 0 {
		lines = append(lines, s.empty.Render("No vm types configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	nameWidth := len("NAME")
	for _, v := range collection {
		if len(v.Name) > nameWidth {
			nameWidth = len(v.Name)
		}
	}

	lines = append(lines, s.header.Render(fmt.Sprintf("%-*s  %5s  %9s  %9s", nameWidth, "NAME", "CPU", "RAM MB", "DISK MB")))
	for _, v := range collection {
		row := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.name.Render(fmt.Sprintf("%-*s", nameWidth, v.Name)),
			s.cell.Render(fmt.Sprintf("  %5d  %9d  %9d", v.CPU, v.RAM, v.EphemeralDisk)),
		)
		lines = append(lines, row)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
