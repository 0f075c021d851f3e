package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp draws the full-screen key reference. Any key dismisses it.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Lists", [][2]string{
			{"tab / shift+tab", "Switch entity tab"},
			{"j / k", "Move selection"},
			{"n / p", "Next / previous page"},
			{"g / G", "Top / bottom of page"},
			{"z", "Cycle page size"},
			{"r", "Refresh"},
		}},
		{"Search & filter", [][2]string{
			{"/", "Search (enter commits, esc cancels)"},
			{"f", "Cycle searched field"},
			{"s", "Cycle status filter"},
		}},
		{"Records", [][2]string{
			{"c", "Create"},
			{"e / enter", "Edit selected"},
			{"d", "Delete selected (retype id to confirm)"},
			{"m", "Details"},
			{"ctrl+z", "Revert form to loaded values"},
		}},
		{"General", [][2]string{
			{"backspace", "Back to previous view state"},
			{"T", "Cycle theme"},
			{"?", "This help"},
			{"q / ctrl+c", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("fleetdeck keys"))
	b.WriteString("\n")
	for _, section := range sections {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render(section.title))
		b.WriteString("\n")
		for _, entry := range section.keys {
			b.WriteString(styles.AccentText.Render(padRight(entry[0], 18)))
			b.WriteString(styles.MutedText.Render(entry[1]))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("press any key to close"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		styles.ModalBorder.Render(b.String()))
}
