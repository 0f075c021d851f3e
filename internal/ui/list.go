package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fleetdeck/fleetdeck/internal/api"
	"github.com/fleetdeck/fleetdeck/internal/notify"
	"github.com/fleetdeck/fleetdeck/internal/query"
)

// columns per entity family: Title carries the kind-specific identifier,
// the rest is the uniform summary shape.
func columnTitles(kind api.Kind) [4]string {
	switch kind {
	case api.KindVehicle:
		return [4]string{"Plate", "Brand/Model", "Year", "Status"}
	case api.KindUser:
		return [4]string{"Username", "Email", "Phone", "Status"}
	default:
		return [4]string{"Name", "Email", "Phone", "Status"}
	}
}

// renderMain composes the full frame: header, tabs, table, pagination,
// notifications and the command bar. An open dialog overlays the middle.
func (m Model) renderMain() string {
	header := m.renderHeader()
	tabs := m.renderTabs()
	footer := m.renderFooter()
	bar := m.renderCommandBar()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(tabs) -
		lipgloss.Height(footer) - lipgloss.Height(bar)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if m.modal != nil {
		body = m.modal.View(m.theme, m.width, bodyHeight)
	} else {
		body = m.renderTable(bodyHeight)
	}

	return strings.Join([]string{header, tabs, body, footer, bar}, "\n")
}

func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	var parts []string
	for i, kind := range api.Kinds() {
		label := " " + kind.Label() + "s "
		if i == m.active {
			parts = append(parts, styles.Selected.Render(label))
		} else {
			parts = append(parts, styles.MutedText.Render(label))
		}
	}
	if m.searchMode {
		parts = append(parts, "  "+m.searchInput.View())
	} else if d := m.queries[m.Kind()]; d.SearchText != "" {
		parts = append(parts, "  "+styles.AccentText.Render("/"+truncate(d.SearchText, 24))+
			styles.FaintText.Render(" in "+d.SearchField))
	}
	return lipgloss.NewStyle().Width(m.width).Render(strings.Join(parts, " "))
}

func (m Model) renderTable(height int) string {
	styles := m.theme.Styles()
	kind := m.Kind()
	page := m.pages[kind]

	if m.loading[kind] && page == nil {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render(m.spin.View()+" Loading "+strings.ToLower(kind.Label())+"s..."))
	}
	if page == nil || len(page.Items) == 0 {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No "+strings.ToLower(kind.Label())+"s match."))
	}

	titleW, emailW, phoneW := 24, 30, 18
	if m.width < 90 {
		titleW, emailW, phoneW = 18, 22, 14
	}

	titles := columnTitles(kind)
	headerRow := styles.FaintText.Render(
		padRight(titles[0], titleW) + padRight(titles[1], emailW) + padRight(titles[2], phoneW) + titles[3])

	rows := []string{headerRow}
	selected := m.selected[kind]
	for i, item := range page.Items {
		line := padRight(item.Title, titleW) + padRight(item.Email, emailW) + padRight(item.Phone, phoneW)
		if i == selected {
			rows = append(rows, styles.Selected.Render(line)+" "+styles.StatusStyle(item.Status).Render(item.Status))
		} else {
			rows = append(rows, styles.Text.Render(line)+" "+styles.StatusStyle(item.Status).Render(item.Status))
		}
	}

	return lipgloss.NewStyle().Width(m.width).Height(height).Render(strings.Join(rows, "\n"))
}

// renderFooter shows the pagination window plus totals, and the freshest
// notifications.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	d := m.queries[m.Kind()]

	var parts []string
	if query.PrevEnabled(d.Page) {
		parts = append(parts, styles.AccentText.Render("<"))
	} else {
		parts = append(parts, styles.FaintText.Render("<"))
	}
	for _, ref := range query.Window(d.Page, d.LastPage) {
		switch {
		case ref.Ellipsis:
			parts = append(parts, styles.FaintText.Render("…"))
		case ref.Current:
			parts = append(parts, styles.Selected.Render(" "+strconv.Itoa(ref.Number)+" "))
		default:
			parts = append(parts, styles.MutedText.Render(strconv.Itoa(ref.Number)))
		}
	}
	if query.NextEnabled(d.Page, d.LastPage) {
		parts = append(parts, styles.AccentText.Render(">"))
	} else {
		parts = append(parts, styles.FaintText.Render(">"))
	}

	parts = append(parts, styles.FaintText.Render(fmt.Sprintf("%d total · %d/page", d.Total, d.PageSize)))

	if line := m.renderNotifications(); line != "" {
		parts = append(parts, line)
	}

	return styles.Footer.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderNotifications() string {
	styles := m.theme.Styles()
	active := m.center.Active(notify.DefaultTTL)
	if len(active) == 0 {
		return ""
	}
	latest := active[len(active)-1]
	text := truncate(latest.Message, 60)
	switch latest.Level {
	case notify.Error:
		return styles.DangerText.Render(text)
	case notify.Success:
		return styles.SuccessText.Render(text)
	default:
		return styles.InfoText.Render(text)
	}
}

// renderCommandBar shows the key hints for the current context.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	type cmd struct{ key, desc string }
	var commands []cmd
	if m.modal != nil {
		commands = []cmd{
			{"esc", "Cancel"},
			{"enter", "Confirm"},
		}
	} else {
		commands = []cmd{
			{"c", "Create"},
			{"e", "Edit"},
			{"d", "Delete"},
			{"m", "Details"},
			{"/", "Search"},
			{"f", m.descriptorFieldLabel()},
			{"s", m.statusFilterLabel()},
			{"n/p", "Page"},
			{"tab", "Entity"},
			{"?", "More"},
		}
	}

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			styles.AccentText.Render(c.key)+styles.FaintText.Render(":")+styles.MutedText.Render(c.desc))
	}
	segments = append(segments,
		styles.AccentText.Render("T")+styles.FaintText.Render(":")+styles.FaintText.Render(m.theme.Name))

	return styles.Header.Width(m.width).Render(strings.Join(segments, "  "))
}

func (m Model) descriptorFieldLabel() string {
	return m.queries[m.Kind()].SearchField
}
