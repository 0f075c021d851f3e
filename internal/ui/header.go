package ui

import (
	"fmt"
	"strings"
	"time"
)

// renderHeader renders the status bar: identity, connection activity and
// the paging summary for the active view.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	var parts []string

	parts = append(parts, styles.Logo.Render("fleetdeck"))

	if m.session != nil && m.session.Subject() != "" {
		subject := m.session.Subject()
		if m.session.ExpiresWithin(5 * time.Minute) {
			parts = append(parts, styles.WarningText.Render(subject+" (expiring)"))
		} else {
			parts = append(parts, styles.Text.Render(subject))
		}
	} else {
		parts = append(parts, styles.MutedText.Render("signed out"))
	}

	gw := m.client.Gateway()
	if gw.Busy() {
		parts = append(parts, styles.AccentText.Render(m.spin.View()+" loading"))
	}
	if latency := formatLatency(gw.AverageLatency()); latency != "" {
		parts = append(parts, styles.FaintText.Render("rtt "+latency))
	}

	d := m.queries[m.Kind()]
	parts = append(parts, styles.MutedText.Render(
		fmt.Sprintf("%s page %d of %d", m.Kind().Label()+"s", d.Page, maxInt(d.LastPage, 1))))

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
