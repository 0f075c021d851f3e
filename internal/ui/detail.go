package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fleetdeck/fleetdeck/internal/api"
	"github.com/fleetdeck/fleetdeck/internal/avatar"
	"github.com/fleetdeck/fleetdeck/internal/diff"
)

// detailModal is the read-only "more" view of a single entity.
type detailModal struct {
	kind    api.Kind
	id      string
	fields  diff.Snapshot
	waiting bool
}

func newDetailModal(kind api.Kind, id string) *detailModal {
	return &detailModal{kind: kind, id: id, waiting: true}
}

// Update implements Modal.
func (d *detailModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case snapshotMsg:
		if msg.kind == d.kind && msg.id == d.id {
			d.fields = msg.snap
			d.waiting = false
		}
		return d, nil, false
	case tea.KeyMsg:
		if key.Matches(msg, keys.Escape) {
			return d, nil, true
		}
		switch msg.String() {
		case "enter", "m":
			return d, nil, true
		}
	}
	return d, nil, false
}

// View implements Modal.
func (d *detailModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(d.kind.Label() + " details"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("id"))
	b.WriteString("  ")
	b.WriteString(styles.Text.Render(truncateMiddle(d.id, 48)))
	b.WriteString("\n")

	if d.waiting {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Loading..."))
	} else {
		keys := make([]string, 0, len(d.fields))
		for key := range d.fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			value, _ := d.fields[key].(string)
			if key == "avatar" {
				value = describeAvatar(value)
			}
			if key == "status" {
				b.WriteString(styles.MutedText.Render(key))
				b.WriteString("  ")
				b.WriteString(styles.StatusStyle(value).Render(value))
				b.WriteString("\n")
				continue
			}
			b.WriteString(styles.MutedText.Render(key))
			b.WriteString("  ")
			b.WriteString(styles.Text.Render(truncate(value, 60)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("esc Close"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		styles.ModalBorder.Render(b.String()))
}

// describeAvatar renders a short placeholder for an inline image instead of
// dumping kilobytes of base64 to the terminal.
func describeAvatar(value string) string {
	if value == "" {
		return "(none)"
	}
	if avatar.IsDataURI(value) {
		return "(inline image)"
	}
	return truncate(value, 40)
}
