package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fleetdeck/fleetdeck/internal/api"
)

// deleteModal asks the user to retype the target's id before the delete is
// dispatched. The echo makes the destructive path deliberately slow.
type deleteModal struct {
	ctx    context.Context
	client *api.Client
	kind   api.Kind
	id     string
	title  string

	input      textinput.Model
	mismatch   bool
	submitting bool
}

func newDeleteModal(ctx context.Context, client *api.Client, kind api.Kind, id string, summary *api.Summary) *deleteModal {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = len(id) + 8
	input.Focus()

	title := id
	if summary != nil && summary.Title != "" {
		title = summary.Title
	}
	return &deleteModal{
		ctx:    ctx,
		client: client,
		kind:   kind,
		id:     id,
		title:  title,
		input:  input,
	}
}

// Update implements Modal.
func (d *deleteModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case mutationFailedMsg:
		d.submitting = false
		return d, nil, false

	case tea.KeyMsg:
		if d.submitting {
			return d, nil, false
		}
		if key.Matches(msg, keys.Escape) {
			return d, nil, true
		}
		switch msg.String() {
		case "enter":
			if strings.TrimSpace(d.input.Value()) != d.id {
				d.mismatch = true
				return d, nil, false
			}
			d.submitting = true
			return d, deleteCmd(d.ctx, d.client, d.kind, d.id), false
		}
		d.mismatch = false
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd, false
	}
	return d, nil, false
}

// View implements Modal.
func (d *deleteModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Delete " + d.kind.Label()))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(truncateMiddle(d.title, 48)))
	b.WriteString("\n")
	// Middle truncation keeps the discriminating suffix of long ids visible.
	b.WriteString(styles.MutedText.Render("id " + truncateMiddle(d.id, 48)))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Type the id to confirm:"))
	b.WriteString("\n")
	b.WriteString(d.input.View())
	b.WriteString("\n\n")
	switch {
	case d.submitting:
		b.WriteString(styles.WarningText.Render("Deleting..."))
	case d.mismatch:
		b.WriteString(styles.DangerText.Render("The id does not match."))
	default:
		b.WriteString(styles.FaintText.Render("enter Delete  esc Cancel"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		styles.ModalBorder.BorderForeground(lipgloss.Color(theme.Danger)).Render(b.String()))
}
