package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fleetdeck/fleetdeck/internal/api"
	"github.com/fleetdeck/fleetdeck/internal/avatar"
	"github.com/fleetdeck/fleetdeck/internal/diff"
	"github.com/fleetdeck/fleetdeck/internal/schema"
)

// formFields fixes the field order and labels per entity family. The keys
// are the wire payload keys.
var formFields = map[api.Kind][]struct{ key, label string }{
	api.KindCompany: {
		{"name", "Name"},
		{"phone", "Phone"},
		{"email", "Email"},
		{"address", "Address"},
		{"website", "Website"},
		{"long", "Longitude"},
		{"lat", "Latitude"},
		{"status", "Status"},
		{"avatar", "Avatar (image path)"},
	},
	api.KindUser: {
		{"username", "Username"},
		{"email", "Email"},
		{"first_name", "First name"},
		{"last_name", "Last name"},
		{"phone", "Phone"},
		{"status", "Status"},
		{"avatar", "Avatar (image path)"},
	},
	api.KindVehicle: {
		{"plate", "Plate"},
		{"brand", "Brand"},
		{"model", "Model"},
		{"year", "Year"},
		{"company_id", "Company ID"},
		{"status", "Status"},
		{"avatar", "Avatar (image path)"},
	},
}

type formField struct {
	key   string
	label string
	input textinput.Model
}

// formModal is the create/edit dialog. In edit mode it waits for the
// entity snapshot, keeps the original for diff gating, and submits only the
// modified fields. In create mode it submits the full payload.
type formModal struct {
	ctx    context.Context
	client *api.Client
	kind   api.Kind
	id     string // empty in create mode

	fields []formField
	focus  int

	original   diff.Snapshot // nil until seeded; always nil in create mode
	errors     schema.Errors
	notice     string // transient inline message, e.g. "no changes"
	waiting    bool   // edit mode, snapshot fetch still in flight
	submitting bool
}

func newFormModal(ctx context.Context, client *api.Client, kind api.Kind, id string, seed diff.Snapshot) *formModal {
	f := &formModal{
		ctx:     ctx,
		client:  client,
		kind:    kind,
		id:      id,
		waiting: id != "" && seed == nil,
	}
	for _, def := range formFields[kind] {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 200
		if def.key == "status" {
			input.SetValue(api.StatusValues()[0])
		}
		f.fields = append(f.fields, formField{key: def.key, label: def.label, input: input})
	}
	if seed != nil {
		f.seed(seed)
	}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

// seed fills the inputs from a snapshot and records it as the original for
// diff gating and undo.
func (f *formModal) seed(snap diff.Snapshot) {
	f.original = snap.Clone()
	f.waiting = false
	for i := range f.fields {
		if value, ok := snap[f.fields[i].key].(string); ok {
			f.fields[i].input.SetValue(value)
		}
	}
}

// working assembles the current snapshot from the inputs.
func (f *formModal) working() diff.Snapshot {
	snap := diff.Snapshot{}
	for i := range f.fields {
		snap[f.fields[i].key] = strings.TrimSpace(f.fields[i].input.Value())
	}
	return snap
}

// restoreOriginal puts every field back to its seeded value. In create mode
// it clears the form.
func (f *formModal) restoreOriginal() {
	for i := range f.fields {
		value := ""
		if f.original != nil {
			value, _ = f.original[f.fields[i].key].(string)
		}
		f.fields[i].input.SetValue(value)
	}
	f.errors = nil
	f.notice = ""
}

func (f *formModal) setFocus(idx int) {
	if idx < 0 {
		idx = len(f.fields) - 1
	}
	if idx >= len(f.fields) {
		idx = 0
	}
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
	f.focus = idx
	f.fields[idx].input.Focus()
}

func (f *formModal) focusedKey() string {
	if f.focus < len(f.fields) {
		return f.fields[f.focus].key
	}
	return ""
}

// Update implements Modal.
func (f *formModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case snapshotMsg:
		if msg.kind == f.kind && msg.id == f.id {
			f.seed(msg.snap)
		}
		return f, nil, false

	case mutationFailedMsg:
		// The notification is already on screen; just unlock the form.
		f.submitting = false
		return f, nil, false

	case tea.KeyMsg:
		if f.submitting {
			return f, nil, false
		}
		if key.Matches(msg, keys.Escape) {
			return f, nil, true
		}
		switch msg.String() {
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return f, nil, false
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, nil, false
		case "ctrl+z":
			f.restoreOriginal()
			return f, nil, false
		case "ctrl+s":
			return f.submit()
		case "enter":
			if f.focus == len(f.fields)-1 {
				return f.submit()
			}
			f.setFocus(f.focus + 1)
			return f, nil, false
		}

		// The status field is an enumeration, not free text.
		if f.focusedKey() == "status" {
			switch msg.String() {
			case " ", "left", "right":
				f.toggleStatus()
			}
			return f, nil, false
		}

		var cmd tea.Cmd
		f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
		return f, cmd, false
	}
	return f, nil, false
}

func (f *formModal) toggleStatus() {
	current := f.fields[f.focus].input.Value()
	values := api.StatusValues()
	if current == values[0] {
		f.fields[f.focus].input.SetValue(values[1])
	} else {
		f.fields[f.focus].input.SetValue(values[0])
	}
}

// submit validates and dispatches. Edit mode computes the identity diff
// against the seeded original and sends only the modified fields; a clean
// form is a no-op with an inline notice instead of a wasted round trip.
func (f *formModal) submit() (Modal, tea.Cmd, bool) {
	if f.waiting {
		return f, nil, false
	}
	f.notice = ""
	working := f.working()

	if raw, _ := working["avatar"].(string); raw != "" && !avatar.IsDataURI(raw) {
		encoded, err := avatar.EncodeFile(raw)
		if err != nil {
			f.errors = schema.Errors{"avatar": "could not read image file"}
			return f, nil, false
		}
		working["avatar"] = encoded
	}

	errs, err := schema.Validate(f.kind, map[string]any(working))
	if err != nil || !errs.Valid() {
		f.errors = errs
		return f, nil, false
	}
	f.errors = nil

	if f.id == "" {
		f.submitting = true
		return f, createCmd(f.ctx, f.client, f.kind, map[string]any(working)), false
	}

	d := diff.Compute(working, f.original)
	if d == nil {
		f.notice = "No changes to save."
		return f, nil, false
	}
	f.submitting = true
	return f, updateCmd(f.ctx, f.client, f.kind, f.id, d.Changed), false
}

// View implements Modal.
func (f *formModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	title := "New " + f.kind.Label()
	if f.id != "" {
		title = "Edit " + f.kind.Label()
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	b.WriteString("\n\n")

	if f.waiting {
		b.WriteString(styles.MutedText.Render("Loading..."))
	} else {
		for i := range f.fields {
			label := styles.MutedText.Render(f.fields[i].label)
			if i == f.focus {
				label = styles.AccentText.Render(f.fields[i].label)
			}
			b.WriteString(label)
			b.WriteString("\n")
			b.WriteString(f.fields[i].input.View())
			if msg, bad := f.errors[f.fields[i].key]; bad {
				b.WriteString("  ")
				b.WriteString(styles.DangerText.Render(msg))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch {
	case f.submitting:
		b.WriteString(styles.WarningText.Render("Saving..."))
	case f.notice != "":
		b.WriteString(styles.InfoText.Render(f.notice))
	default:
		b.WriteString(styles.FaintText.Render("enter Save  ctrl+z Revert  esc Cancel"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		styles.ModalBorder.Render(b.String()))
}
