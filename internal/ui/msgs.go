package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fleetdeck/fleetdeck/internal/api"
	"github.com/fleetdeck/fleetdeck/internal/diff"
)

// tickMsg drives the periodic header refresh and notification expiry.
type tickMsg time.Time

func tickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// listMsg delivers one fetched list page. gen is the fetch generation the
// request was stamped with; the root model drops pages from superseded
// fetches so a slow response never overwrites a newer one.
type listMsg struct {
	kind api.Kind
	gen  uint64
	page *api.ListPage
}

// listFailedMsg reports a failed list fetch. The notification has already
// been emitted by the gateway; the message exists so the view can clear its
// loading placeholder.
type listFailedMsg struct {
	kind api.Kind
	gen  uint64
}

// snapshotMsg seeds an edit dialog with the fetched entity's editable
// fields.
type snapshotMsg struct {
	kind api.Kind
	id   string
	snap diff.Snapshot
}

// snapshotFailedMsg closes a dialog whose target could not be fetched.
type snapshotFailedMsg struct {
	kind api.Kind
	id   string
}

// mutatedMsg reports a completed create, update or delete. alreadyGone
// marks a delete whose target was missing, which counts as done.
type mutatedMsg struct {
	kind        api.Kind
	verb        string // "created", "updated", "deleted"
	alreadyGone bool
}

// mutationFailedMsg keeps a dialog open after a rejected submission. The
// user-facing notification has already been emitted.
type mutationFailedMsg struct {
	kind api.Kind
}

func fetchListCmd(ctx context.Context, client *api.Client, kind api.Kind, gen uint64, q api.ListQuery) tea.Cmd {
	return func() tea.Msg {
		page, err := client.List(ctx, kind, q)
		if err != nil {
			return listFailedMsg{kind: kind, gen: gen}
		}
		return listMsg{kind: kind, gen: gen, page: page}
	}
}

func fetchSnapshotCmd(ctx context.Context, client *api.Client, kind api.Kind, id string) tea.Cmd {
	return func() tea.Msg {
		snap, err := client.GetSnapshot(ctx, kind, id)
		if err != nil {
			return snapshotFailedMsg{kind: kind, id: id}
		}
		return snapshotMsg{kind: kind, id: id, snap: snap}
	}
}

func createCmd(ctx context.Context, client *api.Client, kind api.Kind, payload map[string]any) tea.Cmd {
	return func() tea.Msg {
		if err := client.Create(ctx, kind, payload); err != nil {
			return mutationFailedMsg{kind: kind}
		}
		return mutatedMsg{kind: kind, verb: "created"}
	}
}

func updateCmd(ctx context.Context, client *api.Client, kind api.Kind, id string, changed map[string]any) tea.Cmd {
	return func() tea.Msg {
		if err := client.Update(ctx, kind, id, changed); err != nil {
			return mutationFailedMsg{kind: kind}
		}
		return mutatedMsg{kind: kind, verb: "updated"}
	}
}

func deleteCmd(ctx context.Context, client *api.Client, kind api.Kind, id string) tea.Cmd {
	return func() tea.Msg {
		err := client.Delete(ctx, kind, id)
		switch {
		case err == nil:
			return mutatedMsg{kind: kind, verb: "deleted"}
		case api.IsNotFound(err):
			// Someone else got there first. The record is gone either way,
			// so treat it as done and let the refresh show reality.
			return mutatedMsg{kind: kind, verb: "deleted", alreadyGone: true}
		default:
			return mutationFailedMsg{kind: kind}
		}
	}
}
