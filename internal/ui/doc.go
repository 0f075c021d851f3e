// Package ui provides the terminal user interface for fleetdeck.
//
// # Architecture Overview
//
// The UI is built on Bubble Tea. One root Model owns everything on screen:
// the entity tabs, one list descriptor per entity family, the open dialog,
// and the shared navigation state. All state transitions flow through the
// root Update loop, so there is exactly one writer of the navigation state
// and dialog changes can never race each other.
//
// # Package Structure
//
//   - app.go: the root Model, key routing, tab and dialog orchestration
//   - list.go: list table, pagination footer, notifications, command bar
//   - form.go: the create/edit dialog with diff gating and validation
//   - delete.go: the retype-the-id delete confirmation dialog
//   - detail.go: the read-only single-record view
//   - header.go: the status bar (identity, activity, latency)
//   - theme.go: color themes and lipgloss style construction
//   - keys.go: key bindings
//   - msgs.go: messages and the commands that produce them
//
// # Navigation state
//
// Dialogs are not ad-hoc booleans. Opening one writes an action and target
// id into the shared nav.State; the root model mounts whatever dialog the
// state says is open. Opening a dialog while another is up replaces it, and
// backspace walks the history stack, restoring both the list query and any
// dialog that was open at that point.
//
// # Fetch generations
//
// Every list fetch is stamped with a per-tab generation number. Changing
// the page, search, filter or page size bumps the generation, so a slow
// response from a superseded query is recognized and dropped instead of
// overwriting the newer page.
//
// # Dialogs
//
// The form dialog seeds itself from the entity snapshot in edit mode and
// submits only the fields whose values differ from that snapshot; a form
// with no changes is a local no-op. Create submits the full payload. Both
// validate against the entity schema before anything is dispatched. The
// delete dialog requires the target id to be retyped, and treats a
// not-found response as an already-completed deletion.
package ui
