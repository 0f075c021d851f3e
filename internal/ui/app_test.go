package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fleetdeck/fleetdeck/internal/api"
	"github.com/fleetdeck/fleetdeck/internal/nav"
	"github.com/fleetdeck/fleetdeck/internal/notify"
	"github.com/fleetdeck/fleetdeck/internal/query"
)

func TestCycleStatusFilter_WalksAllStates(t *testing.T) {
	m := New(Options{})

	if got := m.statusFilterLabel(); got != "All" {
		t.Fatalf("initial filter = %q, want All", got)
	}
	m.cycleStatusFilter()
	if got := m.statusFilterLabel(); got != "ACTIVE" {
		t.Fatalf("filter after one cycle = %q, want ACTIVE", got)
	}
	m.cycleStatusFilter()
	if got := m.statusFilterLabel(); got != "INACTIVE" {
		t.Fatalf("filter after two cycles = %q, want INACTIVE", got)
	}
	m.cycleStatusFilter()
	if got := m.statusFilterLabel(); got != "All" {
		t.Fatalf("filter wraps to %q, want All", got)
	}
}

func TestCycleStatusFilter_ResetsPage(t *testing.T) {
	m := New(Options{})
	m.descriptor().SetPage(4)
	m.cycleStatusFilter()
	if got := m.descriptor().Page; got != 1 {
		t.Fatalf("page after filter change = %d, want 1", got)
	}
}

func TestNextPageSize_Wraps(t *testing.T) {
	if got := nextPageSize(15); got != 20 {
		t.Fatalf("nextPageSize(15) = %d, want 20", got)
	}
	last := query.PageSizes[len(query.PageSizes)-1]
	if got := nextPageSize(last); got != query.PageSizes[0] {
		t.Fatalf("nextPageSize(%d) = %d, want wrap to %d", last, got, query.PageSizes[0])
	}
}

func TestStaleListResponseIsDropped(t *testing.T) {
	m := New(Options{})
	kind := m.Kind()
	m.fetchGen[kind] = 3

	updated, _ := m.Update(listMsg{
		kind: kind,
		gen:  2,
		page: &api.ListPage{Paginator: api.Paginator{Total: 99, CurrentPage: 9, LastPage: 9}},
	})
	m = updated.(Model)

	if m.pages[kind] != nil {
		t.Fatalf("stale response was applied")
	}
	if m.queries[kind].Page == 9 {
		t.Fatalf("stale paginator reconciled into the descriptor")
	}
}

func TestCurrentListResponseReconciles(t *testing.T) {
	m := New(Options{})
	kind := m.Kind()
	m.fetchGen[kind] = 3

	updated, _ := m.Update(listMsg{
		kind: kind,
		gen:  3,
		page: &api.ListPage{
			Items:     []api.Summary{{ID: "c-1", Title: "Acme"}},
			Paginator: api.Paginator{Total: 31, CurrentPage: 2, LastPage: 3},
		},
	})
	m = updated.(Model)

	if m.pages[kind] == nil || len(m.pages[kind].Items) != 1 {
		t.Fatalf("current response was not applied")
	}
	d := m.queries[kind]
	if d.Page != 2 || d.LastPage != 3 || d.Total != 31 {
		t.Fatalf("paginator not reconciled: page=%d last=%d total=%d", d.Page, d.LastPage, d.Total)
	}
}

func TestNew_RestoresLastView(t *testing.T) {
	m := New(Options{LastView: "page=3&size=25&field=email&search=acme&status=ACTIVE&action=edit&id=c-1"})

	d := m.queries[api.KindCompany]
	if d.Page != 3 || d.PageSize != 25 {
		t.Fatalf("restored page/size = %d/%d, want 3/25", d.Page, d.PageSize)
	}
	if d.SearchField != "email" || d.SearchText != "acme" {
		t.Fatalf("restored search = %q in %q, want acme in email", d.SearchText, d.SearchField)
	}
	if got := d.Filters["status"]; len(got) != 1 || got[0] != "ACTIVE" {
		t.Fatalf("restored status filter = %v, want [ACTIVE]", got)
	}
	// A dialog open at quit must not resurrect half-initialized.
	if m.nav.Action() != nav.ActionNone {
		t.Fatalf("restored action = %q, want none", m.nav.Action())
	}
}

func TestNew_IgnoresMalformedLastView(t *testing.T) {
	m := New(Options{LastView: "%zz", PageSize: 20})
	d := m.queries[api.KindCompany]
	if d.Page != 1 || d.PageSize != 20 {
		t.Fatalf("malformed view changed descriptor: page=%d size=%d", d.Page, d.PageSize)
	}
}

func TestEscapeBindingClosesModals(t *testing.T) {
	keys := DefaultKeyMap()
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	if _, _, closed := newDetailModal(api.KindUser, "u-1").Update(esc, keys); !closed {
		t.Fatalf("escape did not close the detail modal")
	}
	if _, _, closed := newDeleteModal(context.Background(), nil, api.KindUser, "u-1", nil).Update(esc, keys); !closed {
		t.Fatalf("escape did not close the delete modal")
	}
	f := newFormModal(context.Background(), nil, api.KindUser, "", nil)
	if _, _, closed := f.Update(esc, keys); !closed {
		t.Fatalf("escape did not close the form modal")
	}
}

func TestDeleteModal_LongIDKeepsDiscriminatingSuffix(t *testing.T) {
	id := "fleet-" + strings.Repeat("0", 60) + "-tail"
	d := newDeleteModal(context.Background(), nil, api.KindCompany, id, nil)

	view := d.View(GetTheme("Nightfox"), 120, 40)
	if !strings.Contains(view, "-tail") {
		t.Fatalf("view hides the id suffix:\n%s", view)
	}
	if strings.Contains(view, "id "+id) {
		t.Fatalf("long id rendered untruncated")
	}
}

func TestDelete404BecomesInfoToastNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"error","code":"COMPANY_NOT_FOUND"}`))
	}))
	defer server.Close()

	center := notify.NewCenter()
	gw, err := api.NewGateway(server.URL, nil, center, nil)
	if err != nil {
		t.Fatalf("NewGateway: %v", err)
	}
	client := api.NewClient(gw)
	m := New(Options{Client: client, Center: center})

	msg := deleteCmd(context.Background(), client, api.KindCompany, "c-gone")()
	mutated, ok := msg.(mutatedMsg)
	if !ok {
		t.Fatalf("delete 404 produced %T, want mutatedMsg", msg)
	}
	if !mutated.alreadyGone {
		t.Fatalf("delete 404 not flagged as already gone")
	}
	m.Update(mutated)

	var sawInfo bool
	for _, n := range center.Active(notify.DefaultTTL) {
		if n.Level == notify.Error {
			t.Fatalf("deleting an already-deleted record raised an error notification: %q", n.Message)
		}
		if n.Level == notify.Info {
			sawInfo = true
		}
	}
	if !sawInfo {
		t.Fatalf("no already-deleted info toast was shown")
	}
}

func TestDeleteModal_RequiresExactID(t *testing.T) {
	d := newDeleteModal(context.Background(), nil, api.KindCompany, "c-42", nil)

	d.input.SetValue("c-41")
	modal, cmd, closed := d.Update(tea.KeyMsg{Type: tea.KeyEnter}, DefaultKeyMap())
	d = modal.(*deleteModal)
	if cmd != nil || closed {
		t.Fatalf("mismatched id must not dispatch or close")
	}
	if !d.mismatch {
		t.Fatalf("mismatch flag not set")
	}

	d.input.SetValue("c-42")
	_, cmd, closed = d.Update(tea.KeyMsg{Type: tea.KeyEnter}, DefaultKeyMap())
	if cmd == nil {
		t.Fatalf("matching id produced no delete command")
	}
	if closed {
		t.Fatalf("dialog must stay open until the delete completes")
	}
}
