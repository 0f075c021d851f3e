package query

import (
	"net/url"
	"reflect"
	"testing"
)

func newTestDescriptor() Descriptor {
	return New([]string{"name", "email", "phone"}, []string{"status"})
}

func TestNew_Defaults(t *testing.T) {
	d := newTestDescriptor()
	if d.Page != 1 || d.PageSize != 15 || d.SearchField != "name" {
		t.Fatalf("defaults = page %d size %d field %q, want 1/15/name", d.Page, d.PageSize, d.SearchField)
	}
}

func TestSearchAndFilterChangesResetPage(t *testing.T) {
	d := newTestDescriptor()
	d.SetPage(3)

	d.SetSearchText("ab")
	if d.Page != 1 {
		t.Fatalf("page after search text change = %d, want 1", d.Page)
	}

	d.SetPage(3)
	d.SetSearchField("email")
	if d.Page != 1 {
		t.Fatalf("page after search field change = %d, want 1", d.Page)
	}

	d.SetPage(3)
	d.SetFilter("status", []string{"ACTIVE"})
	if d.Page != 1 {
		t.Fatalf("page after filter change = %d, want 1", d.Page)
	}
}

func TestSetPageSize_FoldsUnknownToDefault(t *testing.T) {
	d := newTestDescriptor()
	d.SetPageSize(25)
	if d.PageSize != 25 {
		t.Fatalf("PageSize = %d, want 25", d.PageSize)
	}
	d.SetPageSize(17)
	if d.PageSize != 15 {
		t.Fatalf("PageSize = %d, want default 15 for out-of-enum value", d.PageSize)
	}
}

func TestReconcile_ServerPaginatorWins(t *testing.T) {
	d := newTestDescriptor()
	d.SetPage(9)
	d.Reconcile(4, 4, 47)
	if d.Page != 4 || d.LastPage != 4 || d.Total != 47 {
		t.Fatalf("after Reconcile: page %d last %d total %d, want 4/4/47", d.Page, d.LastPage, d.Total)
	}
}

func TestValuesLoad_RoundTrip(t *testing.T) {
	d := newTestDescriptor()
	d.SetSearchField("email")
	d.SetSearchText("acme")
	d.SetFilter("status", []string{"ACTIVE", "INACTIVE"})
	d.SetPage(3)
	d.SetPageSize(30)

	restored := newTestDescriptor()
	restored.Load(d.Values())

	if restored.Page != 3 || restored.PageSize != 30 {
		t.Fatalf("restored page/size = %d/%d, want 3/30", restored.Page, restored.PageSize)
	}
	if restored.SearchField != "email" || restored.SearchText != "acme" {
		t.Fatalf("restored search = %q/%q, want email/acme", restored.SearchField, restored.SearchText)
	}
	if !reflect.DeepEqual(restored.Filters["status"], []string{"ACTIVE", "INACTIVE"}) {
		t.Fatalf("restored filters = %v, want ACTIVE,INACTIVE", restored.Filters)
	}
}

func TestValues_DefaultsOmitted(t *testing.T) {
	d := newTestDescriptor()
	if encoded := d.Values().Encode(); encoded != "" {
		t.Fatalf("untouched descriptor encodes to %q, want empty", encoded)
	}
}

func TestLoad_GarbageDegradesToDefaults(t *testing.T) {
	d := newTestDescriptor()
	d.Load(url.Values{
		"page":   {"-3"},
		"size":   {"nine"},
		"field":  {"password"},
		"status": {" , ,"},
	})
	if d.Page != 1 || d.PageSize != 15 || d.SearchField != "name" {
		t.Fatalf("degraded = page %d size %d field %q, want defaults", d.Page, d.PageSize, d.SearchField)
	}
	if len(d.Filters) != 0 {
		t.Fatalf("filters = %v, want empty", d.Filters)
	}
}

func TestWindow_MidRange(t *testing.T) {
	// Paginator {total:47, currentPage:2, lastPage:4}.
	refs := Window(2, 4)
	want := []PageRef{
		{Number: 1},
		{Number: 2, Current: true},
		{Number: 3},
		{Number: 4},
	}
	if !reflect.DeepEqual(refs, want) {
		t.Fatalf("Window(2,4) = %v, want %v", refs, want)
	}
	if !PrevEnabled(2) || !NextEnabled(2, 4) {
		t.Fatal("prev/next should both be enabled at page 2 of 4")
	}
}

func TestWindow_LeadingAndTrailingEllipsis(t *testing.T) {
	refs := Window(5, 10)
	want := []PageRef{
		{Number: 1},
		{Ellipsis: true},
		{Number: 3},
		{Number: 4},
		{Number: 5, Current: true},
		{Number: 6},
		{Number: 7},
		{Ellipsis: true},
		{Number: 10},
	}
	if !reflect.DeepEqual(refs, want) {
		t.Fatalf("Window(5,10) = %v, want %v", refs, want)
	}
}

func TestWindow_Boundaries(t *testing.T) {
	if got := Window(1, 1); len(got) != 1 || !got[0].Current {
		t.Fatalf("Window(1,1) = %v, want single current page", got)
	}
	if PrevEnabled(1) {
		t.Fatal("prev enabled on page 1")
	}
	if NextEnabled(4, 4) {
		t.Fatal("next enabled on the last page")
	}
	if NextEnabled(1, 0) {
		t.Fatal("next enabled with zero pages")
	}
}
