// Package query owns "what is currently being listed": page, page size,
// search field and text, and structured filters. The descriptor mirrors
// itself into the shared navigation state so a restored state reproduces the
// exact list view, and reconciles its page against the paginator the server
// reports after every successful list fetch.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// PageSizes is the fixed page-size enumeration. The first entry is the
// default.
var PageSizes = []int{15, 20, 25, 30, 35, 40}

// DefaultPageSize is the size used when nothing else selects one.
const DefaultPageSize = 15

// ValidPageSize reports whether size is in the fixed enumeration.
func ValidPageSize(size int) bool {
	for _, allowed := range PageSizes {
		if size == allowed {
			return true
		}
	}
	return false
}

const (
	pageKey   = "page"
	sizeKey   = "size"
	searchKey = "search"
	fieldKey  = "field"
)

// Descriptor is the single source of truth for a list view's request state.
// Mutate it through the Set methods so the page-reset rule holds: changing
// the search text, search field, or any filter invalidates the old page
// position and snaps back to page 1.
type Descriptor struct {
	Page        int
	PageSize    int
	SearchField string
	SearchText  string
	Filters     map[string][]string

	// Server-reported totals, authoritative after each list fetch.
	LastPage int
	Total    int

	searchFields []string
	filterKeys   []string
}

// New builds a descriptor for a view whose searchable columns and filter
// keys are fixed enumerations. The first search field is the default.
func New(searchFields, filterKeys []string) Descriptor {
	d := Descriptor{
		Page:         1,
		PageSize:     PageSizes[0],
		Filters:      map[string][]string{},
		searchFields: searchFields,
		filterKeys:   filterKeys,
	}
	if len(searchFields) > 0 {
		d.SearchField = searchFields[0]
	}
	return d
}

// SearchFields returns the searchable column enumeration.
func (d *Descriptor) SearchFields() []string { return d.searchFields }

// SetSearchText updates the free-text search and resets to page 1.
func (d *Descriptor) SetSearchText(text string) {
	d.SearchText = strings.TrimSpace(text)
	d.Page = 1
}

// SetSearchField selects the searched column and resets to page 1. Unknown
// fields fold to the default.
func (d *Descriptor) SetSearchField(field string) {
	d.SearchField = d.validField(field)
	d.Page = 1
}

// SetFilter replaces a filter key's selected values and resets to page 1.
// An empty value list removes the key.
func (d *Descriptor) SetFilter(key string, values []string) {
	if !contains(d.filterKeys, key) {
		return
	}
	if len(values) == 0 {
		delete(d.Filters, key)
	} else {
		d.Filters[key] = append([]string(nil), values...)
	}
	d.Page = 1
}

// SetPage moves to the given page, clamped to >= 1.
func (d *Descriptor) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	d.Page = page
}

// SetPageSize selects a size from the fixed enumeration; values outside it
// fold to the default. The page position is kept.
func (d *Descriptor) SetPageSize(size int) {
	for _, allowed := range PageSizes {
		if size == allowed {
			d.PageSize = size
			return
		}
	}
	d.PageSize = PageSizes[0]
}

// Reconcile overwrites the local page and totals with the server's paginator
// so races (an entity deleted between pages, a shrunken result set) correct
// themselves after every successful fetch.
func (d *Descriptor) Reconcile(currentPage, lastPage, total int) {
	if currentPage >= 1 {
		d.Page = currentPage
	}
	d.LastPage = lastPage
	d.Total = total
}

// OwnedKeys lists the navigation-state keys this descriptor writes, so a
// rewrite can drop stale ones.
func (d *Descriptor) OwnedKeys() []string {
	keys := []string{pageKey, sizeKey, searchKey, fieldKey}
	return append(keys, d.filterKeys...)
}

// Values encodes the descriptor for the shared navigation state. Defaults
// are omitted so an untouched view encodes to an empty query.
func (d *Descriptor) Values() url.Values {
	v := url.Values{}
	if d.Page > 1 {
		v.Set(pageKey, strconv.Itoa(d.Page))
	}
	if d.PageSize != PageSizes[0] {
		v.Set(sizeKey, strconv.Itoa(d.PageSize))
	}
	if d.SearchText != "" {
		v.Set(searchKey, d.SearchText)
		if d.SearchField != "" {
			v.Set(fieldKey, d.SearchField)
		}
	}
	for _, key := range d.filterKeys {
		if selected := d.Filters[key]; len(selected) > 0 {
			v.Set(key, strings.Join(selected, ","))
		}
	}
	return v
}

// Load restores the descriptor from navigation-state values, e.g. after back
// navigation. Unparseable fragments degrade to their defaults.
func (d *Descriptor) Load(v url.Values) {
	d.Page = 1
	if page, err := strconv.Atoi(v.Get(pageKey)); err == nil && page >= 1 {
		d.Page = page
	}
	d.SetPageSize(atoiOr(v.Get(sizeKey), PageSizes[0]))
	d.SearchText = strings.TrimSpace(v.Get(searchKey))
	d.SearchField = d.validField(v.Get(fieldKey))
	d.Filters = map[string][]string{}
	for _, key := range d.filterKeys {
		if !v.Has(key) {
			continue
		}
		var selected []string
		for _, part := range strings.Split(v.Get(key), ",") {
			if part = strings.TrimSpace(part); part != "" {
				selected = append(selected, part)
			}
		}
		if len(selected) > 0 {
			d.Filters[key] = selected
		}
	}
}

func (d *Descriptor) validField(field string) string {
	if contains(d.searchFields, field) {
		return field
	}
	if len(d.searchFields) > 0 {
		return d.searchFields[0]
	}
	return ""
}

func atoiOr(raw string, fallback int) int {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return fallback
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
