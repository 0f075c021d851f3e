package query

// PageRef is one slot in the rendered pagination strip: either a numbered
// page (possibly the current one) or an ellipsis gap.
type PageRef struct {
	Number   int
	Current  bool
	Ellipsis bool
}

// Window computes the pagination strip for the given position: the first
// page plus an ellipsis once the current page is 4 or beyond, up to two
// pages either side of the current page, and an ellipsis plus the last page
// while more than two pages remain ahead.
func Window(current, last int) []PageRef {
	if current < 1 {
		current = 1
	}
	var refs []PageRef
	if current >= 4 {
		refs = append(refs, PageRef{Number: 1}, PageRef{Ellipsis: true})
	}
	if current > 2 {
		refs = append(refs, PageRef{Number: current - 2})
	}
	if current >= 2 {
		refs = append(refs, PageRef{Number: current - 1})
	}
	refs = append(refs, PageRef{Number: current, Current: true})
	if current < last {
		refs = append(refs, PageRef{Number: current + 1})
	}
	if current < last-1 {
		refs = append(refs, PageRef{Number: current + 2})
	}
	if current < last-2 {
		refs = append(refs, PageRef{Ellipsis: true}, PageRef{Number: last})
	}
	return refs
}

// PrevEnabled reports whether the previous-page control is usable.
func PrevEnabled(current int) bool { return current > 1 }

// NextEnabled reports whether the next-page control is usable. A zero-page
// result set disables it outright.
func NextEnabled(current, last int) bool { return last != 0 && current < last }
