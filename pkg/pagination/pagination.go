package pagination

import (
	"strconv"
)

const (
	// StorefrontPageSize is the product grid page size.
	StorefrontPageSize = 12
	// AdminPageSize is the page size of every admin table.
	AdminPageSize = 10
	// MaxPageSize caps how many rows a single listing may request from the backend.
	MaxPageSize = 100
	// windowSize is how many numbered page links the pager shows at once.
	windowSize = 5
)

// Params holds zero-based page inputs forwarded to the backend.
type Params struct {
	Page int
	Size int
}

// NormalizeSize enforces the supplied default and the maximum page size.
func NormalizeSize(size, fallback int) int {
	if size <= 0 {
		return fallback
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// ParsePage reads a zero-based page index from a query value. Invalid or negative input yields 0.
func ParsePage(raw string) int {
	if raw == "" {
		return 0
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0
	}
	return page
}

// Window describes the pager rendered under a paginated list.
type Window struct {
	Current    int
	TotalPages int
	Pages      []int
	HasPrev    bool
	HasNext    bool
}

// Visible reports whether a pager should be rendered at all.
func (w Window) Visible() bool {
	return w.TotalPages > 1
}

// Label renders "Page n of m" with one-based numbering.
func (w Window) Label() string {
	return "Page " + strconv.Itoa(w.Current+1) + " of " + strconv.Itoa(w.TotalPages)
}

// Prev returns the previous page index, clamped at 0.
func (w Window) Prev() int {
	if w.Current <= 0 {
		return 0
	}
	return w.Current - 1
}

// Next returns the next page index, clamped at the last page.
func (w Window) Next() int {
	if w.Current >= w.TotalPages-1 {
		return max(w.TotalPages-1, 0)
	}
	return w.Current + 1
}

// NewWindow builds a pager centred on current showing at most five page links.
func NewWindow(current, totalPages int) Window {
	if totalPages < 0 {
		totalPages = 0
	}
	if current < 0 {
		current = 0
	}
	w := Window{
		Current:    current,
		TotalPages: totalPages,
		HasPrev:    current > 0,
		HasNext:    current < totalPages-1,
	}
	count := min(windowSize, totalPages)
	w.Pages = make([]int, 0, count)
	for i := 0; i < count; i++ {
		var page int
		switch {
		case totalPages <= windowSize, current < 3:
			page = i
		case current > totalPages-3:
			page = totalPages - windowSize + i
		default:
			page = current - 2 + i
		}
		w.Pages = append(w.Pages, page)
	}
	return w
}
