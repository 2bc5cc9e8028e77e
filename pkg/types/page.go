package types

// Page mirrors the paginated list envelope returned by the commerce backend.
// Number is zero-based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// Empty reports whether the page carries no rows.
func (p *Page[T]) Empty() bool {
	return p == nil || len(p.Content) == 0
}

// WithContent returns a copy of the page metadata carrying different rows.
// Totals are left untouched; they still describe the backend result.
func (p Page[T]) WithContent(content []T) Page[T] {
	p.Content = content
	return p
}
