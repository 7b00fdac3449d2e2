package domain

import "math"

// PaginationParams carries page/limit values from the HTTP layer to the repo layer.
// Page is 1-indexed. Limit is capped at 100 by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to page=1 and defaultLimit.
// The limit is capped at 100 to prevent runaway queries.
func NewPaginationParams(page, limit *int, defaultLimit int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: defaultLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return offset(p.Page, p.Limit)
}

// Window returns the row window for p.
func (p PaginationParams) Window() Window {
	return Window{Offset: p.Offset(), Limit: p.Limit}
}

// Window is the row range a paginated query reads.
type Window struct {
	Offset int
	Limit  int
}

// PaginationWindow maps a requested page onto a row window of pageSize rows.
// A nil or non-positive page is treated as page 1, so Offset is never negative.
// The window does not depend on the row count: a page past the end reads
// zero rows.
func PaginationWindow(pageSize int, requestedPage *int) Window {
	page := 1
	if requestedPage != nil && *requestedPage > 1 {
		page = *requestedPage
	}
	if pageSize < 0 {
		pageSize = 0
	}
	return Window{Offset: offset(page, pageSize), Limit: pageSize}
}

// offset computes (page-1)*size, saturating instead of overflowing.
func offset(page, size int) int {
	if page <= 1 || size <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/size {
		return math.MaxInt / size * size
	}
	return (page - 1) * size
}

// TotalPages returns how many pages of pageSize rows hold total rows.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
