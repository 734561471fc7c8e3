// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows shown in paged lists.
const PageSize = 25

// MaxPageSize caps the "size" query parameter on JSON endpoints.
const MaxPageSize = 200

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	return positive(query.Get(r, "page"), 1)
}

// ParseSize extracts the "size" query parameter, clamped to [1, MaxPageSize].
// Returns PageSize if not present or invalid.
func ParseSize(r *http.Request) int {
	n := positive(query.Get(r, "size"), PageSize)
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

func positive(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Page describes one window over an already filtered and sorted list.
type Page struct {
	Number     int  `json:"number"`      // 1-based, clamped to [1, TotalPages]
	Size       int  `json:"size"`        // rows per page
	TotalRows  int  `json:"total_rows"`  // rows across all pages
	TotalPages int  `json:"total_pages"` // at least 1
	Start      int  `json:"start"`       // 1-based index of first row shown (0 if none)
	End        int  `json:"end"`         // 1-based index of last row shown (0 if none)
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
	PrevPage   int  `json:"prev_page"`
	NextPage   int  `json:"next_page"`
}

// Window returns the rows on page number (1-based) of size rows each, plus
// the Page describing it. Out-of-range page numbers are clamped. The returned
// slice is a sub-slice of rows.
func Window[T any](rows []T, number, size int) ([]T, Page) {
	if size < 1 {
		size = PageSize
	}
	total := len(rows)
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}

	lo := (number - 1) * size
	hi := lo + size
	if hi > total {
		hi = total
	}

	p := Page{
		Number:     number,
		Size:       size,
		TotalRows:  total,
		TotalPages: pages,
		HasPrev:    number > 1,
		HasNext:    number < pages,
		PrevPage:   max(number-1, 1),
		NextPage:   min(number+1, pages),
	}
	if hi > lo {
		p.Start, p.End = lo+1, hi
	}
	return rows[lo:hi], p
}
