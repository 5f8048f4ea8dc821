// Package pagination turns raw item counts into page metadata and validates
// user-supplied page numbers. Listings show 4 items per page, post listings 5.
package pagination

import (
	"strconv"
	"strings"
)

const (
	ListingPageSize = 4
	PostPageSize    = 5
)

// Request is a page number exactly as it arrived in the URL, before any
// validation. Raw is kept for warning messages; Number is only meaningful
// when IsInt is true.
type Request struct {
	Raw    string
	Number int
	IsInt  bool
}

func ParseRequest(raw string) Request {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	return Request{Raw: raw, Number: n, IsInt: err == nil}
}

// Valid reports whether the requested page is an integer within
// [1, pageCount]. Callers clamp to page 1 when it is not.
func (r Request) Valid(pageCount int) bool {
	return r.IsInt && r.Number >= 1 && r.Number <= pageCount
}

// PageCount returns ceil(totalItems/pageSize), never less than 1: an empty
// listing still reports exactly one page so callers never special-case zero.
func PageCount(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 1
	}
	return (totalItems + pageSize - 1) / pageSize
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// PageNumbers returns the full navigation sequence 1..pageCount, freshly
// allocated on every call.
func PageNumbers(pageCount int) []int {
	if pageCount < 1 {
		pageCount = 1
	}
	pages := make([]int, pageCount)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
