package query

import "github.com/alexanderramin/proposals/internal/domain"

// DefaultPageSize is used when a non-positive size is requested.
const DefaultPageSize = 10

// Page is one fixed-size slice of a filtered listing.
type Page struct {
	Items      []*domain.SavedProposal
	Number     int // 1-based
	Size       int
	TotalItems int
	TotalPages int
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// Paginate returns page number of records. The number is clamped to
// [1, TotalPages]; an empty listing has one empty page.
func Paginate(records []*domain.SavedProposal, number, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(records)
	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	number = clamp(number, 1, pages)

	start := (number - 1) * size
	end := min(start+size, total)
	items := make([]*domain.SavedProposal, 0, end-start)
	items = append(items, records[start:end]...)

	return Page{
		Items:      items,
		Number:     number,
		Size:       size,
		TotalItems: total,
		TotalPages: pages,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
