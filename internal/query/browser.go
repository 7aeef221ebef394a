package query

import (
	"time"

	"github.com/alexanderramin/proposals/internal/domain"
)

// Browser is the state of a paged, filtered listing. Changing any filter
// criterion or the record set returns to page 1.
type Browser struct {
	records  []*domain.SavedProposal
	filter   Filter
	page     int
	pageSize int
}

// NewBrowser starts on page 1 with no filter.
func NewBrowser(records []*domain.SavedProposal, pageSize int) *Browser {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Browser{records: records, page: 1, pageSize: pageSize}
}

func (b *Browser) Filter() Filter { return b.filter }

func (b *Browser) PageNumber() int { return b.page }

// SetRecords replaces the listing, e.g. after a save or delete.
func (b *Browser) SetRecords(records []*domain.SavedProposal) {
	b.records = records
	b.page = 1
}

func (b *Browser) SetFilter(f Filter) {
	b.filter = f
	b.page = 1
}

func (b *Browser) SetText(text string) {
	b.filter.Text = text
	b.page = 1
}

func (b *Browser) SetRange(r Range) {
	b.filter.Range = r
	b.page = 1
}

// SetCustomRange selects RangeCustom with the given bounds.
func (b *Browser) SetCustomRange(from, to time.Time) {
	b.filter.Range = RangeCustom
	b.filter.From = from
	b.filter.To = to
	b.page = 1
}

func (b *Browser) SetStatus(s Status) {
	b.filter.Status = s
	b.page = 1
}

func (b *Browser) SetKind(k domain.ProposalKind) {
	b.filter.Kind = k
	b.page = 1
}

// ClearFilters drops every criterion.
func (b *Browser) ClearFilters() {
	b.filter = Filter{}
	b.page = 1
}

func (b *Browser) SetPageSize(n int) {
	if n <= 0 {
		n = DefaultPageSize
	}
	b.pageSize = n
	b.page = 1
}

// Goto moves to page n. The page is clamped when Current is computed.
func (b *Browser) Goto(n int) {
	b.page = max(n, 1)
}

// Next advances one page unless already on the last one.
func (b *Browser) Next(now time.Time) {
	if cur := b.Current(now); cur.HasNext() {
		b.page = cur.Number + 1
	}
}

// Prev goes back one page unless already on the first.
func (b *Browser) Prev(now time.Time) {
	if cur := b.Current(now); cur.HasPrev() {
		b.page = cur.Number - 1
	}
}

// Current applies the filter and returns the selected page.
func (b *Browser) Current(now time.Time) Page {
	page := Paginate(Apply(b.records, b.filter, now), b.page, b.pageSize)
	b.page = page.Number
	return page
}
