// Package query narrows and pages the newest-first listings returned by the
// proposal service. Everything here is pure: no storage access.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/proposals/internal/domain"
)

// Range selects proposals by creation date.
type Range string

const (
	RangeAll    Range = "all"
	RangeToday  Range = "today"
	RangeLast7  Range = "last7"
	RangeLast30 Range = "last30"
	RangeCustom Range = "custom"
)

// Status selects proposals by lifecycle.
type Status string

const (
	StatusAll     Status = "all"
	StatusRecent  Status = "recent"  // created within domain.RecentWindow
	StatusUpdated Status = "updated" // saved again since creation
)

// Filter holds every active criterion; they are ANDed together. The zero
// value matches everything.
type Filter struct {
	Text   string
	Range  Range
	From   time.Time // RangeCustom lower bound, inclusive; zero = open
	To     time.Time // RangeCustom upper bound, inclusive through that day; zero = open
	Status Status
	Kind   domain.ProposalKind
}

// ParseRange accepts the range names plus a few aliases.
func ParseRange(s string) (Range, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return RangeAll, nil
	case "today":
		return RangeToday, nil
	case "last7", "7d", "week":
		return RangeLast7, nil
	case "last30", "30d", "month":
		return RangeLast30, nil
	case "custom":
		return RangeCustom, nil
	}
	return "", fmt.Errorf("unknown date range %q (want all, today, last7, last30 or custom)", s)
}

// ParseStatus accepts the status names.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return StatusAll, nil
	case "recent":
		return StatusRecent, nil
	case "updated":
		return StatusUpdated, nil
	}
	return "", fmt.Errorf("unknown status %q (want all, recent or updated)", s)
}

// Apply returns the records matching f, keeping input order. Day boundaries
// are taken in now's location.
func Apply(records []*domain.SavedProposal, f Filter, now time.Time) []*domain.SavedProposal {
	from, to := f.bounds(now)
	out := make([]*domain.SavedProposal, 0, len(records))
	for _, p := range records {
		if f.matches(p, from, to, now) {
			out = append(out, p)
		}
	}
	return out
}

// Active reports whether any criterion narrows the result.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Text) != "" ||
		(f.Range != "" && f.Range != RangeAll) ||
		(f.Status != "" && f.Status != StatusAll) ||
		f.Kind != ""
}

func (f Filter) matches(p *domain.SavedProposal, from, to, now time.Time) bool {
	if !p.MatchesText(f.Text) {
		return false
	}
	if f.Kind != "" && p.Kind != f.Kind {
		return false
	}
	created := p.CreatedAt.In(now.Location())
	if !from.IsZero() && created.Before(from) {
		return false
	}
	if !to.IsZero() && !created.Before(to) {
		return false
	}
	switch f.Status {
	case StatusRecent:
		return p.IsRecent(now)
	case StatusUpdated:
		return p.WasUpdated()
	}
	return true
}

// bounds returns the half-open creation window [from, to); zero means open.
func (f Filter) bounds(now time.Time) (time.Time, time.Time) {
	today := startOfDay(now)
	switch f.Range {
	case RangeToday:
		return today, time.Time{}
	case RangeLast7:
		return today.AddDate(0, 0, -6), time.Time{}
	case RangeLast30:
		return today.AddDate(0, 0, -29), time.Time{}
	case RangeCustom:
		var from, to time.Time
		if !f.From.IsZero() {
			from = startOfDay(f.From.In(now.Location()))
		}
		if !f.To.IsZero() {
			to = startOfDay(f.To.In(now.Location())).AddDate(0, 0, 1)
		}
		return from, to
	}
	return time.Time{}, time.Time{}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
