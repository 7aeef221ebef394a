package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/proposals/internal/domain"
	"github.com/alexanderramin/proposals/internal/metrics"
	"github.com/alexanderramin/proposals/internal/query"
	"github.com/alexanderramin/proposals/internal/testutil"
	"github.com/stretchr/testify/assert"
)

var fmtNow = time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

func storedRecord(company string, version int, created time.Time) *domain.SavedProposal {
	p := testutil.NewTestProposal(company,
		testutil.WithID("0123456789abcdef-"+company),
		testutil.WithTimestamps(created, created.Add(time.Duration(version-1)*time.Hour)),
	)
	p.Version = version
	p.Denormalize()
	return p
}

func TestStatusPill(t *testing.T) {
	fresh := storedRecord("Fresh", 1, fmtNow.Add(-time.Hour))
	edited := storedRecord("Edited", 3, fmtNow.AddDate(0, 0, -20))
	old := storedRecord("Old", 1, fmtNow.AddDate(0, 0, -20))

	assert.Equal(t, "● New", stripANSI(StatusPill(fresh, fmtNow)))
	assert.Equal(t, "✎ v3", stripANSI(StatusPill(edited, fmtNow)))
	assert.Equal(t, "v1", stripANSI(StatusPill(old, fmtNow)))
}

func TestKindBadge(t *testing.T) {
	assert.Equal(t, "PABX/SIP", stripANSI(KindBadge(domain.KindPABXSIP)))
	assert.Equal(t, "Generic", stripANSI(KindBadge("")))
	assert.Equal(t, "custom", stripANSI(KindBadge("custom")))
}

func TestFormatProposalList(t *testing.T) {
	records := []*domain.SavedProposal{
		storedRecord("Acme Telecom", 2, fmtNow.AddDate(0, 0, -1)),
		storedRecord("Globex", 1, fmtNow.AddDate(0, 0, -10)),
	}
	page := query.Paginate(records, 1, 10)

	out := stripANSI(FormatProposalList(page, fmtNow))

	assert.Contains(t, out, "PROPOSALS")
	assert.Contains(t, out, "01234567")
	assert.Contains(t, out, "Acme Telecom")
	assert.Contains(t, out, "Telephony refresh")
	assert.Contains(t, out, "500.00")
	assert.Contains(t, out, "Yesterday")
	assert.Contains(t, out, "Page 1 of 1 · 2 proposal(s)")
	assert.Less(t, strings.Index(out, "Acme Telecom"), strings.Index(out, "Globex"))
}

func TestFormatProposalList_Empty(t *testing.T) {
	out := stripANSI(FormatProposalList(query.Paginate(nil, 1, 10), fmtNow))
	assert.Contains(t, out, "No proposals match.")
}

func TestFormatProposalDetail(t *testing.T) {
	p := storedRecord("Acme Telecom", 1, fmtNow.AddDate(0, 0, -10))

	out := stripANSI(FormatProposalDetail(p, fmtNow))

	assert.Contains(t, out, p.ID)
	assert.Contains(t, out, "Maria Souza")
	assert.Contains(t, out, "eq-1 (Acme M-eq-1)")
	assert.Contains(t, out, "channels=30 sla=gold")
	assert.Contains(t, out, "6,000.00")
	assert.Contains(t, out, "36 months")
}

func TestFormatSnapshot_NoLines(t *testing.T) {
	out := stripANSI(FormatSnapshot(domain.ProposalSnapshot{ContractPeriodMonths: 12}))
	assert.Contains(t, out, "No equipment lines.")
	assert.Contains(t, out, "0.00")
}

func TestFormatHistory(t *testing.T) {
	p := storedRecord("Acme Telecom", 3, fmtNow.AddDate(0, 0, -10))
	entries := []domain.VersionEntry{
		{Version: 1, CreatedAt: p.CreatedAt, Changes: []string{"Monthly total: 500 → 600"}},
		{Version: 2, CreatedAt: p.CreatedAt.Add(time.Hour), Changes: []string{}},
	}

	out := stripANSI(FormatHistory(p, entries))

	assert.Contains(t, out, "v1")
	assert.Contains(t, out, "• Monthly total: 500 → 600")
	assert.Contains(t, out, "no recorded changes")
	assert.Contains(t, out, "v3 current")
	assert.Less(t, strings.Index(out, "v1"), strings.Index(out, "v2"))
}

func TestFormatHistory_Empty(t *testing.T) {
	p := storedRecord("Acme Telecom", 1, fmtNow)
	out := stripANSI(FormatHistory(p, nil))
	assert.Contains(t, out, "No earlier versions.")
}

func TestFormatUsage(t *testing.T) {
	usage := domain.StorageUsage{Proposals: 2, Versions: 3, CurrentBytes: 512, HistoryBytes: 0}
	counts := []metrics.UseCaseCount{
		{UseCase: "save", Status: "success", Count: 4},
		{UseCase: "save", Status: "error", Count: 1},
	}

	out := stripANSI(FormatUsage(usage, counts))

	assert.Contains(t, out, "512 B")
	assert.Contains(t, out, "USE CASE")
	assert.Contains(t, out, "success")
	assert.Contains(t, out, "error")
}
