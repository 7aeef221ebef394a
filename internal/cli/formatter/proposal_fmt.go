package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/proposals/internal/domain"
	"github.com/alexanderramin/proposals/internal/metrics"
	"github.com/alexanderramin/proposals/internal/query"
	"github.com/charmbracelet/lipgloss"
)

// FormatProposalList renders one page of a listing inside a bordered box.
func FormatProposalList(page query.Page, now time.Time) string {
	if page.TotalItems == 0 {
		return RenderBox("Proposals", Dim("No proposals match."))
	}

	headers := []string{"ID", "CLIENT", "PROJECT", "KIND", "MONTHLY", "STATUS", "CREATED", "DOC"}
	rows := make([][]string, 0, len(page.Items))
	for _, p := range page.Items {
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(Fallback(p.ClientName)),
			Fallback(p.ProjectName),
			KindBadge(p.Kind),
			Money(p.TotalValue),
			StatusPill(p, now),
			RelativeDateFrom(p.CreatedAt, now),
			Dim(Size(p.DocumentSize)),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows, AlignRight(4, 7)))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("Page %d of %d · %d proposal(s)", page.Number, page.TotalPages, page.TotalItems)))
	return RenderBox("Proposals", b.String())
}

// FormatProposalDetail renders the current state of one record.
func FormatProposalDetail(p *domain.SavedProposal, now time.Time) string {
	meta := []string{
		field("ID", p.ID),
		field("Kind", KindBadge(p.Kind)),
		field("Version", fmt.Sprintf("%d  %s", p.Version, StatusPill(p, now))),
		field("Created", Timestamp(p.CreatedAt)),
		field("Updated", Timestamp(p.UpdatedAt)),
		field("Document", Size(p.DocumentSize)),
		field("History", strconv.Itoa(len(p.VersionHistory))+" archived version(s)"),
	}

	client := []string{
		field("Company", Fallback(p.Client.CompanyName)),
		field("Contact", Fallback(p.Client.ContactName)),
		field("Email", Fallback(p.Client.Email)),
		field("Phone", Fallback(p.Client.Phone)),
		field("Project", Fallback(p.Client.ProjectName)),
		field("Manager", Fallback(p.Client.ManagerName)),
	}

	left := strings.Join(meta, "\n")
	right := strings.Join(client, "\n")
	top := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)

	var b strings.Builder
	b.WriteString(top)
	b.WriteString("\n\n")
	b.WriteString(Header("Equipment"))
	b.WriteString("\n")
	b.WriteString(FormatSnapshot(p.Snapshot))
	return RenderBox(Fallback(p.ClientName), b.String())
}

// FormatSnapshot renders equipment lines and totals.
func FormatSnapshot(s domain.ProposalSnapshot) string {
	var b strings.Builder
	if len(s.EquipmentLines) == 0 {
		b.WriteString(Dim("No equipment lines."))
		b.WriteString("\n")
	} else {
		headers := []string{"LINE", "CATEGORY", "VOLUME", "MONTHLY", "SPECS"}
		rows := make([][]string, 0, len(s.EquipmentLines))
		for _, l := range s.EquipmentLines {
			rows = append(rows, []string{
				l.Label(),
				Fallback(l.Category),
				strconv.FormatFloat(l.MonthlyVolume, 'f', -1, 64),
				Money(l.MonthlyCost),
				Dim(specSummary(l.Specifications)),
			})
		}
		b.WriteString(RenderTable(headers, rows, AlignRight(2, 3)))
	}
	b.WriteString("\n")
	b.WriteString(field("Monthly", Bold(Money(s.TotalMonthly))))
	b.WriteString("\n")
	b.WriteString(field("Annual", Money(s.TotalAnnual)))
	b.WriteString("\n")
	b.WriteString(field("Contract", fmt.Sprintf("%d months", s.ContractPeriodMonths)))
	return b.String()
}

// FormatHistory renders archived versions oldest first with their changes.
func FormatHistory(p *domain.SavedProposal, entries []domain.VersionEntry) string {
	var b strings.Builder
	if len(entries) == 0 {
		b.WriteString(Dim("No earlier versions."))
	}
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(StyleHeader.Render(fmt.Sprintf("v%d", e.Version)))
		b.WriteString("  ")
		b.WriteString(Dim(Timestamp(e.CreatedAt) + " · " + Size(e.DocumentSize)))
		b.WriteString("\n")
		b.WriteString(FormatChanges(e.Changes))
	}
	b.WriteString("\n\n")
	b.WriteString(StyleGreen.Render(fmt.Sprintf("v%d current", p.Version)))
	b.WriteString("  ")
	b.WriteString(Dim(Timestamp(p.UpdatedAt)))
	return RenderBox("History · "+p.ClientName, b.String())
}

// FormatChanges renders change descriptions as a bullet list.
func FormatChanges(changes []string) string {
	if len(changes) == 0 {
		return Dim("  no recorded changes")
	}
	lines := make([]string, len(changes))
	for i, c := range changes {
		lines[i] = "  • " + c
	}
	return strings.Join(lines, "\n")
}

// FormatUsage renders storage accounting and the per-use-case counters.
func FormatUsage(u domain.StorageUsage, counts []metrics.UseCaseCount) string {
	var b strings.Builder
	b.WriteString(field("Proposals", strconv.Itoa(u.Proposals)))
	b.WriteString("\n")
	b.WriteString(field("Versions", strconv.Itoa(u.Versions)))
	b.WriteString("\n")
	b.WriteString(field("Current", Size(u.CurrentBytes)))
	b.WriteString("\n")
	b.WriteString(field("History", Size(u.HistoryBytes)))

	if len(counts) > 0 {
		rows := make([][]string, 0, len(counts))
		for _, c := range counts {
			status := StyleGreen.Render(c.Status)
			if c.Status != "success" {
				status = StyleRed.Render(c.Status)
			}
			rows = append(rows, []string{c.UseCase, status, strconv.FormatFloat(c.Count, 'f', -1, 64)})
		}
		b.WriteString("\n\n")
		b.WriteString(RenderTable([]string{"USE CASE", "STATUS", "CALLS"}, rows, AlignRight(2)))
	}
	return RenderBox("Storage", b.String())
}

func field(label, value string) string {
	return Dim(fmt.Sprintf("%-9s", label)) + " " + value
}

// specSummary lists specification keys in stable order as key=value.
func specSummary(s domain.Specifications) string {
	if len(s) == 0 {
		return "--"
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := s.String(k)
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, " ")
}
