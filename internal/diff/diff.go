// Package diff compares two proposal snapshots and describes what changed in
// plain sentences suitable for a version history.
package diff

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/proposals/internal/domain"
)

// Compare returns the ordered list of differences between before and after.
// Totals and contract period come first, then the line count, then lines
// added (after order), removed (before order) and modified (after order). Lines are
// matched by id, so reordering unchanged lines produces no output, and the
// specifications bag is never inspected. Identical snapshots yield an empty,
// non-nil slice.
func Compare(before, after domain.ProposalSnapshot) []string {
	changes := []string{}

	if before.TotalMonthly != after.TotalMonthly {
		changes = append(changes, fmt.Sprintf("Monthly total changed from %s to %s",
			num(before.TotalMonthly), num(after.TotalMonthly)))
	}
	if before.TotalAnnual != after.TotalAnnual {
		changes = append(changes, fmt.Sprintf("Annual total changed from %s to %s",
			num(before.TotalAnnual), num(after.TotalAnnual)))
	}
	if before.ContractPeriodMonths != after.ContractPeriodMonths {
		changes = append(changes, fmt.Sprintf("Contract period changed from %d to %d months",
			before.ContractPeriodMonths, after.ContractPeriodMonths))
	}

	if len(before.EquipmentLines) != len(after.EquipmentLines) {
		changes = append(changes, fmt.Sprintf("Line item count changed from %d to %d",
			len(before.EquipmentLines), len(after.EquipmentLines)))
	}

	beforeByID := before.LineByID()
	afterByID := after.LineByID()

	added := make(map[string]bool, len(after.EquipmentLines))
	for _, l := range after.EquipmentLines {
		if _, ok := beforeByID[l.ID]; !ok && !added[l.ID] {
			added[l.ID] = true
			changes = append(changes, fmt.Sprintf("Line item added: %s", l.Label()))
		}
	}
	removed := make(map[string]bool, len(before.EquipmentLines))
	for _, l := range before.EquipmentLines {
		if _, ok := afterByID[l.ID]; !ok && !removed[l.ID] {
			removed[l.ID] = true
			changes = append(changes, fmt.Sprintf("Line item removed: %s", l.Label()))
		}
	}

	seen := make(map[string]bool, len(after.EquipmentLines))
	for _, l := range after.EquipmentLines {
		prev, ok := beforeByID[l.ID]
		if !ok || seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		if prev.MonthlyVolume != l.MonthlyVolume {
			changes = append(changes, fmt.Sprintf("Line item %s: monthly volume changed from %s to %s",
				l.Label(), num(prev.MonthlyVolume), num(l.MonthlyVolume)))
		}
		if prev.MonthlyCost != l.MonthlyCost {
			changes = append(changes, fmt.Sprintf("Line item %s: monthly cost changed from %s to %s",
				l.Label(), num(prev.MonthlyCost), num(l.MonthlyCost)))
		}
	}

	return changes
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
