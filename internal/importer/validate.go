package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/proposals/internal/domain"
)

// ValidateProposalFile checks the file before conversion and returns every
// problem found.
func ValidateProposalFile(f *ProposalFile) []error {
	var errs []error

	if f.Kind != "" && !domain.ValidProposalKinds[f.Kind] {
		errs = append(errs, fmt.Errorf("kind: invalid value %q", f.Kind))
	}
	if f.ExpectedVersion < 0 {
		errs = append(errs, fmt.Errorf("expected_version must be >= 0"))
	}
	if f.ExpectedVersion > 0 && f.ID == "" {
		errs = append(errs, fmt.Errorf("expected_version requires id"))
	}
	if strings.TrimSpace(f.Client.CompanyName) == "" && strings.TrimSpace(f.Client.ContactName) == "" {
		errs = append(errs, fmt.Errorf("client: company_name or contact_name is required"))
	}

	s := f.Snapshot
	if s.ContractPeriodMonths < 1 {
		errs = append(errs, fmt.Errorf("snapshot.contract_period_months must be >= 1"))
	}
	if s.TotalMonthly < 0 {
		errs = append(errs, fmt.Errorf("snapshot.total_monthly must be >= 0"))
	}
	if s.TotalAnnual != nil && *s.TotalAnnual < 0 {
		errs = append(errs, fmt.Errorf("snapshot.total_annual must be >= 0"))
	}
	if s.GeneratedAt != "" {
		if _, err := time.Parse(time.RFC3339, s.GeneratedAt); err != nil {
			errs = append(errs, fmt.Errorf("snapshot.generated_at: invalid timestamp %q (expected RFC3339)", s.GeneratedAt))
		}
	}

	seen := make(map[string]bool, len(s.EquipmentLines))
	for i, l := range s.EquipmentLines {
		if l.ID == "" {
			errs = append(errs, fmt.Errorf("snapshot.equipment_lines[%d].id is required", i))
			continue
		}
		if seen[l.ID] {
			errs = append(errs, fmt.Errorf("snapshot.equipment_lines[%d]: duplicate id %q", i, l.ID))
		}
		seen[l.ID] = true
		if l.MonthlyVolume < 0 {
			errs = append(errs, fmt.Errorf("snapshot.equipment_lines[%d].monthly_volume must be >= 0", i))
		}
		if l.MonthlyCost < 0 {
			errs = append(errs, fmt.Errorf("snapshot.equipment_lines[%d].monthly_cost must be >= 0", i))
		}
	}

	return errs
}
