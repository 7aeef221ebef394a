package importer

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/proposals/internal/domain"
)

// ToDomain validates f and converts it into save input. The document bytes
// are not read here; see DocumentPath. A missing total_annual is twelve
// times total_monthly.
func (f *ProposalFile) ToDomain() (*domain.SavedProposal, error) {
	if errs := ValidateProposalFile(f); len(errs) > 0 {
		return nil, fmt.Errorf("invalid proposal file: %w", errors.Join(errs...))
	}

	var generatedAt time.Time
	if f.Snapshot.GeneratedAt != "" {
		t, err := time.Parse(time.RFC3339, f.Snapshot.GeneratedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing generated_at: %w", err)
		}
		generatedAt = t.UTC()
	}

	annual := f.Snapshot.TotalMonthly * 12
	if f.Snapshot.TotalAnnual != nil {
		annual = *f.Snapshot.TotalAnnual
	}

	lines := make([]domain.EquipmentLine, 0, len(f.Snapshot.EquipmentLines))
	for _, l := range f.Snapshot.EquipmentLines {
		lines = append(lines, domain.EquipmentLine{
			ID:             l.ID,
			Model:          l.Model,
			Brand:          l.Brand,
			Category:       l.Category,
			MonthlyVolume:  l.MonthlyVolume,
			MonthlyCost:    l.MonthlyCost,
			Specifications: domain.Specifications(l.Specifications),
		})
	}

	kind := domain.ProposalKind(f.Kind)
	if kind == "" {
		kind = domain.KindGeneric
	}

	return &domain.SavedProposal{
		ID:      f.ID,
		Kind:    kind,
		Version: f.ExpectedVersion,
		Client: domain.ClientInfo{
			CompanyName:  f.Client.CompanyName,
			ContactName:  f.Client.ContactName,
			Email:        f.Client.Email,
			Phone:        f.Client.Phone,
			ProjectName:  f.Client.ProjectName,
			ManagerName:  f.Client.ManagerName,
			ManagerEmail: f.Client.ManagerEmail,
			ManagerPhone: f.Client.ManagerPhone,
		},
		Snapshot: domain.ProposalSnapshot{
			EquipmentLines:       lines,
			TotalMonthly:         f.Snapshot.TotalMonthly,
			TotalAnnual:          annual,
			ContractPeriodMonths: f.Snapshot.ContractPeriodMonths,
			GeneratedAt:          generatedAt,
		},
	}, nil
}

// FromDomain renders a stored proposal in file form, for editing and
// re-saving. The document is not embedded.
func FromDomain(p *domain.SavedProposal) *ProposalFile {
	annual := p.Snapshot.TotalAnnual
	f := &ProposalFile{
		ID:              p.ID,
		ExpectedVersion: p.Version,
		Kind:            string(p.Kind),
		Client: ClientFile{
			CompanyName:  p.Client.CompanyName,
			ContactName:  p.Client.ContactName,
			Email:        p.Client.Email,
			Phone:        p.Client.Phone,
			ProjectName:  p.Client.ProjectName,
			ManagerName:  p.Client.ManagerName,
			ManagerEmail: p.Client.ManagerEmail,
			ManagerPhone: p.Client.ManagerPhone,
		},
		Snapshot: SnapshotFile{
			EquipmentLines:       make([]LineFile, 0, len(p.Snapshot.EquipmentLines)),
			TotalMonthly:         p.Snapshot.TotalMonthly,
			TotalAnnual:          &annual,
			ContractPeriodMonths: p.Snapshot.ContractPeriodMonths,
		},
	}
	if !p.Snapshot.GeneratedAt.IsZero() {
		f.Snapshot.GeneratedAt = p.Snapshot.GeneratedAt.UTC().Format(time.RFC3339)
	}
	for _, l := range p.Snapshot.EquipmentLines {
		f.Snapshot.EquipmentLines = append(f.Snapshot.EquipmentLines, LineFile{
			ID:             l.ID,
			Model:          l.Model,
			Brand:          l.Brand,
			Category:       l.Category,
			MonthlyVolume:  l.MonthlyVolume,
			MonthlyCost:    l.MonthlyCost,
			Specifications: l.Specifications,
		})
	}
	return f
}
