package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/proposals/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
kind: pabx_sip
client:
  company_name: Acme Telecom
  contact_name: Maria Souza
  project_name: Telephony refresh
snapshot:
  contract_period_months: 36
  total_monthly: 500
  generated_at: "2025-03-14T09:30:00Z"
  equipment_lines:
    - id: eq-1
      brand: Acme
      model: X200
      monthly_volume: 1000
      monthly_cost: 500
      specifications:
        channels: 30
        codecs: [g711, g729]
        sla: {tier: gold}
document: proposal.pdf
`

const sampleJSON = `{
  "id": "abc",
  "expected_version": 2,
  "kind": "vm",
  "client": {"company_name": "Globex"},
  "snapshot": {
    "contract_period_months": 12,
    "total_monthly": 90.5,
    "total_annual": 1000,
    "equipment_lines": [{"id": "vm-1", "monthly_volume": 4, "monthly_cost": 90.5}]
  }
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProposalFile_YAML(t *testing.T) {
	path := writeFile(t, "proposal.yaml", sampleYAML)

	f, err := LoadProposalFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "proposal.pdf"), f.DocumentPath())

	p, err := f.ToDomain()
	require.NoError(t, err)
	assert.Empty(t, p.ID)
	assert.Equal(t, domain.KindPABXSIP, p.Kind)
	assert.Equal(t, "Acme Telecom", p.Client.CompanyName)
	assert.Equal(t, 36, p.Snapshot.ContractPeriodMonths)
	assert.Equal(t, 500.0, p.Snapshot.TotalMonthly)
	assert.Equal(t, 6000.0, p.Snapshot.TotalAnnual, "annual defaults to twelve months")
	assert.True(t, p.Snapshot.GeneratedAt.Equal(time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)))
	require.Len(t, p.Snapshot.EquipmentLines, 1)

	line := p.Snapshot.EquipmentLines[0]
	assert.Equal(t, "eq-1 (Acme X200)", line.Label())
	n, ok := line.Specifications.Number("channels")
	assert.True(t, ok)
	assert.Equal(t, 30.0, n)
	assert.Contains(t, line.Specifications, "codecs")
	assert.Contains(t, line.Specifications, "sla")
	require.NoError(t, domain.Validate(p))
}

func TestLoadProposalFile_JSON(t *testing.T) {
	f, err := LoadProposalFile(writeFile(t, "proposal.json", sampleJSON))
	require.NoError(t, err)
	assert.Empty(t, f.DocumentPath())

	p, err := f.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, "abc", p.ID)
	assert.Equal(t, 2, p.Version)
	assert.Equal(t, domain.KindVM, p.Kind)
	assert.Equal(t, 1000.0, p.Snapshot.TotalAnnual)
	assert.True(t, p.Snapshot.GeneratedAt.IsZero())
}

func TestLoadProposalFile_MissingFile(t *testing.T) {
	_, err := LoadProposalFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseProposalFile_Malformed(t *testing.T) {
	tests := map[string]string{
		"empty":       "",
		"unknown key": "client: {company_name: A}\nsnapshot: {contract_period_months: 1}\ncolour: red\n",
		"bad type":    "snapshot: {contract_period_months: twelve}\n",
		"not yaml":    "{{{",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseProposalFile([]byte(content))
			assert.Error(t, err)
		})
	}
}

func TestValidateProposalFile(t *testing.T) {
	neg := -1.0
	tests := []struct {
		name   string
		mutate func(f *ProposalFile)
		want   string
	}{
		{"bad kind", func(f *ProposalFile) { f.Kind = "fax" }, "kind"},
		{"no client", func(f *ProposalFile) { f.Client = ClientFile{} }, "company_name or contact_name"},
		{"zero period", func(f *ProposalFile) { f.Snapshot.ContractPeriodMonths = 0 }, "contract_period_months"},
		{"negative monthly", func(f *ProposalFile) { f.Snapshot.TotalMonthly = -5 }, "total_monthly"},
		{"negative annual", func(f *ProposalFile) { f.Snapshot.TotalAnnual = &neg }, "total_annual"},
		{"bad timestamp", func(f *ProposalFile) { f.Snapshot.GeneratedAt = "yesterday" }, "generated_at"},
		{"blank line id", func(f *ProposalFile) { f.Snapshot.EquipmentLines[0].ID = "" }, "id is required"},
		{"duplicate line", func(f *ProposalFile) {
			f.Snapshot.EquipmentLines = append(f.Snapshot.EquipmentLines, f.Snapshot.EquipmentLines[0])
		}, "duplicate id"},
		{"negative cost", func(f *ProposalFile) { f.Snapshot.EquipmentLines[0].MonthlyCost = -1 }, "monthly_cost"},
		{"version without id", func(f *ProposalFile) { f.ExpectedVersion = 3 }, "requires id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseProposalFile([]byte(sampleYAML))
			require.NoError(t, err)
			tt.mutate(f)

			errs := ValidateProposalFile(f)
			require.NotEmpty(t, errs)
			assert.Contains(t, errs[0].Error(), tt.want)

			_, err = f.ToDomain()
			assert.Error(t, err)
		})
	}
}

func TestFromDomain_RoundTrip(t *testing.T) {
	f, err := ParseProposalFile([]byte(sampleJSON))
	require.NoError(t, err)
	p, err := f.ToDomain()
	require.NoError(t, err)
	p.Snapshot.GeneratedAt = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	out, err := FromDomain(p).Marshal()
	require.NoError(t, err)

	back, err := ParseProposalFile(out)
	require.NoError(t, err)
	q, err := back.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, p.ID, q.ID)
	assert.Equal(t, p.Version, q.Version)
	assert.Equal(t, p.Kind, q.Kind)
	assert.Equal(t, p.Client, q.Client)
	assert.Equal(t, p.Snapshot.TotalAnnual, q.Snapshot.TotalAnnual)
	assert.True(t, p.Snapshot.GeneratedAt.Equal(q.Snapshot.GeneratedAt))
	assert.Equal(t, p.Snapshot.EquipmentLines[0].MonthlyCost, q.Snapshot.EquipmentLines[0].MonthlyCost)
}
