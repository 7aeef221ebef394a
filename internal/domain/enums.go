package domain

// ProposalKind names the service line a proposal was priced with.
type ProposalKind string

const (
	KindPABXSIP     ProposalKind = "pabx_sip"
	KindVM          ProposalKind = "vm"
	KindServiceDesk ProposalKind = "service_desk"
	KindGeneric     ProposalKind = "generic"
)

// ValidProposalKinds is the canonical set of accepted kind strings.
var ValidProposalKinds = map[string]bool{
	"pabx_sip": true, "vm": true, "service_desk": true, "generic": true,
}
