package constants

// DocumentStatus is the canonical per-document review status.
type DocumentStatus string

// Stable values (these exact strings appear in persisted results and reports).
const (
	StatusValid      DocumentStatus = "정상"
	StatusMissing    DocumentStatus = "미제출"
	StatusIncomplete DocumentStatus = "보완필요"
	StatusInvalid    DocumentStatus = "무효"
)

// ApplicantKind classifies the selling party.
type ApplicantKind string

const (
	ApplicantIndividual  ApplicantKind = "개인"
	ApplicantCorporation ApplicantKind = "법인"
)

// AgentKind classifies who is filing on the owner's behalf, if anyone.
type AgentKind string

const (
	AgentNone       AgentKind = "없음"
	AgentIndividual AgentKind = "개인대리인"
	AgentRealtor    AgentKind = "공인중개사"
)
