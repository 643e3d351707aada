// Package rules evaluates the ordered review rule set over a merged case
// result. Each rule either stays silent, passes, or records a supplementary
// finding; a finding is marked for manual check when the deciding signal was
// missing rather than non-compliant.
package rules

import (
	"fmt"
	"log/slog"

	"github.com/hyunsoo-an/purchase-review/internal/common"
	"github.com/hyunsoo-an/purchase-review/internal/entity"
	"github.com/hyunsoo-an/purchase-review/internal/normalize"
	"github.com/hyunsoo-an/purchase-review/internal/policy"
)

// Engine runs the numbered rules in order. An Engine is immutable after New
// and safe for concurrent use; per-case state lives in evaluation.
type Engine struct {
	policy *policy.Policy
	logger *slog.Logger
}

func New(p *policy.Policy, logger *slog.Logger) (*Engine, error) {
	if p == nil {
		return nil, common.NewAppError("RULES_NO_POLICY", "policy is required", common.ErrInvalidInput)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{policy: p, logger: logger}, nil
}

// gates are the applicability facts computed once before any rule runs.
type gates struct {
	corporation  bool
	agent        bool
	realtor      bool
	trust        bool
	announcement normalize.Date
	hasAnnounce  bool
}

// evaluation is the per-case working state.
type evaluation struct {
	engine   *Engine
	result   *entity.ReviewResult
	gates    gates
	findings []entity.SupplementaryDocument
}

// Evaluate runs every active rule against the result and attaches the
// findings. The result's supplementary list is replaced, not appended.
func (e *Engine) Evaluate(r *entity.ReviewResult) error {
	if r == nil {
		return common.NewAppError("RULES_NO_RESULT", "result is required", common.ErrInvalidInput)
	}

	announce, hasAnnounce := e.policy.ParsedAnnouncementDate()
	ev := &evaluation{
		engine: e,
		result: r,
		gates: gates{
			corporation:  r.Corporate.IsCorporation,
			agent:        r.SaleApplication.Agent.Exists,
			realtor:      r.Realtor.IsRealtorAgent,
			trust:        r.Trust.TrustRequired,
			announcement: announce,
			hasAnnounce:  hasAnnounce,
		},
	}

	for _, step := range ruleOrder {
		if !e.policy.RuleActive(step.id) {
			continue
		}
		step.run(ev)
	}

	r.Supplementary = ev.findings
	r.RecountDocuments()

	e.logger.Info("rules.evaluated",
		"case_id", r.CaseID.String(),
		"findings", len(ev.findings),
		"corporation", ev.gates.corporation)
	return nil
}

// add records a finding. Reasons are joined with "; " by callers that have
// several per document.
func (ev *evaluation) add(ruleID int, documentName, reason string, manual bool) {
	ev.findings = append(ev.findings, entity.SupplementaryDocument{
		RuleID:       ruleID,
		DocumentName: documentName,
		Reason:       reason,
		ManualCheck:  manual,
	})
	ev.engine.logger.Debug("rule.failed",
		"rule", ruleID, "document", documentName, "manual", manual)
}

// afterAnnouncement reports how a document date relates to the announcement
// date: verdict false with ok true means provably before.
func (ev *evaluation) afterAnnouncement(dateStr string) (verdict, ok bool) {
	if !ev.gates.hasAnnounce {
		return true, false
	}
	d, parsed := normalize.ParseDate(dateStr)
	if !parsed {
		return true, false
	}
	return !d.Before(ev.gates.announcement), true
}

func (ev *evaluation) announcementLabel() string {
	if !ev.gates.hasAnnounce {
		return "공고일"
	}
	return ev.gates.announcement.String()
}

// ruleStep ties a rule number to its implementation; ruleOrder fixes the
// evaluation sequence.
type ruleStep struct {
	id  int
	run func(*evaluation)
}

var ruleOrder = []ruleStep{
	{1, rule01ApplicationExists},
	{2, rule02WrittenDateAfterAnnouncement},
	{3, rule03OwnerInfoComplete},
	{4, rule04SealVerification},
	{5, rule05AgentIDCard},
	{6, rule06LandAreaAgreement},
	{7, rule07ApprovalDateAgreement},
	{8, rule08UnitAreaAgreement},
	{9, rule09PowerOfAttorneyExists},
	{10, rule10PowerOfAttorneyContent},
	{11, rule11PowerOfAttorneyParties},
	{12, rule12OwnerSealCertificate},
	{13, rule13OwnerIDSubmitted},
	{14, rule14CoOwnerIDsSubmitted},
	{15, rule15CorporateDocuments},
	{16, rule16ConsentForm},
	{17, rule17ContractLimitConsent},
	{18, rule18RealtorDocuments},
	{19, rule19IntegrityPledge},
	{20, rule20EmployeeConfirmation},
	{21, rule21BuildingLedger},
	{22, rule22ExclusiveAreaBand},
	{23, rule23BuildingLayoutPlan},
	{24, rule24LandLedger},
	{25, rule25LandUsePlan},
	{26, rule26LandRegistry},
	{27, rule27BuildingRegistry},
	{28, rule28TrustDocuments},
	{29, rule29AsBuiltMaterials},
	{30, rule30TestCertificates},
	{31, rule31WorkerLivingFacility},
	{32, rule32ExclusiveAreaExtremes},
	{33, rule33PrivateRentalNotation},
	{34, rule34LandCategory},
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}
