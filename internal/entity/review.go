package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/hyunsoo-an/purchase-review/constants"
)

// SupplementaryDocument is one finding in the final report. ManualCheck marks
// findings where the deciding signal was absent rather than non-compliant.
type SupplementaryDocument struct {
	RuleID       int    `json:"rule_id"`
	DocumentName string `json:"document_name"`
	Reason       string `json:"reason"`
	ManualCheck  bool   `json:"manual_check"`
}

// DisplayReason renders the reason with the manual-check marker appended.
func (s SupplementaryDocument) DisplayReason() string {
	if s.ManualCheck {
		return s.Reason + " [수동확인필요]"
	}
	return s.Reason
}

// DocumentDateInfo is one row of the per-document issue/written date summary.
type DocumentDateInfo struct {
	DocumentName string `json:"document_name"`
	DateKind     string `json:"date_kind"`
	Date         string `json:"date"`
	Valid        bool   `json:"valid"`
}

// ReviewResult is the full outcome of reviewing one case for data transfer
// between layers.
type ReviewResult struct {
	CaseID        uuid.UUID               `json:"case_id"`
	ApplicantKind constants.ApplicantKind `json:"applicant_kind"`
	ApplicantName string                  `json:"applicant_name,omitempty"`
	ReviewedAt    time.Time               `json:"reviewed_at"`

	SaleApplication         SaleApplication         `json:"sale_application"`
	RentalStatus            RentalStatus            `json:"rental_status"`
	PowerOfAttorney         PowerOfAttorney         `json:"power_of_attorney"`
	OwnerIdentity           OwnerIdentity           `json:"owner_identity"`
	Corporate               CorporateDocuments      `json:"corporate"`
	ConsentForm             ConsentForm             `json:"consent_form"`
	IntegrityPledge         IntegrityPledge         `json:"integrity_pledge"`
	EmployeeConfirmation    EmployeeConfirmation    `json:"employee_confirmation"`
	Realtor                 RealtorDocuments        `json:"realtor"`
	BuildingLedgerSummary   BuildingLedgerSummary   `json:"building_ledger_summary"`
	BuildingLedgerTitle     BuildingLedgerTitle     `json:"building_ledger_title"`
	BuildingLedgerExclusive BuildingLedgerExclusive `json:"building_ledger_exclusive"`
	BuildingLayoutPlan      BuildingLayoutPlan      `json:"building_layout_plan"`
	LandLedger              LandLedger              `json:"land_ledger"`
	LandUsePlan             LandUsePlan             `json:"land_use_plan"`
	LandRegistry            LandRegistry            `json:"land_registry"`
	BuildingRegistry        BuildingRegistry        `json:"building_registry"`
	Trust                   TrustDocuments          `json:"trust"`
	AsBuiltDrawing          AsBuiltDrawing          `json:"as_built_drawing"`
	TestCertificate         TestCertificateDelivery `json:"test_certificate"`

	Supplementary []SupplementaryDocument `json:"supplementary,omitempty"`
	DocumentDates []DocumentDateInfo      `json:"document_dates,omitempty"`

	TotalDocuments int `json:"total_documents"`
	ValidDocuments int `json:"valid_documents"`

	UnclassifiedFiles []string `json:"unclassified_files,omitempty"`
}

// NewReviewResult returns a result with every document marked missing and the
// presence-style sub-fields set compliant. Extraction only flips those fields
// when a defect was explicitly observed, so absence of evidence stays neutral.
func NewReviewResult(caseID uuid.UUID) *ReviewResult {
	missing := DocumentBase{Status: constants.StatusMissing}

	r := &ReviewResult{
		CaseID:        caseID,
		ApplicantKind: constants.ApplicantIndividual,
		ReviewedAt:    time.Now().UTC(),
	}

	r.SaleApplication.DocumentBase = missing
	r.SaleApplication.Agent.Kind = constants.AgentNone
	r.RentalStatus.DocumentBase = missing
	r.PowerOfAttorney.DocumentBase = missing
	r.OwnerIdentity.SealCertificate = missing
	r.Corporate.BusinessRegistration = missing
	r.Corporate.CorporateSealCertificate = missing
	r.Corporate.CorporateRegistry = missing
	r.Corporate.ContractLimitConsent = missing
	r.ConsentForm.DocumentBase = missing
	r.IntegrityPledge.DocumentBase = missing
	r.EmployeeConfirmation.DocumentBase = missing
	r.Realtor.OfficeRegistration = missing
	r.Realtor.BusinessRegistration = missing
	r.BuildingLedgerSummary.DocumentBase = missing
	r.BuildingLedgerTitle.DocumentBase = missing
	r.BuildingLedgerExclusive.DocumentBase = missing
	r.BuildingLayoutPlan.DocumentBase = missing
	r.LandLedger.DocumentBase = missing
	r.LandUsePlan.DocumentBase = missing
	r.LandRegistry.DocumentBase = missing
	r.BuildingRegistry.DocumentBase = missing
	r.Trust.TrustContract = missing
	r.Trust.SaleAuthorityConfirmation = missing
	r.AsBuiltDrawing.DocumentBase = missing
	r.TestCertificate.DocumentBase = missing

	r.ConsentForm.OwnerSigned = true
	r.ConsentForm.OwnerSealValid = true
	r.ConsentForm.OwnerDateValid = true
	r.ConsentForm.AgentSigned = true
	r.ConsentForm.AgentSealValid = true
	r.ConsentForm.AgentDateValid = true

	r.IntegrityPledge.OwnerSubmitted = true
	r.IntegrityPledge.OwnerSealValid = true
	r.IntegrityPledge.OwnerIDNumberValid = true
	r.IntegrityPledge.AgentSubmitted = true
	r.IntegrityPledge.AgentSealValid = true
	r.IntegrityPledge.RealtorSubmitted = true
	r.IntegrityPledge.RealtorSealValid = true
	r.IntegrityPledge.CorporationIDTypeCorrect = true

	r.EmployeeConfirmation.OwnerNameMatch = true
	r.EmployeeConfirmation.SealValid = true
	r.EmployeeConfirmation.DateValid = true

	r.PowerOfAttorney.Delegator.PersonalInfoComplete = true
	r.PowerOfAttorney.Delegator.SealValid = true
	r.PowerOfAttorney.Delegatee.PersonalInfoComplete = true
	r.PowerOfAttorney.Delegatee.SealValid = true

	r.OwnerIdentity.OwnerCount = 1
	r.BuildingLayoutPlan.IsGovernmentIssued = true
	r.Trust.AllPartiesSigned = true
	r.Trust.AllSealsValid = true
	r.Corporate.AllExecutivesSigned = true

	return r
}

// IsReviewComplete reports whether the case passed with nothing to supplement.
func (r *ReviewResult) IsReviewComplete() bool {
	return len(r.Supplementary) == 0
}

// RecountDocuments refreshes the submitted/valid counters from the per-document
// bases. Call after the reconciliation and rule passes settle statuses.
func (r *ReviewResult) RecountDocuments() {
	total, valid := 0, 0
	for _, b := range r.documentBases() {
		if !b.Exists {
			continue
		}
		total++
		if b.Status == constants.StatusValid {
			valid++
		}
	}
	r.TotalDocuments = total
	r.ValidDocuments = valid
}

func (r *ReviewResult) documentBases() []DocumentBase {
	return []DocumentBase{
		r.SaleApplication.DocumentBase,
		r.RentalStatus.DocumentBase,
		r.PowerOfAttorney.DocumentBase,
		r.OwnerIdentity.SealCertificate,
		r.Corporate.BusinessRegistration,
		r.Corporate.CorporateSealCertificate,
		r.Corporate.CorporateRegistry,
		r.Corporate.ContractLimitConsent,
		r.ConsentForm.DocumentBase,
		r.IntegrityPledge.DocumentBase,
		r.EmployeeConfirmation.DocumentBase,
		r.Realtor.OfficeRegistration,
		r.Realtor.BusinessRegistration,
		r.BuildingLedgerSummary.DocumentBase,
		r.BuildingLedgerTitle.DocumentBase,
		r.BuildingLedgerExclusive.DocumentBase,
		r.BuildingLayoutPlan.DocumentBase,
		r.LandLedger.DocumentBase,
		r.LandUsePlan.DocumentBase,
		r.LandRegistry.DocumentBase,
		r.BuildingRegistry.DocumentBase,
		r.Trust.TrustContract,
		r.Trust.SaleAuthorityConfirmation,
		r.AsBuiltDrawing.DocumentBase,
		r.TestCertificate.DocumentBase,
	}
}
