// Package aggregate folds per-file extraction payloads into the single
// in-progress review result for a case. Merging is fill-only: a later file
// never overwrites a useful value an earlier file already supplied, with the
// one exception of the sale application, where the record with the most owner
// identity fields wins.
package aggregate

import (
	"log/slog"

	"github.com/hyunsoo-an/purchase-review/constants"
	"github.com/hyunsoo-an/purchase-review/internal/entity"
)

// Observation is one classified file ready to merge.
type Observation struct {
	Category   constants.Category
	Confidence float64
	FileName   string
	Text       string
	Payload    map[string]any
}

// Aggregator accumulates observations for one case. Not safe for concurrent
// use; each case gets its own instance.
type Aggregator struct {
	logger      *slog.Logger
	result      *entity.ReviewResult
	confidences map[constants.Category]float64

	saleCandidates []entity.SaleApplication
}

func New(result *entity.ReviewResult, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		logger:      logger,
		result:      result,
		confidences: make(map[constants.Category]float64),
	}
}

// Confidence returns the highest classification confidence seen per category.
func (a *Aggregator) Confidence(cat constants.Category) float64 {
	return a.confidences[cat]
}

// Apply merges one observation. Unknown payload keys are ignored; wrong-typed
// values are coerced when possible and skipped otherwise.
func (a *Aggregator) Apply(obs Observation) {
	if obs.Category == constants.Unclassified {
		return
	}
	if obs.Confidence > a.confidences[obs.Category] {
		a.confidences[obs.Category] = obs.Confidence
	}

	m := obs.Payload
	if m == nil {
		m = map[string]any{}
	}

	r := a.result
	switch obs.Category {
	case constants.SaleApplication:
		a.saleCandidates = append(a.saleCandidates, decodeSaleApplication(m))
	case constants.RentalStatus:
		a.applyRentalStatus(m)
	case constants.PowerOfAttorney:
		a.applyPowerOfAttorney(m)
	case constants.ConsentForm:
		a.applyConsentForm(m)
	case constants.IntegrityPledge:
		a.applyIntegrityPledge(m)
	case constants.EmployeeConfirmation:
		a.applyEmployeeConfirmation(m)
	case constants.SealCertificate:
		a.applySealCertificate(m)
	case constants.IDCard:
		a.applyIDCard(m)
	case constants.AgentIDCard:
		a.applyAgentIDCard(m)
	case constants.BuildingLedgerSummary:
		applyBase(&r.BuildingLedgerSummary.DocumentBase, m)
		r.BuildingLedgerSummary.Required = true
		if n, ok := integer(m, "building_count"); ok && r.BuildingLedgerSummary.BuildingCount == 0 {
			r.BuildingLedgerSummary.BuildingCount = n
		}
	case constants.BuildingLedgerTitle:
		a.applyBuildingLedgerTitle(m)
	case constants.BuildingLedgerExclusive:
		a.applyBuildingLedgerExclusive(m)
	case constants.BuildingLayoutPlan:
		a.applyBuildingLayoutPlan(m)
	case constants.LandLedger:
		a.applyLandLedger(m)
	case constants.LandUsePlan:
		a.applyLandUsePlan(m)
	case constants.LandRegistry:
		a.applyLandRegistry(m)
	case constants.BuildingRegistry:
		a.applyBuildingRegistry(m)
	case constants.AsBuiltDrawing:
		a.applyAsBuiltDrawing(m)
	case constants.TestCertificate:
		a.applyTestCertificate(m, obs.Text)
	case constants.DeliveryConfirmation:
		a.applyDeliveryConfirmation(m)
	case constants.RealtorRegistration:
		applyBase(&r.Realtor.OfficeRegistration, m)
		r.Realtor.IsRealtorAgent = true
		setBool(&r.Realtor.SealMatchWithApplication, m, "seal_match_with_application")
	case constants.BusinessRegistration:
		a.applyBusinessRegistration(m)
	default:
		a.logger.Warn("aggregate.unhandled_category", "category", string(obs.Category), "file", obs.FileName)
		return
	}

	a.logger.Debug("aggregate.merged", "category", string(obs.Category), "file", obs.FileName)
}

// Finalize resolves the sale-application candidates and returns the result.
// Among multiple sale-application files the one with the most owner identity
// fields becomes the base; the rest fill its gaps.
func (a *Aggregator) Finalize() *entity.ReviewResult {
	if len(a.saleCandidates) > 0 {
		best := 0
		for i, c := range a.saleCandidates {
			if c.Owner.FilledFieldCount() > a.saleCandidates[best].Owner.FilledFieldCount() {
				best = i
			}
		}
		merged := a.saleCandidates[best]
		for i, c := range a.saleCandidates {
			if i == best {
				continue
			}
			fillSaleApplication(&merged, c)
		}

		// Fill into the live record rather than replacing it: other documents
		// latch facts onto it during Apply (agent ID card, power of attorney,
		// seal certificate) and the winning candidate must not erase them.
		app := &a.result.SaleApplication
		fillSaleApplication(app, merged)
		app.Exists = true
		if app.Status == "" || app.Status == constants.StatusMissing {
			app.Status = constants.StatusValid
		}
		app.Owner.IsComplete = app.Owner.FilledFieldCount() >= 3
	}
	return a.result
}

// applyBase latches existence and fills the shared fields. Status starts
// valid; the reconcile and rule passes downgrade it later.
func applyBase(b *entity.DocumentBase, m map[string]any) {
	b.Exists = true
	if b.Status == "" || b.Status == constants.StatusMissing {
		b.Status = constants.StatusValid
	}
	if b.IssueDate == "" {
		if d, ok := date(m, "issue_date"); ok {
			b.IssueDate = d
		}
	}
	b.Issues = appendUnique(b.Issues, stringList(m, "issues")...)
}

func fillStr(dst *string, m map[string]any, key string) {
	if *dst != "" {
		return
	}
	if s, ok := str(m, key); ok {
		*dst = s
	}
}

func fillDate(dst *string, m map[string]any, key string) {
	if *dst != "" {
		return
	}
	if d, ok := date(m, key); ok {
		*dst = d
	}
}

// setBool applies an explicitly present boolean. Presence-style fields
// default to compliant, so only an extracted value may flip them.
func setBool(dst *bool, m map[string]any, key string) {
	if v, ok := boolean(m, key); ok {
		*dst = v
	}
}

func setTri(dst **bool, m map[string]any, key string) {
	if *dst != nil {
		return
	}
	if v, ok := boolean(m, key); ok {
		*dst = &v
	}
}

func setFloat(dst **float64, m map[string]any, key string) {
	if *dst != nil {
		return
	}
	if v, ok := number(m, key); ok {
		*dst = &v
	}
}

func setInt(dst **int, m map[string]any, key string) {
	if *dst != nil {
		return
	}
	if v, ok := integer(m, key); ok {
		*dst = &v
	}
}

func appendUnique(existing []string, items ...string) []string {
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s] = true
	}
	for _, s := range items {
		if !seen[s] {
			existing = append(existing, s)
			seen[s] = true
		}
	}
	return existing
}
