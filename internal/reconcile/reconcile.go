// Package reconcile cross-checks facts that appear on more than one document.
// A mismatch is only ever asserted when both sides produced a usable value;
// absence of data leaves the match flags untouched.
package reconcile

import (
	"log/slog"

	"github.com/hyunsoo-an/purchase-review/internal/entity"
	"github.com/hyunsoo-an/purchase-review/internal/normalize"
)

// Reconciler runs the cross-document checks over a merged case result.
type Reconciler struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{logger: logger}
}

// Run applies every cross-document check in place.
func (rc *Reconciler) Run(r *entity.ReviewResult) {
	rc.reconcileLandArea(r)
	rc.reconcilePowerOfAttorneyArea(r)
	rc.reconcileApprovalDate(r)
	rc.reconcileUnitAreas(r)
}

// reconcileLandArea compares the parcel area across the sale application, the
// land ledger, and the land-use plan. With at least two values the flags on
// every contributing record are set; all must agree within 0.1㎡.
func (rc *Reconciler) reconcileLandArea(r *entity.ReviewResult) {
	type source struct {
		area *float64
		flag **bool
	}
	sources := []source{
		{r.SaleApplication.LandArea, &r.SaleApplication.LandAreaMatch},
		{r.LandLedger.LandArea, &r.LandLedger.LandAreaMatch},
		{r.LandUsePlan.LandArea, &r.LandUsePlan.LandAreaMatch},
	}

	var present []source
	for _, s := range sources {
		if s.area != nil {
			present = append(present, s)
		}
	}
	if len(present) < 2 {
		return
	}

	match := true
	first := *present[0].area
	for _, s := range present[1:] {
		if !normalize.AreasMatch(first, *s.area) {
			match = false
			break
		}
	}

	for _, s := range present {
		v := match
		*s.flag = &v
	}

	if !match {
		rc.logger.Info("reconcile.land_area_mismatch",
			"sale_application", deref(r.SaleApplication.LandArea),
			"land_ledger", deref(r.LandLedger.LandArea),
			"land_use_plan", deref(r.LandUsePlan.LandArea))
	}
}

// reconcilePowerOfAttorneyArea compares the parcel area the power of attorney
// states against the sale application.
func (rc *Reconciler) reconcilePowerOfAttorneyArea(r *entity.ReviewResult) {
	poa := &r.PowerOfAttorney
	app := r.SaleApplication
	if poa.LandArea == nil || app.LandArea == nil {
		return
	}

	match := normalize.AreasMatch(*poa.LandArea, *app.LandArea)
	poa.LandAreaMatch = &match

	if !match {
		rc.logger.Info("reconcile.poa_land_area_mismatch",
			"power_of_attorney", *poa.LandArea,
			"sale_application", *app.LandArea)
	}
}

// reconcileApprovalDate compares the approval date stated on the sale
// application against the building ledger title section. Same day or same
// year and month counts as agreement.
func (rc *Reconciler) reconcileApprovalDate(r *entity.ReviewResult) {
	appDate, appOK := normalize.ParseDate(r.SaleApplication.ApprovalDate)
	ledgerDate, ledgerOK := normalize.ParseDate(r.BuildingLedgerTitle.ApprovalDate)
	if !appOK || !ledgerOK {
		return
	}

	match := appDate.Equal(ledgerDate) || appDate.SameMonth(ledgerDate)
	r.SaleApplication.ApprovalDateMatch = &match

	if !match {
		rc.logger.Info("reconcile.approval_date_mismatch",
			"sale_application", appDate.String(),
			"building_ledger", ledgerDate.String())
	}
}

// reconcileUnitAreas matches rental-status rows to the exclusive-portion
// ledger rows by unit number. Units without a counterpart are skipped.
func (rc *Reconciler) reconcileUnitAreas(r *entity.ReviewResult) {
	if len(r.RentalStatus.Units) == 0 || len(r.BuildingLedgerExclusive.Units) == 0 {
		return
	}

	ledger := make(map[string]float64, len(r.BuildingLedgerExclusive.Units))
	for _, u := range r.BuildingLedgerExclusive.Units {
		ledger[normalize.CanonicalKey(u.UnitNumber)] = u.ExclusiveArea
	}

	var mismatched []string
	for i := range r.RentalStatus.Units {
		unit := &r.RentalStatus.Units[i]
		if unit.ExclusiveArea == nil {
			continue
		}
		ledgerArea, found := ledger[normalize.CanonicalKey(unit.UnitNumber)]
		if !found {
			continue
		}
		match := normalize.AreasMatch(*unit.ExclusiveArea, ledgerArea)
		unit.AreaMatch = &match
		if !match {
			mismatched = append(mismatched, unit.UnitNumber)
		}
	}

	if len(mismatched) > 0 {
		r.RentalStatus.MismatchedUnits = mismatched
		rc.logger.Info("reconcile.unit_area_mismatch", "units", mismatched)
	}
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
