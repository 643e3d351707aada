package aggregate

import (
	"github.com/hyunsoo-an/purchase-review/constants"
	"github.com/hyunsoo-an/purchase-review/internal/entity"
)

func decodeSaleApplication(m map[string]any) entity.SaleApplication {
	var app entity.SaleApplication
	applyBase(&app.DocumentBase, m)

	fillDate(&app.WrittenDate, m, "written_date")
	setFloat(&app.LandArea, m, "land_area")
	fillDate(&app.ApprovalDate, m, "approval_date")

	owner := sub(m, "owner")
	if owner == nil {
		owner = m
	}
	fillStr(&app.Owner.Name, owner, "name")
	fillStr(&app.Owner.Name, owner, "owner_name")
	fillDate(&app.Owner.BirthDate, owner, "birth_date")
	fillStr(&app.Owner.Address, owner, "address")
	fillStr(&app.Owner.Phone, owner, "phone")
	fillStr(&app.Owner.Email, owner, "email")

	if seal := sub(m, "seal"); seal != nil {
		setBool(&app.Seal.SealExists, seal, "seal_exists")
		setBool(&app.Seal.CertificateExists, seal, "certificate_exists")
		setFloat(&app.Seal.MatchRate, seal, "match_rate")
	} else {
		setBool(&app.Seal.SealExists, m, "seal_exists")
		setFloat(&app.Seal.MatchRate, m, "seal_match_rate")
	}

	if agent := sub(m, "agent"); agent != nil {
		app.Agent.Exists = true
		fillStr(&app.Agent.Name, agent, "name")
		if kind, ok := str(agent, "kind"); ok {
			app.Agent.Kind = constants.AgentKind(kind)
		} else {
			app.Agent.Kind = constants.AgentIndividual
		}
	}

	return app
}

// fillSaleApplication copies c's values into dst wherever dst has none.
func fillSaleApplication(dst *entity.SaleApplication, c entity.SaleApplication) {
	if dst.WrittenDate == "" {
		dst.WrittenDate = c.WrittenDate
	}
	if dst.ApprovalDate == "" {
		dst.ApprovalDate = c.ApprovalDate
	}
	if dst.IssueDate == "" {
		dst.IssueDate = c.IssueDate
	}
	if dst.LandArea == nil {
		dst.LandArea = c.LandArea
	}
	if dst.Owner.Name == "" {
		dst.Owner.Name = c.Owner.Name
	}
	if dst.Owner.BirthDate == "" {
		dst.Owner.BirthDate = c.Owner.BirthDate
	}
	if dst.Owner.Address == "" {
		dst.Owner.Address = c.Owner.Address
	}
	if dst.Owner.Phone == "" {
		dst.Owner.Phone = c.Owner.Phone
	}
	if dst.Owner.Email == "" {
		dst.Owner.Email = c.Owner.Email
	}
	if !dst.Seal.SealExists {
		dst.Seal.SealExists = c.Seal.SealExists
	}
	if !dst.Seal.CertificateExists {
		dst.Seal.CertificateExists = c.Seal.CertificateExists
	}
	if dst.Seal.MatchRate == nil {
		dst.Seal.MatchRate = c.Seal.MatchRate
	}
	if !dst.Agent.Exists {
		dst.Agent = c.Agent
	} else if dst.Agent.Name == "" {
		dst.Agent.Name = c.Agent.Name
	}
	dst.Issues = appendUnique(dst.Issues, c.Issues...)
}

func (a *Aggregator) applyRentalStatus(m map[string]any) {
	rs := &a.result.RentalStatus
	applyBase(&rs.DocumentBase, m)

	seen := make(map[string]bool, len(rs.Units))
	for _, u := range rs.Units {
		seen[u.UnitNumber] = true
	}
	for _, item := range list(m, "units") {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}
		num, ok := str(row, "unit_number")
		if !ok || seen[num] {
			continue
		}
		seen[num] = true
		unit := entity.UnitInfo{UnitNumber: num, Status: constants.StatusValid}
		setFloat(&unit.ExclusiveArea, row, "exclusive_area")
		rs.Units = append(rs.Units, unit)
	}
}

func (a *Aggregator) applyPowerOfAttorney(m map[string]any) {
	poa := &a.result.PowerOfAttorney
	applyBase(&poa.DocumentBase, m)

	fillDate(&poa.WrittenDate, m, "written_date")
	fillStr(&poa.Location, m, "location")
	setFloat(&poa.LandArea, m, "land_area")

	decodeDelegation := func(dst *entity.DelegationInfo, key string) {
		party := sub(m, key)
		if party == nil {
			return
		}
		fillStr(&dst.Name, party, "name")
		setBool(&dst.PersonalInfoComplete, party, "personal_info_complete")
		setBool(&dst.SealValid, party, "seal_valid")
	}
	decodeDelegation(&poa.Delegator, "delegator")
	decodeDelegation(&poa.Delegatee, "delegatee")

	if poa.Delegatee.Name != "" {
		a.result.SaleApplication.Agent.Exists = true
		if a.result.SaleApplication.Agent.Name == "" {
			a.result.SaleApplication.Agent.Name = poa.Delegatee.Name
		}
		if a.result.SaleApplication.Agent.Kind == constants.AgentNone {
			a.result.SaleApplication.Agent.Kind = constants.AgentIndividual
		}
	}
}

func (a *Aggregator) applyConsentForm(m map[string]any) {
	cf := &a.result.ConsentForm
	applyBase(&cf.DocumentBase, m)

	fillDate(&cf.OwnerWrittenDate, m, "owner_written_date")
	setBool(&cf.OwnerSigned, m, "owner_signed")
	setBool(&cf.OwnerSealValid, m, "owner_seal_valid")
	setBool(&cf.OwnerDateValid, m, "owner_date_valid")

	fillDate(&cf.AgentWrittenDate, m, "agent_written_date")
	setBool(&cf.AgentSigned, m, "agent_signed")
	setBool(&cf.AgentSealValid, m, "agent_seal_valid")
	setBool(&cf.AgentDateValid, m, "agent_date_valid")
}

func (a *Aggregator) applyIntegrityPledge(m map[string]any) {
	ip := &a.result.IntegrityPledge
	applyBase(&ip.DocumentBase, m)

	fillDate(&ip.OwnerWrittenDate, m, "owner_written_date")
	setBool(&ip.OwnerSubmitted, m, "owner_submitted")
	setBool(&ip.OwnerSealValid, m, "owner_seal_valid")
	setBool(&ip.OwnerIDNumberValid, m, "owner_id_number_valid")
	setBool(&ip.AgentSubmitted, m, "agent_submitted")
	setBool(&ip.AgentSealValid, m, "agent_seal_valid")
	setBool(&ip.RealtorSubmitted, m, "realtor_submitted")
	setBool(&ip.RealtorSealValid, m, "realtor_seal_valid")
	setBool(&ip.CorporationIDTypeCorrect, m, "corporation_id_type_correct")
}

func (a *Aggregator) applyEmployeeConfirmation(m map[string]any) {
	ec := &a.result.EmployeeConfirmation
	applyBase(&ec.DocumentBase, m)

	fillDate(&ec.WrittenDate, m, "written_date")
	fillStr(&ec.ExtractedOwnerName, m, "owner_name")
	setBool(&ec.OwnerNameMatch, m, "owner_name_match")
	setBool(&ec.DateValid, m, "date_valid")
	if v, ok := boolean(m, "seal_valid"); ok {
		ec.SealValid = v
		ec.ExplicitSealCheck = true
	}
}

func (a *Aggregator) applySealCertificate(m map[string]any) {
	if corp, _ := boolean(m, "corporate"); corp {
		applyBase(&a.result.Corporate.CorporateSealCertificate, m)
		return
	}
	oi := &a.result.OwnerIdentity
	applyBase(&oi.SealCertificate, m)
	if oi.SealCertificateIssueDate == "" {
		oi.SealCertificateIssueDate = oi.SealCertificate.IssueDate
	}
	a.result.SaleApplication.Seal.CertificateExists = true
}

func (a *Aggregator) applyIDCard(m map[string]any) {
	oi := &a.result.OwnerIdentity
	doc := entity.IdentityDocument{NameMatch: true}
	applyBase(&doc.DocumentBase, m)
	fillStr(&doc.DocumentType, m, "document_type")
	fillStr(&doc.NameOnDocument, m, "name")
	setBool(&doc.NameMatch, m, "name_match")
	oi.IdentityDocuments = append(oi.IdentityDocuments, doc)
	if n, ok := integer(m, "owner_count"); ok && n > oi.OwnerCount {
		oi.OwnerCount = n
	}
	if oi.OwnerCount == 0 {
		oi.OwnerCount = 1
	}
	if v, ok := boolean(m, "all_ids_submitted"); ok {
		oi.AllIDsSubmitted = v
	} else {
		oi.AllIDsSubmitted = len(oi.IdentityDocuments) >= oi.OwnerCount
	}
}

func (a *Aggregator) applyAgentIDCard(m map[string]any) {
	agent := &a.result.SaleApplication.Agent
	agent.Exists = true
	if agent.Kind == constants.AgentNone {
		agent.Kind = constants.AgentIndividual
	}
	fillStr(&agent.Name, m, "name")
	agent.IDCardMatch = true
	setBool(&agent.IDCardMatch, m, "name_match")
}

func (a *Aggregator) applyBuildingLedgerTitle(m map[string]any) {
	t := &a.result.BuildingLedgerTitle
	applyBase(&t.DocumentBase, m)

	fillDate(&t.ApprovalDate, m, "approval_date")
	setTri(&t.SeismicDesign, m, "seismic_design")
	setInt(&t.OutdoorParking, m, "outdoor_parking")
	setInt(&t.IndoorParking, m, "indoor_parking")
	setInt(&t.MechanicalParking, m, "mechanical_parking")
	setTri(&t.HasBasement, m, "has_basement")
	setInt(&t.BasementFloors, m, "basement_floors")
	setTri(&t.HasBasementUnits, m, "has_basement_units")
	setTri(&t.HasElevator, m, "has_elevator")
	setInt(&t.ElevatorCount, m, "elevator_count")
	setTri(&t.HasWorkerLivingFacility, m, "has_worker_living_facility")
	setTri(&t.HasPiloti, m, "has_piloti")
}

func (a *Aggregator) applyBuildingLedgerExclusive(m map[string]any) {
	ex := &a.result.BuildingLedgerExclusive
	applyBase(&ex.DocumentBase, m)

	seen := make(map[string]bool, len(ex.Units))
	for _, u := range ex.Units {
		seen[u.UnitNumber] = true
	}
	for _, item := range list(m, "units") {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}
		num, ok := str(row, "unit_number")
		if !ok || seen[num] {
			continue
		}
		area, ok := number(row, "exclusive_area")
		if !ok {
			continue
		}
		seen[num] = true
		ex.Units = append(ex.Units, entity.ExclusiveUnit{
			UnitNumber:    num,
			ExclusiveArea: area,
			AreaValid:     true,
			Status:        constants.StatusValid,
		})
	}
}

func (a *Aggregator) applyBuildingLayoutPlan(m map[string]any) {
	bp := &a.result.BuildingLayoutPlan
	applyBase(&bp.DocumentBase, m)

	bp.HasSitePlan = true
	bp.HasAllFloorPlans = true
	bp.HasUnitPlans = true
	setBool(&bp.HasSitePlan, m, "has_site_plan")
	setBool(&bp.HasAllFloorPlans, m, "has_all_floor_plans")
	setBool(&bp.HasUnitPlans, m, "has_unit_plans")
	setBool(&bp.IsGovernmentIssued, m, "is_government_issued")
	bp.MissingFloors = appendUnique(bp.MissingFloors, stringList(m, "missing_floors")...)
	bp.MissingUnits = appendUnique(bp.MissingUnits, stringList(m, "missing_units")...)
}

func (a *Aggregator) applyLandLedger(m map[string]any) {
	ll := &a.result.LandLedger
	applyBase(&ll.DocumentBase, m)

	setFloat(&ll.LandArea, m, "land_area")
	fillStr(&ll.LandCategory, m, "land_category")
	ll.UseRestrictions = appendUnique(ll.UseRestrictions, stringList(m, "use_restrictions")...)
	applyParcels(&ll.TotalParcels, &ll.SubmittedParcels, &ll.MissingParcels, m)
	ll.AllParcelsSubmitted = parcelsComplete(m, ll.TotalParcels, ll.SubmittedParcels, ll.MissingParcels)
}

func (a *Aggregator) applyLandUsePlan(m map[string]any) {
	lp := &a.result.LandUsePlan
	applyBase(&lp.DocumentBase, m)

	setFloat(&lp.LandArea, m, "land_area")
	applyParcels(&lp.TotalParcels, &lp.SubmittedParcels, &lp.MissingParcels, m)
	lp.AllParcelsSubmitted = parcelsComplete(m, lp.TotalParcels, lp.SubmittedParcels, lp.MissingParcels)

	setBool(&lp.IsRedevelopmentZone, m, "is_redevelopment_zone")
	setBool(&lp.IsMaintenanceZone, m, "is_maintenance_zone")
	setBool(&lp.IsPublicHousingZone, m, "is_public_housing_zone")
	setBool(&lp.IsHousingDevelopmentZone, m, "is_housing_development_zone")
	lp.LandUseRegulations = appendUnique(lp.LandUseRegulations, stringList(m, "land_use_regulations")...)

	lp.HasExclusionZone = lp.IsRedevelopmentZone || lp.IsMaintenanceZone ||
		lp.IsPublicHousingZone || lp.IsHousingDevelopmentZone
}

func (a *Aggregator) applyLandRegistry(m map[string]any) {
	lr := &a.result.LandRegistry
	applyBase(&lr.DocumentBase, m)
	setFloat(&lr.LandArea, m, "land_area")
	applyParcels(&lr.TotalParcels, &lr.SubmittedParcels, &lr.MissingParcels, m)
	lr.AllParcelsSubmitted = parcelsComplete(m, lr.TotalParcels, lr.SubmittedParcels, lr.MissingParcels)
}

func (a *Aggregator) applyBuildingRegistry(m map[string]any) {
	br := &a.result.BuildingRegistry
	applyBase(&br.DocumentBase, m)

	if n, ok := integer(m, "total_units"); ok && n > br.TotalUnits {
		br.TotalUnits = n
	}
	if n, ok := integer(m, "submitted_units"); ok && n > br.SubmittedUnits {
		br.SubmittedUnits = n
	}
	br.MissingUnits = appendUnique(br.MissingUnits, stringList(m, "missing_units")...)
	br.AllUnitsSubmitted = rangeComplete(m, "all_units_submitted", br.TotalUnits, br.SubmittedUnits, br.MissingUnits)

	setBool(&br.HasMortgage, m, "has_mortgage")
	br.MortgageDetails = appendUnique(br.MortgageDetails, stringList(m, "mortgage_details")...)
	setBool(&br.HasSeizure, m, "has_seizure")
	br.SeizureDetails = appendUnique(br.SeizureDetails, stringList(m, "seizure_details")...)
	setBool(&br.HasTrust, m, "has_trust")
	br.TrustDetails = appendUnique(br.TrustDetails, stringList(m, "trust_details")...)
	setTri(&br.IsPrivateRentalStated, m, "is_private_rental_stated")

	if br.HasTrust {
		a.result.Trust.TrustRequired = true
	}
}

func (a *Aggregator) applyAsBuiltDrawing(m map[string]any) {
	ad := &a.result.AsBuiltDrawing
	applyBase(&ad.DocumentBase, m)

	fillStr(&ad.ExteriorFinishMaterial, m, "exterior_finish_material")
	fillStr(&ad.ExteriorInsulationMaterial, m, "exterior_insulation_material")
	fillStr(&ad.PilotiFinishMaterial, m, "piloti_finish_material")
	fillStr(&ad.PilotiInsulationMaterial, m, "piloti_insulation_material")
	ad.MaterialsExtracted = ad.ExteriorFinishMaterial != "" || ad.ExteriorInsulationMaterial != "" ||
		ad.PilotiFinishMaterial != "" || ad.PilotiInsulationMaterial != ""

	if ad.ExteriorFinishMaterial != "" && isStoneMaterial(ad.ExteriorFinishMaterial) {
		a.result.TestCertificate.StoneExteriorException = true
	}
}

func (a *Aggregator) applyBusinessRegistration(m map[string]any) {
	if realtor, _ := boolean(m, "realtor"); realtor || a.result.Realtor.IsRealtorAgent {
		applyBase(&a.result.Realtor.BusinessRegistration, m)
		return
	}
	applyBase(&a.result.Corporate.BusinessRegistration, m)
	a.result.Corporate.IsCorporation = true
}

func applyParcels(total, submitted *int, missing *[]string, m map[string]any) {
	if n, ok := integer(m, "total_parcels"); ok && n > *total {
		*total = n
	}
	if n, ok := integer(m, "submitted_parcels"); ok && n > *submitted {
		*submitted = n
	}
	*missing = appendUnique(*missing, stringList(m, "missing_parcels")...)
}

func parcelsComplete(m map[string]any, total, submitted int, missing []string) bool {
	return rangeComplete(m, "all_parcels_submitted", total, submitted, missing)
}

// rangeComplete decides whether the full parcel or unit range was submitted.
// An explicit payload flag wins; a named missing list means incomplete; only
// then do the counters decide.
func rangeComplete(m map[string]any, key string, total, submitted int, missing []string) bool {
	if v, ok := boolean(m, key); ok {
		return v
	}
	if len(missing) > 0 {
		return false
	}
	return total == 0 || submitted >= total
}
