package rules

import (
	"fmt"
	"strings"

	"github.com/hyunsoo-an/purchase-review/constants"
)

func rule21BuildingLedger(ev *evaluation) {
	if ev.result.BuildingLedgerSummary.Required && !ev.result.BuildingLedgerSummary.Exists {
		ev.add(21, "건축물대장 총괄표제부", "여러 동 건물이나 총괄표제부 미제출", false)
	}
	if !ev.result.BuildingLedgerTitle.Exists {
		ev.add(21, "건축물대장 표제부", "서류 미제출", false)
	}
}

// rule22ExclusiveAreaBand checks every exclusive-portion unit against the
// policy band and records the offenders both on the record and as findings.
func rule22ExclusiveAreaBand(ev *evaluation) {
	ex := &ev.result.BuildingLedgerExclusive
	if !ex.Exists {
		return
	}

	band := ev.engine.policy.ExclusiveArea
	ex.InvalidAreaUnits = nil
	for i := range ex.Units {
		unit := &ex.Units[i]
		unit.AreaValid = band.Contains(unit.ExclusiveArea)
		if !unit.AreaValid {
			unit.Status = constants.StatusInvalid
			ex.InvalidAreaUnits = append(ex.InvalidAreaUnits, unit.UnitNumber)
		}
	}

	for _, unit := range ex.InvalidAreaUnits {
		ev.add(22, fmt.Sprintf("건축물대장 전유부 (%s호)", unit),
			fmt.Sprintf("전용면적이 %.0f㎡ 미만 또는 %.0f㎡ 초과", band.Min, band.Max), false)
	}
}

func rule23BuildingLayoutPlan(ev *evaluation) {
	if !ev.result.BuildingLayoutPlan.Exists {
		ev.add(23, "건축물현황도", "서류 미제출", false)
	}
	// An existing plan counts as complete; the extraction layer only flips
	// the section flags on explicit evidence, which rule 23 does not retest.
}

func rule24LandLedger(ev *evaluation) {
	land := ev.result.LandLedger
	if !land.Exists {
		ev.add(24, "토지대장", "서류 미제출", false)
		return
	}
	var issues []string
	if land.IssueDate != "" {
		if after, ok := ev.afterAnnouncement(land.IssueDate); ok && !after {
			issues = append(issues, fmt.Sprintf("발급일이 공고일(%s) 이전", ev.announcementLabel()))
		}
	}
	if parcelGapShown(land.AllParcelsSubmitted, land.TotalParcels, land.SubmittedParcels, land.MissingParcels) {
		issues = append(issues, "필지 누락")
	}
	if len(issues) > 0 {
		ev.add(24, "토지대장", strings.Join(issues, "; "), false)
	}
}

func rule25LandUsePlan(ev *evaluation) {
	lp := ev.result.LandUsePlan
	if !lp.Exists {
		ev.add(25, "토지이용계획확인원", "서류 미제출", false)
		return
	}
	if parcelGapShown(lp.AllParcelsSubmitted, lp.TotalParcels, lp.SubmittedParcels, lp.MissingParcels) {
		ev.add(25, "토지이용계획확인원", "필지 누락", false)
	}

	var zones []string
	if lp.IsRedevelopmentZone {
		zones = append(zones, "재정비촉진지구")
	}
	if lp.IsMaintenanceZone {
		zones = append(zones, "정비구역")
	}
	if lp.IsPublicHousingZone {
		zones = append(zones, "공공주택지구")
	}
	if lp.IsHousingDevelopmentZone {
		zones = append(zones, "택지개발지구")
	}
	if len(zones) > 0 {
		ev.add(25, "토지이용계획확인원",
			"제외 대상 구역 해당: "+strings.Join(zones, ", "), false)
	}
}

func rule26LandRegistry(ev *evaluation) {
	lr := ev.result.LandRegistry
	if !lr.Exists {
		ev.add(26, "토지 등기부등본", "서류 미제출", false)
		return
	}
	if parcelGapShown(lr.AllParcelsSubmitted, lr.TotalParcels, lr.SubmittedParcels, lr.MissingParcels) {
		ev.add(26, "토지 등기부등본", "필지 누락", false)
	}
}

func rule27BuildingRegistry(ev *evaluation) {
	br := ev.result.BuildingRegistry
	if !br.Exists {
		ev.add(27, "건물 등기부등본", "서류 미제출", false)
		return
	}
	if parcelGapShown(br.AllUnitsSubmitted, br.TotalUnits, br.SubmittedUnits, br.MissingUnits) {
		ev.add(27, "건물 등기부등본", "호수 누락", false)
	}
}

func rule28TrustDocuments(ev *evaluation) {
	trust := ev.result.Trust
	if !ev.gates.trust {
		return
	}
	if !trust.TrustContract.Exists {
		ev.add(28, "신탁원부계약서", "신탁 건물이나 서류 미제출", false)
	}
	if !trust.SaleAuthorityConfirmation.Exists {
		ev.add(28, "신탁물건 매매 권한 확인서", "서류 미제출", false)
	} else if !trust.AllPartiesSigned || !trust.AllSealsValid {
		ev.add(28, "신탁물건 매매 권한 확인서", "일부 관계인 서명/인감 누락", false)
	}
}

// rule29AsBuiltMaterials reports what the drawing analysis recovered and what
// it could not. Piloti materials are only required for a piloti building; a
// drawing that was never analyzed passes on existence alone.
func rule29AsBuiltMaterials(ev *evaluation) {
	ad := ev.result.AsBuiltDrawing
	if !ad.Exists {
		ev.add(29, "준공도면", "서류 미제출", false)
		return
	}

	hasPiloti := false
	if flag := ev.result.BuildingLedgerTitle.HasPiloti; flag != nil {
		hasPiloti = *flag
	} else {
		hasPiloti = ad.PilotiFinishMaterial != "" || ad.PilotiInsulationMaterial != ""
	}

	var extracted []string
	if ad.ExteriorFinishMaterial != "" {
		extracted = append(extracted, "외벽마감재료: "+ad.ExteriorFinishMaterial)
	}
	if ad.ExteriorInsulationMaterial != "" {
		extracted = append(extracted, "외벽단열재료: "+ad.ExteriorInsulationMaterial)
	}
	if ad.PilotiFinishMaterial != "" {
		extracted = append(extracted, "필로티마감재료: "+ad.PilotiFinishMaterial)
	}
	if ad.PilotiInsulationMaterial != "" {
		extracted = append(extracted, "필로티단열재료: "+ad.PilotiInsulationMaterial)
	}

	var missing []string
	if ad.ExteriorFinishMaterial == "" {
		missing = append(missing, "외벽마감재료")
	}
	if ad.ExteriorInsulationMaterial == "" {
		missing = append(missing, "외벽단열재료")
	}
	if hasPiloti {
		if ad.PilotiFinishMaterial == "" {
			missing = append(missing, "필로티마감재료")
		}
		if ad.PilotiInsulationMaterial == "" {
			missing = append(missing, "필로티단열재료")
		}
	}

	if len(missing) == 0 {
		return
	}
	switch {
	case len(extracted) > 0:
		ev.add(29, "준공도면",
			fmt.Sprintf("추출된 자재: %s / 미추출: %s",
				strings.Join(extracted, ", "), strings.Join(missing, ", ")), false)
	case ad.MaterialsExtracted:
		ev.add(29, "준공도면",
			"자재명 미추출 — 도면에서 외벽마감·외벽단열 자재명을 추출해야 함", false)
	}
}

// rule30TestCertificates enforces the fire-safety paperwork. A certificate is
// valid only with both the heat release and the gas toxicity tests; thermal
// conductivity alone voids it. A stone exterior finish waives the certificate
// for that material but never the delivery confirmation.
func rule30TestCertificates(ev *evaluation) {
	tc := ev.result.TestCertificate
	ad := ev.result.AsBuiltDrawing

	certExists := tc.TestCertFileExists || tc.Exists
	deliveryExists := tc.DeliveryConfFileExists || tc.HasDeliveryConfirmation

	hasHeat := tc.HasHeatReleaseTest
	hasGas := tc.HasGasToxicityTest
	hasThermal := tc.HasThermalConductivityTest

	validCert := certExists && hasHeat && hasGas
	thermalOnly := hasThermal && !hasHeat && !hasGas

	stoneFinish := tc.StoneExteriorException || isStoneFinish(ad.ExteriorFinishMaterial)

	type material struct {
		label   string
		name    string
		isStone bool
	}
	var materials []material
	if ad.ExteriorFinishMaterial != "" {
		materials = append(materials, material{"외벽마감재료", ad.ExteriorFinishMaterial, stoneFinish})
	}
	if ad.ExteriorInsulationMaterial != "" {
		materials = append(materials, material{"외벽단열재료", ad.ExteriorInsulationMaterial, false})
	}
	if ad.PilotiFinishMaterial != "" {
		materials = append(materials, material{"필로티마감재료", ad.PilotiFinishMaterial, false})
	}
	if ad.PilotiInsulationMaterial != "" {
		materials = append(materials, material{"필로티단열재료", ad.PilotiInsulationMaterial, false})
	}

	var missing []string
	addMissing := func(item string) {
		for _, s := range missing {
			if s == item {
				return
			}
		}
		missing = append(missing, item)
	}

	if certExists && thermalOnly {
		addMissing("시험성적서 무효: 열전도율 시험만 있음 (열방출+가스유해성 시험 조합 필수, 열전도율은 제외 대상)")
	}

	certDefect := func(desc string) string {
		switch {
		case !hasHeat && !hasGas:
			return desc + " 준불연시험성적서 무효 (열방출+가스유해성 둘 다 없음)"
		case !hasHeat:
			return desc + " 준불연시험성적서 무효 (열방출시험 없음, 가스유해성만)"
		default:
			return desc + " 준불연시험성적서 무효 (가스유해성 시험 없음, 열방출만)"
		}
	}

	if len(materials) == 0 {
		if !certExists {
			addMissing("준불연시험성적서 미제출 (준공도면 자재 미확인)")
		} else if !validCert && !thermalOnly {
			addMissing(strings.TrimSpace(certDefect("")))
		}
		if !deliveryExists {
			addMissing("납품확인서 미제출 (준공도면 자재 미확인)")
		}
	} else {
		for _, mat := range materials {
			desc := fmt.Sprintf("%s(%s)", mat.label, mat.name)
			if mat.isStone {
				if !deliveryExists {
					addMissing(desc + " 납품확인서 미제출 (석재도 납품확인서 필요)")
				}
				continue
			}
			if !certExists {
				addMissing(desc + " 준불연시험성적서 미제출")
			} else if !validCert && !thermalOnly {
				addMissing(certDefect(desc))
			}
			if !deliveryExists {
				addMissing(desc + " 납품확인서 미제출")
			}
		}
	}

	if len(missing) > 0 {
		ev.add(30, "준불연시험성적서·납품확인서", strings.Join(missing, "; "), false)
	} else if !tc.Exists && !deliveryExists {
		ev.add(30, "준불연시험성적서·납품확인서", "서류 미제출", false)
	}
}

func rule31WorkerLivingFacility(ev *evaluation) {
	blt := ev.result.BuildingLedgerTitle
	if blt.Exists && blt.HasWorkerLivingFacility == nil {
		ev.add(31, "건축물대장 표제부", "근생(근로자생활시설) 여부 확인 필요", true)
	}
}

// rule32ExclusiveAreaExtremes derives the smallest and largest exclusive
// areas and the units carrying them; with no usable areas the section goes to
// manual review.
func rule32ExclusiveAreaExtremes(ev *evaluation) {
	ex := &ev.result.BuildingLedgerExclusive
	if !ex.Exists {
		return
	}
	if len(ex.Units) == 0 {
		ev.add(32, "건축물대장 전유부", "전유부 최소·최대 면적 및 해당 호 데이터 확인 필요", true)
		return
	}

	minArea, maxArea := ex.Units[0].ExclusiveArea, ex.Units[0].ExclusiveArea
	for _, u := range ex.Units[1:] {
		if u.ExclusiveArea < minArea {
			minArea = u.ExclusiveArea
		}
		if u.ExclusiveArea > maxArea {
			maxArea = u.ExclusiveArea
		}
	}

	var minUnits, maxUnits []string
	for _, u := range ex.Units {
		if u.ExclusiveArea == minArea {
			minUnits = append(minUnits, u.UnitNumber)
		}
		if u.ExclusiveArea == maxArea {
			maxUnits = append(maxUnits, u.UnitNumber)
		}
	}

	ex.MinExclusiveArea = &minArea
	ex.MaxExclusiveArea = &maxArea
	ex.MinAreaUnitNumbers = minUnits
	ex.MaxAreaUnitNumbers = maxUnits
}

func rule33PrivateRentalNotation(ev *evaluation) {
	br := ev.result.BuildingRegistry
	if br.Exists && br.IsPrivateRentalStated == nil {
		ev.add(33, "건물 등기부등본", "민간임대용 명시 여부 확인 필요", true)
	}
}

func rule34LandCategory(ev *evaluation) {
	land := ev.result.LandLedger
	if land.Exists && land.LandCategory == "" && len(land.UseRestrictions) == 0 {
		ev.add(34, "토지대장", "지목·용도·행위제한 확인 필요", true)
	}
}

// parcelGapShown reports a parcel or unit shortfall only on explicit
// evidence: a named missing list, or both counters present and unequal.
func parcelGapShown(allSubmitted bool, total, submitted int, missing []string) bool {
	if allSubmitted {
		return false
	}
	return len(missing) > 0 || (total > 0 && submitted > 0 && total != submitted)
}

func isStoneFinish(material string) bool {
	if material == "" {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(material))
	for _, kw := range stoneFinishKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var stoneFinishKeywords = []string{
	"석재", "화강석", "대리석", "현무암", "사암", "석회암",
	"granite", "marble", "stone", "타일", "테라코타",
	"세라믹", "도자기", "자기질",
}
