package rules

import (
	"fmt"
	"strings"
)

func rule01ApplicationExists(ev *evaluation) {
	if !ev.result.SaleApplication.Exists {
		ev.add(1, "주택매도 신청서", "서류 미제출", false)
	}
}

func rule02WrittenDateAfterAnnouncement(ev *evaluation) {
	app := &ev.result.SaleApplication
	if !app.Exists {
		return
	}
	written := app.WrittenDate
	if written == "" {
		written = app.IssueDate
	}
	if strings.TrimSpace(written) == "" {
		ev.add(2, "주택매도 신청서",
			fmt.Sprintf("작성일자가 공고일(%s) 이전 또는 미확인", ev.announcementLabel()), true)
		return
	}
	after, ok := ev.afterAnnouncement(written)
	app.IsAfterAnnouncement = after
	if ok && !after {
		ev.add(2, "주택매도 신청서",
			fmt.Sprintf("작성일자가 공고일(%s) 이전", ev.announcementLabel()), false)
	} else if !ok {
		ev.add(2, "주택매도 신청서",
			fmt.Sprintf("작성일자가 공고일(%s) 이전 또는 미확인", ev.announcementLabel()), true)
	}
}

// rule03OwnerInfoComplete grades the owner identity block: nothing extracted
// is a manual check, fewer than three fields lists what is missing, and three
// or more marks the block complete. Corporations are validated by rule 15.
func rule03OwnerInfoComplete(ev *evaluation) {
	app := &ev.result.SaleApplication
	if !app.Exists || ev.gates.corporation {
		return
	}

	owner := &app.Owner
	count := owner.FilledFieldCount()
	switch {
	case count == 0:
		ev.add(3, "주택매도 신청서",
			"소유자 정보 미기재: 성명·생년월일·주소·연락처·이메일 확인 필요", true)
	case count < 3:
		var missing []string
		if owner.Name == "" {
			missing = append(missing, "성명")
		}
		if owner.BirthDate == "" {
			missing = append(missing, "생년월일")
		}
		if owner.Address == "" {
			missing = append(missing, "주소")
		}
		if owner.Phone == "" {
			missing = append(missing, "연락처")
		}
		if owner.Email == "" {
			missing = append(missing, "이메일")
		}
		ev.add(3, "주택매도 신청서",
			"소유자 정보 일부 미추출: "+strings.Join(missing, ", "), true)
	default:
		owner.IsComplete = true
	}
}

// rule04SealVerification applies the match-rate thresholds: at or above the
// match threshold the seal is valid, between the manual and match thresholds
// the case goes to visual inspection, below fails outright. With no computed
// rate the certificate itself must at least be on file.
func rule04SealVerification(ev *evaluation) {
	app := &ev.result.SaleApplication
	if !app.Exists || ev.gates.corporation {
		return
	}

	p := ev.engine.policy
	seal := &app.Seal
	if seal.MatchRate != nil {
		rate := *seal.MatchRate
		switch {
		case rate >= p.SealMatchThreshold:
			seal.IsValid = true
		case rate >= p.SealManualThreshold:
			ev.add(4, "주택매도 신청서 인감",
				fmt.Sprintf("인감 일치율 경계: %s (기준: %.0f%%)", formatRate(rate), p.SealMatchThreshold), true)
		default:
			ev.add(4, "주택매도 신청서 인감",
				fmt.Sprintf("인감 불일치: %s (기준: %.0f%%)", formatRate(rate), p.SealMatchThreshold), false)
		}
		return
	}
	if !seal.CertificateExists {
		ev.add(4, "본인발급용 인감증명서", "서류 미제출", false)
	}
}

func rule05AgentIDCard(ev *evaluation) {
	agent := ev.result.SaleApplication.Agent
	if agent.Exists && !agent.IDCardMatch {
		ev.add(5, "대리인신분증사본", "대리인 이름 불일치 또는 미제출", false)
	}
}

func rule06LandAreaAgreement(ev *evaluation) {
	app := ev.result.SaleApplication
	if app.LandAreaMatch != nil && !*app.LandAreaMatch {
		ev.add(6, "대지면적 불일치",
			"주택매도신청서, 토지대장, 토지이용계획확인서 간 대지면적 불일치", false)
	}
}

func rule07ApprovalDateAgreement(ev *evaluation) {
	app := ev.result.SaleApplication
	if app.ApprovalDateMatch != nil && !*app.ApprovalDateMatch {
		ev.add(7, "주택매도 신청서",
			"사용승인일이 건축물대장 표제부와 불일치", false)
	}
}

func rule08UnitAreaAgreement(ev *evaluation) {
	for _, unit := range ev.result.RentalStatus.MismatchedUnits {
		ev.add(8, fmt.Sprintf("매도신청주택 임대현황 (%s호)", unit),
			"전용면적이 건축물대장 전유부와 불일치", false)
	}
}

func rule09PowerOfAttorneyExists(ev *evaluation) {
	if ev.gates.agent && !ev.result.PowerOfAttorney.Exists {
		ev.add(9, "위임장", "대리접수이나 위임장 미제출", false)
	}
}

func rule10PowerOfAttorneyContent(ev *evaluation) {
	poa := ev.result.PowerOfAttorney
	if !poa.Exists {
		return
	}
	if poa.LandArea != nil && ev.result.SaleApplication.LandArea != nil &&
		poa.LandAreaMatch != nil && !*poa.LandAreaMatch {
		ev.add(10, "위임장", "소재지 또는 대지면적 오류", false)
	}
}

func rule11PowerOfAttorneyParties(ev *evaluation) {
	poa := &ev.result.PowerOfAttorney
	if !poa.Exists {
		return
	}
	var issues []string
	if !poa.Delegator.PersonalInfoComplete {
		issues = append(issues, "위임자 인적사항 불완전")
	}
	if !poa.Delegator.SealValid {
		issues = append(issues, "위임자 인감 미날인/불일치")
	}
	if !poa.Delegatee.PersonalInfoComplete {
		issues = append(issues, "수임자 인적사항 불완전")
	}
	if !poa.Delegatee.SealValid {
		issues = append(issues, "수임자 인감 미날인/불일치")
	}
	if poa.WrittenDate != "" {
		after, ok := ev.afterAnnouncement(poa.WrittenDate)
		poa.IsAfterAnnouncement = after
		if ok && !after {
			issues = append(issues, fmt.Sprintf("작성일이 공고일(%s) 이전", ev.announcementLabel()))
		}
	}
	if len(issues) > 0 {
		ev.add(11, "위임장", strings.Join(issues, "; "), false)
	}
}

func rule12OwnerSealCertificate(ev *evaluation) {
	if ev.gates.corporation {
		return
	}
	if !ev.result.OwnerIdentity.SealCertificate.Exists {
		ev.add(12, "소유자 인감증명서", "서류 미제출", false)
	}
}

func rule13OwnerIDSubmitted(ev *evaluation) {
	oi := ev.result.OwnerIdentity
	if ev.gates.corporation || oi.OwnerCount > 1 {
		return
	}
	if !oi.AllIDsSubmitted {
		ev.add(13, "소유자 신분증 사본", "서류 미제출", false)
	}
}

func rule14CoOwnerIDsSubmitted(ev *evaluation) {
	oi := ev.result.OwnerIdentity
	if ev.gates.corporation || oi.OwnerCount <= 1 {
		return
	}
	if !oi.AllIDsSubmitted {
		ev.add(14, "소유자 신분증 사본",
			fmt.Sprintf("소유자 %d명 중 일부 미제출", oi.OwnerCount), false)
	}
}

func rule15CorporateDocuments(ev *evaluation) {
	if !ev.gates.corporation {
		return
	}
	corp := ev.result.Corporate
	if !corp.BusinessRegistration.Exists {
		ev.add(15, "법인용 사업자등록증", "서류 미제출", false)
	}
	if !corp.CorporateSealCertificate.Exists {
		ev.add(15, "법인용 인감증명서", "서류 미제출", false)
	}
	if !corp.CorporateRegistry.Exists {
		ev.add(15, "법인 등기사항전부증명서", "서류 미제출", false)
	}
	if corp.ExecutiveCount > 0 && !corp.AllExecutiveIDsSubmitted {
		ev.add(15, "법인 임원 신분증",
			fmt.Sprintf("등기 임원 %d명 중 일부 미제출", corp.ExecutiveCount), false)
	}
}

func rule16ConsentForm(ev *evaluation) {
	consent := ev.result.ConsentForm
	if !consent.Exists {
		ev.add(16, "개인정보 수집 이용 및 제공 동의서", "서류 미제출", false)
		return
	}
	var issues []string
	if !consent.OwnerSigned {
		issues = append(issues, "소유자 미작성")
	}
	if !consent.OwnerSealValid {
		issues = append(issues, "소유자 인감 불일치")
	}
	if !consent.OwnerDateValid {
		issues = append(issues, "소유자 작성일자 오류")
	}
	if ev.gates.agent {
		if !consent.AgentSigned {
			issues = append(issues, "대리인 미작성")
		}
		if !consent.AgentSealValid {
			issues = append(issues, "대리인 인감 불일치")
		}
	}
	if len(issues) > 0 {
		ev.add(16, "개인정보 수집 이용 및 제공 동의서", strings.Join(issues, "; "), false)
	}
}

func rule17ContractLimitConsent(ev *evaluation) {
	if !ev.gates.corporation {
		return
	}
	corp := ev.result.Corporate
	if !corp.ContractLimitConsent.Exists {
		ev.add(17, "연간 계약건수 상한 검증용 동의서", "서류 미제출", false)
	} else if !corp.AllExecutivesSigned {
		ev.add(17, "연간 계약건수 상한 검증용 동의서", "일부 임원 자필서명 누락", false)
	}
}

func rule18RealtorDocuments(ev *evaluation) {
	realtor := ev.result.Realtor
	if !realtor.IsRealtorAgent {
		return
	}
	if !realtor.OfficeRegistration.Exists {
		ev.add(18, "중개사무소 등록증", "서류 미제출", false)
	}
	if !realtor.BusinessRegistration.Exists {
		ev.add(18, "중개사 사업자등록증", "서류 미제출", false)
	}
	if !realtor.SealMatchWithApplication {
		ev.add(18, "중개사무소 등록증", "주택매도신청서와 인감 불일치", false)
	}
}

func rule19IntegrityPledge(ev *evaluation) {
	pledge := ev.result.IntegrityPledge
	if !pledge.Exists {
		ev.add(19, "청렴서약서", "서류 미제출", false)
		return
	}
	var issues []string
	if !pledge.OwnerSubmitted {
		issues = append(issues, "소유자 미작성")
	}
	if !pledge.OwnerSealValid {
		issues = append(issues, "소유자 인감 불일치")
	}
	if !pledge.OwnerIDNumberValid {
		issues = append(issues, "소유자 주민번호/사업자번호 오류")
	}
	if ev.gates.corporation && !pledge.CorporationIDTypeCorrect {
		issues = append(issues, "법인인데 주민등록번호 기재")
	}
	if ev.gates.agent && !pledge.AgentSubmitted {
		issues = append(issues, "대리인 미작성")
	}
	if ev.gates.realtor && !pledge.RealtorSubmitted {
		issues = append(issues, "중개사 미작성")
	}
	if len(issues) > 0 {
		ev.add(19, "청렴서약서", strings.Join(issues, "; "), false)
	}
}

func rule20EmployeeConfirmation(ev *evaluation) {
	ec := ev.result.EmployeeConfirmation
	if !ec.Exists {
		ev.add(20, "공사직원여부 확인서", "서류 미제출", false)
		return
	}
	var issues []string
	appOwner := ev.result.SaleApplication.Owner.Name
	if appOwner != "" && ec.ExtractedOwnerName != "" && !ec.OwnerNameMatch {
		issues = append(issues, "소유자 이름 불일치")
	}
	if ec.ExplicitSealCheck && !ec.SealValid {
		issues = append(issues, "인감 불일치")
	}
	if ec.WrittenDate != "" {
		if after, ok := ev.afterAnnouncement(ec.WrittenDate); ok && !after {
			issues = append(issues, "작성일자 오류")
		} else if !ec.DateValid {
			issues = append(issues, "작성일자 오류")
		}
	}
	if len(issues) > 0 {
		ev.add(20, "공사직원여부 확인서", strings.Join(issues, "; "), false)
	}
}
