package review

import (
	"github.com/hyunsoo-an/purchase-review/internal/entity"
	"github.com/hyunsoo-an/purchase-review/internal/normalize"
	"github.com/hyunsoo-an/purchase-review/internal/policy"
)

// collectDocumentDates builds the per-document date summary for the report.
// A date is valid when it parses and does not precede the announcement date.
func collectDocumentDates(r *entity.ReviewResult, p *policy.Policy) []entity.DocumentDateInfo {
	announce, hasAnnounce := p.ParsedAnnouncementDate()

	check := func(dateStr string) bool {
		d, ok := normalize.ParseDate(dateStr)
		if !ok {
			return false
		}
		if !hasAnnounce {
			return true
		}
		return !d.Before(announce)
	}

	type row struct {
		name   string
		kind   string
		date   string
		exists bool
	}
	rows := []row{
		{"주택매도 신청서", "작성일", r.SaleApplication.WrittenDate, r.SaleApplication.Exists},
		{"위임장", "작성일", r.PowerOfAttorney.WrittenDate, r.PowerOfAttorney.Exists},
		{"개인정보 동의서", "작성일", r.ConsentForm.OwnerWrittenDate, r.ConsentForm.Exists},
		{"청렴서약서", "작성일", r.IntegrityPledge.OwnerWrittenDate, r.IntegrityPledge.Exists},
		{"공사직원여부 확인서", "작성일", r.EmployeeConfirmation.WrittenDate, r.EmployeeConfirmation.Exists},
		{"인감증명서", "발급일", r.OwnerIdentity.SealCertificateIssueDate, r.OwnerIdentity.SealCertificate.Exists},
		{"건축물대장 표제부", "발급일", r.BuildingLedgerTitle.IssueDate, r.BuildingLedgerTitle.Exists},
		{"토지대장", "발급일", r.LandLedger.IssueDate, r.LandLedger.Exists},
		{"토지이용계획확인원", "발급일", r.LandUsePlan.IssueDate, r.LandUsePlan.Exists},
		{"토지 등기부등본", "발급일", r.LandRegistry.IssueDate, r.LandRegistry.Exists},
		{"건물 등기부등본", "발급일", r.BuildingRegistry.IssueDate, r.BuildingRegistry.Exists},
	}

	var out []entity.DocumentDateInfo
	for _, rw := range rows {
		if !rw.exists || rw.date == "" {
			continue
		}
		out = append(out, entity.DocumentDateInfo{
			DocumentName: rw.name,
			DateKind:     rw.kind,
			Date:         rw.date,
			Valid:        check(rw.date),
		})
	}
	return out
}
