// Package policy holds the announcement-specific review parameters: dates,
// purchase criteria, and the ordered rule descriptors the validation engine
// walks. A Policy is immutable once loaded and safe to share across cases.
package policy

import (
	"github.com/hyunsoo-an/purchase-review/constants"
	"github.com/hyunsoo-an/purchase-review/internal/normalize"
)

// AreaBand is an inclusive exclusive-area range in square meters.
type AreaBand struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether area falls inside the band.
func (b AreaBand) Contains(area float64) bool {
	return area >= b.Min && area <= b.Max
}

// RuleDescriptor configures one numbered review rule. Rules are evaluated in
// ascending ID order; inactive rules are skipped entirely.
type RuleDescriptor struct {
	ID                 int      `json:"id"`
	DocumentName       string   `json:"document_name"`
	Description        string   `json:"description"`
	Severity           string   `json:"severity,omitempty"`
	Active             bool     `json:"active"`
	ExceptionDocuments []string `json:"exception_documents,omitempty"`
}

// Policy is the full announcement configuration.
type Policy struct {
	AnnouncementID   string `json:"announcement_id"`
	Title            string `json:"title"`
	Region           string `json:"region"`
	AnnouncementDate string `json:"announcement_date"`
	CorrectionDate   string `json:"correction_date,omitempty"`
	ApplicationStart string `json:"application_start,omitempty"`
	ApplicationEnd   string `json:"application_end,omitempty"`

	MinUnits      int                 `json:"min_units"`
	ExclusiveArea AreaBand            `json:"exclusive_area"`
	AreaByType    map[string]AreaBand `json:"area_by_type,omitempty"`

	MinConstructionStart string `json:"min_construction_start,omitempty"`
	MinApprovalDate      string `json:"min_approval_date,omitempty"`

	SealMatchThreshold  float64 `json:"seal_match_threshold"`
	SealManualThreshold float64 `json:"seal_manual_threshold"`

	Rules []RuleDescriptor `json:"rules"`
}

// ParsedAnnouncementDate returns the announcement date, preferring the
// correction date when one was published.
func (p *Policy) ParsedAnnouncementDate() (normalize.Date, bool) {
	if p.CorrectionDate != "" {
		if d, ok := normalize.ParseDate(p.CorrectionDate); ok {
			return d, true
		}
	}
	return normalize.ParseDate(p.AnnouncementDate)
}

// Rule returns the descriptor for a rule ID, or nil when absent.
func (p *Policy) Rule(id int) *RuleDescriptor {
	for i := range p.Rules {
		if p.Rules[i].ID == id {
			return &p.Rules[i]
		}
	}
	return nil
}

// RuleActive reports whether a rule should run. Rules without a descriptor
// default to active so that a sparse policy file still reviews everything.
func (p *Policy) RuleActive(id int) bool {
	if r := p.Rule(id); r != nil {
		return r.Active
	}
	return true
}

// Default returns the 2025 Gyeonggi-South announcement parameters.
func Default() *Policy {
	return &Policy{
		AnnouncementID:   "2025-GGS-001",
		Title:            "2025년 기축 매입임대주택 매입 공고(경기남부)",
		Region:           "경기남부",
		AnnouncementDate: "2025-02-10",

		MinUnits:      15,
		ExclusiveArea: AreaBand{Min: 16, Max: 85},
		AreaByType: map[string]AreaBand{
			"일반":     {Min: 20, Max: 85},
			"청년":     {Min: 16, Max: 60},
			"기숙사형":   {Min: 16, Max: 60},
			"신혼신생아1": {Min: 36, Max: 85},
			"신혼신생아2": {Min: 36, Max: 85},
			"다자녀":    {Min: 46, Max: 85},
		},

		MinConstructionStart: "2009-01-01",
		MinApprovalDate:      "2015-01-01",

		SealMatchThreshold:  45,
		SealManualThreshold: 42,

		Rules: defaultRules(),
	}
}

func defaultRules() []RuleDescriptor {
	defs := []struct {
		id   int
		name string
		desc string
	}{
		{1, string(constants.SaleApplication), "주택매도신청서 제출 여부"},
		{2, string(constants.SaleApplication), "작성일자가 공고일 이후인지"},
		{3, string(constants.SaleApplication), "소유자 인적사항 기재 여부"},
		{4, string(constants.SaleApplication), "인감 날인 및 인감증명서 대조"},
		{5, string(constants.SaleApplication), "대리인 신분증 대조"},
		{6, string(constants.SaleApplication), "대지면적 서류 간 일치"},
		{7, string(constants.SaleApplication), "사용승인일 건축물대장 대조"},
		{8, string(constants.RentalStatus), "호별 전용면적 건축물대장 대조"},
		{9, string(constants.PowerOfAttorney), "위임장 제출 여부"},
		{10, string(constants.PowerOfAttorney), "위임인·수임인 인적사항 및 날인"},
		{11, string(constants.PowerOfAttorney), "작성일자가 공고일 이후인지"},
		{12, string(constants.SealCertificate), "인감증명서 제출 여부"},
		{13, string(constants.IDCard), "소유자 신분증 제출 여부"},
		{14, string(constants.IDCard), "공유자 전원 신분증 제출 여부"},
		{15, string(constants.BusinessRegistration), "법인 서류 일체 제출 여부"},
		{16, string(constants.ConsentForm), "개인정보동의서 작성 상태"},
		{17, string(constants.BusinessRegistration), "법인 임원 서류 제출 여부"},
		{18, string(constants.RealtorRegistration), "중개사무소 등록증·사업자등록증"},
		{19, string(constants.IntegrityPledge), "청렴서약서 작성 상태"},
		{20, string(constants.EmployeeConfirmation), "공사직원확인서 작성 상태"},
		{21, string(constants.BuildingLedgerTitle), "건축물대장 제출 여부"},
		{22, string(constants.BuildingLedgerExclusive), "전용면적 기준 충족 여부"},
		{23, string(constants.BuildingLayoutPlan), "건축물현황도 제출 여부"},
		{24, string(constants.LandLedger), "토지대장 전체 필지 제출 여부"},
		{25, string(constants.LandUsePlan), "토지이용계획확인원 및 매입제외지역"},
		{26, string(constants.LandRegistry), "토지등기부등본 제출 여부"},
		{27, string(constants.BuildingRegistry), "건물등기부등본 및 권리관계"},
		{28, string(constants.BuildingRegistry), "신탁 관련 서류 제출 여부"},
		{29, string(constants.AsBuiltDrawing), "준공도면 및 자재 정보"},
		{30, string(constants.TestCertificate), "시험성적서·납품확인서 유효성"},
		{31, string(constants.BuildingLedgerTitle), "근생 여부 확인"},
		{32, string(constants.BuildingLedgerExclusive), "최소·최대 전용면적 산출"},
		{33, string(constants.BuildingRegistry), "민간임대주택 등기 기재 여부"},
		{34, string(constants.LandLedger), "지목 및 이용 제한 확인"},
	}

	rules := make([]RuleDescriptor, 0, len(defs))
	for _, s := range defs {
		rules = append(rules, RuleDescriptor{
			ID:           s.id,
			DocumentName: s.name,
			Description:  s.desc,
			Active:       true,
		})
	}
	return rules
}
