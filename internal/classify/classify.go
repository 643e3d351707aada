// Package classify resolves an extracted page or file to a document category.
// Resolution runs three stages: the label alias table, ordered keyword rules
// over the page text, then a weighted keyword score as a last resort.
package classify

import (
	"strings"

	"github.com/hyunsoo-an/purchase-review/constants"
)

// Result is a category decision with the confidence of the stage that made it.
type Result struct {
	Category   constants.Category
	Confidence float64
}

const (
	aliasConfidence = 0.95
	scoreFloor      = 0.55
	minTextRunes    = 20
)

// keywordRule matches a literal keyword against whitespace-stripped text.
// Rules are ordered longest and most specific first so that a page containing
// 건축물대장전유부 never falls through to the bare 건축물대장 rule.
type keywordRule struct {
	keyword    string
	category   constants.Category
	confidence float64
}

var keywordRules = []keywordRule{
	{"매도신청주택임대현황", constants.RentalStatus, 0.92},
	{"주택매도신청서", constants.SaleApplication, 0.90},
	{"매도신청서", constants.SaleApplication, 0.88},
	{"개인정보동의서", constants.ConsentForm, 0.90},
	{"청렴서약서", constants.IntegrityPledge, 0.90},
	{"공사직원확인서", constants.EmployeeConfirmation, 0.90},
	{"인감증명서", constants.SealCertificate, 0.90},
	{"위임장", constants.PowerOfAttorney, 0.90},
	{"건축물대장총괄", constants.BuildingLedgerSummary, 0.90},
	{"총괄표제부", constants.BuildingLedgerSummary, 0.88},
	{"건축물대장전유부", constants.BuildingLedgerExclusive, 0.90},
	{"전유부", constants.BuildingLedgerExclusive, 0.85},
	{"건축물현황도", constants.BuildingLayoutPlan, 0.90},
	{"건축물대장", constants.BuildingLedgerTitle, 0.85},
	{"토지이용계획", constants.LandUsePlan, 0.90},
	{"토지대장", constants.LandLedger, 0.88},
	{"토지등기부등본", constants.LandRegistry, 0.90},
	{"건물등기부등본", constants.BuildingRegistry, 0.90},
	{"중개사무소등록증", constants.RealtorRegistration, 0.90},
	{"사업자등록증", constants.BusinessRegistration, 0.90},
	{"준공도면", constants.AsBuiltDrawing, 0.90},
	{"시험성적서", constants.TestCertificate, 0.90},
	{"시험성적", constants.TestCertificate, 0.85},
	{"납품확인서", constants.DeliveryConfirmation, 0.90},
	{"납품확인", constants.DeliveryConfirmation, 0.85},
	{"주민등록증", constants.IDCard, 0.88},
	{"운전면허증", constants.IDCard, 0.88},
}

// scoreProfile is the fallback stage. A category only scores when every must
// keyword is present and no mustNot keyword is; the score is the hit ratio
// over must plus should.
type scoreProfile struct {
	category constants.Category
	must     []string
	should   []string
	mustNot  []string
}

var scoreProfiles = []scoreProfile{
	{constants.SaleApplication, []string{"매도"}, []string{"소유자", "대지면적", "건물사용승인일", "현거주지"}, nil},
	{constants.RentalStatus, []string{"임대"}, []string{"호별현황", "전용면적", "임대보증금"}, nil},
	{constants.PowerOfAttorney, []string{"위임"}, []string{"수임인", "위임인", "위임합니다"}, nil},
	{constants.SealCertificate, []string{"인감"}, []string{"본인발급", "법인인감", "증명"}, nil},
	{constants.ConsentForm, []string{"개인정보"}, []string{"수집", "이용", "동의"}, nil},
	{constants.IntegrityPledge, []string{"서약"}, []string{"청렴", "부정청탁"}, nil},
	{constants.EmployeeConfirmation, []string{"직원"}, []string{"공사직원", "한국토지주택공사", "여부"}, nil},
	{constants.BuildingLedgerTitle, []string{"표제부"}, []string{"대지위치", "주용도", "주구조", "사용승인일", "내진설계", "승강기"}, []string{"총괄"}},
	{constants.BuildingLayoutPlan, []string{"현황도"}, []string{"평면도", "배치도"}, nil},
	{constants.LandLedger, []string{"토지대장"}, []string{"지목", "면적", "소유자"}, nil},
	{constants.LandUsePlan, []string{"토지이용"}, []string{"도시계획", "용도지역"}, nil},
	{constants.IDCard, []string{"등록증"}, []string{"주민", "면허", "여권"}, []string{"사업자", "중개사무소"}},
	{constants.RealtorRegistration, []string{"중개"}, []string{"등록증", "공인중개사"}, nil},
	{constants.BusinessRegistration, []string{"사업자"}, []string{"등록번호", "대표자"}, nil},
	{constants.TestCertificate, []string{"성적서"}, []string{"시험", "열방출", "가스유해성"}, nil},
	{constants.DeliveryConfirmation, []string{"납품"}, []string{"확인", "수량"}, nil},
}

// Classify resolves a file to a category. label is the extraction service's
// own tag for the file (may be empty); text is the recognized page text.
func Classify(label, text string) Result {
	if cat, ok := constants.Canonicalize(label); ok {
		return Result{Category: cat, Confidence: aliasConfidence}
	}

	normalized := stripText(text)
	runes := []rune(normalized)
	if len(runes) < minTextRunes {
		return Result{Category: constants.Unclassified}
	}

	for _, rule := range keywordRules {
		if strings.Contains(normalized, rule.keyword) {
			return Result{Category: rule.category, Confidence: rule.confidence}
		}
	}

	// A bare register-of-title heading needs its subtype resolved from the
	// words near the heading.
	if idx := strings.Index(normalized, "등기사항전부증명서"); idx >= 0 {
		return Result{Category: registrySubtype(runes, idx, normalized), Confidence: 0.85}
	}

	if strings.Contains(normalized, "개인정보") && strings.Contains(normalized, "동의") {
		return Result{Category: constants.ConsentForm, Confidence: 0.82}
	}
	if strings.Contains(normalized, "토지") &&
		(strings.Contains(normalized, "등기") || strings.Contains(normalized, "등본")) {
		return Result{Category: constants.LandRegistry, Confidence: 0.82}
	}

	if cat, score := bestScore(normalized); score >= scoreFloor {
		return Result{Category: cat, Confidence: score}
	}

	return Result{Category: constants.Unclassified}
}

// registrySubtype inspects the 40 runes on either side of the register heading
// for 토지 or 건물. Building registry is the default when neither appears.
func registrySubtype(runes []rune, byteIdx int, normalized string) constants.Category {
	runeIdx := len([]rune(normalized[:byteIdx]))

	lo := runeIdx - 40
	if lo < 0 {
		lo = 0
	}
	hi := runeIdx + len([]rune("등기사항전부증명서")) + 40
	if hi > len(runes) {
		hi = len(runes)
	}
	window := string(runes[lo:hi])

	landIdx := strings.Index(window, "토지")
	bldgIdx := strings.Index(window, "건물")

	switch {
	case landIdx >= 0 && (bldgIdx < 0 || landIdx < bldgIdx):
		return constants.LandRegistry
	default:
		return constants.BuildingRegistry
	}
}

func bestScore(normalized string) (constants.Category, float64) {
	best := constants.Unclassified
	bestScore := 0.0

profiles:
	for _, p := range scoreProfiles {
		for _, kw := range p.mustNot {
			if strings.Contains(normalized, kw) {
				continue profiles
			}
		}
		hits := 0
		for _, kw := range p.must {
			if !strings.Contains(normalized, kw) {
				continue profiles
			}
			hits++
		}
		for _, kw := range p.should {
			if strings.Contains(normalized, kw) {
				hits++
			}
		}
		score := float64(hits) / float64(len(p.must)+len(p.should))
		if score > bestScore {
			best = p.category
			bestScore = score
		}
	}

	return best, bestScore
}

func stripText(text string) string {
	replacer := strings.NewReplacer(" ", "", "\n", "", "\t", "", "\r", "")
	return replacer.Replace(text)
}
