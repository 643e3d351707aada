package constants

import (
	"strings"
)

// Category is the canonical document category for a submitted page or file.
type Category string

const (
	// Application forms.
	SaleApplication      Category = "주택매도신청서"
	RentalStatus         Category = "매도신청주택임대현황"
	PowerOfAttorney      Category = "위임장"
	ConsentForm          Category = "개인정보동의서"
	IntegrityPledge      Category = "청렴서약서"
	EmployeeConfirmation Category = "공사직원확인서"

	// Government-issued documents.
	SealCertificate         Category = "인감증명서"
	IDCard                  Category = "신분증"
	AgentIDCard             Category = "대리인신분증사본"
	BuildingLedgerTitle     Category = "건축물대장표제부"
	BuildingLedgerSummary   Category = "건축물대장총괄표제부"
	BuildingLedgerExclusive Category = "건축물대장전유부"
	BuildingLayoutPlan      Category = "건축물현황도"
	LandLedger              Category = "토지대장"
	LandUsePlan             Category = "토지이용계획확인원"
	BuildingRegistry        Category = "건물등기부등본"
	LandRegistry            Category = "토지등기부등본"

	// Construction material documents.
	AsBuiltDrawing       Category = "준공도면"
	TestCertificate      Category = "시험성적서"
	DeliveryConfirmation Category = "납품확인서"

	// Agent / corporate extras.
	RealtorRegistration  Category = "중개사무소등록증"
	BusinessRegistration Category = "사업자등록증"

	// Unclassified is never passed to the rule engine.
	Unclassified Category = "미확인문서"
)

var allCategories = []Category{
	SaleApplication,
	RentalStatus,
	PowerOfAttorney,
	ConsentForm,
	IntegrityPledge,
	EmployeeConfirmation,
	SealCertificate,
	IDCard,
	AgentIDCard,
	BuildingLedgerTitle,
	BuildingLedgerSummary,
	BuildingLedgerExclusive,
	BuildingLayoutPlan,
	LandLedger,
	LandUsePlan,
	BuildingRegistry,
	LandRegistry,
	AsBuiltDrawing,
	TestCertificate,
	DeliveryConfirmation,
	RealtorRegistration,
	BusinessRegistration,
}

// AsStringSlice returns every classifiable category (Unclassified excluded).
func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// synonyms maps label variants reported by the extraction service to their
// canonical category. Keys are matched with whitespace stripped.
var synonyms = map[string]Category{
	"매도신청서":         SaleApplication,
	"주택매도 신청서":      SaleApplication,
	"임대현황":          RentalStatus,
	"개인정보 동의서":      ConsentForm,
	"개인정보수집동의서":     ConsentForm,
	"공사직원여부확인서":     EmployeeConfirmation,
	"본인발급용인감증명서":    SealCertificate,
	"법인인감증명서":       SealCertificate,
	"총괄표제부":         BuildingLedgerSummary,
	"표제부":           BuildingLedgerTitle,
	"전유부":           BuildingLedgerExclusive,
	"토지이용계획확인서":     LandUsePlan,
	"토지이용계획":        LandUsePlan,
	"등기사항전부증명서(건물)": BuildingRegistry,
	"등기사항전부증명서(토지)": LandRegistry,
	"준공 도면":         AsBuiltDrawing,
	"시험성적":          TestCertificate,
	"납품확인":          DeliveryConfirmation,
	"중개사무소 등록증":     RealtorRegistration,
	"법인용사업자등록증":     BusinessRegistration,
}

// Canonicalize resolves an extraction-service label to a category. The label
// is compared with whitespace stripped, so "주택매도 신청서" and "주택매도신청서"
// resolve identically. Unknown input yields Unclassified.
func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return Unclassified, false
	}

	normalized := strings.ReplaceAll(strings.TrimSpace(input), " ", "")

	for _, cat := range allCategories {
		if normalized == string(cat) {
			return cat, true
		}
	}

	for alias, cat := range synonyms {
		if normalized == strings.ReplaceAll(alias, " ", "") {
			return cat, true
		}
	}

	return Unclassified, false
}
