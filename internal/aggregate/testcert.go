package aggregate

import (
	"strings"
)

// Keyword sets for recognizing which fire-safety tests a certificate covers.
// Matching is case-insensitive substring over the payload text plus any test
// names the extraction service listed.
var (
	heatReleaseKeywords = []string{
		"열방출", "열방출량", "총열방출량", "총열방출율", "열방출률", "열방출율",
		"thr", "total heat release", "heat release rate", "hrr",
		"열량방출", "열에너지", "발열량", "발열율",
		"cone calorimeter", "콘칼로리미터",
		"ks f iso 5660", "5660", "iso 5660",
		"준불연", "불연", "난연",
	}

	gasToxicityKeywords = []string{
		"가스유해성", "가스유해", "가스독성", "연소가스유해성", "연소가스",
		"gas toxicity", "gas toxic", "toxicity test", "toxic gas",
		"유해가스", "유독가스", "연기독성", "연기유해성",
		"ks f 2271", "2271",
		"마우스", "mouse", "동물시험",
	}

	// Thermal conductivity is an insulation-performance test. It never
	// satisfies the fire-safety requirement on its own.
	thermalConductivityKeywords = []string{
		"열전도율", "열전도", "열전달", "열전도계수",
		"thermal conductivity", "heat conductivity", "k-value", "k값",
		"ks l iso 8302", "8302", "iso 8302",
		"ks l 9016", "9016",
		"단열성능", "단열시험",
	}

	stoneKeywords = []string{
		"석재", "화강석", "대리석", "현무암", "사암", "석회암",
		"granite", "marble", "stone", "basalt",
		"타일", "테라코타", "세라믹", "도자기", "자기질",
	}
)

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isStoneMaterial(material string) bool {
	if material == "" {
		return false
	}
	return containsAny(material, stoneKeywords)
}

func (a *Aggregator) applyTestCertificate(m map[string]any, text string) {
	tc := &a.result.TestCertificate
	applyBase(&tc.DocumentBase, m)
	tc.TestCertFileExists = true

	detected := stringList(m, "detected_tests")
	tc.DetectedTests = appendUnique(tc.DetectedTests, detected...)
	corpus := text + " " + strings.Join(detected, " ")

	if v, ok := boolean(m, "has_heat_release_test"); ok && v {
		tc.HasHeatReleaseTest = true
	}
	if v, ok := boolean(m, "has_gas_toxicity_test"); ok && v {
		tc.HasGasToxicityTest = true
	}
	if v, ok := boolean(m, "has_thermal_conductivity_test"); ok && v {
		tc.HasThermalConductivityTest = true
	}

	// Text detection supplements the extracted flags; a test stays detected
	// once any file showed it.
	tc.HasHeatReleaseTest = tc.HasHeatReleaseTest || containsAny(corpus, heatReleaseKeywords)
	tc.HasGasToxicityTest = tc.HasGasToxicityTest || containsAny(corpus, gasToxicityKeywords)
	tc.HasThermalConductivityTest = tc.HasThermalConductivityTest || containsAny(corpus, thermalConductivityKeywords)

	tc.MaterialsWithTestCert = appendUnique(tc.MaterialsWithTestCert, stringList(m, "materials")...)
	if material, ok := str(m, "material_name"); ok {
		tc.MaterialsWithTestCert = appendUnique(tc.MaterialsWithTestCert, material)
	}
}

func (a *Aggregator) applyDeliveryConfirmation(m map[string]any) {
	tc := &a.result.TestCertificate
	tc.DeliveryConfFileExists = true
	tc.HasDeliveryConfirmation = true
	if tc.IssueDate == "" {
		if d, ok := date(m, "issue_date"); ok {
			tc.IssueDate = d
		}
	}

	tc.MaterialsWithDeliveryConf = appendUnique(tc.MaterialsWithDeliveryConf, stringList(m, "materials")...)
	if material, ok := str(m, "material_name"); ok {
		tc.MaterialsWithDeliveryConf = appendUnique(tc.MaterialsWithDeliveryConf, material)
	}
}
