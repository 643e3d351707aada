package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hyunsoo-an/purchase-review/constants"
)

func pad(s string) string {
	return s + strings.Repeat("참고사항없음", 5)
}

func TestClassifyByLabel(t *testing.T) {
	got := Classify("주택매도 신청서", "")
	assert.Equal(t, constants.SaleApplication, got.Category)
	assert.Equal(t, aliasConfidence, got.Confidence)

	got = Classify("법인인감증명서", "")
	assert.Equal(t, constants.SealCertificate, got.Category)
}

func TestClassifyByKeyword(t *testing.T) {
	tests := []struct {
		name string
		text string
		want constants.Category
		conf float64
	}{
		{"rental status", pad("매도신청주택 임대현황 호별 내역"), constants.RentalStatus, 0.92},
		{"sale application full", pad("주택매도신청서 소유자 홍길동"), constants.SaleApplication, 0.90},
		{"sale application short", pad("매도신청서 제출합니다"), constants.SaleApplication, 0.88},
		{"exclusive before ledger", pad("건축물대장 전유부 1동 101호"), constants.BuildingLedgerExclusive, 0.90},
		{"summary before ledger", pad("건축물대장 총괄표제부 1동"), constants.BuildingLedgerSummary, 0.90},
		{"title section", pad("건축물대장 표제부 대지위치 주용도"), constants.BuildingLedgerTitle, 0.85},
		{"layout plan", pad("건축물현황도 각층 평면도 첨부"), constants.BuildingLayoutPlan, 0.90},
		{"land registry explicit", pad("토지등기부등본 갑구 을구"), constants.LandRegistry, 0.90},
		{"test certificate", pad("시험성적서 열방출시험 결과"), constants.TestCertificate, 0.90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("", tt.text)
			assert.Equal(t, tt.want, got.Category)
			assert.InDelta(t, tt.conf, got.Confidence, 1e-9)
		})
	}
}

func TestClassifyRegistrySubtype(t *testing.T) {
	land := Classify("", pad("등기사항전부증명서 (토지) 경기도 수원시"))
	assert.Equal(t, constants.LandRegistry, land.Category)
	assert.InDelta(t, 0.85, land.Confidence, 1e-9)

	bldg := Classify("", pad("등기사항전부증명서 (건물) 경기도 수원시"))
	assert.Equal(t, constants.BuildingRegistry, bldg.Category)

	// No qualifier near the heading defaults to the building register.
	far := Classify("", pad("등기사항전부증명서 열람용 발급본입니다"))
	assert.Equal(t, constants.BuildingRegistry, far.Category)
}

func TestClassifyCombinationFallback(t *testing.T) {
	got := Classify("", pad("개인정보 수집 및 이용에 동의 합니다 서명란"))
	assert.Equal(t, constants.ConsentForm, got.Category)
	assert.InDelta(t, 0.82, got.Confidence, 1e-9)
}

func TestClassifyUnclassified(t *testing.T) {
	assert.Equal(t, constants.Unclassified, Classify("", "").Category)
	assert.Equal(t, constants.Unclassified, Classify("", "짧은글").Category)
	assert.Equal(t, constants.Unclassified, Classify("", pad("오늘 날씨가 맑고 화창해서 산책을 다녀옴")).Category)
}
