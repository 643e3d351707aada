package applicant

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/hyunsoo-an/purchase-review/constants"
	"github.com/hyunsoo-an/purchase-review/internal/entity"
)

func newResult() *entity.ReviewResult {
	return entity.NewReviewResult(uuid.New())
}

func TestClassifyCorporateDocumentsWin(t *testing.T) {
	r := newResult()
	r.Corporate.BusinessRegistration.Exists = true
	r.SaleApplication.Owner.Name = "홍길동"

	kind := Classify(r, Context{}, nil)
	assert.Equal(t, constants.ApplicantCorporation, kind)
	assert.True(t, r.Corporate.IsCorporation)
}

func TestClassifyOwnerNameKeyword(t *testing.T) {
	tests := []struct {
		name string
		want constants.ApplicantKind
	}{
		{"주식회사 한빛", constants.ApplicantCorporation},
		{"(주)대성종합건설", constants.ApplicantCorporation},
		{"㈜미래에셋", constants.ApplicantCorporation},
		{"Sunrise Holdings", constants.ApplicantCorporation},
		{"홍길동", constants.ApplicantIndividual},
		{"김철수", constants.ApplicantIndividual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResult()
			r.SaleApplication.Owner.Name = tt.name
			r.SaleApplication.Owner.BirthDate = "1980-01-01"
			assert.Equal(t, tt.want, Classify(r, Context{}, nil))
		})
	}
}

func TestClassifyCaseTextFallback(t *testing.T) {
	r := newResult()
	ctx := Context{Summary: "소유자 한빛개발 매도 신청 건"}

	kind := Classify(r, ctx, nil)
	assert.Equal(t, constants.ApplicantCorporation, kind)
}

func TestClassifyLongNameWithoutBirthDate(t *testing.T) {
	r := newResult()
	r.SaleApplication.Owner.Name = "미라클종합건설"

	assert.Equal(t, constants.ApplicantCorporation, Classify(r, Context{}, nil))

	// The same name with a birth date is handled by the keyword stage, so
	// use a suffix-free name to show the birth date gate.
	r2 := newResult()
	r2.SaleApplication.Owner.Name = "남궁억"
	assert.Equal(t, constants.ApplicantIndividual, Classify(r2, Context{}, nil))
}

func TestClassifySetsDisplayName(t *testing.T) {
	r := newResult()
	r.SaleApplication.Owner.Name = "주식회사 한빛"
	Classify(r, Context{}, nil)
	assert.Equal(t, "주식회사 한빛", r.ApplicantName)
	assert.Equal(t, constants.ApplicantCorporation, r.ApplicantKind)
}
