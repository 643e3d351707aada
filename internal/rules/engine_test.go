package rules

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyunsoo-an/purchase-review/constants"
	"github.com/hyunsoo-an/purchase-review/internal/entity"
	"github.com/hyunsoo-an/purchase-review/internal/policy"
)

func fp(v float64) *float64 { return &v }
func bp(v bool) *bool       { return &v }

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(policy.Default(), nil)
	require.NoError(t, err)
	return e
}

// completeResult builds a case that passes every rule, as the baseline the
// failure tests mutate.
func completeResult() *entity.ReviewResult {
	r := entity.NewReviewResult(uuid.New())

	markValid := func(b *entity.DocumentBase) {
		b.Exists = true
		b.Status = constants.StatusValid
	}

	markValid(&r.SaleApplication.DocumentBase)
	r.SaleApplication.WrittenDate = "2025-03-01"
	r.SaleApplication.Owner = entity.OwnerInfo{
		Name:      "홍길동",
		BirthDate: "1980-01-02",
		Address:   "경기도 수원시 장안구",
		Phone:     "010-1234-5678",
	}
	r.SaleApplication.Seal.MatchRate = fp(72)
	r.SaleApplication.Seal.CertificateExists = true

	markValid(&r.RentalStatus.DocumentBase)
	markValid(&r.OwnerIdentity.SealCertificate)
	r.OwnerIdentity.OwnerCount = 1
	r.OwnerIdentity.AllIDsSubmitted = true

	markValid(&r.ConsentForm.DocumentBase)
	markValid(&r.IntegrityPledge.DocumentBase)
	markValid(&r.EmployeeConfirmation.DocumentBase)
	r.EmployeeConfirmation.WrittenDate = "2025-03-02"

	markValid(&r.BuildingLedgerTitle.DocumentBase)
	r.BuildingLedgerTitle.HasWorkerLivingFacility = bp(false)
	r.BuildingLedgerTitle.HasPiloti = bp(false)

	markValid(&r.BuildingLedgerExclusive.DocumentBase)
	r.BuildingLedgerExclusive.Units = []entity.ExclusiveUnit{
		{UnitNumber: "101", ExclusiveArea: 24.5},
		{UnitNumber: "102", ExclusiveArea: 59.8},
	}

	markValid(&r.BuildingLayoutPlan.DocumentBase)
	markValid(&r.LandLedger.DocumentBase)
	r.LandLedger.IssueDate = "2025-03-05"
	r.LandLedger.LandCategory = "대"
	r.LandLedger.AllParcelsSubmitted = true

	markValid(&r.LandUsePlan.DocumentBase)
	r.LandUsePlan.AllParcelsSubmitted = true
	markValid(&r.LandRegistry.DocumentBase)
	r.LandRegistry.AllParcelsSubmitted = true

	markValid(&r.BuildingRegistry.DocumentBase)
	r.BuildingRegistry.AllUnitsSubmitted = true
	r.BuildingRegistry.IsPrivateRentalStated = bp(true)

	markValid(&r.AsBuiltDrawing.DocumentBase)
	r.AsBuiltDrawing.MaterialsExtracted = true
	r.AsBuiltDrawing.ExteriorFinishMaterial = "알루미늄 복합패널"
	r.AsBuiltDrawing.ExteriorInsulationMaterial = "준불연 글라스울"

	markValid(&r.TestCertificate.DocumentBase)
	r.TestCertificate.TestCertFileExists = true
	r.TestCertificate.HasHeatReleaseTest = true
	r.TestCertificate.HasGasToxicityTest = true
	r.TestCertificate.DeliveryConfFileExists = true
	r.TestCertificate.HasDeliveryConfirmation = true

	return r
}

func findingsFor(r *entity.ReviewResult, ruleID int) []entity.SupplementaryDocument {
	var out []entity.SupplementaryDocument
	for _, f := range r.Supplementary {
		if f.RuleID == ruleID {
			out = append(out, f)
		}
	}
	return out
}

func TestCompleteCasePassesEveryRule(t *testing.T) {
	r := completeResult()
	require.NoError(t, newEngine(t).Evaluate(r))
	assert.Empty(t, r.Supplementary)
	assert.True(t, r.IsReviewComplete())
	assert.True(t, r.SaleApplication.Owner.IsComplete)
	assert.True(t, r.SaleApplication.Seal.IsValid)
}

func TestRule01MissingApplication(t *testing.T) {
	r := completeResult()
	r.SaleApplication.Exists = false
	require.NoError(t, newEngine(t).Evaluate(r))

	fs := findingsFor(r, 1)
	require.Len(t, fs, 1)
	assert.Equal(t, "서류 미제출", fs[0].Reason)
	assert.False(t, fs[0].ManualCheck)
}

func TestRule02WrittenDate(t *testing.T) {
	t.Run("before announcement fails hard", func(t *testing.T) {
		r := completeResult()
		r.SaleApplication.WrittenDate = "2025-01-15"
		require.NoError(t, newEngine(t).Evaluate(r))

		fs := findingsFor(r, 2)
		require.Len(t, fs, 1)
		assert.False(t, fs[0].ManualCheck)
		assert.Contains(t, fs[0].Reason, "2025-02-10")
	})

	t.Run("missing date goes to manual check", func(t *testing.T) {
		r := completeResult()
		r.SaleApplication.WrittenDate = ""
		require.NoError(t, newEngine(t).Evaluate(r))

		fs := findingsFor(r, 2)
		require.Len(t, fs, 1)
		assert.True(t, fs[0].ManualCheck)
		assert.Equal(t, fs[0].Reason+" [수동확인필요]", fs[0].DisplayReason())
	})

	t.Run("unparseable date goes to manual check", func(t *testing.T) {
		r := completeResult()
		r.SaleApplication.WrittenDate = "작성일 미상"
		require.NoError(t, newEngine(t).Evaluate(r))
		fs := findingsFor(r, 2)
		require.Len(t, fs, 1)
		assert.True(t, fs[0].ManualCheck)
	})
}

func TestRule03OwnerInfoGrading(t *testing.T) {
	t.Run("nothing extracted", func(t *testing.T) {
		r := completeResult()
		r.SaleApplication.Owner = entity.OwnerInfo{}
		require.NoError(t, newEngine(t).Evaluate(r))
		fs := findingsFor(r, 3)
		require.Len(t, fs, 1)
		assert.True(t, fs[0].ManualCheck)
	})

	t.Run("partial extraction names the gaps", func(t *testing.T) {
		r := completeResult()
		r.SaleApplication.Owner = entity.OwnerInfo{Name: "홍길동", Phone: "010-1234-5678"}
		require.NoError(t, newEngine(t).Evaluate(r))
		fs := findingsFor(r, 3)
		require.Len(t, fs, 1)
		assert.Contains(t, fs[0].Reason, "생년월일")
		assert.Contains(t, fs[0].Reason, "주소")
		assert.NotContains(t, fs[0].Reason, "성명")
	})

	t.Run("three fields suffice", func(t *testing.T) {
		r := completeResult()
		r.SaleApplication.Owner = entity.OwnerInfo{
			Name: "홍길동", BirthDate: "1980-01-02", Address: "수원시",
		}
		require.NoError(t, newEngine(t).Evaluate(r))
		assert.Empty(t, findingsFor(r, 3))
		assert.True(t, r.SaleApplication.Owner.IsComplete)
	})
}

func TestRule04SealThresholds(t *testing.T) {
	tests := []struct {
		name    string
		rate    float64
		wantHit bool
		manual  bool
	}{
		{"above threshold", 45.0, false, false},
		{"borderline goes manual", 43.5, true, true},
		{"at manual floor", 42.0, true, true},
		{"below floor fails hard", 41.9, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := completeResult()
			r.SaleApplication.Seal.MatchRate = fp(tt.rate)
			require.NoError(t, newEngine(t).Evaluate(r))

			fs := findingsFor(r, 4)
			if !tt.wantHit {
				assert.Empty(t, fs)
				assert.True(t, r.SaleApplication.Seal.IsValid)
				return
			}
			require.Len(t, fs, 1)
			assert.Equal(t, tt.manual, fs[0].ManualCheck)
		})
	}

	t.Run("no rate and no certificate", func(t *testing.T) {
		r := completeResult()
		r.SaleApplication.Seal.MatchRate = nil
		r.SaleApplication.Seal.CertificateExists = false
		require.NoError(t, newEngine(t).Evaluate(r))
		fs := findingsFor(r, 4)
		require.Len(t, fs, 1)
		assert.Equal(t, "서류 미제출", fs[0].Reason)
	})
}

func TestCorporationSkipsIndividualRules(t *testing.T) {
	r := completeResult()
	r.Corporate.IsCorporation = true
	r.SaleApplication.Owner = entity.OwnerInfo{}
	r.SaleApplication.Seal.MatchRate = nil
	r.SaleApplication.Seal.CertificateExists = false
	r.OwnerIdentity.SealCertificate.Exists = false
	r.OwnerIdentity.AllIDsSubmitted = false

	require.NoError(t, newEngine(t).Evaluate(r))

	assert.Empty(t, findingsFor(r, 3))
	assert.Empty(t, findingsFor(r, 4))
	assert.Empty(t, findingsFor(r, 12))
	assert.Empty(t, findingsFor(r, 13))
	// The corporate document set is now demanded instead.
	fs := findingsFor(r, 15)
	assert.Len(t, fs, 3)
	fs17 := findingsFor(r, 17)
	require.Len(t, fs17, 1)
	assert.Equal(t, "서류 미제출", fs17[0].Reason)
}

func TestRule13Versus14OwnerCountSplit(t *testing.T) {
	r := completeResult()
	r.OwnerIdentity.AllIDsSubmitted = false
	require.NoError(t, newEngine(t).Evaluate(r))
	assert.Len(t, findingsFor(r, 13), 1)
	assert.Empty(t, findingsFor(r, 14))

	r = completeResult()
	r.OwnerIdentity.OwnerCount = 3
	r.OwnerIdentity.AllIDsSubmitted = false
	require.NoError(t, newEngine(t).Evaluate(r))
	assert.Empty(t, findingsFor(r, 13))
	fs := findingsFor(r, 14)
	require.Len(t, fs, 1)
	assert.Contains(t, fs[0].Reason, "3명")
}

func TestRule22ExclusiveAreaBand(t *testing.T) {
	r := completeResult()
	r.BuildingLedgerExclusive.Units = []entity.ExclusiveUnit{
		{UnitNumber: "101", ExclusiveArea: 15.5},
		{UnitNumber: "102", ExclusiveArea: 24.5},
		{UnitNumber: "103", ExclusiveArea: 86.0},
	}
	require.NoError(t, newEngine(t).Evaluate(r))

	fs := findingsFor(r, 22)
	require.Len(t, fs, 2)
	assert.Contains(t, fs[0].DocumentName, "101")
	assert.Contains(t, fs[1].DocumentName, "103")
	assert.Equal(t, []string{"101", "103"}, r.BuildingLedgerExclusive.InvalidAreaUnits)
	assert.Equal(t, constants.StatusInvalid, r.BuildingLedgerExclusive.Units[0].Status)
}

func TestRule25ExclusionZones(t *testing.T) {
	r := completeResult()
	r.LandUsePlan.IsRedevelopmentZone = true
	r.LandUsePlan.IsPublicHousingZone = true
	require.NoError(t, newEngine(t).Evaluate(r))

	fs := findingsFor(r, 25)
	require.Len(t, fs, 1)
	assert.Contains(t, fs[0].Reason, "재정비촉진지구")
	assert.Contains(t, fs[0].Reason, "공공주택지구")
}

func TestRule28TrustDocuments(t *testing.T) {
	r := completeResult()
	r.Trust.TrustRequired = true
	require.NoError(t, newEngine(t).Evaluate(r))

	fs := findingsFor(r, 28)
	require.Len(t, fs, 2)
	assert.Equal(t, "신탁원부계약서", fs[0].DocumentName)

	r = completeResult()
	r.Trust.TrustRequired = true
	r.Trust.TrustContract.Exists = true
	r.Trust.SaleAuthorityConfirmation.Exists = true
	r.Trust.AllSealsValid = false
	require.NoError(t, newEngine(t).Evaluate(r))
	fs = findingsFor(r, 28)
	require.Len(t, fs, 1)
	assert.Contains(t, fs[0].Reason, "서명/인감 누락")
}

func TestRule30TestCertificateCombinations(t *testing.T) {
	t.Run("heat plus gas passes", func(t *testing.T) {
		r := completeResult()
		require.NoError(t, newEngine(t).Evaluate(r))
		assert.Empty(t, findingsFor(r, 30))
	})

	t.Run("thermal only voids the certificate", func(t *testing.T) {
		r := completeResult()
		r.TestCertificate.HasHeatReleaseTest = false
		r.TestCertificate.HasGasToxicityTest = false
		r.TestCertificate.HasThermalConductivityTest = true
		require.NoError(t, newEngine(t).Evaluate(r))

		fs := findingsFor(r, 30)
		require.Len(t, fs, 1)
		assert.Contains(t, fs[0].Reason, "열전도율 시험만 있음")
	})

	t.Run("heat without gas fails per material", func(t *testing.T) {
		r := completeResult()
		r.TestCertificate.HasGasToxicityTest = false
		require.NoError(t, newEngine(t).Evaluate(r))

		fs := findingsFor(r, 30)
		require.Len(t, fs, 1)
		assert.Contains(t, fs[0].Reason, "가스유해성 시험 없음")
		assert.Contains(t, fs[0].Reason, "외벽마감재료(알루미늄 복합패널)")
	})

	t.Run("stone exterior waives the certificate but not delivery", func(t *testing.T) {
		r := completeResult()
		r.AsBuiltDrawing.ExteriorFinishMaterial = "화강석"
		r.AsBuiltDrawing.ExteriorInsulationMaterial = ""
		r.TestCertificate.TestCertFileExists = false
		r.TestCertificate.Exists = false
		r.TestCertificate.HasHeatReleaseTest = false
		r.TestCertificate.HasGasToxicityTest = false
		require.NoError(t, newEngine(t).Evaluate(r))
		assert.Empty(t, findingsFor(r, 30))

		r.TestCertificate.DeliveryConfFileExists = false
		r.TestCertificate.HasDeliveryConfirmation = false
		require.NoError(t, newEngine(t).Evaluate(r))
		fs := findingsFor(r, 30)
		require.Len(t, fs, 1)
		assert.Contains(t, fs[0].Reason, "석재도 납품확인서 필요")
	})

	t.Run("nothing submitted", func(t *testing.T) {
		r := completeResult()
		r.AsBuiltDrawing.ExteriorFinishMaterial = ""
		r.AsBuiltDrawing.ExteriorInsulationMaterial = ""
		r.AsBuiltDrawing.MaterialsExtracted = false
		r.TestCertificate = entity.TestCertificateDelivery{}
		require.NoError(t, newEngine(t).Evaluate(r))
		fs := findingsFor(r, 30)
		require.Len(t, fs, 1)
	})
}

func TestSignalRules31To34(t *testing.T) {
	r := completeResult()
	r.BuildingLedgerTitle.HasWorkerLivingFacility = nil
	r.BuildingRegistry.IsPrivateRentalStated = nil
	r.LandLedger.LandCategory = ""
	require.NoError(t, newEngine(t).Evaluate(r))

	for _, id := range []int{31, 33, 34} {
		fs := findingsFor(r, id)
		require.Len(t, fs, 1, "rule %d", id)
		assert.True(t, fs[0].ManualCheck, "rule %d", id)
	}
}

func TestRule32DerivesExtremes(t *testing.T) {
	r := completeResult()
	r.BuildingLedgerExclusive.Units = []entity.ExclusiveUnit{
		{UnitNumber: "101", ExclusiveArea: 24.5},
		{UnitNumber: "102", ExclusiveArea: 59.8},
		{UnitNumber: "103", ExclusiveArea: 24.5},
	}
	require.NoError(t, newEngine(t).Evaluate(r))

	ex := r.BuildingLedgerExclusive
	require.NotNil(t, ex.MinExclusiveArea)
	assert.InDelta(t, 24.5, *ex.MinExclusiveArea, 1e-9)
	assert.Equal(t, []string{"101", "103"}, ex.MinAreaUnitNumbers)
	assert.Equal(t, []string{"102"}, ex.MaxAreaUnitNumbers)
	assert.Empty(t, findingsFor(r, 32))
}

func TestInactiveRuleSkipped(t *testing.T) {
	p := policy.Default()
	p.Rule(19).Active = false
	e, err := New(p, nil)
	require.NoError(t, err)

	r := completeResult()
	r.IntegrityPledge.Exists = false
	require.NoError(t, e.Evaluate(r))
	assert.Empty(t, findingsFor(r, 19))
}

func TestNewRejectsInvalidPolicy(t *testing.T) {
	p := policy.Default()
	p.Rules[0].DocumentName = "없는서류종류"
	_, err := New(p, nil)
	assert.Error(t, err)
}

func TestEvaluateRecountsDocuments(t *testing.T) {
	r := completeResult()
	require.NoError(t, newEngine(t).Evaluate(r))
	assert.Greater(t, r.TotalDocuments, 10)
	assert.Equal(t, r.TotalDocuments, r.ValidDocuments)
}

func TestAgentRules(t *testing.T) {
	withAgent := func() *entity.ReviewResult {
		r := completeResult()
		r.SaleApplication.LandArea = fp(312.5)
		r.SaleApplication.Agent = entity.AgentInfo{
			Exists:      true,
			Name:        "김대리",
			Kind:        constants.AgentIndividual,
			IDCardMatch: true,
		}
		r.PowerOfAttorney.Exists = true
		r.PowerOfAttorney.Status = constants.StatusValid
		r.PowerOfAttorney.WrittenDate = "2025-03-02"
		r.PowerOfAttorney.Delegatee.Name = "김대리"
		r.PowerOfAttorney.LandArea = fp(312.5)
		r.PowerOfAttorney.LandAreaMatch = bp(true)
		return r
	}

	t.Run("consistent agent case passes", func(t *testing.T) {
		r := withAgent()
		require.NoError(t, newEngine(t).Evaluate(r))
		assert.Empty(t, r.Supplementary)
	})

	t.Run("rule 5 on unmatched agent id card", func(t *testing.T) {
		r := withAgent()
		r.SaleApplication.Agent.IDCardMatch = false
		require.NoError(t, newEngine(t).Evaluate(r))

		fs := findingsFor(r, 5)
		require.Len(t, fs, 1)
		assert.Equal(t, "대리인 이름 불일치 또는 미제출", fs[0].Reason)
	})

	t.Run("rule 9 on missing power of attorney", func(t *testing.T) {
		r := withAgent()
		r.PowerOfAttorney.Exists = false
		require.NoError(t, newEngine(t).Evaluate(r))

		fs := findingsFor(r, 9)
		require.Len(t, fs, 1)
		assert.Equal(t, "대리접수이나 위임장 미제출", fs[0].Reason)
	})

	t.Run("rule 10 on land area mismatch", func(t *testing.T) {
		r := withAgent()
		r.PowerOfAttorney.LandArea = fp(999.9)
		r.PowerOfAttorney.LandAreaMatch = bp(false)
		require.NoError(t, newEngine(t).Evaluate(r))

		fs := findingsFor(r, 10)
		require.Len(t, fs, 1)
		assert.Equal(t, "소재지 또는 대지면적 오류", fs[0].Reason)
	})

	t.Run("rule 11 on delegator seal defect", func(t *testing.T) {
		r := withAgent()
		r.PowerOfAttorney.Delegator.SealValid = false
		require.NoError(t, newEngine(t).Evaluate(r))

		fs := findingsFor(r, 11)
		require.Len(t, fs, 1)
		assert.Contains(t, fs[0].Reason, "위임자 인감 미날인/불일치")
	})
}
