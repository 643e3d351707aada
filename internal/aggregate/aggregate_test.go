package aggregate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyunsoo-an/purchase-review/constants"
	"github.com/hyunsoo-an/purchase-review/internal/entity"
)

func newAggregator() *Aggregator {
	return New(entity.NewReviewResult(uuid.New()), nil)
}

func TestApplySaleApplicationPicksBestOwnerRecord(t *testing.T) {
	a := newAggregator()

	a.Apply(Observation{
		Category:   constants.SaleApplication,
		Confidence: 0.88,
		Payload: map[string]any{
			"written_date": "2025.3.4",
			"owner":        map[string]any{"name": "홍길동"},
		},
	})
	a.Apply(Observation{
		Category:   constants.SaleApplication,
		Confidence: 0.92,
		Payload: map[string]any{
			"owner": map[string]any{
				"name":       "홍길동",
				"birth_date": "1980-01-02",
				"address":    "경기도 수원시",
				"phone":      "010-1234-5678",
			},
			"land_area": "312.5㎡",
		},
	})

	r := a.Finalize()
	require.True(t, r.SaleApplication.Exists)
	assert.Equal(t, 4, r.SaleApplication.Owner.FilledFieldCount())
	assert.True(t, r.SaleApplication.Owner.IsComplete)
	// The weaker record still fills gaps the winner lacked.
	assert.Equal(t, "2025-03-04", r.SaleApplication.WrittenDate)
	require.NotNil(t, r.SaleApplication.LandArea)
	assert.InDelta(t, 312.5, *r.SaleApplication.LandArea, 1e-9)
	assert.InDelta(t, 0.92, a.Confidence(constants.SaleApplication), 1e-9)
}

func TestFinalizeKeepsAgentIDCardMatch(t *testing.T) {
	// The agent ID card and the application can arrive in either order; the
	// winning application record must not erase the latched match.
	orders := map[string][]Observation{
		"id card first": {
			{Category: constants.AgentIDCard, Payload: map[string]any{"name": "김대리", "name_match": true}},
			{Category: constants.SaleApplication, Payload: map[string]any{
				"owner": map[string]any{"name": "홍길동"},
				"agent": map[string]any{"name": "김대리"},
			}},
		},
		"application first": {
			{Category: constants.SaleApplication, Payload: map[string]any{
				"owner": map[string]any{"name": "홍길동"},
				"agent": map[string]any{"name": "김대리"},
			}},
			{Category: constants.AgentIDCard, Payload: map[string]any{"name": "김대리", "name_match": true}},
		},
	}

	for name, obs := range orders {
		t.Run(name, func(t *testing.T) {
			a := newAggregator()
			for _, o := range obs {
				a.Apply(o)
			}

			r := a.Finalize()
			agent := r.SaleApplication.Agent
			require.True(t, agent.Exists)
			assert.True(t, agent.IDCardMatch)
			assert.Equal(t, "김대리", agent.Name)
		})
	}
}

func TestFinalizeKeepsAgentFromPowerOfAttorney(t *testing.T) {
	a := newAggregator()
	a.Apply(Observation{Category: constants.PowerOfAttorney, Payload: map[string]any{
		"delegatee": map[string]any{"name": "김대리"},
	}})
	a.Apply(Observation{Category: constants.SaleApplication, Payload: map[string]any{
		"owner": map[string]any{"name": "홍길동"},
	}})

	r := a.Finalize()
	require.True(t, r.SaleApplication.Agent.Exists)
	assert.Equal(t, "김대리", r.SaleApplication.Agent.Name)
	assert.Equal(t, constants.AgentIndividual, r.SaleApplication.Agent.Kind)
}

func TestFinalizeKeepsSealCertificateLatch(t *testing.T) {
	a := newAggregator()
	a.Apply(Observation{Category: constants.SealCertificate, Payload: map[string]any{
		"issue_date": "2025-03-02",
	}})
	a.Apply(Observation{Category: constants.SaleApplication, Payload: map[string]any{
		"owner": map[string]any{"name": "홍길동"},
	}})

	r := a.Finalize()
	assert.True(t, r.SaleApplication.Seal.CertificateExists)
}

func TestApplyParcelCompleteness(t *testing.T) {
	t.Run("missing parcel list marks incomplete", func(t *testing.T) {
		a := newAggregator()
		a.Apply(Observation{Category: constants.LandLedger, Payload: map[string]any{
			"missing_parcels": []any{"산12-3"},
		}})

		r := a.Finalize()
		assert.False(t, r.LandLedger.AllParcelsSubmitted)
		assert.Equal(t, []string{"산12-3"}, r.LandLedger.MissingParcels)
	})

	t.Run("explicit flag wins over counters", func(t *testing.T) {
		a := newAggregator()
		a.Apply(Observation{Category: constants.LandUsePlan, Payload: map[string]any{
			"all_parcels_submitted": false,
			"total_parcels":         2,
			"submitted_parcels":     2,
		}})

		r := a.Finalize()
		assert.False(t, r.LandUsePlan.AllParcelsSubmitted)
	})

	t.Run("matching counters remain complete", func(t *testing.T) {
		a := newAggregator()
		a.Apply(Observation{Category: constants.LandRegistry, Payload: map[string]any{
			"total_parcels":     3,
			"submitted_parcels": 3,
		}})

		r := a.Finalize()
		assert.True(t, r.LandRegistry.AllParcelsSubmitted)
	})
}

func TestApplyFillOnlyNeverOverwrites(t *testing.T) {
	a := newAggregator()

	a.Apply(Observation{Category: constants.LandLedger, Payload: map[string]any{
		"land_area":     250.0,
		"land_category": "대",
	}})
	a.Apply(Observation{Category: constants.LandLedger, Payload: map[string]any{
		"land_area":     999.0,
		"land_category": "전",
	}})

	r := a.Finalize()
	require.NotNil(t, r.LandLedger.LandArea)
	assert.InDelta(t, 250.0, *r.LandLedger.LandArea, 1e-9)
	assert.Equal(t, "대", r.LandLedger.LandCategory)
}

func TestApplyUnitDedupByUnitNumber(t *testing.T) {
	a := newAggregator()

	a.Apply(Observation{Category: constants.RentalStatus, Payload: map[string]any{
		"units": []any{
			map[string]any{"unit_number": "101", "exclusive_area": 24.5},
			map[string]any{"unit_number": "102", "exclusive_area": "24.5㎡"},
		},
	}})
	a.Apply(Observation{Category: constants.RentalStatus, Payload: map[string]any{
		"units": []any{
			map[string]any{"unit_number": "102", "exclusive_area": 99.0},
			map[string]any{"unit_number": "103", "exclusive_area": 24.5},
		},
	}})

	r := a.Finalize()
	require.Len(t, r.RentalStatus.Units, 3)
	assert.Equal(t, "102", r.RentalStatus.Units[1].UnitNumber)
	assert.InDelta(t, 24.5, *r.RentalStatus.Units[1].ExclusiveArea, 1e-9)
}

func TestApplyLenientCoercion(t *testing.T) {
	a := newAggregator()

	a.Apply(Observation{Category: constants.BuildingLedgerTitle, Payload: map[string]any{
		"approval_date":  "2020년 5월 1일",
		"seismic_design": "적용",
		"has_elevator":   "없음",
		"elevator_count": "0",
		"garbage_key":    []any{1, 2, 3},
	}})

	r := a.Finalize()
	title := r.BuildingLedgerTitle
	require.True(t, title.Exists)
	assert.Equal(t, "2020-05-01", title.ApprovalDate)
	require.NotNil(t, title.SeismicDesign)
	assert.True(t, *title.SeismicDesign)
	require.NotNil(t, title.HasElevator)
	assert.False(t, *title.HasElevator)
}

func TestApplyEmptyPayloadStillLatchesExistence(t *testing.T) {
	a := newAggregator()
	a.Apply(Observation{Category: constants.IntegrityPledge, Payload: nil})

	r := a.Finalize()
	assert.True(t, r.IntegrityPledge.Exists)
	assert.Equal(t, constants.StatusValid, r.IntegrityPledge.Status)
	// Presence-style defaults survive an empty payload.
	assert.True(t, r.IntegrityPledge.OwnerSubmitted)
}

func TestApplyConsentDefectOverridesDefault(t *testing.T) {
	a := newAggregator()
	a.Apply(Observation{Category: constants.ConsentForm, Payload: map[string]any{
		"owner_signed": false,
	}})

	r := a.Finalize()
	assert.False(t, r.ConsentForm.OwnerSigned)
	assert.True(t, r.ConsentForm.OwnerSealValid)
}

func TestApplyTestCertificateTextDetection(t *testing.T) {
	a := newAggregator()

	a.Apply(Observation{
		Category: constants.TestCertificate,
		Text:     "시험항목: 총열방출량 (KS F ISO 5660-1)",
		Payload:  map[string]any{"material_name": "준불연 단열재"},
	})
	a.Apply(Observation{
		Category: constants.TestCertificate,
		Text:     "가스유해성 시험 결과 적합",
		Payload:  map[string]any{},
	})
	a.Apply(Observation{Category: constants.DeliveryConfirmation, Payload: map[string]any{
		"materials": []any{"준불연 단열재"},
	}})

	r := a.Finalize()
	tc := r.TestCertificate
	assert.True(t, tc.HasHeatReleaseTest)
	assert.True(t, tc.HasGasToxicityTest)
	assert.False(t, tc.HasThermalConductivityTest)
	assert.True(t, tc.HasDeliveryConfirmation)
	assert.Contains(t, tc.MaterialsWithDeliveryConf, "준불연 단열재")
}

func TestApplyBuildingRegistryTrustFlag(t *testing.T) {
	a := newAggregator()
	a.Apply(Observation{Category: constants.BuildingRegistry, Payload: map[string]any{
		"has_trust":     true,
		"trust_details": []any{"신탁원부 제2025-123호"},
	}})

	r := a.Finalize()
	assert.True(t, r.BuildingRegistry.HasTrust)
	assert.True(t, r.Trust.TrustRequired)
}

func TestApplyUnclassifiedIgnored(t *testing.T) {
	a := newAggregator()
	a.Apply(Observation{Category: constants.Unclassified, Payload: map[string]any{"issue_date": "2025-01-01"}})
	r := a.Finalize()
	assert.Equal(t, 0, countExisting(r))
}

func countExisting(r *entity.ReviewResult) int {
	n := 0
	for _, b := range []bool{
		r.SaleApplication.Exists, r.RentalStatus.Exists, r.PowerOfAttorney.Exists,
		r.ConsentForm.Exists, r.IntegrityPledge.Exists, r.LandLedger.Exists,
	} {
		if b {
			n++
		}
	}
	return n
}
