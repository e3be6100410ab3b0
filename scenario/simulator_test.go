package scenario

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/adaptivecare/adaptivecare-api/mcda"
	"github.com/adaptivecare/adaptivecare-api/models"
	"github.com/adaptivecare/adaptivecare-api/risk"
)

func floatPtr(v float64) *float64 { return &v }

func acuityPtr(a models.AcuityLevel) *models.AcuityLevel { return &a }

func newSimulator() *Simulator {
	return NewSimulator(mcda.NewEngine(mcda.DefaultWeights()))
}

func TestSimulateWaitImprovingCapacity(t *testing.T) {
	s := newSimulator()
	ctx := mcda.EvaluationContext{
		Patient: mcda.PatientContext{AcuityLevel: acuityPtr(models.AcuityLessUrgent)},
		Risk:    &mcda.RiskContext{RiskScore: 30, Trajectory: risk.TrendStable},
	}

	out := s.SimulateWait(40, ctx, 30, TrendImproving)

	assert.Equal(t, "wait_30min", out.ScenarioID)
	assert.Equal(t, "Wait 30 minutes before placement", out.Description)
	// 40 + 30*0.5 = 55
	assert.InDelta(t, 55.0, out.PredictedCapacity, 1e-9)
	assert.Equal(t, 10, out.PredictedBedWait)
	assert.Equal(t, 0.7, out.ProbabilityOfBetterOutcome)
	assert.Contains(t, out.ExpectedBenefits, "Capacity expected to improve")
	assert.Contains(t, out.ExpectedBenefits, "Better bed options likely")
	assert.Equal(t, RiskLow, out.RiskLevel)
	assert.True(t, out.IsFavorable())
}

func TestSimulateWaitZeroMinutes(t *testing.T) {
	s := newSimulator()
	out := s.SimulateWait(35, mcda.EvaluationContext{}, 0, TrendStable)

	assert.Equal(t, RiskLow, out.RiskLevel)
	assert.Contains(t, out.ExpectedBenefits, "Immediate action")
	assert.Contains(t, out.ExpectedRisks, "Current capacity constraints")
}

func TestSimulateWaitHighAcuityLongWait(t *testing.T) {
	s := newSimulator()
	ctx := mcda.EvaluationContext{
		Patient: mcda.PatientContext{AcuityLevel: acuityPtr(models.AcuityEmergent)},
		Risk:    &mcda.RiskContext{RiskScore: 60, Trajectory: risk.TrendStable},
	}

	out := s.SimulateWait(50, ctx, 30, TrendStable)

	assert.Equal(t, RiskHigh, out.RiskLevel)
	assert.Contains(t, out.ExpectedRisks, "Delayed care for high-acuity patient")
	assert.False(t, out.IsFavorable())
}

func TestSimulateWaitDeterioratingForcesHighRisk(t *testing.T) {
	s := newSimulator()
	ctx := mcda.EvaluationContext{
		Patient: mcda.PatientContext{AcuityLevel: acuityPtr(models.AcuityNonUrgent)},
		Risk:    &mcda.RiskContext{RiskScore: 20, Trajectory: risk.TrendDeteriorating},
	}

	out := s.SimulateWait(60, ctx, 15, TrendImproving)

	assert.Equal(t, RiskHigh, out.RiskLevel)
	assert.Contains(t, out.ExpectedRisks, "Patient condition may worsen")
	// 0.7 - 0.3
	assert.InDelta(t, 0.4, out.ProbabilityOfBetterOutcome, 1e-9)
}

func TestSimulateWaitRapidDeteriorationUnadjusted(t *testing.T) {
	s := newSimulator()
	ctx := mcda.EvaluationContext{
		Patient: mcda.PatientContext{AcuityLevel: acuityPtr(models.AcuityNonUrgent)},
		Risk:    &mcda.RiskContext{RiskScore: 20, Trajectory: risk.TrendRapidDeterioration},
	}

	out := s.SimulateWait(60, ctx, 15, TrendImproving)

	assert.NotEqual(t, RiskHigh, out.RiskLevel)
	assert.NotContains(t, out.ExpectedRisks, "Patient condition may worsen")
	assert.InDelta(t, 0.7, out.ProbabilityOfBetterOutcome, 1e-9)
}

func TestSimulateWaitDecliningCapacityFloors(t *testing.T) {
	s := newSimulator()
	out := s.SimulateWait(10, mcda.EvaluationContext{}, 60, TrendDeclining)

	assert.Equal(t, 0.0, out.PredictedCapacity)
	assert.Equal(t, 45, out.PredictedBedWait)
	assert.Equal(t, 0.3, out.ProbabilityOfBetterOutcome)
}

func TestSimulatePlacements(t *testing.T) {
	s := newSimulator()
	patient := mcda.PatientContext{
		AcuityLevel:       acuityPtr(models.AcuityUrgent),
		WaitTimeMinutes:   floatPtr(45),
		IsolationRequired: true,
	}
	riskCtx := &mcda.RiskContext{RiskScore: 55, Trajectory: risk.TrendStable}

	soon := time.Now().Add(25 * time.Minute)
	units := []mcda.CapacityContext{
		{Unit: models.UnitICU, CapacityScore: floatPtr(75), CurrentOccupancy: floatPtr(0.95), IsolationBeds: true},
		{Unit: models.UnitWard, CapacityScore: floatPtr(40), CurrentOccupancy: floatPtr(0.8)},
		{Unit: models.UnitED, CapacityScore: floatPtr(10), PredictedAvailability: &soon},
	}

	options := s.SimulatePlacements(patient, riskCtx, units)

	assert.Len(t, options, 3)
	// ICU is the only immediately available unit and ranks first
	assert.Equal(t, models.UnitICU, options[0].Unit)
	assert.Equal(t, StatusAvailable, options[0].Status)
	assert.Equal(t, 0, options[0].EstimatedWaitMinutes)
	assert.Contains(t, options[0].Constraints, "High occupancy")
	assert.Equal(t, "place_icu", options[0].OptionID)

	for _, o := range options {
		switch o.Unit {
		case models.UnitWard:
			assert.Equal(t, StatusConstrained, o.Status)
			assert.Equal(t, 15, o.EstimatedWaitMinutes)
			assert.False(t, o.IsViable())
			assert.Equal(t, 0.0, o.ViabilityScore())
			assert.Contains(t, o.Constraints, "No isolation beds available")
		case models.UnitED:
			assert.Equal(t, StatusPending, o.Status)
			assert.Equal(t, 30, o.EstimatedWaitMinutes)
			assert.True(t, o.IsViable())
		}
	}
}

func TestViabilityScorePenalties(t *testing.T) {
	scores := mcda.Scores{Composite: 80}

	t.Run("non viable is zero", func(t *testing.T) {
		o := PlacementOption{Status: StatusUnavailable, Scores: &scores}
		assert.Equal(t, 0.0, o.ViabilityScore())
	})

	t.Run("wait penalty", func(t *testing.T) {
		o := PlacementOption{Status: StatusAvailable, Scores: &scores, EstimatedWaitMinutes: 45}
		assert.InDelta(t, 68.0, o.ViabilityScore(), 1e-9)
	})

	t.Run("constraint penalty floored at half", func(t *testing.T) {
		o := PlacementOption{
			Status:      StatusAvailable,
			Scores:      &scores,
			Constraints: []string{"a", "b", "c", "d", "e", "f", "g"},
		}
		assert.InDelta(t, 40.0, o.ViabilityScore(), 1e-9)
	})

	t.Run("no scores defaults to fifty", func(t *testing.T) {
		o := PlacementOption{Status: StatusAvailable}
		assert.Equal(t, 50.0, o.ViabilityScore())
	})
}

func TestRunTimingAnalysis(t *testing.T) {
	s := newSimulator()

	t.Run("default wait times", func(t *testing.T) {
		ctx := mcda.EvaluationContext{
			Capacity: mcda.CapacityContext{CapacityScore: floatPtr(60)},
		}
		outcomes := s.RunTimingAnalysis(ctx, nil)
		assert.Len(t, outcomes, 4)
		assert.Equal(t, 0, outcomes[0].WaitTimeMinutes)
		assert.Equal(t, 60, outcomes[3].WaitTimeMinutes)
	})

	t.Run("predicted availability means improving", func(t *testing.T) {
		soon := time.Now().Add(10 * time.Minute)
		ctx := mcda.EvaluationContext{
			Capacity: mcda.CapacityContext{CapacityScore: floatPtr(60), PredictedAvailability: &soon},
		}
		outcomes := s.RunTimingAnalysis(ctx, []int{15})
		assert.Equal(t, 0.7, outcomes[0].ProbabilityOfBetterOutcome)
	})

	t.Run("low capacity means declining", func(t *testing.T) {
		ctx := mcda.EvaluationContext{
			Capacity: mcda.CapacityContext{CapacityScore: floatPtr(20)},
		}
		outcomes := s.RunTimingAnalysis(ctx, []int{15})
		assert.Equal(t, 0.3, outcomes[0].ProbabilityOfBetterOutcome)
	})
}
