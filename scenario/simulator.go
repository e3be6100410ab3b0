package scenario

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adaptivecare/adaptivecare-api/mcda"
	"github.com/adaptivecare/adaptivecare-api/risk"
)

// CapacityTrend is the expected direction of capacity change while waiting
type CapacityTrend string

// Capacity trends
const (
	TrendImproving CapacityTrend = "improving"
	TrendStable    CapacityTrend = "stable"
	TrendDeclining CapacityTrend = "declining"
)

// DefaultWaitTimes are the wait windows evaluated when none are requested.
var DefaultWaitTimes = []int{0, 15, 30, 60}

// Simulator answers what-if questions about placement timing and destination.
type Simulator struct {
	mcda *mcda.Engine
}

// NewSimulator builds a simulator on the given MCDA engine.
func NewSimulator(engine *mcda.Engine) *Simulator {
	return &Simulator{mcda: engine}
}

// SimulateWait predicts the outcome of waiting the given number of minutes
// before placement, under the expected capacity trend.
func (s *Simulator) SimulateWait(currentCapacity float64, ctx mcda.EvaluationContext, waitMinutes int, trend CapacityTrend) Outcome {
	var predicted float64
	var probBetter float64
	switch trend {
	case TrendImproving:
		predicted = currentCapacity + float64(waitMinutes)*0.5
		probBetter = 0.7
	case TrendDeclining:
		predicted = currentCapacity - float64(waitMinutes)*0.3
		probBetter = 0.3
	default:
		// stable drifts slightly upward as discharges free beds
		predicted = currentCapacity + float64(waitMinutes)*0.15
		probBetter = 0.5
	}
	if predicted > 100 {
		predicted = 100
	}
	if predicted < 0 {
		predicted = 0
	}

	acuity := 3
	if ctx.Patient.AcuityLevel != nil {
		acuity = int(*ctx.Patient.AcuityLevel)
	}
	riskScore := 50.0
	if ctx.Risk != nil {
		riskScore = ctx.Risk.RiskScore
	}

	var riskLevel RiskBand
	switch {
	case waitMinutes == 0:
		riskLevel = RiskLow
	case acuity >= 4 || riskScore >= 70:
		if waitMinutes > 15 {
			riskLevel = RiskHigh
		} else {
			riskLevel = RiskMedium
		}
	case acuity >= 3 || riskScore >= 50:
		if waitMinutes > 30 {
			riskLevel = RiskMedium
		} else {
			riskLevel = RiskLow
		}
	default:
		if waitMinutes <= 60 {
			riskLevel = RiskLow
		} else {
			riskLevel = RiskMedium
		}
	}

	var bedWait int
	switch {
	case predicted >= 70:
		bedWait = 0
	case predicted >= 50:
		bedWait = 10
	case predicted >= 30:
		bedWait = 20
	default:
		bedWait = 45
	}

	benefits := []string{}
	risks := []string{}

	if trend == TrendImproving && waitMinutes > 0 {
		benefits = append(benefits, "Capacity expected to improve")
		if predicted > currentCapacity+10 {
			benefits = append(benefits, "Better bed options likely")
		}
	}

	if waitMinutes > 0 {
		if ctx.Risk != nil && ctx.Risk.Trajectory == risk.TrendDeteriorating {
			risks = append(risks, "Patient condition may worsen")
			riskLevel = RiskHigh
			probBetter -= 0.3
			if probBetter < 0.1 {
				probBetter = 0.1
			}
		}
		if ctx.Patient.BoardingInED {
			risks = append(risks, "Extended ED boarding")
		}
		if acuity >= 4 {
			risks = append(risks, "Delayed care for high-acuity patient")
		}
	} else {
		benefits = append(benefits, "Immediate action")
		if currentCapacity < 50 {
			risks = append(risks, "Current capacity constraints")
		}
	}

	return Outcome{
		ScenarioID:                 fmt.Sprintf("wait_%dmin", waitMinutes),
		Description:                fmt.Sprintf("Wait %d minutes before placement", waitMinutes),
		WaitTimeMinutes:            waitMinutes,
		PredictedCapacity:          predicted,
		PredictedBedWait:           bedWait,
		RiskLevel:                  riskLevel,
		ExpectedBenefits:           benefits,
		ExpectedRisks:              risks,
		ProbabilityOfBetterOutcome: probBetter,
	}
}

// SimulatePlacements evaluates placing the patient in each candidate unit
// and returns the options ranked by viability, best first.
func (s *Simulator) SimulatePlacements(patient mcda.PatientContext, riskCtx *mcda.RiskContext, units []mcda.CapacityContext) []PlacementOption {
	options := make([]PlacementOption, 0, len(units))

	for _, unit := range units {
		capacityScore := 50.0
		if unit.CapacityScore != nil {
			capacityScore = *unit.CapacityScore
		}

		scores := s.mcda.CalculateFromContext(mcda.EvaluationContext{
			Patient:  patient,
			Risk:     riskCtx,
			Capacity: unit,
		})

		var status PlacementStatus
		var wait int
		switch {
		case capacityScore >= 50:
			status, wait = StatusAvailable, 0
		case capacityScore >= 30:
			status, wait = StatusConstrained, 15
		case unit.PredictedAvailability != nil:
			status, wait = StatusPending, 30
		default:
			status, wait = StatusUnavailable, 60
		}

		constraints := []string{}
		if unit.CurrentOccupancy != nil && *unit.CurrentOccupancy > 0.9 {
			constraints = append(constraints, "High occupancy")
		}
		if unit.StaffRatio != nil && *unit.StaffRatio > 5 {
			constraints = append(constraints, "Low staffing")
		}
		if patient.IsolationRequired && !unit.IsolationBeds {
			constraints = append(constraints, "No isolation beds available")
		}

		staffRatio := 1.0
		if unit.StaffRatio != nil {
			staffRatio = *unit.StaffRatio
		}

		options = append(options, PlacementOption{
			OptionID:             "place_" + strings.ToLower(string(unit.Unit)),
			Unit:                 unit.Unit,
			Status:               status,
			Scores:               &scores,
			CapacityScore:        capacityScore,
			StaffRatio:           staffRatio,
			EstimatedWaitMinutes: wait,
			Constraints:          constraints,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].ViabilityScore() > options[j].ViabilityScore()
	})
	return options
}

// RunTimingAnalysis evaluates the standard wait windows, deriving the
// capacity trend from the capacity context.
func (s *Simulator) RunTimingAnalysis(ctx mcda.EvaluationContext, waitTimes []int) []Outcome {
	if len(waitTimes) == 0 {
		waitTimes = DefaultWaitTimes
	}

	currentScore := 50.0
	if ctx.Capacity.CapacityScore != nil {
		currentScore = *ctx.Capacity.CapacityScore
	}

	trend := TrendStable
	if ctx.Capacity.PredictedAvailability != nil {
		trend = TrendImproving
	} else if currentScore < 30 {
		trend = TrendDeclining
	}

	outcomes := make([]Outcome, 0, len(waitTimes))
	for _, wait := range waitTimes {
		outcomes = append(outcomes, s.SimulateWait(currentScore, ctx, wait, trend))
	}
	return outcomes
}
