package decision

import (
	"strings"

	"github.com/adaptivecare/adaptivecare-api/mcda"
	"github.com/adaptivecare/adaptivecare-api/risk"
)

// WaitAssessment is the answer to "can this patient safely wait, and for
// how long".
type WaitAssessment struct {
	SafeToWait         bool    `json:"safeToWait" bson:"safeToWait"`
	WaitProbability    float64 `json:"waitProbability" bson:"waitProbability"`
	RecommendedWaitMin int     `json:"recommendedWaitMin" bson:"recommendedWaitMin"`
	RecommendedWaitMax int     `json:"recommendedWaitMax" bson:"recommendedWaitMax"`
	RiskIfWaiting      string  `json:"riskIfWaiting" bson:"riskIfWaiting"`
	BenefitOfWaiting   string  `json:"benefitOfWaiting" bson:"benefitOfWaiting"`
}

// AssessWait computes the probability that waiting is safe from the scored
// criteria and context, then derives the recommended window and narratives.
func AssessWait(ctx mcda.EvaluationContext, scores mcda.Scores) WaitAssessment {
	p := 0.5*(1-scores.Urgency/100) + 0.5*(1-scores.PatientSafety/100)

	if ctx.Capacity.PredictedAvailability != nil {
		p += 0.15
	}
	if ctx.Risk != nil {
		switch ctx.Risk.Trajectory {
		case risk.TrendDeteriorating:
			p -= 0.3
		case risk.TrendImproving:
			p += 0.1
		}
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	a := WaitAssessment{
		WaitProbability: p,
		SafeToWait:      p >= 0.5,
	}

	switch {
	case p >= 0.6:
		a.RecommendedWaitMin, a.RecommendedWaitMax = 15, 30
	case p >= 0.4:
		a.RecommendedWaitMin, a.RecommendedWaitMax = 5, 15
	default:
		a.RecommendedWaitMin, a.RecommendedWaitMax = 0, 5
	}

	a.RiskIfWaiting = waitRisks(ctx, scores)
	a.BenefitOfWaiting = waitBenefits(ctx)
	return a
}

func waitRisks(ctx mcda.EvaluationContext, scores mcda.Scores) string {
	var risks []string
	if scores.PatientSafety > 70 {
		risks = append(risks, "patient safety concerns")
	}
	if scores.Urgency > 70 {
		risks = append(risks, "time-sensitive condition")
	}
	if ctx.Risk != nil && ctx.Risk.Trajectory == risk.TrendDeteriorating {
		risks = append(risks, "declining patient status")
	}
	if ctx.Patient.BoardingInED {
		risks = append(risks, "ED boarding stress")
	}
	if len(risks) == 0 {
		return "Low risk if waiting briefly"
	}
	return "Risks include: " + strings.Join(risks, ", ")
}

func waitBenefits(ctx mcda.EvaluationContext) string {
	var benefits []string
	if ctx.Capacity.PredictedAvailability != nil {
		benefits = append(benefits, "bed expected to become available soon")
	}
	if ctx.Capacity.StaffRatio != nil && *ctx.Capacity.StaffRatio > 0.8 {
		benefits = append(benefits, "staffing levels may improve")
	}
	if len(benefits) == 0 {
		return "Limited benefit to waiting"
	}
	return "Benefits: " + strings.Join(benefits, ", ")
}
