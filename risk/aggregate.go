package risk

import (
	"fmt"
	"strings"

	"github.com/adaptivecare/adaptivecare-api/models"
)

// highRiskComorbidities is the fixed set of conditions weighted extra in
// the comorbidity score.
var highRiskComorbidities = map[string]bool{
	"CAD":            true,
	"CHF":            true,
	"COPD":           true,
	"CKD":            true,
	"Previous MI":    true,
	"Stroke history": true,
}

// ComorbidityScore scores a patient's comorbidity burden, bounded to 0-15.
func ComorbidityScore(comorbidities []string, factors models.RiskFactors) float64 {
	base := float64(len(comorbidities)) * 2
	if base > 10 {
		base = 10
	}

	highRisk := 0.0
	for _, c := range comorbidities {
		if highRiskComorbidities[c] {
			highRisk++
		}
	}

	score := base + highRisk + factors.ComorbidityScore*5
	if score > 15 {
		return 15
	}
	return score
}

// AcuityScore maps triage acuity to its risk contribution, bounded to 0-15.
func AcuityScore(acuity models.AcuityLevel) float64 {
	switch acuity {
	case models.AcuityResuscitation:
		return 15
	case models.AcuityEmergent:
		return 12
	case models.AcuityUrgent:
		return 8
	case models.AcuityLessUrgent:
		return 4
	case models.AcuityNonUrgent:
		return 0
	default:
		return 8
	}
}

// LevelForScore buckets a 0-100 risk score into its risk level.
func LevelForScore(score float64) Level {
	switch {
	case score >= 81:
		return LevelCritical
	case score >= 61:
		return LevelHigh
	case score >= 31:
		return LevelModerate
	default:
		return LevelLow
	}
}

// OverallTrend derives the patient-level trend from the per-channel trends
// and the change in risk score since the previous assessment.
func OverallTrend(trends map[string]VitalTrend, scoreDelta float64) TrendDirection {
	rapid := 0
	deteriorating := 0
	improving := 0
	for _, t := range trends {
		switch t.Direction {
		case TrendRapidDeterioration:
			rapid++
		case TrendDeteriorating:
			deteriorating++
		case TrendImproving:
			improving++
		}
	}

	switch {
	case rapid > 0 || deteriorating >= 3:
		return TrendRapidDeterioration
	case deteriorating >= 2 || scoreDelta > 10:
		return TrendDeteriorating
	case improving >= 3 || scoreDelta < -10:
		return TrendImproving
	default:
		return TrendStable
	}
}

// ShouldEscalate decides whether an assessment warrants immediate clinical
// escalation, and why. Rules are checked in priority order; the first match wins.
func ShouldEscalate(score float64, trend TrendDirection, criticalVitals []string) (bool, string) {
	if score >= 85 {
		return true, fmt.Sprintf("Critical risk score: %.1f", score)
	}
	if trend == TrendRapidDeterioration {
		return true, "Rapid clinical deterioration detected"
	}
	if len(criticalVitals) >= 2 {
		return true, "Multiple critical vitals: " + strings.Join(criticalVitals, ", ")
	}
	if len(criticalVitals) == 1 && trend == TrendDeteriorating {
		return true, "Critical " + criticalVitals[0] + " with ongoing deterioration"
	}
	return false, ""
}

// MonitoringFrequency recommends minutes between vitals checks.
func MonitoringFrequency(level Level, trend TrendDirection) int {
	if level == LevelCritical || trend == TrendRapidDeterioration {
		return 5
	}
	if level == LevelHigh || trend == TrendDeteriorating {
		return 10
	}
	if level == LevelModerate {
		return 15
	}
	return 30
}
