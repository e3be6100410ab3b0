package risk

import (
	"fmt"
	"time"
)

// TrendDirection labels which way a patient's condition is moving
type TrendDirection string

// Trend directions
const (
	TrendImproving          TrendDirection = "improving"
	TrendStable             TrendDirection = "stable"
	TrendDeteriorating      TrendDirection = "deteriorating"
	TrendRapidDeterioration TrendDirection = "rapid_deterioration"
)

// ParseTrendDirection validates a raw trend string at the boundary.
func ParseTrendDirection(s string) (TrendDirection, error) {
	switch TrendDirection(s) {
	case TrendImproving, TrendStable, TrendDeteriorating, TrendRapidDeterioration:
		return TrendDirection(s), nil
	}
	return "", fmt.Errorf("unknown trend direction: %q", s)
}

// Level is the risk category derived from a 0-100 risk score
type Level string

// Risk levels: low 0-30, moderate 31-60, high 61-80, critical 81-100
const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Vital sign channel names used throughout trend analysis
const (
	ChannelSpO2            = "spo2"
	ChannelHeartRate       = "heart_rate"
	ChannelSystolicBP      = "systolic_bp"
	ChannelRespiratoryRate = "respiratory_rate"
	ChannelTemperature     = "temperature"
)

// VitalTrend is the per-channel trend record produced on every assessment
type VitalTrend struct {
	CurrentValue  float64        `json:"currentValue"`
	PreviousValue *float64       `json:"previousValue,omitempty"`
	ChangeRate    float64        `json:"changeRate"`
	Direction     TrendDirection `json:"direction"`
	OutOfRange    bool           `json:"outOfRange"`
	Critical      bool           `json:"critical"`
}

// FactorBreakdown itemizes the bounded components of a risk score.
// Each component stays within its declared bound; the total never exceeds 100.
type FactorBreakdown struct {
	VitalSignsScore    float64 `json:"vitalSignsScore" bson:"vitalSignsScore"`       // max 40
	DeteriorationScore float64 `json:"deteriorationScore" bson:"deteriorationScore"` // max 30
	ComorbidityScore   float64 `json:"comorbidityScore" bson:"comorbidityScore"`     // max 15
	AcuityScore        float64 `json:"acuityScore" bson:"acuityScore"`               // max 15
}

// TotalScore sums the components, capped at 100
func (b FactorBreakdown) TotalScore() float64 {
	total := b.VitalSignsScore + b.DeteriorationScore + b.ComorbidityScore + b.AcuityScore
	if total > 100 {
		return 100
	}
	return total
}

// Assessment is the complete risk assessment output, immutable once created.
// This is the contract the rest of the decision pipeline consumes.
type Assessment struct {
	PatientID string    `json:"patientId" bson:"patientId"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`

	RiskScore float64        `json:"riskScore" bson:"riskScore"`
	RiskLevel Level          `json:"riskLevel" bson:"riskLevel"`
	Trend     TrendDirection `json:"trend" bson:"trend"`

	Breakdown   FactorBreakdown       `json:"riskBreakdown" bson:"riskBreakdown"`
	VitalTrends map[string]VitalTrend `json:"vitalTrends" bson:"vitalTrends"`

	NeedsEscalation  bool     `json:"needsEscalation" bson:"needsEscalation"`
	EscalationReason string   `json:"escalationReason,omitempty" bson:"escalationReason,omitempty"`
	CriticalVitals   []string `json:"criticalVitals" bson:"criticalVitals"`

	MinutesSinceAdmission int     `json:"minutesSinceAdmission" bson:"minutesSinceAdmission"`
	PreviousRiskScore     float64 `json:"previousRiskScore" bson:"previousRiskScore"`
	RiskScoreDelta        float64 `json:"riskScoreDelta" bson:"riskScoreDelta"`

	// Minutes between recommended vitals checks
	MonitoringFrequency int `json:"recommendedMonitoringFrequency" bson:"recommendedMonitoringFrequency"`
}

// IsHighRisk reports whether the patient is in the high or critical band
func (a *Assessment) IsHighRisk() bool {
	return a.RiskLevel == LevelHigh || a.RiskLevel == LevelCritical
}

// IsDeteriorating reports whether the patient trend is downward
func (a *Assessment) IsDeteriorating() bool {
	return a.Trend == TrendDeteriorating || a.Trend == TrendRapidDeterioration
}

// maxHistory caps the number of assessments retained per patient
const maxHistory = 50

// History is the bounded, ordered assessment history for one patient.
// Oldest assessments are evicted first once the cap is reached.
type History struct {
	PatientID   string
	Assessments []Assessment
}

func (h *History) add(a Assessment) {
	h.Assessments = append(h.Assessments, a)
	if len(h.Assessments) > maxHistory {
		h.Assessments = h.Assessments[1:]
	}
}

// Latest returns the most recent assessment, or nil if none exist
func (h *History) Latest() *Assessment {
	if len(h.Assessments) == 0 {
		return nil
	}
	return &h.Assessments[len(h.Assessments)-1]
}

// Trajectory returns the risk score series, oldest first
func (h *History) Trajectory() []float64 {
	scores := make([]float64, len(h.Assessments))
	for i, a := range h.Assessments {
		scores[i] = a.RiskScore
	}
	return scores
}
