package decision

import (
	"math"
	"strings"
	"time"

	"github.com/adaptivecare/adaptivecare-api/mcda"
)

// ConfidenceLevel buckets a 0-1 confidence value
type ConfidenceLevel string

// Confidence levels
const (
	ConfidenceHigh      ConfidenceLevel = "high"
	ConfidenceMedium    ConfidenceLevel = "medium"
	ConfidenceLow       ConfidenceLevel = "low"
	ConfidenceUncertain ConfidenceLevel = "uncertain"
)

// UncertaintyReport quantifies how much the decision inputs can be trusted.
type UncertaintyReport struct {
	DataCompleteness   float64         `json:"dataCompleteness" bson:"dataCompleteness"`
	TemporalFreshness  float64         `json:"temporalFreshness" bson:"temporalFreshness"`
	ModelUncertainty   float64         `json:"modelUncertainty" bson:"modelUncertainty"`
	Confidence         float64         `json:"confidence" bson:"confidence"`
	ConfidenceLevel    ConfidenceLevel `json:"confidenceLevel" bson:"confidenceLevel"`
	UncertaintyFactors []string        `json:"uncertaintyFactors" bson:"uncertaintyFactors"`
	MissingFields      []string        `json:"missingFields" bson:"missingFields"`
}

// Quantifier scores decision confidence. The clock is injectable so
// freshness decay is testable.
type Quantifier struct {
	now func() time.Time
}

// NewQuantifier builds a Quantifier on the wall clock.
func NewQuantifier() *Quantifier {
	return &Quantifier{now: time.Now}
}

// NewQuantifierWithClock builds a Quantifier with a caller-supplied clock.
func NewQuantifierWithClock(now func() time.Time) *Quantifier {
	return &Quantifier{now: now}
}

// Quantify scores the evaluation context and criterion scores for
// completeness, freshness, and model spread, then blends them into a
// single confidence value.
func (q *Quantifier) Quantify(ctx mcda.EvaluationContext, scores mcda.Scores) UncertaintyReport {
	report := UncertaintyReport{
		UncertaintyFactors: []string{},
		MissingFields:      ctx.MissingFields(),
	}

	report.DataCompleteness = completeness(report.MissingFields)
	if len(report.MissingFields) > 0 {
		report.UncertaintyFactors = append(report.UncertaintyFactors,
			"Missing data: "+strings.Join(report.MissingFields, ", "))
	}

	report.TemporalFreshness = q.freshness(ctx)
	if report.TemporalFreshness < 0.7 {
		report.UncertaintyFactors = append(report.UncertaintyFactors, "Some data sources are stale")
	}

	report.ModelUncertainty = modelUncertainty(scores)
	if report.ModelUncertainty > 0.3 {
		report.UncertaintyFactors = append(report.UncertaintyFactors, "High variance in MCDA criteria")
	}

	report.Confidence = 0.4*report.DataCompleteness +
		0.35*(1-report.ModelUncertainty) +
		0.25*report.TemporalFreshness
	report.ConfidenceLevel = levelFor(report.Confidence)

	return report
}

// completeness docks 0.15 per missing field, floored at 0.3.
func completeness(missing []string) float64 {
	c := 1.0 - 0.15*float64(len(missing))
	if c < 0.3 {
		return 0.3
	}
	return c
}

// freshness averages the decay of every known input timestamp.
// Readings under 5 minutes old are fully fresh; freshness falls linearly
// to 0.7 at 30 minutes and to 0.3 at 60 minutes, then stays at the floor.
func (q *Quantifier) freshness(ctx mcda.EvaluationContext) float64 {
	var timestamps []time.Time
	timestamps = append(timestamps, ctx.Patient.VitalsTimestamps...)
	if ctx.Capacity.AssessedAt != nil {
		timestamps = append(timestamps, *ctx.Capacity.AssessedAt)
	}
	if len(timestamps) == 0 {
		return 0.8
	}

	now := q.now()
	total := 0.0
	for _, ts := range timestamps {
		total += decay(now.Sub(ts))
	}
	return total / float64(len(timestamps))
}

func decay(age time.Duration) float64 {
	minutes := age.Minutes()
	switch {
	case minutes <= 5:
		return 1.0
	case minutes <= 30:
		return 1.0 - (minutes-5)/25*0.3
	case minutes <= 60:
		return 0.7 - (minutes-30)/30*0.4
	default:
		return 0.3
	}
}

// modelUncertainty maps the spread of the four criterion scores onto 0-1.
// Tightly clustered criteria mean the composite is robust to weight changes.
func modelUncertainty(scores mcda.Scores) float64 {
	values := []float64{scores.PatientSafety, scores.Urgency, scores.ResourceCapacity, scores.FlowImpact}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	u := math.Sqrt(variance) / 40
	if u > 1 {
		return 1
	}
	return u
}

func levelFor(confidence float64) ConfidenceLevel {
	switch {
	case confidence >= 0.8:
		return ConfidenceHigh
	case confidence >= 0.5:
		return ConfidenceMedium
	case confidence >= 0.2:
		return ConfidenceLow
	default:
		return ConfidenceUncertain
	}
}
