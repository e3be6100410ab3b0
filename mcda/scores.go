package mcda

// PriorityLevel buckets a composite score for downstream routing
type PriorityLevel string

// Priority levels: composite >=80 critical, >=60 high, >=40 medium, else low
const (
	PriorityCritical PriorityLevel = "CRITICAL"
	PriorityHigh     PriorityLevel = "HIGH"
	PriorityMedium   PriorityLevel = "MEDIUM"
	PriorityLow      PriorityLevel = "LOW"
)

// Criterion names as reported in dominant-factor output
const (
	CriterionPatientSafety    = "patient_safety"
	CriterionUrgency          = "urgency"
	CriterionResourceCapacity = "resource_capacity"
	CriterionFlowImpact       = "flow_impact"
)

// Scores holds the four criterion scores (each 0-100), their weighted
// composite, and the weights that produced it, so a stored result stays
// reproducible on its own.
type Scores struct {
	PatientSafety    float64 `json:"patientSafety" bson:"patientSafety"`
	Urgency          float64 `json:"urgency" bson:"urgency"`
	ResourceCapacity float64 `json:"resourceCapacity" bson:"resourceCapacity"`
	FlowImpact       float64 `json:"flowImpact" bson:"flowImpact"`
	Composite        float64 `json:"composite" bson:"composite"`
	Weights          Weights `json:"weightsUsed" bson:"weightsUsed"`
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// NewScores clamps each criterion into 0-100 and computes the composite
// under the given weights.
func NewScores(safety, urgency, capacity, flow float64, w Weights) Scores {
	s := Scores{
		PatientSafety:    clampScore(safety),
		Urgency:          clampScore(urgency),
		ResourceCapacity: clampScore(capacity),
		FlowImpact:       clampScore(flow),
		Weights:          w,
	}
	s.Composite = s.PatientSafety*w.PatientSafety +
		s.Urgency*w.Urgency +
		s.ResourceCapacity*w.ResourceCapacity +
		s.FlowImpact*w.FlowImpact
	return s
}

// Priority buckets the composite score.
func (s Scores) Priority() PriorityLevel {
	switch {
	case s.Composite >= 80:
		return PriorityCritical
	case s.Composite >= 60:
		return PriorityHigh
	case s.Composite >= 40:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// DominantFactor names the criterion contributing the most weighted score,
// under the weights the scores were computed with.
func (s Scores) DominantFactor() string {
	contributions := []struct {
		name  string
		value float64
	}{
		{CriterionPatientSafety, s.PatientSafety * s.Weights.PatientSafety},
		{CriterionUrgency, s.Urgency * s.Weights.Urgency},
		{CriterionResourceCapacity, s.ResourceCapacity * s.Weights.ResourceCapacity},
		{CriterionFlowImpact, s.FlowImpact * s.Weights.FlowImpact},
	}

	dominant := contributions[0]
	for _, c := range contributions[1:] {
		if c.value > dominant.value {
			dominant = c
		}
	}
	return dominant.name
}

// AsMap returns the criterion scores keyed by criterion name.
func (s Scores) AsMap() map[string]float64 {
	return map[string]float64{
		CriterionPatientSafety:    s.PatientSafety,
		CriterionUrgency:          s.Urgency,
		CriterionResourceCapacity: s.ResourceCapacity,
		CriterionFlowImpact:       s.FlowImpact,
	}
}
