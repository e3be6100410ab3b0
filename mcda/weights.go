package mcda

import (
	"fmt"
	"math"
)

// Weights holds the relative importance of each decision criterion.
// A valid set sums to 1.0.
type Weights struct {
	PatientSafety    float64 `json:"patientSafety"`
	Urgency          float64 `json:"urgency"`
	ResourceCapacity float64 `json:"resourceCapacity"`
	FlowImpact       float64 `json:"flowImpact"`
}

// Named weight profiles for common operating conditions.
const (
	ProfileDefault      = "default"
	ProfileEmergency    = "emergency"
	ProfileRoutine      = "routine"
	ProfileOvercrowding = "overcrowding"
)

// DefaultWeights is the balanced profile used when no condition applies.
func DefaultWeights() Weights {
	return Weights{PatientSafety: 0.35, Urgency: 0.30, ResourceCapacity: 0.20, FlowImpact: 0.15}
}

// EmergencyWeights biases heavily toward safety and urgency.
func EmergencyWeights() Weights {
	return Weights{PatientSafety: 0.45, Urgency: 0.35, ResourceCapacity: 0.12, FlowImpact: 0.08}
}

// RoutineWeights favors capacity and flow when nothing is time-critical.
func RoutineWeights() Weights {
	return Weights{PatientSafety: 0.25, Urgency: 0.20, ResourceCapacity: 0.30, FlowImpact: 0.25}
}

// OvercrowdingWeights raises capacity weight during census pressure.
func OvercrowdingWeights() Weights {
	return Weights{PatientSafety: 0.30, Urgency: 0.25, ResourceCapacity: 0.30, FlowImpact: 0.15}
}

// WeightsForProfile resolves a named profile, failing on unknown names.
func WeightsForProfile(name string) (Weights, error) {
	switch name {
	case ProfileDefault, "":
		return DefaultWeights(), nil
	case ProfileEmergency:
		return EmergencyWeights(), nil
	case ProfileRoutine:
		return RoutineWeights(), nil
	case ProfileOvercrowding:
		return OvercrowdingWeights(), nil
	}
	return Weights{}, fmt.Errorf("unknown weight profile: %q", name)
}

// Sum is the total of all four weights.
func (w Weights) Sum() float64 {
	return w.PatientSafety + w.Urgency + w.ResourceCapacity + w.FlowImpact
}

// Normalized returns weights rescaled to sum to 1.0. Weights already within
// tolerance are returned unchanged.
func (w Weights) Normalized() Weights {
	sum := w.Sum()
	if sum == 0 {
		return DefaultWeights()
	}
	if math.Abs(sum-1.0) <= 0.01 {
		return w
	}
	return Weights{
		PatientSafety:    w.PatientSafety / sum,
		Urgency:          w.Urgency / sum,
		ResourceCapacity: w.ResourceCapacity / sum,
		FlowImpact:       w.FlowImpact / sum,
	}
}
