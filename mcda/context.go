package mcda

import (
	"time"

	"github.com/adaptivecare/adaptivecare-api/models"
	"github.com/adaptivecare/adaptivecare-api/risk"
)

// PatientContext carries the patient-side inputs to an MCDA evaluation.
// Pointer fields are optional; a nil value means the datum is unavailable
// and is reported as a missing field by the uncertainty quantifier.
type PatientContext struct {
	PatientID       string
	AcuityLevel     *models.AcuityLevel
	WaitTimeMinutes *float64
	CurrentLocation models.Location
	PreferredUnit   models.UnitType

	IsEmergency           bool
	NeedsSurgery          bool
	TimeCriticalCondition bool
	RequiresMonitoring    bool
	IsolationRequired     bool
	BoardingInED          bool
	PendingProcedures     bool

	VitalsTimestamps []time.Time
}

// RiskContext carries the risk-assessment inputs, when an assessment exists.
type RiskContext struct {
	RiskScore  float64
	Trajectory risk.TrendDirection
}

// CapacityContext carries the capacity-side inputs for a candidate placement.
type CapacityContext struct {
	Unit                  models.UnitType
	CapacityScore         *float64
	CurrentOccupancy      *float64
	StaffRatio            *float64
	PredictedAvailability *time.Time
	IsolationBeds         bool
	AssessedAt            *time.Time
}

// EvaluationContext bundles everything one MCDA evaluation consumes.
// Risk is nil when no assessment has been performed yet.
type EvaluationContext struct {
	Patient  PatientContext
	Risk     *RiskContext
	Capacity CapacityContext
}

// capacityScoreOrDefault falls back to a neutral 50 when no capacity
// assessment is available.
func (c CapacityContext) capacityScoreOrDefault() float64 {
	if c.CapacityScore == nil {
		return 50
	}
	return *c.CapacityScore
}

// occupancyOrDefault assumes moderate census when occupancy is unknown.
func (c CapacityContext) occupancyOrDefault() float64 {
	if c.CurrentOccupancy == nil {
		return 0.7
	}
	return *c.CurrentOccupancy
}

// MissingFields lists the inputs the evaluation had to default, in a fixed
// order. Used for uncertainty scoring and surfaced on decision output.
func (ec *EvaluationContext) MissingFields() []string {
	var missing []string
	if ec.Patient.AcuityLevel == nil {
		missing = append(missing, "acuity_level")
	}
	if ec.Patient.WaitTimeMinutes == nil {
		missing = append(missing, "wait_time")
	}
	if ec.Risk == nil {
		missing = append(missing, "risk_assessment")
	}
	return missing
}
