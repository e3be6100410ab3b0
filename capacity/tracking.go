package capacity

import (
	"time"

	"github.com/adaptivecare/adaptivecare-api/models"
)

// assessmentConfidence is the baseline confidence attached to tracker-derived
// assessments.
const assessmentConfidence = 0.85

// TrackingSystem is the unified capacity view: beds, staff, and availability
// prediction behind one interface.
type TrackingSystem struct {
	Beds      *BedTracker
	Staff     *StaffTracker
	Predictor *Predictor

	now func() time.Time
}

// NewTrackingSystem wires the trackers and predictor on the wall clock.
func NewTrackingSystem() *TrackingSystem {
	return NewTrackingSystemWithClock(time.Now)
}

// NewTrackingSystemWithClock is NewTrackingSystem with a caller-supplied clock.
func NewTrackingSystemWithClock(now func() time.Time) *TrackingSystem {
	beds := NewBedTrackerWithClock(now)
	return &TrackingSystem{
		Beds:      beds,
		Staff:     NewStaffTracker(),
		Predictor: NewPredictorWithClock(beds, now),
		now:       now,
	}
}

// UnitAssessment produces the complete capacity snapshot for one unit.
func (s *TrackingSystem) UnitAssessment(unit models.UnitType) models.CapacityAssessment {
	uc := s.Beds.UnitCapacity(unit)
	uc.StaffOnDuty = s.Staff.UnitMetrics(unit).StaffCount

	predicted := s.Predictor.NextAvailable(unit)
	return NewAssessment(uc, predicted, s.now())
}

// AllAssessments snapshots every tracked unit.
func (s *TrackingSystem) AllAssessments() map[models.UnitType]models.CapacityAssessment {
	assessments := make(map[models.UnitType]models.CapacityAssessment)
	for _, unit := range s.Beds.TrackedUnits() {
		assessments[unit] = s.UnitAssessment(unit)
	}
	return assessments
}

// NewAssessment scores a unit's capacity 0-100: up to 50 points for bed
// availability and up to 50 for staffing adequacy, naming the bottleneck
// when one dominates.
func NewAssessment(uc models.UnitCapacity, predictedAvailability *time.Time, at time.Time) models.CapacityAssessment {
	bedScore := (1 - uc.OccupancyRate()) * 50

	adequacy := uc.StaffAdequacy()
	if adequacy > 1.5 {
		adequacy = 1.5
	}
	staffScore := adequacy / 1.5 * 50

	var bottleneck string
	if uc.OccupancyRate() > 0.9 {
		bottleneck = "High bed occupancy"
	} else if uc.StaffAdequacy() < 0.7 {
		bottleneck = "Staff shortage"
	}

	return models.CapacityAssessment{
		Unit:                  uc.Unit,
		CurrentOccupancy:      uc.OccupancyRate(),
		StaffRatio:            uc.CurrentStaffRatio(),
		CapacityScore:         bedScore + staffScore,
		PredictedAvailability: predictedAvailability,
		Timestamp:             at,
		Confidence:            assessmentConfidence,
		AvailableBedCount:     uc.AvailableBeds,
		TotalBedCount:         uc.TotalBeds,
		StaffOnDuty:           uc.StaffOnDuty,
		BottleneckReason:      bottleneck,
	}
}
