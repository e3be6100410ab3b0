package capacity

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/adaptivecare/adaptivecare-api/models"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func seedUnit(t *BedTracker, unit models.UnitType, total, occupied int) {
	for i := 0; i < total; i++ {
		state := models.BedAvailable
		patientID := ""
		if i < occupied {
			state = models.BedOccupied
			patientID = fmt.Sprintf("P-%s-%d", unit, i+1)
		}
		t.Register(models.Bed{
			ID:              fmt.Sprintf("%s-%02d", unit, i+1),
			Unit:            unit,
			State:           state,
			PatientID:       patientID,
			LastStateChange: fixedNow,
		})
	}
}

func TestBedTrackerRegisterAndUpdate(t *testing.T) {
	tracker := NewBedTrackerWithClock(fixedClock)
	seedUnit(tracker, models.UnitICU, 10, 8)

	uc := tracker.UnitCapacity(models.UnitICU)
	assert.Equal(t, 10, uc.TotalBeds)
	assert.Equal(t, 8, uc.OccupiedBeds)
	assert.Equal(t, 2, uc.AvailableBeds)
	assert.InDelta(t, 0.8, uc.OccupancyRate(), 1e-9)

	ok := tracker.UpdateState("ICU-01", models.BedCleaning, "", nil)
	assert.True(t, ok)

	bed := tracker.Bed("ICU-01")
	assert.Equal(t, models.BedCleaning, bed.State)
	// patient link dropped when no longer occupied
	assert.Empty(t, bed.PatientID)
	assert.Equal(t, fixedNow, bed.LastStateChange)

	assert.False(t, tracker.UpdateState("ICU-99", models.BedCleaning, "", nil))
	assert.Nil(t, tracker.Bed("ICU-99"))
}

func TestBedTrackerReRegisterNoDuplicate(t *testing.T) {
	tracker := NewBedTrackerWithClock(fixedClock)
	bed := models.Bed{ID: "ED-01", Unit: models.UnitED, State: models.BedAvailable}
	tracker.Register(bed)
	tracker.Register(bed)

	assert.Len(t, tracker.UnitBeds(models.UnitED), 1)
}

func TestBedTrackerAvailableBeds(t *testing.T) {
	tracker := NewBedTrackerWithClock(fixedClock)
	seedUnit(tracker, models.UnitICU, 4, 3)
	seedUnit(tracker, models.UnitWard, 4, 1)

	assert.Len(t, tracker.AvailableBeds(models.UnitICU), 1)
	assert.Len(t, tracker.AvailableBeds(""), 4)
}

func TestStaffTrackerAssignments(t *testing.T) {
	tracker := NewStaffTracker()
	tracker.Register(models.StaffMember{
		ID: "RN-1", Name: "ICU Nurse 1", Role: "nurse",
		Unit: models.UnitICU, MaxPatients: 4,
	})
	tracker.Register(models.StaffMember{
		ID: "RN-2", Name: "ICU Nurse 2", Role: "nurse",
		Unit: models.UnitICU, MaxPatients: 4,
		AssignedPatients: []string{"p1", "p2", "p3"},
	})

	assert.True(t, tracker.AssignPatient("RN-1", "p9"))
	// double assignment is a no-op
	assert.True(t, tracker.AssignPatient("RN-1", "p9"))
	assert.False(t, tracker.AssignPatient("RN-9", "p9"))

	metrics := tracker.UnitMetrics(models.UnitICU)
	assert.Equal(t, 2, metrics.StaffCount)
	assert.Equal(t, 8, metrics.TotalCapacity)
	assert.Equal(t, 4, metrics.CurrentLoad)
	assert.Equal(t, 4, metrics.AvailableCapacity)
	assert.InDelta(t, 0.5, metrics.AverageWorkload, 1e-9)

	least := tracker.LeastLoaded(models.UnitICU)
	assert.Equal(t, "RN-1", least.ID)

	available := tracker.FindAvailable(models.UnitICU, 2)
	assert.Len(t, available, 1)
	assert.Equal(t, "RN-1", available[0].ID)

	assert.True(t, tracker.UnassignPatient("RN-2", "p1"))
	assert.Equal(t, 3, tracker.UnitMetrics(models.UnitICU).CurrentLoad)
}

func TestStaffTrackerEmptyUnit(t *testing.T) {
	tracker := NewStaffTracker()
	assert.Equal(t, StaffMetrics{}, tracker.UnitMetrics(models.UnitOR))
	assert.Nil(t, tracker.LeastLoaded(models.UnitOR))
}

func TestPredictorCleaningBedsFirst(t *testing.T) {
	tracker := NewBedTrackerWithClock(fixedClock)
	tracker.Register(models.Bed{
		ID: "ICU-01", Unit: models.UnitICU, State: models.BedCleaning,
		LastStateChange: fixedNow.Add(-10 * time.Minute),
	})
	tracker.Register(models.Bed{
		ID: "ICU-02", Unit: models.UnitICU, State: models.BedOccupied,
		LastStateChange: fixedNow,
	})

	p := NewPredictorWithClock(tracker, fixedClock)
	next := p.NextAvailable(models.UnitICU)

	assert.NotNil(t, next)
	// cleaning started 10 minutes ago, 30 minute turnaround
	assert.Equal(t, fixedNow.Add(20*time.Minute), *next)
}

func TestPredictorCleaningOverdueClampsToNow(t *testing.T) {
	tracker := NewBedTrackerWithClock(fixedClock)
	tracker.Register(models.Bed{
		ID: "ICU-01", Unit: models.UnitICU, State: models.BedCleaning,
		LastStateChange: fixedNow.Add(-2 * time.Hour),
	})

	p := NewPredictorWithClock(tracker, fixedClock)
	next := p.NextAvailable(models.UnitICU)

	assert.Equal(t, fixedNow, *next)
}

func TestPredictorExplicitEstimates(t *testing.T) {
	tracker := NewBedTrackerWithClock(fixedClock)
	later := fixedNow.Add(45 * time.Minute)
	sooner := fixedNow.Add(25 * time.Minute)
	tracker.Register(models.Bed{
		ID: "WARD-01", Unit: models.UnitWard, State: models.BedOccupied,
		LastStateChange: fixedNow, EstimatedAvailableAt: &later,
	})
	tracker.Register(models.Bed{
		ID: "WARD-02", Unit: models.UnitWard, State: models.BedOccupied,
		LastStateChange: fixedNow, EstimatedAvailableAt: &sooner,
	})

	p := NewPredictorWithClock(tracker, fixedClock)
	next := p.NextAvailable(models.UnitWard)

	assert.Equal(t, sooner, *next)
}

func TestPredictorLengthOfStayFallback(t *testing.T) {
	tracker := NewBedTrackerWithClock(fixedClock)
	seedUnit(tracker, models.UnitED, 3, 3)

	p := NewPredictorWithClock(tracker, fixedClock)
	next := p.NextAvailable(models.UnitED)

	// 10% of the 4 hour ED average stay
	assert.Equal(t, fixedNow.Add(24*time.Minute), *next)
}

func TestPredictorEmptyUnit(t *testing.T) {
	tracker := NewBedTrackerWithClock(fixedClock)
	p := NewPredictorWithClock(tracker, fixedClock)
	assert.Nil(t, p.NextAvailable(models.UnitPACU))
}

func TestPredictorAvailabilityWithin(t *testing.T) {
	tracker := NewBedTrackerWithClock(fixedClock)
	// cleaning bed finishing inside the window
	tracker.Register(models.Bed{
		ID: "ICU-01", Unit: models.UnitICU, State: models.BedCleaning,
		LastStateChange: fixedNow.Add(-15 * time.Minute),
	})
	// estimate inside the window
	soon := fixedNow.Add(30 * time.Minute)
	tracker.Register(models.Bed{
		ID: "ICU-02", Unit: models.UnitICU, State: models.BedOccupied,
		LastStateChange: fixedNow, EstimatedAvailableAt: &soon,
	})

	p := NewPredictorWithClock(tracker, fixedClock)
	count, confidence := p.AvailabilityWithin(models.UnitICU, time.Hour)
	assert.Equal(t, 2, count)
	assert.InDelta(t, 0.9, confidence, 1e-9)
}

func TestTrackingSystemAssessment(t *testing.T) {
	system := NewTrackingSystemWithClock(fixedClock)
	seedUnit(system.Beds, models.UnitICU, 10, 8)
	for i := 0; i < 2; i++ {
		system.Staff.Register(models.StaffMember{
			ID:   fmt.Sprintf("ICU-RN-%d", i+1),
			Unit: models.UnitICU, MaxPatients: 4,
			AssignedPatients: []string{"a", "b", "c", "d"},
		})
	}

	assessment := system.UnitAssessment(models.UnitICU)

	assert.Equal(t, models.UnitICU, assessment.Unit)
	assert.InDelta(t, 0.8, assessment.CurrentOccupancy, 1e-9)
	// 8 occupied / 2 staff
	assert.InDelta(t, 4.0, assessment.StaffRatio, 1e-9)
	// bed score (1-0.8)*50 = 10; staff adequacy 4/4 = 1.0 -> 1.0/1.5*50 = 33.33
	assert.InDelta(t, 43.33, assessment.CapacityScore, 0.01)
	assert.Equal(t, 2, assessment.AvailableBedCount)
	assert.Equal(t, 10, assessment.TotalBedCount)
	assert.Equal(t, 2, assessment.StaffOnDuty)
	assert.Equal(t, fixedNow, assessment.Timestamp)
	assert.Equal(t, 0.85, assessment.Confidence)
	assert.Empty(t, assessment.BottleneckReason)
	assert.NotNil(t, assessment.PredictedAvailability)
}

func TestAssessmentBottlenecks(t *testing.T) {
	t.Run("high occupancy", func(t *testing.T) {
		uc := models.UnitCapacity{
			Unit: models.UnitED, TotalBeds: 10, OccupiedBeds: 10,
			StaffOnDuty: 4, TargetStaffRatio: 4,
		}
		a := NewAssessment(uc, nil, fixedNow)
		assert.Equal(t, "High bed occupancy", a.BottleneckReason)
	})

	t.Run("staff shortage", func(t *testing.T) {
		uc := models.UnitCapacity{
			Unit: models.UnitWard, TotalBeds: 20, OccupiedBeds: 14,
			StaffOnDuty: 2, TargetStaffRatio: 4,
		}
		a := NewAssessment(uc, nil, fixedNow)
		// 14 patients over 2 staff is a 7:1 ratio against a 4:1 target
		assert.Equal(t, "Staff shortage", a.BottleneckReason)
	})
}

func TestTrackingSystemAllAssessments(t *testing.T) {
	system := NewTrackingSystemWithClock(fixedClock)
	seedUnit(system.Beds, models.UnitICU, 4, 2)
	seedUnit(system.Beds, models.UnitWard, 4, 1)

	all := system.AllAssessments()
	assert.Len(t, all, 2)
	assert.Contains(t, all, models.UnitICU)
	assert.Contains(t, all, models.UnitWard)
}
