package capacity

import (
	"sync"
	"time"

	"github.com/adaptivecare/adaptivecare-api/models"
)

// defaultTargetStaffRatio is the target patients-per-staff ratio applied to
// every unit unless overridden.
const defaultTargetStaffRatio = 4.0

// BedTracker maintains the live view of beds across hospital units.
// Safe for concurrent use.
type BedTracker struct {
	mu         sync.RWMutex
	beds       map[string]*models.Bed
	bedsByUnit map[models.UnitType][]string

	now func() time.Time
}

// NewBedTracker builds a BedTracker on the wall clock.
func NewBedTracker() *BedTracker {
	return NewBedTrackerWithClock(time.Now)
}

// NewBedTrackerWithClock builds a BedTracker with a caller-supplied clock.
func NewBedTrackerWithClock(now func() time.Time) *BedTracker {
	return &BedTracker{
		beds:       make(map[string]*models.Bed),
		bedsByUnit: make(map[models.UnitType][]string),
		now:        now,
	}
}

// Register adds a bed to the tracker. Re-registering an ID replaces the
// bed without duplicating it in the unit index.
func (t *BedTracker) Register(bed models.Bed) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, known := t.beds[bed.ID]
	t.beds[bed.ID] = &bed
	if !known {
		t.bedsByUnit[bed.Unit] = append(t.bedsByUnit[bed.Unit], bed.ID)
	}
}

// UpdateState transitions a bed to a new state. The patient link is kept
// only while occupied. Returns false for unknown beds.
func (t *BedTracker) UpdateState(bedID string, state models.BedState, patientID string, estimatedAvailableAt *time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	bed, ok := t.beds[bedID]
	if !ok {
		return false
	}

	bed.State = state
	if state == models.BedOccupied {
		bed.PatientID = patientID
	} else {
		bed.PatientID = ""
	}
	bed.LastStateChange = t.now()
	bed.EstimatedAvailableAt = estimatedAvailableAt
	return true
}

// Bed returns a copy of one bed, or nil if unknown.
func (t *BedTracker) Bed(bedID string) *models.Bed {
	t.mu.RLock()
	defer t.mu.RUnlock()

	bed, ok := t.beds[bedID]
	if !ok {
		return nil
	}
	copied := *bed
	return &copied
}

// UnitBeds returns copies of every bed in a unit.
func (t *BedTracker) UnitBeds(unit models.UnitType) []models.Bed {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.unitBedsLocked(unit)
}

func (t *BedTracker) unitBedsLocked(unit models.UnitType) []models.Bed {
	ids := t.bedsByUnit[unit]
	beds := make([]models.Bed, 0, len(ids))
	for _, id := range ids {
		if bed, ok := t.beds[id]; ok {
			beds = append(beds, *bed)
		}
	}
	return beds
}

// AvailableBeds returns every available bed, optionally restricted to a unit.
func (t *BedTracker) AvailableBeds(unit models.UnitType) []models.Bed {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var pool []models.Bed
	if unit != "" {
		pool = t.unitBedsLocked(unit)
	} else {
		pool = make([]models.Bed, 0, len(t.beds))
		for _, bed := range t.beds {
			pool = append(pool, *bed)
		}
	}

	available := pool[:0]
	for _, bed := range pool {
		if bed.State == models.BedAvailable {
			available = append(available, bed)
		}
	}
	return available
}

// UnitCapacity computes current bed counts for a unit.
func (t *BedTracker) UnitCapacity(unit models.UnitType) models.UnitCapacity {
	t.mu.RLock()
	defer t.mu.RUnlock()

	uc := models.UnitCapacity{Unit: unit, TargetStaffRatio: defaultTargetStaffRatio}
	for _, bed := range t.unitBedsLocked(unit) {
		uc.TotalBeds++
		switch bed.State {
		case models.BedOccupied:
			uc.OccupiedBeds++
		case models.BedAvailable:
			uc.AvailableBeds++
		case models.BedReserved:
			uc.ReservedBeds++
		case models.BedCleaning:
			uc.CleaningBeds++
		}
	}
	return uc
}

// TrackedUnits lists units with at least one registered bed.
func (t *BedTracker) TrackedUnits() []models.UnitType {
	t.mu.RLock()
	defer t.mu.RUnlock()

	units := make([]models.UnitType, 0, len(t.bedsByUnit))
	for _, unit := range models.AllUnits {
		if len(t.bedsByUnit[unit]) > 0 {
			units = append(units, unit)
		}
	}
	return units
}
