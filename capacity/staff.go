package capacity

import (
	"sync"

	"github.com/adaptivecare/adaptivecare-api/models"
)

// StaffMetrics aggregates workload numbers for one unit's staff.
type StaffMetrics struct {
	StaffCount        int     `json:"staffCount"`
	TotalCapacity     int     `json:"totalCapacity"`
	CurrentLoad       int     `json:"currentLoad"`
	AvailableCapacity int     `json:"availableCapacity"`
	AverageWorkload   float64 `json:"averageWorkload"`
}

// StaffTracker maintains staff assignments and workload per unit.
// Safe for concurrent use.
type StaffTracker struct {
	mu          sync.RWMutex
	staff       map[string]*models.StaffMember
	staffByUnit map[models.UnitType][]string
}

// NewStaffTracker builds an empty StaffTracker.
func NewStaffTracker() *StaffTracker {
	return &StaffTracker{
		staff:       make(map[string]*models.StaffMember),
		staffByUnit: make(map[models.UnitType][]string),
	}
}

// Register adds a staff member to the tracker.
func (t *StaffTracker) Register(member models.StaffMember) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, known := t.staff[member.ID]
	t.staff[member.ID] = &member
	if !known {
		t.staffByUnit[member.Unit] = append(t.staffByUnit[member.Unit], member.ID)
	}
}

// AssignPatient adds a patient to a staff member's load. Assigning an
// already-assigned patient is a no-op. Returns false for unknown staff.
func (t *StaffTracker) AssignPatient(staffID, patientID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	member, ok := t.staff[staffID]
	if !ok {
		return false
	}
	for _, id := range member.AssignedPatients {
		if id == patientID {
			return true
		}
	}
	member.AssignedPatients = append(member.AssignedPatients, patientID)
	return true
}

// UnassignPatient removes a patient from a staff member's load.
func (t *StaffTracker) UnassignPatient(staffID, patientID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	member, ok := t.staff[staffID]
	if !ok {
		return false
	}
	for i, id := range member.AssignedPatients {
		if id == patientID {
			member.AssignedPatients = append(member.AssignedPatients[:i], member.AssignedPatients[i+1:]...)
			break
		}
	}
	return true
}

// Staff returns a copy of one staff member, or nil if unknown.
func (t *StaffTracker) Staff(staffID string) *models.StaffMember {
	t.mu.RLock()
	defer t.mu.RUnlock()

	member, ok := t.staff[staffID]
	if !ok {
		return nil
	}
	copied := *member
	copied.AssignedPatients = append([]string(nil), member.AssignedPatients...)
	return &copied
}

// UnitStaff returns copies of every staff member in a unit.
func (t *StaffTracker) UnitStaff(unit models.UnitType) []models.StaffMember {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.unitStaffLocked(unit)
}

func (t *StaffTracker) unitStaffLocked(unit models.UnitType) []models.StaffMember {
	ids := t.staffByUnit[unit]
	members := make([]models.StaffMember, 0, len(ids))
	for _, id := range ids {
		if member, ok := t.staff[id]; ok {
			copied := *member
			copied.AssignedPatients = append([]string(nil), member.AssignedPatients...)
			members = append(members, copied)
		}
	}
	return members
}

// UnitMetrics aggregates workload across a unit's staff.
func (t *StaffTracker) UnitMetrics(unit models.UnitType) StaffMetrics {
	t.mu.RLock()
	defer t.mu.RUnlock()

	members := t.unitStaffLocked(unit)
	if len(members) == 0 {
		return StaffMetrics{}
	}

	m := StaffMetrics{StaffCount: len(members)}
	workload := 0.0
	for i := range members {
		m.TotalCapacity += members[i].MaxPatients
		m.CurrentLoad += len(members[i].AssignedPatients)
		m.AvailableCapacity += members[i].AvailableCapacity()
		workload += members[i].WorkloadRatio()
	}
	m.AverageWorkload = workload / float64(len(members))
	return m
}

// FindAvailable returns unit staff with at least minCapacity open slots.
func (t *StaffTracker) FindAvailable(unit models.UnitType, minCapacity int) []models.StaffMember {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var available []models.StaffMember
	for _, member := range t.unitStaffLocked(unit) {
		if member.AvailableCapacity() >= minCapacity {
			available = append(available, member)
		}
	}
	return available
}

// LeastLoaded returns the unit staff member with the lowest workload, or
// nil when the unit has no staff.
func (t *StaffTracker) LeastLoaded(unit models.UnitType) *models.StaffMember {
	t.mu.RLock()
	defer t.mu.RUnlock()

	members := t.unitStaffLocked(unit)
	if len(members) == 0 {
		return nil
	}

	best := &members[0]
	for i := range members[1:] {
		if members[i+1].WorkloadRatio() < best.WorkloadRatio() {
			best = &members[i+1]
		}
	}
	copied := *best
	return &copied
}
