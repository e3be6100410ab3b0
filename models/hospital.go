package models

import (
	"fmt"
	"time"
)

// UnitType is a hospital unit that can hold patients
type UnitType string

// Hospital units
const (
	UnitED   UnitType = "ED"
	UnitICU  UnitType = "ICU"
	UnitWard UnitType = "Ward"
	UnitOR   UnitType = "OR"
	UnitPACU UnitType = "PACU"
)

// AllUnits lists every tracked unit in a fixed order
var AllUnits = []UnitType{UnitED, UnitICU, UnitWard, UnitOR, UnitPACU}

// ParseUnit validates a raw unit string at the boundary.
func ParseUnit(s string) (UnitType, error) {
	switch UnitType(s) {
	case UnitED, UnitICU, UnitWard, UnitOR, UnitPACU:
		return UnitType(s), nil
	}
	return "", fmt.Errorf("unknown unit: %q", s)
}

// BedState is the lifecycle state of a single bed
type BedState string

// Bed states
const (
	BedAvailable   BedState = "available"
	BedOccupied    BedState = "occupied"
	BedReserved    BedState = "reserved"
	BedCleaning    BedState = "cleaning"
	BedMaintenance BedState = "maintenance"
)

// ParseBedState validates a raw bed state string at the boundary.
func ParseBedState(s string) (BedState, error) {
	switch BedState(s) {
	case BedAvailable, BedOccupied, BedReserved, BedCleaning, BedMaintenance:
		return BedState(s), nil
	}
	return "", fmt.Errorf("unknown bed state: %q", s)
}

// Bed holds the status of an individual hospital bed
type Bed struct {
	ID                   string     `json:"bedId" bson:"_id"`
	Unit                 UnitType   `json:"unit" bson:"unit"`
	State                BedState   `json:"state" bson:"state"`
	PatientID            string     `json:"patientId,omitempty" bson:"patientId,omitempty"`
	LastStateChange      time.Time  `json:"lastStateChange" bson:"lastStateChange"`
	EstimatedAvailableAt *time.Time `json:"estimatedAvailableAt,omitempty" bson:"estimatedAvailableAt,omitempty"`
}

// Available reports whether the bed can take a patient right now
func (b *Bed) Available() bool {
	return b.State == BedAvailable
}

// StaffMember holds workload data for one member of unit staff
type StaffMember struct {
	ID               string   `json:"staffId" bson:"_id"`
	Name             string   `json:"name" bson:"name"`
	Role             string   `json:"role" bson:"role"`
	Unit             UnitType `json:"unit" bson:"unit"`
	AssignedPatients []string `json:"assignedPatients" bson:"assignedPatients"`
	MaxPatients      int      `json:"maxPatients" bson:"maxPatients"`
}

// WorkloadRatio is the staff member's load as a fraction of capacity (0-1)
func (s *StaffMember) WorkloadRatio() float64 {
	if s.MaxPatients == 0 {
		return 1.0
	}
	r := float64(len(s.AssignedPatients)) / float64(s.MaxPatients)
	if r > 1 {
		return 1
	}
	return r
}

// AvailableCapacity is how many more patients the staff member can take
func (s *StaffMember) AvailableCapacity() int {
	free := s.MaxPatients - len(s.AssignedPatients)
	if free < 0 {
		return 0
	}
	return free
}

// UnitCapacity aggregates bed and staffing counts for one unit
type UnitCapacity struct {
	Unit             UnitType `json:"unit"`
	TotalBeds        int      `json:"totalBeds"`
	OccupiedBeds     int      `json:"occupiedBeds"`
	AvailableBeds    int      `json:"availableBeds"`
	ReservedBeds     int      `json:"reservedBeds"`
	CleaningBeds     int      `json:"cleaningBeds"`
	StaffOnDuty      int      `json:"staffOnDuty"`
	TargetStaffRatio float64  `json:"targetStaffRatio"`
}

// OccupancyRate is bed occupancy as a fraction (0-1)
func (u *UnitCapacity) OccupancyRate() float64 {
	if u.TotalBeds == 0 {
		return 0
	}
	return float64(u.OccupiedBeds) / float64(u.TotalBeds)
}

// CurrentStaffRatio is patients per staff member on duty
func (u *UnitCapacity) CurrentStaffRatio() float64 {
	if u.StaffOnDuty == 0 {
		if u.OccupiedBeds == 0 {
			return 0
		}
		return float64(u.OccupiedBeds)
	}
	return float64(u.OccupiedBeds) / float64(u.StaffOnDuty)
}

// StaffAdequacy compares target staffing against actual (>1 overstaffed, <1 understaffed)
func (u *UnitCapacity) StaffAdequacy() float64 {
	ratio := u.CurrentStaffRatio()
	if u.TargetStaffRatio == 0 || ratio <= 0 {
		return 1.0
	}
	return u.TargetStaffRatio / ratio
}

// CapacityAssessment is the per-unit capacity snapshot consumed by the
// decision pipeline. CapacityScore is 0-100, higher meaning more available.
type CapacityAssessment struct {
	Unit                  UnitType   `json:"unit" bson:"unit"`
	CurrentOccupancy      float64    `json:"currentOccupancy" bson:"currentOccupancy"`
	StaffRatio            float64    `json:"staffRatio" bson:"staffRatio"`
	CapacityScore         float64    `json:"capacityScore" bson:"capacityScore"`
	PredictedAvailability *time.Time `json:"predictedAvailability,omitempty" bson:"predictedAvailability,omitempty"`
	Timestamp             time.Time  `json:"timestamp" bson:"timestamp"`
	Confidence            float64    `json:"confidence" bson:"confidence"`
	AvailableBedCount     int        `json:"availableBedCount" bson:"availableBedCount"`
	TotalBedCount         int        `json:"totalBedCount" bson:"totalBedCount"`
	StaffOnDuty           int        `json:"staffOnDuty" bson:"staffOnDuty"`
	BottleneckReason      string     `json:"bottleneckReason,omitempty" bson:"bottleneckReason,omitempty"`
}
