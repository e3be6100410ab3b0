package models

import (
	"fmt"
	"time"
)

// AcuityLevel is the ordinal clinical urgency classification for a patient.
// Higher values are more acute.
type AcuityLevel int

// Acuity levels, least to most acute.
const (
	AcuityNonUrgent AcuityLevel = iota + 1
	AcuityLessUrgent
	AcuityUrgent
	AcuityEmergent
	AcuityResuscitation
)

// ParseAcuityLevel validates a raw acuity value at the boundary.
func ParseAcuityLevel(v int) (AcuityLevel, error) {
	if v < int(AcuityNonUrgent) || v > int(AcuityResuscitation) {
		return 0, fmt.Errorf("unknown acuity level: %d", v)
	}
	return AcuityLevel(v), nil
}

func (a AcuityLevel) String() string {
	switch a {
	case AcuityResuscitation:
		return "resuscitation"
	case AcuityEmergent:
		return "emergent"
	case AcuityUrgent:
		return "urgent"
	case AcuityLessUrgent:
		return "less_urgent"
	case AcuityNonUrgent:
		return "non_urgent"
	}
	return fmt.Sprintf("acuity(%d)", int(a))
}

// Location is a care area a patient can occupy
type Location string

// Patient locations
const (
	LocationED        Location = "ED"
	LocationICU       Location = "ICU"
	LocationWard      Location = "Ward"
	LocationEDObs     Location = "ED_Obs"
	LocationOR        Location = "OR"
	LocationDischarge Location = "Discharge"
)

// ParseLocation validates a raw location string at the boundary.
func ParseLocation(s string) (Location, error) {
	switch Location(s) {
	case LocationED, LocationICU, LocationWard, LocationEDObs, LocationOR, LocationDischarge:
		return Location(s), nil
	}
	return "", fmt.Errorf("unknown location: %q", s)
}

// PatientStatus tracks where a patient is in their stay
type PatientStatus string

// Patient statuses
const (
	PatientActive     PatientStatus = "active"
	PatientAdmitted   PatientStatus = "admitted"
	PatientDischarged PatientStatus = "discharged"
)

// RiskFactors holds baseline patient risk modifiers supplied at intake
type RiskFactors struct {
	ComorbidityScore float64 `json:"comorbidityScore" bson:"comorbidityScore"`
}

// Patient holds the structure for the patient collection in mongo
type Patient struct {
	ID             string        `json:"patientId" bson:"_id"`
	Name           string        `json:"name" bson:"name"`
	Age            int           `json:"age" bson:"age"`
	Gender         string        `json:"gender" bson:"gender"`
	ChiefComplaint string        `json:"chiefComplaint" bson:"chiefComplaint"`
	AcuityLevel    AcuityLevel   `json:"acuityLevel" bson:"acuityLevel"`
	Location       Location      `json:"currentLocation" bson:"currentLocation"`
	Status         PatientStatus `json:"status" bson:"status"`
	Comorbidities  []string      `json:"comorbidities" bson:"comorbidities"`
	RiskFactors    RiskFactors   `json:"riskFactors" bson:"riskFactors"`
	AdmissionTime  time.Time     `json:"admissionTime" bson:"admissionTime"`
	Vitals         []VitalSigns  `json:"vitals" bson:"vitals"`
	UpdatedAt      time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// LatestVitals returns the most recent vitals reading, or nil if none recorded
func (p *Patient) LatestVitals() *VitalSigns {
	if len(p.Vitals) == 0 {
		return nil
	}
	return &p.Vitals[len(p.Vitals)-1]
}

// PreviousVitals returns the reading before the latest, or nil
func (p *Patient) PreviousVitals() *VitalSigns {
	if len(p.Vitals) < 2 {
		return nil
	}
	return &p.Vitals[len(p.Vitals)-2]
}

// PatientSummary is the condensed patient view returned by list endpoints
type PatientSummary struct {
	ID             string      `json:"patientId"`
	Name           string      `json:"name"`
	Age            int         `json:"age"`
	Location       Location    `json:"currentLocation"`
	ChiefComplaint string      `json:"chiefComplaint"`
	AcuityLevel    AcuityLevel `json:"acuityLevel"`
	AdmissionTime  time.Time   `json:"admissionTime"`
	RiskScore      *float64    `json:"riskScore,omitempty"`
	RiskTrajectory string      `json:"riskTrajectory,omitempty"`
}
