package models

import "time"

// VitalSigns holds a single immutable vital-sign reading for a patient.
// A patient owns an ordered sequence of these; insertion order is time order.
type VitalSigns struct {
	HeartRate       float64   `json:"heartRate" bson:"heartRate"`
	SystolicBP      float64   `json:"systolicBP" bson:"systolicBP"`
	DiastolicBP     float64   `json:"diastolicBP" bson:"diastolicBP"`
	SpO2            float64   `json:"spo2" bson:"spo2"`
	RespiratoryRate *float64  `json:"respiratoryRate,omitempty" bson:"respiratoryRate,omitempty"`
	Temperature     float64   `json:"temperature" bson:"temperature"`
	Timestamp       time.Time `json:"timestamp" bson:"timestamp"`
}
