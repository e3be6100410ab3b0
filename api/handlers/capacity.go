package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/adaptivecare/adaptivecare-api/capacity"
	"github.com/adaptivecare/adaptivecare-api/config"
	"github.com/adaptivecare/adaptivecare-api/events"
	"github.com/adaptivecare/adaptivecare-api/models"
)

// Capacity exported for testing purposes
type Capacity struct {
	System *capacity.TrackingSystem
	Bus    *events.Bus
}

type registerBedRequest struct {
	BedID string `json:"bedId"`
	Unit  string `json:"unit"`
	State string `json:"state"`
}

type updateBedStateRequest struct {
	State                string     `json:"state"`
	PatientID            string     `json:"patientId,omitempty"`
	EstimatedAvailableAt *time.Time `json:"estimatedAvailableAt,omitempty"`
}

type registerStaffRequest struct {
	StaffID     string `json:"staffId"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Unit        string `json:"unit"`
	MaxPatients int    `json:"maxPatients"`
}

type staffAssignmentRequest struct {
	PatientID string `json:"patientId"`
}

// AllCapacityHandler returns the capacity assessment for every tracked unit
func (c Capacity) AllCapacityHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	assessments := c.System.AllAssessments()

	b, err := json.Marshal(assessments)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UnitCapacityHandler returns the capacity assessment for one unit
func (c Capacity) UnitCapacityHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	unit, err := models.ParseUnit(mux.Vars(r)["unit"])
	if err != nil {
		config.ErrorStatus("invalid unit", http.StatusBadRequest, w, err)
		return
	}

	assessment := c.System.UnitAssessment(unit)

	b, err := json.Marshal(assessment)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// RegisterBedHandler adds a bed to the capacity tracker
func (c Capacity) RegisterBedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req registerBedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	unit, err := models.ParseUnit(req.Unit)
	if err != nil {
		config.ErrorStatus("invalid unit", http.StatusBadRequest, w, err)
		return
	}
	state := models.BedAvailable
	if req.State != "" {
		state, err = models.ParseBedState(req.State)
		if err != nil {
			config.ErrorStatus("invalid bed state", http.StatusBadRequest, w, err)
			return
		}
	}

	c.System.Beds.Register(models.Bed{
		ID:    req.BedID,
		Unit:  unit,
		State: state,
	})

	c.Bus.Publish(events.TopicCapacityAssessed, c.System.UnitAssessment(unit))

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"message": "bed registered successfully"}`))
}

// UpdateBedStateHandler transitions a bed through its lifecycle
func (c Capacity) UpdateBedStateHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	bedID := mux.Vars(r)["bed_id"]

	var req updateBedStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	state, err := models.ParseBedState(req.State)
	if err != nil {
		config.ErrorStatus("invalid bed state", http.StatusBadRequest, w, err)
		return
	}

	if !c.System.Beds.UpdateState(bedID, state, req.PatientID, req.EstimatedAvailableAt) {
		config.ErrorStatus("bed not found", http.StatusNotFound, w, fmt.Errorf("unknown bed %s", bedID))
		return
	}

	if bed := c.System.Beds.Bed(bedID); bed != nil {
		c.Bus.Publish(events.TopicCapacityAssessed, c.System.UnitAssessment(bed.Unit))
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "bed state updated successfully"}`))
}

// RegisterStaffHandler adds a staff member to the capacity tracker
func (c Capacity) RegisterStaffHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req registerStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	unit, err := models.ParseUnit(req.Unit)
	if err != nil {
		config.ErrorStatus("invalid unit", http.StatusBadRequest, w, err)
		return
	}

	c.System.Staff.Register(models.StaffMember{
		ID:          req.StaffID,
		Name:        req.Name,
		Role:        req.Role,
		Unit:        unit,
		MaxPatients: req.MaxPatients,
	})

	c.Bus.Publish(events.TopicCapacityAssessed, c.System.UnitAssessment(unit))

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"message": "staff member registered successfully"}`))
}

// AssignStaffHandler assigns a patient to a staff member's workload
func (c Capacity) AssignStaffHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	staffID := mux.Vars(r)["staff_id"]

	var req staffAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	if !c.System.Staff.AssignPatient(staffID, req.PatientID) {
		config.ErrorStatus("staff member not found", http.StatusNotFound, w, fmt.Errorf("unknown staff member %s", staffID))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "patient assigned successfully"}`))
}

// UnassignStaffHandler removes a patient from a staff member's workload
func (c Capacity) UnassignStaffHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	staffID := mux.Vars(r)["staff_id"]

	var req staffAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	if !c.System.Staff.UnassignPatient(staffID, req.PatientID) {
		config.ErrorStatus("staff member not found", http.StatusNotFound, w, fmt.Errorf("unknown staff member %s", staffID))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "patient unassigned successfully"}`))
}
