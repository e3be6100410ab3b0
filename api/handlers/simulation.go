package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/adaptivecare/adaptivecare-api/config"
	"github.com/adaptivecare/adaptivecare-api/databases"
	"github.com/adaptivecare/adaptivecare-api/events"
	"github.com/adaptivecare/adaptivecare-api/models"
	"github.com/adaptivecare/adaptivecare-api/simulation"
)

// Simulation exported for testing purposes
type Simulation struct {
	Runner *simulation.Runner
	DB     databases.PatientDatabase
	Bus    *events.Bus
}

type admitSimulatedRequest struct {
	Severity string `json:"severity"`
	Pattern  string `json:"pattern"`
	Location string `json:"location,omitempty"`
}

// AdmitSimulatedHandler admits a synthetic patient into the pipeline
func (s Simulation) AdmitSimulatedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req admitSimulatedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	severity, err := simulation.ParseSeverity(req.Severity)
	if err != nil {
		config.ErrorStatus("invalid severity", http.StatusBadRequest, w, err)
		return
	}
	pattern, err := simulation.ParsePattern(req.Pattern)
	if err != nil {
		config.ErrorStatus("invalid deterioration pattern", http.StatusBadRequest, w, err)
		return
	}
	location := models.LocationED
	if req.Location != "" {
		location, err = models.ParseLocation(req.Location)
		if err != nil {
			config.ErrorStatus("invalid location", http.StatusBadRequest, w, err)
			return
		}
	}

	patient := s.Runner.Admit(severity, location, pattern)

	if _, err := s.DB.InsertOne(context.Background(), &patient); err != nil {
		zap.S().Warnw("failed to persist simulated patient",
			"patientId", patient.ID,
			"error", err,
		)
	}

	s.Bus.Publish(events.TopicPatientAdmitted, patient)

	b, err := json.Marshal(patient)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// StepSimulationHandler advances every simulated patient by one tick
func (s Simulation) StepSimulationHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	patients := s.Runner.Step()
	if patients == nil {
		patients = []models.Patient{}
	}

	for i := range patients {
		vitals := patients[i].LatestVitals()
		if vitals == nil {
			continue
		}
		if err := s.DB.AppendVitals(context.Background(), patients[i].ID, *vitals); err != nil {
			zap.S().Warnw("failed to persist simulated vitals",
				"patientId", patients[i].ID,
				"error", err,
			)
		}
		s.Bus.Publish(events.TopicVitalsRecorded, map[string]interface{}{
			"patientId": patients[i].ID,
			"vitals":    *vitals,
		})
	}

	b, err := json.Marshal(patients)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SimulatedPatientsHandler returns every patient currently simulated
func (s Simulation) SimulatedPatientsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	patients := s.Runner.Patients()
	if patients == nil {
		patients = []models.Patient{}
	}

	b, err := json.Marshal(patients)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DischargeSimulatedHandler removes a patient from the simulation
func (s Simulation) DischargeSimulatedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	patientID := mux.Vars(r)["patient_id"]

	if !s.Runner.Discharge(patientID) {
		config.ErrorStatus("simulated patient not found", http.StatusNotFound, w, fmt.Errorf("unknown patient %s", patientID))
		return
	}

	if err := s.DB.SetStatus(context.Background(), patientID, models.PatientDischarged, models.LocationDischarge); err != nil {
		zap.S().Warnw("failed to persist simulated discharge",
			"patientId", patientID,
			"error", err,
		)
	}

	s.Bus.Publish(events.TopicPatientDischarged, map[string]interface{}{
		"patientId": patientID,
	})

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "patient discharged successfully"}`))
}
