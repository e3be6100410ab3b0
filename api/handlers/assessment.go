package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/adaptivecare/adaptivecare-api/config"
	"github.com/adaptivecare/adaptivecare-api/databases"
	"github.com/adaptivecare/adaptivecare-api/events"
	"github.com/adaptivecare/adaptivecare-api/risk"
)

// Assessment exported for testing purposes
type Assessment struct {
	PDB     databases.PatientDatabase
	ADB     databases.AssessmentDatabase
	Monitor *risk.Monitor
	Bus     *events.Bus
}

// AssessPatientHandler runs a fresh risk assessment for a patient
func (a Assessment) AssessPatientHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	patientID := mux.Vars(r)["patient_id"]

	patient, err := a.PDB.FindOne(context.Background(), bson.M{"_id": patientID})
	if err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}

	assessment, err := a.Monitor.AssessPatient(patient)
	if err != nil {
		config.ErrorStatus("failed to assess patient", http.StatusUnprocessableEntity, w, err)
		return
	}

	if _, err := a.ADB.InsertOne(context.Background(), assessment); err != nil {
		zap.S().Warnw("failed to persist assessment",
			"patientId", patientID,
			"error", err,
		)
	}

	a.Bus.Publish(events.TopicRiskAssessed, assessment)
	if assessment.NeedsEscalation {
		a.Bus.Publish(events.TopicRiskEscalation, assessment)
	}

	b, err := json.Marshal(assessment)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AssessmentHistoryHandler returns the in-memory assessment history for a patient
func (a Assessment) AssessmentHistoryHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	patientID := mux.Vars(r)["patient_id"]

	history := a.Monitor.History(patientID)
	if history == nil {
		history = []risk.Assessment{}
	}

	b, err := json.Marshal(history)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// TrajectoryHandler returns the sequence of risk scores for a patient
func (a Assessment) TrajectoryHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	patientID := mux.Vars(r)["patient_id"]

	trajectory := a.Monitor.Trajectory(patientID)
	if trajectory == nil {
		trajectory = []float64{}
	}

	b, err := json.Marshal(map[string]interface{}{
		"patientId":  patientID,
		"trajectory": trajectory,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// HighRiskPatientsHandler returns the latest assessment of every high or critical risk patient
func (a Assessment) HighRiskPatientsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	assessments := a.Monitor.HighRiskPatients()
	if assessments == nil {
		assessments = []risk.Assessment{}
	}

	b, err := json.Marshal(assessments)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeterioratingPatientsHandler returns patients whose latest trend is worsening
func (a Assessment) DeterioratingPatientsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	assessments := a.Monitor.DeterioratingPatients()
	if assessments == nil {
		assessments = []risk.Assessment{}
	}

	b, err := json.Marshal(assessments)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// StoredAssessmentsHandler returns persisted assessments for a patient from mongo
func (a Assessment) StoredAssessmentsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	patientID := mux.Vars(r)["patient_id"]

	dbResp, err := a.ADB.Find(context.Background(), bson.M{"patientId": patientID})
	if err != nil {
		config.ErrorStatus("failed to get assessments by patient ID", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []risk.Assessment{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
