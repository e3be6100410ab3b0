package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/adaptivecare/adaptivecare-api/capacity"
	"github.com/adaptivecare/adaptivecare-api/config"
	"github.com/adaptivecare/adaptivecare-api/databases"
	"github.com/adaptivecare/adaptivecare-api/decision"
	"github.com/adaptivecare/adaptivecare-api/events"
	"github.com/adaptivecare/adaptivecare-api/mcda"
	"github.com/adaptivecare/adaptivecare-api/models"
	"github.com/adaptivecare/adaptivecare-api/risk"
)

// Decision exported for testing purposes
type Decision struct {
	PDB      databases.PatientDatabase
	DDB      databases.DecisionDatabase
	Engine   *decision.Engine
	Monitor  *risk.Monitor
	Capacity *capacity.TrackingSystem
	Bus      *events.Bus
}

type decisionRequest struct {
	PreferredUnit         string   `json:"preferredUnit"`
	WaitTimeMinutes       *float64 `json:"waitTimeMinutes,omitempty"`
	IsEmergency           bool     `json:"isEmergency"`
	NeedsSurgery          bool     `json:"needsSurgery"`
	TimeCriticalCondition bool     `json:"timeCriticalCondition"`
	RequiresMonitoring    bool     `json:"requiresMonitoring"`
	IsolationRequired     bool     `json:"isolationRequired"`
	PendingProcedures     bool     `json:"pendingProcedures"`
}

// capacityContext converts a tracker snapshot into an MCDA capacity context.
func capacityContext(a models.CapacityAssessment) mcda.CapacityContext {
	score := a.CapacityScore
	occ := a.CurrentOccupancy
	staff := a.StaffRatio
	at := a.Timestamp
	return mcda.CapacityContext{
		Unit:                  a.Unit,
		CapacityScore:         &score,
		CurrentOccupancy:      &occ,
		StaffRatio:            &staff,
		PredictedAvailability: a.PredictedAvailability,
		AssessedAt:            &at,
	}
}

// buildEvaluationContext assembles the full decision input for one patient.
func buildEvaluationContext(patient *models.Patient, latest *risk.Assessment, capAssess models.CapacityAssessment, req decisionRequest, unit models.UnitType) mcda.EvaluationContext {
	acuity := patient.AcuityLevel
	waitMinutes := req.WaitTimeMinutes
	if waitMinutes == nil && !patient.AdmissionTime.IsZero() {
		minutes := time.Since(patient.AdmissionTime).Minutes()
		waitMinutes = &minutes
	}

	timestamps := make([]time.Time, 0, len(patient.Vitals))
	for _, v := range patient.Vitals {
		timestamps = append(timestamps, v.Timestamp)
	}

	ctx := mcda.EvaluationContext{
		Patient: mcda.PatientContext{
			PatientID:             patient.ID,
			AcuityLevel:           &acuity,
			WaitTimeMinutes:       waitMinutes,
			CurrentLocation:       patient.Location,
			PreferredUnit:         unit,
			IsEmergency:           req.IsEmergency,
			NeedsSurgery:          req.NeedsSurgery,
			TimeCriticalCondition: req.TimeCriticalCondition,
			RequiresMonitoring:    req.RequiresMonitoring,
			IsolationRequired:     req.IsolationRequired,
			BoardingInED:          patient.Location == models.LocationED && unit != models.UnitED,
			PendingProcedures:     req.PendingProcedures,
			VitalsTimestamps:      timestamps,
		},
		Capacity: capacityContext(capAssess),
	}
	if latest != nil {
		ctx.Risk = &mcda.RiskContext{
			RiskScore:  latest.RiskScore,
			Trajectory: latest.Trend,
		}
	}
	return ctx
}

// CreateDecisionHandler produces a placement recommendation for a patient
func (d Decision) CreateDecisionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	patientID := mux.Vars(r)["patient_id"]

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	unit := models.UnitWard
	if req.PreferredUnit != "" {
		parsed, err := models.ParseUnit(req.PreferredUnit)
		if err != nil {
			config.ErrorStatus("invalid preferred unit", http.StatusBadRequest, w, err)
			return
		}
		unit = parsed
	}

	patient, err := d.PDB.FindOne(context.Background(), bson.M{"_id": patientID})
	if err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}

	latest := d.Monitor.Latest(patientID)
	capAssess := d.Capacity.UnitAssessment(unit)
	evalCtx := buildEvaluationContext(patient, latest, capAssess, req, unit)

	output := d.Engine.Decide(evalCtx)

	if _, err := d.DDB.InsertOne(context.Background(), output); err != nil {
		zap.S().Warnw("failed to persist decision",
			"patientId", patientID,
			"error", err,
		)
	}

	d.Bus.Publish(events.TopicDecisionMade, output)

	b, err := json.Marshal(output)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DecisionByIDHandler returns a persisted decision given its decisionID
func (d Decision) DecisionByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	decisionID := mux.Vars(r)["decision_id"]

	dbResp, err := d.DDB.FindOne(context.Background(), bson.M{"_id": decisionID})
	if err != nil {
		config.ErrorStatus("failed to get decision by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DecisionsByPatientIDHandler returns all persisted decisions for a patient
func (d Decision) DecisionsByPatientIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	patientID := mux.Vars(r)["patient_id"]

	dbResp, err := d.DDB.Find(context.Background(), bson.M{"patientId": patientID})
	if err != nil {
		config.ErrorStatus("failed to get decisions by patient ID", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []decision.Output{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
