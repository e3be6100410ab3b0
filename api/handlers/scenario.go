package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/adaptivecare/adaptivecare-api/capacity"
	"github.com/adaptivecare/adaptivecare-api/config"
	"github.com/adaptivecare/adaptivecare-api/databases"
	"github.com/adaptivecare/adaptivecare-api/mcda"
	"github.com/adaptivecare/adaptivecare-api/models"
	"github.com/adaptivecare/adaptivecare-api/risk"
	"github.com/adaptivecare/adaptivecare-api/scenario"
)

// Scenario exported for testing purposes
type Scenario struct {
	PDB        databases.PatientDatabase
	Simulator  *scenario.Simulator
	Comparator *scenario.Comparator
	Monitor    *risk.Monitor
	Capacity   *capacity.TrackingSystem
}

type timingAnalysisRequest struct {
	decisionRequest
	WaitTimes []int `json:"waitTimes,omitempty"`
}

type timingAnalysisResponse struct {
	Scenarios   []scenario.Outcome `json:"scenarios"`
	Recommended *scenario.Outcome  `json:"recommended,omitempty"`
	Explanation string             `json:"explanation"`
}

type placementAnalysisRequest struct {
	decisionRequest
	Units []string `json:"units,omitempty"`
}

type placementAnalysisResponse struct {
	Options      []scenario.PlacementOption `json:"options"`
	Recommended  *scenario.PlacementOption  `json:"recommended,omitempty"`
	Alternatives []scenario.PlacementOption `json:"alternatives"`
	Explanation  string                     `json:"explanation"`
}

// TimingAnalysisHandler simulates wait-vs-act scenarios for a patient
func (s Scenario) TimingAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	patientID := mux.Vars(r)["patient_id"]

	var req timingAnalysisRequest
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

	patient, err := s.PDB.FindOne(context.Background(), bson.M{"_id": patientID})
	if err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}

	latest := s.Monitor.Latest(patientID)
	capAssess := s.Capacity.UnitAssessment(unit)
	evalCtx := buildEvaluationContext(patient, latest, capAssess, req.decisionRequest, unit)

	waitTimes := req.WaitTimes
	if len(waitTimes) == 0 {
		waitTimes = scenario.DefaultWaitTimes
	}

	outcomes := s.Simulator.RunTimingAnalysis(evalCtx, waitTimes)
	recommended, explanation := s.Comparator.CompareWaitScenarios(outcomes)

	b, err := json.Marshal(timingAnalysisResponse{
		Scenarios:   outcomes,
		Recommended: recommended,
		Explanation: explanation,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// PlacementAnalysisHandler ranks candidate unit placements for a patient
func (s Scenario) PlacementAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	patientID := mux.Vars(r)["patient_id"]

	var req placementAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	units := models.AllUnits
	if len(req.Units) > 0 {
		units = units[:0:0]
		for _, raw := range req.Units {
			unit, err := models.ParseUnit(raw)
			if err != nil {
				config.ErrorStatus("invalid unit", http.StatusBadRequest, w, err)
				return
			}
			units = append(units, unit)
		}
	}

	patient, err := s.PDB.FindOne(context.Background(), bson.M{"_id": patientID})
	if err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}

	preferred := models.UnitWard
	if req.PreferredUnit != "" {
		parsed, err := models.ParseUnit(req.PreferredUnit)
		if err != nil {
			config.ErrorStatus("invalid preferred unit", http.StatusBadRequest, w, err)
			return
		}
		preferred = parsed
	}

	latest := s.Monitor.Latest(patientID)
	evalCtx := buildEvaluationContext(patient, latest, s.Capacity.UnitAssessment(preferred), req.decisionRequest, preferred)

	candidates := make([]mcda.CapacityContext, 0, len(units))
	for _, unit := range units {
		candidates = append(candidates, capacityContext(s.Capacity.UnitAssessment(unit)))
	}

	options := s.Simulator.SimulatePlacements(evalCtx.Patient, evalCtx.Risk, candidates)
	recommended, alternatives, explanation := s.Comparator.ComparePlacementOptions(options)
	if alternatives == nil {
		alternatives = []scenario.PlacementOption{}
	}

	b, err := json.Marshal(placementAnalysisResponse{
		Options:      options,
		Recommended:  recommended,
		Alternatives: alternatives,
		Explanation:  explanation,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
