package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/adaptivecare/adaptivecare-api/api"
	"github.com/adaptivecare/adaptivecare-api/config"
	"github.com/adaptivecare/adaptivecare-api/databases"
	"github.com/adaptivecare/adaptivecare-api/events"
	"github.com/adaptivecare/adaptivecare-api/models"
	"github.com/adaptivecare/adaptivecare-api/risk"
)

// Patient exported for testing purposes
type Patient struct {
	DB      databases.PatientDatabase
	Monitor *risk.Monitor
	Bus     *events.Bus
}

type createPatientRequest struct {
	Name             string   `json:"name"`
	Age              int      `json:"age"`
	Gender           string   `json:"gender"`
	ChiefComplaint   string   `json:"chiefComplaint"`
	AcuityLevel      int      `json:"acuityLevel"`
	Location         string   `json:"currentLocation"`
	Comorbidities    []string `json:"comorbidities"`
	ComorbidityScore float64  `json:"comorbidityScore"`

	Vitals *models.VitalSigns `json:"vitals,omitempty"`
}

// PatientHandler returns a patient given a patientID
func (p Patient) PatientHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	zap.S().Debugf("patient_id: %v", patientID)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := p.DB.FindOne(ctx, bson.M{"_id": patientID})
	if err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
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

// PatientsHandler returns patients, filterable by status and location
func (p Patient) PatientsHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}
	if location := r.URL.Query().Get("location"); location != "" {
		loc, err := models.ParseLocation(location)
		if err != nil {
			config.ErrorStatus("invalid location", http.StatusBadRequest, w, err)
			return
		}
		filter["currentLocation"] = loc
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := p.DB.Find(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to get patients", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Patient{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreatePatientHandler registers a new patient for monitoring
func (p Patient) CreatePatientHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var req createPatientRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	acuity, err := models.ParseAcuityLevel(req.AcuityLevel)
	if err != nil {
		config.ErrorStatus("invalid acuity level", http.StatusBadRequest, w, err)
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

	now := time.Now()
	patient := models.Patient{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Age:            req.Age,
		Gender:         req.Gender,
		ChiefComplaint: req.ChiefComplaint,
		AcuityLevel:    acuity,
		Location:       location,
		Status:         models.PatientActive,
		Comorbidities:  req.Comorbidities,
		RiskFactors:    models.RiskFactors{ComorbidityScore: req.ComorbidityScore},
		AdmissionTime:  now,
		UpdatedAt:      now,
	}
	if req.Vitals != nil {
		v := *req.Vitals
		if v.Timestamp.IsZero() {
			v.Timestamp = now
		}
		patient.Vitals = []models.VitalSigns{v}
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	_, err = p.DB.InsertOne(ctx, &patient)
	if err != nil {
		config.ErrorStatus("failed to insert patient", http.StatusInternalServerError, w, err)
		return
	}

	p.Bus.Publish(events.TopicPatientAdmitted, patient)

	b, err := json.Marshal(patient)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// AddVitalsHandler appends a vitals reading to a patient's record
func (p Patient) AddVitalsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	patientID := mux.Vars(r)["patient_id"]

	var vitals models.VitalSigns
	err := json.NewDecoder(r.Body).Decode(&vitals)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if vitals.Timestamp.IsZero() {
		vitals.Timestamp = time.Now()
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := p.DB.FindOne(ctx, bson.M{"_id": patientID}); err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}

	err = p.DB.AppendVitals(ctx, patientID, vitals)
	if err != nil {
		config.ErrorStatus("failed to append vitals", http.StatusInternalServerError, w, err)
		return
	}

	p.Bus.Publish(events.TopicVitalsRecorded, map[string]interface{}{
		"patientId": patientID,
		"vitals":    vitals,
	})

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "vitals recorded successfully"}`))
}

// DischargePatientHandler marks a patient as discharged and stops monitoring
func (p Patient) DischargePatientHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	patientID := mux.Vars(r)["patient_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	patient, err := p.DB.FindOne(ctx, bson.M{"_id": patientID})
	if err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}
	if patient.Status == models.PatientDischarged {
		config.ErrorStatus("patient already discharged", http.StatusConflict, w, fmt.Errorf("patient %s already discharged", patientID))
		return
	}

	err = p.DB.SetStatus(ctx, patientID, models.PatientDischarged, models.LocationDischarge)
	if err != nil {
		config.ErrorStatus("failed to discharge patient", http.StatusInternalServerError, w, err)
		return
	}

	p.Monitor.Reset(patientID)
	p.Bus.Publish(events.TopicPatientDischarged, map[string]interface{}{
		"patientId": patientID,
	})

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "patient discharged successfully"}`))
}
