package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/adaptivecare/adaptivecare-api/api"
	"github.com/adaptivecare/adaptivecare-api/capacity"
	"github.com/adaptivecare/adaptivecare-api/config"
	"github.com/adaptivecare/adaptivecare-api/databases"
	"github.com/adaptivecare/adaptivecare-api/decision"
	"github.com/adaptivecare/adaptivecare-api/events"
	"github.com/adaptivecare/adaptivecare-api/logging"
	"github.com/adaptivecare/adaptivecare-api/mcda"
	"github.com/adaptivecare/adaptivecare-api/risk"
	"github.com/adaptivecare/adaptivecare-api/scenario"
	"github.com/adaptivecare/adaptivecare-api/simulation"
)

// App stores the router, db connection and pipeline services, so they can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	dbHelper databases.DatabaseHelper

	Monitor    *risk.Monitor
	MCDA       *mcda.Engine
	Decisions  *decision.Engine
	Capacity   *capacity.TrackingSystem
	Simulator  *scenario.Simulator
	Comparator *scenario.Comparator
	Runner     *simulation.Runner
	Bus        *events.Bus
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewOperatorDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	// base router carries the health route
	r := api.New()

	patientDB := databases.NewPatientDatabase(a.dbHelper)
	p := Patient{DB: patientDB, Monitor: a.Monitor, Bus: a.Bus}
	assess := Assessment{PDB: patientDB, ADB: databases.NewAssessmentDatabase(a.dbHelper), Monitor: a.Monitor, Bus: a.Bus}
	d := Decision{PDB: patientDB, DDB: databases.NewDecisionDatabase(a.dbHelper), Engine: a.Decisions, Monitor: a.Monitor, Capacity: a.Capacity, Bus: a.Bus}
	c := Capacity{System: a.Capacity, Bus: a.Bus}
	sc := Scenario{PDB: patientDB, Simulator: a.Simulator, Comparator: a.Comparator, Monitor: a.Monitor, Capacity: a.Capacity}
	sim := Simulation{Runner: a.Runner, DB: patientDB, Bus: a.Bus}
	op := Operator{DB: databases.NewOperatorDatabase(a.dbHelper), Config: &a.Config}
	stream := Stream{Bus: a.Bus}

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")
	apiCreate.Handle("/auth/login", http.HandlerFunc(op.OperatorLoginHandler)).Methods("POST")
	apiCreate.Handle("/operator/create-operator", http.HandlerFunc(op.CreateOperatorHandler)).Methods("POST")

	apiCreate.Handle("/patient", api.Middleware(http.HandlerFunc(p.CreatePatientHandler))).Methods("POST")
	apiCreate.Handle("/patient/{patient_id}", api.Middleware(http.HandlerFunc(p.PatientHandler))).Methods("GET")
	apiCreate.Handle("/patient/{patient_id}/vitals", api.Middleware(http.HandlerFunc(p.AddVitalsHandler))).Methods("POST")
	apiCreate.Handle("/patient/{patient_id}/discharge", api.Middleware(http.HandlerFunc(p.DischargePatientHandler))).Methods("POST")
	apiCreate.Handle("/patients", api.Middleware(http.HandlerFunc(p.PatientsHandler))).Methods("GET")
	apiCreate.Handle("/patients/high-risk", api.Middleware(http.HandlerFunc(assess.HighRiskPatientsHandler))).Methods("GET")
	apiCreate.Handle("/patients/deteriorating", api.Middleware(http.HandlerFunc(assess.DeterioratingPatientsHandler))).Methods("GET")

	apiCreate.Handle("/patient/{patient_id}/assessment", api.Middleware(http.HandlerFunc(assess.AssessPatientHandler))).Methods("POST")
	apiCreate.Handle("/patient/{patient_id}/assessments", api.Middleware(http.HandlerFunc(assess.AssessmentHistoryHandler))).Methods("GET")
	apiCreate.Handle("/patient/{patient_id}/assessments/stored", api.Middleware(http.HandlerFunc(assess.StoredAssessmentsHandler))).Methods("GET")
	apiCreate.Handle("/patient/{patient_id}/trajectory", api.Middleware(http.HandlerFunc(assess.TrajectoryHandler))).Methods("GET")

	apiCreate.Handle("/patient/{patient_id}/decision", api.Middleware(http.HandlerFunc(d.CreateDecisionHandler))).Methods("POST")
	apiCreate.Handle("/patient/{patient_id}/decisions", api.Middleware(http.HandlerFunc(d.DecisionsByPatientIDHandler))).Methods("GET")
	apiCreate.Handle("/decision/{decision_id}", api.Middleware(http.HandlerFunc(d.DecisionByIDHandler))).Methods("GET")

	apiCreate.Handle("/patient/{patient_id}/scenarios/timing", api.Middleware(http.HandlerFunc(sc.TimingAnalysisHandler))).Methods("POST")
	apiCreate.Handle("/patient/{patient_id}/scenarios/placement", api.Middleware(http.HandlerFunc(sc.PlacementAnalysisHandler))).Methods("POST")

	apiCreate.Handle("/capacity", api.Middleware(http.HandlerFunc(c.AllCapacityHandler))).Methods("GET")
	apiCreate.Handle("/capacity/beds", api.Middleware(http.HandlerFunc(c.RegisterBedHandler))).Methods("POST")
	apiCreate.Handle("/capacity/beds/{bed_id}", api.Middleware(http.HandlerFunc(c.UpdateBedStateHandler))).Methods("PUT")
	apiCreate.Handle("/capacity/staff", api.Middleware(http.HandlerFunc(c.RegisterStaffHandler))).Methods("POST")
	apiCreate.Handle("/capacity/staff/{staff_id}/assign", api.Middleware(http.HandlerFunc(c.AssignStaffHandler))).Methods("POST")
	apiCreate.Handle("/capacity/staff/{staff_id}/unassign", api.Middleware(http.HandlerFunc(c.UnassignStaffHandler))).Methods("POST")
	apiCreate.Handle("/capacity/{unit}", api.Middleware(http.HandlerFunc(c.UnitCapacityHandler))).Methods("GET")

	apiCreate.Handle("/simulation/admit", api.Middleware(http.HandlerFunc(sim.AdmitSimulatedHandler))).Methods("POST")
	apiCreate.Handle("/simulation/step", api.Middleware(http.HandlerFunc(sim.StepSimulationHandler))).Methods("POST")
	apiCreate.Handle("/simulation/patients", api.Middleware(http.HandlerFunc(sim.SimulatedPatientsHandler))).Methods("GET")
	apiCreate.Handle("/simulation/patients/{patient_id}", api.Middleware(http.HandlerFunc(sim.DischargeSimulatedHandler))).Methods("DELETE")

	apiCreate.Handle("/events", api.Middleware(http.HandlerFunc(stream.EventHistoryHandler))).Methods("GET")

	r.HandleFunc("/ws/events", stream.EventsSocketHandler)

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("adaptivecare-api has connected to the database")

	a.InitializeServices()

	// initialize api router
	a.initializeRoutes()
	return nil

}

// InitializeServices wires the in-memory pipeline components
func (a *App) InitializeServices() {
	weights, err := mcda.WeightsForProfile(a.Config.MCDAProfile)
	if err != nil {
		zap.S().Warnw("unknown mcda profile, using defaults",
			"profile", a.Config.MCDAProfile,
		)
		weights = mcda.DefaultWeights()
	}

	a.Monitor = risk.NewMonitor()
	a.MCDA = mcda.NewEngine(weights)
	a.Decisions = decision.NewEngine(a.MCDA, decision.NewQuantifier(), logging.New("decision"))
	a.Capacity = capacity.NewTrackingSystem()
	a.Simulator = scenario.NewSimulator(a.MCDA)
	a.Comparator = scenario.NewComparator()
	a.Runner = simulation.NewRunner(time.Now().UnixNano())
	a.Bus = events.NewBus()
}

// PatientDB returns a patient database bound to the app's connection
func (a *App) PatientDB() databases.PatientDatabase {
	return databases.NewPatientDatabase(a.dbHelper)
}

// AssessmentDB returns an assessment database bound to the app's connection
func (a *App) AssessmentDB() databases.AssessmentDatabase {
	return databases.NewAssessmentDatabase(a.dbHelper)
}

// DecisionDB returns a decision database bound to the app's connection
func (a *App) DecisionDB() databases.DecisionDatabase {
	return databases.NewDecisionDatabase(a.dbHelper)
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}
