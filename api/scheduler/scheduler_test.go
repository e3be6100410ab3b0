package scheduler_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/adaptivecare/adaptivecare-api/api/scheduler"
	"github.com/adaptivecare/adaptivecare-api/capacity"
	"github.com/adaptivecare/adaptivecare-api/config"
	"github.com/adaptivecare/adaptivecare-api/databases/mocks"
	"github.com/adaptivecare/adaptivecare-api/decision"
	"github.com/adaptivecare/adaptivecare-api/events"
	"github.com/adaptivecare/adaptivecare-api/mcda"
	"github.com/adaptivecare/adaptivecare-api/models"
	"github.com/adaptivecare/adaptivecare-api/risk"
	"github.com/adaptivecare/adaptivecare-api/simulation"
)

func newTestScheduler(pdb *mocks.PatientDatabase, adb *mocks.AssessmentDatabase, ddb *mocks.DecisionDatabase) (*scheduler.Scheduler, *simulation.Runner, *risk.Monitor, *events.Bus) {
	runner := simulation.NewRunner(42)
	monitor := risk.NewMonitor()
	engine := decision.NewEngine(mcda.NewEngine(mcda.DefaultWeights()), decision.NewQuantifier(), zap.NewNop().Sugar())
	bus := events.NewBus()

	// one bed per unit so every unit shows up in capacity snapshots
	tracker := capacity.NewTrackingSystem()
	for i, unit := range models.AllUnits {
		tracker.Beds.Register(models.Bed{ID: fmt.Sprintf("bed-%d", i+1), Unit: unit, State: models.BedAvailable})
	}

	cfg := &config.Config{TickInterval: time.Minute}
	s := scheduler.New(cfg, runner, monitor, engine, tracker, bus, pdb, adb, ddb)
	return s, runner, monitor, bus
}

func TestScheduler_RunPipelineTick(t *testing.T) {
	pdb := &mocks.PatientDatabase{}
	pdb.On("AppendVitals", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	adb := &mocks.AssessmentDatabase{}
	adb.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
	ddb := &mocks.DecisionDatabase{}
	ddb.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

	s, runner, monitor, bus := newTestScheduler(pdb, adb, ddb)
	patient := runner.Admit(simulation.SeverityModerate, models.LocationED, simulation.PatternStable)

	s.RunPipelineTick()

	assert.Len(t, bus.History(events.TopicVitalsRecorded, 0), 1)
	assert.Len(t, bus.History(events.TopicRiskAssessed, 0), 1)
	assert.NotNil(t, monitor.Latest(patient.ID))

	// every tracked unit publishes a capacity snapshot
	assert.Len(t, bus.History(events.TopicCapacityAssessed, 0), len(models.AllUnits))

	adb.AssertExpectations(t)
	pdb.AssertExpectations(t)
}

func TestScheduler_RunPipelineTickEscalation(t *testing.T) {
	pdb := &mocks.PatientDatabase{}
	pdb.On("AppendVitals", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	adb := &mocks.AssessmentDatabase{}
	adb.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
	ddb := &mocks.DecisionDatabase{}
	ddb.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

	s, runner, _, bus := newTestScheduler(pdb, adb, ddb)
	runner.Admit(simulation.SeverityCritical, models.LocationED, simulation.PatternSepsis)

	// run several ticks so the deterioration pattern has time to cross
	// the escalation threshold
	for i := 0; i < 10; i++ {
		s.RunPipelineTick()
	}

	escalations := bus.History(events.TopicRiskEscalation, 0)
	if assert.NotEmpty(t, escalations) {
		assert.NotEmpty(t, bus.History(events.TopicDecisionMade, 0))
	}
}

func TestScheduler_SweepDischarged(t *testing.T) {
	pdb := &mocks.PatientDatabase{}
	pdb.On("AppendVitals", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	adb := &mocks.AssessmentDatabase{}
	adb.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
	ddb := &mocks.DecisionDatabase{}
	ddb.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

	s, runner, monitor, _ := newTestScheduler(pdb, adb, ddb)
	patient := runner.Admit(simulation.SeverityLow, models.LocationED, simulation.PatternStable)
	s.RunPipelineTick()
	assert.NotNil(t, monitor.Latest(patient.ID))

	pdb.On("Find", mock.Anything, mock.Anything).Return([]models.Patient{{ID: patient.ID}}, nil)
	s.SweepDischarged()

	assert.Nil(t, monitor.Latest(patient.ID))
}

func TestScheduler_StartStop(t *testing.T) {
	pdb := &mocks.PatientDatabase{}
	adb := &mocks.AssessmentDatabase{}
	ddb := &mocks.DecisionDatabase{}

	s, _, _, _ := newTestScheduler(pdb, adb, ddb)

	s.Start()
	s.Stop()
}
