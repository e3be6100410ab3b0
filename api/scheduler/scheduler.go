package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
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
	"github.com/adaptivecare/adaptivecare-api/simulation"
)

// Scheduler handles the periodic patient-flow pipeline jobs
type Scheduler struct {
	cron     *cron.Cron
	Config   *config.Config
	Runner   *simulation.Runner
	Monitor  *risk.Monitor
	Engine   *decision.Engine
	Capacity *capacity.TrackingSystem
	Bus      *events.Bus
	PDB      databases.PatientDatabase
	ADB      databases.AssessmentDatabase
	DDB      databases.DecisionDatabase
}

// New creates a new scheduler instance
func New(
	cfg *config.Config,
	runner *simulation.Runner,
	monitor *risk.Monitor,
	engine *decision.Engine,
	tracker *capacity.TrackingSystem,
	bus *events.Bus,
	pDB databases.PatientDatabase,
	aDB databases.AssessmentDatabase,
	dDB databases.DecisionDatabase,
) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		Config:   cfg,
		Runner:   runner,
		Monitor:  monitor,
		Engine:   engine,
		Capacity: tracker,
		Bus:      bus,
		PDB:      pDB,
		ADB:      aDB,
		DDB:      dDB,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Advance the pipeline on every tick
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.Config.TickInterval), s.RunPipelineTick)
	if err != nil {
		zap.S().Errorw("failed to register pipeline tick job", "error", err)
	}

	// Clear risk history for discharged patients daily at 3 AM UTC
	_, err = s.cron.AddFunc("0 3 * * *", s.SweepDischarged)
	if err != nil {
		zap.S().Errorw("failed to register discharge sweep job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Patient flow scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Patient flow scheduler stopped")
}

// RunPipelineTick advances simulated patients, reassesses risk and
// produces decisions for anyone who needs escalation.
func (s *Scheduler) RunPipelineTick() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	patients := s.Runner.Step()

	assessed := 0
	escalated := 0
	for i := range patients {
		p := &patients[i]

		if vitals := p.LatestVitals(); vitals != nil {
			if err := s.PDB.AppendVitals(ctx, p.ID, *vitals); err != nil {
				zap.S().Warnw("failed to persist simulated vitals", "patientId", p.ID, "error", err)
			}
			s.Bus.Publish(events.TopicVitalsRecorded, map[string]interface{}{
				"patientId": p.ID,
				"vitals":    *vitals,
			})
		}

		assessment, err := s.Monitor.AssessPatient(p)
		if err != nil {
			zap.S().Warnw("failed to assess patient", "patientId", p.ID, "error", err)
			continue
		}
		assessed++

		if _, err := s.ADB.InsertOne(ctx, assessment); err != nil {
			zap.S().Warnw("failed to persist assessment", "patientId", p.ID, "error", err)
		}
		s.Bus.Publish(events.TopicRiskAssessed, assessment)

		if assessment.NeedsEscalation {
			escalated++
			s.Bus.Publish(events.TopicRiskEscalation, assessment)
			s.escalate(ctx, p, assessment)
		}
	}

	for _, unitAssessment := range s.Capacity.AllAssessments() {
		s.Bus.Publish(events.TopicCapacityAssessed, unitAssessment)
	}

	zap.S().Infow("Pipeline tick complete",
		"patientsStepped", len(patients),
		"assessed", assessed,
		"escalated", escalated,
	)
}

// escalate produces a placement decision for a deteriorating patient and
// notifies the on-call address.
func (s *Scheduler) escalate(ctx context.Context, p *models.Patient, assessment *risk.Assessment) {
	output := s.Engine.Decide(s.evaluationContext(p, assessment))

	if _, err := s.DDB.InsertOne(ctx, output); err != nil {
		zap.S().Warnw("failed to persist escalation decision", "patientId", p.ID, "error", err)
	}
	s.Bus.Publish(events.TopicDecisionMade, output)

	s.sendEscalationEmail(p, assessment, output)

	zap.S().Infow("Escalation decision produced",
		"patientId", p.ID,
		"riskScore", assessment.RiskScore,
		"action", output.Action,
		"targetUnit", output.TargetUnit,
	)
}

// evaluationContext assembles the decision input for an escalating patient.
// Escalations are evaluated against the ICU since the patient needs a
// monitored bed.
func (s *Scheduler) evaluationContext(p *models.Patient, assessment *risk.Assessment) mcda.EvaluationContext {
	unit := models.UnitICU

	acuity := p.AcuityLevel
	var waitMinutes *float64
	if !p.AdmissionTime.IsZero() {
		minutes := time.Since(p.AdmissionTime).Minutes()
		waitMinutes = &minutes
	}

	timestamps := make([]time.Time, 0, len(p.Vitals))
	for _, v := range p.Vitals {
		timestamps = append(timestamps, v.Timestamp)
	}

	unitAssessment := s.Capacity.UnitAssessment(unit)
	score := unitAssessment.CapacityScore
	occ := unitAssessment.CurrentOccupancy
	staff := unitAssessment.StaffRatio
	at := unitAssessment.Timestamp

	return mcda.EvaluationContext{
		Patient: mcda.PatientContext{
			PatientID:          p.ID,
			AcuityLevel:        &acuity,
			WaitTimeMinutes:    waitMinutes,
			CurrentLocation:    p.Location,
			PreferredUnit:      unit,
			RequiresMonitoring: true,
			BoardingInED:       p.Location == models.LocationED,
			VitalsTimestamps:   timestamps,
		},
		Risk: &mcda.RiskContext{
			RiskScore:  assessment.RiskScore,
			Trajectory: assessment.Trend,
		},
		Capacity: mcda.CapacityContext{
			Unit:                  unitAssessment.Unit,
			CapacityScore:         &score,
			CurrentOccupancy:      &occ,
			StaffRatio:            &staff,
			PredictedAvailability: unitAssessment.PredictedAvailability,
			AssessedAt:            &at,
		},
	}
}

// SweepDischarged drops in-memory risk history for patients who have left
func (s *Scheduler) SweepDischarged() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	discharged, err := s.PDB.Find(ctx, bson.M{"status": models.PatientDischarged})
	if err != nil {
		zap.S().Errorw("failed to find discharged patients", "error", err)
		return
	}

	for _, p := range discharged {
		s.Monitor.Reset(p.ID)
	}

	zap.S().Infow("Discharge sweep complete", "patientsCleared", len(discharged))
}

// --- Email Helper Functions ---

func (s *Scheduler) sendEscalationEmail(p *models.Patient, assessment *risk.Assessment, output *decision.Output) {
	if s.Config.SendGridKey == "" || s.Config.AlertEmail == "" {
		zap.S().Debug("escalation email not configured, skipping")
		return
	}

	subject := fmt.Sprintf("Risk Escalation: patient %s (%s)", p.ID, assessment.RiskLevel)
	plainText := fmt.Sprintf(
		"Patient %s escalated with risk score %.1f (%s).\nReason: %s\nRecommended action: %s, target unit: %s\nRationale: %s",
		p.ID, assessment.RiskScore, assessment.RiskLevel,
		assessment.EscalationReason,
		output.Action, output.TargetUnit, output.Rationale,
	)
	htmlContent := fmt.Sprintf(
		"<p>Patient <strong>%s</strong> escalated with risk score <strong>%.1f</strong> (%s).</p><p>Reason: %s</p><p>Recommended action: %s, target unit: %s</p><p>%s</p>",
		p.ID, assessment.RiskScore, assessment.RiskLevel,
		assessment.EscalationReason,
		output.Action, output.TargetUnit, output.Rationale,
	)

	from := mail.NewEmail("AdaptiveCare Alerts", "no-reply@adaptivecare.io")
	to := mail.NewEmail("On-Call Clinician", s.Config.AlertEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(s.Config.SendGridKey)
	response, err := client.Send(message)
	if err != nil {
		zap.S().Errorw("failed to send escalation email", "error", err, "patientId", p.ID)
		return
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
}
