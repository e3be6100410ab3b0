package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/adaptivecare/adaptivecare-api/models"
)

func TestSeverityToAcuity(t *testing.T) {
	assert.Equal(t, models.AcuityResuscitation, SeverityToAcuity(SeverityCritical))
	assert.Equal(t, models.AcuityEmergent, SeverityToAcuity(SeverityHigh))
	assert.Equal(t, models.AcuityUrgent, SeverityToAcuity(SeverityModerate))
	assert.Equal(t, models.AcuityLessUrgent, SeverityToAcuity(SeverityLow))
	assert.Equal(t, models.AcuityUrgent, SeverityToAcuity(Severity("bogus")))
}

func TestGeneratorDeterministicWithSeed(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return fixed }

	a := NewGeneratorWithClock(42, clock).Patient(SeverityHigh, models.LocationED, PatternStable)
	b := NewGeneratorWithClock(42, clock).Patient(SeverityHigh, models.LocationED, PatternStable)

	assert.Equal(t, a, b)
}

func TestGeneratedPatientShape(t *testing.T) {
	g := NewGenerator(7)
	p := g.Patient(SeverityCritical, models.LocationED, PatternSepsis)

	assert.NotEmpty(t, p.ID)
	assert.NotEmpty(t, p.Name)
	assert.GreaterOrEqual(t, p.Age, 65)
	assert.LessOrEqual(t, p.Age, 90)
	assert.Equal(t, models.AcuityResuscitation, p.AcuityLevel)
	assert.Equal(t, models.LocationED, p.Location)
	assert.Equal(t, models.PatientActive, p.Status)
	assert.Len(t, p.Vitals, 1)
	assert.LessOrEqual(t, len(p.Comorbidities), 4)
	assert.LessOrEqual(t, p.RiskFactors.ComorbidityScore, 1.0)
}

func TestVitalsWithinPhysiologicBounds(t *testing.T) {
	g := NewGenerator(99)
	for _, severity := range []Severity{SeverityLow, SeverityModerate, SeverityHigh, SeverityCritical} {
		for i := 0; i < 50; i++ {
			v := g.Vitals(severity, PatternStable, 0)
			assert.GreaterOrEqual(t, v.HeartRate, 30.0)
			assert.LessOrEqual(t, v.HeartRate, 200.0)
			assert.GreaterOrEqual(t, v.SystolicBP, 60.0)
			assert.LessOrEqual(t, v.SystolicBP, 250.0)
			assert.GreaterOrEqual(t, v.SpO2, 70.0)
			assert.LessOrEqual(t, v.SpO2, 100.0)
			assert.NotNil(t, v.RespiratoryRate)
			assert.GreaterOrEqual(t, *v.RespiratoryRate, 6.0)
			assert.LessOrEqual(t, *v.RespiratoryRate, 50.0)
			assert.GreaterOrEqual(t, v.Temperature, 34.0)
			assert.LessOrEqual(t, v.Temperature, 42.0)
		}
	}
}

func TestSepsisPatternWorsensVitals(t *testing.T) {
	// same seed so the baseline draw matches between the two calls
	base := NewGenerator(5).Vitals(SeverityModerate, PatternSepsis, 0)
	late := NewGenerator(5).Vitals(SeverityModerate, PatternSepsis, time.Hour)

	assert.Greater(t, late.HeartRate, base.HeartRate)
	assert.Less(t, late.SystolicBP, base.SystolicBP)
	assert.LessOrEqual(t, late.SpO2, base.SpO2)
	assert.Greater(t, *late.RespiratoryRate, *base.RespiratoryRate)
}

func TestRunnerStepAppendsVitals(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRunnerWithClock(11, func() time.Time { return current })

	p := r.Admit(SeverityHigh, models.LocationED, PatternRespiratory)
	assert.Len(t, r.Patients(), 1)

	current = current.Add(10 * time.Minute)
	updated := r.Step()

	assert.Len(t, updated, 1)
	assert.Equal(t, p.ID, updated[0].ID)
	assert.Len(t, updated[0].Vitals, 2)
	assert.Equal(t, current, updated[0].Vitals[1].Timestamp)
	assert.Equal(t, current, updated[0].UpdatedAt)
}

func TestRunnerDischarge(t *testing.T) {
	r := NewRunner(3)
	p := r.Admit(SeverityLow, models.LocationWard, PatternStable)

	assert.True(t, r.Discharge(p.ID))
	assert.False(t, r.Discharge(p.ID))
	assert.Empty(t, r.Patients())
	assert.Empty(t, r.Step())
}
