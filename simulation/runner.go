package simulation

import (
	"sync"
	"time"

	"github.com/adaptivecare/adaptivecare-api/models"
)

// tracked pairs a live patient with its generation parameters.
type tracked struct {
	patient  models.Patient
	severity Severity
	pattern  Pattern
	onset    time.Time
}

// Runner maintains a synthetic patient population and advances their
// vitals over time. Safe for concurrent use.
type Runner struct {
	mu       sync.Mutex
	gen      *Generator
	patients map[string]*tracked
	now      func() time.Time
}

// NewRunner builds a Runner over a seeded generator.
func NewRunner(seed int64) *Runner {
	return NewRunnerWithClock(seed, time.Now)
}

// NewRunnerWithClock is NewRunner with a caller-supplied clock.
func NewRunnerWithClock(seed int64, now func() time.Time) *Runner {
	return &Runner{
		gen:      NewGeneratorWithClock(seed, now),
		patients: make(map[string]*tracked),
		now:      now,
	}
}

// Admit generates a new patient and adds it to the population.
func (r *Runner) Admit(severity Severity, location models.Location, pattern Pattern) models.Patient {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.gen.Patient(severity, location, pattern)
	r.patients[p.ID] = &tracked{
		patient:  p,
		severity: severity,
		pattern:  pattern,
		onset:    r.now(),
	}
	return p
}

// Step appends a fresh vitals reading to every active patient and returns
// the updated population.
func (r *Runner) Step() []models.Patient {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	updated := make([]models.Patient, 0, len(r.patients))
	for _, t := range r.patients {
		if t.patient.Status == models.PatientDischarged {
			continue
		}
		vitals := r.gen.Vitals(t.severity, t.pattern, now.Sub(t.onset))
		vitals.Timestamp = now
		t.patient.Vitals = append(t.patient.Vitals, vitals)
		t.patient.UpdatedAt = now
		updated = append(updated, t.patient)
	}
	return updated
}

// Discharge removes a patient from the simulated population.
func (r *Runner) Discharge(patientID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patients[patientID]; !ok {
		return false
	}
	delete(r.patients, patientID)
	return true
}

// Patients returns a copy of the active population.
func (r *Runner) Patients() []models.Patient {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Patient, 0, len(r.patients))
	for _, t := range r.patients {
		out = append(out, t.patient)
	}
	return out
}
