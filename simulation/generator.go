package simulation

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/adaptivecare/adaptivecare-api/models"
)

// Severity drives how sick a generated patient starts out
type Severity string

// Severity levels
const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ParseSeverity validates a raw severity string at the boundary.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityLow, SeverityModerate, SeverityHigh, SeverityCritical:
		return Severity(s), nil
	}
	return "", fmt.Errorf("unknown severity: %q", s)
}

// Pattern is a deterioration trajectory applied to generated vitals over time
type Pattern string

// Deterioration patterns
const (
	PatternStable      Pattern = "stable"
	PatternSepsis      Pattern = "sepsis"
	PatternRespiratory Pattern = "respiratory"
	PatternCardiac     Pattern = "cardiac"
)

// ParsePattern validates a raw deterioration pattern string at the boundary.
func ParsePattern(s string) (Pattern, error) {
	switch Pattern(s) {
	case PatternStable, PatternSepsis, PatternRespiratory, PatternCardiac:
		return Pattern(s), nil
	}
	return "", fmt.Errorf("unknown deterioration pattern: %q", s)
}

var chiefComplaints = []string{
	"Chest pain",
	"Shortness of breath",
	"Abdominal pain",
	"Fever",
	"Headache",
	"Trauma - MVA",
	"Fall injury",
	"Altered mental status",
	"Seizure",
	"Syncope",
	"Severe bleeding",
	"Sepsis",
	"Stroke symptoms",
	"Diabetic emergency",
	"Respiratory failure - COPD exacerbation",
}

var firstNames = []string{
	"John", "Jane", "Michael", "Sarah", "David", "Emily", "Robert", "Lisa",
	"James", "Mary", "William", "Patricia", "Richard", "Jennifer", "Thomas",
	"Linda", "Charles", "Barbara", "Joseph", "Elizabeth",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Wilson", "Anderson",
	"Taylor", "Thomas", "Moore", "Jackson", "Martin", "Lee",
}

// comorbidityPrevalence lists conditions with their rough adult prevalence.
// Fixed ordering keeps seeded generation reproducible.
var comorbidityPrevalence = []struct {
	condition  string
	prevalence float64
}{
	{"Hypertension", 0.35},
	{"Obesity", 0.30},
	{"Diabetes", 0.15},
	{"Asthma", 0.09},
	{"CAD", 0.08},
	{"COPD", 0.07},
	{"CKD", 0.06},
	{"CHF", 0.05},
	{"Previous MI", 0.04},
	{"Stroke history", 0.03},
}

// vitalsMultiplier describes how a pattern skews one channel per hour of
// deterioration.
type vitalsMultiplier struct {
	heartRate   float64
	systolicBP  float64
	spo2        float64
	respiratory float64
	temperature float64
}

var patternMultipliers = map[Pattern]vitalsMultiplier{
	PatternSepsis:      {heartRate: 1.25, systolicBP: 0.80, spo2: 0.96, respiratory: 1.30, temperature: 1.05},
	PatternRespiratory: {heartRate: 1.15, systolicBP: 0.95, spo2: 0.90, respiratory: 1.45, temperature: 1.00},
	PatternCardiac:     {heartRate: 1.35, systolicBP: 0.75, spo2: 0.95, respiratory: 1.20, temperature: 1.00},
}

// Generator produces synthetic patients and vitals. Seeded construction
// makes generated populations reproducible.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator builds a Generator from a seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// NewGeneratorWithClock is NewGenerator with a caller-supplied clock.
func NewGeneratorWithClock(seed int64, now func() time.Time) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

// SeverityToAcuity maps generation severity onto triage acuity.
func SeverityToAcuity(s Severity) models.AcuityLevel {
	switch s {
	case SeverityCritical:
		return models.AcuityResuscitation
	case SeverityHigh:
		return models.AcuityEmergent
	case SeverityModerate:
		return models.AcuityUrgent
	case SeverityLow:
		return models.AcuityLessUrgent
	default:
		return models.AcuityUrgent
	}
}

func (g *Generator) patientID() string {
	return fmt.Sprintf("PT%05d", 10000+g.rng.Intn(90000))
}

func (g *Generator) name() string {
	return firstNames[g.rng.Intn(len(firstNames))] + " " + lastNames[g.rng.Intn(len(lastNames))]
}

// age skews older for sicker patients.
func (g *Generator) age(severity Severity) int {
	switch severity {
	case SeverityCritical:
		return 65 + g.rng.Intn(26)
	case SeverityHigh:
		return 50 + g.rng.Intn(31)
	case SeverityModerate:
		return 35 + g.rng.Intn(36)
	default:
		return 18 + g.rng.Intn(43)
	}
}

func (g *Generator) comorbidities(age int) []string {
	ageFactor := 1.0
	if age >= 65 {
		ageFactor = 2.0
	} else if age >= 50 {
		ageFactor = 1.5
	}

	var picked []string
	for _, c := range comorbidityPrevalence {
		if g.rng.Float64() < c.prevalence*ageFactor {
			picked = append(picked, c.condition)
		}
		if len(picked) == 4 {
			break
		}
	}
	return picked
}

func (g *Generator) between(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// Vitals generates a reading for the given severity, applying the
// deterioration pattern scaled by how long the patient has been declining.
// Deterioration saturates after an hour.
func (g *Generator) Vitals(severity Severity, pattern Pattern, sinceOnset time.Duration) models.VitalSigns {
	var hr, sys, spo2, rr float64
	switch severity {
	case SeverityCritical:
		hr = g.between(100, 160)
		sys = g.between(75, 100)
		spo2 = g.between(82, 92)
		rr = g.between(25, 38)
	case SeverityHigh:
		hr = g.between(95, 120)
		sys = g.between(95, 115)
		spo2 = g.between(90, 94)
		rr = g.between(20, 28)
	case SeverityModerate:
		hr = g.between(70, 100)
		sys = g.between(105, 140)
		spo2 = g.between(94, 97)
		rr = g.between(14, 22)
	default:
		hr = g.between(60, 90)
		sys = g.between(105, 135)
		spo2 = g.between(96, 100)
		rr = g.between(12, 18)
	}
	temp := g.between(36.2, 37.4)

	if m, ok := patternMultipliers[pattern]; ok {
		factor := sinceOnset.Minutes() / 60.0
		if factor > 1 {
			factor = 1
		}
		scale := func(base, multiplier float64) float64 {
			return base * (1 + (multiplier-1)*factor)
		}
		hr = scale(hr, m.heartRate)
		sys = scale(sys, m.systolicBP)
		spo2 = scale(spo2, m.spo2)
		rr = scale(rr, m.respiratory)
		temp = scale(temp, m.temperature)
	}

	clamp := func(v, lo, hi float64) float64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}

	rrVal := clamp(rr, 6, 50)
	return models.VitalSigns{
		HeartRate:       clamp(hr, 30, 200),
		SystolicBP:      clamp(sys, 60, 250),
		DiastolicBP:     clamp(sys*0.65, 40, 150),
		SpO2:            clamp(spo2, 70, 100),
		RespiratoryRate: &rrVal,
		Temperature:     clamp(temp, 34, 42),
		Timestamp:       g.now().Add(sinceOnset),
	}
}

// Patient generates a complete synthetic patient in the given location.
func (g *Generator) Patient(severity Severity, location models.Location, pattern Pattern) models.Patient {
	age := g.age(severity)
	comorbidities := g.comorbidities(age)

	score := float64(len(comorbidities)) * 0.2
	if score > 1 {
		score = 1
	}

	now := g.now()
	return models.Patient{
		ID:             g.patientID(),
		Name:           g.name(),
		Age:            age,
		Gender:         []string{"M", "F", "O"}[g.rng.Intn(3)],
		ChiefComplaint: chiefComplaints[g.rng.Intn(len(chiefComplaints))],
		AcuityLevel:    SeverityToAcuity(severity),
		Location:       location,
		Status:         models.PatientActive,
		Comorbidities:  comorbidities,
		RiskFactors:    models.RiskFactors{ComorbidityScore: score},
		AdmissionTime:  now,
		Vitals:         []models.VitalSigns{g.Vitals(severity, pattern, 0)},
		UpdatedAt:      now,
	}
}
