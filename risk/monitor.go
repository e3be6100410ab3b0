package risk

import (
	"fmt"
	"sync"
	"time"

	"github.com/adaptivecare/adaptivecare-api/models"
	"go.uber.org/zap"
)

// Monitor produces risk assessments and keeps a bounded per-patient history.
// Safe for concurrent use.
type Monitor struct {
	mu        sync.RWMutex
	histories map[string]*History

	// injectable clock for deterministic tests
	now func() time.Time
}

// NewMonitor constructs a Monitor using the wall clock.
func NewMonitor() *Monitor {
	return &Monitor{
		histories: make(map[string]*History),
		now:       time.Now,
	}
}

// NewMonitorWithClock constructs a Monitor with a caller-supplied clock.
func NewMonitorWithClock(now func() time.Time) *Monitor {
	return &Monitor{
		histories: make(map[string]*History),
		now:       now,
	}
}

// AssessPatient runs a full risk assessment for a patient and appends it to
// the patient's history. The patient must have at least one vitals reading.
func (m *Monitor) AssessPatient(p *models.Patient) (*Assessment, error) {
	vitals := p.LatestVitals()
	if vitals == nil {
		return nil, fmt.Errorf("patient %s has no vital signs recorded", p.ID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	history, ok := m.histories[p.ID]
	if !ok {
		history = &History{PatientID: p.ID}
		m.histories[p.ID] = history
	}
	previous := history.Latest()

	trends := m.analyzeVitals(vitals, previous)

	criticalVitals := make([]string, 0, len(trends))
	for _, channel := range []string{ChannelSpO2, ChannelHeartRate, ChannelSystolicBP, ChannelRespiratoryRate, ChannelTemperature} {
		if t, ok := trends[channel]; ok && t.Critical {
			criticalVitals = append(criticalVitals, channel)
		}
	}

	breakdown := FactorBreakdown{
		VitalSignsScore:    VitalScore(*vitals),
		DeteriorationScore: DeteriorationScore(trends),
		ComorbidityScore:   ComorbidityScore(p.Comorbidities, p.RiskFactors),
		AcuityScore:        AcuityScore(p.AcuityLevel),
	}
	score := breakdown.TotalScore()

	previousScore := score
	if previous != nil {
		previousScore = previous.RiskScore
	}
	delta := score - previousScore

	level := LevelForScore(score)
	trend := OverallTrend(trends, delta)
	escalate, reason := ShouldEscalate(score, trend, criticalVitals)

	now := m.now()
	assessment := Assessment{
		PatientID:             p.ID,
		Timestamp:             now,
		RiskScore:             score,
		RiskLevel:             level,
		Trend:                 trend,
		Breakdown:             breakdown,
		VitalTrends:           trends,
		NeedsEscalation:       escalate,
		EscalationReason:      reason,
		CriticalVitals:        criticalVitals,
		MinutesSinceAdmission: int(now.Sub(p.AdmissionTime).Minutes()),
		PreviousRiskScore:     previousScore,
		RiskScoreDelta:        delta,
		MonitoringFrequency:   MonitoringFrequency(level, trend),
	}
	history.add(assessment)

	if escalate {
		zap.S().Warnw("patient risk escalation",
			"patientId", p.ID,
			"riskScore", score,
			"reason", reason,
		)
	}

	return &assessment, nil
}

// analyzeVitals builds the per-channel trends, using the previous
// assessment's readings as the comparison baseline.
func (m *Monitor) analyzeVitals(current *models.VitalSigns, previous *Assessment) map[string]VitalTrend {
	prevValue := func(channel string) *float64 {
		if previous == nil {
			return nil
		}
		if t, ok := previous.VitalTrends[channel]; ok {
			v := t.CurrentValue
			return &v
		}
		return nil
	}

	trends := map[string]VitalTrend{
		ChannelSpO2:        AnalyzeTrend(current.SpO2, prevValue(ChannelSpO2), ChannelSpO2),
		ChannelHeartRate:   AnalyzeTrend(current.HeartRate, prevValue(ChannelHeartRate), ChannelHeartRate),
		ChannelSystolicBP:  AnalyzeTrend(current.SystolicBP, prevValue(ChannelSystolicBP), ChannelSystolicBP),
		ChannelTemperature: AnalyzeTrend(current.Temperature, prevValue(ChannelTemperature), ChannelTemperature),
	}
	if current.RespiratoryRate != nil {
		trends[ChannelRespiratoryRate] = AnalyzeTrend(*current.RespiratoryRate, prevValue(ChannelRespiratoryRate), ChannelRespiratoryRate)
	}
	return trends
}

// History returns a copy of the assessment history for a patient, oldest first.
func (m *Monitor) History(patientID string) []Assessment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.histories[patientID]
	if !ok {
		return nil
	}
	out := make([]Assessment, len(h.Assessments))
	copy(out, h.Assessments)
	return out
}

// Latest returns the most recent assessment for a patient, or nil.
func (m *Monitor) Latest(patientID string) *Assessment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.histories[patientID]
	if !ok {
		return nil
	}
	latest := h.Latest()
	if latest == nil {
		return nil
	}
	copied := *latest
	return &copied
}

// Trajectory returns the risk score series for a patient, oldest first.
func (m *Monitor) Trajectory(patientID string) []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.histories[patientID]
	if !ok {
		return nil
	}
	return h.Trajectory()
}

// HighRiskPatients returns the latest assessment of every patient currently
// in the high or critical band.
func (m *Monitor) HighRiskPatients() []Assessment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Assessment
	for _, h := range m.histories {
		if latest := h.Latest(); latest != nil && latest.IsHighRisk() {
			out = append(out, *latest)
		}
	}
	return out
}

// DeterioratingPatients returns the latest assessment of every patient whose
// trend is downward.
func (m *Monitor) DeterioratingPatients() []Assessment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Assessment
	for _, h := range m.histories {
		if latest := h.Latest(); latest != nil && latest.IsDeteriorating() {
			out = append(out, *latest)
		}
	}
	return out
}

// Reset drops the stored history for a patient, typically on discharge.
func (m *Monitor) Reset(patientID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.histories, patientID)
}
