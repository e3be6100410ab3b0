package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func prev(v float64) *float64 { return &v }

func TestAnalyzeTrendNoPrevious(t *testing.T) {
	trend := AnalyzeTrend(85, nil, ChannelSpO2)

	assert.Equal(t, TrendStable, trend.Direction)
	assert.Zero(t, trend.ChangeRate)
	assert.True(t, trend.Critical)
	assert.True(t, trend.OutOfRange)
}

func TestAnalyzeTrendSpO2(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     TrendDirection
	}{
		{"rapid drop", 90, 95, TrendRapidDeterioration},
		{"slow drop", 94, 96, TrendDeteriorating},
		{"recovering", 97, 94, TrendImproving},
		{"steady", 96, 96, TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := AnalyzeTrend(tt.current, prev(tt.previous), ChannelSpO2)
			assert.Equal(t, tt.want, trend.Direction)
		})
	}
}

func TestAnalyzeTrendHeartRate(t *testing.T) {
	// large swing either way is rapid deterioration
	assert.Equal(t, TrendRapidDeterioration, AnalyzeTrend(115, prev(90), ChannelHeartRate).Direction)
	assert.Equal(t, TrendRapidDeterioration, AnalyzeTrend(55, prev(80), ChannelHeartRate).Direction)
	assert.Equal(t, TrendDeteriorating, AnalyzeTrend(102, prev(90), ChannelHeartRate).Direction)
	// small change while in normal range
	assert.Equal(t, TrendImproving, AnalyzeTrend(78, prev(80), ChannelHeartRate).Direction)
	// small change outside normal range is not improvement
	assert.Equal(t, TrendStable, AnalyzeTrend(118, prev(120), ChannelHeartRate).Direction)
}

func TestAnalyzeTrendSystolicBP(t *testing.T) {
	assert.Equal(t, TrendRapidDeterioration, AnalyzeTrend(100, prev(120), ChannelSystolicBP).Direction)
	assert.Equal(t, TrendDeteriorating, AnalyzeTrend(108, prev(120), ChannelSystolicBP).Direction)
	assert.Equal(t, TrendImproving, AnalyzeTrend(115, prev(100), ChannelSystolicBP).Direction)
	// rising into hypertensive territory is not improvement
	assert.Equal(t, TrendStable, AnalyzeTrend(165, prev(150), ChannelSystolicBP).Direction)
}

func TestAnalyzeTrendTemperature(t *testing.T) {
	assert.Equal(t, TrendRapidDeterioration, AnalyzeTrend(39.0, prev(37.5), ChannelTemperature).Direction)
	assert.Equal(t, TrendDeteriorating, AnalyzeTrend(38.4, prev(37.6), ChannelTemperature).Direction)
	// fever breaking: large drop toward normal, current still above 37.5 band check
	assert.Equal(t, TrendStable, AnalyzeTrend(36.9, prev(38.2), ChannelTemperature).Direction)
	assert.Equal(t, TrendImproving, AnalyzeTrend(37.0, prev(37.2), ChannelTemperature).Direction)
}

func TestAnalyzeTrendRangeFlags(t *testing.T) {
	tests := []struct {
		name       string
		channel    string
		value      float64
		critical   bool
		outOfRange bool
	}{
		{"spo2 critical", ChannelSpO2, 87, true, true},
		{"spo2 low", ChannelSpO2, 91, false, true},
		{"spo2 normal", ChannelSpO2, 96, false, false},
		{"hr critical high", ChannelHeartRate, 155, true, true},
		{"hr out of range", ChannelHeartRate, 125, false, true},
		{"bp critical low", ChannelSystolicBP, 78, true, true},
		{"rr critical", ChannelRespiratoryRate, 38, true, true},
		{"temp out of range", ChannelTemperature, 38.8, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := AnalyzeTrend(tt.value, nil, tt.channel)
			assert.Equal(t, tt.critical, trend.Critical)
			assert.Equal(t, tt.outOfRange, trend.OutOfRange)
		})
	}
}

func TestDeteriorationScore(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0.0, DeteriorationScore(map[string]VitalTrend{}))
	})

	t.Run("critical beats out of range", func(t *testing.T) {
		trends := map[string]VitalTrend{
			ChannelSpO2: {Critical: true, OutOfRange: true, Direction: TrendStable},
		}
		assert.Equal(t, 10.0, DeteriorationScore(trends))
	})

	t.Run("mixed directions", func(t *testing.T) {
		trends := map[string]VitalTrend{
			ChannelSpO2:       {Direction: TrendRapidDeterioration, OutOfRange: true}, // 5 + 8
			ChannelHeartRate:  {Direction: TrendDeteriorating},                        // 4
			ChannelSystolicBP: {Direction: TrendImproving},                            // -2
		}
		assert.Equal(t, 15.0, DeteriorationScore(trends))
	})

	t.Run("clamped to 30", func(t *testing.T) {
		trends := map[string]VitalTrend{
			ChannelSpO2:       {Critical: true, Direction: TrendRapidDeterioration},
			ChannelHeartRate:  {Critical: true, Direction: TrendRapidDeterioration},
			ChannelSystolicBP: {Critical: true, Direction: TrendRapidDeterioration},
		}
		assert.Equal(t, 30.0, DeteriorationScore(trends))
	})

	t.Run("never negative", func(t *testing.T) {
		trends := map[string]VitalTrend{
			ChannelSpO2:      {Direction: TrendImproving},
			ChannelHeartRate: {Direction: TrendImproving},
		}
		assert.Equal(t, 0.0, DeteriorationScore(trends))
	})
}
