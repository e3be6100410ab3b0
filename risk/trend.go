package risk

import "math"

// AnalyzeTrend compares the current reading for a channel against the
// previous one and classifies the direction of change. With no previous
// reading the direction is stable and only the absolute-value flags are set.
func AnalyzeTrend(current float64, previous *float64, channel string) VitalTrend {
	trend := VitalTrend{
		CurrentValue:  current,
		PreviousValue: previous,
		Direction:     TrendStable,
	}
	setRangeFlags(&trend, current, channel)

	if previous == nil {
		return trend
	}

	change := current - *previous
	trend.ChangeRate = change

	switch channel {
	case ChannelSpO2:
		// Lower is worse for SpO2
		switch {
		case change < -3:
			trend.Direction = TrendRapidDeterioration
		case change < -1:
			trend.Direction = TrendDeteriorating
		case change > 2:
			trend.Direction = TrendImproving
		}

	case ChannelHeartRate, ChannelRespiratoryRate:
		// Deviation from normal in either direction is bad
		absChange := math.Abs(change)
		switch {
		case absChange > 20:
			trend.Direction = TrendRapidDeterioration
		case absChange > 10:
			trend.Direction = TrendDeteriorating
		case absChange < 5 && current >= 60 && current <= 100:
			trend.Direction = TrendImproving
		}

	case ChannelSystolicBP:
		// Hypotension is more concerning than hypertension
		switch {
		case change < -15:
			trend.Direction = TrendRapidDeterioration
		case change < -10:
			trend.Direction = TrendDeteriorating
		case change > 10 && current < 140:
			trend.Direction = TrendImproving
		}

	case ChannelTemperature:
		// Rising fever is concerning
		switch {
		case change > 1.0:
			trend.Direction = TrendRapidDeterioration
		case math.Abs(change) > 0.5:
			if current > 37.5 {
				trend.Direction = TrendDeteriorating
			}
		case current >= 36.5 && current <= 37.5:
			trend.Direction = TrendImproving
		}
	}

	return trend
}

// setRangeFlags applies the fixed per-channel critical and out-of-range
// absolute thresholds.
func setRangeFlags(trend *VitalTrend, current float64, channel string) {
	switch channel {
	case ChannelSpO2:
		trend.Critical = current < 88
		trend.OutOfRange = current < 92
	case ChannelHeartRate:
		trend.Critical = current < 40 || current > 150
		trend.OutOfRange = current < 50 || current > 120
	case ChannelRespiratoryRate:
		trend.Critical = current < 8 || current > 35
		trend.OutOfRange = current < 10 || current > 25
	case ChannelSystolicBP:
		trend.Critical = current < 80 || current > 200
		trend.OutOfRange = current < 90 || current > 180
	case ChannelTemperature:
		trend.Critical = current < 35 || current > 40
		trend.OutOfRange = current < 36 || current > 38.5
	}
}

// DeteriorationScore converts the per-channel trends into a single
// deterioration score, bounded to 0-30.
func DeteriorationScore(trends map[string]VitalTrend) float64 {
	score := 0.0

	for _, trend := range trends {
		if trend.Critical {
			score += 10
		} else if trend.OutOfRange {
			score += 5
		}

		switch trend.Direction {
		case TrendRapidDeterioration:
			score += 8
		case TrendDeteriorating:
			score += 4
		case TrendImproving:
			score -= 2
		}
	}

	if score > 30 {
		return 30
	}
	if score < 0 {
		return 0
	}
	return score
}
