package risk

import "github.com/adaptivecare/adaptivecare-api/models"

// Per-channel weights for the overall vitals score, modeled on NEWS2.
// SpO2 carries the most weight.
var vitalWeights = map[string]float64{
	ChannelSpO2:            3.0,
	ChannelHeartRate:       2.5,
	ChannelSystolicBP:      2.5,
	ChannelRespiratoryRate: 2.0,
	ChannelTemperature:     1.5,
}

// ScoreSpO2 scores oxygen saturation on a 0-12 point scale
func ScoreSpO2(spo2 float64) float64 {
	switch {
	case spo2 >= 96:
		return 0
	case spo2 >= 94:
		return 1
	case spo2 >= 92:
		return 2
	case spo2 >= 90:
		return 3
	case spo2 >= 88:
		return 6
	case spo2 >= 85:
		return 9
	default:
		return 12
	}
}

// ScoreHeartRate scores heart rate on a 0-12 point scale
func ScoreHeartRate(hr float64) float64 {
	switch {
	case hr >= 51 && hr <= 90:
		return 0
	case (hr >= 41 && hr <= 50) || (hr >= 91 && hr <= 110):
		return 1
	case hr >= 111 && hr <= 130:
		return 2
	case hr <= 40 || (hr >= 131 && hr <= 150):
		return 6
	default: // >150
		return 12
	}
}

// ScoreSystolicBP scores systolic blood pressure on a 0-12 point scale
func ScoreSystolicBP(sysBP float64) float64 {
	switch {
	case sysBP >= 111 && sysBP <= 219:
		return 0
	case sysBP >= 101 && sysBP <= 110:
		return 1
	case sysBP >= 91 && sysBP <= 100:
		return 2
	case sysBP >= 81 && sysBP <= 90:
		return 6
	default: // <=80 or >=220
		return 12
	}
}

// ScoreRespiratoryRate scores respiratory rate on a 0-12 point scale.
// A missing reading contributes nothing.
func ScoreRespiratoryRate(rr *float64) float64 {
	if rr == nil {
		return 0
	}
	switch {
	case *rr >= 12 && *rr <= 20:
		return 0
	case (*rr >= 9 && *rr <= 11) || (*rr >= 21 && *rr <= 24):
		return 1
	case *rr <= 8 || (*rr >= 25 && *rr <= 29):
		return 2
	case *rr >= 30 && *rr <= 35:
		return 6
	default: // >35
		return 12
	}
}

// ScoreTemperature scores temperature on a 0-6 point scale
func ScoreTemperature(temp float64) float64 {
	switch {
	case temp >= 36.1 && temp <= 38.0:
		return 0
	case (temp >= 35.1 && temp <= 36.0) || (temp >= 38.1 && temp <= 39.0):
		return 1
	case temp >= 39.1 && temp <= 40.0:
		return 2
	default: // <=35 or >=40
		return 6
	}
}

// VitalScore combines the per-channel point scores into the overall
// vital-signs risk score, bounded to 0-40.
func VitalScore(v models.VitalSigns) float64 {
	scores := map[string]float64{
		ChannelSpO2:            ScoreSpO2(v.SpO2),
		ChannelHeartRate:       ScoreHeartRate(v.HeartRate),
		ChannelSystolicBP:      ScoreSystolicBP(v.SystolicBP),
		ChannelRespiratoryRate: ScoreRespiratoryRate(v.RespiratoryRate),
		ChannelTemperature:     ScoreTemperature(v.Temperature),
	}

	// Weighted sum normalized against the 12-point channel scale
	weighted := 0.0
	for name, score := range scores {
		weighted += score * vitalWeights[name] / 12.0
	}

	total := weighted * 3.33
	if total > 40 {
		return 40
	}
	return total
}
