package capacity

import (
	"time"

	"github.com/adaptivecare/adaptivecare-api/models"
)

// Average cleaning turnaround for a bed.
const cleaningTime = 30 * time.Minute

// Average length of stay per unit, used when no better signal exists.
var avgLengthOfStay = map[models.UnitType]time.Duration{
	models.UnitICU:  72 * time.Hour,
	models.UnitWard: 96 * time.Hour,
	models.UnitED:   4 * time.Hour,
	models.UnitOR:   3 * time.Hour,
	models.UnitPACU: 2 * time.Hour,
}

const fallbackLengthOfStay = 48 * time.Hour

// Predictor estimates future bed availability from current bed states.
type Predictor struct {
	beds *BedTracker
	now  func() time.Time
}

// NewPredictor builds a Predictor over the given bed tracker.
func NewPredictor(beds *BedTracker) *Predictor {
	return NewPredictorWithClock(beds, time.Now)
}

// NewPredictorWithClock builds a Predictor with a caller-supplied clock.
func NewPredictorWithClock(beds *BedTracker, now func() time.Time) *Predictor {
	return &Predictor{beds: beds, now: now}
}

// NextAvailable predicts when the next bed frees up in a unit.
// Cleaning beds win (shortest turnaround), then explicit estimates, then a
// fraction of the unit's average length of stay. Returns nil when the unit
// has no occupied or transitioning beds.
func (p *Predictor) NextAvailable(unit models.UnitType) *time.Time {
	beds := p.beds.UnitBeds(unit)
	now := p.now()

	var earliestCleaning *time.Time
	for _, bed := range beds {
		if bed.State != models.BedCleaning {
			continue
		}
		done := bed.LastStateChange.Add(cleaningTime)
		if done.Before(now) {
			done = now
		}
		if earliestCleaning == nil || done.Before(*earliestCleaning) {
			earliestCleaning = &done
		}
	}
	if earliestCleaning != nil {
		return earliestCleaning
	}

	var earliestEstimate *time.Time
	for _, bed := range beds {
		if bed.EstimatedAvailableAt == nil || !bed.EstimatedAvailableAt.After(now) {
			continue
		}
		if earliestEstimate == nil || bed.EstimatedAvailableAt.Before(*earliestEstimate) {
			est := *bed.EstimatedAvailableAt
			earliestEstimate = &est
		}
	}
	if earliestEstimate != nil {
		return earliestEstimate
	}

	occupied := 0
	for _, bed := range beds {
		if bed.State == models.BedOccupied {
			occupied++
		}
	}
	if occupied > 0 {
		los, ok := avgLengthOfStay[unit]
		if !ok {
			los = fallbackLengthOfStay
		}
		// assume some occupied beds are near discharge
		estimated := now.Add(los / 10)
		return &estimated
	}

	return nil
}

// AvailabilityWithin predicts how many unit beds free up inside the
// timeframe, with a confidence for the prediction.
func (p *Predictor) AvailabilityWithin(unit models.UnitType, timeframe time.Duration) (int, float64) {
	beds := p.beds.UnitBeds(unit)
	now := p.now()
	cutoff := now.Add(timeframe)

	predicted := 0
	confidence := 0.9

	occupied := 0
	for _, bed := range beds {
		switch {
		case bed.State == models.BedCleaning:
			if !bed.LastStateChange.Add(cleaningTime).After(cutoff) {
				predicted++
			}
		case bed.EstimatedAvailableAt != nil &&
			bed.EstimatedAvailableAt.After(now) && !bed.EstimatedAvailableAt.After(cutoff):
			predicted++
		case bed.State == models.BedOccupied:
			occupied++
		}
	}

	if occupied > 0 {
		los, ok := avgLengthOfStay[unit]
		if !ok {
			los = fallbackLengthOfStay
		}
		dischargeProb := timeframe.Minutes() / los.Minutes()
		if dischargeProb > 0.3 {
			dischargeProb = 0.3
		}
		predicted += int(float64(occupied) * dischargeProb)
		confidence *= 0.7
	}

	return predicted, confidence
}
