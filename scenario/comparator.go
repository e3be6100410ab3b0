package scenario

import (
	"fmt"
	"strings"
)

// Comparator picks the best scenario or placement out of a simulated set.
type Comparator struct{}

// NewComparator builds a Comparator.
func NewComparator() *Comparator {
	return &Comparator{}
}

// CompareWaitScenarios returns the best timing scenario and an explanation.
// Favorable scenarios win on shortest wait; with none favorable, immediate
// action is recommended.
func (c *Comparator) CompareWaitScenarios(scenarios []Outcome) (*Outcome, string) {
	if len(scenarios) == 0 {
		return nil, "No scenarios to compare"
	}

	var best *Outcome
	for i := range scenarios {
		s := &scenarios[i]
		if !s.IsFavorable() {
			continue
		}
		if best == nil || s.WaitTimeMinutes < best.WaitTimeMinutes {
			best = s
		}
	}

	if best != nil {
		return best, fmt.Sprintf(
			"Recommend waiting %d minutes. Expected capacity: %.0f. %s",
			best.WaitTimeMinutes, best.PredictedCapacity, strings.Join(best.ExpectedBenefits, ", "))
	}

	immediate := &scenarios[0]
	for i := range scenarios {
		if scenarios[i].WaitTimeMinutes == 0 {
			immediate = &scenarios[i]
			break
		}
	}
	return immediate, fmt.Sprintf(
		"Immediate action recommended (no favorable wait scenarios). Risk level: %s.",
		immediate.RiskLevel)
}

// ComparePlacementOptions returns the best viable placement, up to three
// alternatives, and an explanation. With no viable option it returns the
// top three candidates so callers can surface what was considered.
func (c *Comparator) ComparePlacementOptions(options []PlacementOption) (*PlacementOption, []PlacementOption, string) {
	if len(options) == 0 {
		return nil, nil, "No placement options available"
	}

	var best *PlacementOption
	for i := range options {
		o := &options[i]
		if !o.IsViable() {
			continue
		}
		if best == nil || o.ViabilityScore() > best.ViabilityScore() {
			best = o
		}
	}

	if best == nil {
		limit := len(options)
		if limit > 3 {
			limit = 3
		}
		return nil, options[:limit], "No viable options currently. Consider waiting for capacity."
	}

	var alternatives []PlacementOption
	for i := range options {
		o := &options[i]
		if o == best || !o.IsViable() {
			continue
		}
		if len(alternatives) < 3 {
			alternatives = append(alternatives, *o)
		}
	}

	explanation := fmt.Sprintf("Recommend placement in %s (score: %.0f). ", best.Unit, best.ViabilityScore())
	if len(best.Constraints) > 0 {
		explanation += fmt.Sprintf("Note: %s. ", strings.Join(best.Constraints, ", "))
	}
	if best.EstimatedWaitMinutes > 0 {
		explanation += fmt.Sprintf("Estimated wait: %d minutes.", best.EstimatedWaitMinutes)
	}

	return best, alternatives, explanation
}
