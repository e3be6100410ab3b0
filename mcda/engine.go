package mcda

import (
	"sort"

	"github.com/adaptivecare/adaptivecare-api/risk"
)

// Engine evaluates decision options against weighted criteria.
// Construct once per weight profile; evaluations are pure functions of
// their inputs.
type Engine struct {
	weights Weights
}

// NewEngine builds an engine, normalizing the supplied weights if they do
// not already sum to 1.0.
func NewEngine(w Weights) *Engine {
	return &Engine{weights: w.Normalized()}
}

// Weights exposes the engine's effective (normalized) weights.
func (e *Engine) Weights() Weights {
	return e.weights
}

// CalculateScores evaluates raw criterion values under the engine's weights.
func (e *Engine) CalculateScores(safety, urgency, capacity, flow float64) Scores {
	return NewScores(safety, urgency, capacity, flow, e.weights)
}

// CalculateFromContext derives the four criterion values from an evaluation
// context and scores them. Missing inputs fall back to neutral defaults
// rather than failing; the gaps surface through uncertainty scoring.
func (e *Engine) CalculateFromContext(ctx EvaluationContext) Scores {
	return e.CalculateScores(
		safetyScore(ctx),
		urgencyScore(ctx),
		ctx.Capacity.capacityScoreOrDefault(),
		flowImpactScore(ctx),
	)
}

func safetyScore(ctx EvaluationContext) float64 {
	var score float64
	if ctx.Risk != nil {
		score = ctx.Risk.RiskScore
		switch ctx.Risk.Trajectory {
		case risk.TrendDeteriorating:
			score *= 1.3
		case risk.TrendImproving:
			score *= 0.8
		}
		if score > 100 {
			score = 100
		}
	} else if ctx.Patient.AcuityLevel != nil {
		score = float64(*ctx.Patient.AcuityLevel) * 20
	}

	if ctx.Patient.RequiresMonitoring {
		score += 15
		if score > 100 {
			score = 100
		}
	}
	if ctx.Patient.IsolationRequired {
		score += 10
		if score > 100 {
			score = 100
		}
	}
	return score
}

func urgencyScore(ctx EvaluationContext) float64 {
	if ctx.Patient.TimeCriticalCondition {
		return 95
	}

	wait := 0.0
	if ctx.Patient.WaitTimeMinutes != nil {
		wait = *ctx.Patient.WaitTimeMinutes
	}

	var score float64
	switch {
	case wait > 240:
		score = 90
	case wait > 120:
		score = 70
	case wait > 60:
		score = 55
	default:
		score = 30
	}

	if ctx.Patient.IsEmergency {
		score += 30
		if score > 100 {
			score = 100
		}
	}
	if ctx.Patient.NeedsSurgery {
		score += 20
		if score > 100 {
			score = 100
		}
	}
	return score
}

func flowImpactScore(ctx EvaluationContext) float64 {
	score := 50.0
	if ctx.Patient.BoardingInED {
		score += 25
	}
	if ctx.Patient.PendingProcedures {
		score += 15
	}

	occupancy := ctx.Capacity.occupancyOrDefault()
	if occupancy > 0.9 {
		score *= 1.3
	} else if occupancy > 0.8 {
		score *= 1.15
	}

	if score > 100 {
		return 100
	}
	return score
}

// Option is one named candidate in a multi-option comparison.
type Option struct {
	Name   string `json:"name"`
	Scores Scores `json:"scores"`
}

// OptionComparison is the annotated result for one option after ranking.
type OptionComparison struct {
	Name      string   `json:"name"`
	Scores    Scores   `json:"scores"`
	Rank      int      `json:"rank"`
	Benefits  []string `json:"benefits"`
	Risks     []string `json:"risks"`
	TradeOffs []string `json:"tradeOffs"`
}

// CompareOptions ranks options by composite score (best first) and
// annotates each with benefits, risks, and trade-offs relative to the best
// per-criterion scores across the set.
func (e *Engine) CompareOptions(options []Option) []OptionComparison {
	if len(options) == 0 {
		return nil
	}

	best := options[0].Scores
	for _, o := range options[1:] {
		if o.Scores.PatientSafety > best.PatientSafety {
			best.PatientSafety = o.Scores.PatientSafety
		}
		if o.Scores.Urgency > best.Urgency {
			best.Urgency = o.Scores.Urgency
		}
		if o.Scores.ResourceCapacity > best.ResourceCapacity {
			best.ResourceCapacity = o.Scores.ResourceCapacity
		}
		if o.Scores.FlowImpact > best.FlowImpact {
			best.FlowImpact = o.Scores.FlowImpact
		}
	}

	results := make([]OptionComparison, len(options))
	for i, o := range options {
		results[i] = annotateOption(o, best)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Scores.Composite > results[j].Scores.Composite
	})
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

func annotateOption(o Option, best Scores) OptionComparison {
	c := OptionComparison{
		Name:      o.Name,
		Scores:    o.Scores,
		Benefits:  []string{},
		Risks:     []string{},
		TradeOffs: []string{},
	}

	nearBest := func(v, b float64) bool { return b == 0 || v >= b*0.9 }
	wellBelow := func(v, b float64) bool { return b > 0 && v < b*0.7 }

	if nearBest(o.Scores.PatientSafety, best.PatientSafety) {
		c.Benefits = append(c.Benefits, "High safety consideration")
	} else if wellBelow(o.Scores.PatientSafety, best.PatientSafety) {
		c.Risks = append(c.Risks, "Lower safety priority than alternatives")
	}

	if nearBest(o.Scores.Urgency, best.Urgency) {
		c.Benefits = append(c.Benefits, "Addresses urgency effectively")
	} else if wellBelow(o.Scores.Urgency, best.Urgency) {
		c.TradeOffs = append(c.TradeOffs, "May delay urgent needs")
	}

	if nearBest(o.Scores.ResourceCapacity, best.ResourceCapacity) {
		c.Benefits = append(c.Benefits, "Good resource availability")
	} else if wellBelow(o.Scores.ResourceCapacity, best.ResourceCapacity) {
		c.TradeOffs = append(c.TradeOffs, "Capacity constraints may limit placement")
	}

	if nearBest(o.Scores.FlowImpact, best.FlowImpact) {
		c.Benefits = append(c.Benefits, "Positive downstream impact")
	} else if wellBelow(o.Scores.FlowImpact, best.FlowImpact) {
		c.TradeOffs = append(c.TradeOffs, "Limited flow improvement")
	}

	return c
}
