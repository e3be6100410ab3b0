package decision

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adaptivecare/adaptivecare-api/mcda"
	"github.com/adaptivecare/adaptivecare-api/models"
)

// ActionType is a recommended patient-flow action
type ActionType string

// Actions the engine can recommend
const (
	ActionEscalate     ActionType = "escalate"
	ActionAdmit        ActionType = "admit"
	ActionTransfer     ActionType = "transfer"
	ActionObserve      ActionType = "observe"
	ActionDelay        ActionType = "delay"
	ActionReprioritize ActionType = "reprioritize"
)

// ParseAction validates a raw action string at the boundary.
func ParseAction(s string) (ActionType, error) {
	switch ActionType(s) {
	case ActionEscalate, ActionAdmit, ActionTransfer, ActionObserve, ActionDelay, ActionReprioritize:
		return ActionType(s), nil
	}
	return "", fmt.Errorf("unknown action: %q", s)
}

// Alternative is a secondary action with the condition under which it applies
type Alternative struct {
	Action    ActionType `json:"action" bson:"action"`
	Condition string     `json:"condition" bson:"condition"`
}

// Output is a complete decision record: the recommended action plus the
// scores, confidence, and wait assessment that produced it.
type Output struct {
	ID        string    `json:"decisionId" bson:"_id"`
	PatientID string    `json:"patientId" bson:"patientId"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`

	Action     ActionType      `json:"recommendedAction" bson:"recommendedAction"`
	TargetUnit models.UnitType `json:"targetUnit,omitempty" bson:"targetUnit,omitempty"`
	Rationale  string          `json:"rationale" bson:"rationale"`

	Scores         mcda.Scores        `json:"scores" bson:"scores"`
	Priority       mcda.PriorityLevel `json:"priority" bson:"priority"`
	DominantFactor string             `json:"dominantFactor" bson:"dominantFactor"`

	Wait        WaitAssessment    `json:"waitAssessment" bson:"waitAssessment"`
	Uncertainty UncertaintyReport `json:"uncertainty" bson:"uncertainty"`

	Alternatives []Alternative `json:"alternatives" bson:"alternatives"`
}

// Engine turns an evaluation context into an actionable recommendation.
type Engine struct {
	mcda       *mcda.Engine
	quantifier *Quantifier
	logger     *zap.SugaredLogger
	now        func() time.Time
}

// NewEngine wires the decision engine to its MCDA engine and quantifier.
func NewEngine(m *mcda.Engine, q *Quantifier, logger *zap.SugaredLogger) *Engine {
	return &Engine{mcda: m, quantifier: q, logger: logger, now: time.Now}
}

// NewEngineWithClock is NewEngine with a caller-supplied clock.
func NewEngineWithClock(m *mcda.Engine, q *Quantifier, logger *zap.SugaredLogger, now func() time.Time) *Engine {
	return &Engine{mcda: m, quantifier: q, logger: logger, now: now}
}

// Decide scores the context, assesses waiting, quantifies uncertainty, and
// picks the recommended action with its alternatives.
func (e *Engine) Decide(ctx mcda.EvaluationContext) *Output {
	scores := e.mcda.CalculateFromContext(ctx)
	priority := scores.Priority()
	wait := AssessWait(ctx, scores)
	uncertainty := e.quantifier.Quantify(ctx, scores)

	action, target, rationale := e.selectAction(ctx, scores, priority, wait)

	now := e.now()
	out := &Output{
		ID:             uuid.New().String(),
		PatientID:      ctx.Patient.PatientID,
		Timestamp:      now,
		CreatedAt:      now,
		Action:         action,
		TargetUnit:     target,
		Rationale:      rationale,
		Scores:         scores,
		Priority:       priority,
		DominantFactor: scores.DominantFactor(),
		Wait:           wait,
		Uncertainty:    uncertainty,
		Alternatives:   alternatives(action, scores, wait),
	}

	e.logger.Infow("decision made",
		"patientId", out.PatientID,
		"action", out.Action,
		"priority", out.Priority,
		"composite", out.Scores.Composite,
		"confidence", out.Uncertainty.Confidence,
	)
	return out
}

func (e *Engine) selectAction(ctx mcda.EvaluationContext, scores mcda.Scores, priority mcda.PriorityLevel, wait WaitAssessment) (ActionType, models.UnitType, string) {
	if priority == mcda.PriorityCritical {
		return ActionEscalate, "",
			fmt.Sprintf("Critical priority (composite %.1f) requires immediate clinical escalation", scores.Composite)
	}

	if wait.SafeToWait && priority != mcda.PriorityHigh {
		return ActionDelay, "",
			fmt.Sprintf("Patient can safely wait %d-%d minutes while capacity improves",
				wait.RecommendedWaitMin, wait.RecommendedWaitMax)
	}

	if scores.ResourceCapacity >= 50 {
		target := ctx.Patient.PreferredUnit
		if target == "" {
			target = ctx.Capacity.Unit
		}
		if ctx.Patient.CurrentLocation == models.LocationED {
			return ActionAdmit, target,
				fmt.Sprintf("Capacity available (score %.1f); admit from ED to %s", scores.ResourceCapacity, target)
		}
		return ActionTransfer, target,
			fmt.Sprintf("Capacity available (score %.1f); transfer to %s", scores.ResourceCapacity, target)
	}

	return ActionObserve, "", "Insufficient capacity for placement; continue monitoring in place"
}

// alternatives lists up to three fallback actions in priority order.
func alternatives(primary ActionType, scores mcda.Scores, wait WaitAssessment) []Alternative {
	var alts []Alternative

	if primary == ActionDelay {
		alts = append(alts, Alternative{
			Action:    ActionAdmit,
			Condition: "Proceed despite safe-to-wait if capacity is critical concern",
		})
	}
	if (primary == ActionAdmit || primary == ActionTransfer) && wait.WaitProbability > 0.3 {
		alts = append(alts, Alternative{
			Action:    ActionDelay,
			Condition: fmt.Sprintf("Could wait up to %d min if needed", wait.RecommendedWaitMax),
		})
	}
	if scores.Composite > 60 && primary != ActionEscalate {
		alts = append(alts, Alternative{
			Action:    ActionEscalate,
			Condition: "Escalate if situation worsens",
		})
	}
	if primary != ActionObserve && primary != ActionDelay {
		alts = append(alts, Alternative{
			Action:    ActionObserve,
			Condition: "Continue monitoring if placement not immediately needed",
		})
	}

	if len(alts) > 3 {
		alts = alts[:3]
	}
	return alts
}
