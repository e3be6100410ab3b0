package scenario

import (
	"fmt"

	"github.com/adaptivecare/adaptivecare-api/mcda"
	"github.com/adaptivecare/adaptivecare-api/models"
)

// RiskBand is the coarse risk classification attached to a simulated outcome
type RiskBand string

// Risk bands
const (
	RiskLow    RiskBand = "LOW"
	RiskMedium RiskBand = "MEDIUM"
	RiskHigh   RiskBand = "HIGH"
)

// PlacementStatus describes the current availability of a placement option
type PlacementStatus string

// Placement statuses
const (
	StatusAvailable   PlacementStatus = "available"
	StatusConstrained PlacementStatus = "constrained"
	StatusUnavailable PlacementStatus = "unavailable"
	StatusPending     PlacementStatus = "pending"
)

// ParsePlacementStatus validates a raw status string at the boundary.
func ParsePlacementStatus(s string) (PlacementStatus, error) {
	switch PlacementStatus(s) {
	case StatusAvailable, StatusConstrained, StatusUnavailable, StatusPending:
		return PlacementStatus(s), nil
	}
	return "", fmt.Errorf("unknown placement status: %q", s)
}

// Outcome is the predicted result of one what-if timing scenario.
type Outcome struct {
	ScenarioID                 string   `json:"scenarioId" bson:"scenarioId"`
	Description                string   `json:"description" bson:"description"`
	WaitTimeMinutes            int      `json:"waitTimeMinutes" bson:"waitTimeMinutes"`
	PredictedCapacity          float64  `json:"predictedCapacityScore" bson:"predictedCapacityScore"`
	PredictedBedWait           int      `json:"predictedWaitForBed" bson:"predictedWaitForBed"`
	RiskLevel                  RiskBand `json:"riskLevel" bson:"riskLevel"`
	ExpectedBenefits           []string `json:"expectedBenefits" bson:"expectedBenefits"`
	ExpectedRisks              []string `json:"expectedRisks" bson:"expectedRisks"`
	ProbabilityOfBetterOutcome float64  `json:"probabilityOfBetterOutcome" bson:"probabilityOfBetterOutcome"`
}

// IsFavorable reports whether the scenario is worth pursuing.
func (o *Outcome) IsFavorable() bool {
	return o.ProbabilityOfBetterOutcome > 0.6 && o.RiskLevel != RiskHigh
}

// PlacementOption is one candidate destination with its scoring and
// availability data.
type PlacementOption struct {
	OptionID             string          `json:"optionId" bson:"optionId"`
	Unit                 models.UnitType `json:"unit" bson:"unit"`
	BedID                string          `json:"bedId,omitempty" bson:"bedId,omitempty"`
	Status               PlacementStatus `json:"status" bson:"status"`
	Scores               *mcda.Scores    `json:"mcdaScores,omitempty" bson:"mcdaScores,omitempty"`
	CapacityScore        float64         `json:"capacityScore" bson:"capacityScore"`
	StaffRatio           float64         `json:"staffRatio" bson:"staffRatio"`
	EstimatedWaitMinutes int             `json:"estimatedWaitMinutes" bson:"estimatedWaitMinutes"`
	Constraints          []string        `json:"constraints" bson:"constraints"`
}

// IsViable reports whether the option can actually take the patient.
func (p *PlacementOption) IsViable() bool {
	return p.Status == StatusAvailable || p.Status == StatusPending
}

// ViabilityScore blends the MCDA composite with wait and constraint
// penalties. Non-viable options score zero.
func (p *PlacementOption) ViabilityScore() float64 {
	if !p.IsViable() {
		return 0
	}

	base := 50.0
	if p.Scores != nil {
		base = p.Scores.Composite
	}

	if p.EstimatedWaitMinutes > 60 {
		base *= 0.7
	} else if p.EstimatedWaitMinutes > 30 {
		base *= 0.85
	}

	penalty := 1 - float64(len(p.Constraints))*0.1
	if penalty < 0.5 {
		penalty = 0.5
	}
	return base * penalty
}
