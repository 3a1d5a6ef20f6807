package creator

// PlanStage classifies how far along a product plan is.
type PlanStage string

const (
	PlanStageIdea     PlanStage = "idea"
	PlanStageBuilding PlanStage = "building"
	PlanStageLaunched PlanStage = "launched"
)

// ProductPlan describes one monetizable product a creator is working on.
type ProductPlan struct {
	Name       string    `json:"name"`
	Stage      PlanStage `json:"stage"`
	PriceCents int64     `json:"price_cents"`
	Notes      string    `json:"notes,omitempty"`
}
