// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/mealforge/v1/internal/application/shopping"
	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/domain/plan"
)

// VariationLevel controls how many top-scored candidates are eligible
// for randomized selection during day generation.
type VariationLevel string

const (
	VariationLow    VariationLevel = "low"
	VariationMedium VariationLevel = "medium"
	VariationHigh   VariationLevel = "high"
)

// ForcedMeal is a coach override: the named meal is placed into the
// first open slot with the given timing.
type ForcedMeal struct {
	Timing string `json:"timing"`
	MealID string `json:"meal_id"`
}

// GeneratePlanCommand carries the options for one generation request.
type GeneratePlanCommand struct {
	ClientID            uuid.UUID
	Days                int
	VariationLevel      VariationLevel
	AvoidDuplicates     bool
	ForcedMeals         []ForcedMeal
	ExcludedIngredients []string
	SelectedIngredients []string
}

// WeekPlanResult is the outcome of a generation request. A persistence
// failure does not void the plan: SaveError carries the failure while
// Plan stays usable.
type WeekPlanResult struct {
	Plan           *plan.WeekPlan `json:"plan"`
	ShoppingList   *shopping.List `json:"shopping_list"`
	DerivedTargets bool           `json:"derived_targets"`
	SaveError      string         `json:"save_error,omitempty"`
}

// PlanService is the meal-plan generation use case surface.
type PlanService interface {
	GenerateWeekPlan(ctx context.Context, cmd GeneratePlanCommand) (*WeekPlanResult, error)
	GetActivePlan(ctx context.Context, clientID uuid.UUID) (*plan.WeekPlan, error)
	ListPlans(ctx context.Context, clientID uuid.UUID) ([]*plan.WeekPlan, error)
	GetMeal(ctx context.Context, mealID string) (*meal.Meal, error)
	ExportShoppingList(ctx context.Context, clientID uuid.UUID, format string) ([]byte, string, error)
}
