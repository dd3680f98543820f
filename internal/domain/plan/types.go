// Package plan defines the plan-side data model: per-slot targets,
// scored and scaled meals, day plans and the assembled week plan.
package plan

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/domain/profile"
)

// DisqualifiedScore is the sentinel total for meals that fail a hard
// exclusion or allergy check. A disqualified meal is never selected.
const DisqualifiedScore = -100

// ScoreBreakdown itemizes the subscores behind a meal's total.
type ScoreBreakdown struct {
	GoalAlignment float64 `json:"goal_alignment"`
	MacroFit      float64 `json:"macro_fit"`
	Preferences   float64 `json:"preferences"`
	Practical     float64 `json:"practical"`
	Budget        float64 `json:"budget"`
	Variety       float64 `json:"variety"`
	SelectedBonus float64 `json:"selected_bonus"`
}

// ScoredMeal couples a catalog meal with its score for one profile.
type ScoredMeal struct {
	Meal      *meal.Meal
	Total     float64
	Breakdown ScoreBreakdown
}

// Disqualified reports whether the meal was hard-disqualified.
func (s ScoredMeal) Disqualified() bool {
	return s.Total <= DisqualifiedScore
}

// SlotTarget is the macro sub-target for one named meal slot.
type SlotTarget struct {
	Slot       string  `json:"slot"`
	Calories   float64 `json:"target_calories"`
	Protein    float64 `json:"target_protein"`
	Carbs      float64 `json:"target_carbs"`
	Fat        float64 `json:"target_fat"`
	Percentage float64 `json:"percentage"`
}

// ScaledMeal is a derived copy of a catalog meal with macros, portion
// text and ingredient quantities scaled toward a target. The source
// catalog record is never mutated.
type ScaledMeal struct {
	MealID      string            `json:"meal_id"`
	BaseID      string            `json:"base_id"`
	Name        string            `json:"name"`
	Calories    float64           `json:"calories"`
	Protein     float64           `json:"protein"`
	Carbs       float64           `json:"carbs"`
	Fat         float64           `json:"fat"`
	Portion     string            `json:"portion"`
	Ingredients []meal.Ingredient `json:"ingredients,omitempty"`
	ScaleFactor float64           `json:"scale_factor"`
	Score       float64           `json:"score"`
	CostTier    string            `json:"cost_tier"`
	Labels      []string          `json:"labels,omitempty"`
	Forced      bool              `json:"forced,omitempty"`
}

// SlotEntry binds a slot name to the meal(s) placed in it. Regular
// slots hold one meal; a snack slot may hold several when the coach
// forces extra snacks into the same timing.
type SlotEntry struct {
	Slot  string        `json:"slot"`
	Meals []*ScaledMeal `json:"meals"`
}

// Totals accumulates day or week macro sums.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add accumulates a scaled meal into the totals.
func (t *Totals) Add(m *ScaledMeal) {
	t.Calories += m.Calories
	t.Protein += m.Protein
	t.Carbs += m.Carbs
	t.Fat += m.Fat
}

// Accuracy records how closely a day's actuals matched its targets.
// Each component is 100 at an exact match and loses at most 20 points,
// so the recorded floor is 80 regardless of deviation size.
type Accuracy struct {
	Total    int     `json:"total"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// AccuracyComponent applies the bounded deviation formula:
// 100 − min(20, |100 − actual/target×100|).
func AccuracyComponent(actual, target float64) float64 {
	if target <= 0 {
		return 100
	}
	deviation := math.Abs(100 - actual/target*100)
	return 100 - math.Min(20, deviation)
}

// NewAccuracy computes the accuracy record for a pair of metrics.
func NewAccuracy(actual, target Totals) Accuracy {
	cal := AccuracyComponent(actual.Calories, target.Calories)
	prot := AccuracyComponent(actual.Protein, target.Protein)
	return Accuracy{
		Total:    int(math.Round((cal + prot) / 2)),
		Calories: cal,
		Protein:  prot,
	}
}

// DayPlan is one generated day: ordered slot entries plus totals,
// targets and the accuracy record.
type DayPlan struct {
	Day      int         `json:"day"`
	Entries  []SlotEntry `json:"entries"`
	Totals   Totals      `json:"totals"`
	Targets  Totals      `json:"targets"`
	Accuracy Accuracy    `json:"accuracy"`
}

// Meals iterates every placed meal across the day's entries.
func (d DayPlan) Meals() []*ScaledMeal {
	var out []*ScaledMeal
	for _, entry := range d.Entries {
		out = append(out, entry.Meals...)
	}
	return out
}

// Stats aggregates plan-level statistics.
type Stats struct {
	AverageAccuracy float64 `json:"average_accuracy"`
	WeekAverage     Totals  `json:"week_average"`
	VarietyScore    float64 `json:"variety_score"`
	ComplianceScore float64 `json:"compliance_score"`
	DistinctMeals   int     `json:"distinct_meals"`
}

// Analysis is the read-only diagnostics output derived from a plan.
type Analysis struct {
	AverageMealScore    float64        `json:"average_meal_score"`
	LabelUsage          map[string]int `json:"label_usage"`
	EstimatedWeeklyCost float64        `json:"estimated_weekly_cost"`
	EstimatedDailyCost  float64        `json:"estimated_daily_cost"`
	SelectedCoveragePct float64        `json:"selected_coverage_pct"`
	Recommendations     []string       `json:"recommendations"`
	AvgScaleFactor      float64        `json:"avg_scale_factor"`
	MinScaleFactor      float64        `json:"min_scale_factor"`
	MaxScaleFactor      float64        `json:"max_scale_factor"`
}

// WeekPlan is the fully assembled multi-day plan.
type WeekPlan struct {
	ID           uuid.UUID       `json:"id"`
	ClientID     uuid.UUID       `json:"client_id"`
	StartDate    time.Time       `json:"start_date"`
	Days         []DayPlan       `json:"days"`
	DailyTargets profile.Targets `json:"daily_targets"`
	Stats        Stats           `json:"stats"`
	Analysis     *Analysis       `json:"analysis,omitempty"`
}
