// Package profile contains the client nutrition profile and the logic
// that resolves it into concrete daily macro targets.
package profile

import (
	"github.com/google/uuid"
)

// Goal classifies what a client is training for.
type Goal string

const (
	GoalFatLoss     Goal = "fat_loss"
	GoalMuscleGain  Goal = "muscle_gain"
	GoalMaintain    Goal = "maintain"
	GoalPerformance Goal = "performance"
)

// ActivityLevel classifies habitual daily activity.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
	ActivityAthlete   ActivityLevel = "athlete"
)

// BudgetTier is the coarse cost classification shared with the catalog.
type BudgetTier string

const (
	BudgetLow     BudgetTier = "budget"
	BudgetMedium  BudgetTier = "moderate"
	BudgetPremium BudgetTier = "premium"
)

// CookingSkill maps onto meal difficulty tiers.
type CookingSkill string

const (
	SkillBeginner     CookingSkill = "beginner"
	SkillIntermediate CookingSkill = "intermediate"
	SkillAdvanced     CookingSkill = "advanced"
)

// Client is the raw client record as handed over by the persistence
// collaborator. Explicit macro targets may be absent (zero).
type Client struct {
	ID            uuid.UUID
	Age           int
	Gender        string
	HeightCM      float64
	WeightKG      float64
	Goal          Goal
	ActivityLevel ActivityLevel

	// Explicit daily targets; zero means "derive for me"
	TargetCalories float64
	TargetProtein  float64
	TargetCarbs    float64
	TargetFat      float64

	MealsPerDay        int
	BudgetTier         BudgetTier
	CookingSkill       CookingSkill
	MealPrepPreference string
	DietaryType        string

	LovedIngredients []string
	HatedIngredients []string
	Allergies        []string
	Intolerances     []string
}

// Targets holds a resolved set of daily macro targets.
// Derived marks targets computed from the BMR/TDEE heuristic instead
// of explicit client input, so downstream consumers can warn the user.
type Targets struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Derived  bool
}

// Profile is the normalized nutrition profile the engine works with.
type Profile struct {
	ClientID           uuid.UUID
	Goal               Goal
	Targets            Targets
	MealsPerDay        int
	BudgetTier         BudgetTier
	CookingSkill       CookingSkill
	MealPrepPreference string
	DietaryType        string

	LovedIngredients []string
	HatedIngredients []string
	Allergies        []string
	Intolerances     []string
}

// TargetCaloriesPerMeal returns the average calorie budget per slot.
func (p Profile) TargetCaloriesPerMeal() float64 {
	if p.MealsPerDay <= 0 {
		return p.Targets.Calories
	}
	return p.Targets.Calories / float64(p.MealsPerDay)
}
