// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/domain/profile"
)

// MealBuilder provides a fluent interface for building test meals
type MealBuilder struct {
	snapshot meal.Snapshot
}

// NewMealBuilder creates a meal builder with sensible catalog defaults
func NewMealBuilder() *MealBuilder {
	faker := gofakeit.New(0)

	return &MealBuilder{
		snapshot: meal.Snapshot{
			ID:             fmt.Sprintf("meal-%s", faker.LetterN(8)),
			Name:           faker.Dinner(),
			Calories:       500,
			Protein:        30,
			Carbs:          50,
			Fat:            15,
			Fiber:          5,
			Timing:         []string{"lunch", "dinner"},
			CostTier:       string(profile.BudgetMedium),
			Difficulty:     string(meal.DifficultyEasy),
			DefaultPortion: "1 portie (400 g)",
		},
	}
}

// WithID sets the meal id
func (mb *MealBuilder) WithID(id string) *MealBuilder {
	mb.snapshot.ID = id
	return mb
}

// WithName sets the meal name
func (mb *MealBuilder) WithName(name string) *MealBuilder {
	mb.snapshot.Name = name
	return mb
}

// WithMacros sets calories, protein, carbs and fat
func (mb *MealBuilder) WithMacros(calories, protein, carbs, fat float64) *MealBuilder {
	mb.snapshot.Calories = calories
	mb.snapshot.Protein = protein
	mb.snapshot.Carbs = carbs
	mb.snapshot.Fat = fat
	return mb
}

// WithLabels sets the meal labels
func (mb *MealBuilder) WithLabels(labels ...string) *MealBuilder {
	mb.snapshot.Labels = labels
	return mb
}

// WithTiming sets the slots the meal can fill
func (mb *MealBuilder) WithTiming(timing ...string) *MealBuilder {
	mb.snapshot.Timing = timing
	return mb
}

// WithAllergens sets the meal allergens
func (mb *MealBuilder) WithAllergens(allergens ...string) *MealBuilder {
	mb.snapshot.Allergens = allergens
	return mb
}

// WithIngredients sets the meal ingredient lines
func (mb *MealBuilder) WithIngredients(ingredients ...meal.Ingredient) *MealBuilder {
	mb.snapshot.Ingredients = ingredients
	return mb
}

// WithCostTier sets the cost tier
func (mb *MealBuilder) WithCostTier(tier profile.BudgetTier) *MealBuilder {
	mb.snapshot.CostTier = string(tier)
	return mb
}

// WithDifficulty sets the preparation difficulty
func (mb *MealBuilder) WithDifficulty(d meal.Difficulty) *MealBuilder {
	mb.snapshot.Difficulty = string(d)
	return mb
}

// WithDefaultPortion sets the free-text portion description
func (mb *MealBuilder) WithDefaultPortion(portion string) *MealBuilder {
	mb.snapshot.DefaultPortion = portion
	return mb
}

// Build constructs the meal
func (mb *MealBuilder) Build() *meal.Meal {
	return meal.FromSnapshot(mb.snapshot)
}

// ProfileBuilder provides a fluent interface for building test profiles
type ProfileBuilder struct {
	profile profile.Profile
}

// NewProfileBuilder creates a profile builder with explicit targets set
func NewProfileBuilder() *ProfileBuilder {
	return &ProfileBuilder{
		profile: profile.Profile{
			ClientID: uuid.New(),
			Goal:     profile.GoalMaintain,
			Targets: profile.Targets{
				Calories: 2400,
				Protein:  150,
				Carbs:    280,
				Fat:      80,
			},
			MealsPerDay:  4,
			BudgetTier:   profile.BudgetMedium,
			CookingSkill: profile.SkillIntermediate,
		},
	}
}

// WithGoal sets the training goal
func (pb *ProfileBuilder) WithGoal(goal profile.Goal) *ProfileBuilder {
	pb.profile.Goal = goal
	return pb
}

// WithTargets sets explicit daily targets
func (pb *ProfileBuilder) WithTargets(calories, protein, carbs, fat float64) *ProfileBuilder {
	pb.profile.Targets = profile.Targets{
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
	}
	return pb
}

// WithMealsPerDay sets the slot count
func (pb *ProfileBuilder) WithMealsPerDay(n int) *ProfileBuilder {
	pb.profile.MealsPerDay = n
	return pb
}

// WithBudgetTier sets the budget tier
func (pb *ProfileBuilder) WithBudgetTier(tier profile.BudgetTier) *ProfileBuilder {
	pb.profile.BudgetTier = tier
	return pb
}

// WithCookingSkill sets the cooking skill
func (pb *ProfileBuilder) WithCookingSkill(skill profile.CookingSkill) *ProfileBuilder {
	pb.profile.CookingSkill = skill
	return pb
}

// WithLoved sets loved ingredients
func (pb *ProfileBuilder) WithLoved(ingredients ...string) *ProfileBuilder {
	pb.profile.LovedIngredients = ingredients
	return pb
}

// WithHated sets hated ingredients
func (pb *ProfileBuilder) WithHated(ingredients ...string) *ProfileBuilder {
	pb.profile.HatedIngredients = ingredients
	return pb
}

// WithAllergies sets allergies
func (pb *ProfileBuilder) WithAllergies(allergies ...string) *ProfileBuilder {
	pb.profile.Allergies = allergies
	return pb
}

// WithIntolerances sets intolerances
func (pb *ProfileBuilder) WithIntolerances(intolerances ...string) *ProfileBuilder {
	pb.profile.Intolerances = intolerances
	return pb
}

// WithDietaryType sets the dietary type
func (pb *ProfileBuilder) WithDietaryType(dietaryType string) *ProfileBuilder {
	pb.profile.DietaryType = dietaryType
	return pb
}

// WithMealPrepPreference sets the meal prep preference
func (pb *ProfileBuilder) WithMealPrepPreference(pref string) *ProfileBuilder {
	pb.profile.MealPrepPreference = pref
	return pb
}

// Build returns the profile
func (pb *ProfileBuilder) Build() profile.Profile {
	return pb.profile
}

// ZeroRandom is a deterministic randomness source that always returns
// zero, pinning jitter and candidate picks to the top-scored option.
type ZeroRandom struct{}

// Float64 returns 0.
func (ZeroRandom) Float64() float64 { return 0 }

// Intn returns 0.
func (ZeroRandom) Intn(n int) int { return 0 }
