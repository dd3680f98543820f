package gorm

import (
	"encoding/json"
	"fmt"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/domain/plan"
	"github.com/mealforge/v1/internal/domain/profile"
	"go.uber.org/zap"
)

// ModelToMeal converts a catalog row into a domain meal. The domain
// normalizer interprets the raw list columns and degrades bad fields
// instead of failing the row.
func ModelToMeal(m *MealModel, logger *zap.Logger) *meal.Meal {
	return meal.Normalize(meal.Record{
		ID:             m.ID,
		Name:           m.Name,
		Calories:       m.Calories,
		Protein:        m.Protein,
		Carbs:          m.Carbs,
		Fat:            m.Fat,
		Fiber:          m.Fiber,
		Labels:         m.Labels,
		Timing:         m.Timing,
		Allergens:      m.Allergens,
		Ingredients:    m.Ingredients,
		CostTier:       m.CostTier,
		Difficulty:     m.Difficulty,
		DefaultPortion: m.DefaultPortion,
	}, logger)
}

// ModelToClient converts a profile row into the domain client record.
func ModelToClient(m *ClientProfileModel) *profile.Client {
	return &profile.Client{
		ID:            m.ClientID,
		Age:           m.Age,
		Gender:        m.Gender,
		HeightCM:      m.HeightCM,
		WeightKG:      m.WeightKG,
		Goal:          profile.Goal(m.Goal),
		ActivityLevel: profile.ActivityLevel(m.ActivityLevel),

		TargetCalories: m.TargetCalories,
		TargetProtein:  m.TargetProtein,
		TargetCarbs:    m.TargetCarbs,
		TargetFat:      m.TargetFat,

		MealsPerDay:        m.MealsPerDay,
		BudgetTier:         profile.BudgetTier(m.BudgetTier),
		CookingSkill:       profile.CookingSkill(m.CookingSkill),
		MealPrepPreference: m.MealPrepPreference,
		DietaryType:        m.DietaryType,

		LovedIngredients: m.LovedIngredients,
		HatedIngredients: m.HatedIngredients,
		Allergies:        m.Allergies,
		Intolerances:     m.Intolerances,
	}
}

// WeekPlanToModel serializes a week plan into its persisted row form.
func WeekPlanToModel(w *plan.WeekPlan) (*WeekPlanModel, error) {
	payload, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("serialize week plan: %w", err)
	}

	return &WeekPlanModel{
		ID:        w.ID,
		ClientID:  w.ClientID,
		StartDate: w.StartDate,
		Payload:   string(payload),
	}, nil
}

// ModelToWeekPlan deserializes a persisted row back into a week plan.
func ModelToWeekPlan(m *WeekPlanModel) (*plan.WeekPlan, error) {
	var week plan.WeekPlan
	if err := json.Unmarshal([]byte(m.Payload), &week); err != nil {
		return nil, fmt.Errorf("deserialize week plan %s: %w", m.ID, err)
	}
	return &week, nil
}
