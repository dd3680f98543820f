package profile

import (
	"math"

	"go.uber.org/zap"
)

// Population defaults used when a client record is incomplete. The
// fallback is deliberate and logged; it is never presented as measured
// client data (Targets.Derived stays true).
const (
	defaultAge      = 30
	defaultWeightKG = 70.0
	defaultHeightCM = 170.0
)

// Goal adjustments applied to TDEE, in kcal/day.
const (
	fatLossDeficit    = 500.0
	muscleGainSurplus = 300.0
)

// Per-kilogram macro targets for derived profiles.
const (
	proteinPerKG = 2.2
	fatPerKG     = 1.0
)

// activityMultipliers maps activity levels to their TDEE multiplier.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary: 1.2,
	ActivityLight:     1.375,
	ActivityModerate:  1.55,
	ActivityActive:    1.725,
	ActivityAthlete:   1.9,
}

// Resolve builds a normalized nutrition profile for a client. Explicit
// targets are normalized and passed through; absent targets are derived
// from the Mifflin-St Jeor BMR heuristic. Pure function: never fails,
// the degraded path substitutes population defaults and logs the fact.
func Resolve(c Client, logger *zap.Logger) Profile {
	mealsPerDay := c.MealsPerDay
	if mealsPerDay <= 0 {
		mealsPerDay = 4
	}

	goal := c.Goal
	if goal == "" {
		goal = GoalMaintain
	}

	p := Profile{
		ClientID:           c.ID,
		Goal:               goal,
		MealsPerDay:        mealsPerDay,
		BudgetTier:         c.BudgetTier,
		CookingSkill:       c.CookingSkill,
		MealPrepPreference: c.MealPrepPreference,
		DietaryType:        c.DietaryType,
		LovedIngredients:   c.LovedIngredients,
		HatedIngredients:   c.HatedIngredients,
		Allergies:          c.Allergies,
		Intolerances:       c.Intolerances,
	}

	if c.TargetCalories > 0 {
		p.Targets = Targets{
			Calories: math.Round(c.TargetCalories),
			Protein:  math.Round(c.TargetProtein),
			Carbs:    math.Round(c.TargetCarbs),
			Fat:      math.Round(c.TargetFat),
			Derived:  false,
		}
		return p
	}

	p.Targets = deriveTargets(c, goal, logger)
	return p
}

// deriveTargets computes BMR via Mifflin-St Jeor, scales to TDEE with
// the activity multiplier and adjusts by goal. Protein and fat are set
// per kilogram of bodyweight; carbs fill the calorie remainder.
func deriveTargets(c Client, goal Goal, logger *zap.Logger) Targets {
	age := c.Age
	weight := c.WeightKG
	height := c.HeightCM
	gender := c.Gender

	if age <= 0 || weight <= 0 || height <= 0 {
		logger.Warn("Incomplete client record, deriving targets from population defaults",
			zap.String("client_id", c.ID.String()),
			zap.Int("age", c.Age),
			zap.Float64("weight_kg", c.WeightKG),
			zap.Float64("height_cm", c.HeightCM),
		)
		if age <= 0 {
			age = defaultAge
		}
		if weight <= 0 {
			weight = defaultWeightKG
		}
		if height <= 0 {
			height = defaultHeightCM
		}
	}

	// Mifflin-St Jeor: sex-specific constant
	bmr := 10*weight + 6.25*height - 5*float64(age)
	if gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	multiplier, ok := activityMultipliers[c.ActivityLevel]
	if !ok {
		multiplier = activityMultipliers[ActivitySedentary]
	}
	tdee := bmr * multiplier

	calories := tdee
	switch goal {
	case GoalFatLoss:
		calories = tdee - fatLossDeficit
	case GoalMuscleGain:
		calories = tdee + muscleGainSurplus
	}

	protein := proteinPerKG * weight
	fat := fatPerKG * weight
	carbKcal := calories - protein*4 - fat*9
	if carbKcal < 0 {
		carbKcal = 0
	}

	targets := Targets{
		Calories: math.Round(calories),
		Protein:  math.Round(protein),
		Carbs:    math.Round(carbKcal / 4),
		Fat:      math.Round(fat),
		Derived:  true,
	}

	logger.Info("Derived nutrition targets from BMR/TDEE heuristic",
		zap.String("client_id", c.ID.String()),
		zap.String("goal", string(goal)),
		zap.Float64("bmr", math.Round(bmr)),
		zap.Float64("tdee", math.Round(tdee)),
		zap.Float64("calories", targets.Calories),
	)

	return targets
}
