// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"

	"github.com/google/uuid"
	gormModels "github.com/mealforge/v1/internal/infrastructure/persistence/gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&gormModels.MealModel{},
		&gormModels.ClientProfileModel{},
		&gormModels.WeekPlanModel{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedDatabase populates the database with a demo catalog and client.
// The ingredient columns deliberately mix wire forms (object arrays,
// amount maps, comma lists) so local runs exercise the same normalizer
// paths production imports do.
func SeedDatabase(db *gorm.DB) error {
	var mealCount int64
	db.Model(&gormModels.MealModel{}).Count(&mealCount)
	if mealCount > 0 {
		return nil // Already seeded
	}

	demoMeals := []gormModels.MealModel{
		{
			ID:             "oats-berries",
			Name:           "Overnight Oats with Berries",
			Calories:       420,
			Protein:        22,
			Carbs:          58,
			Fat:            11,
			Fiber:          9,
			Labels:         `["high_protein","quick","balanced"]`,
			Timing:         "breakfast",
			Allergens:      "gluten,lactose",
			Ingredients:    `[{"name":"Oats","amount":80,"unit":"g"},{"name":"Skyr","amount":150,"unit":"g"},{"name":"Blueberries","amount":100,"unit":"g"},{"name":"Honey","amount":10,"unit":"g"}]`,
			CostTier:       "budget",
			Difficulty:     "easy",
			DefaultPortion: "1 portie (340 g)",
		},
		{
			ID:             "protein-pancakes",
			Name:           "Protein Pancakes",
			Calories:       510,
			Protein:        38,
			Carbs:          52,
			Fat:            15,
			Fiber:          5,
			Labels:         `["high_protein","bulk_friendly"]`,
			Timing:         "breakfast",
			Allergens:      `["egg","gluten","lactose"]`,
			Ingredients:    `{"Oat flour":90,"Whey protein":30,"Egg":110,"Banana":100}`,
			CostTier:       "moderate",
			Difficulty:     "medium",
			DefaultPortion: "3 stuks",
		},
		{
			ID:             "scrambled-tofu",
			Name:           "Scrambled Tofu on Toast",
			Calories:       380,
			Protein:        24,
			Carbs:          36,
			Fat:            16,
			Fiber:          7,
			Labels:         `["vegan","quick","low_cal"]`,
			Timing:         "breakfast",
			Allergens:      "soy,gluten",
			Ingredients:    `[{"name":"Tofu","amount":200,"unit":"g"},{"name":"Wholegrain bread","amount":70,"unit":"g"},{"name":"Spinach","amount":50,"unit":"g"},{"name":"Olive oil","amount":8,"unit":"ml"}]`,
			CostTier:       "budget",
			Difficulty:     "easy",
			DefaultPortion: "1 portie (330 g)",
		},
		{
			ID:             "chicken-rice-bowl",
			Name:           "Chicken Rice Bowl",
			Calories:       620,
			Protein:        48,
			Carbs:          68,
			Fat:            14,
			Fiber:          6,
			Labels:         `["high_protein","meal_prep","bulk_friendly"]`,
			Timing:         `["lunch","dinner"]`,
			Allergens:      "",
			Ingredients:    `[{"name":"Chicken breast","amount":180,"unit":"g"},{"name":"Basmati rice","amount":200,"unit":"g"},{"name":"Broccoli","amount":150,"unit":"g"},{"name":"Soy sauce","amount":15,"unit":"ml"}]`,
			CostTier:       "moderate",
			Difficulty:     "easy",
			DefaultPortion: "1 portie (545 g)",
		},
		{
			ID:             "tuna-salad-wrap",
			Name:           "Tuna Salad Wrap",
			Calories:       440,
			Protein:        34,
			Carbs:          42,
			Fat:            14,
			Fiber:          5,
			Labels:         `["high_protein","quick","cut_friendly"]`,
			Timing:         "lunch",
			Allergens:      "fish,gluten",
			Ingredients:    `[{"name":"Tuna","amount":120,"unit":"g"},{"name":"Tortilla wrap","amount":65,"unit":"g"},{"name":"Lettuce","amount":40,"unit":"g"},{"name":"Greek yoghurt","amount":40,"unit":"g"}]`,
			CostTier:       "budget",
			Difficulty:     "easy",
			DefaultPortion: "1 stuks",
		},
		{
			ID:             "lentil-curry",
			Name:           "Red Lentil Curry",
			Calories:       540,
			Protein:        26,
			Carbs:          72,
			Fat:            16,
			Fiber:          14,
			Labels:         `["vegan","batch_friendly","high_carb","budget"]`,
			Timing:         `["lunch","dinner"]`,
			Allergens:      "",
			Ingredients:    `{"Red lentils":150,"Coconut milk":100,"Tomato":120,"Basmati rice":150,"Curry paste":20}`,
			CostTier:       "budget",
			Difficulty:     "medium",
			DefaultPortion: "1 portie (540 g)",
		},
		{
			ID:             "salmon-quinoa",
			Name:           "Baked Salmon with Quinoa",
			Calories:       650,
			Protein:        42,
			Carbs:          48,
			Fat:            28,
			Fiber:          7,
			Labels:         `["high_protein","performance","energy"]`,
			Timing:         "dinner",
			Allergens:      "fish",
			Ingredients:    `[{"name":"Salmon fillet","amount":160,"unit":"g"},{"name":"Quinoa","amount":180,"unit":"g"},{"name":"Asparagus","amount":120,"unit":"g"},{"name":"Lemon","amount":20,"unit":"g"}]`,
			CostTier:       "premium",
			Difficulty:     "medium",
			DefaultPortion: "1 portie (480 g)",
		},
		{
			ID:             "beef-stirfry",
			Name:           "Beef and Vegetable Stir-fry",
			Calories:       580,
			Protein:        40,
			Carbs:          54,
			Fat:            20,
			Fiber:          8,
			Labels:         `["high_protein","high_cal","bulk_friendly"]`,
			Timing:         "dinner",
			Allergens:      "soy",
			Ingredients:    `[{"name":"Beef strips","amount":160,"unit":"g"},{"name":"Egg noodles","amount":180,"unit":"g"},{"name":"Bell pepper","amount":100,"unit":"g"},{"name":"Onion","amount":60,"unit":"g"},{"name":"Soy sauce","amount":20,"unit":"ml"}]`,
			CostTier:       "premium",
			Difficulty:     "hard",
			DefaultPortion: "1 portie (520 g)",
		},
		{
			ID:             "chickpea-traybake",
			Name:           "Chickpea and Vegetable Traybake",
			Calories:       470,
			Protein:        20,
			Carbs:          56,
			Fat:            18,
			Fiber:          13,
			Labels:         `["vegan","batch_friendly","flexible"]`,
			Timing:         "dinner",
			Allergens:      "",
			Ingredients:    `{"Chickpeas":200,"Sweet potato":200,"Cauliflower":150,"Olive oil":15,"Paprika":5}`,
			CostTier:       "budget",
			Difficulty:     "easy",
			DefaultPortion: "1 portie (570 g)",
		},
		{
			ID:             "cottage-crackers",
			Name:           "Cottage Cheese with Crackers",
			Calories:       260,
			Protein:        24,
			Carbs:          22,
			Fat:            8,
			Fiber:          3,
			Labels:         `["high_protein","quick","low_cal"]`,
			Timing:         `["snack"]`,
			Allergens:      "lactose,gluten",
			Ingredients:    `[{"name":"Cottage cheese","amount":200,"unit":"g"},{"name":"Wholegrain crackers","amount":30,"unit":"g"}]`,
			CostTier:       "budget",
			Difficulty:     "easy",
			DefaultPortion: "1 portie (230 g)",
		},
		{
			ID:             "trail-mix",
			Name:           "Nut and Fruit Trail Mix",
			Calories:       310,
			Protein:        9,
			Carbs:          26,
			Fat:            19,
			Fiber:          5,
			Labels:         `["energy","quick","flexible"]`,
			Timing:         "snack",
			Allergens:      `["nuts"]`,
			Ingredients:    `{"Almonds":25,"Walnuts":15,"Raisins":25,"Dark chocolate":10}`,
			CostTier:       "moderate",
			Difficulty:     "easy",
			DefaultPortion: "1 portie (75 g)",
		},
		{
			ID:             "protein-shake-banana",
			Name:           "Banana Protein Shake",
			Calories:       290,
			Protein:        31,
			Carbs:          32,
			Fat:            5,
			Fiber:          3,
			Labels:         `["high_protein","quick","performance"]`,
			Timing:         "snack",
			Allergens:      "lactose",
			Ingredients:    `[{"name":"Whey protein","amount":30,"unit":"g"},{"name":"Banana","amount":120,"unit":"g"},{"name":"Milk","amount":250,"unit":"ml"}]`,
			CostTier:       "moderate",
			Difficulty:     "easy",
			DefaultPortion: "1 portie (400 ml)",
		},
	}

	for _, meal := range demoMeals {
		if err := db.Create(&meal).Error; err != nil {
			return fmt.Errorf("failed to create demo meal: %w", err)
		}
	}

	// One demo client with explicit targets and one relying on
	// derivation, so both resolver paths are reachable out of the box.
	demoClients := []gormModels.ClientProfileModel{
		{
			ClientID:           uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			Age:                29,
			Gender:             "male",
			HeightCM:           182,
			WeightKG:           78,
			Goal:               "muscle_gain",
			ActivityLevel:      "active",
			TargetCalories:     3100,
			TargetProtein:      180,
			TargetCarbs:        380,
			TargetFat:          90,
			MealsPerDay:        5,
			BudgetTier:         "moderate",
			CookingSkill:       "intermediate",
			MealPrepPreference: "meal_prep",
			LovedIngredients:   []string{"chicken", "rice"},
			HatedIngredients:   []string{"mushroom"},
		},
		{
			ClientID:         uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			Age:              34,
			Gender:           "female",
			HeightCM:         168,
			WeightKG:         64,
			Goal:             "fat_loss",
			ActivityLevel:    "moderate",
			MealsPerDay:      4,
			BudgetTier:       "budget",
			CookingSkill:     "beginner",
			DietaryType:      "vegetarian",
			LovedIngredients: []string{"tofu", "lentils"},
			Allergies:        []string{"nuts"},
		},
	}

	for _, client := range demoClients {
		if err := db.Create(&client).Error; err != nil {
			return fmt.Errorf("failed to create demo client: %w", err)
		}
	}

	return nil
}
