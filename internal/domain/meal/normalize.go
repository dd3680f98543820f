package meal

import (
	"encoding/json"
	"strings"

	"github.com/mealforge/v1/internal/domain/profile"
	"go.uber.org/zap"
)

// Record is a raw catalog row as delivered by the external store.
// Labels, timing, allergens and ingredients may arrive JSON-encoded;
// parsing is defensive so one bad field never fails the whole meal.
type Record struct {
	ID             string
	Name           string
	Calories       float64
	Protein        float64
	Carbs          float64
	Fat            float64
	Fiber          float64
	Labels         string
	Timing         string
	Allergens      string
	Ingredients    string
	CostTier       string
	Difficulty     string
	DefaultPortion string
}

// Normalize turns a raw record into a Meal. A parse failure on a single
// field degrades that field to empty (logged at Warn) rather than
// failing the meal.
func Normalize(rec Record, logger *zap.Logger) *Meal {
	m := &Meal{
		id:             rec.ID,
		name:           rec.Name,
		calories:       rec.Calories,
		protein:        rec.Protein,
		carbs:          rec.Carbs,
		fat:            rec.Fat,
		fiber:          rec.Fiber,
		labels:         parseStringList(rec.Labels),
		timing:         parseStringList(rec.Timing),
		allergens:      parseStringList(rec.Allergens),
		costTier:       normalizeCostTier(rec.CostTier),
		difficulty:     normalizeDifficulty(rec.Difficulty),
		defaultPortion: rec.DefaultPortion,
	}

	ingredients, err := ParseIngredients(rec.Ingredients)
	if err != nil {
		logger.Warn("Dropping unparseable ingredient field, meal stays eligible",
			zap.String("meal_id", rec.ID),
			zap.String("meal", rec.Name),
			zap.Error(err),
		)
		ingredients = nil
	}
	m.ingredients = ingredients

	return m
}

// parseStringList accepts a JSON array, a comma-separated string, or a
// single bare value. Anything unparseable degrades to empty.
func parseStringList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err == nil {
			return trimAll(list)
		}
		return nil
	}

	return trimAll(strings.Split(raw, ","))
}

func trimAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// jsonIngredient mirrors the array-of-objects wire form.
type jsonIngredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// ParseIngredients reads an ingredient structure in either wire form:
// an array of {name, amount, unit} objects or an object mapping
// ingredient name to amount. Empty input yields no ingredients and no
// error; malformed input returns an error so the caller can log it.
func ParseIngredients(raw string) ([]Ingredient, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if strings.HasPrefix(raw, "[") {
		var list []jsonIngredient
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil, err
		}
		out := make([]Ingredient, 0, len(list))
		for _, ing := range list {
			if strings.TrimSpace(ing.Name) == "" {
				continue
			}
			unit := ing.Unit
			if unit == "" {
				unit = "g"
			}
			out = append(out, Ingredient{Name: strings.TrimSpace(ing.Name), Amount: ing.Amount, Unit: unit})
		}
		return out, nil
	}

	var amounts map[string]float64
	if err := json.Unmarshal([]byte(raw), &amounts); err != nil {
		return nil, err
	}
	out := make([]Ingredient, 0, len(amounts))
	for name, amount := range amounts {
		if strings.TrimSpace(name) == "" {
			continue
		}
		out = append(out, Ingredient{Name: strings.TrimSpace(name), Amount: amount, Unit: "g"})
	}
	return out, nil
}

func normalizeCostTier(raw string) profile.BudgetTier {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "budget":
		return profile.BudgetLow
	case "premium":
		return profile.BudgetPremium
	default:
		return profile.BudgetMedium
	}
}

func normalizeDifficulty(raw string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy":
		return DifficultyEasy
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}
