// Package meal contains the immutable meal catalog entry and the
// normalization logic that turns raw store records into usable meals.
package meal

import (
	"strings"

	"github.com/mealforge/v1/internal/domain/profile"
)

// Difficulty classifies preparation effort, aligned with cooking skill tiers.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Ingredient is a single ingredient line with a quantity.
type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Meal is an immutable catalog entry. Scaling never mutates a Meal;
// it always produces a derived copy (see application/plan.PortionScaler).
type Meal struct {
	id             string
	name           string
	calories       float64
	protein        float64
	carbs          float64
	fat            float64
	fiber          float64
	labels         []string
	timing         []string
	allergens      []string
	ingredients    []Ingredient
	costTier       profile.BudgetTier
	difficulty     Difficulty
	defaultPortion string

	// Variation bookkeeping for synthesized catalog entries
	derived     bool
	variationOf string
}

// ID returns the meal's catalog identifier.
func (m *Meal) ID() string { return m.id }

// BaseID returns the identifier of the underlying recipe: the meal's
// own id for catalog entries, the source id for synthesized variations.
// Anti-repetition tracking works on base ids so a meal and its
// variations count as one recipe.
func (m *Meal) BaseID() string {
	if m.derived {
		return m.variationOf
	}
	return m.id
}

// Name returns the meal's display name.
func (m *Meal) Name() string { return m.name }

// Calories returns base calories for the default portion.
func (m *Meal) Calories() float64 { return m.calories }

// Protein returns base protein grams.
func (m *Meal) Protein() float64 { return m.protein }

// Carbs returns base carbohydrate grams.
func (m *Meal) Carbs() float64 { return m.carbs }

// Fat returns base fat grams.
func (m *Meal) Fat() float64 { return m.fat }

// Fiber returns base fiber grams.
func (m *Meal) Fiber() float64 { return m.fiber }

// Labels returns the meal's tag set.
func (m *Meal) Labels() []string { return m.labels }

// Timing returns the slot names this meal can fill.
func (m *Meal) Timing() []string { return m.timing }

// Allergens returns the meal's allergen set.
func (m *Meal) Allergens() []string { return m.allergens }

// Ingredients returns the meal's ingredient lines.
func (m *Meal) Ingredients() []Ingredient { return m.ingredients }

// CostTier returns the meal's coarse cost classification.
func (m *Meal) CostTier() profile.BudgetTier { return m.costTier }

// Difficulty returns the meal's preparation difficulty.
func (m *Meal) Difficulty() Difficulty { return m.difficulty }

// DefaultPortion returns the free-text portion description.
func (m *Meal) DefaultPortion() string { return m.defaultPortion }

// IsDerived reports whether this entry was synthesized as a portion
// variation of another catalog meal.
func (m *Meal) IsDerived() bool { return m.derived }

// HasLabel reports whether the meal carries the given label.
func (m *Meal) HasLabel(label string) bool {
	for _, l := range m.labels {
		if strings.EqualFold(l, label) {
			return true
		}
	}
	return false
}

// FillsSlot reports whether the meal is tagged for the given timing.
func (m *Meal) FillsSlot(timing string) bool {
	for _, t := range m.timing {
		if strings.EqualFold(t, timing) {
			return true
		}
	}
	return false
}
