package meal

import (
	"fmt"
	"math"
)

// variationFactors are the fixed multipliers used to synthesize portion
// variations when the catalog is too small to offer real choice.
var variationFactors = []float64{0.75, 1.5, 2.0}

// MinUsableCatalogSize is the threshold below which the catalog gets
// enlarged with synthesized variations.
const MinUsableCatalogSize = 20

// ExpandCatalog enlarges a small catalog by adding fixed-multiplier
// variations of each base meal, tagged as derived. Variations are
// portion rescales of existing recipes, never fabricated new ones, and
// derived entries are never re-variated. Catalogs at or above minSize
// are returned unchanged.
func ExpandCatalog(meals []*Meal, minSize int) []*Meal {
	if len(meals) == 0 || len(meals) >= minSize {
		return meals
	}

	expanded := make([]*Meal, 0, len(meals)*(len(variationFactors)+1))
	expanded = append(expanded, meals...)

	for _, m := range meals {
		if m.derived {
			continue
		}
		for _, factor := range variationFactors {
			expanded = append(expanded, m.variation(factor))
		}
	}

	return expanded
}

// variation produces a derived copy with macros scaled by factor.
func (m *Meal) variation(factor float64) *Meal {
	v := &Meal{
		id:             fmt.Sprintf("%s-x%d", m.id, int(factor*100)),
		name:           fmt.Sprintf("%s (%.2gx)", m.name, factor),
		calories:       math.Round(m.calories * factor),
		protein:        math.Round(m.protein * factor),
		carbs:          math.Round(m.carbs * factor),
		fat:            math.Round(m.fat * factor),
		fiber:          math.Round(m.fiber * factor),
		labels:         append([]string{}, m.labels...),
		timing:         append([]string{}, m.timing...),
		allergens:      append([]string{}, m.allergens...),
		costTier:       m.costTier,
		difficulty:     m.difficulty,
		defaultPortion: m.defaultPortion,
		derived:        true,
		variationOf:    m.id,
	}

	v.ingredients = make([]Ingredient, len(m.ingredients))
	for i, ing := range m.ingredients {
		v.ingredients[i] = Ingredient{
			Name:   ing.Name,
			Amount: math.Round(ing.Amount*factor*10) / 10,
			Unit:   ing.Unit,
		}
	}

	return v
}
