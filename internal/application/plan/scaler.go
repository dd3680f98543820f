package plan

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/domain/plan"
)

// ScaleRange bounds a portion scale factor.
type ScaleRange struct {
	Min float64
	Max float64
}

// Two distinct clamp ranges are in use at different call sites. They
// look like an unreviewed inconsistency in the original behavior, but
// both are preserved exactly as documented pending a product decision.
var (
	// DayCorrectiveRange bounds the uniform day-level corrective rescale.
	DayCorrectiveRange = ScaleRange{Min: 0.5, Max: 3.0}
	// MealOptimalRange bounds single-meal optimal scaling toward a slot target.
	MealOptimalRange = ScaleRange{Min: 0.25, Max: 4.0}
)

// Clamp bounds a factor to the range.
func (r ScaleRange) Clamp(factor float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, factor))
}

// portionPattern matches a number followed by one of the supported
// unit suffixes in free-text portion descriptions.
var portionPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(g|ml|stuks|portie)\b`)

// ScaleToTarget produces a derived copy of the meal scaled toward the
// target calorie/protein pair. The factor is the larger of the two
// ratios, clamped to the given range; the catalog record is never
// mutated.
func ScaleToTarget(m *meal.Meal, targetCalories, targetProtein float64, bounds ScaleRange) *plan.ScaledMeal {
	var factor float64
	if m.Calories() > 0 && targetCalories > 0 {
		factor = targetCalories / m.Calories()
	}
	if m.Protein() > 0 && targetProtein > 0 {
		factor = math.Max(factor, targetProtein/m.Protein())
	}
	if factor == 0 {
		// Neither target is defined; keep the catalog portion as-is.
		factor = 1.0
	}
	factor = bounds.Clamp(factor)

	return scaledCopy(m, factor)
}

// Rescale applies one more uniform factor to an already scaled meal,
// re-deriving everything from the base record with the compounded
// factor so rounding does not accumulate.
func Rescale(sm *plan.ScaledMeal, base *meal.Meal, factor float64) *plan.ScaledMeal {
	out := scaledCopy(base, sm.ScaleFactor*factor)
	out.Score = sm.Score
	out.Forced = sm.Forced
	return out
}

func scaledCopy(m *meal.Meal, factor float64) *plan.ScaledMeal {
	sm := &plan.ScaledMeal{
		MealID:      m.ID(),
		BaseID:      m.BaseID(),
		Name:        m.Name(),
		Calories:    math.Round(m.Calories() * factor),
		Protein:     math.Round(m.Protein() * factor),
		Carbs:       math.Round(m.Carbs() * factor),
		Fat:         math.Round(m.Fat() * factor),
		Portion:     scalePortionText(m.DefaultPortion(), factor),
		ScaleFactor: factor,
		CostTier:    string(m.CostTier()),
		Labels:      m.Labels(),
	}

	if ingredients := m.Ingredients(); len(ingredients) > 0 {
		sm.Ingredients = make([]meal.Ingredient, len(ingredients))
		for i, ing := range ingredients {
			sm.Ingredients[i] = meal.Ingredient{
				Name:   ing.Name,
				Amount: roundQuantity(ing.Amount*factor, ing.Unit),
				Unit:   ing.Unit,
			}
		}
	}

	return sm
}

// scalePortionText rewrites embedded quantities in a portion string,
// preserving unit suffixes and applying unit-appropriate rounding.
func scalePortionText(portion string, factor float64) string {
	if portion == "" {
		return portion
	}

	return portionPattern.ReplaceAllStringFunc(portion, func(match string) string {
		groups := portionPattern.FindStringSubmatch(match)
		raw := strings.ReplaceAll(groups[1], ",", ".")
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return match
		}

		scaled := value * factor
		unit := groups[2]
		return fmt.Sprintf("%s %s", formatQuantity(scaled, unit), unit)
	})
}

// formatQuantity rounds whole units to the nearest integer; "stuks"
// below one keeps a single decimal so half an egg stays visible.
func formatQuantity(value float64, unit string) string {
	if unit == "stuks" && value < 1 {
		return strconv.FormatFloat(math.Round(value*10)/10, 'f', 1, 64)
	}
	return strconv.FormatFloat(math.Round(value), 'f', -1, 64)
}

func roundQuantity(value float64, unit string) float64 {
	if unit == "stuks" && value < 1 {
		return math.Round(value*10) / 10
	}
	return math.Round(value)
}
