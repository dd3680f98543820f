// Package plan implements the meal-plan generation engine: scoring,
// slot distribution, portion scaling, day generation and week assembly.
package plan

import (
	"math"
	"strings"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/domain/plan"
	"github.com/mealforge/v1/internal/domain/profile"
	"github.com/mealforge/v1/pkg/random"
)

// Scoring weights and caps. The subscore ceilings add up to the
// nominal 105-point scale (30+25+20+15+10+5) before the selected bonus.
const (
	selectedBonusPerMatch = 10.0
	selectedBonusCap      = 30.0
	goalAlignmentMax      = 30.0
	goalAlignmentNeutral  = 15.0
	macroFitMax           = 25.0
	proteinBonus          = 5.0
	proteinBonusThreshold = 30.0
	lovedBonus            = 10.0
	hatedPenalty          = 20.0
	dietaryBonus          = 5.0
	difficultyMatchBonus  = 7.0
	prepMatchBonus        = 8.0
	budgetExactMatch      = 10.0
	varietyJitterMax      = 5.0
)

// goalLabels maps each goal to the labels that signal alignment.
var goalLabels = map[profile.Goal][]string{
	profile.GoalMuscleGain:  {"bulk_friendly", "high_protein", "high_cal"},
	profile.GoalFatLoss:     {"low_cal", "high_protein", "cut_friendly"},
	profile.GoalPerformance: {"high_carb", "energy", "performance"},
	profile.GoalMaintain:    {"balanced", "flexible"},
}

// budgetFitTable gives partial credit for adjacent cost tiers.
var budgetFitTable = map[profile.BudgetTier]map[profile.BudgetTier]float64{
	profile.BudgetLow:     {profile.BudgetLow: 10, profile.BudgetMedium: 5, profile.BudgetPremium: 0},
	profile.BudgetMedium:  {profile.BudgetLow: 8, profile.BudgetMedium: 10, profile.BudgetPremium: 3},
	profile.BudgetPremium: {profile.BudgetLow: 5, profile.BudgetMedium: 8, profile.BudgetPremium: 10},
}

// skillDifficulty maps cooking skill tiers onto meal difficulty.
var skillDifficulty = map[profile.CookingSkill]meal.Difficulty{
	profile.SkillBeginner:     meal.DifficultyEasy,
	profile.SkillIntermediate: meal.DifficultyMedium,
	profile.SkillAdvanced:     meal.DifficultyHard,
}

// ScoringEngine scores catalog meals against a profile plus the
// request's ingredient selections. The random source only feeds the
// bounded variety jitter, so a fixed seed makes scoring deterministic.
type ScoringEngine struct {
	rng random.Source
}

// NewScoringEngine creates a scoring engine with the given random source.
func NewScoringEngine(rng random.Source) *ScoringEngine {
	return &ScoringEngine{rng: rng}
}

// Score evaluates one meal. Hard disqualification (excluded ingredient
// or allergy hit) short-circuits to the −100 sentinel before any
// subscore is computed; disqualification is a filter, not an error.
func (e *ScoringEngine) Score(m *meal.Meal, p profile.Profile, excluded, selected []string) plan.ScoredMeal {
	scored := plan.ScoredMeal{Meal: m}

	if matchesAnyTerm(m, excluded) {
		scored.Total = plan.DisqualifiedScore
		return scored
	}

	if allergenOverlap(m.Allergens(), p.Allergies) || allergenOverlap(m.Allergens(), p.Intolerances) {
		scored.Total = plan.DisqualifiedScore
		return scored
	}

	b := &scored.Breakdown
	b.SelectedBonus = e.selectedBonus(m, selected)
	b.GoalAlignment = e.goalAlignment(m, p.Goal)
	b.MacroFit = e.macroFit(m, p)
	b.Preferences = e.preferences(m, p)
	b.Practical = e.practical(m, p)
	b.Budget = e.budgetFit(m, p)
	b.Variety = e.rng.Float64() * varietyJitterMax

	scored.Total = b.SelectedBonus + b.GoalAlignment + b.MacroFit +
		b.Preferences + b.Practical + b.Budget + b.Variety
	return scored
}

// ScoreAll scores every meal in the catalog, keyed by meal id.
func (e *ScoringEngine) ScoreAll(meals []*meal.Meal, p profile.Profile, excluded, selected []string) map[string]plan.ScoredMeal {
	scored := make(map[string]plan.ScoredMeal, len(meals))
	for _, m := range meals {
		scored[m.ID()] = e.Score(m, p, excluded, selected)
	}
	return scored
}

// selectedBonus awards points per matched selected-ingredient term,
// capped at selectedBonusCap.
func (e *ScoringEngine) selectedBonus(m *meal.Meal, selected []string) float64 {
	var bonus float64
	for _, term := range selected {
		if termMatchesMeal(m, term) {
			bonus += selectedBonusPerMatch
		}
	}
	return math.Min(selectedBonusCap, bonus)
}

// goalAlignment scores label overlap with the goal's expected label
// set; an empty expectation scores neutral.
func (e *ScoringEngine) goalAlignment(m *meal.Meal, goal profile.Goal) float64 {
	expected := goalLabels[goal]
	if len(expected) == 0 {
		return goalAlignmentNeutral
	}

	matched := 0
	for _, label := range expected {
		if m.HasLabel(label) {
			matched++
		}
	}
	return goalAlignmentMax * float64(matched) / float64(len(expected))
}

// macroFit scores how close the meal's base calories sit to the
// per-meal calorie budget, with a protein bonus for muscle gain.
func (e *ScoringEngine) macroFit(m *meal.Meal, p profile.Profile) float64 {
	target := p.TargetCaloriesPerMeal()
	if target <= 0 {
		return 0
	}

	score := math.Max(0, macroFitMax-10*math.Abs(m.Calories()-target)/target)
	if p.Goal == profile.GoalMuscleGain && m.Protein() > proteinBonusThreshold {
		score += proteinBonus
	}
	return score
}

// preferences applies loved/hated ingredient terms and the dietary
// type label.
func (e *ScoringEngine) preferences(m *meal.Meal, p profile.Profile) float64 {
	var score float64
	if matchesAnyTerm(m, p.LovedIngredients) {
		score += lovedBonus
	}
	if matchesAnyTerm(m, p.HatedIngredients) {
		score -= hatedPenalty
	}
	if p.DietaryType != "" && m.HasLabel(p.DietaryType) {
		score += dietaryBonus
	}
	return score
}

// practical rewards difficulty and meal-prep fit.
func (e *ScoringEngine) practical(m *meal.Meal, p profile.Profile) float64 {
	var score float64
	if expected, ok := skillDifficulty[p.CookingSkill]; ok && m.Difficulty() == expected {
		score += difficultyMatchBonus
	}
	if prepPreferenceMatches(m, p.MealPrepPreference) {
		score += prepMatchBonus
	}
	return score
}

// prepPreferenceMatches checks the meal's prep characteristics against
// the client's stated preference.
func prepPreferenceMatches(m *meal.Meal, preference string) bool {
	switch preference {
	case "meal_prep":
		return m.HasLabel("meal_prep") || m.HasLabel("batch_friendly")
	case "fresh_daily":
		return m.HasLabel("quick") || m.Difficulty() == meal.DifficultyEasy
	default:
		return false
	}
}

// budgetFit applies the adjacency table for cost tiers.
func (e *ScoringEngine) budgetFit(m *meal.Meal, p profile.Profile) float64 {
	row, ok := budgetFitTable[p.BudgetTier]
	if !ok {
		return 0
	}
	return row[m.CostTier()]
}

// termMatchesMeal applies the documented substring rule: the term is
// matched case-insensitively against the meal name and every
// ingredient key, in both directions. Substring matching is a known
// heuristic ("nut" matches "coconut"); downstream disqualification
// behavior depends on it, so it is preserved as specified.
func termMatchesMeal(m *meal.Meal, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}

	if bidirectionalContains(strings.ToLower(m.Name()), term) {
		return true
	}
	for _, ing := range m.Ingredients() {
		if bidirectionalContains(strings.ToLower(ing.Name), term) {
			return true
		}
	}
	return false
}

func bidirectionalContains(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// matchesAnyTerm reports whether any search term matches the meal.
func matchesAnyTerm(m *meal.Meal, terms []string) bool {
	for _, term := range terms {
		if termMatchesMeal(m, term) {
			return true
		}
	}
	return false
}

// allergenOverlap checks the meal's allergen set against profile
// allergy/intolerance terms with the same substring rule.
func allergenOverlap(allergens, terms []string) bool {
	for _, allergen := range allergens {
		a := strings.ToLower(strings.TrimSpace(allergen))
		for _, term := range terms {
			t := strings.ToLower(strings.TrimSpace(term))
			if t == "" {
				continue
			}
			if bidirectionalContains(a, t) {
				return true
			}
		}
	}
	return false
}
