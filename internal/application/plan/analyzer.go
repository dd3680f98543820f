package plan

import (
	"math"
	"strings"

	"github.com/mealforge/v1/internal/domain/plan"
	"github.com/mealforge/v1/internal/domain/profile"
)

// Per-serving cost estimates by tier, used for the weekly cost figure.
var tierCostEstimates = map[string]float64{
	string(profile.BudgetLow):     3.50,
	string(profile.BudgetMedium):  6.00,
	string(profile.BudgetPremium): 9.50,
}

// Scaling advisory thresholds.
const (
	enlargedPortionThreshold = 1.5
	reducedPortionThreshold  = 0.75
)

// Selected-ingredient coverage tiers for the recommendation text.
const (
	coverageExcellentPct = 50.0
	coverageGoodPct      = 25.0
)

// Analyze derives diagnostics and human-readable recommendations from
// an assembled week plan. Read-only: the plan is never modified.
func Analyze(week *plan.WeekPlan, selected []string) *plan.Analysis {
	analysis := &plan.Analysis{
		LabelUsage:     make(map[string]int),
		MinScaleFactor: math.Inf(1),
	}

	mealCount := 0
	selectedHits := 0
	var scoreSum, factorSum, costSum float64

	for _, day := range week.Days {
		for _, m := range day.Meals() {
			mealCount++
			scoreSum += m.Score
			factorSum += m.ScaleFactor
			costSum += tierCostEstimates[m.CostTier]

			analysis.MinScaleFactor = math.Min(analysis.MinScaleFactor, m.ScaleFactor)
			analysis.MaxScaleFactor = math.Max(analysis.MaxScaleFactor, m.ScaleFactor)

			for _, label := range m.Labels {
				analysis.LabelUsage[label]++
			}

			if containsSelectedIngredient(m, selected) {
				selectedHits++
			}
		}
	}

	if mealCount == 0 {
		analysis.MinScaleFactor = 0
		return analysis
	}

	analysis.AverageMealScore = math.Round(scoreSum/float64(mealCount)*10) / 10
	analysis.AvgScaleFactor = math.Round(factorSum/float64(mealCount)*100) / 100
	analysis.EstimatedWeeklyCost = math.Round(costSum*100) / 100
	if len(week.Days) > 0 {
		analysis.EstimatedDailyCost = math.Round(costSum/float64(len(week.Days))*100) / 100
	}

	analysis.SelectedCoveragePct = math.Round(float64(selectedHits)/float64(mealCount)*1000) / 10
	analysis.Recommendations = buildRecommendations(analysis, len(selected) > 0)

	return analysis
}

// buildRecommendations produces the advisory strings for selected
// ingredient coverage and portion scaling drift.
func buildRecommendations(a *plan.Analysis, hasSelection bool) []string {
	var recs []string

	if hasSelection {
		switch {
		case a.SelectedCoveragePct > coverageExcellentPct:
			recs = append(recs, "Excellent: most meals feature your selected ingredients")
		case a.SelectedCoveragePct > coverageGoodPct:
			recs = append(recs, "Good: a solid share of meals feature your selected ingredients")
		default:
			recs = append(recs, "Select more ingredients you enjoy to personalize the plan further")
		}
	}

	switch {
	case a.AvgScaleFactor > enlargedPortionThreshold:
		recs = append(recs, "Portions are enlarged on average; consider meal-prepping larger batches")
	case a.AvgScaleFactor > 0 && a.AvgScaleFactor < reducedPortionThreshold:
		recs = append(recs, "Portions are reduced on average; well suited for a cutting phase")
	}

	return recs
}

// containsSelectedIngredient applies the substring rule to a scaled
// meal's name and ingredient lines.
func containsSelectedIngredient(m *plan.ScaledMeal, selected []string) bool {
	for _, term := range selected {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		if bidirectionalContains(strings.ToLower(m.Name), t) {
			return true
		}
		for _, ing := range m.Ingredients {
			if bidirectionalContains(strings.ToLower(ing.Name), t) {
				return true
			}
		}
	}
	return false
}
