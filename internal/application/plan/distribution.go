package plan

import (
	"math"

	"github.com/mealforge/v1/internal/domain/plan"
	"github.com/mealforge/v1/internal/domain/profile"
)

// slotShare is one row cell in the distribution tables.
type slotShare struct {
	slot string
	pct  float64
}

// Slot names used across the distribution tables. Secondary snacks get
// a numeric suffix; their timing is still "snack" (see baseTiming).
const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotDinner    = "dinner"
	SlotSnack     = "snack"
	SlotSnack2    = "snack_2"
	SlotSnack3    = "snack_3"
)

// distributionTables holds the fixed percentage split per
// (goal, meals per day). Every row sums to 1.0; the distribution tests
// verify this for each entry.
var distributionTables = map[profile.Goal]map[int][]slotShare{
	profile.GoalMaintain: {
		3: {{SlotBreakfast, 0.30}, {SlotLunch, 0.35}, {SlotDinner, 0.35}},
		4: {{SlotBreakfast, 0.25}, {SlotLunch, 0.30}, {SlotDinner, 0.30}, {SlotSnack, 0.15}},
		5: {{SlotBreakfast, 0.25}, {SlotLunch, 0.30}, {SlotDinner, 0.25}, {SlotSnack, 0.10}, {SlotSnack2, 0.10}},
		6: {{SlotBreakfast, 0.20}, {SlotLunch, 0.25}, {SlotDinner, 0.25}, {SlotSnack, 0.10}, {SlotSnack2, 0.10}, {SlotSnack3, 0.10}},
	},
	profile.GoalFatLoss: {
		3: {{SlotBreakfast, 0.25}, {SlotLunch, 0.35}, {SlotDinner, 0.40}},
		4: {{SlotBreakfast, 0.25}, {SlotLunch, 0.30}, {SlotDinner, 0.35}, {SlotSnack, 0.10}},
		5: {{SlotBreakfast, 0.20}, {SlotLunch, 0.30}, {SlotDinner, 0.30}, {SlotSnack, 0.10}, {SlotSnack2, 0.10}},
		6: {{SlotBreakfast, 0.20}, {SlotLunch, 0.25}, {SlotDinner, 0.30}, {SlotSnack, 0.10}, {SlotSnack2, 0.10}, {SlotSnack3, 0.05}},
	},
	profile.GoalMuscleGain: {
		3: {{SlotBreakfast, 0.30}, {SlotLunch, 0.35}, {SlotDinner, 0.35}},
		4: {{SlotBreakfast, 0.25}, {SlotLunch, 0.30}, {SlotDinner, 0.30}, {SlotSnack, 0.15}},
		5: {{SlotBreakfast, 0.20}, {SlotLunch, 0.25}, {SlotDinner, 0.25}, {SlotSnack, 0.15}, {SlotSnack2, 0.15}},
		6: {{SlotBreakfast, 0.20}, {SlotLunch, 0.25}, {SlotDinner, 0.25}, {SlotSnack, 0.10}, {SlotSnack2, 0.10}, {SlotSnack3, 0.10}},
	},
	profile.GoalPerformance: {
		3: {{SlotBreakfast, 0.30}, {SlotLunch, 0.40}, {SlotDinner, 0.30}},
		4: {{SlotBreakfast, 0.25}, {SlotLunch, 0.35}, {SlotDinner, 0.25}, {SlotSnack, 0.15}},
		5: {{SlotBreakfast, 0.25}, {SlotLunch, 0.30}, {SlotDinner, 0.25}, {SlotSnack, 0.10}, {SlotSnack2, 0.10}},
		6: {{SlotBreakfast, 0.20}, {SlotLunch, 0.30}, {SlotDinner, 0.25}, {SlotSnack, 0.10}, {SlotSnack2, 0.10}, {SlotSnack3, 0.05}},
	},
}

// Distribution computes per-slot calorie/macro sub-targets for a day.
// Unknown goals fall back to the maintain tables; unsupported slot
// counts fall back to the 4-meal row.
func Distribution(p profile.Profile) []plan.SlotTarget {
	tables, ok := distributionTables[p.Goal]
	if !ok {
		tables = distributionTables[profile.GoalMaintain]
	}

	row, ok := tables[p.MealsPerDay]
	if !ok {
		row = tables[4]
	}

	targets := make([]plan.SlotTarget, len(row))
	for i, share := range row {
		targets[i] = plan.SlotTarget{
			Slot:       share.slot,
			Calories:   math.Round(p.Targets.Calories * share.pct),
			Protein:    math.Round(p.Targets.Protein * share.pct),
			Carbs:      math.Round(p.Targets.Carbs * share.pct),
			Fat:        math.Round(p.Targets.Fat * share.pct),
			Percentage: share.pct,
		}
	}
	return targets
}

// goalTable exposes a goal's rows for the percentage-sum tests.
func goalTable(g profile.Goal) map[int][]slotShare {
	return distributionTables[g]
}
