package plan

import (
	"math"
	"sort"
	"strings"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/domain/plan"
	"github.com/mealforge/v1/internal/domain/profile"
	"github.com/mealforge/v1/pkg/errors"
	"github.com/mealforge/v1/pkg/random"
	"go.uber.org/zap"
)

// correctiveDriftTolerance is the relative drift between day targets
// and actuals beyond which a uniform corrective rescale kicks in.
const correctiveDriftTolerance = 0.10

// topNForVariation maps the variation level to the size of the random
// selection window among top-scored candidates.
func topNForVariation(level string) int {
	switch level {
	case "high":
		return 5
	case "low":
		return 1
	default:
		return 3
	}
}

// baseTiming strips the numeric suffix from secondary slots, so
// "snack_2" competes for meals tagged "snack".
func baseTiming(slot string) string {
	if i := strings.IndexByte(slot, '_'); i > 0 {
		return slot[:i]
	}
	return slot
}

// forcedQueue holds coach overrides, consumed one per matching slot
// (snack slots drain every queued snack, since a snack slot may hold a
// list of meals).
type forcedQueue struct {
	byTiming map[string][]string
}

func newForcedQueue(forced map[string][]string) *forcedQueue {
	q := &forcedQueue{byTiming: make(map[string][]string, len(forced))}
	for timing, ids := range forced {
		q.byTiming[timing] = append([]string{}, ids...)
	}
	return q
}

// pop removes and returns queued meal ids for the timing: all of them
// for snack slots, at most one otherwise.
func (q *forcedQueue) pop(timing string) []string {
	ids := q.byTiming[timing]
	if len(ids) == 0 {
		return nil
	}
	if timing == SlotSnack {
		delete(q.byTiming, timing)
		return ids
	}
	q.byTiming[timing] = ids[1:]
	return ids[:1]
}

// placement pairs a scaled meal with its base catalog record so the
// corrective pass can re-derive from the source without rounding drift.
type placement struct {
	slot   string
	scaled *plan.ScaledMeal
	base   *meal.Meal
}

// DayGenerator fills one day's slots from scored candidates.
type DayGenerator struct {
	rng    random.Source
	logger *zap.Logger
}

// NewDayGenerator creates a day generator.
func NewDayGenerator(rng random.Source, logger *zap.Logger) *DayGenerator {
	return &DayGenerator{rng: rng, logger: logger.Named("day-generator")}
}

// dayRequest carries everything GenerateDay needs for one day.
type dayRequest struct {
	day            int
	profile        profile.Profile
	slots          []plan.SlotTarget
	scored         map[string]plan.ScoredMeal
	catalog        map[string]*meal.Meal
	forced         *forcedQueue
	recentlyUsed   map[string]bool
	variationLevel string
	avoidDupes     bool
}

// GenerateDay selects, scales and corrects one day of meals.
func (g *DayGenerator) GenerateDay(req dayRequest) (*plan.DayPlan, error) {
	usedToday := make(map[string]bool)
	placements := make([]placement, 0, len(req.slots))

	for _, slot := range req.slots {
		timing := baseTiming(slot.Slot)

		if forcedIDs := req.forced.pop(timing); len(forcedIDs) > 0 {
			placed, ok := g.placeForced(slot, forcedIDs, req, usedToday)
			if ok {
				placements = append(placements, placed...)
				continue
			}
			// Unknown forced ids fall through to regular selection.
		}

		chosen, err := g.selectCandidate(slot, timing, req, usedToday)
		if err != nil {
			return nil, err
		}

		scaled := ScaleToTarget(chosen.Meal, slot.Calories, slot.Protein, MealOptimalRange)
		scaled.Score = chosen.Total
		usedToday[chosen.Meal.BaseID()] = true
		placements = append(placements, placement{slot: slot.Slot, scaled: scaled, base: chosen.Meal})
	}

	placements = g.correctDrift(req, placements)

	return buildDayPlan(req, placements), nil
}

// placeForced scales coach-forced meals into the slot, splitting the
// slot target evenly when several snacks land in one slot. Ids missing
// from the catalog are skipped individually; the remaining overrides
// still land, and the slot falls back to regular selection only when
// none of the ids resolve.
func (g *DayGenerator) placeForced(slot plan.SlotTarget, ids []string, req dayRequest, usedToday map[string]bool) ([]placement, bool) {
	resolved := make([]*meal.Meal, 0, len(ids))
	for _, id := range ids {
		base, ok := req.catalog[id]
		if !ok {
			g.logger.Warn("Forced meal not found in catalog, skipping override",
				zap.String("meal_id", id),
				zap.String("slot", slot.Slot),
			)
			continue
		}
		resolved = append(resolved, base)
	}
	if len(resolved) == 0 {
		return nil, false
	}

	share := 1.0 / float64(len(resolved))
	placed := make([]placement, 0, len(resolved))

	for _, base := range resolved {
		scaled := ScaleToTarget(base, slot.Calories*share, slot.Protein*share, MealOptimalRange)
		scaled.Forced = true
		if s, ok := req.scored[base.ID()]; ok {
			scaled.Score = s.Total
		}
		usedToday[base.BaseID()] = true
		placed = append(placed, placement{slot: slot.Slot, scaled: scaled, base: base})
	}

	return placed, true
}

// selectCandidate builds the candidate pool with progressive constraint
// relaxation and picks from it. Pools of three or fewer take the top
// score; larger pools pick uniformly among the top N.
func (g *DayGenerator) selectCandidate(slot plan.SlotTarget, timing string, req dayRequest, usedToday map[string]bool) (plan.ScoredMeal, error) {
	pool := g.buildPool(timing, req, usedToday, true, req.avoidDupes)
	if len(pool) == 0 {
		// Relax same-day dedup first, then cross-day dedup.
		pool = g.buildPool(timing, req, usedToday, false, req.avoidDupes)
	}
	if len(pool) == 0 {
		pool = g.buildPool(timing, req, usedToday, false, false)
	}
	if len(pool) == 0 {
		return plan.ScoredMeal{}, errors.NewNoEligibleMealsError(slot.Slot)
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].Total != pool[j].Total {
			return pool[i].Total > pool[j].Total
		}
		return pool[i].Meal.ID() < pool[j].Meal.ID()
	})

	if len(pool) <= 3 {
		return pool[0], nil
	}

	topN := topNForVariation(req.variationLevel)
	if topN > len(pool) {
		topN = len(pool)
	}
	return pool[g.rng.Intn(topN)], nil
}

func (g *DayGenerator) buildPool(timing string, req dayRequest, usedToday map[string]bool, dedupeToday, dedupeRecent bool) []plan.ScoredMeal {
	var pool []plan.ScoredMeal
	for _, scored := range req.scored {
		if scored.Disqualified() {
			continue
		}
		if !scored.Meal.FillsSlot(timing) {
			continue
		}
		if dedupeToday && usedToday[scored.Meal.BaseID()] {
			continue
		}
		if dedupeRecent && req.recentlyUsed[scored.Meal.BaseID()] {
			continue
		}
		pool = append(pool, scored)
	}
	return pool
}

// correctDrift applies one uniform rescale to every placed meal when
// day totals drift more than the tolerance from targets, using the
// larger of the calorie and protein ratios clamped to the day range.
func (g *DayGenerator) correctDrift(req dayRequest, placements []placement) []placement {
	var target, actual plan.Totals
	for _, slot := range req.slots {
		target.Calories += slot.Calories
		target.Protein += slot.Protein
		target.Carbs += slot.Carbs
		target.Fat += slot.Fat
	}
	for _, p := range placements {
		actual.Add(p.scaled)
	}

	if actual.Calories <= 0 || actual.Protein <= 0 {
		return placements
	}

	calRatio := target.Calories / actual.Calories
	protRatio := target.Protein / actual.Protein
	if math.Abs(calRatio-1) <= correctiveDriftTolerance && math.Abs(protRatio-1) <= correctiveDriftTolerance {
		return placements
	}

	factor := DayCorrectiveRange.Clamp(math.Max(calRatio, protRatio))
	g.logger.Debug("Applying corrective day rescale",
		zap.Int("day", req.day),
		zap.Float64("cal_ratio", calRatio),
		zap.Float64("protein_ratio", protRatio),
		zap.Float64("factor", factor),
	)

	corrected := make([]placement, len(placements))
	for i, p := range placements {
		corrected[i] = placement{slot: p.slot, scaled: Rescale(p.scaled, p.base, factor), base: p.base}
	}
	return corrected
}

// buildDayPlan groups placements into slot entries and computes totals
// and the accuracy record.
func buildDayPlan(req dayRequest, placements []placement) *plan.DayPlan {
	day := &plan.DayPlan{Day: req.day}

	entryIndex := make(map[string]int)
	for _, p := range placements {
		idx, ok := entryIndex[p.slot]
		if !ok {
			idx = len(day.Entries)
			entryIndex[p.slot] = idx
			day.Entries = append(day.Entries, plan.SlotEntry{Slot: p.slot})
		}
		day.Entries[idx].Meals = append(day.Entries[idx].Meals, p.scaled)
		day.Totals.Add(p.scaled)
	}

	for _, slot := range req.slots {
		day.Targets.Calories += slot.Calories
		day.Targets.Protein += slot.Protein
		day.Targets.Carbs += slot.Carbs
		day.Targets.Fat += slot.Fat
	}

	day.Accuracy = plan.NewAccuracy(day.Totals, day.Targets)
	return day
}
