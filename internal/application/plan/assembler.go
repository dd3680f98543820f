package plan

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/domain/plan"
	"github.com/mealforge/v1/internal/domain/profile"
	"github.com/mealforge/v1/pkg/errors"
	"github.com/mealforge/v1/pkg/random"
	"go.uber.org/zap"
)

// DefaultPlanDays is the plan length when the request leaves it unset.
const DefaultPlanDays = 7

// varietyDenominatorCap bounds the slot count used in the variety
// score so long plans are not penalized for necessary reuse.
const varietyDenominatorCap = 20

// AssembleOptions carries the request options that shape assembly.
type AssembleOptions struct {
	Days            int
	VariationLevel  string
	AvoidDuplicates bool
	// ForcedMeals maps a timing to the coach-forced meal ids for it.
	ForcedMeals map[string][]string
}

// recentMeals is the rolling "recently used" set: a FIFO capped at
// twice the eligible pool size, so meals become reusable again on long
// plans without immediate repetition.
type recentMeals struct {
	order []string
	set   map[string]bool
	cap   int
}

func newRecentMeals(eligiblePoolSize int) *recentMeals {
	c := eligiblePoolSize * 2
	if c < 1 {
		c = 1
	}
	return &recentMeals{set: make(map[string]bool), cap: c}
}

func (r *recentMeals) add(baseID string) {
	if r.set[baseID] {
		return
	}
	r.set[baseID] = true
	r.order = append(r.order, baseID)
	for len(r.order) > r.cap {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.set, oldest)
	}
}

// PlanAssembler iterates days to build the full plan and computes
// plan-level statistics.
type PlanAssembler struct {
	daygen *DayGenerator
	logger *zap.Logger
}

// NewPlanAssembler creates a plan assembler.
func NewPlanAssembler(rng random.Source, logger *zap.Logger) *PlanAssembler {
	return &PlanAssembler{
		daygen: NewDayGenerator(rng, logger),
		logger: logger.Named("plan-assembler"),
	}
}

// Assemble generates the requested number of days sequentially. The
// context is checked between day iterations; a cancelled generation
// never yields a partial plan.
func (a *PlanAssembler) Assemble(
	ctx context.Context,
	p profile.Profile,
	meals []*meal.Meal,
	scored map[string]plan.ScoredMeal,
	opts AssembleOptions,
) (*plan.WeekPlan, error) {
	days := opts.Days
	if days <= 0 {
		days = DefaultPlanDays
	}

	catalog := make(map[string]*meal.Meal, len(meals))
	eligible := 0
	for _, m := range meals {
		catalog[m.ID()] = m
		if s, ok := scored[m.ID()]; ok && !s.Disqualified() {
			eligible++
		}
	}
	if eligible == 0 {
		return nil, errors.NewNoEligibleMealsError("any")
	}

	slots := Distribution(p)
	recent := newRecentMeals(eligible)
	forced := newForcedQueue(opts.ForcedMeals)

	week := &plan.WeekPlan{
		ID:           uuid.New(),
		ClientID:     p.ClientID,
		StartDate:    time.Now().Truncate(24 * time.Hour),
		DailyTargets: p.Targets,
	}

	for day := 1; day <= days; day++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "plan generation cancelled")
		}

		dayPlan, err := a.daygen.GenerateDay(dayRequest{
			day:            day,
			profile:        p,
			slots:          slots,
			scored:         scored,
			catalog:        catalog,
			forced:         forced,
			recentlyUsed:   recent.set,
			variationLevel: opts.VariationLevel,
			avoidDupes:     opts.AvoidDuplicates,
		})
		if err != nil {
			return nil, err
		}

		for _, m := range dayPlan.Meals() {
			recent.add(m.BaseID)
		}
		week.Days = append(week.Days, *dayPlan)
	}

	week.Stats = computeStats(week)

	a.logger.Info("Assembled week plan",
		zap.String("client_id", p.ClientID.String()),
		zap.Int("days", days),
		zap.Float64("average_accuracy", week.Stats.AverageAccuracy),
		zap.Int("distinct_meals", week.Stats.DistinctMeals),
	)

	return week, nil
}

// computeStats derives plan-level aggregates: average accuracy, week
// average macros, variety and compliance scores.
func computeStats(week *plan.WeekPlan) plan.Stats {
	var stats plan.Stats
	if len(week.Days) == 0 {
		return stats
	}

	distinct := make(map[string]bool)
	totalSlots := 0
	var accuracySum float64
	var sum plan.Totals

	for _, day := range week.Days {
		accuracySum += float64(day.Accuracy.Total)
		sum.Calories += day.Totals.Calories
		sum.Protein += day.Totals.Protein
		sum.Carbs += day.Totals.Carbs
		sum.Fat += day.Totals.Fat
		for _, m := range day.Meals() {
			distinct[m.BaseID] = true
			totalSlots++
		}
	}

	dayCount := float64(len(week.Days))
	stats.AverageAccuracy = math.Round(accuracySum/dayCount*10) / 10
	stats.WeekAverage = plan.Totals{
		Calories: math.Round(sum.Calories / dayCount),
		Protein:  math.Round(sum.Protein / dayCount),
		Carbs:    math.Round(sum.Carbs / dayCount),
		Fat:      math.Round(sum.Fat / dayCount),
	}
	stats.DistinctMeals = len(distinct)

	denominator := totalSlots
	if denominator > varietyDenominatorCap {
		denominator = varietyDenominatorCap
	}
	if denominator > 0 {
		stats.VarietyScore = math.Round(float64(len(distinct))/float64(denominator)*100) / 100
	}

	targets := week.DailyTargets
	compliance := (plan.AccuracyComponent(stats.WeekAverage.Calories, targets.Calories) +
		plan.AccuracyComponent(stats.WeekAverage.Protein, targets.Protein) +
		plan.AccuracyComponent(stats.WeekAverage.Carbs, targets.Carbs) +
		plan.AccuracyComponent(stats.WeekAverage.Fat, targets.Fat)) / 4
	stats.ComplianceScore = math.Round(compliance*10) / 10

	return stats
}
