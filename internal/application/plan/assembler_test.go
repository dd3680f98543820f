package plan

import (
	"context"
	"testing"

	"github.com/mealforge/v1/internal/domain/meal"
	domainplan "github.com/mealforge/v1/internal/domain/plan"
	"github.com/mealforge/v1/internal/domain/profile"
	apperrors "github.com/mealforge/v1/pkg/errors"
	"github.com/mealforge/v1/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// PlanAssemblerTestSuite provides a test suite for week assembly
type PlanAssemblerTestSuite struct {
	suite.Suite
	assembler *PlanAssembler
}

func (suite *PlanAssemblerTestSuite) SetupTest() {
	suite.assembler = NewPlanAssembler(testutils.ZeroRandom{}, zap.NewNop())
}

func (suite *PlanAssemblerTestSuite) weekCatalog() ([]*meal.Meal, map[string]domainplan.ScoredMeal) {
	meals := []*meal.Meal{
		testutils.NewMealBuilder().WithID("bf-1").WithTiming("breakfast").WithMacros(600, 38, 70, 20).Build(),
		testutils.NewMealBuilder().WithID("lu-1").WithTiming("lunch").WithMacros(720, 45, 80, 25).Build(),
		testutils.NewMealBuilder().WithID("lu-2").WithTiming("lunch").WithMacros(700, 42, 75, 24).Build(),
		testutils.NewMealBuilder().WithID("di-1").WithTiming("dinner").WithMacros(720, 45, 80, 25).Build(),
		testutils.NewMealBuilder().WithID("sn-1").WithTiming("snack").WithMacros(360, 23, 40, 12).Build(),
	}

	scored := make(map[string]domainplan.ScoredMeal, len(meals))
	scores := map[string]float64{"bf-1": 80, "lu-1": 80, "lu-2": 60, "di-1": 75, "sn-1": 70}
	for _, m := range meals {
		scored[m.ID()] = domainplan.ScoredMeal{Meal: m, Total: scores[m.ID()]}
	}
	return meals, scored
}

func (suite *PlanAssemblerTestSuite) TestAssemble() {
	suite.Run("Assemble_UnsetDays_ShouldDefaultToSeven", func() {
		// Arrange
		p := testutils.NewProfileBuilder().Build()
		meals, scored := suite.weekCatalog()

		// Act
		week, err := suite.assembler.Assemble(context.Background(), p, meals, scored, AssembleOptions{})

		// Assert
		require.NoError(suite.T(), err)
		assert.Len(suite.T(), week.Days, DefaultPlanDays)
		assert.Equal(suite.T(), p.ClientID, week.ClientID)
		assert.Equal(suite.T(), p.Targets, week.DailyTargets)
		for i, day := range week.Days {
			assert.Equal(suite.T(), i+1, day.Day)
		}
	})

	suite.Run("Assemble_CancelledContext_ShouldNotYieldPartialPlan", func() {
		p := testutils.NewProfileBuilder().Build()
		meals, scored := suite.weekCatalog()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		week, err := suite.assembler.Assemble(ctx, p, meals, scored, AssembleOptions{Days: 3})

		require.Error(suite.T(), err)
		assert.Nil(suite.T(), week)
	})

	suite.Run("Assemble_AllDisqualified_ShouldReturnNoEligibleMeals", func() {
		p := testutils.NewProfileBuilder().Build()
		meals, scored := suite.weekCatalog()
		for id, s := range scored {
			s.Total = domainplan.DisqualifiedScore
			scored[id] = s
		}

		week, err := suite.assembler.Assemble(context.Background(), p, meals, scored, AssembleOptions{})

		require.Error(suite.T(), err)
		assert.Nil(suite.T(), week)
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeNoEligibleMeals))
	})

	suite.Run("Assemble_AvoidDuplicates_ShouldRotateLunches", func() {
		p := testutils.NewProfileBuilder().Build()
		meals, scored := suite.weekCatalog()

		week, err := suite.assembler.Assemble(context.Background(), p, meals, scored, AssembleOptions{
			Days:            2,
			AvoidDuplicates: true,
		})

		require.NoError(suite.T(), err)
		require.Len(suite.T(), week.Days, 2)
		dayOne := week.Days[0].Entries[1].Meals[0].MealID
		dayTwo := week.Days[1].Entries[1].Meals[0].MealID
		assert.Equal(suite.T(), "lu-1", dayOne)
		assert.Equal(suite.T(), "lu-2", dayTwo)
	})

	suite.Run("Assemble_ForcedMeal_ShouldOnlyAffectFirstMatchingDay", func() {
		p := testutils.NewProfileBuilder().Build()
		meals, scored := suite.weekCatalog()

		week, err := suite.assembler.Assemble(context.Background(), p, meals, scored, AssembleOptions{
			Days:        2,
			ForcedMeals: map[string][]string{"lunch": {"lu-2"}},
		})

		require.NoError(suite.T(), err)
		assert.True(suite.T(), week.Days[0].Entries[1].Meals[0].Forced)
		assert.False(suite.T(), week.Days[1].Entries[1].Meals[0].Forced)
	})
}

func (suite *PlanAssemblerTestSuite) TestComputeStats() {
	suite.Run("ComputeStats_TwoDays_ShouldAggregate", func() {
		// Arrange
		targets := profile.Targets{Calories: 2100, Protein: 155, Carbs: 255, Fat: 75}
		week := &domainplan.WeekPlan{
			DailyTargets: targets,
			Days: []domainplan.DayPlan{
				{
					Day: 1,
					Entries: []domainplan.SlotEntry{
						{Slot: SlotLunch, Meals: []*domainplan.ScaledMeal{
							{BaseID: "a", Calories: 1000, Protein: 75, Carbs: 125, Fat: 35},
							{BaseID: "b", Calories: 1000, Protein: 75, Carbs: 125, Fat: 35},
						}},
					},
					Totals:   domainplan.Totals{Calories: 2000, Protein: 150, Carbs: 250, Fat: 70},
					Accuracy: domainplan.Accuracy{Total: 90},
				},
				{
					Day: 2,
					Entries: []domainplan.SlotEntry{
						{Slot: SlotLunch, Meals: []*domainplan.ScaledMeal{
							{BaseID: "a", Calories: 1100, Protein: 80, Carbs: 130, Fat: 40},
							{BaseID: "c", Calories: 1100, Protein: 80, Carbs: 130, Fat: 40},
						}},
					},
					Totals:   domainplan.Totals{Calories: 2200, Protein: 160, Carbs: 260, Fat: 80},
					Accuracy: domainplan.Accuracy{Total: 95},
				},
			},
		}

		// Act
		stats := computeStats(week)

		// Assert
		assert.Equal(suite.T(), 92.5, stats.AverageAccuracy)
		assert.Equal(suite.T(), domainplan.Totals{Calories: 2100, Protein: 155, Carbs: 255, Fat: 75}, stats.WeekAverage)
		assert.Equal(suite.T(), 3, stats.DistinctMeals)
		assert.Equal(suite.T(), 0.75, stats.VarietyScore) // 3 distinct over 4 slots
		assert.Equal(suite.T(), 100.0, stats.ComplianceScore)
	})

	suite.Run("ComputeStats_EmptyPlan_ShouldReturnZeroValue", func() {
		stats := computeStats(&domainplan.WeekPlan{})

		assert.Equal(suite.T(), domainplan.Stats{}, stats)
	})
}

func TestPlanAssemblerTestSuite(t *testing.T) {
	suite.Run(t, new(PlanAssemblerTestSuite))
}
