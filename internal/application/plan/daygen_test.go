package plan

import (
	"testing"

	"github.com/mealforge/v1/internal/domain/meal"
	domainplan "github.com/mealforge/v1/internal/domain/plan"
	apperrors "github.com/mealforge/v1/pkg/errors"
	"github.com/mealforge/v1/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// DayGeneratorTestSuite provides a test suite for day generation
type DayGeneratorTestSuite struct {
	suite.Suite
	generator *DayGenerator
}

func (suite *DayGeneratorTestSuite) SetupTest() {
	suite.generator = NewDayGenerator(testutils.ZeroRandom{}, zap.NewNop())
}

// slotCatalog builds one meal per timing plus an extra lunch option, and
// a scored map with fixed totals so candidate order is predictable.
func (suite *DayGeneratorTestSuite) slotCatalog() ([]*meal.Meal, map[string]domainplan.ScoredMeal) {
	meals := []*meal.Meal{
		testutils.NewMealBuilder().WithID("bf-1").WithTiming("breakfast").WithMacros(600, 38, 70, 20).Build(),
		testutils.NewMealBuilder().WithID("lu-1").WithTiming("lunch").WithMacros(720, 45, 80, 25).Build(),
		testutils.NewMealBuilder().WithID("lu-2").WithTiming("lunch").WithMacros(700, 42, 75, 24).Build(),
		testutils.NewMealBuilder().WithID("di-1").WithTiming("dinner").WithMacros(720, 45, 80, 25).Build(),
		testutils.NewMealBuilder().WithID("sn-1").WithTiming("snack").WithMacros(360, 23, 40, 12).Build(),
		testutils.NewMealBuilder().WithID("sn-2").WithTiming("snack").WithMacros(200, 15, 20, 8).Build(),
	}

	scored := make(map[string]domainplan.ScoredMeal, len(meals))
	scores := map[string]float64{"bf-1": 80, "lu-1": 80, "lu-2": 60, "di-1": 75, "sn-1": 70, "sn-2": 65}
	for _, m := range meals {
		scored[m.ID()] = domainplan.ScoredMeal{Meal: m, Total: scores[m.ID()]}
	}
	return meals, scored
}

func (suite *DayGeneratorTestSuite) newRequest(meals []*meal.Meal, scored map[string]domainplan.ScoredMeal, forced map[string][]string) dayRequest {
	p := testutils.NewProfileBuilder().Build()
	catalog := make(map[string]*meal.Meal, len(meals))
	for _, m := range meals {
		catalog[m.ID()] = m
	}
	return dayRequest{
		day:          1,
		profile:      p,
		slots:        Distribution(p),
		scored:       scored,
		catalog:      catalog,
		forced:       newForcedQueue(forced),
		recentlyUsed: map[string]bool{},
		avoidDupes:   true,
	}
}

func (suite *DayGeneratorTestSuite) TestGenerateDay() {
	suite.Run("GenerateDay_FullCatalog_ShouldFillEverySlot", func() {
		// Arrange
		meals, scored := suite.slotCatalog()
		req := suite.newRequest(meals, scored, nil)

		// Act
		day, err := suite.generator.GenerateDay(req)

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), day.Entries, 4)
		assert.Equal(suite.T(), SlotBreakfast, day.Entries[0].Slot)
		assert.Equal(suite.T(), SlotLunch, day.Entries[1].Slot)
		assert.Equal(suite.T(), SlotDinner, day.Entries[2].Slot)
		assert.Equal(suite.T(), SlotSnack, day.Entries[3].Slot)
		for _, entry := range day.Entries {
			assert.Len(suite.T(), entry.Meals, 1)
		}
	})

	suite.Run("GenerateDay_Totals_ShouldSumPlacedMeals", func() {
		meals, scored := suite.slotCatalog()
		req := suite.newRequest(meals, scored, nil)

		day, err := suite.generator.GenerateDay(req)

		require.NoError(suite.T(), err)
		var expected domainplan.Totals
		for _, m := range day.Meals() {
			expected.Add(m)
		}
		assert.Equal(suite.T(), expected, day.Totals)
		assert.Equal(suite.T(), domainplan.NewAccuracy(day.Totals, day.Targets), day.Accuracy)
	})

	suite.Run("GenerateDay_SmallPool_ShouldPickTopScore", func() {
		meals, scored := suite.slotCatalog()
		req := suite.newRequest(meals, scored, nil)

		day, err := suite.generator.GenerateDay(req)

		require.NoError(suite.T(), err)
		// Lunch has two candidates; 80 beats 60.
		assert.Equal(suite.T(), "lu-1", day.Entries[1].Meals[0].MealID)
	})

	suite.Run("GenerateDay_ScoreTie_ShouldBreakByID", func() {
		meals := []*meal.Meal{
			testutils.NewMealBuilder().WithID("bf-1").WithTiming("breakfast").Build(),
			testutils.NewMealBuilder().WithID("lu-a").WithTiming("lunch").Build(),
			testutils.NewMealBuilder().WithID("lu-b").WithTiming("lunch").Build(),
			testutils.NewMealBuilder().WithID("di-1").WithTiming("dinner").Build(),
			testutils.NewMealBuilder().WithID("sn-1").WithTiming("snack").Build(),
		}
		scored := make(map[string]domainplan.ScoredMeal, len(meals))
		for _, m := range meals {
			scored[m.ID()] = domainplan.ScoredMeal{Meal: m, Total: 50}
		}
		req := suite.newRequest(meals, scored, nil)

		day, err := suite.generator.GenerateDay(req)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "lu-a", day.Entries[1].Meals[0].MealID)
	})

	suite.Run("GenerateDay_EmptyPool_ShouldReturnNoEligibleMeals", func() {
		// Only a breakfast meal exists; lunch has no candidates.
		meals := []*meal.Meal{
			testutils.NewMealBuilder().WithID("bf-1").WithTiming("breakfast").Build(),
		}
		scored := map[string]domainplan.ScoredMeal{
			"bf-1": {Meal: meals[0], Total: 50},
		}
		req := suite.newRequest(meals, scored, nil)

		_, err := suite.generator.GenerateDay(req)

		require.Error(suite.T(), err)
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeNoEligibleMeals))
	})

	suite.Run("GenerateDay_RecentlyUsedOnlyOption_ShouldRelaxAndReuse", func() {
		meals, scored := suite.slotCatalog()
		req := suite.newRequest(meals, scored, nil)
		// Every base id was recently used; relaxation must still fill the day.
		for _, m := range meals {
			req.recentlyUsed[m.BaseID()] = true
		}

		day, err := suite.generator.GenerateDay(req)

		require.NoError(suite.T(), err)
		assert.Len(suite.T(), day.Entries, 4)
	})
}

func (suite *DayGeneratorTestSuite) TestForcedMeals() {
	suite.Run("GenerateDay_ForcedLunch_ShouldPlaceAndFlag", func() {
		meals, scored := suite.slotCatalog()
		req := suite.newRequest(meals, scored, map[string][]string{
			"lunch": {"lu-2"},
		})

		day, err := suite.generator.GenerateDay(req)

		require.NoError(suite.T(), err)
		lunch := day.Entries[1]
		require.Len(suite.T(), lunch.Meals, 1)
		assert.Equal(suite.T(), "lu-2", lunch.Meals[0].MealID)
		assert.True(suite.T(), lunch.Meals[0].Forced)
	})

	suite.Run("GenerateDay_UnknownForcedID_ShouldFallBackToSelection", func() {
		meals, scored := suite.slotCatalog()
		req := suite.newRequest(meals, scored, map[string][]string{
			"lunch": {"ghost-meal"},
		})

		day, err := suite.generator.GenerateDay(req)

		require.NoError(suite.T(), err)
		lunch := day.Entries[1]
		require.Len(suite.T(), lunch.Meals, 1)
		assert.Equal(suite.T(), "lu-1", lunch.Meals[0].MealID)
		assert.False(suite.T(), lunch.Meals[0].Forced)
	})

	suite.Run("GenerateDay_TwoForcedSnacks_ShouldShareTheSlot", func() {
		meals, scored := suite.slotCatalog()
		req := suite.newRequest(meals, scored, map[string][]string{
			"snack": {"sn-1", "sn-2"},
		})

		day, err := suite.generator.GenerateDay(req)

		require.NoError(suite.T(), err)
		snack := day.Entries[3]
		require.Len(suite.T(), snack.Meals, 2)
		assert.True(suite.T(), snack.Meals[0].Forced)
		assert.True(suite.T(), snack.Meals[1].Forced)
	})

	suite.Run("GenerateDay_ForcedSnackListWithTypo_ShouldKeepValidOverride", func() {
		// One bad id must not void the valid override queued next to it.
		meals, scored := suite.slotCatalog()
		req := suite.newRequest(meals, scored, map[string][]string{
			"snack": {"sn-1", "ghost-meal"},
		})

		day, err := suite.generator.GenerateDay(req)

		require.NoError(suite.T(), err)
		snack := day.Entries[3]
		require.Len(suite.T(), snack.Meals, 1)
		assert.Equal(suite.T(), "sn-1", snack.Meals[0].MealID)
		assert.True(suite.T(), snack.Meals[0].Forced)
		// The slot target is shared only among resolved overrides, so
		// the surviving snack keeps the full 360 kcal target.
		assert.Equal(suite.T(), float64(360), snack.Meals[0].Calories)
	})
}

func (suite *DayGeneratorTestSuite) TestHelpers() {
	suite.Run("BaseTiming_SuffixedSlots_ShouldStripSuffix", func() {
		assert.Equal(suite.T(), "snack", baseTiming(SlotSnack2))
		assert.Equal(suite.T(), "snack", baseTiming(SlotSnack3))
		assert.Equal(suite.T(), "lunch", baseTiming(SlotLunch))
	})

	suite.Run("TopNForVariation_Levels_ShouldMapToWindowSize", func() {
		assert.Equal(suite.T(), 5, topNForVariation("high"))
		assert.Equal(suite.T(), 1, topNForVariation("low"))
		assert.Equal(suite.T(), 3, topNForVariation("medium"))
		assert.Equal(suite.T(), 3, topNForVariation(""))
	})
}

func TestDayGeneratorTestSuite(t *testing.T) {
	suite.Run(t, new(DayGeneratorTestSuite))
}
