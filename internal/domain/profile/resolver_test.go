package profile

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// ResolverTestSuite provides a test suite for profile resolution
type ResolverTestSuite struct {
	suite.Suite
	logger *zap.Logger
}

func (suite *ResolverTestSuite) SetupSuite() {
	suite.logger = zap.NewNop()
}

func (suite *ResolverTestSuite) TestResolve() {
	suite.Run("Resolve_ExplicitTargets_ShouldPassThroughRounded", func() {
		// Arrange
		c := Client{
			ID:             uuid.New(),
			Goal:           GoalMuscleGain,
			TargetCalories: 2800.4,
			TargetProtein:  180.6,
			TargetCarbs:    320.2,
			TargetFat:      90.5,
			MealsPerDay:    5,
		}

		// Act
		p := Resolve(c, suite.logger)

		// Assert
		assert.Equal(suite.T(), Targets{Calories: 2800, Protein: 181, Carbs: 320, Fat: 91, Derived: false}, p.Targets)
		assert.Equal(suite.T(), 5, p.MealsPerDay)
		assert.Equal(suite.T(), GoalMuscleGain, p.Goal)
	})

	suite.Run("Resolve_NoTargets_ShouldDeriveFromMifflinStJeor", func() {
		c := Client{
			ID:            uuid.New(),
			Age:           30,
			Gender:        "male",
			WeightKG:      70,
			HeightCM:      170,
			Goal:          GoalMaintain,
			ActivityLevel: ActivitySedentary,
		}

		p := Resolve(c, suite.logger)

		// BMR = 10×70 + 6.25×170 − 5×30 + 5 = 1617.5; TDEE = ×1.2 = 1941.
		assert.True(suite.T(), p.Targets.Derived)
		assert.Equal(suite.T(), float64(1941), p.Targets.Calories)
		assert.Equal(suite.T(), float64(154), p.Targets.Protein) // 2.2 g/kg
		assert.Equal(suite.T(), float64(70), p.Targets.Fat)      // 1.0 g/kg
		// Carbs fill the remainder: (1941 − 154×4 − 70×9) / 4.
		assert.Equal(suite.T(), float64(174), p.Targets.Carbs)
	})

	suite.Run("Resolve_FemaleClient_ShouldUseLowerSexConstant", func() {
		c := Client{
			ID:            uuid.New(),
			Age:           30,
			Gender:        "female",
			WeightKG:      70,
			HeightCM:      170,
			Goal:          GoalMaintain,
			ActivityLevel: ActivitySedentary,
		}

		p := Resolve(c, suite.logger)

		// BMR = 1617.5 − 166 relative to male; TDEE = 1451.5×1.2 = 1741.8.
		assert.Equal(suite.T(), float64(1742), p.Targets.Calories)
	})

	suite.Run("Resolve_FatLossGoal_ShouldApplyDeficit", func() {
		c := Client{
			ID:            uuid.New(),
			Age:           30,
			Gender:        "male",
			WeightKG:      70,
			HeightCM:      170,
			Goal:          GoalFatLoss,
			ActivityLevel: ActivitySedentary,
		}

		p := Resolve(c, suite.logger)

		assert.Equal(suite.T(), float64(1441), p.Targets.Calories) // 1941 − 500
	})

	suite.Run("Resolve_MuscleGainGoal_ShouldApplySurplus", func() {
		c := Client{
			ID:            uuid.New(),
			Age:           30,
			Gender:        "male",
			WeightKG:      70,
			HeightCM:      170,
			Goal:          GoalMuscleGain,
			ActivityLevel: ActivitySedentary,
		}

		p := Resolve(c, suite.logger)

		assert.Equal(suite.T(), float64(2241), p.Targets.Calories) // 1941 + 300
	})

	suite.Run("Resolve_IncompleteRecord_ShouldSubstitutePopulationDefaults", func() {
		c := Client{
			ID:            uuid.New(),
			Gender:        "male",
			Goal:          GoalMaintain,
			ActivityLevel: ActivitySedentary,
		}

		p := Resolve(c, suite.logger)

		// Defaults are age 30, 70 kg, 170 cm, so the derived targets match
		// the fully specified reference client.
		assert.True(suite.T(), p.Targets.Derived)
		assert.Equal(suite.T(), float64(1941), p.Targets.Calories)
	})

	suite.Run("Resolve_UnknownActivityLevel_ShouldFallBackToSedentary", func() {
		c := Client{
			ID:            uuid.New(),
			Age:           30,
			Gender:        "male",
			WeightKG:      70,
			HeightCM:      170,
			Goal:          GoalMaintain,
			ActivityLevel: ActivityLevel("couch"),
		}

		p := Resolve(c, suite.logger)

		assert.Equal(suite.T(), float64(1941), p.Targets.Calories)
	})

	suite.Run("Resolve_AthleteActivity_ShouldUseHighestMultiplier", func() {
		c := Client{
			ID:            uuid.New(),
			Age:           30,
			Gender:        "male",
			WeightKG:      70,
			HeightCM:      170,
			Goal:          GoalMaintain,
			ActivityLevel: ActivityAthlete,
		}

		p := Resolve(c, suite.logger)

		assert.Equal(suite.T(), float64(3073), p.Targets.Calories) // round(1617.5 × 1.9)
	})

	suite.Run("Resolve_MissingDefaults_ShouldNormalizeGoalAndMeals", func() {
		c := Client{ID: uuid.New(), TargetCalories: 2000}

		p := Resolve(c, suite.logger)

		assert.Equal(suite.T(), GoalMaintain, p.Goal)
		assert.Equal(suite.T(), 4, p.MealsPerDay)
	})
}

func (suite *ResolverTestSuite) TestTargetCaloriesPerMeal() {
	suite.Run("TargetCaloriesPerMeal_FourMeals_ShouldDivideEvenly", func() {
		p := Profile{Targets: Targets{Calories: 2400}, MealsPerDay: 4}

		assert.Equal(suite.T(), float64(600), p.TargetCaloriesPerMeal())
	})

	suite.Run("TargetCaloriesPerMeal_ZeroMeals_ShouldReturnDailyTotal", func() {
		p := Profile{Targets: Targets{Calories: 2400}}

		assert.Equal(suite.T(), float64(2400), p.TargetCaloriesPerMeal())
	})
}

func TestResolverTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}
