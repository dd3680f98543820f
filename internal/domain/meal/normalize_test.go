package meal

import (
	"testing"

	"github.com/mealforge/v1/internal/domain/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// NormalizeTestSuite provides a test suite for raw record normalization
type NormalizeTestSuite struct {
	suite.Suite
	logger *zap.Logger
}

func (suite *NormalizeTestSuite) SetupSuite() {
	suite.logger = zap.NewNop()
}

func (suite *NormalizeTestSuite) TestNormalize() {
	suite.Run("Normalize_JSONArrayFields_ShouldParse", func() {
		// Arrange
		rec := Record{
			ID:          "oats-berries",
			Name:        "Oats with Berries",
			Calories:    420,
			Protein:     18,
			Labels:      `["high_protein", "quick"]`,
			Timing:      `["breakfast"]`,
			Allergens:   `["gluten"]`,
			Ingredients: `[{"name": "Oats", "amount": 80, "unit": "g"}, {"name": "Blueberries", "amount": 100, "unit": "g"}]`,
			CostTier:    "budget",
			Difficulty:  "easy",
		}

		// Act
		m := Normalize(rec, suite.logger)

		// Assert
		assert.Equal(suite.T(), []string{"high_protein", "quick"}, m.Labels())
		assert.Equal(suite.T(), []string{"breakfast"}, m.Timing())
		assert.Equal(suite.T(), []string{"gluten"}, m.Allergens())
		require.Len(suite.T(), m.Ingredients(), 2)
		assert.Equal(suite.T(), Ingredient{Name: "Oats", Amount: 80, Unit: "g"}, m.Ingredients()[0])
		assert.Equal(suite.T(), profile.BudgetLow, m.CostTier())
		assert.Equal(suite.T(), DifficultyEasy, m.Difficulty())
	})

	suite.Run("Normalize_CommaSeparatedFields_ShouldParse", func() {
		rec := Record{
			ID:        "tuna-wrap",
			Name:      "Tuna Salad Wrap",
			Timing:    "lunch, dinner",
			Allergens: "fish, gluten",
			Labels:    "quick",
		}

		m := Normalize(rec, suite.logger)

		assert.Equal(suite.T(), []string{"lunch", "dinner"}, m.Timing())
		assert.Equal(suite.T(), []string{"fish", "gluten"}, m.Allergens())
		assert.Equal(suite.T(), []string{"quick"}, m.Labels())
	})

	suite.Run("Normalize_AmountMapIngredients_ShouldDefaultUnitToGrams", func() {
		rec := Record{
			ID:          "trail-mix",
			Name:        "Trail Mix",
			Ingredients: `{"Almonds": 30, "Raisins": 20}`,
		}

		m := Normalize(rec, suite.logger)

		require.Len(suite.T(), m.Ingredients(), 2)
		for _, ing := range m.Ingredients() {
			assert.Equal(suite.T(), "g", ing.Unit)
		}
	})

	suite.Run("Normalize_MalformedIngredients_ShouldKeepMealEligible", func() {
		rec := Record{
			ID:          "broken",
			Name:        "Broken Row",
			Timing:      "lunch",
			Ingredients: `[{"name": "Oats", `,
		}

		m := Normalize(rec, suite.logger)

		assert.Nil(suite.T(), m.Ingredients())
		assert.Equal(suite.T(), "Broken Row", m.Name())
		assert.True(suite.T(), m.FillsSlot("lunch"))
	})

	suite.Run("Normalize_UnknownTiers_ShouldDefaultToMiddle", func() {
		m := Normalize(Record{ID: "x", CostTier: "luxury", Difficulty: "impossible"}, suite.logger)

		assert.Equal(suite.T(), profile.BudgetMedium, m.CostTier())
		assert.Equal(suite.T(), DifficultyMedium, m.Difficulty())
	})

	suite.Run("Normalize_EmptyFields_ShouldYieldEmptySets", func() {
		m := Normalize(Record{ID: "bare", Name: "Bare"}, suite.logger)

		assert.Empty(suite.T(), m.Labels())
		assert.Empty(suite.T(), m.Timing())
		assert.Empty(suite.T(), m.Allergens())
		assert.Empty(suite.T(), m.Ingredients())
	})
}

func (suite *NormalizeTestSuite) TestParseIngredients() {
	suite.Run("ParseIngredients_MissingUnit_ShouldDefaultToGrams", func() {
		ingredients, err := ParseIngredients(`[{"name": "Rice", "amount": 200}]`)

		require.NoError(suite.T(), err)
		require.Len(suite.T(), ingredients, 1)
		assert.Equal(suite.T(), "g", ingredients[0].Unit)
	})

	suite.Run("ParseIngredients_BlankNames_ShouldBeDropped", func() {
		ingredients, err := ParseIngredients(`[{"name": "  ", "amount": 10}, {"name": "Rice", "amount": 200}]`)

		require.NoError(suite.T(), err)
		assert.Len(suite.T(), ingredients, 1)
	})

	suite.Run("ParseIngredients_Empty_ShouldReturnNothing", func() {
		ingredients, err := ParseIngredients("  ")

		require.NoError(suite.T(), err)
		assert.Nil(suite.T(), ingredients)
	})

	suite.Run("ParseIngredients_Malformed_ShouldReturnError", func() {
		_, err := ParseIngredients(`{"Oats": "eighty"}`)

		assert.Error(suite.T(), err)
	})
}

func TestNormalizeTestSuite(t *testing.T) {
	suite.Run(t, new(NormalizeTestSuite))
}
