package meal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// VariationsTestSuite provides a test suite for catalog expansion
type VariationsTestSuite struct {
	suite.Suite
}

func (suite *VariationsTestSuite) baseMeal(id string) *Meal {
	return Normalize(Record{
		ID:          id,
		Name:        "Chicken Rice Bowl",
		Calories:    600,
		Protein:     40,
		Carbs:       60,
		Fat:         18,
		Fiber:       6,
		Timing:      "lunch, dinner",
		Ingredients: `[{"name": "Chicken breast", "amount": 180, "unit": "g"}]`,
	}, zap.NewNop())
}

func (suite *VariationsTestSuite) TestExpandCatalog() {
	suite.Run("ExpandCatalog_SmallCatalog_ShouldAddThreeVariationsPerMeal", func() {
		// Arrange
		meals := []*Meal{suite.baseMeal("m1"), suite.baseMeal("m2")}

		// Act
		expanded := ExpandCatalog(meals, MinUsableCatalogSize)

		// Assert: 2 base meals + 2×3 variations.
		require.Len(suite.T(), expanded, 8)
		assert.Same(suite.T(), meals[0], expanded[0])
		assert.Same(suite.T(), meals[1], expanded[1])
	})

	suite.Run("ExpandCatalog_DerivedEntries_ShouldFollowNamingScheme", func() {
		expanded := ExpandCatalog([]*Meal{suite.baseMeal("m1")}, MinUsableCatalogSize)

		require.Len(suite.T(), expanded, 4)
		ids := make([]string, 0, 3)
		for _, m := range expanded[1:] {
			ids = append(ids, m.ID())
			assert.True(suite.T(), m.IsDerived())
			assert.Equal(suite.T(), "m1", m.BaseID())
		}
		assert.Equal(suite.T(), []string{"m1-x75", "m1-x150", "m1-x200"}, ids)
		assert.Equal(suite.T(), "Chicken Rice Bowl (0.75x)", expanded[1].Name())
		assert.Equal(suite.T(), "Chicken Rice Bowl (1.5x)", expanded[2].Name())
		assert.Equal(suite.T(), "Chicken Rice Bowl (2x)", expanded[3].Name())
	})

	suite.Run("ExpandCatalog_Variation_ShouldScaleMacrosAndIngredients", func() {
		expanded := ExpandCatalog([]*Meal{suite.baseMeal("m1")}, MinUsableCatalogSize)

		double := expanded[3]
		assert.Equal(suite.T(), float64(1200), double.Calories())
		assert.Equal(suite.T(), float64(80), double.Protein())
		assert.Equal(suite.T(), float64(120), double.Carbs())
		assert.Equal(suite.T(), float64(36), double.Fat())
		require.Len(suite.T(), double.Ingredients(), 1)
		assert.Equal(suite.T(), float64(360), double.Ingredients()[0].Amount)
		assert.Equal(suite.T(), double.Timing(), expanded[0].Timing())
	})

	suite.Run("ExpandCatalog_LargeCatalog_ShouldReturnUnchanged", func() {
		meals := make([]*Meal, MinUsableCatalogSize)
		for i := range meals {
			meals[i] = suite.baseMeal(fmt.Sprintf("m%d", i))
		}

		expanded := ExpandCatalog(meals, MinUsableCatalogSize)

		assert.Len(suite.T(), expanded, MinUsableCatalogSize)
	})

	suite.Run("ExpandCatalog_AlreadyDerived_ShouldNotReVariate", func() {
		once := ExpandCatalog([]*Meal{suite.baseMeal("m1")}, MinUsableCatalogSize)

		twice := ExpandCatalog(once, MinUsableCatalogSize)

		// Only the single non-derived base meal gains variations; the
		// derived entries from the first pass are carried as-is.
		assert.Len(suite.T(), twice, 7)
		for _, m := range twice {
			if m.IsDerived() {
				assert.Equal(suite.T(), "m1", m.BaseID())
			}
		}
	})

	suite.Run("ExpandCatalog_EmptyCatalog_ShouldStayEmpty", func() {
		assert.Empty(suite.T(), ExpandCatalog(nil, MinUsableCatalogSize))
	})
}

func TestVariationsTestSuite(t *testing.T) {
	suite.Run(t, new(VariationsTestSuite))
}
