package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/ports/outbound"
	"go.uber.org/zap"
	gormlib "gorm.io/gorm"
)

// MealRepository implements the meal repository interface using GORM
type MealRepository struct {
	db     *gormlib.DB
	logger *zap.Logger
}

// NewMealRepository creates a new meal repository
func NewMealRepository(db *gormlib.DB, logger *zap.Logger) outbound.MealRepository {
	return &MealRepository{db: db, logger: logger.Named("meal-repository")}
}

// FindAll loads the full catalog
func (r *MealRepository) FindAll(ctx context.Context) ([]*meal.Meal, error) {
	var models []MealModel

	result := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	meals := make([]*meal.Meal, len(models))
	for i := range models {
		meals[i] = ModelToMeal(&models[i], r.logger)
	}

	return meals, nil
}

// FindByID loads a single catalog meal
func (r *MealRepository) FindByID(ctx context.Context, id string) (*meal.Meal, error) {
	var model MealModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gormlib.ErrRecordNotFound) {
			return nil, fmt.Errorf("meal %s not found", id)
		}
		return nil, result.Error
	}

	return ModelToMeal(&model, r.logger), nil
}
