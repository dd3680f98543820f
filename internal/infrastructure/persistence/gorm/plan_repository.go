package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mealforge/v1/internal/domain/plan"
	"github.com/mealforge/v1/internal/ports/outbound"
	gormlib "gorm.io/gorm"
)

// PlanRepository implements the plan repository interface using GORM
type PlanRepository struct {
	db *gormlib.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gormlib.DB) outbound.PlanRepository {
	return &PlanRepository{db: db}
}

// Save persists the plan and makes it the client's active one. The
// deactivation of prior plans and the insert run in one transaction;
// older plans are kept for history, never deleted.
func (r *PlanRepository) Save(ctx context.Context, weekPlan *plan.WeekPlan) error {
	model, err := WeekPlanToModel(weekPlan)
	if err != nil {
		return err
	}
	model.IsActive = true

	return r.db.WithContext(ctx).Transaction(func(tx *gormlib.DB) error {
		result := tx.Model(&WeekPlanModel{}).
			Where("client_id = ? AND is_active = ?", weekPlan.ClientID, true).
			Update("is_active", false)
		if result.Error != nil {
			return result.Error
		}

		return tx.Create(model).Error
	})
}

// FindActive returns the client's active plan, or (nil, nil) if none.
func (r *PlanRepository) FindActive(ctx context.Context, clientID uuid.UUID) (*plan.WeekPlan, error) {
	var model WeekPlanModel

	result := r.db.WithContext(ctx).
		Where("client_id = ? AND is_active = ?", clientID, true).
		Order("created_at DESC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return ModelToWeekPlan(&model)
}

// FindByClient returns the client's plan history, newest first. Rows
// with an unreadable payload are skipped rather than failing the list.
func (r *PlanRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]*plan.WeekPlan, error) {
	var models []WeekPlanModel

	result := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	plans := make([]*plan.WeekPlan, 0, len(models))
	for i := range models {
		week, err := ModelToWeekPlan(&models[i])
		if err != nil {
			continue
		}
		plans = append(plans, week)
	}
	return plans, nil
}
