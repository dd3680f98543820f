// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/domain/plan"
	"github.com/mealforge/v1/internal/domain/profile"
)

// MealRepository loads the meal catalog from the external store.
// Normalization of raw fields happens in the domain layer; the adapter
// only fetches rows and hands them through meal.Normalize.
type MealRepository interface {
	FindAll(ctx context.Context) ([]*meal.Meal, error)
	FindByID(ctx context.Context, id string) (*meal.Meal, error)
}

// ProfileRepository loads client records.
type ProfileRepository interface {
	FindByClientID(ctx context.Context, clientID uuid.UUID) (*profile.Client, error)
}

// PlanRepository persists assembled week plans. Save marks the new plan
// active and deactivates all prior plans for the client in the same
// transaction; older plans are never deleted.
type PlanRepository interface {
	Save(ctx context.Context, weekPlan *plan.WeekPlan) error
	FindActive(ctx context.Context, clientID uuid.UUID) (*plan.WeekPlan, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]*plan.WeekPlan, error)
}

// CacheRepository defines the interface for caching operations.
// Writes are whole-entry replacement; partial in-place mutation is not
// supported, which keeps concurrent readers free of torn reads.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
