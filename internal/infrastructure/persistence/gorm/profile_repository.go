package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mealforge/v1/internal/domain/profile"
	"github.com/mealforge/v1/internal/ports/outbound"
	gormlib "gorm.io/gorm"
)

// ProfileRepository implements the profile repository interface using GORM
type ProfileRepository struct {
	db *gormlib.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gormlib.DB) outbound.ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByClientID loads a client record. A missing record returns
// (nil, nil); the service layer decides what that means.
func (r *ProfileRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) (*profile.Client, error) {
	var model ClientProfileModel

	result := r.db.WithContext(ctx).First(&model, "client_id = ?", clientID)
	if result.Error != nil {
		if errors.Is(result.Error, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return ModelToClient(&model), nil
}
