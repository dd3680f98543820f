// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	gormlib "gorm.io/gorm"
)

// MealModel represents the GORM model for catalog meals.
// The list-shaped columns stay raw text on purpose: catalog imports
// deliver them in mixed encodings (JSON arrays, comma lists, maps) and
// the domain normalizer is the single place that interprets them.
type MealModel struct {
	ID             string  `gorm:"type:varchar(64);primaryKey"`
	Name           string  `gorm:"type:varchar(255);not null;index"`
	Calories       float64 `gorm:"not null"`
	Protein        float64 `gorm:"not null"`
	Carbs          float64 `gorm:"default:0"`
	Fat            float64 `gorm:"default:0"`
	Fiber          float64 `gorm:"default:0"`
	Labels         string  `gorm:"type:text"`
	Timing         string  `gorm:"type:text"`
	Allergens      string  `gorm:"type:text"`
	Ingredients    string  `gorm:"type:text"`
	CostTier       string  `gorm:"type:varchar(20);index"`
	Difficulty     string  `gorm:"type:varchar(20)"`
	DefaultPortion string  `gorm:"type:varchar(100)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ClientProfileModel represents the GORM model for client profiles
type ClientProfileModel struct {
	ClientID      uuid.UUID `gorm:"type:char(36);primaryKey"`
	Age           int       `gorm:"default:0"`
	Gender        string    `gorm:"type:varchar(20)"`
	HeightCM      float64   `gorm:"default:0"`
	WeightKG      float64   `gorm:"default:0"`
	Goal          string    `gorm:"type:varchar(30);index"`
	ActivityLevel string    `gorm:"type:varchar(30)"`

	TargetCalories float64 `gorm:"default:0"`
	TargetProtein  float64 `gorm:"default:0"`
	TargetCarbs    float64 `gorm:"default:0"`
	TargetFat      float64 `gorm:"default:0"`

	MealsPerDay        int    `gorm:"default:0"`
	BudgetTier         string `gorm:"type:varchar(20)"`
	CookingSkill       string `gorm:"type:varchar(20)"`
	MealPrepPreference string `gorm:"type:varchar(30)"`
	DietaryType        string `gorm:"type:varchar(30)"`

	LovedIngredients StringSlice `gorm:"type:json"`
	HatedIngredients StringSlice `gorm:"type:json"`
	Allergies        StringSlice `gorm:"type:json"`
	Intolerances     StringSlice `gorm:"type:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WeekPlanModel represents the GORM model for persisted week plans.
// The plan body is stored as a single JSON document; the engine always
// reads and writes whole plans, so per-meal rows would buy nothing.
type WeekPlanModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	ClientID  uuid.UUID `gorm:"type:char(36);not null;index"`
	StartDate time.Time `gorm:"index"`
	IsActive  bool      `gorm:"default:false;index"`
	Payload   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// BeforeCreate hook for WeekPlanModel
func (w *WeekPlanModel) BeforeCreate(tx *gormlib.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (MealModel) TableName() string {
	return "meals"
}

func (ClientProfileModel) TableName() string {
	return "client_profiles"
}

func (WeekPlanModel) TableName() string {
	return "week_plans"
}
