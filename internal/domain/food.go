package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MealType classifies which meal of the day a food record belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Valid reports whether the meal type is a member of the closed set.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// FoodRecord represents one logged meal, composed of individual food items.
// TotalCalories is maintained as the sum of the item calories.
type FoodRecord struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	MealType      MealType
	RecordedDate  time.Time
	TotalCalories int
	Note          string
	Items         []FoodItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FoodItem is a single food entry within a meal.
type FoodItem struct {
	ID            uuid.UUID
	FoodRecordID  uuid.UUID
	Name          string
	Calories      int
	AmountG       *decimal.Decimal
	ImageURL      string
	PixelIconType string
}

// Validate ensures the food record adheres to domain rules.
// Returns an error if validation fails.
func (f *FoodRecord) Validate() error {
	if f.UserID == uuid.Nil {
		return errors.New("food record must belong to a user")
	}

	if !f.MealType.Valid() {
		return errors.New("meal type must be breakfast, lunch, dinner or snack")
	}

	if f.RecordedDate.IsZero() {
		return errors.New("food record date must be set")
	}

	if f.TotalCalories < 0 {
		return errors.New("food record total calories cannot be negative")
	}

	for _, item := range f.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Validate ensures the food item adheres to domain rules.
func (i *FoodItem) Validate() error {
	if i.Name == "" {
		return errors.New("food item name cannot be empty")
	}

	if i.Calories < 0 {
		return errors.New("food item calories cannot be negative")
	}

	if i.AmountG != nil && i.AmountG.LessThanOrEqual(decimal.Zero) {
		return errors.New("food item amount must be positive")
	}

	return nil
}
