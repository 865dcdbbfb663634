package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultDailyCalorieTarget is applied when a user registers without one.
const DefaultDailyCalorieTarget = 2000

// User represents an account that owns weight records, food records and
// an asset snapshot history.
type User struct {
	ID                 uuid.UUID
	Email              string
	HashedPassword     string
	Username           string
	Region             string
	GoalWeightKG       *decimal.Decimal
	DailyCalorieTarget int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Validate ensures the user adheres to domain rules.
// Returns an error if validation fails.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return errors.New("user email cannot be empty")
	}

	if strings.TrimSpace(u.Username) == "" {
		return errors.New("user username cannot be empty")
	}

	if u.DailyCalorieTarget < 0 {
		return errors.New("daily calorie target cannot be negative")
	}

	if u.GoalWeightKG != nil && u.GoalWeightKG.LessThanOrEqual(decimal.Zero) {
		return errors.New("goal weight must be positive")
	}

	return nil
}
