package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WeightRecord represents a single weight measurement for a user on a
// calendar date.
type WeightRecord struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	WeightKG     decimal.Decimal
	RecordedDate time.Time
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate ensures the weight record adheres to domain rules.
// Returns an error if validation fails.
func (w *WeightRecord) Validate() error {
	if w.UserID == uuid.Nil {
		return errors.New("weight record must belong to a user")
	}

	if w.WeightKG.LessThanOrEqual(decimal.Zero) {
		return errors.New("weight must be positive")
	}

	if w.RecordedDate.IsZero() {
		return errors.New("weight record date must be set")
	}

	return nil
}
