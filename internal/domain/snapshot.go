package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TriggerKind classifies the cause of an asset snapshot.
// The set is closed: every snapshot carries exactly one of these values.
type TriggerKind string

const (
	TriggerWeightDown    TriggerKind = "weight_down"
	TriggerWeightUp      TriggerKind = "weight_up"
	TriggerWeightInitial TriggerKind = "weight_initial"
	TriggerFoodLogged    TriggerKind = "food_logged"
	TriggerStreakBonus   TriggerKind = "streak_bonus"
	TriggerInitial       TriggerKind = "initial"
)

// Valid reports whether the trigger kind is a member of the closed set.
func (k TriggerKind) Valid() bool {
	switch k {
	case TriggerWeightDown, TriggerWeightUp, TriggerWeightInitial,
		TriggerFoodLogged, TriggerStreakBonus, TriggerInitial:
		return true
	}
	return false
}

// ValuePrecision is the number of decimal places asset values and deltas
// are rounded to before persistence.
const ValuePrecision = 4

// AssetSnapshot is an immutable record of a user's asset value after one
// triggering event. Snapshots are never mutated or deleted once written;
// for a fixed user, the sequence ordered by CreatedAt is the canonical
// valuation history. SnapshotDate is a logical calendar label, multiple
// snapshots may share a date.
type AssetSnapshot struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	AssetValue   decimal.Decimal // absolute value after this snapshot
	Delta        decimal.Decimal // value-after minus value-before, may be zero
	Trigger      TriggerKind
	SnapshotDate time.Time // calendar date the snapshot is attributed to
	CreatedAt    time.Time // write timestamp, assigned by the store
}

// Validate ensures the snapshot adheres to domain rules.
// Returns an error if validation fails.
func (s *AssetSnapshot) Validate() error {
	if s.UserID == uuid.Nil {
		return errors.New("snapshot must belong to a user")
	}

	if !s.Trigger.Valid() {
		return errors.New("snapshot trigger kind must be one of the closed set")
	}

	if s.AssetValue.LessThanOrEqual(decimal.Zero) {
		return errors.New("snapshot asset value must be positive")
	}

	if s.SnapshotDate.IsZero() {
		return errors.New("snapshot date must be set")
	}

	return nil
}

// DateOf normalizes a timestamp to its calendar date in UTC.
// Snapshot dates and record dates are compared at day granularity.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
