package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
)

// activityRepository implements domain.ActivityOracle
type activityRepository struct {
	db *DB
}

// NewActivityRepository creates a new activity oracle backed by the
// weight and food record tables.
func NewActivityRepository(db *DB) domain.ActivityOracle {
	return &activityRepository{db: db}
}

// HasActivity reports whether the user logged any weight or food record
// on the given calendar date.
func (r *activityRepository) HasActivity(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM weight_records WHERE user_id = $1 AND recorded_date = $2
		) OR EXISTS (
			SELECT 1 FROM food_records WHERE user_id = $1 AND recorded_date = $2
		)
	`

	var active bool
	if err := r.db.q(ctx).QueryRowContext(ctx, query, userID, date).Scan(&active); err != nil {
		return false, fmt.Errorf("failed to check daily activity: %w", err)
	}

	return active, nil
}
