package streak

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
)

// MaxLookbackDays caps how far back the calculator scans. A streak is
// reported as exactly this count even if activity extends further back.
const MaxLookbackDays = 365

// Counter derives streak lengths for the valuation engine.
type Counter interface {
	Count(ctx context.Context, userID uuid.UUID, reference time.Time) (int, error)
}

// Calculator counts consecutive prior days with qualifying activity.
// Pure query composition over the activity oracle; no mutation.
type Calculator struct {
	Activity domain.ActivityOracle
}

// NewCalculator creates a new Calculator instance.
func NewCalculator(activity domain.ActivityOracle) *Calculator {
	return &Calculator{Activity: activity}
}

// Count walks backward one day at a time from the day before reference,
// counting days on which the user has at least one weight or food record.
// It stops at the first gap day or at the lookback cap.
func (c *Calculator) Count(ctx context.Context, userID uuid.UUID, reference time.Time) (int, error) {
	day := domain.DateOf(reference).AddDate(0, 0, -1)

	count := 0
	for i := 0; i < MaxLookbackDays; i++ {
		active, err := c.Activity.HasActivity(ctx, userID, day)
		if err != nil {
			return 0, err
		}
		if !active {
			break
		}

		count++
		day = day.AddDate(0, 0, -1)
	}

	return count, nil
}
