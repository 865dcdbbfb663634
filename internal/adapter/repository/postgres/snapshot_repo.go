package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
	"github.com/Ed1sonDont/fitconomy/internal/observability"
)

// snapshotRepository implements domain.SnapshotLedger
type snapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot ledger repository
func NewSnapshotRepository(db *DB) domain.SnapshotLedger {
	return &snapshotRepository{db: db}
}

// Append durably writes one snapshot. created_at is assigned by the
// database so the chronological tiebreaker has a single source of
// truth. For the streak_bonus kind, a partial unique index on
// (user_id, snapshot_date, trigger_kind) makes the insert an idempotent
// upsert: a same-day duplicate becomes a no-op.
func (r *snapshotRepository) Append(ctx context.Context, snapshot *domain.AssetSnapshot) error {
	query := `
		INSERT INTO asset_snapshots (id, user_id, asset_value, delta, trigger_kind, snapshot_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, snapshot_date, trigger_kind) WHERE trigger_kind = 'streak_bonus' DO NOTHING
		RETURNING created_at
	`

	err := r.db.q(ctx).QueryRowContext(ctx, query,
		snapshot.ID,
		snapshot.UserID,
		snapshot.AssetValue.String(),
		snapshot.Delta.String(),
		string(snapshot.Trigger),
		snapshot.SnapshotDate,
	).Scan(&snapshot.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Streak bonus already written for that user and date
			return nil
		}
		return fmt.Errorf("failed to append asset snapshot: %w", err)
	}

	observability.RecordSnapshotAppended(string(snapshot.Trigger))
	return nil
}

// MostRecentValue retrieves the asset value of the latest snapshot.
func (r *snapshotRepository) MostRecentValue(ctx context.Context, userID uuid.UUID) (decimal.Decimal, bool, error) {
	query := `
		SELECT asset_value
		FROM asset_snapshots
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var valueStr string
	err := r.db.q(ctx).QueryRowContext(ctx, query, userID).Scan(&valueStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to get most recent asset value: %w", err)
	}

	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to parse asset_value: %w", err)
	}

	return value, true, nil
}

// MostRecentTwo retrieves up to the two latest snapshots, newest first.
func (r *snapshotRepository) MostRecentTwo(ctx context.Context, userID uuid.UUID) ([]*domain.AssetSnapshot, error) {
	query := selectSnapshot + `
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 2
	`

	return r.querySnapshots(ctx, query, userID)
}

// HasSnapshot reports whether a snapshot with the given trigger kind
// exists for the user on the given calendar date.
func (r *snapshotRepository) HasSnapshot(ctx context.Context, userID uuid.UUID, date time.Time, kind domain.TriggerKind) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM asset_snapshots
			WHERE user_id = $1 AND snapshot_date = $2 AND trigger_kind = $3
		)
	`

	var exists bool
	if err := r.db.q(ctx).QueryRowContext(ctx, query, userID, date, string(kind)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check snapshot existence: %w", err)
	}

	return exists, nil
}

// MinMax retrieves the all-time low and high asset values.
func (r *snapshotRepository) MinMax(ctx context.Context, userID uuid.UUID) (decimal.Decimal, decimal.Decimal, bool, error) {
	query := `
		SELECT MIN(asset_value), MAX(asset_value)
		FROM asset_snapshots
		WHERE user_id = $1
	`

	var minStr, maxStr sql.NullString
	if err := r.db.q(ctx).QueryRowContext(ctx, query, userID).Scan(&minStr, &maxStr); err != nil {
		return decimal.Zero, decimal.Zero, false, fmt.Errorf("failed to get min/max asset value: %w", err)
	}

	if !minStr.Valid || !maxStr.Valid {
		return decimal.Zero, decimal.Zero, false, nil
	}

	low, err := decimal.NewFromString(minStr.String)
	if err != nil {
		return decimal.Zero, decimal.Zero, false, fmt.Errorf("failed to parse min asset_value: %w", err)
	}
	high, err := decimal.NewFromString(maxStr.String)
	if err != nil {
		return decimal.Zero, decimal.Zero, false, fmt.Errorf("failed to parse max asset_value: %w", err)
	}

	return low, high, true, nil
}

// ListSince retrieves snapshots dated on or after cutoff in canonical
// history order.
func (r *snapshotRepository) ListSince(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]*domain.AssetSnapshot, error) {
	query := selectSnapshot + `
		WHERE user_id = $1 AND snapshot_date >= $2
		ORDER BY snapshot_date ASC, created_at ASC
	`

	return r.querySnapshots(ctx, query, userID, cutoff)
}

const selectSnapshot = `
	SELECT id, user_id, asset_value, delta, trigger_kind, snapshot_date, created_at
	FROM asset_snapshots
`

func (r *snapshotRepository) querySnapshots(ctx context.Context, query string, args ...any) ([]*domain.AssetSnapshot, error) {
	rows, err := r.db.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.AssetSnapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate asset snapshots: %w", err)
	}

	return snapshots, nil
}

func scanSnapshot(rows *sql.Rows) (*domain.AssetSnapshot, error) {
	var snapshot domain.AssetSnapshot
	var valueStr, deltaStr, trigger string

	err := rows.Scan(
		&snapshot.ID,
		&snapshot.UserID,
		&valueStr,
		&deltaStr,
		&trigger,
		&snapshot.SnapshotDate,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan asset snapshot: %w", err)
	}

	if snapshot.AssetValue, err = decimal.NewFromString(valueStr); err != nil {
		return nil, fmt.Errorf("failed to parse asset_value: %w", err)
	}
	if snapshot.Delta, err = decimal.NewFromString(deltaStr); err != nil {
		return nil, fmt.Errorf("failed to parse delta: %w", err)
	}
	snapshot.Trigger = domain.TriggerKind(trigger)

	return &snapshot, nil
}
