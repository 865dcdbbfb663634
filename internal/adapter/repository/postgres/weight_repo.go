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
)

// weightRepository implements domain.WeightRepository
type weightRepository struct {
	db *DB
}

// NewWeightRepository creates a new weight record repository
func NewWeightRepository(db *DB) domain.WeightRepository {
	return &weightRepository{db: db}
}

// Create persists a new weight record
func (r *weightRepository) Create(ctx context.Context, record *domain.WeightRecord) error {
	query := `
		INSERT INTO weight_records (id, user_id, weight_kg, recorded_date, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.q(ctx).QueryRowContext(ctx, query,
		record.ID,
		record.UserID,
		record.WeightKG.String(),
		record.RecordedDate,
		record.Note,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert weight record: %w", err)
	}

	return nil
}

// GetByID retrieves a weight record owned by the user
func (r *weightRepository) GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.WeightRecord, error) {
	query := selectWeight + ` WHERE id = $1 AND user_id = $2`

	record, err := scanWeight(r.db.q(ctx).QueryRowContext(ctx, query, recordID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWeightNotFound
		}
		return nil, fmt.Errorf("failed to get weight record: %w", err)
	}

	return record, nil
}

// LatestBefore retrieves the most recent weight strictly before the date
func (r *weightRepository) LatestBefore(ctx context.Context, userID uuid.UUID, date time.Time) (decimal.Decimal, bool, error) {
	query := `
		SELECT weight_kg
		FROM weight_records
		WHERE user_id = $1 AND recorded_date < $2
		ORDER BY recorded_date DESC, created_at DESC
		LIMIT 1
	`

	var weightStr string
	err := r.db.q(ctx).QueryRowContext(ctx, query, userID, date).Scan(&weightStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to get previous weight: %w", err)
	}

	weight, err := decimal.NewFromString(weightStr)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to parse weight_kg: %w", err)
	}

	return weight, true, nil
}

// ListSince retrieves weight records dated on or after cutoff, oldest first
func (r *weightRepository) ListSince(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]*domain.WeightRecord, error) {
	query := selectWeight + `
		WHERE user_id = $1 AND recorded_date >= $2
		ORDER BY recorded_date ASC, created_at ASC
	`

	rows, err := r.db.q(ctx).QueryContext(ctx, query, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query weight records: %w", err)
	}
	defer rows.Close()

	var records []*domain.WeightRecord
	for rows.Next() {
		record, err := scanWeight(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weight record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weight records: %w", err)
	}

	return records, nil
}

// Update persists changes to an existing record
func (r *weightRepository) Update(ctx context.Context, record *domain.WeightRecord) error {
	query := `
		UPDATE weight_records
		SET weight_kg = $1, note = $2, updated_at = now()
		WHERE id = $3 AND user_id = $4
	`

	result, err := r.db.q(ctx).ExecContext(ctx, query,
		record.WeightKG.String(),
		record.Note,
		record.ID,
		record.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update weight record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrWeightNotFound
	}

	return nil
}

// Delete removes a weight record owned by the user
func (r *weightRepository) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	query := `DELETE FROM weight_records WHERE id = $1 AND user_id = $2`

	result, err := r.db.q(ctx).ExecContext(ctx, query, recordID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete weight record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrWeightNotFound
	}

	return nil
}

const selectWeight = `
	SELECT id, user_id, weight_kg, recorded_date, note, created_at, updated_at
	FROM weight_records
`

// scannable lets scanWeight work with both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanWeight(row scannable) (*domain.WeightRecord, error) {
	var record domain.WeightRecord
	var weightStr string

	err := row.Scan(
		&record.ID,
		&record.UserID,
		&weightStr,
		&record.RecordedDate,
		&record.Note,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if record.WeightKG, err = decimal.NewFromString(weightStr); err != nil {
		return nil, fmt.Errorf("failed to parse weight_kg: %w", err)
	}

	return &record, nil
}
