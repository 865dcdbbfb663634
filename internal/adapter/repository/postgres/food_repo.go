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

// foodRepository implements domain.FoodRepository
type foodRepository struct {
	db *DB
}

// NewFoodRepository creates a new food record repository
func NewFoodRepository(db *DB) domain.FoodRepository {
	return &foodRepository{db: db}
}

// Create persists a food record together with its items
func (r *foodRepository) Create(ctx context.Context, record *domain.FoodRecord) error {
	query := `
		INSERT INTO food_records (id, user_id, meal_type, recorded_date, total_calories, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.q(ctx).QueryRowContext(ctx, query,
		record.ID,
		record.UserID,
		string(record.MealType),
		record.RecordedDate,
		record.TotalCalories,
		record.Note,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert food record: %w", err)
	}

	for i := range record.Items {
		if err := r.insertItem(ctx, &record.Items[i]); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a food record owned by the user, items included
func (r *foodRepository) GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.FoodRecord, error) {
	query := selectFood + ` WHERE id = $1 AND user_id = $2`

	record, err := scanFood(r.db.q(ctx).QueryRowContext(ctx, query, recordID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFoodNotFound
		}
		return nil, fmt.Errorf("failed to get food record: %w", err)
	}

	if record.Items, err = r.listItems(ctx, record.ID); err != nil {
		return nil, err
	}

	return record, nil
}

// ListByDate retrieves the user's food records for one calendar date,
// items included, in logging order.
func (r *foodRepository) ListByDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.FoodRecord, error) {
	query := selectFood + `
		WHERE user_id = $1 AND recorded_date = $2
		ORDER BY created_at ASC
	`

	rows, err := r.db.q(ctx).QueryContext(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query food records: %w", err)
	}
	defer rows.Close()

	var records []*domain.FoodRecord
	for rows.Next() {
		record, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate food records: %w", err)
	}

	for _, record := range records {
		if record.Items, err = r.listItems(ctx, record.ID); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// DayTotalCalories sums the total calories the user logged on one date
func (r *foodRepository) DayTotalCalories(ctx context.Context, userID uuid.UUID, date time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(total_calories), 0)
		FROM food_records
		WHERE user_id = $1 AND recorded_date = $2
	`

	var total int
	if err := r.db.q(ctx).QueryRowContext(ctx, query, userID, date).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum day calories: %w", err)
	}

	return total, nil
}

// AddItem appends an item to an existing food record
func (r *foodRepository) AddItem(ctx context.Context, item *domain.FoodItem) error {
	return r.insertItem(ctx, item)
}

// GetItem retrieves a single food item
func (r *foodRepository) GetItem(ctx context.Context, itemID uuid.UUID) (*domain.FoodItem, error) {
	query := selectFoodItem + ` WHERE id = $1`

	item, err := scanFoodItem(r.db.q(ctx).QueryRowContext(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}

	return item, nil
}

// DeleteItem removes a single food item
func (r *foodRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	query := `DELETE FROM food_items WHERE id = $1`

	result, err := r.db.q(ctx).ExecContext(ctx, query, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete food item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrFoodItemNotFound
	}

	return nil
}

// SetTotalCalories rewrites the denormalized calorie total of a record
func (r *foodRepository) SetTotalCalories(ctx context.Context, recordID uuid.UUID, total int) error {
	query := `
		UPDATE food_records
		SET total_calories = $1, updated_at = now()
		WHERE id = $2
	`

	result, err := r.db.q(ctx).ExecContext(ctx, query, total, recordID)
	if err != nil {
		return fmt.Errorf("failed to update total calories: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrFoodNotFound
	}

	return nil
}

const selectFood = `
	SELECT id, user_id, meal_type, recorded_date, total_calories, note, created_at, updated_at
	FROM food_records
`

const selectFoodItem = `
	SELECT id, food_record_id, name, calories, amount_g, image_url, pixel_icon_type
	FROM food_items
`

func (r *foodRepository) insertItem(ctx context.Context, item *domain.FoodItem) error {
	query := `
		INSERT INTO food_items (id, food_record_id, name, calories, amount_g, image_url, pixel_icon_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var amount sql.NullString
	if item.AmountG != nil {
		amount = sql.NullString{String: item.AmountG.String(), Valid: true}
	}

	_, err := r.db.q(ctx).ExecContext(ctx, query,
		item.ID,
		item.FoodRecordID,
		item.Name,
		item.Calories,
		amount,
		item.ImageURL,
		item.PixelIconType,
	)
	if err != nil {
		return fmt.Errorf("failed to insert food item: %w", err)
	}

	return nil
}

func (r *foodRepository) listItems(ctx context.Context, recordID uuid.UUID) ([]domain.FoodItem, error) {
	query := selectFoodItem + ` WHERE food_record_id = $1 ORDER BY name ASC`

	rows, err := r.db.q(ctx).QueryContext(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query food items: %w", err)
	}
	defer rows.Close()

	var items []domain.FoodItem
	for rows.Next() {
		item, err := scanFoodItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate food items: %w", err)
	}

	return items, nil
}

func scanFood(row scannable) (*domain.FoodRecord, error) {
	var record domain.FoodRecord
	var mealType string

	err := row.Scan(
		&record.ID,
		&record.UserID,
		&mealType,
		&record.RecordedDate,
		&record.TotalCalories,
		&record.Note,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.MealType = domain.MealType(mealType)
	return &record, nil
}

func scanFoodItem(row scannable) (*domain.FoodItem, error) {
	var item domain.FoodItem
	var amount sql.NullString

	err := row.Scan(
		&item.ID,
		&item.FoodRecordID,
		&item.Name,
		&item.Calories,
		&amount,
		&item.ImageURL,
		&item.PixelIconType,
	)
	if err != nil {
		return nil, err
	}

	if amount.Valid {
		parsed, err := decimal.NewFromString(amount.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount_g: %w", err)
		}
		item.AmountG = &parsed
	}

	return &item, nil
}
