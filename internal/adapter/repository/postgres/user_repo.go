package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
)

const uniqueViolation = "23505"

// userRepository implements domain.UserRepository
type userRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) domain.UserRepository {
	return &userRepository{db: db}
}

// Create persists a new user account
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, hashed_password, username, region, goal_weight_kg, daily_calorie_target)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.q(ctx).QueryRowContext(ctx, query,
		user.ID,
		user.Email,
		user.HashedPassword,
		user.Username,
		user.Region,
		goalWeightString(user.GoalWeightKG),
		user.DailyCalorieTarget,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := selectUser + ` WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := selectUser + ` WHERE email = $1`
	return r.getOne(ctx, query, email)
}

// Update persists changes to an existing user
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET username = $1, region = $2, goal_weight_kg = $3, daily_calorie_target = $4, updated_at = now()
		WHERE id = $5
	`

	result, err := r.db.q(ctx).ExecContext(ctx, query,
		user.Username,
		user.Region,
		goalWeightString(user.GoalWeightKG),
		user.DailyCalorieTarget,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

const selectUser = `
	SELECT id, email, hashed_password, username, region, goal_weight_kg, daily_calorie_target, created_at, updated_at
	FROM users
`

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	var goalWeight sql.NullString

	err := r.db.q(ctx).QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.Username,
		&user.Region,
		&goalWeight,
		&user.DailyCalorieTarget,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if goalWeight.Valid {
		goal, err := decimal.NewFromString(goalWeight.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse goal_weight_kg: %w", err)
		}
		user.GoalWeightKG = &goal
	}

	return &user, nil
}

func goalWeightString(goal *decimal.Decimal) sql.NullString {
	if goal == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: goal.String(), Valid: true}
}
