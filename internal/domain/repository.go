package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sentinel errors shared across repository implementations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeightNotFound     = errors.New("weight record not found")
	ErrFoodNotFound       = errors.New("food record not found")
	ErrFoodItemNotFound   = errors.New("food item not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// SnapshotLedger defines the interface for the append-only valuation ledger.
// Snapshots are queryable by time and by most-recent value; they are never
// updated or deleted.
type SnapshotLedger interface {
	// MostRecentValue returns the asset value of the latest snapshot for
	// the user, ordered by write time. ok is false when the user has no
	// snapshots at all.
	MostRecentValue(ctx context.Context, userID uuid.UUID) (value decimal.Decimal, ok bool, err error)

	// MostRecentTwo returns up to the two latest snapshots for the user,
	// newest first.
	MostRecentTwo(ctx context.Context, userID uuid.UUID) ([]*AssetSnapshot, error)

	// HasSnapshot reports whether a snapshot with the given trigger kind
	// exists for the user on the given calendar date.
	HasSnapshot(ctx context.Context, userID uuid.UUID, date time.Time, kind TriggerKind) (bool, error)

	// Append durably writes one snapshot. The write composes into any
	// surrounding unit of work. For the streak_bonus kind the append is an
	// idempotent upsert: a conflicting (user, date, kind) row makes the
	// write a no-op.
	Append(ctx context.Context, snapshot *AssetSnapshot) error

	// MinMax returns the all-time low and high asset values for the user.
	// ok is false when the user has no snapshots.
	MinMax(ctx context.Context, userID uuid.UUID) (min, max decimal.Decimal, ok bool, err error)

	// ListSince returns snapshots attributed to dates on or after cutoff,
	// ordered by snapshot date then write time ascending.
	ListSince(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]*AssetSnapshot, error)
}

// WeightRepository defines the interface for weight record persistence.
type WeightRepository interface {
	// Create persists a new weight record.
	Create(ctx context.Context, record *WeightRecord) error

	// GetByID retrieves a weight record owned by the user.
	GetByID(ctx context.Context, userID, recordID uuid.UUID) (*WeightRecord, error)

	// LatestBefore returns the most recent weight strictly before the
	// given date. ok is false when no earlier measurement exists.
	LatestBefore(ctx context.Context, userID uuid.UUID, date time.Time) (weight decimal.Decimal, ok bool, err error)

	// ListSince returns weight records dated on or after cutoff, oldest first.
	ListSince(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]*WeightRecord, error)

	// Update persists changes to an existing record.
	Update(ctx context.Context, record *WeightRecord) error

	// Delete removes a weight record owned by the user.
	Delete(ctx context.Context, userID, recordID uuid.UUID) error
}

// FoodRepository defines the interface for food record persistence.
type FoodRepository interface {
	// Create persists a new food record together with its items.
	Create(ctx context.Context, record *FoodRecord) error

	// GetByID retrieves a food record owned by the user, items included.
	GetByID(ctx context.Context, userID, recordID uuid.UUID) (*FoodRecord, error)

	// ListByDate returns the user's food records for one calendar date,
	// oldest first, items included.
	ListByDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*FoodRecord, error)

	// DayTotalCalories sums total calories across the user's food records
	// for one calendar date.
	DayTotalCalories(ctx context.Context, userID uuid.UUID, date time.Time) (int, error)

	// AddItem appends an item to an existing record.
	AddItem(ctx context.Context, item *FoodItem) error

	// GetItem retrieves a single food item.
	GetItem(ctx context.Context, itemID uuid.UUID) (*FoodItem, error)

	// DeleteItem removes a single food item.
	DeleteItem(ctx context.Context, itemID uuid.UUID) error

	// SetTotalCalories overwrites the running total of a record.
	SetTotalCalories(ctx context.Context, recordID uuid.UUID, total int) error
}

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create persists a new user. Returns ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update persists profile changes.
	Update(ctx context.Context, user *User) error
}

// ActivityOracle answers whether a user had any qualifying activity
// (a weight record or a food record) on a calendar date. The streak
// calculator treats this as a read-only oracle.
type ActivityOracle interface {
	HasActivity(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error)
}

// UnitOfWork runs a function within a single atomic unit of work. All
// repository calls made through the supplied context commit together or
// not at all; a returned error rolls everything back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
