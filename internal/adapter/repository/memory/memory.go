// Package memory provides in-memory repository implementations used by
// integration tests. Behavior mirrors the postgres adapter, including
// the idempotent streak-bonus append.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
)

// Store holds all in-memory state behind one mutex.
type Store struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*domain.User
	weights   map[uuid.UUID]*domain.WeightRecord
	foods     map[uuid.UUID]*domain.FoodRecord
	items     map[uuid.UUID]*domain.FoodItem
	snapshots []*domain.AssetSnapshot
	seq       int64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		users:   make(map[uuid.UUID]*domain.User),
		weights: make(map[uuid.UUID]*domain.WeightRecord),
		foods:   make(map[uuid.UUID]*domain.FoodRecord),
		items:   make(map[uuid.UUID]*domain.FoodItem),
	}
}

// now returns a strictly increasing timestamp so ordering by CreatedAt
// stays deterministic even within one wall-clock tick.
func (s *Store) now() time.Time {
	s.seq++
	return time.Now().Add(time.Duration(s.seq) * time.Microsecond)
}

// Users returns the user repository view.
func (s *Store) Users() domain.UserRepository { return &userRepo{s} }

// Weights returns the weight repository view.
func (s *Store) Weights() domain.WeightRepository { return &weightRepo{s} }

// Foods returns the food repository view.
func (s *Store) Foods() domain.FoodRepository { return &foodRepo{s} }

// Snapshots returns the snapshot ledger view.
func (s *Store) Snapshots() domain.SnapshotLedger { return &snapshotRepo{s} }

// Activity returns the activity oracle view.
func (s *Store) Activity() domain.ActivityOracle { return &activityRepo{s} }

// UnitOfWork returns a pass-through unit of work. The in-memory store is
// not transactional; fn runs directly.
func (s *Store) UnitOfWork() domain.UnitOfWork { return uow{} }

type uow struct{}

func (uow) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return domain.ErrEmailTaken
		}
	}

	user.CreatedAt = r.s.now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.s.users[user.ID] = &clone
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, user := range r.s.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepo) Update(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	user.UpdatedAt = r.s.now()
	clone := *user
	r.s.users[user.ID] = &clone
	return nil
}

type weightRepo struct{ s *Store }

func (r *weightRepo) Create(_ context.Context, record *domain.WeightRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	record.CreatedAt = r.s.now()
	record.UpdatedAt = record.CreatedAt
	clone := *record
	r.s.weights[record.ID] = &clone
	return nil
}

func (r *weightRepo) GetByID(_ context.Context, userID, recordID uuid.UUID) (*domain.WeightRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	record, ok := r.s.weights[recordID]
	if !ok || record.UserID != userID {
		return nil, domain.ErrWeightNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *weightRepo) LatestBefore(_ context.Context, userID uuid.UUID, date time.Time) (decimal.Decimal, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var best *domain.WeightRecord
	for _, record := range r.s.weights {
		if record.UserID != userID || !record.RecordedDate.Before(date) {
			continue
		}
		if best == nil ||
			record.RecordedDate.After(best.RecordedDate) ||
			(record.RecordedDate.Equal(best.RecordedDate) && record.CreatedAt.After(best.CreatedAt)) {
			best = record
		}
	}

	if best == nil {
		return decimal.Zero, false, nil
	}
	return best.WeightKG, true, nil
}

func (r *weightRepo) ListSince(_ context.Context, userID uuid.UUID, cutoff time.Time) ([]*domain.WeightRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var records []*domain.WeightRecord
	for _, record := range r.s.weights {
		if record.UserID == userID && !record.RecordedDate.Before(cutoff) {
			clone := *record
			records = append(records, &clone)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].RecordedDate.Equal(records[j].RecordedDate) {
			return records[i].RecordedDate.Before(records[j].RecordedDate)
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (r *weightRepo) Update(_ context.Context, record *domain.WeightRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.weights[record.ID]
	if !ok || existing.UserID != record.UserID {
		return domain.ErrWeightNotFound
	}
	record.UpdatedAt = r.s.now()
	clone := *record
	clone.CreatedAt = existing.CreatedAt
	r.s.weights[record.ID] = &clone
	return nil
}

func (r *weightRepo) Delete(_ context.Context, userID, recordID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	record, ok := r.s.weights[recordID]
	if !ok || record.UserID != userID {
		return domain.ErrWeightNotFound
	}
	delete(r.s.weights, recordID)
	return nil
}

type foodRepo struct{ s *Store }

func (r *foodRepo) Create(_ context.Context, record *domain.FoodRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	record.CreatedAt = r.s.now()
	record.UpdatedAt = record.CreatedAt
	clone := *record
	clone.Items = append([]domain.FoodItem(nil), record.Items...)
	r.s.foods[record.ID] = &clone

	for i := range clone.Items {
		item := clone.Items[i]
		r.s.items[item.ID] = &item
	}
	return nil
}

func (r *foodRepo) GetByID(_ context.Context, userID, recordID uuid.UUID) (*domain.FoodRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	record, ok := r.s.foods[recordID]
	if !ok || record.UserID != userID {
		return nil, domain.ErrFoodNotFound
	}
	return r.cloneWithItems(record), nil
}

func (r *foodRepo) ListByDate(_ context.Context, userID uuid.UUID, date time.Time) ([]*domain.FoodRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var records []*domain.FoodRecord
	for _, record := range r.s.foods {
		if record.UserID == userID && record.RecordedDate.Equal(date) {
			records = append(records, r.cloneWithItems(record))
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (r *foodRepo) DayTotalCalories(_ context.Context, userID uuid.UUID, date time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	total := 0
	for _, record := range r.s.foods {
		if record.UserID == userID && record.RecordedDate.Equal(date) {
			total += record.TotalCalories
		}
	}
	return total, nil
}

func (r *foodRepo) AddItem(_ context.Context, item *domain.FoodItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	clone := *item
	r.s.items[item.ID] = &clone
	return nil
}

func (r *foodRepo) GetItem(_ context.Context, itemID uuid.UUID) (*domain.FoodItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.items[itemID]
	if !ok {
		return nil, domain.ErrFoodItemNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *foodRepo) DeleteItem(_ context.Context, itemID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.items[itemID]; !ok {
		return domain.ErrFoodItemNotFound
	}
	delete(r.s.items, itemID)
	return nil
}

func (r *foodRepo) SetTotalCalories(_ context.Context, recordID uuid.UUID, total int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	record, ok := r.s.foods[recordID]
	if !ok {
		return domain.ErrFoodNotFound
	}
	record.TotalCalories = total
	record.UpdatedAt = r.s.now()
	return nil
}

func (r *foodRepo) cloneWithItems(record *domain.FoodRecord) *domain.FoodRecord {
	clone := *record
	clone.Items = nil
	for _, item := range r.s.items {
		if item.FoodRecordID == record.ID {
			clone.Items = append(clone.Items, *item)
		}
	}
	sort.Slice(clone.Items, func(i, j int) bool {
		return clone.Items[i].Name < clone.Items[j].Name
	})
	return &clone
}

type snapshotRepo struct{ s *Store }

func (r *snapshotRepo) Append(_ context.Context, snapshot *domain.AssetSnapshot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if snapshot.Trigger == domain.TriggerStreakBonus {
		for _, existing := range r.s.snapshots {
			if existing.UserID == snapshot.UserID &&
				existing.Trigger == domain.TriggerStreakBonus &&
				existing.SnapshotDate.Equal(snapshot.SnapshotDate) {
				return nil
			}
		}
	}

	snapshot.CreatedAt = r.s.now()
	clone := *snapshot
	r.s.snapshots = append(r.s.snapshots, &clone)
	return nil
}

func (r *snapshotRepo) MostRecentValue(_ context.Context, userID uuid.UUID) (decimal.Decimal, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := len(r.s.snapshots) - 1; i >= 0; i-- {
		if r.s.snapshots[i].UserID == userID {
			return r.s.snapshots[i].AssetValue, true, nil
		}
	}
	return decimal.Zero, false, nil
}

func (r *snapshotRepo) MostRecentTwo(_ context.Context, userID uuid.UUID) ([]*domain.AssetSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.AssetSnapshot
	for i := len(r.s.snapshots) - 1; i >= 0 && len(out) < 2; i-- {
		if r.s.snapshots[i].UserID == userID {
			clone := *r.s.snapshots[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *snapshotRepo) HasSnapshot(_ context.Context, userID uuid.UUID, date time.Time, kind domain.TriggerKind) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, snapshot := range r.s.snapshots {
		if snapshot.UserID == userID && snapshot.Trigger == kind && snapshot.SnapshotDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *snapshotRepo) MinMax(_ context.Context, userID uuid.UUID) (decimal.Decimal, decimal.Decimal, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var low, high decimal.Decimal
	found := false
	for _, snapshot := range r.s.snapshots {
		if snapshot.UserID != userID {
			continue
		}
		if !found {
			low, high = snapshot.AssetValue, snapshot.AssetValue
			found = true
			continue
		}
		if snapshot.AssetValue.LessThan(low) {
			low = snapshot.AssetValue
		}
		if snapshot.AssetValue.GreaterThan(high) {
			high = snapshot.AssetValue
		}
	}
	return low, high, found, nil
}

func (r *snapshotRepo) ListSince(_ context.Context, userID uuid.UUID, cutoff time.Time) ([]*domain.AssetSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.AssetSnapshot
	for _, snapshot := range r.s.snapshots {
		if snapshot.UserID == userID && !snapshot.SnapshotDate.Before(cutoff) {
			clone := *snapshot
			out = append(out, &clone)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].SnapshotDate.Equal(out[j].SnapshotDate) {
			return out[i].SnapshotDate.Before(out[j].SnapshotDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type activityRepo struct{ s *Store }

func (r *activityRepo) HasActivity(_ context.Context, userID uuid.UUID, date time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, record := range r.s.weights {
		if record.UserID == userID && record.RecordedDate.Equal(date) {
			return true, nil
		}
	}
	for _, record := range r.s.foods {
		if record.UserID == userID && record.RecordedDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}
