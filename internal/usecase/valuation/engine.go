package valuation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/rules"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/streak"
)

// Input validation errors. Invalid input is rejected before rule
// evaluation and never partially applied.
var (
	ErrInvalidWeight   = errors.New("weight must be positive")
	ErrInvalidCalories = errors.New("calorie values cannot be negative")
)

// Config carries the externally injected valuation parameters.
type Config struct {
	// InitialValue is the asset value a user starts with and the
	// fallback when no snapshot exists.
	InitialValue decimal.Decimal
	// Floor is the hard lower bound on the asset value. Every write
	// clamps to it, regardless of how negative the rule percentage is.
	Floor decimal.Decimal
}

// Engine sequences ledger reads, rule evaluation and snapshot writes.
// It assumes the caller wraps each trigger invocation together with the
// originating record write in a single unit of work, so the snapshot(s)
// and the record commit atomically.
//
// There is no lock across users or event types: two triggers for the
// same user racing on the current value is an accepted property of the
// ledger's tail. Callers wanting serializable schedules must serialize
// triggers per user themselves.
type Engine struct {
	Ledger  domain.SnapshotLedger
	Weights domain.WeightRepository
	Streaks streak.Counter
	Config  Config
}

// NewEngine creates a new Engine instance.
func NewEngine(ledger domain.SnapshotLedger, weights domain.WeightRepository, streaks streak.Counter, cfg Config) *Engine {
	return &Engine{
		Ledger:  ledger,
		Weights: weights,
		Streaks: streaks,
		Config:  cfg,
	}
}

// SeedInitial writes the one-time seed snapshot a user's history starts
// with: the configured initial value, delta zero, trigger `initial`.
// Every "most recent snapshot" query terminates on it in steady state.
func (e *Engine) SeedInitial(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.AssetSnapshot, error) {
	snapshot := &domain.AssetSnapshot{
		ID:           uuid.New(),
		UserID:       userID,
		AssetValue:   e.Config.InitialValue.Round(domain.ValuePrecision),
		Delta:        decimal.Zero,
		Trigger:      domain.TriggerInitial,
		SnapshotDate: domain.DateOf(date),
	}

	if err := e.Ledger.Append(ctx, snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// ApplyWeightTrigger adjusts the asset value after a weight record was
// saved. A first-ever measurement never fails: it is the weight_initial
// case with delta zero.
func (e *Engine) ApplyWeightTrigger(ctx context.Context, userID uuid.UUID, newWeight decimal.Decimal, recordedDate time.Time) (*domain.AssetSnapshot, error) {
	if newWeight.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidWeight
	}

	date := domain.DateOf(recordedDate)

	current, err := e.currentValue(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Latest weight strictly before the recorded date
	previous, found, err := e.Weights.LatestBefore(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	var previousPtr *decimal.Decimal
	if found {
		previousPtr = &previous
	}

	result := rules.EvaluateWeight(previousPtr, newWeight)

	return e.appendAdjusted(ctx, userID, current, result.Pct, result.Trigger, date)
}

// ApplyFoodTrigger adjusts the asset value after a food record was saved.
// The caller supplies dayTotalCalories as the sum across all of the
// user's food records for that date, including the one just written.
//
// The streak bonus is evaluated first, at most once per user per date,
// and written as its own snapshot against the value at that moment. The
// food-log snapshot is then computed from the streak-adjusted value using
// only the base and in-range percentages. The returned snapshot is the
// food-log one; a streak snapshot is visible only through the ledger.
func (e *Engine) ApplyFoodTrigger(ctx context.Context, userID uuid.UUID, recordedDate time.Time, dayTotalCalories, dailyCalorieTarget int) (*domain.AssetSnapshot, error) {
	if dayTotalCalories < 0 || dailyCalorieTarget < 0 {
		return nil, ErrInvalidCalories
	}

	date := domain.DateOf(recordedDate)

	current, err := e.currentValue(ctx, userID)
	if err != nil {
		return nil, err
	}

	bonusWritten, err := e.Ledger.HasSnapshot(ctx, userID, date, domain.TriggerStreakBonus)
	if err != nil {
		return nil, err
	}

	if !bonusWritten {
		days, err := e.Streaks.Count(ctx, userID, date)
		if err != nil {
			return nil, err
		}

		if pct, awarded := rules.StreakBonusPct(days); awarded {
			// Separate snapshot so every percentage source stays
			// independently visible in the ledger.
			bonus, err := e.appendAdjusted(ctx, userID, current, pct, domain.TriggerStreakBonus, date)
			if err != nil {
				return nil, err
			}
			current = bonus.AssetValue
		}
	}

	pct := rules.EvaluateFood(dayTotalCalories, dailyCalorieTarget)

	return e.appendAdjusted(ctx, userID, current, pct, domain.TriggerFoodLogged, date)
}

// currentValue reads the most recent asset value, falling back to the
// configured initial value when the user has no snapshots. The seed
// snapshot makes the fallback unreachable in steady state; it is kept
// for robustness against partial writes.
func (e *Engine) currentValue(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	value, ok, err := e.Ledger.MostRecentValue(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	if !ok {
		return e.Config.InitialValue, nil
	}

	return value, nil
}

// appendAdjusted applies a percentage to the current value, clamps to the
// floor, rounds value and delta to 4 decimal places and appends the
// resulting snapshot. Delta is the actual post-clamp change, so summing
// deltas always equals the recorded value differences.
func (e *Engine) appendAdjusted(ctx context.Context, userID uuid.UUID, current, pct decimal.Decimal, trigger domain.TriggerKind, date time.Time) (*domain.AssetSnapshot, error) {
	adjusted := current.Mul(decimal.NewFromInt(1).Add(pct))

	newValue := e.applyFloor(adjusted).Round(domain.ValuePrecision)
	delta := newValue.Sub(current).Round(domain.ValuePrecision)

	snapshot := &domain.AssetSnapshot{
		ID:           uuid.New(),
		UserID:       userID,
		AssetValue:   newValue,
		Delta:        delta,
		Trigger:      trigger,
		SnapshotDate: date,
	}

	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	if err := e.Ledger.Append(ctx, snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// applyFloor clamps a computed value to the configured floor.
func (e *Engine) applyFloor(value decimal.Decimal) decimal.Decimal {
	if value.LessThan(e.Config.Floor) {
		return e.Config.Floor
	}
	return value
}
