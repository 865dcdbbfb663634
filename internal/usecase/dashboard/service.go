package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/streak"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/valuation"
)

// historyWindowDays is the lookback window for dashboard charts.
const historyWindowDays = 30

// caloriePctCap keeps the calorie progress bar bounded when a user blows
// far past their target.
var caloriePctCap = decimal.NewFromInt(200)

// TodayResult aggregates everything the daily dashboard shows.
type TodayResult struct {
	AssetCurrent   decimal.Decimal
	AssetChangePct decimal.Decimal
	AssetHistory   []*domain.AssetSnapshot
	WeightCurrent  *decimal.Decimal
	WeightGoal     *decimal.Decimal
	WeightHistory  []*domain.WeightRecord
	TodayCalories  int
	CalorieTarget  int
	CaloriePct     decimal.Decimal
	StreakDays     int
}

// DashboardService composes read-only projections of the ledger and the
// activity records into the daily overview.
type DashboardService struct {
	Ledger  domain.SnapshotLedger
	Weights domain.WeightRepository
	Foods   domain.FoodRepository
	Users   domain.UserRepository
	Streaks streak.Counter
	Config  valuation.Config
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(
	ledger domain.SnapshotLedger,
	weights domain.WeightRepository,
	foods domain.FoodRepository,
	users domain.UserRepository,
	streaks streak.Counter,
	cfg valuation.Config,
) *DashboardService {
	return &DashboardService{
		Ledger:  ledger,
		Weights: weights,
		Foods:   foods,
		Users:   users,
		Streaks: streaks,
		Config:  cfg,
	}
}

// Today builds the dashboard for the current calendar date.
func (s *DashboardService) Today(ctx context.Context, userID uuid.UUID) (*TodayResult, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := domain.DateOf(time.Now())
	cutoff := today.AddDate(0, 0, -historyWindowDays)

	result := &TodayResult{
		WeightGoal:    user.GoalWeightKG,
		CalorieTarget: user.DailyCalorieTarget,
	}

	// Asset: current value, change against the previous snapshot, 30-day history
	recent, err := s.Ledger.MostRecentTwo(ctx, userID)
	if err != nil {
		return nil, err
	}

	result.AssetCurrent = s.Config.InitialValue
	if len(recent) > 0 {
		result.AssetCurrent = recent[0].AssetValue
	}
	if len(recent) > 1 && !recent[1].AssetValue.IsZero() {
		result.AssetChangePct = result.AssetCurrent.
			Sub(recent[1].AssetValue).
			Div(recent[1].AssetValue).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	result.AssetHistory, err = s.Ledger.ListSince(ctx, userID, cutoff)
	if err != nil {
		return nil, err
	}

	// Weight: 30-day history, latest measurement as current
	result.WeightHistory, err = s.Weights.ListSince(ctx, userID, cutoff)
	if err != nil {
		return nil, err
	}
	if n := len(result.WeightHistory); n > 0 {
		current := result.WeightHistory[n-1].WeightKG
		result.WeightCurrent = &current
	}

	// Calories consumed today against the target
	result.TodayCalories, err = s.Foods.DayTotalCalories(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	if user.DailyCalorieTarget > 0 {
		pct := decimal.NewFromInt(int64(result.TodayCalories)).
			Div(decimal.NewFromInt(int64(user.DailyCalorieTarget))).
			Mul(decimal.NewFromInt(100)).
			Round(1)
		if pct.GreaterThan(caloriePctCap) {
			pct = caloriePctCap
		}
		result.CaloriePct = pct
	}

	result.StreakDays, err = s.Streaks.Count(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	return result, nil
}
