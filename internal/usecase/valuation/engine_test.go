package valuation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
)

// MockSnapshotLedger is a mock implementation of SnapshotLedger for testing
type MockSnapshotLedger struct {
	mock.Mock
}

func (m *MockSnapshotLedger) MostRecentValue(ctx context.Context, userID uuid.UUID) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockSnapshotLedger) MostRecentTwo(ctx context.Context, userID uuid.UUID) ([]*domain.AssetSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AssetSnapshot), args.Error(1)
}

func (m *MockSnapshotLedger) HasSnapshot(ctx context.Context, userID uuid.UUID, date time.Time, kind domain.TriggerKind) (bool, error) {
	args := m.Called(ctx, userID, date, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockSnapshotLedger) Append(ctx context.Context, snapshot *domain.AssetSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotLedger) MinMax(ctx context.Context, userID uuid.UUID) (decimal.Decimal, decimal.Decimal, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Bool(2), args.Error(3)
}

func (m *MockSnapshotLedger) ListSince(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]*domain.AssetSnapshot, error) {
	args := m.Called(ctx, userID, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AssetSnapshot), args.Error(1)
}

// MockWeightRepository is a mock implementation of WeightRepository for testing
type MockWeightRepository struct {
	mock.Mock
}

func (m *MockWeightRepository) Create(ctx context.Context, record *domain.WeightRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockWeightRepository) GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.WeightRecord, error) {
	args := m.Called(ctx, userID, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeightRecord), args.Error(1)
}

func (m *MockWeightRepository) LatestBefore(ctx context.Context, userID uuid.UUID, date time.Time) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, userID, date)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockWeightRepository) ListSince(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]*domain.WeightRecord, error) {
	args := m.Called(ctx, userID, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WeightRecord), args.Error(1)
}

func (m *MockWeightRepository) Update(ctx context.Context, record *domain.WeightRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockWeightRepository) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	args := m.Called(ctx, userID, recordID)
	return args.Error(0)
}

// MockStreakCounter is a mock implementation of streak.Counter for testing
type MockStreakCounter struct {
	mock.Mock
}

func (m *MockStreakCounter) Count(ctx context.Context, userID uuid.UUID, reference time.Time) (int, error) {
	args := m.Called(ctx, userID, reference)
	return args.Int(0), args.Error(1)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testConfig() Config {
	return Config{
		InitialValue: dec("1000"),
		Floor:        dec("100"),
	}
}

var testDate = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

func TestApplyWeightTrigger_FirstMeasurement(t *testing.T) {
	ctx := context.Background()
	ledger := new(MockSnapshotLedger)
	weights := new(MockWeightRepository)
	engine := NewEngine(ledger, weights, new(MockStreakCounter), testConfig())

	userID := uuid.New()
	ledger.On("MostRecentValue", ctx, userID).Return(dec("1000"), true, nil)
	weights.On("LatestBefore", ctx, userID, testDate).Return(decimal.Zero, false, nil)
	ledger.On("Append", ctx, mock.AnythingOfType("*domain.AssetSnapshot")).Return(nil)

	snapshot, err := engine.ApplyWeightTrigger(ctx, userID, dec("80.0"), testDate)

	require.NoError(t, err)
	assert.Equal(t, domain.TriggerWeightInitial, snapshot.Trigger)
	assert.True(t, snapshot.Delta.IsZero())
	assert.True(t, snapshot.AssetValue.Equal(dec("1000")), "got %s", snapshot.AssetValue)

	ledger.AssertExpectations(t)
	weights.AssertExpectations(t)
}

func TestApplyWeightTrigger_WeightLoss(t *testing.T) {
	ctx := context.Background()
	ledger := new(MockSnapshotLedger)
	weights := new(MockWeightRepository)
	engine := NewEngine(ledger, weights, new(MockStreakCounter), testConfig())

	// Setup: 0.5 kg lost from 80.0 at current value 1000 => +2.5%
	userID := uuid.New()
	ledger.On("MostRecentValue", ctx, userID).Return(dec("1000"), true, nil)
	weights.On("LatestBefore", ctx, userID, testDate).Return(dec("80.0"), true, nil)
	ledger.On("Append", ctx, mock.AnythingOfType("*domain.AssetSnapshot")).Return(nil)

	snapshot, err := engine.ApplyWeightTrigger(ctx, userID, dec("79.5"), testDate)

	require.NoError(t, err)
	assert.Equal(t, domain.TriggerWeightDown, snapshot.Trigger)
	assert.True(t, snapshot.AssetValue.Equal(dec("1025")), "got %s", snapshot.AssetValue)
	assert.True(t, snapshot.Delta.Equal(dec("25")), "got %s", snapshot.Delta)
	assert.Equal(t, testDate, snapshot.SnapshotDate)

	ledger.AssertExpectations(t)
}

func TestApplyWeightTrigger_WeightGainClampedAtFloor(t *testing.T) {
	ctx := context.Background()
	ledger := new(MockSnapshotLedger)
	weights := new(MockWeightRepository)
	engine := NewEngine(ledger, weights, new(MockStreakCounter), testConfig())

	// Setup: 10 kg gained at current value 100.2 => -30%, clamped to 100
	userID := uuid.New()
	ledger.On("MostRecentValue", ctx, userID).Return(dec("100.2"), true, nil)
	weights.On("LatestBefore", ctx, userID, testDate).Return(dec("70.0"), true, nil)
	ledger.On("Append", ctx, mock.AnythingOfType("*domain.AssetSnapshot")).Return(nil)

	snapshot, err := engine.ApplyWeightTrigger(ctx, userID, dec("80.0"), testDate)

	require.NoError(t, err)
	assert.Equal(t, domain.TriggerWeightUp, snapshot.Trigger)
	assert.True(t, snapshot.AssetValue.Equal(dec("100")), "got %s", snapshot.AssetValue)
	// Delta records the actual post-clamp change
	assert.True(t, snapshot.Delta.Equal(dec("-0.2")), "got %s", snapshot.Delta)
}

func TestApplyWeightTrigger_NoSnapshotsFallsBackToInitialValue(t *testing.T) {
	ctx := context.Background()
	ledger := new(MockSnapshotLedger)
	weights := new(MockWeightRepository)
	engine := NewEngine(ledger, weights, new(MockStreakCounter), testConfig())

	userID := uuid.New()
	ledger.On("MostRecentValue", ctx, userID).Return(decimal.Zero, false, nil)
	weights.On("LatestBefore", ctx, userID, testDate).Return(decimal.Zero, false, nil)
	ledger.On("Append", ctx, mock.AnythingOfType("*domain.AssetSnapshot")).Return(nil)

	snapshot, err := engine.ApplyWeightTrigger(ctx, userID, dec("80.0"), testDate)

	require.NoError(t, err)
	assert.True(t, snapshot.AssetValue.Equal(dec("1000")), "got %s", snapshot.AssetValue)
}

func TestApplyWeightTrigger_RejectsNonPositiveWeight(t *testing.T) {
	ctx := context.Background()
	ledger := new(MockSnapshotLedger)
	engine := NewEngine(ledger, new(MockWeightRepository), new(MockStreakCounter), testConfig())

	_, err := engine.ApplyWeightTrigger(ctx, uuid.New(), dec("-80.0"), testDate)

	assert.ErrorIs(t, err, ErrInvalidWeight)
	ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestApplyWeightTrigger_StoreFailurePropagates(t *testing.T) {
	ctx := context.Background()
	ledger := new(MockSnapshotLedger)
	weights := new(MockWeightRepository)
	engine := NewEngine(ledger, weights, new(MockStreakCounter), testConfig())

	userID := uuid.New()
	storeErr := errors.New("connection refused")
	ledger.On("MostRecentValue", ctx, userID).Return(decimal.Zero, false, storeErr)

	_, err := engine.ApplyWeightTrigger(ctx, userID, dec("80.0"), testDate)

	assert.ErrorIs(t, err, storeErr)
}

func TestApplyFoodTrigger_BaseAndRangeBonus(t *testing.T) {
	ctx := context.Background()
	ledger := new(MockSnapshotLedger)
	streaks := new(MockStreakCounter)
	engine := NewEngine(ledger, new(MockWeightRepository), streaks, testConfig())

	// Setup: day total exactly at target from value 1025 => +0.3% = 1028.075
	userID := uuid.New()
	ledger.On("MostRecentValue", ctx, userID).Return(dec("1025"), true, nil)
	ledger.On("HasSnapshot", ctx, userID, testDate, domain.TriggerStreakBonus).Return(false, nil)
	streaks.On("Count", ctx, userID, testDate).Return(0, nil)
	ledger.On("Append", ctx, mock.AnythingOfType("*domain.AssetSnapshot")).Return(nil)

	snapshot, err := engine.ApplyFoodTrigger(ctx, userID, testDate, 2000, 2000)

	require.NoError(t, err)
	assert.Equal(t, domain.TriggerFoodLogged, snapshot.Trigger)
	assert.True(t, snapshot.AssetValue.Equal(dec("1028.075")), "got %s", snapshot.AssetValue)
	assert.True(t, snapshot.Delta.Equal(dec("3.075")), "got %s", snapshot.Delta)

	ledger.AssertNumberOfCalls(t, "Append", 1)
}

func TestApplyFoodTrigger_StreakBonusPrecedesFoodSnapshot(t *testing.T) {
	ctx := context.Background()
	ledger := new(MockSnapshotLedger)
	streaks := new(MockStreakCounter)
	engine := NewEngine(ledger, new(MockWeightRepository), streaks, testConfig())

	userID := uuid.New()
	var appended []*domain.AssetSnapshot

	ledger.On("MostRecentValue", ctx, userID).Return(dec("1000"), true, nil)
	ledger.On("HasSnapshot", ctx, userID, testDate, domain.TriggerStreakBonus).Return(false, nil)
	streaks.On("Count", ctx, userID, testDate).Return(3, nil)
	ledger.On("Append", ctx, mock.AnythingOfType("*domain.AssetSnapshot")).Run(func(args mock.Arguments) {
		appended = append(appended, args.Get(1).(*domain.AssetSnapshot))
	}).Return(nil)

	snapshot, err := engine.ApplyFoodTrigger(ctx, userID, testDate, 500, 2000)

	require.NoError(t, err)
	require.Len(t, appended, 2)

	// Streak snapshot first: 1000 * 1.01 = 1010
	bonus := appended[0]
	assert.Equal(t, domain.TriggerStreakBonus, bonus.Trigger)
	assert.True(t, bonus.AssetValue.Equal(dec("1010")), "got %s", bonus.AssetValue)
	assert.True(t, bonus.Delta.Equal(dec("10")), "got %s", bonus.Delta)

	// Food snapshot computed from the streak-adjusted value: 1010 * 1.001
	assert.Equal(t, domain.TriggerFoodLogged, snapshot.Trigger)
	assert.True(t, snapshot.AssetValue.Equal(dec("1011.01")), "got %s", snapshot.AssetValue)
	assert.True(t, snapshot.Delta.Equal(dec("1.01")), "got %s", snapshot.Delta)
}

func TestApplyFoodTrigger_SevenDayStreakBonusNotStacked(t *testing.T) {
	ctx := context.Background()
	ledger := new(MockSnapshotLedger)
	streaks := new(MockStreakCounter)
	engine := NewEngine(ledger, new(MockWeightRepository), streaks, testConfig())

	userID := uuid.New()
	var appended []*domain.AssetSnapshot

	ledger.On("MostRecentValue", ctx, userID).Return(dec("1000"), true, nil)
	ledger.On("HasSnapshot", ctx, userID, testDate, domain.TriggerStreakBonus).Return(false, nil)
	streaks.On("Count", ctx, userID, testDate).Return(7, nil)
	ledger.On("Append", ctx, mock.AnythingOfType("*domain.AssetSnapshot")).Run(func(args mock.Arguments) {
		appended = append(appended, args.Get(1).(*domain.AssetSnapshot))
	}).Return(nil)

	_, err := engine.ApplyFoodTrigger(ctx, userID, testDate, 500, 2000)

	require.NoError(t, err)
	require.Len(t, appended, 2)

	// Exactly one bonus snapshot, at the 3% rate alone
	assert.True(t, appended[0].AssetValue.Equal(dec("1030")), "got %s", appended[0].AssetValue)
}

func TestApplyFoodTrigger_StreakBonusOncePerDay(t *testing.T) {
	ctx := context.Background()
	ledger := new(MockSnapshotLedger)
	streaks := new(MockStreakCounter)
	engine := NewEngine(ledger, new(MockWeightRepository), streaks, testConfig())

	// Setup: a streak bonus snapshot already exists for the date
	userID := uuid.New()
	ledger.On("MostRecentValue", ctx, userID).Return(dec("1010"), true, nil)
	ledger.On("HasSnapshot", ctx, userID, testDate, domain.TriggerStreakBonus).Return(true, nil)
	ledger.On("Append", ctx, mock.AnythingOfType("*domain.AssetSnapshot")).Return(nil)

	snapshot, err := engine.ApplyFoodTrigger(ctx, userID, testDate, 500, 2000)

	require.NoError(t, err)
	assert.Equal(t, domain.TriggerFoodLogged, snapshot.Trigger)

	// Streak was never recomputed and only the food snapshot was written
	streaks.AssertNotCalled(t, "Count", mock.Anything, mock.Anything, mock.Anything)
	ledger.AssertNumberOfCalls(t, "Append", 1)
}

func TestApplyFoodTrigger_RejectsNegativeCalories(t *testing.T) {
	ctx := context.Background()
	ledger := new(MockSnapshotLedger)
	engine := NewEngine(ledger, new(MockWeightRepository), new(MockStreakCounter), testConfig())

	_, err := engine.ApplyFoodTrigger(ctx, uuid.New(), testDate, -100, 2000)

	assert.ErrorIs(t, err, ErrInvalidCalories)
	ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestSeedInitial(t *testing.T) {
	ctx := context.Background()
	ledger := new(MockSnapshotLedger)
	engine := NewEngine(ledger, new(MockWeightRepository), new(MockStreakCounter), testConfig())

	userID := uuid.New()
	ledger.On("Append", ctx, mock.AnythingOfType("*domain.AssetSnapshot")).Return(nil)

	snapshot, err := engine.SeedInitial(ctx, userID, testDate)

	require.NoError(t, err)
	assert.Equal(t, domain.TriggerInitial, snapshot.Trigger)
	assert.True(t, snapshot.AssetValue.Equal(dec("1000")))
	assert.True(t, snapshot.Delta.IsZero())
}
