package asset

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ed1sonDont/fitconomy/internal/adapter/repository/memory"
	"github.com/Ed1sonDont/fitconomy/internal/domain"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/valuation"
)

func newTestService(t *testing.T) (*AssetService, domain.SnapshotLedger, uuid.UUID) {
	t.Helper()

	store := memory.NewStore()
	cfg := valuation.Config{
		InitialValue: decimal.NewFromInt(1000),
		Floor:        decimal.NewFromInt(100),
	}
	ledger := store.Snapshots()
	return NewAssetService(ledger, cfg), ledger, uuid.New()
}

func appendSnapshot(t *testing.T, ledger domain.SnapshotLedger, userID uuid.UUID, value float64, trigger domain.TriggerKind, date time.Time) {
	t.Helper()
	err := ledger.Append(context.Background(), &domain.AssetSnapshot{
		ID:           uuid.New(),
		UserID:       userID,
		AssetValue:   decimal.NewFromFloat(value),
		Delta:        decimal.Zero,
		Trigger:      trigger,
		SnapshotDate: domain.DateOf(date),
	})
	require.NoError(t, err)
}

func TestCurrent_EmptyLedgerFallsBackToInitialValue(t *testing.T) {
	service, _, userID := newTestService(t)

	result, err := service.Current(context.Background(), userID)
	require.NoError(t, err)

	assert.True(t, result.CurrentValue.Equal(decimal.NewFromInt(1000)))
	assert.Nil(t, result.PreviousValue)
	assert.True(t, result.Change24h.IsZero())
	assert.True(t, result.AllTimeHigh.Equal(result.CurrentValue))
	assert.True(t, result.AllTimeLow.Equal(result.CurrentValue))
}

func TestCurrent_ComputesChangeAgainstPreviousSnapshot(t *testing.T) {
	service, ledger, userID := newTestService(t)

	day1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	appendSnapshot(t, ledger, userID, 1000, domain.TriggerInitial, day1)
	appendSnapshot(t, ledger, userID, 1025, domain.TriggerWeightDown, day1.AddDate(0, 0, 1))

	result, err := service.Current(context.Background(), userID)
	require.NoError(t, err)

	assert.True(t, result.CurrentValue.Equal(decimal.NewFromInt(1025)))
	require.NotNil(t, result.PreviousValue)
	assert.True(t, result.PreviousValue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, result.Change24h.Equal(decimal.NewFromInt(25)))
	assert.True(t, result.Change24hPct.Equal(decimal.NewFromFloat(2.5)), "got %s", result.Change24hPct)
}

func TestCurrent_TracksAllTimeExtremes(t *testing.T) {
	service, ledger, userID := newTestService(t)

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	appendSnapshot(t, ledger, userID, 1000, domain.TriggerInitial, day)
	appendSnapshot(t, ledger, userID, 1100, domain.TriggerWeightDown, day.AddDate(0, 0, 1))
	appendSnapshot(t, ledger, userID, 950, domain.TriggerWeightUp, day.AddDate(0, 0, 2))

	result, err := service.Current(context.Background(), userID)
	require.NoError(t, err)

	assert.True(t, result.AllTimeHigh.Equal(decimal.NewFromInt(1100)))
	assert.True(t, result.AllTimeLow.Equal(decimal.NewFromInt(950)))
}

func TestHistory_WindowsBySnapshotDate(t *testing.T) {
	service, ledger, userID := newTestService(t)

	old := time.Now().AddDate(0, 0, -40)
	recent := time.Now().AddDate(0, 0, -3)
	appendSnapshot(t, ledger, userID, 1000, domain.TriggerInitial, old)
	appendSnapshot(t, ledger, userID, 1010, domain.TriggerFoodLogged, recent)

	snapshots, err := service.History(context.Background(), userID, 30)
	require.NoError(t, err)

	require.Len(t, snapshots, 1)
	assert.Equal(t, domain.TriggerFoodLogged, snapshots[0].Trigger)
}
