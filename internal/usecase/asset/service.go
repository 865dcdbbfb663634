package asset

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/valuation"
)

// CurrentResult is the read-only projection of the ledger's tail.
type CurrentResult struct {
	CurrentValue  decimal.Decimal
	PreviousValue *decimal.Decimal
	Change24h     decimal.Decimal
	Change24hPct  decimal.Decimal
	AllTimeHigh   decimal.Decimal
	AllTimeLow    decimal.Decimal
}

// AssetService projects the snapshot ledger for reporting. It never
// mutates the ledger.
type AssetService struct {
	Ledger domain.SnapshotLedger
	Config valuation.Config
}

// NewAssetService creates a new AssetService instance
func NewAssetService(ledger domain.SnapshotLedger, cfg valuation.Config) *AssetService {
	return &AssetService{
		Ledger: ledger,
		Config: cfg,
	}
}

// Current returns the latest asset value, its change against the
// previous snapshot and the all-time extremes.
func (s *AssetService) Current(ctx context.Context, userID uuid.UUID) (*CurrentResult, error) {
	snapshots, err := s.Ledger.MostRecentTwo(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &CurrentResult{
		CurrentValue: s.Config.InitialValue,
	}

	if len(snapshots) > 0 {
		result.CurrentValue = snapshots[0].AssetValue
	}
	if len(snapshots) > 1 {
		previous := snapshots[1].AssetValue
		result.PreviousValue = &previous
		result.Change24h = result.CurrentValue.Sub(previous).Round(domain.ValuePrecision)
		if !previous.IsZero() {
			result.Change24hPct = result.Change24h.
				Div(previous).
				Mul(decimal.NewFromInt(100)).
				Round(2)
		}
	}

	low, high, ok, err := s.Ledger.MinMax(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		low, high = result.CurrentValue, result.CurrentValue
	}
	result.AllTimeLow = low
	result.AllTimeHigh = high

	return result, nil
}

// History returns snapshots from the last N days, ordered by snapshot
// date then write time ascending.
func (s *AssetService) History(ctx context.Context, userID uuid.UUID, days int) ([]*domain.AssetSnapshot, error) {
	cutoff := domain.DateOf(time.Now()).AddDate(0, 0, -days)
	return s.Ledger.ListSince(ctx, userID, cutoff)
}
