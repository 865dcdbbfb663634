package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/asset"
)

// AssetHandler serves read-only asset valuation endpoints.
type AssetHandler struct {
	assets *asset.AssetService
}

// NewAssetHandler creates a new AssetHandler instance
func NewAssetHandler(assets *asset.AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

type assetCurrentResponse struct {
	CurrentValue  decimal.Decimal  `json:"current_value"`
	PreviousValue *decimal.Decimal `json:"previous_value,omitempty"`
	Change24h     decimal.Decimal  `json:"change_24h"`
	Change24hPct  decimal.Decimal  `json:"change_24h_pct"`
	AllTimeHigh   decimal.Decimal  `json:"all_time_high"`
	AllTimeLow    decimal.Decimal  `json:"all_time_low"`
}

type snapshotResponse struct {
	ID           string          `json:"id"`
	AssetValue   decimal.Decimal `json:"asset_value"`
	Delta        decimal.Decimal `json:"delta"`
	Trigger      string          `json:"trigger"`
	SnapshotDate string          `json:"snapshot_date"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toSnapshotResponse(snapshot *domain.AssetSnapshot) snapshotResponse {
	return snapshotResponse{
		ID:           snapshot.ID.String(),
		AssetValue:   snapshot.AssetValue,
		Delta:        snapshot.Delta,
		Trigger:      string(snapshot.Trigger),
		SnapshotDate: snapshot.SnapshotDate.Format(dateLayout),
		CreatedAt:    snapshot.CreatedAt,
	}
}

// Current handles GET /api/asset/current
func (h *AssetHandler) Current(c *gin.Context) {
	result, err := h.assets.Current(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, assetCurrentResponse{
		CurrentValue:  result.CurrentValue,
		PreviousValue: result.PreviousValue,
		Change24h:     result.Change24h,
		Change24hPct:  result.Change24hPct,
		AllTimeHigh:   result.AllTimeHigh,
		AllTimeLow:    result.AllTimeLow,
	})
}

// History handles GET /api/asset/history
func (h *AssetHandler) History(c *gin.Context) {
	days, ok := parseDays(c, defaultHistoryDays)
	if !ok {
		return
	}

	snapshots, err := h.assets.History(c.Request.Context(), currentUserID(c), days)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]snapshotResponse, 0, len(snapshots))
	for _, snapshot := range snapshots {
		out = append(out, toSnapshotResponse(snapshot))
	}

	c.JSON(http.StatusOK, out)
}
