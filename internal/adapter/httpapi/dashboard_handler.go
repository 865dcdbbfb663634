package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Ed1sonDont/fitconomy/internal/usecase/dashboard"
)

// DashboardHandler serves the daily overview endpoint.
type DashboardHandler struct {
	dashboards *dashboard.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler instance
func NewDashboardHandler(dashboards *dashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

type dashboardResponse struct {
	AssetCurrent   decimal.Decimal    `json:"asset_current"`
	AssetChangePct decimal.Decimal    `json:"asset_change_pct"`
	AssetHistory   []snapshotResponse `json:"asset_history"`
	WeightCurrent  *decimal.Decimal   `json:"weight_current,omitempty"`
	WeightGoal     *decimal.Decimal   `json:"weight_goal,omitempty"`
	WeightHistory  []weightResponse   `json:"weight_history"`
	TodayCalories  int                `json:"today_calories"`
	CalorieTarget  int                `json:"calorie_target"`
	CaloriePct     decimal.Decimal    `json:"calorie_pct"`
	StreakDays     int                `json:"streak_days"`
}

// Today handles GET /api/dashboard/today
func (h *DashboardHandler) Today(c *gin.Context) {
	result, err := h.dashboards.Today(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	assetHistory := make([]snapshotResponse, 0, len(result.AssetHistory))
	for _, snapshot := range result.AssetHistory {
		assetHistory = append(assetHistory, toSnapshotResponse(snapshot))
	}

	weightHistory := make([]weightResponse, 0, len(result.WeightHistory))
	for _, record := range result.WeightHistory {
		weightHistory = append(weightHistory, toWeightResponse(record))
	}

	c.JSON(http.StatusOK, dashboardResponse{
		AssetCurrent:   result.AssetCurrent,
		AssetChangePct: result.AssetChangePct,
		AssetHistory:   assetHistory,
		WeightCurrent:  result.WeightCurrent,
		WeightGoal:     result.WeightGoal,
		WeightHistory:  weightHistory,
		TodayCalories:  result.TodayCalories,
		CalorieTarget:  result.CalorieTarget,
		CaloriePct:     result.CaloriePct,
		StreakDays:     result.StreakDays,
	})
}
