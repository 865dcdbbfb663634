package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/weightlog"
)

const dateLayout = "2006-01-02"

// defaultHistoryDays is the history window used when the client does not
// pass one.
const defaultHistoryDays = 30

// WeightHandler serves weight record endpoints.
type WeightHandler struct {
	weights *weightlog.WeightService
}

// NewWeightHandler creates a new WeightHandler instance
func NewWeightHandler(weights *weightlog.WeightService) *WeightHandler {
	return &WeightHandler{weights: weights}
}

type createWeightRequest struct {
	WeightKG     decimal.Decimal `json:"weight_kg" binding:"required"`
	RecordedDate string          `json:"recorded_date"`
	Note         string          `json:"note"`
}

type updateWeightRequest struct {
	WeightKG *decimal.Decimal `json:"weight_kg"`
	Note     *string          `json:"note"`
}

type weightResponse struct {
	ID           string          `json:"id"`
	WeightKG     decimal.Decimal `json:"weight_kg"`
	RecordedDate string          `json:"recorded_date"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toWeightResponse(record *domain.WeightRecord) weightResponse {
	return weightResponse{
		ID:           record.ID.String(),
		WeightKG:     record.WeightKG,
		RecordedDate: record.RecordedDate.Format(dateLayout),
		Note:         record.Note,
		CreatedAt:    record.CreatedAt,
	}
}

// Create handles POST /api/weight
func (h *WeightHandler) Create(c *gin.Context) {
	var req createWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.WeightKG.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weight_kg must be positive"})
		return
	}

	recordedDate, ok := parseDateOrToday(c, req.RecordedDate)
	if !ok {
		return
	}

	record, err := h.weights.Create(c.Request.Context(), weightlog.CreateInput{
		UserID:       currentUserID(c),
		WeightKG:     req.WeightKG,
		RecordedDate: recordedDate,
		Note:         req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toWeightResponse(record))
}

// History handles GET /api/weight
func (h *WeightHandler) History(c *gin.Context) {
	days, ok := parseDays(c, defaultHistoryDays)
	if !ok {
		return
	}

	records, err := h.weights.History(c.Request.Context(), currentUserID(c), days)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]weightResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toWeightResponse(record))
	}

	c.JSON(http.StatusOK, out)
}

// Update handles PUT /api/weight/:id
func (h *WeightHandler) Update(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	var req updateWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.WeightKG != nil && req.WeightKG.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weight_kg must be positive"})
		return
	}

	record, err := h.weights.Update(c.Request.Context(), currentUserID(c), recordID, weightlog.UpdateInput{
		WeightKG: req.WeightKG,
		Note:     req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWeightResponse(record))
}

// Delete handles DELETE /api/weight/:id
func (h *WeightHandler) Delete(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	if err := h.weights.Delete(c.Request.Context(), currentUserID(c), recordID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseDateOrToday interprets an optional YYYY-MM-DD value, defaulting to
// the current date. Writes a 400 response and returns false on bad input.
func parseDateOrToday(c *gin.Context, value string) (time.Time, bool) {
	if value == "" {
		return time.Now(), true
	}

	date, err := time.Parse(dateLayout, value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return time.Time{}, false
	}

	return date, true
}

// parseDays interprets an optional positive ?days= query parameter.
func parseDays(c *gin.Context, fallback int) (int, bool) {
	value := c.Query("days")
	if value == "" {
		return fallback, true
	}

	days, err := strconv.Atoi(value)
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
		return 0, false
	}

	return days, true
}
