package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/foodlog"
)

// FoodHandler serves food record endpoints.
type FoodHandler struct {
	foods *foodlog.FoodService
}

// NewFoodHandler creates a new FoodHandler instance
func NewFoodHandler(foods *foodlog.FoodService) *FoodHandler {
	return &FoodHandler{foods: foods}
}

type foodItemRequest struct {
	Name          string           `json:"name" binding:"required"`
	Calories      int              `json:"calories" binding:"min=0"`
	AmountG       *decimal.Decimal `json:"amount_g"`
	ImageURL      string           `json:"image_url"`
	PixelIconType string           `json:"pixel_icon_type"`
}

type createFoodRequest struct {
	MealType     string            `json:"meal_type" binding:"required"`
	RecordedDate string            `json:"recorded_date"`
	Note         string            `json:"note"`
	Items        []foodItemRequest `json:"items" binding:"required,min=1"`
}

type foodItemResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Calories      int              `json:"calories"`
	AmountG       *decimal.Decimal `json:"amount_g,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
	PixelIconType string           `json:"pixel_icon_type,omitempty"`
}

type foodResponse struct {
	ID            string             `json:"id"`
	MealType      string             `json:"meal_type"`
	RecordedDate  string             `json:"recorded_date"`
	TotalCalories int                `json:"total_calories"`
	Note          string             `json:"note,omitempty"`
	Items         []foodItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
}

func toFoodItemResponse(item *domain.FoodItem) foodItemResponse {
	return foodItemResponse{
		ID:            item.ID.String(),
		Name:          item.Name,
		Calories:      item.Calories,
		AmountG:       item.AmountG,
		ImageURL:      item.ImageURL,
		PixelIconType: item.PixelIconType,
	}
}

func toFoodResponse(record *domain.FoodRecord) foodResponse {
	items := make([]foodItemResponse, 0, len(record.Items))
	for i := range record.Items {
		items = append(items, toFoodItemResponse(&record.Items[i]))
	}

	return foodResponse{
		ID:            record.ID.String(),
		MealType:      string(record.MealType),
		RecordedDate:  record.RecordedDate.Format(dateLayout),
		TotalCalories: record.TotalCalories,
		Note:          record.Note,
		Items:         items,
		CreatedAt:     record.CreatedAt,
	}
}

// Create handles POST /api/food
func (h *FoodHandler) Create(c *gin.Context) {
	var req createFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mealType := domain.MealType(req.MealType)
	if !mealType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal_type must be breakfast, lunch, dinner or snack"})
		return
	}

	recordedDate, ok := parseDateOrToday(c, req.RecordedDate)
	if !ok {
		return
	}

	items := make([]foodlog.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, foodlog.ItemInput{
			Name:          item.Name,
			Calories:      item.Calories,
			AmountG:       item.AmountG,
			ImageURL:      item.ImageURL,
			PixelIconType: item.PixelIconType,
		})
	}

	record, err := h.foods.Create(c.Request.Context(), foodlog.CreateInput{
		UserID:       currentUserID(c),
		MealType:     mealType,
		RecordedDate: recordedDate,
		Note:         req.Note,
		Items:        items,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toFoodResponse(record))
}

// Daily handles GET /api/food
func (h *FoodHandler) Daily(c *gin.Context) {
	date, ok := parseDateOrToday(c, c.Query("date"))
	if !ok {
		return
	}

	records, err := h.foods.Daily(c.Request.Context(), currentUserID(c), date)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]foodResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toFoodResponse(record))
	}

	c.JSON(http.StatusOK, out)
}

// AddItem handles POST /api/food/:id/items
func (h *FoodHandler) AddItem(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	var req foodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.foods.AddItem(c.Request.Context(), currentUserID(c), recordID, foodlog.ItemInput{
		Name:          req.Name,
		Calories:      req.Calories,
		AmountG:       req.AmountG,
		ImageURL:      req.ImageURL,
		PixelIconType: req.PixelIconType,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toFoodItemResponse(item))
}

// DeleteItem handles DELETE /api/food/items/:itemID
func (h *FoodHandler) DeleteItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if err := h.foods.DeleteItem(c.Request.Context(), currentUserID(c), itemID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
