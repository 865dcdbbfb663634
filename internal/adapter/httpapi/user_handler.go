package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Ed1sonDont/fitconomy/internal/usecase/account"
)

// UserHandler serves the authenticated user's profile.
type UserHandler struct {
	accounts *account.AccountService
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(accounts *account.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

type updateProfileRequest struct {
	Username           *string          `json:"username"`
	Region             *string          `json:"region"`
	GoalWeightKG       *decimal.Decimal `json:"goal_weight_kg"`
	DailyCalorieTarget *int             `json:"daily_calorie_target"`
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.accounts.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMe handles PUT /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.UpdateProfile(c.Request.Context(), currentUserID(c), account.UpdateProfileInput{
		Username:           req.Username,
		Region:             req.Region,
		GoalWeightKG:       req.GoalWeightKG,
		DailyCalorieTarget: req.DailyCalorieTarget,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}
