package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/account"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	accounts *account.AccountService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(accounts *account.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

type registerRequest struct {
	Email              string           `json:"email" binding:"required,email"`
	Password           string           `json:"password" binding:"required"`
	Username           string           `json:"username" binding:"required"`
	Region             string           `json:"region"`
	GoalWeightKG       *decimal.Decimal `json:"goal_weight_kg"`
	DailyCalorieTarget int              `json:"daily_calorie_target"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID                 string           `json:"id"`
	Email              string           `json:"email"`
	Username           string           `json:"username"`
	Region             string           `json:"region"`
	GoalWeightKG       *decimal.Decimal `json:"goal_weight_kg,omitempty"`
	DailyCalorieTarget int              `json:"daily_calorie_target"`
	CreatedAt          time.Time        `json:"created_at"`
}

func toUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:                 user.ID.String(),
		Email:              user.Email,
		Username:           user.Username,
		Region:             user.Region,
		GoalWeightKG:       user.GoalWeightKG,
		DailyCalorieTarget: user.DailyCalorieTarget,
		CreatedAt:          user.CreatedAt,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), account.RegisterInput{
		Email:              req.Email,
		Password:           req.Password,
		Username:           req.Username,
		Region:             req.Region,
		GoalWeightKG:       req.GoalWeightKG,
		DailyCalorieTarget: req.DailyCalorieTarget,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  toUserResponse(user),
	})
}
