package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/account"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/valuation"
)

// respondError maps domain errors to HTTP statuses. Anything unmapped is
// a 500 with a generic body so internals do not leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrWeightNotFound),
		errors.Is(err, domain.ErrFoodNotFound),
		errors.Is(err, domain.ErrFoodItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, account.ErrWeakPassword),
		errors.Is(err, valuation.ErrInvalidWeight),
		errors.Is(err, valuation.ErrInvalidCalories):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
