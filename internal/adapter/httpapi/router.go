// Package httpapi exposes the application services over a JSON HTTP API.
package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ed1sonDont/fitconomy/internal/usecase/account"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/asset"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/dashboard"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/foodlog"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/weightlog"
)

// Services bundles the application services the router exposes.
type Services struct {
	Accounts   *account.AccountService
	Weights    *weightlog.WeightService
	Foods      *foodlog.FoodService
	Assets     *asset.AssetService
	Dashboards *dashboard.DashboardService
}

// SetupRouter wires all routes, CORS and authentication.
func SetupRouter(services Services, token account.TokenConfig, corsOrigins []string) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = corsOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	authHandler := NewAuthHandler(services.Accounts)
	userHandler := NewUserHandler(services.Accounts)
	weightHandler := NewWeightHandler(services.Weights)
	foodHandler := NewFoodHandler(services.Foods)
	assetHandler := NewAssetHandler(services.Assets)
	dashboardHandler := NewDashboardHandler(services.Dashboards)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		authed := api.Group("")
		authed.Use(AuthRequired(token))
		{
			users := authed.Group("/users")
			{
				users.GET("/me", userHandler.Me)
				users.PUT("/me", userHandler.UpdateMe)
			}

			weight := authed.Group("/weight")
			{
				weight.POST("", weightHandler.Create)
				weight.GET("", weightHandler.History)
				weight.PUT("/:id", weightHandler.Update)
				weight.DELETE("/:id", weightHandler.Delete)
			}

			food := authed.Group("/food")
			{
				food.POST("", foodHandler.Create)
				food.GET("", foodHandler.Daily)
				food.POST("/:id/items", foodHandler.AddItem)
				food.DELETE("/items/:itemID", foodHandler.DeleteItem)
			}

			assets := authed.Group("/asset")
			{
				assets.GET("/current", assetHandler.Current)
				assets.GET("/history", assetHandler.History)
			}

			authed.GET("/dashboard/today", dashboardHandler.Today)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
