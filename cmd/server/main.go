package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ed1sonDont/fitconomy/internal/adapter/httpapi"
	"github.com/Ed1sonDont/fitconomy/internal/adapter/repository/postgres"
	"github.com/Ed1sonDont/fitconomy/internal/config"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/account"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/asset"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/dashboard"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/foodlog"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/streak"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/valuation"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/weightlog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 1. Setup Database
	db, err := postgres.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 2. Initialize Repositories (Postgres)
	userRepo := postgres.NewUserRepository(db)
	weightRepo := postgres.NewWeightRepository(db)
	foodRepo := postgres.NewFoodRepository(db)
	snapshotRepo := postgres.NewSnapshotRepository(db)
	activityRepo := postgres.NewActivityRepository(db)
	unitOfWork := postgres.NewUnitOfWork(db)

	// 3. Initialize Services (Use Cases)
	valuationCfg := cfg.Valuation()
	streakCalc := streak.NewCalculator(activityRepo)
	engine := valuation.NewEngine(snapshotRepo, weightRepo, streakCalc, valuationCfg)

	tokenCfg := account.TokenConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.TokenExpiry,
	}

	services := httpapi.Services{
		Accounts:   account.NewAccountService(userRepo, engine, unitOfWork, tokenCfg),
		Weights:    weightlog.NewWeightService(weightRepo, engine, unitOfWork),
		Foods:      foodlog.NewFoodService(foodRepo, userRepo, engine, unitOfWork),
		Assets:     asset.NewAssetService(snapshotRepo, valuationCfg),
		Dashboards: dashboard.NewDashboardService(snapshotRepo, weightRepo, foodRepo, userRepo, streakCalc, valuationCfg),
	}

	// 4. Start HTTP Server
	router := httpapi.SetupRouter(services, tokenCfg, cfg.CORSOrigins)

	server := &http.Server{
		Addr:    cfg.HTTPAddress,
		Handler: router,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve HTTP server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(server)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}
