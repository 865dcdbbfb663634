// Package config centralises configuration parsing for the fitconomy backend.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"

	"github.com/Ed1sonDont/fitconomy/internal/usecase/valuation"
)

// Config captures runtime configuration values, with defaults suitable
// for local development.
type Config struct {
	HTTPAddress string `env:"HTTP_ADDRESS" envDefault:":8080"`

	DatabaseURL string `env:"DATABASE_URL" envDefault:"host=localhost port=5432 user=postgres password=postgres dbname=fitconomy sslmode=disable"`

	JWTSecret   string        `env:"JWT_SECRET" envDefault:"dev-secret-key-change-in-production"`
	JWTIssuer   string        `env:"JWT_ISSUER" envDefault:"fitconomy"`
	TokenExpiry time.Duration `env:"TOKEN_EXPIRY" envDefault:"60m"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Game settings
	InitialAssetValue float64 `env:"INITIAL_ASSET_VALUE" envDefault:"1000.0"`
	AssetFloor        float64 `env:"ASSET_FLOOR" envDefault:"100.0"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Valuation converts the game settings into the engine's configuration.
func (c Config) Valuation() valuation.Config {
	return valuation.Config{
		InitialValue: decimal.NewFromFloat(c.InitialAssetValue),
		Floor:        decimal.NewFromFloat(c.AssetFloor),
	}
}
