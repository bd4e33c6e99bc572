package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// TransferCeiling bounds the quantity of a single transfer, quoted in
	// the transfer's quote currency.
	TransferCeiling decimal.Decimal
	// CancelWindow bounds how long after settlement a transference stays
	// cancellable.
	CancelWindow time.Duration
	// RateLimit is the per-IP request limit in ulule/limiter notation,
	// e.g. "100-M" for 100 requests per minute.
	RateLimit string
}

const (
	defaultTransferCeiling = "2000"
	defaultCancelWindow    = time.Minute
)

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("TRANSFER_CEILING", defaultTransferCeiling)
	viper.SetDefault("CANCEL_WINDOW", "1m")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set in production. Using default insecure key.")
	}

	ceilingStr := viper.GetString("TRANSFER_CEILING")
	ceiling, err := decimal.NewFromString(ceilingStr)
	if err != nil || !ceiling.IsPositive() {
		ceiling, _ = decimal.NewFromString(defaultTransferCeiling)
		log.Printf("Warning: Invalid value for TRANSFER_CEILING ('%s'). Defaulting to %s.\n", ceilingStr, ceiling)
	}
	cfg.TransferCeiling = ceiling

	windowStr := viper.GetString("CANCEL_WINDOW")
	window, err := time.ParseDuration(windowStr)
	if err != nil || window <= 0 {
		window = defaultCancelWindow
		log.Printf("Warning: Invalid value for CANCEL_WINDOW ('%s'). Defaulting to %s.\n", windowStr, window)
	}
	cfg.CancelWindow = window

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
