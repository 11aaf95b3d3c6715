package config

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// Newebpay holds the MPG gateway credentials shared by the order flow and the
// payment notify/return handlers.
type Newebpay struct {
	MerchantID string
	HashKey    string
	HashIV     string
	Version    string
}

type Config struct {
	Port          string
	Env           string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	TokenSecret   string
	SessionTTL    time.Duration
	ResetTokenTTL time.Duration
	ClientURL     string
	Newebpay      Newebpay
}

func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		// clientFoundRows makes RowsAffected report matched rows instead of
		// changed rows, so a no-op update on an owned row is not mistaken
		// for not-found. Operator-supplied DSNs must carry it too.
		DatabaseDSN:   getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/inkstream?parseTime=true&clientFoundRows=true"),
		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		TokenSecret:   getEnv("TOKEN_SECRET", "dev-secret-change-in-production"),
		SessionTTL:    7 * 24 * time.Hour,
		ResetTokenTTL: 15 * time.Minute,
		ClientURL:     getEnv("CLIENT_URL", "http://localhost:3000"),
		Newebpay: Newebpay{
			MerchantID: getEnv("NEWEBPAY_MERCHANT_ID", ""),
			HashKey:    getEnv("NEWEBPAY_HASH_KEY", ""),
			HashIV:     getEnv("NEWEBPAY_HASH_IV", ""),
			Version:    getEnv("NEWEBPAY_VERSION", "2.0"),
		},
	}

	if cfg.Env == "production" && cfg.TokenSecret == "dev-secret-change-in-production" {
		log.Fatal().Msg("TOKEN_SECRET must be set in production environment")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
