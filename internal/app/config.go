package app

import (
	"os"
	"strconv"
	"time"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/connection"
)

// Config is read from the environment. cmd/* load .env first with godotenv.
type Config struct {
	Port        string
	Postgres    connection.PostgresConfig
	RedisAddr   string
	KafkaBroker string

	// AutoMigrate runs schema migration on API startup.
	AutoMigrate bool

	SettlementExportDir     string
	SettlementArchiveBucket string
	SettlementArchivePrefix string

	PayrollWorkers int
	LockTTL        time.Duration
}

func LoadConfig() Config {
	return Config{
		Port: envOr("PORT", "3000"),
		Postgres: connection.PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
			Port:     envOr("DB_PORT", "5432"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},
		RedisAddr:               os.Getenv("REDIS_ADDR"),
		KafkaBroker:             os.Getenv("KAFKA_BROKER"),
		AutoMigrate:             envBool("DB_AUTO_MIGRATE", true),
		SettlementExportDir:     envOr("SETTLEMENT_EXPORT_DIR", "exports"),
		SettlementArchiveBucket: os.Getenv("SETTLEMENT_ARCHIVE_BUCKET"),
		SettlementArchivePrefix: envOr("SETTLEMENT_ARCHIVE_PREFIX", "settlements"),
		PayrollWorkers:          envInt("PAYROLL_WORKERS", 8),
		LockTTL:                 envDuration("PAYROLL_LOCK_TTL", 2*time.Minute),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
