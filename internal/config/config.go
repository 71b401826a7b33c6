package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the process configuration, loaded once at startup.
type Config struct {
	Port           string
	DBConnStr      string
	RedisAddr      string // empty disables the account view cache
	RedisPassword  string
	RedisDB        int
	HubBuffer      int // per-subscriber notification buffer
	PersistWorkers int
	Env            string
}

// Load reads .env (if present) and the environment, applying defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, relying on environment variables")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		DBConnStr:      dbConnStr(),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		HubBuffer:      getEnvInt("HUB_BUFFER", 64),
		PersistWorkers: getEnvInt("PERSIST_WORKERS", 4),
		Env:            getEnv("ENV", "development"),
	}
}

// dbConnStr prefers an explicit DB_CONN_STR and otherwise builds one from
// individual vars (Docker friendly).
func dbConnStr() string {
	if conn := os.Getenv("DB_CONN_STR"); conn != "" {
		return conn
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "transactions")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

// Helper to get env with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", value)
		return fallback
	}
	return n
}
