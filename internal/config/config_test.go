package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Contains(t, cfg.DBConnStr, "dbname=transactions")
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, 64, cfg.HubBuffer)
	assert.Equal(t, 4, cfg.PersistWorkers)
}

func TestLoad_ExplicitConnStrWins(t *testing.T) {
	t.Setenv("DB_CONN_STR", "host=db port=5432 user=u password=p dbname=tx sslmode=disable")
	t.Setenv("DB_HOST", "ignored")

	cfg := Load()

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=tx sslmode=disable", cfg.DBConnStr)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("HUB_BUFFER", "not-a-number")

	cfg := Load()

	assert.Equal(t, 64, cfg.HubBuffer)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("PERSIST_WORKERS", "8")

	cfg := Load()

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 8, cfg.PersistWorkers)
}
