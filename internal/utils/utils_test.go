package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearPGEnv(t *testing.T) {
	for _, k := range []string{"STATS_DB_DSN", "PG_HOST", "PG_PORT", "PG_USER", "PG_PASSWORD", "PG_DB", "PG_SSLMODE", "PG_CONNECT_TIMEOUT_S"} {
		t.Setenv(k, "")
	}
}

func TestStatsDSNFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearPGEnv(t)
		assert.Equal(t,
			"postgres://postgres@localhost:5432/zones?application_name=delivery-zones&connect_timeout=5&sslmode=disable",
			StatsDSNFromEnv())
	})

	t.Run("overrides escape credentials", func(t *testing.T) {
		clearPGEnv(t)
		t.Setenv("PG_HOST", "db")
		t.Setenv("PG_PORT", "6543")
		t.Setenv("PG_USER", "zones")
		t.Setenv("PG_PASSWORD", "p@ss:w")
		t.Setenv("PG_DB", "delivery")
		t.Setenv("PG_SSLMODE", "require")
		t.Setenv("PG_CONNECT_TIMEOUT_S", "2")
		assert.Equal(t,
			"postgres://zones:p%40ss%3Aw@db:6543/delivery?application_name=delivery-zones&connect_timeout=2&sslmode=require",
			StatsDSNFromEnv())
	})

	t.Run("explicit dsn wins", func(t *testing.T) {
		clearPGEnv(t)
		t.Setenv("PG_HOST", "ignored")
		t.Setenv("STATS_DB_DSN", "postgres://stats@pg/stats?sslmode=verify-full")
		assert.Equal(t, "postgres://stats@pg/stats?sslmode=verify-full", StatsDSNFromEnv())
	})
}

func TestStatsPoolFromEnv(t *testing.T) {
	for _, k := range []string{"PG_MAX_OPEN_CONNS", "PG_MAX_IDLE_CONNS", "PG_CONN_MAX_LIFETIME_S", "PG_CONN_MAX_IDLE_S"} {
		t.Setenv(k, "")
	}
	assert.Equal(t, StatsPool{MaxOpen: 8, MaxIdle: 2, MaxLifetime: 5 * time.Minute, MaxIdleTime: time.Minute}, StatsPoolFromEnv())

	t.Setenv("PG_MAX_OPEN_CONNS", "20")
	t.Setenv("PG_MAX_IDLE_CONNS", "bad")
	t.Setenv("PG_CONN_MAX_LIFETIME_S", "-1")
	t.Setenv("PG_CONN_MAX_IDLE_S", "10")
	assert.Equal(t, StatsPool{MaxOpen: 20, MaxIdle: 2, MaxLifetime: 5 * time.Minute, MaxIdleTime: 10 * time.Second}, StatsPoolFromEnv())
}

func TestRedisFromEnv(t *testing.T) {
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")
	assert.Equal(t, "127.0.0.1:6379", RedisAddrFromEnv())

	t.Setenv("REDIS_ENABLE", "false")
	assert.Nil(t, OpenRedisFromEnv())

	assert.Nil(t, OpenRedis("", ""))
}
