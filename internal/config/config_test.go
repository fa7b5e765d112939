package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "smartshop.db", cfg.DBPath)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30, cfg.VoteRateLimit)
	assert.Equal(t, time.Minute, cfg.VoteRateWindow)
	assert.Equal(t, 10*time.Minute, cfg.StatsCacheTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "b1:9092, b2:9092,")
	t.Setenv("VOTE_RATE_LIMIT", "5")
	t.Setenv("VOTE_RATE_WINDOW_SEC", "10")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5, cfg.VoteRateLimit)
	assert.Equal(t, 10*time.Second, cfg.VoteRateWindow)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("non-numeric rate limit", func(t *testing.T) {
		t.Setenv("VOTE_RATE_LIMIT", "lots")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("zero rate limit", func(t *testing.T) {
		t.Setenv("VOTE_RATE_LIMIT", "0")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("negative window", func(t *testing.T) {
		t.Setenv("VOTE_RATE_WINDOW_SEC", "-1")
		_, err := Load()
		assert.Error(t, err)
	})
}
