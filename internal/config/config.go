package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig aggregates runtime configuration, injected via environment
// variables to avoid hardcoding deployment details.
type AppConfig struct {
	HTTPAddr string
	DBPath   string

	RedisAddr string
	RedisDB   int

	// Kafka cluster addresses (comma separated), topic and consumer group
	// for the vote analytics pipeline.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// Redis Stream outbox (vote handler appends, relay forwards to Kafka).
	VoteEventStream   string
	VoteEventGroup    string
	VoteEventConsumer string

	// Vote endpoint rate limit and vote-stats cache policy.
	VoteRateLimit  int
	VoteRateWindow time.Duration
	StatsCacheTTL  time.Duration

	// Simple admin token guarding the catalog write endpoints.
	AdminToken string
}

// Load reads and validates configuration, falling back to defaults.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		DBPath:            getEnv("DB_PATH", "smartshop.db"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           0,
		KafkaBrokers:      splitCSV(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "smartshop-vote-events"),
		KafkaGroupID:      getEnv("KAFKA_GROUP_ID", "smartshop-vote-consumer"),
		VoteEventStream:   getEnv("VOTE_EVENT_STREAM", "smartshop:vote_events"),
		VoteEventGroup:    getEnv("VOTE_EVENT_GROUP", "smartshop-relay-group"),
		VoteEventConsumer: getEnv("VOTE_EVENT_CONSUMER", "smartshop-relay-1"),
		VoteRateLimit:     30,
		VoteRateWindow:    time.Minute,
		StatsCacheTTL:     10 * time.Minute,
		AdminToken:        getEnv("ADMIN_TOKEN", "dev-admin-token"),
	}

	redisDB, err := getEnvInt("REDIS_DB", cfg.RedisDB)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	rateLimit, err := getEnvInt("VOTE_RATE_LIMIT", cfg.VoteRateLimit)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid VOTE_RATE_LIMIT: %w", err)
	}
	if rateLimit <= 0 {
		return AppConfig{}, fmt.Errorf("VOTE_RATE_LIMIT must be > 0")
	}
	cfg.VoteRateLimit = rateLimit

	rateWindowSec, err := getEnvInt("VOTE_RATE_WINDOW_SEC", int(cfg.VoteRateWindow.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid VOTE_RATE_WINDOW_SEC: %w", err)
	}
	if rateWindowSec <= 0 {
		return AppConfig{}, fmt.Errorf("VOTE_RATE_WINDOW_SEC must be > 0")
	}
	cfg.VoteRateWindow = time.Duration(rateWindowSec) * time.Second

	statsTTLMin, err := getEnvInt("STATS_CACHE_TTL_MIN", int(cfg.StatsCacheTTL.Minutes()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid STATS_CACHE_TTL_MIN: %w", err)
	}
	if statsTTLMin <= 0 {
		return AppConfig{}, fmt.Errorf("STATS_CACHE_TTL_MIN must be > 0")
	}
	cfg.StatsCacheTTL = time.Duration(statsTTLMin) * time.Minute

	if len(cfg.KafkaBrokers) == 0 {
		return AppConfig{}, fmt.Errorf("KAFKA_BROKERS must not be empty")
	}
	if cfg.KafkaTopic == "" {
		return AppConfig{}, fmt.Errorf("KAFKA_TOPIC must not be empty")
	}
	if cfg.KafkaGroupID == "" {
		return AppConfig{}, fmt.Errorf("KAFKA_GROUP_ID must not be empty")
	}
	if cfg.VoteEventStream == "" {
		return AppConfig{}, fmt.Errorf("VOTE_EVENT_STREAM must not be empty")
	}
	if cfg.VoteEventGroup == "" {
		return AppConfig{}, fmt.Errorf("VOTE_EVENT_GROUP must not be empty")
	}
	if cfg.VoteEventConsumer == "" {
		return AppConfig{}, fmt.Errorf("VOTE_EVENT_CONSUMER must not be empty")
	}

	return cfg, nil
}

// getEnv reads a string env var, returning the fallback when empty.
func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// getEnvInt reads an integer env var, returning the fallback when empty.
func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

// splitCSV parses a comma separated string into a slice.
func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
