package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration. Empty backend URLs select the
// dependency-free fallbacks (in-memory store, log-only notifications).
type Server struct {
	Addr         string
	PostgresURL  string
	RedisURL     string
	CacheTTL     time.Duration
	KafkaBrokers []string
	KafkaTopic   string
	NotifyEmail  string
	Seed         bool
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CATALOG_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	topic := os.Getenv("CATALOG_KAFKA_TOPIC")
	if topic == "" {
		topic = "catalog.item-events"
	}

	notifyEmail := os.Getenv("CATALOG_NOTIFY_EMAIL")
	if notifyEmail == "" {
		notifyEmail = "catalog.subscriber@example.com"
	}

	var brokers []string
	if raw := os.Getenv("CATALOG_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	cacheTTL := 5 * time.Minute
	if raw := os.Getenv("CATALOG_CACHE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cacheTTL = d
		}
	}

	return Server{
		Addr:         addr,
		PostgresURL:  os.Getenv("CATALOG_POSTGRES_URL"),
		RedisURL:     os.Getenv("CATALOG_REDIS_URL"),
		CacheTTL:     cacheTTL,
		KafkaBrokers: brokers,
		KafkaTopic:   topic,
		NotifyEmail:  notifyEmail,
		Seed:         os.Getenv("CATALOG_SEED") == "true",
	}
}

// RedisConfig carries tuning for the Redis client beyond the URL.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RedisFromEnv builds the Redis client configuration with defaults suited to
// a cache workload.
func RedisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("CATALOG_REDIS_URL"),
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}
