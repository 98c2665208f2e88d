// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
	// PublicURL is the externally visible origin, e.g. https://id.example.com.
	// Redirects on the service's own origin are rewritten to it.
	PublicURL             string
	TrustForwardedHeaders bool
	LogLevel              string

	Session     SessionConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Interaction InteractionConfig

	SeedDemoClient bool
}

// SessionConfig describes the session tokens issued by the login service.
type SessionConfig struct {
	SigningKey string
	CookieName string
	Issuer     string
	Audience   string
}

// DatabaseConfig configures the Postgres pool. An empty URL selects the
// in-memory stores.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the interaction session store. An empty URL selects
// the in-memory store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit relay. Without brokers audit events stay
// in the outbox (or memory) and are not relayed.
type KafkaConfig struct {
	Brokers            []string
	ClientID           string
	AuditTopic         string
	OutboxPollInterval time.Duration
}

// InteractionConfig bounds interaction and grant lifetimes.
type InteractionConfig struct {
	InteractionTTL time.Duration
	// GrantTTL refreshes a grant's expiry on every save. Zero disables expiry.
	GrantTTL time.Duration
}

const defaultSigningKey = "dev-secret-key-change-in-production"

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var errs []string
	durationVar := func(key string, def time.Duration) time.Duration {
		d, err := parseDuration(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return d
	}
	intVar := func(key string, def int) int {
		n, err := parseInt(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return n
	}

	cfg := Server{
		Addr:                  getEnv("CONSENT_ADDR", ":8080"),
		PublicURL:             strings.TrimRight(os.Getenv("PUBLIC_URL"), "/"),
		TrustForwardedHeaders: os.Getenv("TRUST_FORWARDED_HEADERS") == "true",
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		Session: SessionConfig{
			SigningKey: getEnv("SESSION_SIGNING_KEY", defaultSigningKey),
			CookieName: getEnv("SESSION_COOKIE", "credo_session"),
			Issuer:     getEnv("SESSION_ISSUER", "credo"),
			Audience:   getEnv("SESSION_AUDIENCE", "credo-consent"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    intVar("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    intVar("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: durationVar("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intVar("REDIS_POOL_SIZE", 10),
			MinIdleConns: intVar("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationVar("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationVar("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationVar("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:            splitList(os.Getenv("KAFKA_BROKERS")),
			ClientID:           getEnv("KAFKA_CLIENT_ID", "credo-consent"),
			AuditTopic:         getEnv("AUDIT_TOPIC", "credo.audit.consent"),
			OutboxPollInterval: durationVar("OUTBOX_POLL_INTERVAL", 2*time.Second),
		},
		Interaction: InteractionConfig{
			InteractionTTL: durationVar("INTERACTION_TTL", time.Hour),
			GrantTTL:       durationVar("GRANT_TTL", 0),
		},
		SeedDemoClient: os.Getenv("SEED_DEMO_CLIENT") == "true",
	}
	if len(errs) > 0 {
		return Server{}, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// UsesDefaultSigningKey reports whether the development signing key is active.
func (s Server) UsesDefaultSigningKey() bool {
	return s.Session.SigningKey == defaultSigningKey
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
