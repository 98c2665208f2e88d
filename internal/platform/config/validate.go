package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Validate reports every misconfiguration found, joined into one error.
func (s Server) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Addr) == "" {
		errs = append(errs, errors.New("CONSENT_ADDR must not be empty"))
	}
	if s.PublicURL != "" {
		u, err := url.Parse(s.PublicURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("PUBLIC_URL must be an absolute URL, got %q", s.PublicURL))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, fmt.Errorf("PUBLIC_URL scheme must be http or https, got %q", u.Scheme))
		}
	}
	if len(s.Session.SigningKey) < 16 {
		errs = append(errs, errors.New("SESSION_SIGNING_KEY must be at least 16 bytes"))
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if s.Interaction.InteractionTTL <= 0 {
		errs = append(errs, errors.New("INTERACTION_TTL must be positive"))
	}
	if s.Interaction.GrantTTL < 0 {
		errs = append(errs, errors.New("GRANT_TTL must not be negative"))
	}
	if s.Redis.URL != "" && s.Redis.PoolSize <= 0 {
		errs = append(errs, errors.New("REDIS_POOL_SIZE must be positive"))
	}
	if s.Database.URL != "" && s.Database.MaxOpenConns <= 0 {
		errs = append(errs, errors.New("DATABASE_MAX_OPEN_CONNS must be positive"))
	}
	if len(s.Kafka.Brokers) > 0 {
		if s.Kafka.AuditTopic == "" {
			errs = append(errs, errors.New("AUDIT_TOPIC is required when KAFKA_BROKERS is set"))
		}
		if s.Database.URL == "" {
			errs = append(errs, errors.New("KAFKA_BROKERS requires DATABASE_URL: audit events are relayed from the outbox"))
		}
		if s.Kafka.OutboxPollInterval <= 0 {
			errs = append(errs, errors.New("OUTBOX_POLL_INTERVAL must be positive"))
		}
	}
	return errors.Join(errs...)
}
