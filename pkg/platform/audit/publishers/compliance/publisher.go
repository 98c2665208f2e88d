// Package compliance provides the synchronous audit publisher for consent
// decisions.
//
// Emit writes the event to the audit store before returning. Whether a
// failed write fails the caller's operation is the caller's decision: the
// consent flow logs the error and keeps going, so an audit outage never
// blocks a user's redirect.
package compliance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	audit "credo-consent/pkg/platform/audit"
)

var (
	errMissingAction  = errors.New("compliance event requires Action")
	errMissingSubject = errors.New("compliance event requires AccountID or InteractionUID")
)

// Publisher emits compliance events synchronously.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

// New creates a compliance publisher.
func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit writes a compliance event to the audit store.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	start := p.now()

	if event.Action == "" {
		return errMissingAction
	}
	if event.AccountID.IsNil() && event.InteractionUID.IsNil() {
		return errMissingSubject
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = start
	}
	event.Category = audit.AuditEvent(event.Action).Category()

	if err := p.store.Append(ctx, event); err != nil {
		p.metrics.IncPersistFailures()
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "compliance audit failed",
				"action", event.Action,
				"account_id", event.AccountID,
				"error", err,
			)
		}
		return fmt.Errorf("compliance audit persistence failed: %w", err)
	}

	p.metrics.ObservePersistDuration(p.now().Sub(start).Seconds())
	p.metrics.IncEventsEmitted(event.Action)
	return nil
}

// Close is a no-op for the synchronous compliance publisher.
func (p *Publisher) Close() error {
	return nil
}
