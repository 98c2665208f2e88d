// Package outbox relays audit events from the PostgreSQL outbox to Kafka.
package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"credo-consent/internal/platform/kafka/producer"
	"credo-consent/pkg/platform/audit/store/postgres"
	"credo-consent/pkg/platform/circuit"
)

// Source yields outbox entries awaiting publication.
type Source interface {
	FetchPending(ctx context.Context, limit int) ([]postgres.Entry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}

// Publisher delivers a message to the broker.
type Publisher interface {
	Publish(ctx context.Context, msg producer.Message) error
}

// Relay polls the outbox and publishes entries in creation order. Delivery is
// at-least-once: an entry published but not yet marked is sent again after a
// restart.
type Relay struct {
	source    Source
	publisher Publisher
	topic     string
	interval  time.Duration
	batchSize int
	breaker   *circuit.Breaker
	logger    *slog.Logger
}

// Option configures a Relay.
type Option func(*Relay)

func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(r *Relay) {
		r.breaker = b
	}
}

// New creates a relay publishing to topic.
func New(source Source, publisher Publisher, topic string, logger *slog.Logger, opts ...Option) *Relay {
	r := &Relay{
		source:    source,
		publisher: publisher,
		topic:     topic,
		interval:  time.Second,
		batchSize: 100,
		breaker:   circuit.New("audit-relay"),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run polls until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.RelayOnce(ctx); err != nil && ctx.Err() == nil {
				r.logger.WarnContext(ctx, "audit outbox relay cycle failed", "error", err)
			}
		}
	}
}

// RelayOnce publishes one batch and returns how many entries were delivered.
// Publishing stops at the first failure so ordering is preserved.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	if !r.breaker.Allow() {
		return 0, nil
	}

	entries, err := r.source.FetchPending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}

	published := make([]uuid.UUID, 0, len(entries))
	var publishErr error
	for _, entry := range entries {
		msg := producer.Message{
			Topic: r.topic,
			Key:   []byte(entry.AggregateID),
			Value: entry.Payload,
			Headers: map[string]string{
				"event_type":     entry.EventType,
				"aggregate_type": entry.AggregateType,
				"outbox_id":      entry.ID.String(),
			},
		}
		if err := r.publisher.Publish(ctx, msg); err != nil {
			publishErr = err
			break
		}
		published = append(published, entry.ID)
	}

	if publishErr != nil {
		if _, change := r.breaker.RecordFailure(); change.Opened {
			r.logger.WarnContext(ctx, "audit relay circuit opened", "error", publishErr)
		}
	} else if len(entries) > 0 {
		if _, change := r.breaker.RecordSuccess(); change.Closed {
			r.logger.InfoContext(ctx, "audit relay circuit closed")
		}
	}

	if err := r.source.MarkPublished(ctx, published); err != nil {
		return 0, err
	}
	return len(published), publishErr
}
