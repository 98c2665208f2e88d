package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	audit "credo-consent/pkg/platform/audit"
	txcontext "credo-consent/pkg/platform/tx"
)

// Store implements audit.Store using the transactional outbox pattern.
// Events are written to the outbox table and published to Kafka by the
// outbox relay.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new PostgreSQL audit store that writes to the outbox.
func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Entry is one outbox row awaiting publication.
type Entry struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

// Append writes an audit event to the outbox table. Inside a transaction
// carried on ctx the write commits or rolls back with the caller's changes.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	// the action is the source of truth for the category
	event.Category = audit.AuditEvent(event.Action).Category()
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	aggregateType := "interaction"
	aggregateID := event.InteractionUID.String()
	if !event.AccountID.IsNil() {
		aggregateType = "account"
		aggregateID = event.AccountID.String()
	}
	if aggregateID == "" {
		aggregateType = "audit"
		aggregateID = uuid.NewString()
	}

	query := `
		INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.execer(ctx).ExecContext(ctx, query,
		uuid.New(),
		aggregateType,
		aggregateID,
		event.Action,
		payload,
		s.now(),
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// FetchPending returns up to limit unpublished entries, oldest first.
func (s *Store) FetchPending(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, aggregate_type, aggregate_id, event_type, payload, created_at
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.AggregateType, &e.AggregateID, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox: %w", err)
	}
	return entries, nil
}

// MarkPublished stamps the given entries as delivered.
func (s *Store) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]string, len(ids))
	for i, entryID := range ids {
		raw[i] = entryID.String()
	}
	_, err := s.execer(ctx).ExecContext(ctx,
		`UPDATE outbox SET published_at = $1 WHERE id = ANY($2::uuid[])`,
		s.now(), pq.Array(raw),
	)
	if err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}
