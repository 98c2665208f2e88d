package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"credo-consent/internal/grant/models"
	id "credo-consent/pkg/domain"
	"credo-consent/pkg/platform/sentinel"
	txcontext "credo-consent/pkg/platform/tx"
)

// PostgresStore persists grants in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed grant store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Save upserts the grant. There is no version check: two submissions racing
// on the same grant resolve as last-write-wins.
func (s *PostgresStore) Save(ctx context.Context, grant *models.Grant) error {
	if !grant.IsSaved() {
		return fmt.Errorf("grant without id: %w", sentinel.ErrInvalidState)
	}
	resources, err := json.Marshal(grant.Resources)
	if err != nil {
		return fmt.Errorf("marshal grant resources: %w", err)
	}
	query := `
		INSERT INTO grants (id, account_id, client_id, openid_scope, openid_claims, resources, created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			openid_scope = EXCLUDED.openid_scope,
			openid_claims = EXCLUDED.openid_claims,
			resources = EXCLUDED.resources,
			updated_at = EXCLUDED.updated_at,
			expires_at = EXCLUDED.expires_at
	`
	_, err = s.execer(ctx).ExecContext(ctx, query,
		grant.ID.String(),
		grant.AccountID.String(),
		grant.ClientID.String(),
		pq.Array(grant.OpenIDScope),
		pq.Array(grant.OpenIDClaims),
		resources,
		grant.CreatedAt,
		grant.UpdatedAt,
		grant.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("save grant: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, grantID id.GrantID) (*models.Grant, error) {
	query := `
		SELECT id, account_id, client_id, openid_scope, openid_claims, resources, created_at, updated_at, expires_at
		FROM grants WHERE id = $1
	`
	var (
		grant     models.Grant
		grantIDs  string
		accountID string
		clientID  string
		resources []byte
		expiresAt sql.NullTime
	)
	err := s.execer(ctx).QueryRowContext(ctx, query, grantID.String()).Scan(
		&grantIDs,
		&accountID,
		&clientID,
		pq.Array(&grant.OpenIDScope),
		pq.Array(&grant.OpenIDClaims),
		&resources,
		&grant.CreatedAt,
		&grant.UpdatedAt,
		&expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("grant %s: %w", grantID, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find grant: %w", err)
	}
	grant.ID = id.GrantID(grantIDs)
	grant.AccountID = id.AccountID(accountID)
	grant.ClientID = id.ClientID(clientID)
	grant.Resources = map[string][]string{}
	if len(resources) > 0 {
		if err := json.Unmarshal(resources, &grant.Resources); err != nil {
			return nil, fmt.Errorf("decode grant resources: %w", err)
		}
	}
	if expiresAt.Valid {
		exp := expiresAt.Time
		grant.ExpiresAt = &exp
	}
	return &grant, nil
}
