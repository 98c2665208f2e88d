package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"credo-consent/internal/client/models"
	id "credo-consent/pkg/domain"
	"credo-consent/pkg/platform/sentinel"
)

// PostgresStore reads client registrations from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Upsert registers or replaces a client.
func (s *PostgresStore) Upsert(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (id, name, logo_uri, policy_uri, tos_uri, redirect_uris, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			logo_uri = EXCLUDED.logo_uri,
			policy_uri = EXCLUDED.policy_uri,
			tos_uri = EXCLUDED.tos_uri,
			redirect_uris = EXCLUDED.redirect_uris,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		client.ID.String(),
		client.Name,
		client.LogoURI,
		client.PolicyURI,
		client.TosURI,
		pq.Array(client.RedirectURIs),
		string(client.Status),
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert client: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, clientID id.ClientID) (*models.Client, error) {
	query := `
		SELECT id, name, logo_uri, policy_uri, tos_uri, redirect_uris, status, created_at, updated_at
		FROM clients WHERE id = $1
	`
	var (
		c      models.Client
		rawID  string
		status string
	)
	err := s.db.QueryRowContext(ctx, query, clientID.String()).Scan(
		&rawID,
		&c.Name,
		&c.LogoURI,
		&c.PolicyURI,
		&c.TosURI,
		pq.Array(&c.RedirectURIs),
		&status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client %s: %w", clientID, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	c.ID = id.ClientID(rawID)
	c.Status = models.ClientStatus(status)
	return &c, nil
}
