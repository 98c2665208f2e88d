package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"credo-consent/internal/interaction/models"
	id "credo-consent/pkg/domain"
	"credo-consent/pkg/platform/sentinel"
)

const interactionKeyPrefix = "interaction:"

// RedisStore is the production interaction session store. Multiple replicas
// share it, and Redis key expiry enforces the interaction TTL.
type RedisStore struct {
	client *redis.Client
	clock  func() time.Time
}

// NewRedis constructs a Redis-backed interaction store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, clock: time.Now}
}

func interactionKey(uid id.InteractionUID) string {
	return interactionKeyPrefix + uid.String()
}

// Save writes the interaction with a TTL matching its remaining lifetime.
func (s *RedisStore) Save(ctx context.Context, interaction *models.Interaction) error {
	ttl := interaction.ExpiresAt.Sub(s.clock())
	if ttl <= 0 {
		return fmt.Errorf("interaction %s: %w", interaction.UID, sentinel.ErrExpired)
	}
	payload, err := json.Marshal(interaction)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}
	if err := s.client.Set(ctx, interactionKey(interaction.UID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("save interaction: %w", err)
	}
	return nil
}

func (s *RedisStore) Find(ctx context.Context, uid id.InteractionUID) (*models.Interaction, error) {
	raw, err := s.client.Get(ctx, interactionKey(uid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("interaction %s: %w", uid, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load interaction: %w", err)
	}
	var interaction models.Interaction
	if err := json.Unmarshal(raw, &interaction); err != nil {
		return nil, fmt.Errorf("decode interaction: %w", err)
	}
	if interaction.IsExpired(s.clock()) {
		return nil, fmt.Errorf("interaction %s: %w", uid, sentinel.ErrNotFound)
	}
	return &interaction, nil
}
