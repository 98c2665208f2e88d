//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credo-consent/internal/platform/config"
	"credo-consent/pkg/testutil/containers"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("empty url disables redis", func(t *testing.T) {
		client, err := New(ctx, config.RedisConfig{})
		require.NoError(t, err)
		assert.Nil(t, client)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := New(ctx, config.RedisConfig{URL: "://nope"})
		assert.Error(t, err)
	})

	t.Run("connects and reports health", func(t *testing.T) {
		rc := containers.GetManager().GetRedis(t)
		client, err := New(ctx, config.RedisConfig{URL: rc.Addr, PoolSize: 4, DialTimeout: 2 * time.Second})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		assert.NoError(t, client.Health(ctx))
		assert.Equal(t, 4, client.Options().PoolSize)
	})
}
