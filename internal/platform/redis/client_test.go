package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credo-consent/internal/platform/config"
)

func TestOptions(t *testing.T) {
	t.Run("config overrides url defaults", func(t *testing.T) {
		opts, err := options(config.RedisConfig{
			URL:          "redis://localhost:6379/2",
			PoolSize:     8,
			MinIdleConns: 2,
			ReadTimeout:  750 * time.Millisecond,
		})
		require.NoError(t, err)

		assert.Equal(t, "localhost:6379", opts.Addr)
		assert.Equal(t, 2, opts.DB)
		assert.Equal(t, 8, opts.PoolSize)
		assert.Equal(t, 2, opts.MinIdleConns)
		assert.Equal(t, 750*time.Millisecond, opts.ReadTimeout)
	})

	t.Run("zero values keep url defaults", func(t *testing.T) {
		opts, err := options(config.RedisConfig{URL: "redis://localhost:6379/0?dial_timeout=3s"})
		require.NoError(t, err)

		assert.Equal(t, 3*time.Second, opts.DialTimeout)
		assert.Zero(t, opts.PoolSize)
	})

	t.Run("malformed url", func(t *testing.T) {
		_, err := options(config.RedisConfig{URL: "http://localhost:6379"})
		assert.ErrorContains(t, err, "parse redis URL")
	})
}
