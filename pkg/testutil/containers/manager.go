//go:build integration

// Package containers provides shared testcontainers for integration tests.
// Containers start lazily on first use and are reused across suites in a
// package; Ryuk reaps them when the test binary exits.
package containers

import (
	"sync"
	"testing"
)

// Manager owns the process-wide container singletons.
type Manager struct {
	postgresOnce sync.Once
	postgres     *PostgresContainer

	redisOnce sync.Once
	redis     *RedisContainer

	redpandaOnce sync.Once
	redpanda     *RedpandaContainer
}

var (
	managerOnce sync.Once
	manager     *Manager
)

// GetManager returns the shared container manager.
func GetManager() *Manager {
	managerOnce.Do(func() {
		manager = &Manager{}
	})
	return manager
}

// GetPostgres returns the shared PostgreSQL container with the schema applied.
func (m *Manager) GetPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	m.postgresOnce.Do(func() {
		m.postgres = NewPostgresContainer(t)
	})
	if m.postgres == nil {
		t.Fatal("postgres container failed to start in an earlier suite")
	}
	return m.postgres
}

// GetRedis returns the shared Redis container.
func (m *Manager) GetRedis(t *testing.T) *RedisContainer {
	t.Helper()
	m.redisOnce.Do(func() {
		m.redis = NewRedisContainer(t)
	})
	if m.redis == nil {
		t.Fatal("redis container failed to start in an earlier suite")
	}
	return m.redis
}

// GetRedpanda returns the shared Kafka-compatible broker.
func (m *Manager) GetRedpanda(t *testing.T) *RedpandaContainer {
	t.Helper()
	m.redpandaOnce.Do(func() {
		m.redpanda = NewRedpandaContainer(t)
	})
	if m.redpanda == nil {
		t.Fatal("redpanda container failed to start in an earlier suite")
	}
	return m.redpanda
}
