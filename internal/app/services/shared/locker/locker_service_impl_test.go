package locker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryRedis stores JSON encoded values like the redis repository does.
type memoryRedis struct {
	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryRedis) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	delete(m.ttls, key)
	return nil
}

func (m *memoryRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = string(encoded)
	m.ttls[key] = exp
	return nil
}

func (m *memoryRedis) Get(ctx context.Context, key string) (string, error) {
	if m.failGet != nil {
		return "", m.failGet
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memoryRedis) Expire(ctx context.Context, key string, exp time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ttls[key] = exp
	return nil
}

func (m *memoryRedis) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	m.mu.Lock()
	_, exists := m.values[key]
	m.mu.Unlock()
	if exists {
		return false, nil
	}
	return true, m.Set(ctx, key, value, exp)
}

const slotKey = "appointment:slot:65a1b2c3d4e5f60718293a4b:2030-01-07:10:00"

func TestLockService(t *testing.T) {
	ctx := context.Background()

	t.Run("Second TryLock Fails Until Unlock", func(t *testing.T) {
		svc := newLockService(newMemoryRedis(), zap.NewNop())

		acquired, owner, err := svc.TryLock(ctx, slotKey, 10*time.Second)
		require.NoError(t, err)
		require.True(t, acquired)
		assert.NotEmpty(t, owner)

		acquired, _, err = svc.TryLock(ctx, slotKey, 10*time.Second)
		require.NoError(t, err)
		assert.False(t, acquired, "lock should be exclusive")

		require.NoError(t, svc.Unlock(ctx, slotKey, owner))

		acquired, _, err = svc.TryLock(ctx, slotKey, 10*time.Second)
		require.NoError(t, err)
		assert.True(t, acquired, "lock should be free after unlock")
	})

	t.Run("Unlock By Another Owner Is Rejected", func(t *testing.T) {
		redis := newMemoryRedis()
		svc := newLockService(redis, zap.NewNop())

		_, owner, err := svc.TryLock(ctx, slotKey, 10*time.Second)
		require.NoError(t, err)

		assert.Error(t, svc.Unlock(ctx, slotKey, "someone-else"))
		stored, _ := redis.Get(ctx, slotKey)
		assert.Equal(t, `"`+owner+`"`, stored, "lock should still be held")
	})

	t.Run("Unlock Of Expired Lock Is A No-op", func(t *testing.T) {
		svc := newLockService(newMemoryRedis(), zap.NewNop())
		assert.NoError(t, svc.Unlock(ctx, slotKey, "gone"))
	})

	t.Run("Refresh", func(t *testing.T) {
		redis := newMemoryRedis()
		svc := newLockService(redis, zap.NewNop())

		_, owner, err := svc.TryLock(ctx, slotKey, 10*time.Second)
		require.NoError(t, err)

		require.NoError(t, svc.Refresh(ctx, slotKey, owner, time.Minute))
		assert.Equal(t, time.Minute, redis.ttls[slotKey])

		require.NoError(t, svc.Unlock(ctx, slotKey, owner))
		assert.Error(t, svc.Refresh(ctx, slotKey, owner, time.Minute), "refreshing a released lock should fail")
	})

	t.Run("Redis Failure", func(t *testing.T) {
		redis := newMemoryRedis()
		redis.failGet = errors.New("connection refused")
		svc := newLockService(redis, zap.NewNop())

		assert.ErrorIs(t, svc.Unlock(ctx, slotKey, "owner"), redis.failGet)
	})
}
