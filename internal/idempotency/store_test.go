package idempotency

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	_, found, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "k1", []byte(`{"id":1}`), time.Minute))
	got, found, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`{"id":1}`), got)

	require.NoError(t, s.Set(ctx, "k1", []byte(`{"id":2}`), time.Minute))
	got, _, err = s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":2}`), got)

	exerciseReserve(t, s)
}

func exerciseReserve(t *testing.T, s Store) {
	ctx := context.Background()

	_, found, err := s.Reserve(ctx, "r1", time.Minute)
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = s.Reserve(ctx, "r1", time.Minute)
	assert.ErrorIs(t, err, ErrInFlight)
	_, found, err = s.Get(ctx, "r1")
	require.NoError(t, err)
	assert.False(t, found, "a reservation is not a stored response")

	require.NoError(t, s.Release(ctx, "r1"))
	_, found, err = s.Reserve(ctx, "r1", time.Minute)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "r1", []byte(`{"id":3}`), time.Minute))
	require.NoError(t, s.Release(ctx, "r1"))
	got, found, err := s.Reserve(ctx, "r1", time.Minute)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`{"id":3}`), got)
}

// --------------------- MemoryStore ---------------------

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(context.Background(), "k", []byte("v"), time.Second))
	_, found, _ := s.Get(context.Background(), "k")
	assert.True(t, found)

	now = now.Add(2 * time.Second)
	_, found, _ = s.Get(context.Background(), "k")
	assert.False(t, found)
}

func TestMemoryStore_ReserveExpires(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_, _, err := s.Reserve(ctx, "k", time.Second)
	require.NoError(t, err)
	_, _, err = s.Reserve(ctx, "k", time.Second)
	assert.ErrorIs(t, err, ErrInFlight)

	now = now.Add(2 * time.Second)
	_, found, err := s.Reserve(ctx, "k", time.Second)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_ReserveIsExclusive(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const callers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		claimed int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := s.Reserve(ctx, "shared", time.Minute); err == nil {
				mu.Lock()
				claimed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, claimed)
}

func TestMemoryStore_Sweep(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "short", []byte("a"), time.Second))
	require.NoError(t, s.Set(ctx, "long", []byte("b"), time.Hour))
	require.NoError(t, s.Set(ctx, "forever", []byte("c"), 0))

	assert.Zero(t, s.Sweep())
	now = now.Add(time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 2, s.Len())
}

func TestMemoryStore_ReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	value := []byte("abc")
	require.NoError(t, s.Set(context.Background(), "k", value, 0))
	value[0] = 'z'

	got, _, _ := s.Get(context.Background(), "k")
	got[1] = 'z'
	again, _, _ := s.Get(context.Background(), "k")
	assert.Equal(t, []byte("abc"), again)
}

// --------------------- RedisStore ---------------------

func TestNewRedisStore_RequiresClient(t *testing.T) {
	_, err := NewRedisStore(Config{})
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: "127.0.0.1:6379",
		DB:   3,
	})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	s, err := NewRedisStore(Config{Client: client, KeyPrefix: "formflow:test:"})
	require.NoError(t, err)
	defer func() {
		client.FlushDB(ctx)
		s.Close()
	}()

	exerciseStore(t, s)
}
