package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

func newTestStore(t *testing.T, ttl time.Duration) (domain.PendingLoginStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewPendingLoginStore(client, ttl), mr
}

func TestPutAndGet(t *testing.T) {
	store, _ := newTestStore(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "handle-1", 42))

	userID, err := store.Get(ctx, "handle-1")
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestGetUnknownHandle(t *testing.T) {
	store, _ := newTestStore(t, 5*time.Minute)

	_, err := store.Get(context.Background(), "never-issued")
	assert.ErrorIs(t, err, domain.ErrTempTokenInvalid)
}

func TestHandleExpires(t *testing.T) {
	store, mr := newTestStore(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "handle-1", 42))
	mr.FastForward(5*time.Minute + time.Second)

	_, err := store.Get(ctx, "handle-1")
	assert.ErrorIs(t, err, domain.ErrTempTokenInvalid)
}

func TestTTLSeconds(t *testing.T) {
	store, _ := newTestStore(t, 5*time.Minute)
	assert.Equal(t, 300, store.TTLSeconds())
}
