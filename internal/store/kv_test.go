package store

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func TestRedisKV_GetSetDelScan(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	kv := NewRedisKV(client)
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, "chimney:selection:user:a", "[1]", time.Minute))
	require.NoError(t, kv.Set(ctx, "chimney:selection:user:b", "[2]", 0))
	require.NoError(t, kv.Set(ctx, "chimney:snapshot:current", "{}", 0))

	v, err := kv.Get(ctx, "chimney:selection:user:a")
	require.NoError(t, err)
	require.Equal(t, "[1]", v)

	keys, err := kv.ScanKeys(ctx, "chimney:selection:user:*")
	require.NoError(t, err)
	sort.Strings(keys)
	require.Equal(t, []string{"chimney:selection:user:a", "chimney:selection:user:b"}, keys)

	mr.FastForward(2 * time.Minute)
	_, err = kv.Get(ctx, "chimney:selection:user:a")
	require.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Del(ctx, "chimney:snapshot:current"))
	_, err = kv.Get(ctx, "chimney:snapshot:current")
	require.ErrorIs(t, err, ErrMiss)
}

func TestMemoryKV_TTLAndScan(t *testing.T) {
	kv := NewMemoryKV()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "a:1:full", "x", time.Second))
	require.NoError(t, kv.Set(ctx, "a:2:full", "y", 0))
	require.NoError(t, kv.Set(ctx, "b:1:full", "z", 0))

	keys, err := kv.ScanKeys(ctx, "a:*:full")
	require.NoError(t, err)
	require.Len(t, keys, 2)

	now = now.Add(2 * time.Second)
	_, err = kv.Get(ctx, "a:1:full")
	require.ErrorIs(t, err, ErrMiss)

	keys, err = kv.ScanKeys(ctx, "a:*:full")
	require.NoError(t, err)
	require.Equal(t, []string{"a:2:full"}, keys)

	require.NoError(t, kv.Del(ctx, "a:2:full"))
	_, err = kv.Get(ctx, "a:2:full")
	require.ErrorIs(t, err, ErrMiss)
}
