package snapshot_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/events"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/snapshot"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingSource struct {
	mu      sync.Mutex
	version int64
}

func (c *countingSource) Generate() *domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	return &domain.Snapshot{
		Version:     c.version,
		Inspections: []domain.Inspection{{ID: 1, CeebStatus: domain.CeebPending}},
	}
}

type recordingNotifier struct {
	mu    sync.Mutex
	types []string
}

func (r *recordingNotifier) Publish(_ context.Context, eventType string, _ any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, eventType)
	return nil
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.types)
}

type failingKV struct{ store.KV }

func (failingKV) Set(context.Context, string, string, time.Duration) error {
	return errors.New("redis down")
}

func TestRefresher_Refresh_ReplacesCachesAndNotifies(t *testing.T) {
	st := snapshot.NewStore()
	kv := store.NewMemoryKV()
	notifier := &recordingNotifier{}
	r := snapshot.NewRefresher(&countingSource{}, st, kv, notifier, time.Minute, zap.NewNop())

	snap, err := r.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), snap.Version)
	require.Same(t, snap, st.Current())

	raw, err := kv.Get(context.Background(), snapshot.CacheKey)
	require.NoError(t, err)
	var cached domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	require.Equal(t, int64(1), cached.Version)

	require.Equal(t, []string{events.SnapshotRefreshed}, notifier.types)
}

func TestRefresher_Refresh_CacheFailureKeepsSnapshot(t *testing.T) {
	st := snapshot.NewStore()
	r := snapshot.NewRefresher(&countingSource{}, st, failingKV{}, events.Nop{}, time.Minute, zap.NewNop())

	_, err := r.Refresh(context.Background())
	require.Error(t, err)
	require.Equal(t, int64(1), st.Current().Version)
}

func TestRefresher_Run_TicksUntilCancelled(t *testing.T) {
	st := snapshot.NewStore()
	notifier := &recordingNotifier{}
	r := snapshot.NewRefresher(&countingSource{}, st, store.NewMemoryKV(), notifier, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return notifier.count() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}
	require.GreaterOrEqual(t, st.Current().Version, int64(3))
}

func TestStore_UpdateIsCopyOnWrite(t *testing.T) {
	st := snapshot.NewStore()
	st.Replace(&domain.Snapshot{Version: 1, Inspections: []domain.Inspection{{ID: 1, CeebStatus: domain.CeebPending}}})
	before := st.Current()

	after, err := st.Update(func(s *domain.Snapshot) error {
		s.Inspections[0].CeebStatus = domain.CeebReported
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, domain.CeebPending, before.Inspections[0].CeebStatus)
	require.Equal(t, domain.CeebReported, after.Inspections[0].CeebStatus)
	require.Same(t, after, st.Current())

	_, err = st.Update(func(*domain.Snapshot) error { return errors.New("nope") })
	require.Error(t, err)
	require.Same(t, after, st.Current())
}
