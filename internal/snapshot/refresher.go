package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/events"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/store"

	"go.uber.org/zap"
)

// CacheKey holds the JSON of the latest snapshot.
const CacheKey = "chimney:snapshot:current"

// Source produces snapshots.
type Source interface {
	Generate() *domain.Snapshot
}

// Refresher regenerates the snapshot on a fixed interval.
type Refresher struct {
	source   Source
	store    *Store
	kv       store.KV
	notifier events.Notifier
	interval time.Duration
	logger   *zap.Logger
}

func NewRefresher(
	source Source,
	st *Store,
	kv store.KV,
	notifier events.Notifier,
	interval time.Duration,
	logger *zap.Logger,
) *Refresher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Refresher{
		source:   source,
		store:    st,
		kv:       kv,
		notifier: notifier,
		interval: interval,
		logger:   logger,
	}
}

// Refresh generates one snapshot, makes it current, caches it and announces it.
// A cache failure is returned but the new snapshot is already live.
func (r *Refresher) Refresh(ctx context.Context) (*domain.Snapshot, error) {
	snap := r.source.Generate()
	r.store.Replace(snap)

	raw, err := json.Marshal(snap)
	if err != nil {
		return snap, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := r.kv.Set(ctx, CacheKey, string(raw), 2*r.interval); err != nil {
		return snap, fmt.Errorf("failed to cache snapshot: %w", err)
	}

	_ = r.notifier.Publish(ctx, events.SnapshotRefreshed, map[string]any{
		"version":      snap.Version,
		"generated_at": snap.GeneratedAt,
		"inspections":  len(snap.Inspections),
	})

	r.logger.Debug("Snapshot refreshed",
		zap.Int64("version", snap.Version),
		zap.Int("inspection_count", len(snap.Inspections)),
	)
	return snap, nil
}

// Run refreshes immediately and then on every tick until ctx is done.
func (r *Refresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("Starting snapshot refresher", zap.Duration("interval", r.interval))

	if _, err := r.Refresh(ctx); err != nil {
		r.logger.Error("Failed to refresh snapshot on startup", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Snapshot refresher stopped")
			return nil
		case <-ticker.C:
			if _, err := r.Refresh(ctx); err != nil {
				r.logger.Error("Failed to refresh snapshot", zap.Error(err))
			}
		}
	}
}
