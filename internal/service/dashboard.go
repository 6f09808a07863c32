package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/aggregator"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/ceeb"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/export"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/filter"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/repository"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/risk"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/settings"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/snapshot"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/store"
)

const (
	selectionKeyPrefix = "chimney:selection:user:"
	selectionTTL       = 24 * time.Hour
)

// ErrNotFound the requested record is not in the current snapshot.
var ErrNotFound = errors.New("not found")

// ConnectionChecker reports broker connectivity.
type ConnectionChecker interface {
	IsConnected() bool
}

// Health is the liveness report served on /health.
type Health struct {
	Status           string    `json:"status"`
	SnapshotVersion  int64     `json:"snapshot_version"`
	GeneratedAt      time.Time `json:"generated_at"`
	ActiveSelections int       `json:"active_selections"`
	MQTT             string    `json:"mqtt"`
}

// DashboardService read and write operations behind the admin API.
type DashboardService struct {
	snapshots   *snapshot.Store
	kv          store.KV
	ceeb        *ceeb.Service
	exports     *export.Service
	settings    *settings.Service
	submissions repository.SubmissionsRepository
	mqtt        ConnectionChecker
	logger      *zap.Logger
	now         func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Deps collaborators of DashboardService.
type Deps struct {
	Snapshots   *snapshot.Store
	KV          store.KV
	Ceeb        *ceeb.Service
	Exports     *export.Service
	Settings    *settings.Service
	Submissions repository.SubmissionsRepository
	// MQTT is nil when event publishing over MQTT is disabled.
	MQTT   ConnectionChecker
	Logger *zap.Logger
	// Seed for insight forecasts; zero picks a random one.
	Seed uint64
}

func NewDashboardService(d Deps) *DashboardService {
	seed := d.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &DashboardService{
		snapshots:   d.Snapshots,
		kv:          d.KV,
		ceeb:        d.Ceeb,
		exports:     d.Exports,
		settings:    d.Settings,
		submissions: d.Submissions,
		mqtt:        d.MQTT,
		logger:      d.Logger,
		now:         func() time.Time { return time.Now().UTC() },
		rng:         rand.New(rand.NewPCG(seed, ^seed)),
	}
}

func (s *DashboardService) Snapshot() *domain.Snapshot {
	return s.snapshots.Current()
}

// CachedSnapshot returns the JSON the refresher cached for other consumers.
func (s *DashboardService) CachedSnapshot(ctx context.Context) (string, error) {
	return s.kv.Get(ctx, snapshot.CacheKey)
}

func (s *DashboardService) Stats() aggregator.DashboardStats {
	return aggregator.Stats(s.Snapshot(), s.now())
}

func (s *DashboardService) Insights() []risk.Insight {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return risk.Insights(s.Snapshot(), s.now(), s.rng)
}

func (s *DashboardService) Inspections(c filter.Criteria) []domain.Inspection {
	return filter.Apply(s.Snapshot().Inspections, c)
}

func (s *DashboardService) Inspection(id int) (domain.Inspection, error) {
	in, ok := s.Snapshot().InspectionByID(id)
	if !ok {
		return domain.Inspection{}, fmt.Errorf("inspection %d: %w", id, ErrNotFound)
	}
	return in, nil
}

func (s *DashboardService) Clients(c filter.ClientCriteria) []domain.Client {
	return filter.FilterClients(s.Snapshot().Clients, c)
}

func (s *DashboardService) Buildings(c filter.BuildingCriteria) []domain.Building {
	return filter.FilterBuildings(s.Snapshot().Buildings, c)
}

func (s *DashboardService) Pending(c filter.Criteria) []domain.Inspection {
	return filter.Pending(s.Snapshot().Inspections, c)
}

func (s *DashboardService) Risk() []risk.Item {
	return risk.AtRisk(s.Snapshot().Inspections, s.now())
}

func (s *DashboardService) Reports() []domain.CeebReport {
	return s.Snapshot().Reports
}

func (s *DashboardService) Regions() []aggregator.RegionStats {
	return aggregator.ByRegion(s.Snapshot().Inspections)
}

func selectionKey(user string) string {
	return selectionKeyPrefix + user
}

// storedSelection is a user's selection together with the snapshot version
// its ids refer to.
type storedSelection struct {
	Version int64 `json:"version"`
	IDs     []int `json:"ids"`
}

// loadSelection returns the stored selection, or an empty one when it is
// missing, unreadable or was made against another snapshot version.
func (s *DashboardService) loadSelection(ctx context.Context, user string, snap *domain.Snapshot) (storedSelection, error) {
	empty := storedSelection{Version: snap.Version, IDs: []int{}}
	raw, err := s.kv.Get(ctx, selectionKey(user))
	if errors.Is(err, store.ErrMiss) {
		return empty, nil
	}
	if err != nil {
		return empty, fmt.Errorf("failed to load selection: %w", err)
	}
	var sel storedSelection
	if err := json.Unmarshal([]byte(raw), &sel); err != nil {
		s.logger.Warn("Dropping unreadable selection", zap.String("user", user), zap.Error(err))
		return empty, nil
	}
	if sel.Version != snap.Version {
		s.logger.Debug("Dropping selection from an older snapshot",
			zap.String("user", user),
			zap.Int64("selection_version", sel.Version),
			zap.Int64("snapshot_version", snap.Version),
		)
		return empty, nil
	}
	return sel, nil
}

// Selection returns the user's CEEB selection pruned to the pending view for c.
// A selection made against an earlier snapshot reads as empty.
func (s *DashboardService) Selection(ctx context.Context, user string, c filter.Criteria) ([]int, error) {
	snap := s.Snapshot()
	sel, err := s.loadSelection(ctx, user, snap)
	if err != nil {
		return nil, err
	}
	return filter.Retain(sel.IDs, filter.Pending(snap.Inspections, c)), nil
}

// SetSelection stores ids after pruning them to the pending view for c.
func (s *DashboardService) SetSelection(ctx context.Context, user string, ids []int, c filter.Criteria) ([]int, error) {
	snap := s.Snapshot()
	kept := filter.Retain(ids, filter.Pending(snap.Inspections, c))
	if len(kept) == 0 {
		if err := s.kv.Del(ctx, selectionKey(user)); err != nil {
			return nil, fmt.Errorf("failed to clear selection: %w", err)
		}
		return kept, nil
	}
	raw, err := json.Marshal(storedSelection{Version: snap.Version, IDs: kept})
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, selectionKey(user), string(raw), selectionTTL); err != nil {
		return nil, fmt.Errorf("failed to store selection: %w", err)
	}
	return kept, nil
}

func (s *DashboardService) meta(ctx context.Context, user string) ceeb.Meta {
	m := ceeb.Meta{SubmittedBy: user, GeneratedAt: s.now()}
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.Warn("Using empty CEEB header, settings unavailable", zap.Error(err))
		return m
	}
	m.CompanyName = cfg.CompanyName
	m.TaxID = cfg.TaxID
	if cfg.DefaultTechnician != "" && user == "" {
		m.SubmittedBy = cfg.DefaultTechnician
	}
	return m
}

// Submit sends ids to CEEB and clears the user's stored selection.
func (s *DashboardService) Submit(ctx context.Context, user string, ids []int) (*domain.Submission, error) {
	sub, err := s.ceeb.Submit(ctx, ids, s.meta(ctx, user))
	if err != nil {
		return nil, err
	}
	s.clearSelection(ctx, user)
	return sub, nil
}

// SubmitSelection submits the user's stored selection. The selection must
// belong to the current snapshot.
func (s *DashboardService) SubmitSelection(ctx context.Context, user string) (*domain.Submission, error) {
	sel, err := s.loadSelection(ctx, user, s.Snapshot())
	if err != nil {
		return nil, err
	}
	sub, err := s.ceeb.SubmitVersion(ctx, sel.Version, sel.IDs, s.meta(ctx, user))
	if err != nil {
		return nil, err
	}
	s.clearSelection(ctx, user)
	return sub, nil
}

func (s *DashboardService) clearSelection(ctx context.Context, user string) {
	if err := s.kv.Del(ctx, selectionKey(user)); err != nil {
		s.logger.Warn("Failed to clear selection after submit", zap.String("user", user), zap.Error(err))
	}
}

// CeebXML renders the CEEB document for the pending inspections among ids.
func (s *DashboardService) CeebXML(ctx context.Context, user string, ids []int) ([]byte, error) {
	if len(ids) == 0 {
		return nil, ceeb.ErrEmptySelection
	}
	return ceeb.BuildXML(ceeb.Selected(s.Snapshot(), ids), s.meta(ctx, user))
}

// Health reports the snapshot in use, how many users hold a selection and the
// MQTT link state. A KV failure degrades the status instead of failing.
func (s *DashboardService) Health(ctx context.Context) Health {
	snap := s.Snapshot()
	h := Health{
		Status:          "ok",
		SnapshotVersion: snap.Version,
		GeneratedAt:     snap.GeneratedAt,
		MQTT:            "disabled",
	}
	keys, err := s.kv.ScanKeys(ctx, selectionKeyPrefix+"*")
	if err != nil {
		s.logger.Warn("Counting selections failed", zap.Error(err))
		h.Status = "degraded"
	}
	h.ActiveSelections = len(keys)
	if s.mqtt != nil {
		h.MQTT = "connected"
		if !s.mqtt.IsConnected() {
			h.MQTT = "disconnected"
			h.Status = "degraded"
		}
	}
	return h
}

func (s *DashboardService) Submission(ctx context.Context, id string) (*domain.Submission, error) {
	return s.submissions.Get(ctx, id)
}

func (s *DashboardService) Submissions(ctx context.Context, page, size int) ([]domain.Submission, int, error) {
	return s.submissions.List(ctx, page, size)
}

func (s *DashboardService) Export(ctx context.Context, user, format string, c filter.Criteria) (*export.File, error) {
	return s.exports.Export(ctx, s.Snapshot(), format, c, s.meta(ctx, user))
}

func (s *DashboardService) Settings(ctx context.Context) (domain.Settings, error) {
	return s.settings.Get(ctx)
}

func (s *DashboardService) SaveSettings(ctx context.Context, in domain.Settings) (domain.Settings, error) {
	return s.settings.Save(ctx, in)
}
