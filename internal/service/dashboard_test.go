package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/ceeb"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/export"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/filter"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/repository"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/settings"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/snapshot"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/store"
)

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Version: 1,
		Inspections: []domain.Inspection{
			{ID: 1, City: "Kraków", CeebStatus: domain.CeebPending, Date: "12.10.2026", Result: domain.ResultPositive},
			{ID: 2, City: "Gdańsk", CeebStatus: domain.CeebReported, Date: "10.10.2026", Result: domain.ResultNegative},
			{ID: 3, City: "Kraków", CeebStatus: domain.CeebPending, Date: "14.10.2026", Result: domain.ResultPositive},
			{ID: 4, City: "Łódź", CeebStatus: domain.CeebPending, Date: "17.10.2026", Result: domain.ResultConditional},
		},
	}
}

func newTestDashboard(t *testing.T) (*DashboardService, store.KV, *repository.MemorySubmissionsRepo) {
	t.Helper()
	logger := zap.NewNop()
	st := snapshot.NewStore()
	st.Replace(testSnapshot())
	kv := store.NewMemoryKV()
	subs := repository.NewMemorySubmissionsRepo()

	svc := NewDashboardService(Deps{
		Snapshots:   st,
		KV:          kv,
		Ceeb:        ceeb.NewService(st, ceeb.NewSimulatedSubmitter(0), subs, nil, logger),
		Exports:     export.NewService(0, nil, logger),
		Settings:    settings.NewService(repository.NewMemorySettingsRepo(), 0, nil, logger),
		Submissions: subs,
		Logger:      logger,
		Seed:        7,
	})
	svc.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }
	return svc, kv, subs
}

func TestSelection_PrunedToPendingView(t *testing.T) {
	svc, _, _ := newTestDashboard(t)
	ctx := context.Background()

	empty, err := svc.Selection(ctx, "jan", filter.Criteria{})
	require.NoError(t, err)
	require.Empty(t, empty)

	kept, err := svc.SetSelection(ctx, "jan", []int{4, 2, 1, 99, 1}, filter.Criteria{})
	require.NoError(t, err)
	require.Equal(t, []int{4, 1}, kept)

	got, err := svc.Selection(ctx, "jan", filter.Criteria{City: "kraków"})
	require.NoError(t, err)
	require.Equal(t, []int{1}, got)

	other, err := svc.Selection(ctx, "ola", filter.Criteria{})
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestSetSelection_EmptyClears(t *testing.T) {
	svc, kv, _ := newTestDashboard(t)
	ctx := context.Background()

	_, err := svc.SetSelection(ctx, "jan", []int{1}, filter.Criteria{})
	require.NoError(t, err)
	_, err = svc.SetSelection(ctx, "jan", []int{2}, filter.Criteria{})
	require.NoError(t, err)

	_, err = kv.Get(ctx, selectionKey("jan"))
	require.ErrorIs(t, err, store.ErrMiss)
}

func TestSubmit_ClearsSelection(t *testing.T) {
	svc, kv, subs := newTestDashboard(t)
	ctx := context.Background()

	_, err := svc.SetSelection(ctx, "jan", []int{1, 3}, filter.Criteria{})
	require.NoError(t, err)

	sub, err := svc.Submit(ctx, "jan", []int{1, 3})
	require.NoError(t, err)
	require.Equal(t, []int{1, 3}, sub.InspectionIDs)

	_, err = kv.Get(ctx, selectionKey("jan"))
	require.ErrorIs(t, err, store.ErrMiss)

	list, total, err := svc.Submissions(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, sub.ID, list[0].ID)
	_, err = subs.Get(ctx, sub.ID)
	require.NoError(t, err)

	require.Len(t, svc.Pending(filter.Criteria{}), 1)
	require.Len(t, svc.Reports(), 1)
}

func TestSelection_DroppedAfterRefresh(t *testing.T) {
	svc, _, _ := newTestDashboard(t)
	ctx := context.Background()

	_, err := svc.SetSelection(ctx, "jan", []int{1, 3}, filter.Criteria{})
	require.NoError(t, err)

	// same ids, different inspections
	fresh := testSnapshot()
	fresh.Version = 2
	svc.snapshots.Replace(fresh)

	got, err := svc.Selection(ctx, "jan", filter.Criteria{})
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = svc.SubmitSelection(ctx, "jan")
	require.ErrorIs(t, err, ceeb.ErrEmptySelection)
	require.Len(t, svc.Pending(filter.Criteria{}), 3)
}

func TestSubmitSelection(t *testing.T) {
	svc, kv, _ := newTestDashboard(t)
	ctx := context.Background()

	_, err := svc.SetSelection(ctx, "jan", []int{3, 4}, filter.Criteria{})
	require.NoError(t, err)

	sub, err := svc.SubmitSelection(ctx, "jan")
	require.NoError(t, err)
	require.Equal(t, []int{3, 4}, sub.InspectionIDs)
	require.Equal(t, int64(1), sub.SnapshotVersion)

	_, err = kv.Get(ctx, selectionKey("jan"))
	require.ErrorIs(t, err, store.ErrMiss)
}

type fakeBroker struct{ connected bool }

func (f fakeBroker) IsConnected() bool { return f.connected }

func TestHealth(t *testing.T) {
	svc, _, _ := newTestDashboard(t)
	ctx := context.Background()

	h := svc.Health(ctx)
	require.Equal(t, "ok", h.Status)
	require.Equal(t, "disabled", h.MQTT)
	require.Equal(t, int64(1), h.SnapshotVersion)
	require.Zero(t, h.ActiveSelections)

	_, err := svc.SetSelection(ctx, "jan", []int{1}, filter.Criteria{})
	require.NoError(t, err)
	_, err = svc.SetSelection(ctx, "ola", []int{3}, filter.Criteria{})
	require.NoError(t, err)
	svc.mqtt = fakeBroker{connected: true}

	h = svc.Health(ctx)
	require.Equal(t, "ok", h.Status)
	require.Equal(t, "connected", h.MQTT)
	require.Equal(t, 2, h.ActiveSelections)

	svc.mqtt = fakeBroker{}
	h = svc.Health(ctx)
	require.Equal(t, "degraded", h.Status)
	require.Equal(t, "disconnected", h.MQTT)
}

func TestSubmission_Get(t *testing.T) {
	svc, _, _ := newTestDashboard(t)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, "jan", []int{4})
	require.NoError(t, err)
	got, err := svc.Submission(ctx, sub.ID)
	require.NoError(t, err)
	require.Equal(t, []int{4}, got.InspectionIDs)

	_, err = svc.Submission(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubmit_Empty(t *testing.T) {
	svc, _, _ := newTestDashboard(t)
	_, err := svc.Submit(context.Background(), "jan", nil)
	require.ErrorIs(t, err, ceeb.ErrEmptySelection)

	_, err = svc.CeebXML(context.Background(), "jan", nil)
	require.ErrorIs(t, err, ceeb.ErrEmptySelection)
}

func TestCeebXML_UsesSettings(t *testing.T) {
	svc, _, _ := newTestDashboard(t)
	doc, err := svc.CeebXML(context.Background(), "jan", []int{1, 2, 4})
	require.NoError(t, err)
	require.Contains(t, string(doc), `<Inspections count="2">`)
	require.Contains(t, string(doc), "<CompanyName>"+domain.DefaultSettings().CompanyName+"</CompanyName>")
	require.Contains(t, string(doc), "<Person>jan</Person>")
}

func TestInspection(t *testing.T) {
	svc, _, _ := newTestDashboard(t)
	in, err := svc.Inspection(3)
	require.NoError(t, err)
	require.Equal(t, "Kraków", in.City)

	_, err = svc.Inspection(42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReadViews(t *testing.T) {
	svc, _, _ := newTestDashboard(t)

	stats := svc.Stats()
	require.Equal(t, 4, stats.TotalInspections)
	require.Equal(t, 3, stats.PendingCeeb)

	risky := svc.Risk()
	require.Len(t, risky, 2)
	require.Equal(t, 1, risky[0].InspectionID)
	require.Equal(t, 3, risky[1].InspectionID)

	sum := 0
	for _, r := range svc.Regions() {
		sum += r.Total
	}
	require.Equal(t, 4, sum)

	require.NotEmpty(t, svc.Insights())
	require.Len(t, svc.Inspections(filter.Criteria{Result: "positive"}), 2)
}
