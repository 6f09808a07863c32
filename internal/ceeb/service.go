package ceeb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/events"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/snapshot"
)

var (
	// ErrEmptySelection nothing was selected for submission.
	ErrEmptySelection = errors.New("no inspections selected")
	// ErrNothingPending none of the selected inspections is still pending.
	ErrNothingPending = errors.New("selected inspections are not pending")
	// ErrSnapshotChanged the snapshot was regenerated while a submission was in flight.
	ErrSnapshotChanged = errors.New("snapshot changed during submission")
)

// SubmissionRecorder persists submission records.
type SubmissionRecorder interface {
	Create(ctx context.Context, s *domain.Submission) error
}

// Service submits selected inspections to CEEB and records the outcome.
type Service struct {
	store     *snapshot.Store
	submitter Submitter
	records   SubmissionRecorder
	notifier  events.Notifier
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(store *snapshot.Store, submitter Submitter, records SubmissionRecorder, notifier events.Notifier, logger *zap.Logger) *Service {
	if notifier == nil {
		notifier = events.Nop{}
	}
	return &Service{
		store:     store,
		submitter: submitter,
		records:   records,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// Selected returns the pending inspections of the current snapshot whose id is in ids,
// in snapshot order.
func Selected(snap *domain.Snapshot, ids []int) []domain.Inspection {
	want := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := []domain.Inspection{}
	for _, in := range snap.Inspections {
		if _, ok := want[in.ID]; ok && in.CeebStatus == domain.CeebPending {
			out = append(out, in)
		}
	}
	return out
}

// Submit sends the selected pending inspections to CEEB. On success they are
// marked reported and a pending report is appended to the snapshot. When the
// snapshot was regenerated in the meantime the submission is still recorded
// against the version it was built from, and the new snapshot is left alone.
func (s *Service) Submit(ctx context.Context, ids []int, meta Meta) (*domain.Submission, error) {
	return s.SubmitVersion(ctx, 0, ids, meta)
}

// SubmitVersion is Submit for ids picked from snapshot version. It fails with
// ErrSnapshotChanged when that version is no longer current. A zero version
// accepts whatever snapshot is current.
func (s *Service) SubmitVersion(ctx context.Context, version int64, ids []int, meta Meta) (*domain.Submission, error) {
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}

	current := s.store.Current()
	if version != 0 && current.Version != version {
		return nil, ErrSnapshotChanged
	}
	selected := Selected(current, ids)
	if len(selected) == 0 {
		return nil, ErrNothingPending
	}

	now := s.now()
	meta.GeneratedAt = now
	document, err := BuildXML(selected, meta)
	if err != nil {
		return nil, err
	}

	ref, err := s.submitter.Submit(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("failed to submit to CEEB: %w", err)
	}

	submitted := make([]int, 0, len(selected))
	for _, in := range selected {
		submitted = append(submitted, in.ID)
	}

	version = current.Version
	var reportID int
	_, err = s.store.Update(func(snap *domain.Snapshot) error {
		if snap.Version != version {
			return ErrSnapshotChanged
		}
		reportID = markReported(snap, submitted, meta.SubmittedBy, now)
		return nil
	})
	switch {
	case errors.Is(err, ErrSnapshotChanged):
		s.logger.Warn("Snapshot regenerated during CEEB submission, inspections not marked",
			zap.Int64("submitted_version", version),
			zap.Int64("current_version", s.store.Current().Version),
		)
	case err != nil:
		return nil, err
	}

	sub := &domain.Submission{
		ID:              uuid.NewString(),
		SubmittedAt:     now,
		SubmittedBy:     meta.SubmittedBy,
		InspectionIDs:   submitted,
		SnapshotVersion: version,
		ReportID:        reportID,
		ExternalRef:     ref,
	}
	if err := s.records.Create(ctx, sub); err != nil {
		s.logger.Error("Failed to store CEEB submission",
			zap.String("submission_id", sub.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	if err := s.notifier.Publish(ctx, events.CeebSubmitted, sub); err != nil {
		s.logger.Warn("Failed to publish CEEB submission event", zap.Error(err))
	}

	s.logger.Info("CEEB submission completed",
		zap.String("submission_id", sub.ID),
		zap.String("reference", ref),
		zap.Int("inspection_count", len(submitted)),
	)
	return sub, nil
}

// markReported flips the given ids to reported and appends a report for them.
// It returns the new report id, or 0 when none of the ids was still pending.
func markReported(snap *domain.Snapshot, ids []int, by string, now time.Time) int {
	want := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	buildings := []domain.ReportBuilding{}
	count := 0
	for i := range snap.Inspections {
		in := &snap.Inspections[i]
		if _, ok := want[in.ID]; !ok || in.CeebStatus != domain.CeebPending {
			continue
		}
		in.CeebStatus = domain.CeebReported
		count++
		buildings = append(buildings, domain.ReportBuilding{Address: in.Address, City: in.City})
	}
	if count == 0 {
		return 0
	}

	reportID := 1
	for _, r := range snap.Reports {
		if r.ID >= reportID {
			reportID = r.ID + 1
		}
	}
	snap.Reports = append(snap.Reports, domain.CeebReport{
		ID:              reportID,
		SubmissionDate:  domain.FormatDate(now),
		InspectionCount: count,
		Status:          domain.ReportPending,
		SubmittedBy:     by,
		Buildings:       buildings,
	})
	return reportID
}
