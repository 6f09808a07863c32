package export

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/ceeb"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/events"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/filter"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/simulate"
)

// DefaultExportDelay simulated export time.
const DefaultExportDelay = 1500 * time.Millisecond

// ErrUnsupportedFormat no exporter is registered for the requested format.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// File a rendered export.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	Rows        int
}

// Service renders filtered inspections through the registered exporters.
type Service struct {
	exporters map[string]Exporter
	delay     time.Duration
	notifier  events.Notifier
	logger    *zap.Logger
	now       func() time.Time
}

// NewService registers the built-in xlsx, csv and xml exporters.
func NewService(delay time.Duration, notifier events.Notifier, logger *zap.Logger) *Service {
	if notifier == nil {
		notifier = events.Nop{}
	}
	s := &Service{
		exporters: map[string]Exporter{},
		delay:     delay,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
	s.Register(XLSXExporter{})
	s.Register(CSVExporter{})
	s.Register(XMLExporter{})
	return s
}

// Register adds or replaces the exporter for e.Format().
func (s *Service) Register(e Exporter) {
	s.exporters[strings.ToLower(e.Format())] = e
}

// Formats lists registered format names, sorted.
func (s *Service) Formats() []string {
	out := make([]string, 0, len(s.exporters))
	for f := range s.exporters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Export filters the snapshot's inspections by c and renders them as format.
func (s *Service) Export(ctx context.Context, snap *domain.Snapshot, format string, c filter.Criteria, meta ceeb.Meta) (*File, error) {
	e, ok := s.exporters[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	items := filter.Apply(snap.Inspections, c)
	if err := simulate.Wait(ctx, s.delay); err != nil {
		return nil, err
	}

	now := s.now()
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = now
	}
	data, err := e.Render(items, meta)
	if err != nil {
		s.logger.Error("Failed to render export",
			zap.String("format", e.Format()),
			zap.Error(err),
		)
		return nil, err
	}

	file := &File{
		Name:        fmt.Sprintf("inspekcje_%s.%s", now.Format("2006-01-02"), e.Extension()),
		ContentType: e.ContentType(),
		Data:        data,
		Rows:        len(items),
	}
	if err := s.notifier.Publish(ctx, events.ExportCompleted, map[string]any{
		"format": e.Format(),
		"rows":   file.Rows,
		"file":   file.Name,
	}); err != nil {
		s.logger.Warn("Failed to publish export event", zap.Error(err))
	}
	return file, nil
}
