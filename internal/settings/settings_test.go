package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/repository"
)

type failingRepo struct{ err error }

func (f failingRepo) Get(context.Context) (*domain.Settings, error) { return nil, f.err }
func (f failingRepo) Save(context.Context, *domain.Settings) error  { return f.err }

type recordingNotifier struct{ events []string }

func (r *recordingNotifier) Publish(_ context.Context, eventType string, _ any) error {
	r.events = append(r.events, eventType)
	return nil
}

func validSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.CompanyName = "Kominiarz Sp. z o.o."
	s.Email = "biuro@kominiarz.pl"
	s.TaxID = "123-456-78-90"
	return s
}

func TestGet_Defaults(t *testing.T) {
	svc := NewService(repository.NewMemorySettingsRepo(), 0, nil, zap.NewNop())
	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.DefaultSettings(), got)
}

func TestGet_RepoError(t *testing.T) {
	svc := NewService(failingRepo{err: errors.New("db down")}, 0, nil, zap.NewNop())
	_, err := svc.Get(context.Background())
	require.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	n := &recordingNotifier{}
	svc := NewService(repository.NewMemorySettingsRepo(), 0, n, zap.NewNop())
	fixed := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	in := validSettings()
	in.Theme = " Dark "
	saved, err := svc.Save(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "1234567890", saved.TaxID)
	require.Equal(t, "dark", saved.Theme)
	require.Equal(t, fixed, saved.UpdatedAt)
	require.Equal(t, []string{"settings.saved"}, n.events)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, saved, got)
}

func TestSave_Validation(t *testing.T) {
	svc := NewService(repository.NewMemorySettingsRepo(), 0, nil, zap.NewNop())
	cases := map[string]func(*domain.Settings){
		"empty company":    func(s *domain.Settings) { s.CompanyName = "  " },
		"bad email":        func(s *domain.Settings) { s.Email = "not-an-email" },
		"email no domain":  func(s *domain.Settings) { s.Email = "a@localhost" },
		"email with name":  func(s *domain.Settings) { s.Email = "Jan <jan@x.pl>" },
		"short nip":        func(s *domain.Settings) { s.TaxID = "12345" },
		"reminder zero":    func(s *domain.Settings) { s.ReminderDays = 0 },
		"reminder eight":   func(s *domain.Settings) { s.ReminderDays = 8 },
		"unknown language": func(s *domain.Settings) { s.Language = "de" },
		"unknown theme":    func(s *domain.Settings) { s.Theme = "neon" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validSettings()
			mutate(&in)
			_, err := svc.Save(context.Background(), in)
			require.ErrorIs(t, err, ErrInvalidSettings)
		})
	}
}

func TestSave_ReminderBounds(t *testing.T) {
	svc := NewService(repository.NewMemorySettingsRepo(), 0, nil, zap.NewNop())
	for _, days := range []int{MinReminderDays, MaxReminderDays} {
		in := validSettings()
		in.ReminderDays = days
		_, err := svc.Save(context.Background(), in)
		require.NoError(t, err)
	}
}

func TestSave_CancelledDuringDelay(t *testing.T) {
	repo := repository.NewMemorySettingsRepo()
	svc := NewService(repo, time.Minute, nil, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Save(ctx, validSettings())
	require.ErrorIs(t, err, context.Canceled)
	_, err = repo.Get(context.Background())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSave_RepoError(t *testing.T) {
	svc := NewService(failingRepo{err: errors.New("db down")}, 0, nil, zap.NewNop())
	_, err := svc.Save(context.Background(), validSettings())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidSettings)
}
