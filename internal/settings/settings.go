package settings

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/events"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/repository"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/simulate"
)

// DefaultSaveDelay simulated save time.
const DefaultSaveDelay = time.Second

const (
	MinReminderDays = 1
	MaxReminderDays = 7
)

// ErrInvalidSettings wraps every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

var (
	languages = map[string]bool{"pl": true, "en": true}
	themes    = map[string]bool{"light": true, "dark": true, "system": true}
)

type Service struct {
	repo     repository.SettingsRepository
	delay    time.Duration
	notifier events.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(repo repository.SettingsRepository, delay time.Duration, notifier events.Notifier, logger *zap.Logger) *Service {
	if notifier == nil {
		notifier = events.Nop{}
	}
	return &Service{repo: repo, delay: delay, notifier: notifier, logger: logger, now: time.Now}
}

// Get returns the stored settings or the defaults when nothing was saved yet.
func (s *Service) Get(ctx context.Context) (domain.Settings, error) {
	stored, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return *stored, nil
}

// Save validates and stores in after the simulated delay.
func (s *Service) Save(ctx context.Context, in domain.Settings) (domain.Settings, error) {
	normalize(&in)
	if err := Validate(in); err != nil {
		return domain.Settings{}, err
	}
	if err := simulate.Wait(ctx, s.delay); err != nil {
		return domain.Settings{}, err
	}

	in.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, &in); err != nil {
		s.logger.Error("Failed to save settings", zap.Error(err))
		return domain.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	if err := s.notifier.Publish(ctx, events.SettingsSaved, in); err != nil {
		s.logger.Warn("Failed to publish settings event", zap.Error(err))
	}
	return in, nil
}

func normalize(in *domain.Settings) {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.TaxID = strings.NewReplacer("-", "", " ", "").Replace(in.TaxID)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.DefaultTechnician = strings.TrimSpace(in.DefaultTechnician)
	in.Language = strings.ToLower(strings.TrimSpace(in.Language))
	in.Theme = strings.ToLower(strings.TrimSpace(in.Theme))
	if in.Language == "" {
		in.Language = "pl"
	}
	if in.Theme == "" {
		in.Theme = "light"
	}
}

// Validate checks required fields, email shape and the reminder window.
func Validate(in domain.Settings) error {
	if in.CompanyName == "" {
		return fmt.Errorf("%w: company name is required", ErrInvalidSettings)
	}
	addr, err := mail.ParseAddress(in.Email)
	if err != nil || addr.Address != in.Email || !strings.Contains(in.Email[strings.LastIndex(in.Email, "@")+1:], ".") {
		return fmt.Errorf("%w: email %q is not valid", ErrInvalidSettings, in.Email)
	}
	if in.TaxID != "" && !validNIP(in.TaxID) {
		return fmt.Errorf("%w: NIP must have 10 digits", ErrInvalidSettings)
	}
	if in.ReminderDays < MinReminderDays || in.ReminderDays > MaxReminderDays {
		return fmt.Errorf("%w: reminder days must be between %d and %d", ErrInvalidSettings, MinReminderDays, MaxReminderDays)
	}
	if !languages[in.Language] {
		return fmt.Errorf("%w: unsupported language %q", ErrInvalidSettings, in.Language)
	}
	if !themes[in.Theme] {
		return fmt.Errorf("%w: unsupported theme %q", ErrInvalidSettings, in.Theme)
	}
	return nil
}

func validNIP(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
