package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/erwannT/callForPapers/internal/domain"
)

type configService struct {
	configRepo     domain.ConfigRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewConfigService creates the application ConfigService. There is no
// in-process cache: every read goes to the store, so the open flag is never
// a stale global.
func NewConfigService(configRepo domain.ConfigRepository, logger *slog.Logger, timeout time.Duration) domain.ConfigService {
	return &configService{
		configRepo:     configRepo,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// AppConfig assembles the settings read model from the individual keys.
// Missing keys yield empty fields; the boolean parse of "" is false. The
// result is always marked configured, even when the store is empty.
func (s *configService) AppConfig(ctx context.Context) (*domain.ApplicationSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	settings := &domain.ApplicationSettings{Configured: true}
	reads := []struct {
		key  string
		dest *string
	}{
		{domain.ConfigKeyEventName, &settings.EventName},
		{domain.ConfigKeyCommunity, &settings.Community},
		{domain.ConfigKeyDate, &settings.Date},
		{domain.ConfigKeyDecisionDate, &settings.DecisionDate},
		{domain.ConfigKeyReleaseDate, &settings.ReleaseDate},
	}
	for _, r := range reads {
		value, err := s.configRepo.FindValueByKey(ctx, r.key)
		if err != nil {
			return nil, fmt.Errorf("read config %q: %w", r.key, err)
		}
		*r.dest = value
	}
	open, err := s.configRepo.FindValueByKey(ctx, domain.ConfigKeyOpen)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", domain.ConfigKeyOpen, err)
	}
	settings.Open, _ = strconv.ParseBool(open)
	return settings, nil
}

// IsCfpOpen reads the open flag from the store.
func (s *configService) IsCfpOpen(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	value, err := s.configRepo.FindValueByKey(ctx, domain.ConfigKeyOpen)
	if err != nil {
		return false, fmt.Errorf("read config %q: %w", domain.ConfigKeyOpen, err)
	}
	open, _ := strconv.ParseBool(value)
	return open, nil
}

// OpenCfp sets the open flag to "true". Idempotent.
func (s *configService) OpenCfp(ctx context.Context) error {
	return s.setOpen(ctx, "true")
}

// CloseCfp sets the open flag to "false". Idempotent.
func (s *configService) CloseCfp(ctx context.Context) error {
	return s.setOpen(ctx, "false")
}

func (s *configService) setOpen(ctx context.Context, value string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.configRepo.Set(ctx, domain.ConfigKeyOpen, value); err != nil {
		return fmt.Errorf("set config %q: %w", domain.ConfigKeyOpen, err)
	}
	s.logger.Info("cfp open flag changed", "open", value)
	return nil
}
