package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erwannT/callForPapers/internal/domain"
)

// fakeConfigRepo is an in-memory ConfigRepository.
type fakeConfigRepo struct {
	values map[string]string
}

func newFakeConfigRepo(values map[string]string) *fakeConfigRepo {
	if values == nil {
		values = make(map[string]string)
	}
	return &fakeConfigRepo{values: values}
}

func (f *fakeConfigRepo) FindValueByKey(ctx context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeConfigRepo) Set(ctx context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func TestConfigService_AppConfig(t *testing.T) {
	repo := newFakeConfigRepo(map[string]string{
		"eventName":    "GopherConf",
		"community":    "Gophers",
		"date":         "2026-10-01",
		"decisionDate": "2026-08-01",
		"releaseDate":  "2026-06-01",
		"open":         "true",
	})
	svc := NewConfigService(repo, discardLogger, 2*time.Second)

	settings, err := svc.AppConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "GopherConf", settings.EventName)
	assert.Equal(t, "Gophers", settings.Community)
	assert.Equal(t, "2026-10-01", settings.Date)
	assert.Equal(t, "2026-08-01", settings.DecisionDate)
	assert.Equal(t, "2026-06-01", settings.ReleaseDate)
	assert.True(t, settings.Open)
	assert.True(t, settings.Configured)
}

func TestConfigService_AppConfig_MissingKeys(t *testing.T) {
	svc := NewConfigService(newFakeConfigRepo(nil), discardLogger, 2*time.Second)

	settings, err := svc.AppConfig(context.Background())
	require.NoError(t, err)
	assert.Empty(t, settings.EventName)
	assert.False(t, settings.Open, "missing open flag parses as closed")
	assert.True(t, settings.Configured, "settings are always marked configured, even from an empty store")
}

func TestConfigService_OpenCloseRoundTrip(t *testing.T) {
	repo := newFakeConfigRepo(nil)
	svc := NewConfigService(repo, discardLogger, 2*time.Second)

	require.NoError(t, svc.OpenCfp(context.Background()))
	open, err := svc.IsCfpOpen(context.Background())
	require.NoError(t, err)
	assert.True(t, open)

	require.NoError(t, svc.CloseCfp(context.Background()))
	open, err = svc.IsCfpOpen(context.Background())
	require.NoError(t, err)
	assert.False(t, open)

	// Idempotent: closing again stays closed.
	require.NoError(t, svc.CloseCfp(context.Background()))
	open, err = svc.IsCfpOpen(context.Background())
	require.NoError(t, err)
	assert.False(t, open)
}

func TestConfigService_IsCfpOpen_NonBooleanText(t *testing.T) {
	repo := newFakeConfigRepo(map[string]string{domain.ConfigKeyOpen: "banana"})
	svc := NewConfigService(repo, discardLogger, 2*time.Second)

	open, err := svc.IsCfpOpen(context.Background())
	require.NoError(t, err)
	assert.False(t, open)
}
