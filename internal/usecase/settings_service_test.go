package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/dietpop-lineup/internal/domain/settings"
	"github.com/riskibarqy/dietpop-lineup/internal/infrastructure/repository/kv"
	"github.com/riskibarqy/dietpop-lineup/internal/infrastructure/repository/memory"
	settingsmock "github.com/riskibarqy/dietpop-lineup/internal/mocks/domain/settings"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/logging"
)

func settingsPatchAutoSave(v bool) settings.Patch {
	return settings.Patch{AutoSave: &v}
}

func TestSettingsService_DefaultsThenUpdate(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := t.Context()

	got, err := f.settings.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, settings.Default(), got)
	require.True(t, f.settings.AutoSave(ctx, "alice"))

	light := settings.ThemeLight
	got, err = f.settings.Update(ctx, "alice", settings.Patch{Theme: &light})
	require.NoError(t, err)
	require.Equal(t, settings.ThemeLight, got.Theme)
	require.Equal(t, settings.ViewGrid, got.PreferredView)
	require.True(t, got.AutoSave)

	f.mirror.Wait()
	stored, found, err := kv.NewSettingsRepository(f.store).Get(ctx, "alice")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, got, stored)
}

func TestSettingsService_UpdateRejectsUnknownValues(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := t.Context()

	neon := settings.Theme("neon")
	_, err := f.settings.Update(ctx, "alice", settings.Patch{Theme: &neon})
	require.ErrorIs(t, err, ErrInvalidInput)

	got, err := f.settings.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, settings.Default(), got)
}

func TestSettingsService_LoadErrorUsesDefaults(t *testing.T) {
	repo := settingsmock.NewRepository(t)
	repo.
		On("Get", mock.Anything, "alice").
		Return(settings.Settings{}, false, errors.New("timeout")).
		Once()

	service := NewSettingsService(repo, nil, logging.NewNop())
	got, err := service.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, settings.Default(), got)

	// Loaded once per owner.
	_, err = service.Get(context.Background(), "alice")
	require.NoError(t, err)
}

func TestSettingsService_InvalidOwnerStillAutoSaves(t *testing.T) {
	service := NewSettingsService(settingsmock.NewRepository(t), nil, logging.NewNop())
	require.True(t, service.AutoSave(context.Background(), "no spaces allowed"))
}

func TestSettingsService_UnavailableStoreKeepsStoredSettings(t *testing.T) {
	ctx := context.Background()
	store := &outageStore{KVStore: memory.NewKVStore()}
	repo := kv.NewSettingsRepository(store)

	stored := settings.Default()
	stored.Theme = settings.ThemeLight
	stored.AutoSave = false
	require.NoError(t, repo.Save(ctx, "alice", stored))

	service := NewSettingsService(repo, nil, logging.NewNop())
	store.failGets.Store(2)

	got, err := service.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, settings.Default(), got)

	grid := settings.ViewGrid
	_, err = service.Update(ctx, "alice", settings.Patch{PreferredView: &grid})
	require.ErrorIs(t, err, ErrDependencyUnavailable)

	kept, found, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, stored, kept)

	got, err = service.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, stored, got)
}
