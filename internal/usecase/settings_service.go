package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/dietpop-lineup/internal/domain/settings"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/kvstore"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/logging"
)

// SettingsService keeps each owner's preferences. Settings are always
// persisted; AutoSave only gates the lineup and custom pops. While the store
// is unavailable Get returns uncached defaults and Update fails, so stored
// preferences are not replaced by defaults.
type SettingsService struct {
	repo     settings.Repository
	mirror   *Mirror
	logger   *logging.Logger
	sessions sessions[settings.Settings]
}

func NewSettingsService(repo settings.Repository, mirror *Mirror, logger *logging.Logger) *SettingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SettingsService{
		repo:   repo,
		mirror: mirror,
		logger: logger,
	}
}

func (s *SettingsService) Get(ctx context.Context, ownerID string) (settings.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.Get")
	defer span.End()

	ownerID, err := normalizeOwner(ownerID)
	if err != nil {
		return settings.Settings{}, err
	}

	sess := s.sessions.get(ownerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := s.load(ctx, ownerID, sess); err != nil {
		return settings.Default(), nil
	}
	return sess.value, nil
}

// AutoSave reports whether lineup and custom pop changes should be persisted.
// Invalid owners report true so callers fall back to persisting.
func (s *SettingsService) AutoSave(ctx context.Context, ownerID string) bool {
	current, err := s.Get(ctx, ownerID)
	if err != nil {
		return true
	}
	return current.AutoSave
}

func (s *SettingsService) Update(ctx context.Context, ownerID string, patch settings.Patch) (settings.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.Update")
	defer span.End()

	ownerID, err := normalizeOwner(ownerID)
	if err != nil {
		return settings.Settings{}, err
	}

	sess := s.sessions.get(ownerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := s.load(ctx, ownerID, sess); err != nil {
		return settings.Settings{}, err
	}
	next := sess.value.Apply(patch)
	if err := next.Validate(); err != nil {
		return settings.Settings{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sess.value = next
	s.save(ctx, ownerID, next)
	return next, nil
}

// reset restores defaults in memory and deletes the stored value.
func (s *SettingsService) reset(ctx context.Context, ownerID string) {
	sess := s.sessions.get(ownerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.value = settings.Default()
	sess.loaded = true
	persist(ctx, s.mirror, s.logger, settingsMirrorKey(ownerID), func(ctx context.Context) error {
		return s.repo.Delete(ctx, ownerID)
	})
}

func (s *SettingsService) load(ctx context.Context, ownerID string, sess *session[settings.Settings]) error {
	if sess.loaded {
		return nil
	}

	item, exists, err := s.repo.Get(ctx, ownerID)
	switch {
	case kvstore.IsUnavailable(err):
		s.logger.WarnContext(ctx, "settings store unavailable", "owner_id", ownerID, "error", err)
		return fmt.Errorf("%w: load settings: %v", ErrDependencyUnavailable, err)
	case err != nil:
		s.logger.WarnContext(ctx, "load settings failed, using defaults", "owner_id", ownerID, "error", err)
		item = settings.Default()
	case !exists:
		item = settings.Default()
	}

	sess.value = item
	sess.loaded = true
	return nil
}

func (s *SettingsService) save(ctx context.Context, ownerID string, item settings.Settings) {
	persist(ctx, s.mirror, s.logger, settingsMirrorKey(ownerID), func(ctx context.Context) error {
		return s.repo.Save(ctx, ownerID, item)
	})
}

func settingsMirrorKey(ownerID string) string {
	return "settings/" + ownerID
}
