package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/dietpop-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dietpop-lineup/internal/domain/pop"
	idgen "github.com/riskibarqy/dietpop-lineup/internal/platform/id"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/kvstore"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/logging"
)

type popCatalog interface {
	GetByID(ctx context.Context, ownerID, popID string) (pop.Pop, bool, error)
	ListAll(ctx context.Context, ownerID string) ([]pop.Pop, error)
}

// LineupSummary pairs the current lineup with its derived statistics.
type LineupSummary struct {
	Lineup lineup.Lineup
	Stats  lineup.Stats
}

// LineupService owns the current lineup of every owner. The lineup is loaded
// lazily from the repository; a missing or malformed value starts empty. While
// the store is unavailable reads get an uncached empty lineup and mutations fail
// with ErrDependencyUnavailable, so the stored value is never overwritten.
type LineupService struct {
	repo     lineup.Repository
	catalog  popCatalog
	idGen    idgen.Generator
	mirror   *Mirror
	logger   *logging.Logger
	now      func() time.Time
	autoSave autoSaver
	sessions sessions[lineup.Lineup]
}

func NewLineupService(
	repo lineup.Repository,
	catalog popCatalog,
	idGen idgen.Generator,
	mirror *Mirror,
	logger *logging.Logger,
) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LineupService{
		repo:    repo,
		catalog: catalog,
		idGen:   idGen,
		mirror:  mirror,
		logger:  logger,
		now:     time.Now,
	}
}

// SetAutoSaver gates lineup persistence on the owner's settings. When unset
// every change is persisted.
func (s *LineupService) SetAutoSaver(saver autoSaver) {
	s.autoSave = saver
}

func (s *LineupService) Current(ctx context.Context, ownerID string) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Current")
	defer span.End()

	ownerID, err := normalizeOwner(ownerID)
	if err != nil {
		return lineup.Lineup{}, err
	}

	sess := s.sessions.get(ownerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := s.load(ctx, ownerID, sess); err != nil {
		if errors.Is(err, ErrDependencyUnavailable) {
			// Not cached: the next call reads the store again.
			return s.newLineup()
		}
		return lineup.Lineup{}, err
	}
	return sess.value, nil
}

// Assign places popID at pos. The pop must exist in the owner's catalog.
func (s *LineupService) Assign(ctx context.Context, ownerID, popID string, pos lineup.Position) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Assign")
	defer span.End()

	popID = strings.TrimSpace(popID)
	if popID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: pop id is required", ErrInvalidInput)
	}
	if err := validatePositions(pos); err != nil {
		return lineup.Lineup{}, err
	}

	_, found, err := s.catalog.GetByID(ctx, ownerID, popID)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("lookup pop: %w", err)
	}
	if !found {
		return lineup.Lineup{}, fmt.Errorf("%w: pop id=%s", ErrNotFound, popID)
	}

	return s.mutate(ctx, ownerID, func(l lineup.Lineup, now time.Time) (lineup.Lineup, bool) {
		return lineup.Assign(l, popID, pos, now), true
	})
}

func (s *LineupService) Remove(ctx context.Context, ownerID string, pos lineup.Position) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Remove")
	defer span.End()

	if err := validatePositions(pos); err != nil {
		return lineup.Lineup{}, err
	}
	return s.mutate(ctx, ownerID, func(l lineup.Lineup, now time.Time) (lineup.Lineup, bool) {
		return lineup.Remove(l, pos, now), true
	})
}

func (s *LineupService) Swap(ctx context.Context, ownerID string, a, b lineup.Position) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Swap")
	defer span.End()

	if err := validatePositions(a, b); err != nil {
		return lineup.Lineup{}, err
	}
	return s.mutate(ctx, ownerID, func(l lineup.Lineup, now time.Time) (lineup.Lineup, bool) {
		return lineup.Swap(l, a, b, now), true
	})
}

// Move relocates the pop at from, swapping with whatever occupies to. Moving
// out of an empty slot changes nothing.
func (s *LineupService) Move(ctx context.Context, ownerID string, from, to lineup.Position) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Move")
	defer span.End()

	if err := validatePositions(from, to); err != nil {
		return lineup.Lineup{}, err
	}
	return s.mutate(ctx, ownerID, func(l lineup.Lineup, now time.Time) (lineup.Lineup, bool) {
		if l.At(from) == "" {
			return l, false
		}
		return lineup.Move(l, from, to, now), true
	})
}

func (s *LineupService) Clear(ctx context.Context, ownerID string) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Clear")
	defer span.End()

	return s.mutate(ctx, ownerID, func(l lineup.Lineup, now time.Time) (lineup.Lineup, bool) {
		return lineup.Clear(l, now), true
	})
}

func (s *LineupService) Rename(ctx context.Context, ownerID, name string) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Rename")
	defer span.End()

	name = strings.TrimSpace(name)
	if len([]rune(name)) > 100 {
		return lineup.Lineup{}, fmt.Errorf("%w: lineup name must be at most 100 characters", ErrInvalidInput)
	}
	return s.mutate(ctx, ownerID, func(l lineup.Lineup, now time.Time) (lineup.Lineup, bool) {
		return lineup.Rename(l, name, now), true
	})
}

// RemoveItem empties whichever slot holds itemID and reports whether one did.
func (s *LineupService) RemoveItem(ctx context.Context, ownerID, itemID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.RemoveItem")
	defer span.End()

	removed := false
	_, err := s.mutate(ctx, ownerID, func(l lineup.Lineup, now time.Time) (lineup.Lineup, bool) {
		l, removed = lineup.RemoveItem(l, strings.TrimSpace(itemID), now)
		return l, removed
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// Summary returns the lineup with completion, per-line fill, brand mix and
// average caffeine resolved against the owner's catalog.
func (s *LineupService) Summary(ctx context.Context, ownerID string) (LineupSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Summary")
	defer span.End()

	current, err := s.Current(ctx, ownerID)
	if err != nil {
		return LineupSummary{}, err
	}

	items, err := s.catalog.ListAll(ctx, ownerID)
	if err != nil {
		return LineupSummary{}, fmt.Errorf("list catalog: %w", err)
	}
	byID := make(map[string]pop.Pop, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	return LineupSummary{
		Lineup: current,
		Stats: lineup.ComputeStats(current, func(id string) (pop.Pop, bool) {
			p, ok := byID[id]
			return p, ok
		}),
	}, nil
}

// replace installs l as the owner's lineup and always persists it.
func (s *LineupService) replace(ctx context.Context, ownerID string, l lineup.Lineup) {
	sess := s.sessions.get(ownerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.value = l
	sess.loaded = true
	persist(ctx, s.mirror, s.logger, lineupMirrorKey(ownerID), func(ctx context.Context) error {
		return s.repo.Save(ctx, ownerID, l)
	})
}

// reset starts the owner over with a fresh empty lineup and deletes the stored
// value.
func (s *LineupService) reset(ctx context.Context, ownerID string) error {
	fresh, err := s.newLineup()
	if err != nil {
		return err
	}

	sess := s.sessions.get(ownerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.value = fresh
	sess.loaded = true
	persist(ctx, s.mirror, s.logger, lineupMirrorKey(ownerID), func(ctx context.Context) error {
		return s.repo.Delete(ctx, ownerID)
	})
	return nil
}

func (s *LineupService) mutate(
	ctx context.Context,
	ownerID string,
	apply func(l lineup.Lineup, now time.Time) (lineup.Lineup, bool),
) (lineup.Lineup, error) {
	ownerID, err := normalizeOwner(ownerID)
	if err != nil {
		return lineup.Lineup{}, err
	}

	sess := s.sessions.get(ownerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := s.load(ctx, ownerID, sess); err != nil {
		return lineup.Lineup{}, err
	}

	next, changed := apply(sess.value, s.now().UTC())
	if !changed {
		return sess.value, nil
	}
	sess.value = next
	s.save(ctx, ownerID, next)
	return next, nil
}

func (s *LineupService) load(ctx context.Context, ownerID string, sess *session[lineup.Lineup]) error {
	if sess.loaded {
		return nil
	}

	item, exists, err := s.repo.Get(ctx, ownerID)
	switch {
	case kvstore.IsUnavailable(err):
		s.logger.WarnContext(ctx, "lineup store unavailable", "owner_id", ownerID, "error", err)
		return fmt.Errorf("%w: load lineup: %v", ErrDependencyUnavailable, err)
	case err != nil:
		s.logger.WarnContext(ctx, "load lineup failed, starting empty", "owner_id", ownerID, "error", err)
		exists = false
	}
	if !exists {
		item, err = s.newLineup()
		if err != nil {
			return err
		}
	}

	sess.value = item
	sess.loaded = true
	return nil
}

func (s *LineupService) newLineup() (lineup.Lineup, error) {
	id, err := s.idGen.NewID()
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("generate lineup id: %w", err)
	}
	return lineup.New(id, lineup.DefaultName, s.now().UTC()), nil
}

func (s *LineupService) save(ctx context.Context, ownerID string, l lineup.Lineup) {
	if s.autoSave != nil && !s.autoSave.AutoSave(ctx, ownerID) {
		return
	}
	persist(ctx, s.mirror, s.logger, lineupMirrorKey(ownerID), func(ctx context.Context) error {
		return s.repo.Save(ctx, ownerID, l)
	})
}

func validatePositions(positions ...lineup.Position) error {
	for _, pos := range positions {
		if !pos.Valid() {
			return fmt.Errorf("%w: unknown position %q", ErrInvalidInput, string(pos))
		}
	}
	return nil
}

func lineupMirrorKey(ownerID string) string {
	return "lineup/" + ownerID
}
