package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/dietpop-lineup/internal/domain/pop"
	idgen "github.com/riskibarqy/dietpop-lineup/internal/platform/id"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/kvstore"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/logging"
)

// DefaultBaseBrand is recorded on custom pops created without a style preset.
const DefaultBaseBrand = "Custom"

// CreateCustomPopInput is the incoming payload for a user-created pop.
type CreateCustomPopInput struct {
	Name           string
	Brand          string
	Flavor         string
	PrimaryColor   string
	SecondaryColor string
	AccentColor    string
	Description    string
	Caffeine       *int
	Calories       *int
	BaseBrand      string
}

type lineupItemRemover interface {
	RemoveItem(ctx context.Context, ownerID, itemID string) (bool, error)
}

type autoSaver interface {
	AutoSave(ctx context.Context, ownerID string) bool
}

// CatalogService merges the shared standard catalog with each owner's custom
// pops. Standard pops always list first.
type CatalogService struct {
	standard pop.StandardRepository
	custom   pop.CustomRepository
	idGen    idgen.Generator
	mirror   *Mirror
	logger   *logging.Logger
	now      func() time.Time

	lineup   lineupItemRemover
	autoSave autoSaver
	sessions sessions[[]pop.Pop]
}

func NewCatalogService(
	standard pop.StandardRepository,
	custom pop.CustomRepository,
	idGen idgen.Generator,
	mirror *Mirror,
	logger *logging.Logger,
) *CatalogService {
	if logger == nil {
		logger = logging.Default()
	}

	return &CatalogService{
		standard: standard,
		custom:   custom,
		idGen:    idGen,
		mirror:   mirror,
		logger:   logger,
		now:      time.Now,
	}
}

// SetLineupRemover wires the lineup so removing a custom pop also clears the
// slot holding it.
func (s *CatalogService) SetLineupRemover(remover lineupItemRemover) {
	s.lineup = remover
}

// SetAutoSaver gates persistence of custom pops on the owner's settings. When
// unset every change is persisted.
func (s *CatalogService) SetAutoSaver(saver autoSaver) {
	s.autoSave = saver
}

func (s *CatalogService) ListAll(ctx context.Context, ownerID string) ([]pop.Pop, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListAll")
	defer span.End()

	ownerID, err := normalizeOwner(ownerID)
	if err != nil {
		return nil, err
	}

	standard, err := s.standard.ListStandard(ctx)
	if err != nil {
		return nil, fmt.Errorf("list standard pops: %w", err)
	}

	custom := s.customSnapshot(ctx, ownerID)
	out := make([]pop.Pop, 0, len(standard)+len(custom))
	out = append(out, standard...)
	out = append(out, custom...)
	return out, nil
}

// GetByID reports found=false for ids in neither the standard nor the owner's
// custom list.
func (s *CatalogService) GetByID(ctx context.Context, ownerID, popID string) (pop.Pop, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetByID")
	defer span.End()

	popID = strings.TrimSpace(popID)
	if popID == "" {
		return pop.Pop{}, false, fmt.Errorf("%w: pop id is required", ErrInvalidInput)
	}

	items, err := s.ListAll(ctx, ownerID)
	if err != nil {
		return pop.Pop{}, false, err
	}
	for _, item := range items {
		if item.ID == popID {
			return item, true, nil
		}
	}
	return pop.Pop{}, false, nil
}

// ListBrands returns the distinct brands of the owner's catalog, sorted.
func (s *CatalogService) ListBrands(ctx context.Context, ownerID string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListBrands")
	defer span.End()

	items, err := s.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	brands := make([]string, 0, len(items))
	for _, item := range items {
		brands = append(brands, item.Brand)
	}
	slices.Sort(brands)
	return slices.Compact(brands), nil
}

func (s *CatalogService) ListByBrand(ctx context.Context, ownerID, brand string) ([]pop.Pop, error) {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return nil, fmt.Errorf("%w: brand is required", ErrInvalidInput)
	}
	return s.Filter(ctx, ownerID, pop.Filter{Brand: brand})
}

func (s *CatalogService) Filter(ctx context.Context, ownerID string, filter pop.Filter) ([]pop.Pop, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.Filter")
	defer span.End()

	items, err := s.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !filter.Active() {
		return items, nil
	}

	out := make([]pop.Pop, 0, len(items))
	for _, item := range items {
		if filter.Matches(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *CatalogService) AddCustom(ctx context.Context, ownerID string, input CreateCustomPopInput) (pop.Pop, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.AddCustom")
	defer span.End()

	ownerID, err := normalizeOwner(ownerID)
	if err != nil {
		return pop.Pop{}, err
	}

	popID, err := s.idGen.NewID()
	if err != nil {
		return pop.Pop{}, fmt.Errorf("generate custom pop id: %w", err)
	}

	baseBrand := strings.TrimSpace(input.BaseBrand)
	if baseBrand == "" {
		baseBrand = DefaultBaseBrand
	}
	item := pop.Pop{
		ID:             popID,
		Name:           strings.TrimSpace(input.Name),
		Brand:          strings.TrimSpace(input.Brand),
		Flavor:         strings.TrimSpace(input.Flavor),
		PrimaryColor:   strings.TrimSpace(input.PrimaryColor),
		SecondaryColor: strings.TrimSpace(input.SecondaryColor),
		AccentColor:    strings.TrimSpace(input.AccentColor),
		IsCustom:       true,
		Description:    strings.TrimSpace(input.Description),
		Caffeine:       input.Caffeine,
		Calories:       input.Calories,
		BaseBrand:      baseBrand,
		CreatedAt:      s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return pop.Pop{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sess := s.sessions.get(ownerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := s.load(ctx, ownerID, sess); err != nil {
		return pop.Pop{}, err
	}
	next := append(slices.Clone(sess.value), item)
	sess.value = next
	s.save(ctx, ownerID, next)

	s.logger.InfoContext(ctx, "custom pop created", "owner_id", ownerID, "pop_id", item.ID)
	return item, nil
}

// RemoveCustom deletes a custom pop and clears any lineup slot holding it.
// Standard pops and unknown ids are ErrNotFound.
func (s *CatalogService) RemoveCustom(ctx context.Context, ownerID, popID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.RemoveCustom")
	defer span.End()

	ownerID, err := normalizeOwner(ownerID)
	if err != nil {
		return err
	}
	popID = strings.TrimSpace(popID)
	if popID == "" {
		return fmt.Errorf("%w: pop id is required", ErrInvalidInput)
	}

	if err := s.removeFromSession(ctx, ownerID, popID); err != nil {
		return err
	}

	// The catalog lock is released here; the lineup takes its own.
	if s.lineup != nil {
		if _, err := s.lineup.RemoveItem(ctx, ownerID, popID); err != nil {
			return fmt.Errorf("clear removed pop from lineup: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "custom pop removed", "owner_id", ownerID, "pop_id", popID)
	return nil
}

func (s *CatalogService) removeFromSession(ctx context.Context, ownerID, popID string) error {
	sess := s.sessions.get(ownerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := s.load(ctx, ownerID, sess); err != nil {
		return err
	}
	idx := slices.IndexFunc(sess.value, func(p pop.Pop) bool { return p.ID == popID })
	if idx < 0 {
		return fmt.Errorf("%w: custom pop id=%s", ErrNotFound, popID)
	}

	next := slices.Delete(slices.Clone(sess.value), idx, idx+1)
	sess.value = next
	s.save(ctx, ownerID, next)
	return nil
}

// replace swaps the owner's custom list wholesale and always persists it.
func (s *CatalogService) replace(ctx context.Context, ownerID string, items []pop.Pop) {
	sess := s.sessions.get(ownerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	next := slices.Clone(items)
	sess.value = next
	sess.loaded = true
	persist(ctx, s.mirror, s.logger, customMirrorKey(ownerID), func(ctx context.Context) error {
		return s.custom.SaveCustom(ctx, ownerID, next)
	})
}

func (s *CatalogService) reset(ctx context.Context, ownerID string) {
	sess := s.sessions.get(ownerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.value = nil
	sess.loaded = true
	persist(ctx, s.mirror, s.logger, customMirrorKey(ownerID), func(ctx context.Context) error {
		return s.custom.DeleteCustom(ctx, ownerID)
	})
}

func (s *CatalogService) customSnapshot(ctx context.Context, ownerID string) []pop.Pop {
	sess := s.sessions.get(ownerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := s.load(ctx, ownerID, sess); err != nil {
		return nil
	}
	return slices.Clone(sess.value)
}

// load caches the owner's custom list. A malformed or missing list starts
// empty; an unavailable store is reported and nothing is cached.
func (s *CatalogService) load(ctx context.Context, ownerID string, sess *session[[]pop.Pop]) error {
	if sess.loaded {
		return nil
	}

	items, exists, err := s.custom.ListCustom(ctx, ownerID)
	switch {
	case kvstore.IsUnavailable(err):
		s.logger.WarnContext(ctx, "custom pop store unavailable", "owner_id", ownerID, "error", err)
		return fmt.Errorf("%w: load custom pops: %v", ErrDependencyUnavailable, err)
	case err != nil:
		s.logger.WarnContext(ctx, "load custom pops failed, starting empty", "owner_id", ownerID, "error", err)
		items = nil
	case !exists:
		items = nil
	}

	sess.value = items
	sess.loaded = true
	return nil
}

// standardIDs is the set of ids no custom pop may take.
func (s *CatalogService) standardIDs(ctx context.Context) (map[string]struct{}, error) {
	standard, err := s.standard.ListStandard(ctx)
	if err != nil {
		return nil, fmt.Errorf("list standard pops: %w", err)
	}
	ids := make(map[string]struct{}, len(standard))
	for _, item := range standard {
		ids[item.ID] = struct{}{}
	}
	return ids, nil
}

func (s *CatalogService) save(ctx context.Context, ownerID string, items []pop.Pop) {
	if s.autoSave != nil && !s.autoSave.AutoSave(ctx, ownerID) {
		return
	}
	persist(ctx, s.mirror, s.logger, customMirrorKey(ownerID), func(ctx context.Context) error {
		return s.custom.SaveCustom(ctx, ownerID, items)
	})
}

func customMirrorKey(ownerID string) string {
	return "custom_pops/" + ownerID
}
