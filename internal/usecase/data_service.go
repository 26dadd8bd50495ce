package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/dietpop-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dietpop-lineup/internal/domain/pop"
	"github.com/riskibarqy/dietpop-lineup/internal/domain/settings"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/logging"
)

// ExportBundle is a full snapshot of one owner's data.
type ExportBundle struct {
	Lineup     lineup.Lineup
	CustomPops []pop.Pop
	Settings   settings.Settings
	ExportedAt time.Time
}

// ImportInput replaces the sections that are present. A nil CustomPops leaves
// the custom list alone; an empty non-nil slice clears it. Settings are merged
// over the current values.
type ImportInput struct {
	Lineup     *lineup.Lineup
	CustomPops []pop.Pop
	Settings   *settings.Patch
}

// ImportResult lists the sections an import replaced.
type ImportResult struct {
	Lineup     bool
	CustomPops bool
	Settings   bool
}

// StorageInfo reports the stored size in bytes of each section.
type StorageInfo struct {
	Lineup         int
	CustomPops     int
	Settings       int
	Total          int
	TotalFormatted string
}

type storageInspector interface {
	Sizes(ctx context.Context, ownerID string) (map[string]int, error)
}

type DataService struct {
	lineups   *LineupService
	catalog   *CatalogService
	settings  *SettingsService
	inspector storageInspector
	logger    *logging.Logger
	now       func() time.Time
}

func NewDataService(
	lineups *LineupService,
	catalog *CatalogService,
	settingsService *SettingsService,
	inspector storageInspector,
	logger *logging.Logger,
) *DataService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DataService{
		lineups:   lineups,
		catalog:   catalog,
		settings:  settingsService,
		inspector: inspector,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *DataService) Export(ctx context.Context, ownerID string) (ExportBundle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataService.Export")
	defer span.End()

	ownerID, err := normalizeOwner(ownerID)
	if err != nil {
		return ExportBundle{}, err
	}

	bundle := ExportBundle{ExportedAt: s.now().UTC()}
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		current, err := s.lineups.Current(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("export lineup: %w", err)
		}
		bundle.Lineup = current
		return nil
	})
	p.Go(func(ctx context.Context) error {
		custom, err := s.catalog.Filter(ctx, ownerID, pop.Filter{CustomOnly: true})
		if err != nil {
			return fmt.Errorf("export custom pops: %w", err)
		}
		bundle.CustomPops = custom
		return nil
	})
	p.Go(func(ctx context.Context) error {
		current, err := s.settings.Get(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("export settings: %w", err)
		}
		bundle.Settings = current
		return nil
	})
	if err := p.Wait(); err != nil {
		return ExportBundle{}, err
	}

	return bundle, nil
}

// Import validates every present section before replacing any of them, so a
// rejected import leaves the owner's data untouched. Imported sections are
// persisted regardless of the autosave setting.
func (s *DataService) Import(ctx context.Context, ownerID string, input ImportInput) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataService.Import")
	defer span.End()

	ownerID, err := normalizeOwner(ownerID)
	if err != nil {
		return ImportResult{}, err
	}
	if input.Lineup == nil && input.CustomPops == nil && input.Settings == nil {
		return ImportResult{}, fmt.Errorf("%w: import contains no lineup, custom pops or settings", ErrInvalidInput)
	}

	var importedLineup lineup.Lineup
	if input.Lineup != nil {
		importedLineup, err = s.prepareLineup(*input.Lineup)
		if err != nil {
			return ImportResult{}, err
		}
	}

	var customPops []pop.Pop
	if input.CustomPops != nil {
		reserved, err := s.catalog.standardIDs(ctx)
		if err != nil {
			return ImportResult{}, err
		}
		customPops, err = prepareCustomPops(input.CustomPops, reserved, s.now().UTC())
		if err != nil {
			return ImportResult{}, err
		}
	}

	if input.Settings != nil {
		current, err := s.settings.Get(ctx, ownerID)
		if err != nil {
			return ImportResult{}, err
		}
		if err := current.Apply(*input.Settings).Validate(); err != nil {
			return ImportResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	var result ImportResult
	if input.Lineup != nil {
		s.lineups.replace(ctx, ownerID, importedLineup)
		result.Lineup = true
	}
	if input.CustomPops != nil {
		s.catalog.replace(ctx, ownerID, customPops)
		result.CustomPops = true
	}
	if input.Settings != nil {
		if _, err := s.settings.Update(ctx, ownerID, *input.Settings); err != nil {
			return result, err
		}
		result.Settings = true
	}

	s.logger.InfoContext(ctx, "data imported",
		"owner_id", ownerID,
		"lineup", result.Lineup,
		"custom_pops", result.CustomPops,
		"settings", result.Settings,
	)
	return result, nil
}

func (s *DataService) prepareLineup(l lineup.Lineup) (lineup.Lineup, error) {
	l.ID = strings.TrimSpace(l.ID)
	if l.Name = strings.TrimSpace(l.Name); l.Name == "" {
		l.Name = lineup.DefaultName
	}
	if err := lineup.Validate(l); err != nil {
		return lineup.Lineup{}, fmt.Errorf("%w: imported lineup: %v", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = l.CreatedAt
	}
	return l, nil
}

// prepareCustomPops rejects ids that repeat or collide with a standard pop.
func prepareCustomPops(items []pop.Pop, reserved map[string]struct{}, now time.Time) ([]pop.Pop, error) {
	out := make([]pop.Pop, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		item.IsCustom = true
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("%w: imported custom pop %d: %v", ErrInvalidInput, i, err)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("%w: imported custom pop id %s appears twice", ErrInvalidInput, item.ID)
		}
		if _, taken := reserved[item.ID]; taken {
			return nil, fmt.Errorf("%w: imported custom pop id %s is a standard pop", ErrInvalidInput, item.ID)
		}
		seen[item.ID] = struct{}{}
		if item.BaseBrand == "" {
			item.BaseBrand = DefaultBaseBrand
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		out = append(out, item)
	}
	return slices.Clip(out), nil
}

// ClearAll deletes every stored section of the owner and resets the in-memory
// state to a fresh empty lineup, no custom pops and default settings.
func (s *DataService) ClearAll(ctx context.Context, ownerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataService.ClearAll")
	defer span.End()

	ownerID, err := normalizeOwner(ownerID)
	if err != nil {
		return err
	}

	if err := s.lineups.reset(ctx, ownerID); err != nil {
		return err
	}
	s.catalog.reset(ctx, ownerID)
	s.settings.reset(ctx, ownerID)

	s.logger.InfoContext(ctx, "owner data cleared", "owner_id", ownerID)
	return nil
}

func (s *DataService) StorageInfo(ctx context.Context, ownerID string) (StorageInfo, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DataService.StorageInfo")
	defer span.End()

	ownerID, err := normalizeOwner(ownerID)
	if err != nil {
		return StorageInfo{}, err
	}

	sizes, err := s.inspector.Sizes(ctx, ownerID)
	if err != nil {
		s.logger.WarnContext(ctx, "read storage sizes failed", "owner_id", ownerID, "error", err)
		return StorageInfo{}, fmt.Errorf("%w: read storage sizes: %v", ErrDependencyUnavailable, err)
	}

	info := StorageInfo{
		Lineup:     sizes["lineup"],
		CustomPops: sizes["customPops"],
		Settings:   sizes["settings"],
	}
	info.Total = info.Lineup + info.CustomPops + info.Settings
	info.TotalFormatted = FormatKB(info.Total)
	return info, nil
}

// FormatKB renders a byte count as kilobytes with two decimals.
func FormatKB(bytes int) string {
	return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
}
