// Package kv stores the typed lineup, custom pop, and settings values of each
// owner as JSON documents in a kvstore.Store.
package kv

import (
	"context"
	"fmt"

	"github.com/riskibarqy/dietpop-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dietpop-lineup/internal/domain/pop"
	"github.com/riskibarqy/dietpop-lineup/internal/domain/settings"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/kvstore"
)

type LineupRepository struct {
	store kvstore.Store
}

func NewLineupRepository(store kvstore.Store) *LineupRepository {
	return &LineupRepository{store: store}
}

func (r *LineupRepository) Get(ctx context.Context, ownerID string) (lineup.Lineup, bool, error) {
	raw, found, err := r.store.Get(ctx, kvstore.Key(ownerID, KeyLineup))
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("get lineup: %w", err)
	}
	if !found {
		return lineup.Lineup{}, false, nil
	}

	item, err := DecodeLineup(raw)
	if err != nil {
		return lineup.Lineup{}, false, err
	}
	return item, true, nil
}

func (r *LineupRepository) Save(ctx context.Context, ownerID string, item lineup.Lineup) error {
	raw, err := EncodeLineup(item)
	if err != nil {
		return fmt.Errorf("encode lineup: %w", err)
	}
	if err := r.store.Set(ctx, kvstore.Key(ownerID, KeyLineup), raw); err != nil {
		return fmt.Errorf("save lineup: %w", err)
	}
	return nil
}

func (r *LineupRepository) Delete(ctx context.Context, ownerID string) error {
	if err := r.store.Delete(ctx, kvstore.Key(ownerID, KeyLineup)); err != nil {
		return fmt.Errorf("delete lineup: %w", err)
	}
	return nil
}

type CustomPopRepository struct {
	store kvstore.Store
}

func NewCustomPopRepository(store kvstore.Store) *CustomPopRepository {
	return &CustomPopRepository{store: store}
}

func (r *CustomPopRepository) ListCustom(ctx context.Context, ownerID string) ([]pop.Pop, bool, error) {
	raw, found, err := r.store.Get(ctx, kvstore.Key(ownerID, KeyCustomPops))
	if err != nil {
		return nil, false, fmt.Errorf("get custom pops: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	items, err := DecodeCustomPops(raw)
	if err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (r *CustomPopRepository) SaveCustom(ctx context.Context, ownerID string, items []pop.Pop) error {
	raw, err := EncodeCustomPops(items)
	if err != nil {
		return fmt.Errorf("encode custom pops: %w", err)
	}
	if err := r.store.Set(ctx, kvstore.Key(ownerID, KeyCustomPops), raw); err != nil {
		return fmt.Errorf("save custom pops: %w", err)
	}
	return nil
}

func (r *CustomPopRepository) DeleteCustom(ctx context.Context, ownerID string) error {
	if err := r.store.Delete(ctx, kvstore.Key(ownerID, KeyCustomPops)); err != nil {
		return fmt.Errorf("delete custom pops: %w", err)
	}
	return nil
}

type SettingsRepository struct {
	store kvstore.Store
}

func NewSettingsRepository(store kvstore.Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

func (r *SettingsRepository) Get(ctx context.Context, ownerID string) (settings.Settings, bool, error) {
	raw, found, err := r.store.Get(ctx, kvstore.Key(ownerID, KeySettings))
	if err != nil {
		return settings.Settings{}, false, fmt.Errorf("get settings: %w", err)
	}
	if !found {
		return settings.Settings{}, false, nil
	}

	item, err := DecodeSettings(raw)
	if err != nil {
		return settings.Settings{}, false, err
	}
	return item, true, nil
}

func (r *SettingsRepository) Save(ctx context.Context, ownerID string, item settings.Settings) error {
	raw, err := EncodeSettings(item)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := r.store.Set(ctx, kvstore.Key(ownerID, KeySettings), raw); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (r *SettingsRepository) Delete(ctx context.Context, ownerID string) error {
	if err := r.store.Delete(ctx, kvstore.Key(ownerID, KeySettings)); err != nil {
		return fmt.Errorf("delete settings: %w", err)
	}
	return nil
}

// Inspector reports the stored size of each section of an owner's data.
type Inspector struct {
	store kvstore.Store
}

func NewInspector(store kvstore.Store) *Inspector {
	return &Inspector{store: store}
}

// Sizes returns byte counts keyed by lineup, customPops and settings. Missing
// keys count as zero.
func (i *Inspector) Sizes(ctx context.Context, ownerID string) (map[string]int, error) {
	sections := map[string]string{
		"lineup":     KeyLineup,
		"customPops": KeyCustomPops,
		"settings":   KeySettings,
	}

	out := make(map[string]int, len(sections))
	for section, name := range sections {
		raw, found, err := i.store.Get(ctx, kvstore.Key(ownerID, name))
		if err != nil {
			return nil, fmt.Errorf("read %s size: %w", section, err)
		}
		if found {
			out[section] = len(raw)
			continue
		}
		out[section] = 0
	}
	return out, nil
}
