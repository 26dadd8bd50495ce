package httpapi

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/dietpop-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dietpop-lineup/internal/domain/pop"
	"github.com/riskibarqy/dietpop-lineup/internal/domain/settings"
	"github.com/riskibarqy/dietpop-lineup/internal/usecase"
)

type assignPopRequest struct {
	PopID string `json:"pop_id" validate:"required,max=128"`
}

type swapPositionsRequest struct {
	PositionA string `json:"position_a" validate:"required"`
	PositionB string `json:"position_b" validate:"required"`
}

type movePopRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

type renameLineupRequest struct {
	Name string `json:"name" validate:"max=100"`
}

type createCustomPopRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=60"`
	Brand          string `json:"brand" validate:"required,max=60"`
	Flavor         string `json:"flavor" validate:"omitempty,max=60"`
	PrimaryColor   string `json:"primary_color" validate:"required,hexcolor"`
	SecondaryColor string `json:"secondary_color" validate:"required,hexcolor"`
	AccentColor    string `json:"accent_color" validate:"omitempty,hexcolor"`
	Description    string `json:"description" validate:"omitempty,max=500"`
	Caffeine       *int   `json:"caffeine" validate:"omitempty,gte=0,lte=1000"`
	Calories       *int   `json:"calories" validate:"omitempty,gte=0,lte=5000"`
	BaseBrand      string `json:"base_brand" validate:"omitempty,max=60"`
}

type updateSettingsRequest struct {
	Theme           *string `json:"theme" validate:"omitempty,oneof=dark light"`
	AutoSave        *bool   `json:"auto_save"`
	ShowLineupStats *bool   `json:"show_lineup_stats"`
	PreferredView   *string `json:"preferred_view" validate:"omitempty,oneof=grid list"`
}

type positionDTO struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Line  int    `json:"line"`
	Kind  string `json:"kind"`
	Side  string `json:"side"`
}

type lineupDTO struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Positions  map[string]*string `json:"positions"`
	Filled     int                `json:"filled"`
	Completion int                `json:"completion"`
	CreatedAt  string             `json:"created_at"`
	UpdatedAt  string             `json:"updated_at"`
}

type groupStatsDTO struct {
	Line       int `json:"line"`
	Filled     int `json:"filled"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

type lineupStatsDTO struct {
	TotalPops    int             `json:"total_pops"`
	Completion   int             `json:"completion"`
	ForwardLines []groupStatsDTO `json:"forward_lines"`
	DefensePairs []groupStatsDTO `json:"defense_pairs"`
	Brands       map[string]int  `json:"brands"`
	AvgCaffeine  int             `json:"avg_caffeine"`
}

type lineupSummaryDTO struct {
	Lineup lineupDTO      `json:"lineup"`
	Stats  lineupStatsDTO `json:"stats"`
}

type popDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Brand          string `json:"brand"`
	Flavor         string `json:"flavor,omitempty"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	AccentColor    string `json:"accent_color,omitempty"`
	IsCustom       bool   `json:"is_custom"`
	Description    string `json:"description,omitempty"`
	Caffeine       *int   `json:"caffeine,omitempty"`
	Calories       *int   `json:"calories,omitempty"`
	Year           *int   `json:"year,omitempty"`
	BaseBrand      string `json:"base_brand,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

type settingsDTO struct {
	Theme           string `json:"theme"`
	AutoSave        bool   `json:"auto_save"`
	ShowLineupStats bool   `json:"show_lineup_stats"`
	PreferredView   string `json:"preferred_view"`
}

type storageInfoDTO struct {
	Lineup         int    `json:"lineup"`
	CustomPops     int    `json:"custom_pops"`
	Settings       int    `json:"settings"`
	Total          int    `json:"total"`
	TotalFormatted string `json:"total_formatted"`
}

type importResultDTO struct {
	Lineup     bool `json:"lineup"`
	CustomPops bool `json:"custom_pops"`
	Settings   bool `json:"settings"`
}

// The export file keeps the camelCase layout of the browser app, so files move
// between the two in either direction.
type exportLineupDTO struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Positions map[string]*string `json:"positions"`
	CreatedAt string             `json:"createdAt,omitempty"`
	UpdatedAt string             `json:"updatedAt,omitempty"`
}

type exportPopDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Brand          string `json:"brand"`
	Flavor         string `json:"flavor,omitempty"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	AccentColor    string `json:"accentColor,omitempty"`
	IsCustom       bool   `json:"isCustom"`
	Description    string `json:"description,omitempty"`
	Caffeine       *int   `json:"caffeine,omitempty"`
	Calories       *int   `json:"calories,omitempty"`
	Year           *int   `json:"year,omitempty"`
	BaseBrand      string `json:"baseBrand,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

type exportSettingsDTO struct {
	Theme           *string `json:"theme,omitempty"`
	AutoSave        *bool   `json:"autoSave,omitempty"`
	ShowLineupStats *bool   `json:"showLineupStats,omitempty"`
	PreferredView   *string `json:"preferredView,omitempty"`
}

type exportBundleDTO struct {
	Lineup     *exportLineupDTO   `json:"lineup,omitempty"`
	CustomPops []exportPopDTO     `json:"customPops"`
	Settings   *exportSettingsDTO `json:"settings,omitempty"`
	ExportedAt string             `json:"exportedAt,omitempty"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseOptionalTime(raw, field string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be an ISO-8601 timestamp", usecase.ErrInvalidInput, field)
	}
	return t.UTC(), nil
}

func parsePosition(raw string) (lineup.Position, error) {
	pos, err := lineup.ParsePosition(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return pos, nil
}

func positionToDTO(p lineup.Position) positionDTO {
	info := p.Info()
	return positionDTO{
		Code:  p.String(),
		Label: info.Label,
		Line:  info.Line,
		Kind:  string(info.Kind),
		Side:  string(info.Side),
	}
}

func slotsToDTO(l lineup.Lineup) map[string]*string {
	out := make(map[string]*string, lineup.PositionCount)
	for p, itemID := range l.Slots() {
		if itemID == "" {
			out[p.String()] = nil
			continue
		}
		held := itemID
		out[p.String()] = &held
	}
	return out
}

func lineupToDTO(ctx context.Context, item lineup.Lineup) lineupDTO {
	_, span := startSpan(ctx, "httpapi.lineupToDTO")
	defer span.End()

	return lineupDTO{
		ID:         item.ID,
		Name:       item.Name,
		Positions:  slotsToDTO(item),
		Filled:     lineup.FilledCount(item),
		Completion: lineup.Completion(item),
		CreatedAt:  formatTime(item.CreatedAt),
		UpdatedAt:  formatTime(item.UpdatedAt),
	}
}

func groupStatsToDTO(items []lineup.GroupStats) []groupStatsDTO {
	out := make([]groupStatsDTO, 0, len(items))
	for _, g := range items {
		out = append(out, groupStatsDTO{Line: g.Line, Filled: g.Filled, Total: g.Total, Percentage: g.Percentage})
	}
	return out
}

func summaryToDTO(ctx context.Context, v usecase.LineupSummary) lineupSummaryDTO {
	return lineupSummaryDTO{
		Lineup: lineupToDTO(ctx, v.Lineup),
		Stats: lineupStatsDTO{
			TotalPops:    v.Stats.TotalPops,
			Completion:   v.Stats.Completion,
			ForwardLines: groupStatsToDTO(v.Stats.ForwardLines),
			DefensePairs: groupStatsToDTO(v.Stats.DefensePairs),
			Brands:       v.Stats.Brands,
			AvgCaffeine:  v.Stats.AvgCaffeine,
		},
	}
}

func popToDTO(p pop.Pop) popDTO {
	return popDTO{
		ID:             p.ID,
		Name:           p.Name,
		Brand:          p.Brand,
		Flavor:         p.Flavor,
		PrimaryColor:   p.PrimaryColor,
		SecondaryColor: p.SecondaryColor,
		AccentColor:    p.AccentColor,
		IsCustom:       p.IsCustom,
		Description:    p.Description,
		Caffeine:       p.Caffeine,
		Calories:       p.Calories,
		Year:           p.Year,
		BaseBrand:      p.BaseBrand,
		CreatedAt:      formatTime(p.CreatedAt),
	}
}

func popsToDTO(items []pop.Pop) []popDTO {
	out := make([]popDTO, 0, len(items))
	for _, p := range items {
		out = append(out, popToDTO(p))
	}
	return out
}

func settingsToDTO(s settings.Settings) settingsDTO {
	return settingsDTO{
		Theme:           string(s.Theme),
		AutoSave:        s.AutoSave,
		ShowLineupStats: s.ShowLineupStats,
		PreferredView:   string(s.PreferredView),
	}
}

func settingsPatchFromRequest(req updateSettingsRequest) settings.Patch {
	patch := settings.Patch{
		AutoSave:        req.AutoSave,
		ShowLineupStats: req.ShowLineupStats,
	}
	if req.Theme != nil {
		theme := settings.Theme(*req.Theme)
		patch.Theme = &theme
	}
	if req.PreferredView != nil {
		view := settings.View(*req.PreferredView)
		patch.PreferredView = &view
	}
	return patch
}

func exportBundleToDTO(ctx context.Context, v usecase.ExportBundle) exportBundleDTO {
	_, span := startSpan(ctx, "httpapi.exportBundleToDTO")
	defer span.End()

	custom := make([]exportPopDTO, 0, len(v.CustomPops))
	for _, p := range v.CustomPops {
		custom = append(custom, exportPopDTO{
			ID:             p.ID,
			Name:           p.Name,
			Brand:          p.Brand,
			Flavor:         p.Flavor,
			PrimaryColor:   p.PrimaryColor,
			SecondaryColor: p.SecondaryColor,
			AccentColor:    p.AccentColor,
			IsCustom:       true,
			Description:    p.Description,
			Caffeine:       p.Caffeine,
			Calories:       p.Calories,
			Year:           p.Year,
			BaseBrand:      p.BaseBrand,
			CreatedAt:      formatTime(p.CreatedAt),
		})
	}

	theme := string(v.Settings.Theme)
	view := string(v.Settings.PreferredView)
	return exportBundleDTO{
		Lineup: &exportLineupDTO{
			ID:        v.Lineup.ID,
			Name:      v.Lineup.Name,
			Positions: slotsToDTO(v.Lineup),
			CreatedAt: formatTime(v.Lineup.CreatedAt),
			UpdatedAt: formatTime(v.Lineup.UpdatedAt),
		},
		CustomPops: custom,
		Settings: &exportSettingsDTO{
			Theme:           &theme,
			AutoSave:        &v.Settings.AutoSave,
			ShowLineupStats: &v.Settings.ShowLineupStats,
			PreferredView:   &view,
		},
		ExportedAt: formatTime(v.ExportedAt),
	}
}

// importInputFromDTO converts an export file into an import. Missing position
// keys are empty slots; unknown keys and keys that differ only in case are
// rejected.
func importInputFromDTO(req exportBundleDTO) (usecase.ImportInput, error) {
	var input usecase.ImportInput

	if req.Lineup != nil {
		createdAt, err := parseOptionalTime(req.Lineup.CreatedAt, "lineup.createdAt")
		if err != nil {
			return usecase.ImportInput{}, err
		}
		updatedAt, err := parseOptionalTime(req.Lineup.UpdatedAt, "lineup.updatedAt")
		if err != nil {
			return usecase.ImportInput{}, err
		}

		item := lineup.New(req.Lineup.ID, req.Lineup.Name, createdAt)
		item.UpdatedAt = updatedAt
		seen := make(map[lineup.Position]string, len(req.Lineup.Positions))
		for _, key := range slices.Sorted(maps.Keys(req.Lineup.Positions)) {
			pos, err := parsePosition(key)
			if err != nil {
				return usecase.ImportInput{}, err
			}
			if prev, dup := seen[pos]; dup {
				return usecase.ImportInput{}, fmt.Errorf("%w: position keys %q and %q name the same slot", usecase.ErrInvalidInput, prev, key)
			}
			seen[pos] = key
			itemID := req.Lineup.Positions[key]
			if itemID != nil && strings.TrimSpace(*itemID) != "" {
				item = item.WithSlot(pos, strings.TrimSpace(*itemID))
			}
		}
		input.Lineup = &item
	}

	if req.CustomPops != nil {
		input.CustomPops = make([]pop.Pop, 0, len(req.CustomPops))
		for i, p := range req.CustomPops {
			createdAt, err := parseOptionalTime(p.CreatedAt, fmt.Sprintf("customPops[%d].createdAt", i))
			if err != nil {
				return usecase.ImportInput{}, err
			}
			input.CustomPops = append(input.CustomPops, pop.Pop{
				ID:             strings.TrimSpace(p.ID),
				Name:           strings.TrimSpace(p.Name),
				Brand:          strings.TrimSpace(p.Brand),
				Flavor:         p.Flavor,
				PrimaryColor:   p.PrimaryColor,
				SecondaryColor: p.SecondaryColor,
				AccentColor:    p.AccentColor,
				IsCustom:       true,
				Description:    p.Description,
				Caffeine:       p.Caffeine,
				Calories:       p.Calories,
				Year:           p.Year,
				BaseBrand:      p.BaseBrand,
				CreatedAt:      createdAt,
			})
		}
	}

	if req.Settings != nil {
		patch := settings.Patch{
			AutoSave:        req.Settings.AutoSave,
			ShowLineupStats: req.Settings.ShowLineupStats,
		}
		if req.Settings.Theme != nil {
			theme := settings.Theme(*req.Settings.Theme)
			patch.Theme = &theme
		}
		if req.Settings.PreferredView != nil {
			view := settings.View(*req.Settings.PreferredView)
			patch.PreferredView = &view
		}
		input.Settings = &patch
	}

	return input, nil
}
