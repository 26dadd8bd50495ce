package kv

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/dietpop-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dietpop-lineup/internal/domain/pop"
	"github.com/riskibarqy/dietpop-lineup/internal/domain/settings"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/kvstore"
)

// Stored key names, namespaced per owner by kvstore.Key.
const (
	KeyLineup     = "dietpop_lineup"
	KeyCustomPops = "dietpop_custom_pops"
	KeySettings   = "dietpop_settings"
)

// isoLayout matches the millisecond ISO-8601 form browsers write for dates.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

type lineupDocument struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Positions map[string]*string `json:"positions"`
	CreatedAt string             `json:"createdAt"`
	UpdatedAt string             `json:"updatedAt"`
}

type popDocument struct {
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

type settingsDocument struct {
	Theme           *string `json:"theme,omitempty"`
	AutoSave        *bool   `json:"autoSave,omitempty"`
	ShowLineupStats *bool   `json:"showLineupStats,omitempty"`
	PreferredView   *string `json:"preferredView,omitempty"`
}

func encode(v any) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigStd.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return append([]byte(nil), bytes.TrimRight(buf.B, "\n")...), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// EncodeLineup writes every one of the 18 position keys, null when empty.
func EncodeLineup(l lineup.Lineup) ([]byte, error) {
	return encode(lineupToDocument(l))
}

func lineupToDocument(l lineup.Lineup) lineupDocument {
	doc := lineupDocument{
		ID:        l.ID,
		Name:      l.Name,
		Positions: make(map[string]*string, lineup.PositionCount),
		CreatedAt: formatTime(l.CreatedAt),
		UpdatedAt: formatTime(l.UpdatedAt),
	}
	for p, itemID := range l.Slots() {
		if itemID == "" {
			doc.Positions[p.String()] = nil
			continue
		}
		held := itemID
		doc.Positions[p.String()] = &held
	}
	return doc
}

func DecodeLineup(raw []byte) (lineup.Lineup, error) {
	var doc lineupDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return lineup.Lineup{}, kvstore.Malformed(err, "lineup")
	}
	if strings.TrimSpace(doc.ID) == "" {
		return lineup.Lineup{}, kvstore.Malformed(fmt.Errorf("id is missing"), "lineup")
	}
	if doc.Positions == nil {
		return lineup.Lineup{}, kvstore.Malformed(fmt.Errorf("positions are missing"), "lineup")
	}
	if len(doc.Positions) != lineup.PositionCount {
		return lineup.Lineup{}, kvstore.Malformed(fmt.Errorf("expected %d positions, got %d", lineup.PositionCount, len(doc.Positions)), "lineup")
	}

	createdAt, err := parseTime(doc.CreatedAt)
	if err != nil {
		return lineup.Lineup{}, kvstore.Malformed(err, "lineup createdAt")
	}
	updatedAt, err := parseTime(doc.UpdatedAt)
	if err != nil {
		return lineup.Lineup{}, kvstore.Malformed(err, "lineup updatedAt")
	}

	out := lineup.New(doc.ID, doc.Name, createdAt)
	out.UpdatedAt = updatedAt
	for key, itemID := range doc.Positions {
		pos := lineup.Position(key)
		if !pos.Valid() {
			return lineup.Lineup{}, kvstore.Malformed(fmt.Errorf("unknown position %q", key), "lineup")
		}
		if itemID != nil {
			out = out.WithSlot(pos, *itemID)
		}
	}
	if err := lineup.Validate(out); err != nil {
		return lineup.Lineup{}, kvstore.Malformed(err, "lineup")
	}

	return out, nil
}

func popToDocument(p pop.Pop) popDocument {
	doc := popDocument{
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
	}
	if !p.CreatedAt.IsZero() {
		doc.CreatedAt = formatTime(p.CreatedAt)
	}
	return doc
}

func EncodeCustomPops(items []pop.Pop) ([]byte, error) {
	docs := make([]popDocument, 0, len(items))
	for _, p := range items {
		docs = append(docs, popToDocument(p))
	}
	return encode(docs)
}

// DecodeCustomPops rejects anything that is not an array of objects with an id.
func DecodeCustomPops(raw []byte) ([]pop.Pop, error) {
	var docs []popDocument
	if err := sonic.Unmarshal(raw, &docs); err != nil {
		return nil, kvstore.Malformed(err, "custom pops")
	}
	if docs == nil {
		return nil, kvstore.Malformed(fmt.Errorf("expected an array"), "custom pops")
	}

	out := make([]pop.Pop, 0, len(docs))
	for i, doc := range docs {
		if strings.TrimSpace(doc.ID) == "" {
			return nil, kvstore.Malformed(fmt.Errorf("entry %d has no id", i), "custom pops")
		}
		p := pop.Pop{
			ID:             doc.ID,
			Name:           doc.Name,
			Brand:          doc.Brand,
			Flavor:         doc.Flavor,
			PrimaryColor:   doc.PrimaryColor,
			SecondaryColor: doc.SecondaryColor,
			AccentColor:    doc.AccentColor,
			IsCustom:       true,
			Description:    doc.Description,
			Caffeine:       doc.Caffeine,
			Calories:       doc.Calories,
			Year:           doc.Year,
			BaseBrand:      doc.BaseBrand,
		}
		if doc.CreatedAt != "" {
			createdAt, err := parseTime(doc.CreatedAt)
			if err != nil {
				return nil, kvstore.Malformed(err, "custom pop createdAt")
			}
			p.CreatedAt = createdAt
		}
		out = append(out, p)
	}
	return out, nil
}

func EncodeSettings(s settings.Settings) ([]byte, error) {
	return encode(settingsToDocument(s))
}

func settingsToDocument(s settings.Settings) settingsDocument {
	theme := string(s.Theme)
	view := string(s.PreferredView)
	return settingsDocument{
		Theme:           &theme,
		AutoSave:        &s.AutoSave,
		ShowLineupStats: &s.ShowLineupStats,
		PreferredView:   &view,
	}
}

// DecodeSettings merges the stored fields over settings.Default, so older
// payloads missing a field still load.
func DecodeSettings(raw []byte) (settings.Settings, error) {
	var doc settingsDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return settings.Settings{}, kvstore.Malformed(err, "settings")
	}

	patch := settings.Patch{
		AutoSave:        doc.AutoSave,
		ShowLineupStats: doc.ShowLineupStats,
	}
	if doc.Theme != nil {
		theme := settings.Theme(*doc.Theme)
		patch.Theme = &theme
	}
	if doc.PreferredView != nil {
		view := settings.View(*doc.PreferredView)
		patch.PreferredView = &view
	}

	out := settings.Default().Apply(patch)
	if err := out.Validate(); err != nil {
		return settings.Settings{}, kvstore.Malformed(err, "settings")
	}
	return out, nil
}

type exportDocument struct {
	Lineup     lineupDocument   `json:"lineup"`
	CustomPops []popDocument    `json:"customPops"`
	Settings   settingsDocument `json:"settings"`
	ExportedAt string           `json:"exportedAt"`
}

// EncodeExport writes a backup file in the same layout as the stored keys, so
// POST /v1/data/import accepts it unchanged.
func EncodeExport(l lineup.Lineup, custom []pop.Pop, s settings.Settings, exportedAt time.Time) ([]byte, error) {
	doc := exportDocument{
		Lineup:     lineupToDocument(l),
		CustomPops: make([]popDocument, 0, len(custom)),
		Settings:   settingsToDocument(s),
		ExportedAt: formatTime(exportedAt),
	}
	for _, p := range custom {
		doc.CustomPops = append(doc.CustomPops, popToDocument(p))
	}
	return encode(doc)
}
