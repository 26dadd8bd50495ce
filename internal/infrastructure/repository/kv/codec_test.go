package kv

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/dietpop-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dietpop-lineup/internal/domain/pop"
	"github.com/riskibarqy/dietpop-lineup/internal/domain/settings"
	"github.com/riskibarqy/dietpop-lineup/internal/infrastructure/repository/memory"
	kvstoremock "github.com/riskibarqy/dietpop-lineup/internal/mocks/platform/kvstore"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/kvstore"
)

func sampleLineup() lineup.Lineup {
	created := time.Date(2026, 3, 4, 5, 6, 7, 891_234_567, time.UTC)
	l := lineup.New("lineup-1", "Top Six", created)
	l = lineup.Assign(l, "diet-coke", lineup.Position1C, created.Add(time.Minute))
	l = lineup.Assign(l, "diet-pepsi", lineup.Position2RD, created.Add(2*time.Minute))
	return l
}

func TestEncodeLineup_WritesAllPositions(t *testing.T) {
	raw, err := EncodeLineup(sampleLineup())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &doc))

	positions, ok := doc["positions"].(map[string]any)
	require.True(t, ok)
	require.Len(t, positions, lineup.PositionCount)
	require.Equal(t, "diet-coke", positions["1C"])
	require.Nil(t, positions["1LW"])
	require.Equal(t, "2026-03-04T05:06:07.891Z", doc["createdAt"])
}

func TestLineupRoundTrip(t *testing.T) {
	original := sampleLineup()
	raw, err := EncodeLineup(original)
	require.NoError(t, err)

	decoded, err := DecodeLineup(raw)
	require.NoError(t, err)

	if diff := cmp.Diff(original.Positions, decoded.Positions); diff != "" {
		t.Fatalf("positions changed (-want +got):\n%s", diff)
	}
	require.Equal(t, original.ID, decoded.ID)
	require.Equal(t, original.Name, decoded.Name)
	require.Equal(t, original.CreatedAt.Truncate(time.Second), decoded.CreatedAt.Truncate(time.Second))
	require.Equal(t, original.UpdatedAt.Truncate(time.Second), decoded.UpdatedAt.Truncate(time.Second))
}

func TestDecodeLineup_Malformed(t *testing.T) {
	valid, err := EncodeLineup(sampleLineup())
	require.NoError(t, err)
	duplicate := strings.Replace(string(valid), `"2RD":"diet-pepsi"`, `"2RD":"diet-coke"`, 1)
	unknown := strings.Replace(string(valid), `"2RD"`, `"9RD"`, 1)

	tests := map[string]string{
		"not json":           "{oops",
		"array":              "[]",
		"missing id":         `{"name":"x","positions":{}}`,
		"missing positions":  `{"id":"l1","createdAt":"2026-01-01T00:00:00.000Z","updatedAt":"2026-01-01T00:00:00.000Z"}`,
		"short positions":    `{"id":"l1","positions":{"1C":null},"createdAt":"2026-01-01T00:00:00.000Z","updatedAt":"2026-01-01T00:00:00.000Z"}`,
		"unknown position":   unknown,
		"duplicate item":     duplicate,
		"bad created at":     strings.Replace(string(valid), "2026-03-04T05:06:07.891Z", "yesterday", 1),
		"positions is array": `{"id":"l1","positions":[],"createdAt":"2026-01-01T00:00:00.000Z","updatedAt":"2026-01-01T00:00:00.000Z"}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeLineup([]byte(raw))
			require.Error(t, err)
			require.True(t, kvstore.IsMalformed(err), "expected malformed mark, got %v", err)
		})
	}
}

func TestCustomPopsRoundTrip(t *testing.T) {
	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	items := []pop.Pop{
		{
			ID: "custom-1", Name: "Midnight Cola", Brand: "Coca-Cola", Flavor: "Cherry",
			PrimaryColor: "#000000", SecondaryColor: "#FF0000", IsCustom: true,
			Caffeine: pop.Ptr(20), BaseBrand: "Coca-Cola", CreatedAt: created,
		},
	}

	raw, err := EncodeCustomPops(items)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"createdAt":"2026-05-01T12:00:00.000Z"`)

	decoded, err := DecodeCustomPops(raw)
	require.NoError(t, err)
	if diff := cmp.Diff(items, decoded); diff != "" {
		t.Fatalf("custom pops changed (-want +got):\n%s", diff)
	}

	for _, bad := range []string{`{"id":"x"}`, `null`, `[{"name":"no id"}]`, `[{"id":"x","createdAt":"nope"}]`} {
		_, err := DecodeCustomPops([]byte(bad))
		require.True(t, kvstore.IsMalformed(err), "payload %s: %v", bad, err)
	}

	empty, err := DecodeCustomPops([]byte(`[]`))
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestDecodeSettings_MergesOverDefaults(t *testing.T) {
	got, err := DecodeSettings([]byte(`{"theme":"light"}`))
	require.NoError(t, err)
	want := settings.Default()
	want.Theme = settings.ThemeLight
	require.Equal(t, want, got)

	raw, err := EncodeSettings(want)
	require.NoError(t, err)
	again, err := DecodeSettings(raw)
	require.NoError(t, err)
	require.Equal(t, want, again)

	_, err = DecodeSettings([]byte(`{"theme":"neon"}`))
	require.True(t, kvstore.IsMalformed(err))
}

func TestRepositories_UseOwnerNamespacedKeys(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()

	lineups := NewLineupRepository(store)
	customs := NewCustomPopRepository(store)
	prefs := NewSettingsRepository(store)

	_, found, err := lineups.Get(ctx, "alice")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, lineups.Save(ctx, "alice", sampleLineup()))
	require.NoError(t, customs.SaveCustom(ctx, "alice", nil))
	require.NoError(t, prefs.Save(ctx, "alice", settings.Default()))

	keys, err := store.Keys(ctx, "alice:")
	require.NoError(t, err)
	require.Equal(t, []string{"alice:dietpop_custom_pops", "alice:dietpop_lineup", "alice:dietpop_settings"}, keys)

	got, found, err := lineups.Get(ctx, "alice")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "lineup-1", got.ID)

	_, found, err = lineups.Get(ctx, "bob")
	require.NoError(t, err)
	require.False(t, found)

	sizes, err := NewInspector(store).Sizes(ctx, "alice")
	require.NoError(t, err)
	require.Greater(t, sizes["lineup"], 0)
	require.Equal(t, len("[]"), sizes["customPops"])

	require.NoError(t, lineups.Delete(ctx, "alice"))
	require.NoError(t, customs.DeleteCustom(ctx, "alice"))
	require.NoError(t, prefs.Delete(ctx, "alice"))
	keys, err = store.Keys(ctx, "alice:")
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestLineupRepository_PropagatesStoreErrors(t *testing.T) {
	ctx := context.Background()
	store := kvstoremock.NewStore(t)
	backendErr := kvstore.Unavailable(errors.New("connection refused"), "get")

	store.
		On("Get", mock.Anything, "alice:dietpop_lineup").
		Return(nil, false, backendErr).
		Once()
	store.
		On("Set", mock.Anything, "alice:dietpop_lineup", mock.AnythingOfType("[]uint8")).
		Return(backendErr).
		Once()

	repo := NewLineupRepository(store)

	_, _, err := repo.Get(ctx, "alice")
	require.True(t, kvstore.IsUnavailable(err))

	err = repo.Save(ctx, "alice", sampleLineup())
	require.True(t, kvstore.IsUnavailable(err))
}

func TestLineupRepository_MalformedStoredValue(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	require.NoError(t, store.Set(ctx, "alice:dietpop_lineup", []byte(`{"broken":true}`)))

	_, found, err := NewLineupRepository(store).Get(ctx, "alice")
	require.False(t, found)
	require.True(t, kvstore.IsMalformed(err))
}

func TestEncodeExport_MatchesStoredLayout(t *testing.T) {
	exported := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	raw, err := EncodeExport(sampleLineup(), nil, settings.Default(), exported)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &doc))
	require.Equal(t, "2026-06-01T08:00:00.000Z", doc["exportedAt"])
	require.Equal(t, []any{}, doc["customPops"])

	lineupRaw, err := sonic.Marshal(doc["lineup"])
	require.NoError(t, err)
	decoded, err := DecodeLineup(lineupRaw)
	require.NoError(t, err)
	require.Equal(t, "diet-coke", decoded.At(lineup.Position1C))

	settingsDoc, ok := doc["settings"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "dark", settingsDoc["theme"])
	require.Equal(t, true, settingsDoc["autoSave"])
}
