package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/dietpop-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dietpop-lineup/internal/domain/pop"
	"github.com/riskibarqy/dietpop-lineup/internal/infrastructure/repository/kv"
	"github.com/riskibarqy/dietpop-lineup/internal/infrastructure/repository/memory"
	popmock "github.com/riskibarqy/dietpop-lineup/internal/mocks/domain/pop"
	idgen "github.com/riskibarqy/dietpop-lineup/internal/platform/id"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/kvstore"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/logging"
)

func validCustomInput() CreateCustomPopInput {
	return CreateCustomPopInput{
		Name:           " Midnight Cola ",
		Brand:          "Coca-Cola",
		Flavor:         "Cherry",
		PrimaryColor:   "#000000",
		SecondaryColor: "#FF0000",
		Caffeine:       pop.Ptr(20),
	}
}

func TestCatalogService_ListAllStandardFirst(t *testing.T) {
	f := newFixture(t, nil, []string{"custom-1"})
	ctx := t.Context()

	created, err := f.catalog.AddCustom(ctx, "alice", validCustomInput())
	require.NoError(t, err)
	require.Equal(t, "custom-1", created.ID)
	require.Equal(t, "Midnight Cola", created.Name)
	require.True(t, created.IsCustom)
	require.Equal(t, DefaultBaseBrand, created.BaseBrand)
	require.True(t, created.CreatedAt.Equal(fixedNow))

	all, err := f.catalog.ListAll(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, all, len(memory.SeedPops())+1)
	require.Equal(t, "diet-coke", all[0].ID)
	require.Equal(t, "custom-1", all[len(all)-1].ID)

	bob, err := f.catalog.ListAll(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bob, len(memory.SeedPops()))

	got, found, err := f.catalog.GetByID(ctx, "alice", "custom-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, created, got)

	_, found, err = f.catalog.GetByID(ctx, "bob", "custom-1")
	require.NoError(t, err)
	require.False(t, found)

	f.mirror.Wait()
	stored, found, err := kv.NewCustomPopRepository(f.store).ListCustom(ctx, "alice")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, stored, 1)
}

func TestCatalogService_AddCustomValidates(t *testing.T) {
	tests := map[string]func(in *CreateCustomPopInput){
		"short name":    func(in *CreateCustomPopInput) { in.Name = "x" },
		"missing brand": func(in *CreateCustomPopInput) { in.Brand = " " },
		"bad color":     func(in *CreateCustomPopInput) { in.PrimaryColor = "red" },
		"negative caf":  func(in *CreateCustomPopInput) { in.Caffeine = pop.Ptr(-1) },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, nil, []string{"custom-1"})
			in := validCustomInput()
			mutate(&in)

			_, err := f.catalog.AddCustom(t.Context(), "alice", in)
			require.ErrorIs(t, err, ErrInvalidInput)

			all, err := f.catalog.Filter(t.Context(), "alice", pop.Filter{CustomOnly: true})
			require.NoError(t, err)
			require.Empty(t, all)
		})
	}
}

func TestCatalogService_BrandsAndFilter(t *testing.T) {
	f := newFixture(t, nil, []string{"custom-1"})
	ctx := t.Context()

	in := validCustomInput()
	in.Brand = "Homebrew"
	_, err := f.catalog.AddCustom(ctx, "alice", in)
	require.NoError(t, err)

	brands, err := f.catalog.ListBrands(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, []string{"7UP", "Coca-Cola", "Dr Pepper", "Dr Pepper Snapple", "Homebrew", "PepsiCo"}, brands)

	dr, err := f.catalog.ListByBrand(ctx, "alice", "Dr Pepper")
	require.NoError(t, err)
	require.Len(t, dr, 3)

	cherry, err := f.catalog.Filter(ctx, "alice", pop.Filter{Brand: pop.AllBrands, Search: "CHERRY"})
	require.NoError(t, err)
	ids := make([]string, 0, len(cherry))
	for _, p := range cherry {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []string{"diet-coke-cherry", "diet-pepsi-wild-cherry", "diet-dr-pepper-cherry", "custom-1"}, ids)

	custom, err := f.catalog.Filter(ctx, "alice", pop.Filter{CustomOnly: true})
	require.NoError(t, err)
	require.Len(t, custom, 1)

	_, err = f.catalog.ListByBrand(ctx, "alice", "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCatalogService_RemoveCustomClearsLineupSlot(t *testing.T) {
	f := newFixture(t, []string{"lineup-001"}, []string{"custom-1"})
	ctx := t.Context()

	created, err := f.catalog.AddCustom(ctx, "alice", validCustomInput())
	require.NoError(t, err)
	_, err = f.lineups.Assign(ctx, "alice", created.ID, lineup.Position3LD)
	require.NoError(t, err)
	_, err = f.lineups.Assign(ctx, "alice", "diet-coke", lineup.Position1C)
	require.NoError(t, err)

	require.NoError(t, f.catalog.RemoveCustom(ctx, "alice", created.ID))

	current, err := f.lineups.Current(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "", current.At(lineup.Position3LD))
	require.Equal(t, "diet-coke", current.At(lineup.Position1C))

	_, found, err := f.catalog.GetByID(ctx, "alice", created.ID)
	require.NoError(t, err)
	require.False(t, found)

	require.ErrorIs(t, f.catalog.RemoveCustom(ctx, "alice", created.ID), ErrNotFound)
	require.ErrorIs(t, f.catalog.RemoveCustom(ctx, "alice", "diet-coke"), ErrNotFound)
}

func TestCatalogService_LoadErrorStartsEmpty(t *testing.T) {
	repo := popmock.NewCustomRepository(t)
	repo.
		On("ListCustom", mock.Anything, "alice").
		Return(nil, false, errors.New("connection reset")).
		Once()

	standard, err := memory.NewStandardRepository()
	require.NoError(t, err)
	service := NewCatalogService(standard, repo, idgen.NewSequence(), nil, logging.NewNop())

	all, err := service.ListAll(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, all, len(memory.SeedPops()))
}

func TestCatalogService_UnavailableStoreIsNotCached(t *testing.T) {
	ctx := context.Background()
	stored := []pop.Pop{{
		ID: "custom-9", Name: "Night Shift", Brand: "Pepsi",
		PrimaryColor: "#000000", SecondaryColor: "#0000FF", IsCustom: true,
	}}

	repo := popmock.NewCustomRepository(t)
	repo.
		On("ListCustom", mock.Anything, "alice").
		Return(nil, false, kvstore.Unavailable(errors.New("connection refused"), "get kv entry")).
		Twice()
	repo.
		On("ListCustom", mock.Anything, "alice").
		Return(stored, true, nil).
		Once()

	standard, err := memory.NewStandardRepository()
	require.NoError(t, err)
	service := NewCatalogService(standard, repo, idgen.NewSequence("custom-new"), nil, logging.NewNop())

	all, err := service.ListAll(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, all, len(memory.SeedPops()))

	_, err = service.AddCustom(ctx, "alice", validCustomInput())
	require.ErrorIs(t, err, ErrDependencyUnavailable)

	all, err = service.ListAll(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, all, len(memory.SeedPops())+1)
	require.Equal(t, "custom-9", all[len(all)-1].ID)
}
