package lineup

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/riskibarqy/dietpop-lineup/internal/domain/pop"
)

var (
	t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Minute)
	t2 = t0.Add(2 * time.Minute)
)

func assertUnique(t *testing.T, l Lineup) {
	t.Helper()
	if err := Validate(l); err != nil {
		t.Fatalf("lineup violates uniqueness: %v", err)
	}
}

func TestNewStartsEmpty(t *testing.T) {
	l := New("lineup-1", "", t0)
	if l.Name != DefaultName {
		t.Fatalf("expected default name, got %q", l.Name)
	}
	if FilledCount(l) != 0 {
		t.Fatalf("expected empty lineup, got %d filled", FilledCount(l))
	}
	if len(l.Slots()) != PositionCount {
		t.Fatalf("expected %d slots, got %d", PositionCount, len(l.Slots()))
	}
	if !l.CreatedAt.Equal(t0) || !l.UpdatedAt.Equal(t0) {
		t.Fatalf("unexpected timestamps: %v %v", l.CreatedAt, l.UpdatedAt)
	}
}

func TestAssignMovesItemInsteadOfDuplicating(t *testing.T) {
	l := Assign(New("l", "", t0), "x", Position1C, t1)
	l = Assign(l, "x", Position2LW, t2)

	if l.At(Position1C) != "" {
		t.Fatalf("expected 1C to be vacated, got %q", l.At(Position1C))
	}
	if l.At(Position2LW) != "x" {
		t.Fatalf("expected 2LW=x, got %q", l.At(Position2LW))
	}
	if !l.UpdatedAt.Equal(t2) {
		t.Fatalf("expected updatedAt refreshed")
	}
	assertUnique(t, l)
}

func TestAssignOverwriteDropsDisplacedOccupant(t *testing.T) {
	l := Assign(New("l", "", t0), "y", Position1RD, t1)
	l = Assign(l, "x", Position1RD, t2)

	if l.At(Position1RD) != "x" {
		t.Fatalf("expected 1RD=x, got %q", l.At(Position1RD))
	}
	if _, ok := FindPositionOf(l, "y"); ok {
		t.Fatalf("expected displaced item to leave the lineup")
	}
}

func TestAssignIsIdempotent(t *testing.T) {
	first := Assign(New("l", "", t0), "x", Position3C, t1)
	second := Assign(first, "x", Position3C, t2)

	if diff := cmp.Diff(first.Positions, second.Positions); diff != "" {
		t.Fatalf("positions changed on repeated assign (-first +second):\n%s", diff)
	}
	if !second.UpdatedAt.Equal(t2) {
		t.Fatalf("expected updatedAt refreshed on repeat")
	}
}

func TestAssignDoesNotMutateInput(t *testing.T) {
	original := New("l", "", t0)
	_ = Assign(original, "x", Position1C, t1)
	if original.At(Position1C) != "" {
		t.Fatalf("assign mutated its input")
	}
}

func TestAssignPanicsOnInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		itemID string
		pos    Position
	}{
		{name: "unknown position", itemID: "x", pos: Position("5C")},
		{name: "empty item", itemID: "", pos: Position1C},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			Assign(New("l", "", t0), tc.itemID, tc.pos, t1)
		})
	}
}

func TestRemoveEmptiesSlot(t *testing.T) {
	l := Assign(New("l", "", t0), "x", Position4RW, t1)
	l = Remove(l, Position4RW, t2)
	if l.At(Position4RW) != "" {
		t.Fatalf("expected slot to be empty")
	}

	again := Remove(l, Position4RW, t2.Add(time.Second))
	if FilledCount(again) != 0 {
		t.Fatalf("removing an empty slot must stay a no-op")
	}
	if !again.UpdatedAt.After(l.UpdatedAt) {
		t.Fatalf("expected timestamp refresh on empty remove")
	}
}

func TestSwap(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{name: "both occupied", a: "a", b: "b"},
		{name: "first empty", a: "", b: "b"},
		{name: "second empty", a: "a", b: ""},
		{name: "both empty", a: "", b: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := New("l", "", t0).WithSlot(Position1C, tc.a).WithSlot(Position2RD, tc.b)

			swapped := Swap(l, Position1C, Position2RD, t1)
			if swapped.At(Position1C) != tc.b || swapped.At(Position2RD) != tc.a {
				t.Fatalf("unexpected swap result: 1C=%q 2RD=%q", swapped.At(Position1C), swapped.At(Position2RD))
			}
			assertUnique(t, swapped)

			back := Swap(swapped, Position1C, Position2RD, t2)
			if diff := cmp.Diff(l.Positions, back.Positions); diff != "" {
				t.Fatalf("swap is not self-inverse (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMove(t *testing.T) {
	base := New("l", "", t0).WithSlot(Position1C, "a").WithSlot(Position1LW, "b")

	t.Run("into empty slot", func(t *testing.T) {
		l := Move(base, Position1C, Position2C, t1)
		if l.At(Position1C) != "" || l.At(Position2C) != "a" {
			t.Fatalf("unexpected move result: %v", l.Slots())
		}
	})

	t.Run("into occupied slot swaps", func(t *testing.T) {
		l := Move(base, Position1C, Position1LW, t1)
		if l.At(Position1C) != "b" || l.At(Position1LW) != "a" {
			t.Fatalf("expected swap on conflict: %v", l.Slots())
		}
	})

	t.Run("from empty slot is a no-op", func(t *testing.T) {
		l := Move(base, Position3C, Position1C, t1)
		if diff := cmp.Diff(base, l); diff != "" {
			t.Fatalf("expected unchanged lineup (-want +got):\n%s", diff)
		}
	})
}

func TestClearPreservesIdentity(t *testing.T) {
	l := New("lineup-7", "Top Six", t0)
	for i, p := range AllPositions() {
		l = Assign(l, string(rune('a'+i)), p, t1)
	}
	if Completion(l) != 100 {
		t.Fatalf("expected full lineup, got %d%%", Completion(l))
	}

	cleared := Clear(l, t2)
	if cleared.ID != l.ID || cleared.Name != l.Name {
		t.Fatalf("clear changed identity: %+v", cleared)
	}
	if FilledCount(cleared) != 0 {
		t.Fatalf("expected all slots empty")
	}
	if !cleared.CreatedAt.Equal(t2) || !cleared.UpdatedAt.Equal(t2) {
		t.Fatalf("expected fresh timestamps")
	}
}

func TestRemoveItem(t *testing.T) {
	l := New("l", "", t0).WithSlot(Position2RW, "custom-1")

	updated, changed := RemoveItem(l, "custom-1", t1)
	if !changed || updated.At(Position2RW) != "" {
		t.Fatalf("expected custom-1 cleared, changed=%v", changed)
	}

	same, changed := RemoveItem(updated, "missing", t2)
	if changed || !same.UpdatedAt.Equal(t1) {
		t.Fatalf("expected no-op for missing item")
	}
}

func TestFindPositionOfMissingItem(t *testing.T) {
	if _, ok := FindPositionOf(New("l", "", t0), "nope"); ok {
		t.Fatalf("expected not found")
	}
	if _, ok := FindPositionOf(New("l", "", t0), ""); ok {
		t.Fatalf("empty id must never match an empty slot")
	}
}

func TestCompletion(t *testing.T) {
	tests := []struct {
		filled int
		want   int
	}{
		{filled: 0, want: 0},
		{filled: 1, want: 6},
		{filled: 9, want: 50},
		{filled: 17, want: 94},
		{filled: 18, want: 100},
	}
	for _, tc := range tests {
		l := New("l", "", t0)
		for i, p := range AllPositions()[:tc.filled] {
			l = Assign(l, string(rune('a'+i)), p, t1)
		}
		if got := Completion(l); got != tc.want {
			t.Fatalf("completion for %d filled: want %d got %d", tc.filled, tc.want, got)
		}
	}
}

func TestScenarioMovesCokeAcrossFirstLine(t *testing.T) {
	l := New("l", "", t0)
	l = Assign(l, "diet-coke", Position1C, t1)
	l = Assign(l, "diet-pepsi", Position1LW, t1)
	l = Assign(l, "diet-coke", Position1RW, t2)

	want := New("l", "", t0).WithSlot(Position1LW, "diet-pepsi").WithSlot(Position1RW, "diet-coke")
	if diff := cmp.Diff(want.Positions, l.Positions); diff != "" {
		t.Fatalf("unexpected final lineup (-want +got):\n%s", diff)
	}
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	positions := AllPositions()
	items := []string{"a", "b", "c", "d", "e", "f"}

	l := New("l", "", t0)
	for step := 0; step < 2000; step++ {
		p := positions[rng.Intn(len(positions))]
		q := positions[rng.Intn(len(positions))]
		switch rng.Intn(4) {
		case 0:
			l = Assign(l, items[rng.Intn(len(items))], p, t1)
		case 1:
			l = Remove(l, p, t1)
		case 2:
			l = Swap(l, p, q, t1)
		default:
			l = Move(l, p, q, t1)
		}
		assertUnique(t, l)
		if len(l.Slots()) != PositionCount {
			t.Fatalf("step %d: slot map lost keys", step)
		}
	}
}

func TestValidateReportsDuplicate(t *testing.T) {
	l := New("l", "", t0).WithSlot(Position1C, "x").WithSlot(Position3LD, "x")
	err := Validate(l)
	if !errors.Is(err, ErrDuplicateAssignment) {
		t.Fatalf("expected duplicate assignment error, got %v", err)
	}
	if !errors.Is(Validate(Lineup{}), ErrMissingID) {
		t.Fatalf("expected missing id error")
	}
}

func TestComputeStats(t *testing.T) {
	catalog := map[string]pop.Pop{
		"diet-coke":  {ID: "diet-coke", Brand: "Coca-Cola", Caffeine: pop.Ptr(46)},
		"coke-zero":  {ID: "coke-zero", Brand: "Coca-Cola", Caffeine: pop.Ptr(34)},
		"diet-pepsi": {ID: "diet-pepsi", Brand: "PepsiCo", Caffeine: pop.Ptr(35)},
		"sprite":     {ID: "sprite", Brand: "Coca-Cola"},
	}
	lookup := func(id string) (pop.Pop, bool) {
		p, ok := catalog[id]
		return p, ok
	}

	l := New("l", "", t0).
		WithSlot(Position1C, "diet-coke").
		WithSlot(Position1LW, "coke-zero").
		WithSlot(Position1RW, "diet-pepsi").
		WithSlot(Position2LD, "sprite").
		WithSlot(Position3RD, "ghost")

	stats := ComputeStats(l, lookup)

	if stats.TotalPops != 5 || stats.Completion != 28 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if diff := cmp.Diff(map[string]int{"Coca-Cola": 3, "PepsiCo": 1}, stats.Brands); diff != "" {
		t.Fatalf("unexpected brands (-want +got):\n%s", diff)
	}
	// (46 + 34 + 35 + 0) / 4 = 28.75
	if stats.AvgCaffeine != 29 {
		t.Fatalf("expected avg caffeine 29, got %d", stats.AvgCaffeine)
	}
	if len(stats.ForwardLines) != ForwardLines || len(stats.DefensePairs) != DefensePairs {
		t.Fatalf("unexpected group counts")
	}
	wantFirst := GroupStats{Line: 1, Filled: 3, Total: 3, Percentage: 100}
	if diff := cmp.Diff(wantFirst, stats.ForwardLines[0]); diff != "" {
		t.Fatalf("unexpected first line (-want +got):\n%s", diff)
	}
	if got := stats.DefensePairs[1]; got.Filled != 1 || got.Percentage != 50 {
		t.Fatalf("unexpected second pair: %+v", got)
	}
}

func TestParsePosition(t *testing.T) {
	p, err := ParsePosition(" 2rd ")
	if err != nil || p != Position2RD {
		t.Fatalf("expected 2RD, got %q err=%v", p, err)
	}
	if _, err := ParsePosition("5C"); err == nil {
		t.Fatalf("expected error for unknown position")
	}
	if info := Position3LD.Info(); info.Kind != KindDefense || info.Line != 3 || info.Side != SideLeft {
		t.Fatalf("unexpected info: %+v", info)
	}
	if len(ForwardPositions()) != 12 || len(DefensePositions()) != 6 {
		t.Fatalf("unexpected group sizes")
	}
}
