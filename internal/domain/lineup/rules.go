package lineup

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/riskibarqy/dietpop-lineup/internal/domain/pop"
)

var (
	ErrDuplicateAssignment = errors.New("pop assigned to more than one position")
	ErrMissingID           = errors.New("lineup id is required")
)

// Assign puts itemID into pos. Any slot already holding itemID is vacated
// first, and whatever pos held before is dropped from the lineup.
func Assign(l Lineup, itemID string, pos Position, now time.Time) Lineup {
	if itemID == "" {
		panic("lineup: assign requires a non-empty item id")
	}
	target := pos.index()
	if current, ok := FindPositionOf(l, itemID); ok {
		l.Positions[current.index()] = ""
	}
	l.Positions[target] = itemID
	l.UpdatedAt = now
	return l
}

// Remove empties pos regardless of what it held.
func Remove(l Lineup, pos Position, now time.Time) Lineup {
	l.Positions[pos.index()] = ""
	l.UpdatedAt = now
	return l
}

// Swap exchanges the contents of a and b. Both values are read before either
// slot is written, so it is its own inverse.
func Swap(l Lineup, a, b Position, now time.Time) Lineup {
	ia, ib := a.index(), b.index()
	first, second := l.Positions[ia], l.Positions[ib]
	l.Positions[ia] = second
	l.Positions[ib] = first
	l.UpdatedAt = now
	return l
}

// Move relocates the pop at from into to, swapping when to is occupied.
// Moving out of an empty slot returns l unchanged.
func Move(l Lineup, from, to Position, now time.Time) Lineup {
	itemID := l.At(from)
	if itemID == "" {
		return l
	}
	if l.At(to) != "" {
		return Swap(l, from, to, now)
	}
	l.Positions[from.index()] = ""
	l.Positions[to.index()] = itemID
	l.UpdatedAt = now
	return l
}

// Clear keeps the identity and name of l but resets every slot and both
// timestamps.
func Clear(l Lineup, now time.Time) Lineup {
	return New(l.ID, l.Name, now)
}

// Rename changes the display name; an empty name falls back to DefaultName.
func Rename(l Lineup, name string, now time.Time) Lineup {
	if name == "" {
		name = DefaultName
	}
	l.Name = name
	l.UpdatedAt = now
	return l
}

// FindPositionOf returns the slot holding itemID.
func FindPositionOf(l Lineup, itemID string) (Position, bool) {
	if itemID == "" {
		return "", false
	}
	for i, held := range l.Positions {
		if held == itemID {
			return positionOrder[i], true
		}
	}
	return "", false
}

// RemoveItem vacates every slot holding itemID. The bool reports whether the
// lineup changed; UpdatedAt is only refreshed in that case.
func RemoveItem(l Lineup, itemID string, now time.Time) (Lineup, bool) {
	if itemID == "" {
		return l, false
	}
	changed := false
	for i, held := range l.Positions {
		if held == itemID {
			l.Positions[i] = ""
			changed = true
		}
	}
	if changed {
		l.UpdatedAt = now
	}
	return l, changed
}

// AssignedItems lists the occupied slots' pop ids in roster order.
func AssignedItems(l Lineup) []string {
	out := make([]string, 0, PositionCount)
	for _, held := range l.Positions {
		if held != "" {
			out = append(out, held)
		}
	}
	return out
}

func FilledCount(l Lineup) int {
	count := 0
	for _, held := range l.Positions {
		if held != "" {
			count++
		}
	}
	return count
}

// Completion is the filled share of the roster as a rounded percentage.
func Completion(l Lineup) int {
	return percentage(FilledCount(l), PositionCount)
}

// Validate checks a lineup restored from outside the package.
func Validate(l Lineup) error {
	if l.ID == "" {
		return ErrMissingID
	}
	seen := make(map[string]Position, PositionCount)
	for i, held := range l.Positions {
		if held == "" {
			continue
		}
		if prev, ok := seen[held]; ok {
			return fmt.Errorf("%w: %s at %s and %s", ErrDuplicateAssignment, held, prev, positionOrder[i])
		}
		seen[held] = positionOrder[i]
	}
	return nil
}

// GroupStats summarises one forward line or defense pair.
type GroupStats struct {
	Line       int
	Filled     int
	Total      int
	Percentage int
}

// Stats summarises a lineup against the catalog.
type Stats struct {
	TotalPops    int
	Completion   int
	ForwardLines []GroupStats
	DefensePairs []GroupStats
	Brands       map[string]int
	AvgCaffeine  int
}

// Lookup resolves a pop id against the catalog.
type Lookup func(id string) (pop.Pop, bool)

// ComputeStats builds Stats for l. Ids the lookup cannot resolve still count
// as filled slots but contribute nothing to brand or caffeine figures.
func ComputeStats(l Lineup, lookup Lookup) Stats {
	assigned := AssignedItems(l)
	stats := Stats{
		TotalPops:    len(assigned),
		Completion:   Completion(l),
		ForwardLines: groupStats(l, ForwardLines, KindForward),
		DefensePairs: groupStats(l, DefensePairs, KindDefense),
		Brands:       make(map[string]int),
	}

	resolved := 0
	totalCaffeine := 0
	for _, id := range assigned {
		if lookup == nil {
			break
		}
		p, ok := lookup(id)
		if !ok {
			continue
		}
		resolved++
		stats.Brands[p.Brand]++
		totalCaffeine += p.CaffeineOrZero()
	}
	if resolved > 0 {
		stats.AvgCaffeine = int(math.Round(float64(totalCaffeine) / float64(resolved)))
	}

	return stats
}

func groupStats(l Lineup, lines int, kind Kind) []GroupStats {
	out := make([]GroupStats, 0, lines)
	for line := 1; line <= lines; line++ {
		positions := PositionsByLine(line, kind)
		filled := 0
		for _, p := range positions {
			if l.At(p) != "" {
				filled++
			}
		}
		out = append(out, GroupStats{
			Line:       line,
			Filled:     filled,
			Total:      len(positions),
			Percentage: percentage(filled, len(positions)),
		})
	}
	return out
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
