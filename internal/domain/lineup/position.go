package lineup

import (
	"fmt"
	"strings"
)

// Position is one of the 18 fixed roster slots.
type Position string

const (
	Position1C  Position = "1C"
	Position1LW Position = "1LW"
	Position1RW Position = "1RW"
	Position2C  Position = "2C"
	Position2LW Position = "2LW"
	Position2RW Position = "2RW"
	Position3C  Position = "3C"
	Position3LW Position = "3LW"
	Position3RW Position = "3RW"
	Position4C  Position = "4C"
	Position4LW Position = "4LW"
	Position4RW Position = "4RW"

	Position1LD Position = "1LD"
	Position1RD Position = "1RD"
	Position2LD Position = "2LD"
	Position2RD Position = "2RD"
	Position3LD Position = "3LD"
	Position3RD Position = "3RD"
)

// PositionCount is the number of roster slots in every lineup.
const PositionCount = 18

type Kind string

const (
	KindForward Kind = "forward"
	KindDefense Kind = "defense"
)

type Side string

const (
	SideLeft   Side = "L"
	SideRight  Side = "R"
	SideCenter Side = "C"
)

// PositionInfo describes where a slot sits on the roster card.
type PositionInfo struct {
	Label string
	Line  int
	Kind  Kind
	Side  Side
}

var positionOrder = [PositionCount]Position{
	Position1C, Position1LW, Position1RW,
	Position2C, Position2LW, Position2RW,
	Position3C, Position3LW, Position3RW,
	Position4C, Position4LW, Position4RW,
	Position1LD, Position1RD,
	Position2LD, Position2RD,
	Position3LD, Position3RD,
}

var positionInfo = [PositionCount]PositionInfo{
	{Label: "1st Line C", Line: 1, Kind: KindForward, Side: SideCenter},
	{Label: "1st Line LW", Line: 1, Kind: KindForward, Side: SideLeft},
	{Label: "1st Line RW", Line: 1, Kind: KindForward, Side: SideRight},
	{Label: "2nd Line C", Line: 2, Kind: KindForward, Side: SideCenter},
	{Label: "2nd Line LW", Line: 2, Kind: KindForward, Side: SideLeft},
	{Label: "2nd Line RW", Line: 2, Kind: KindForward, Side: SideRight},
	{Label: "3rd Line C", Line: 3, Kind: KindForward, Side: SideCenter},
	{Label: "3rd Line LW", Line: 3, Kind: KindForward, Side: SideLeft},
	{Label: "3rd Line RW", Line: 3, Kind: KindForward, Side: SideRight},
	{Label: "4th Line C", Line: 4, Kind: KindForward, Side: SideCenter},
	{Label: "4th Line LW", Line: 4, Kind: KindForward, Side: SideLeft},
	{Label: "4th Line RW", Line: 4, Kind: KindForward, Side: SideRight},
	{Label: "1st Pair LD", Line: 1, Kind: KindDefense, Side: SideLeft},
	{Label: "1st Pair RD", Line: 1, Kind: KindDefense, Side: SideRight},
	{Label: "2nd Pair LD", Line: 2, Kind: KindDefense, Side: SideLeft},
	{Label: "2nd Pair RD", Line: 2, Kind: KindDefense, Side: SideRight},
	{Label: "3rd Pair LD", Line: 3, Kind: KindDefense, Side: SideLeft},
	{Label: "3rd Pair RD", Line: 3, Kind: KindDefense, Side: SideRight},
}

var positionIndex = func() map[Position]int {
	out := make(map[Position]int, PositionCount)
	for i, p := range positionOrder {
		out[p] = i
	}
	return out
}()

// ForwardLines and DefensePairs are the line counts per group.
const (
	ForwardLines = 4
	DefensePairs = 3
)

// AllPositions returns every slot in canonical roster order.
func AllPositions() []Position {
	out := make([]Position, PositionCount)
	copy(out, positionOrder[:])
	return out
}

func ForwardPositions() []Position {
	return positionsWhere(func(info PositionInfo) bool { return info.Kind == KindForward })
}

func DefensePositions() []Position {
	return positionsWhere(func(info PositionInfo) bool { return info.Kind == KindDefense })
}

// PositionsByLine returns the slots of one forward line or defense pair.
func PositionsByLine(line int, kind Kind) []Position {
	return positionsWhere(func(info PositionInfo) bool { return info.Line == line && info.Kind == kind })
}

func positionsWhere(match func(PositionInfo) bool) []Position {
	out := make([]Position, 0, PositionCount)
	for i, p := range positionOrder {
		if match(positionInfo[i]) {
			out = append(out, p)
		}
	}
	return out
}

// ParsePosition converts untrusted input into a Position.
func ParsePosition(raw string) (Position, error) {
	p := Position(strings.ToUpper(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown position %q", raw)
	}
	return p, nil
}

func (p Position) Valid() bool {
	_, ok := positionIndex[p]
	return ok
}

func (p Position) Info() PositionInfo {
	return positionInfo[p.index()]
}

func (p Position) String() string {
	return string(p)
}

// index panics for positions outside the fixed set; callers at the edges
// must go through ParsePosition first.
func (p Position) index() int {
	i, ok := positionIndex[p]
	if !ok {
		panic(fmt.Sprintf("lineup: invalid position %q", string(p)))
	}
	return i
}
