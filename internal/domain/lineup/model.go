package lineup

import "time"

// DefaultName is used when a lineup is created without a name.
const DefaultName = "My Lineup"

// Lineup maps every roster slot to an optional pop id. An empty string is the
// empty marker. Positions is an array, so copying a Lineup never aliases slots.
type Lineup struct {
	ID        string
	Name      string
	Positions [PositionCount]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New returns a lineup with all 18 slots empty.
func New(id, name string, now time.Time) Lineup {
	if name == "" {
		name = DefaultName
	}
	return Lineup{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// At returns the pop id held by pos, or "" when the slot is empty.
func (l Lineup) At(pos Position) string {
	return l.Positions[pos.index()]
}

// Slots returns the lineup as a position keyed map holding all 18 keys.
func (l Lineup) Slots() map[Position]string {
	out := make(map[Position]string, PositionCount)
	for i, p := range positionOrder {
		out[p] = l.Positions[i]
	}
	return out
}

// WithSlot returns a copy with pos set to itemID without touching other slots
// or timestamps. Used when restoring persisted state.
func (l Lineup) WithSlot(pos Position, itemID string) Lineup {
	l.Positions[pos.index()] = itemID
	return l
}
