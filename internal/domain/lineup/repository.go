package lineup

import "context"

// Repository exposes lineup persistence for one owner's current lineup.
type Repository interface {
	Get(ctx context.Context, ownerID string) (Lineup, bool, error)
	Save(ctx context.Context, ownerID string, item Lineup) error
	Delete(ctx context.Context, ownerID string) error
}
