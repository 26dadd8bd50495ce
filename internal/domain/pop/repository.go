package pop

import "context"

// CustomRepository persists the user-created pops of one owner.
type CustomRepository interface {
	ListCustom(ctx context.Context, ownerID string) ([]Pop, bool, error)
	SaveCustom(ctx context.Context, ownerID string, pops []Pop) error
	DeleteCustom(ctx context.Context, ownerID string) error
}

// StandardRepository lists the seeded catalog shared by every owner.
type StandardRepository interface {
	ListStandard(ctx context.Context) ([]Pop, error)
}
