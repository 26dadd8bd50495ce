package settings

import "context"

type Repository interface {
	Get(ctx context.Context, ownerID string) (Settings, bool, error)
	Save(ctx context.Context, ownerID string, s Settings) error
	Delete(ctx context.Context, ownerID string) error
}
