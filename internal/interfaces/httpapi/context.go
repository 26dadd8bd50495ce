package httpapi

import (
	"context"
	"strings"

	"github.com/riskibarqy/dietpop-lineup/internal/usecase"
)

type contextKey string

const (
	ownerContextKey contextKey = "owner_id"
	ownerHeader                = "X-Owner-ID"
)

func withOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerContextKey, ownerID)
}

// ownerFromContext falls back to the single-user owner when no middleware set
// one.
func ownerFromContext(ctx context.Context) string {
	ownerID, ok := ctx.Value(ownerContextKey).(string)
	if !ok || strings.TrimSpace(ownerID) == "" {
		return usecase.DefaultOwnerID
	}
	return ownerID
}
