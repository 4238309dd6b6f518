package ctxkeys

import (
	"context"

	"github.com/strivehq/strive/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	PrincipalKey contextKey = "principal"
)

func Principal(ctx context.Context) *model.Principal {
	principal, _ := ctx.Value(PrincipalKey).(*model.Principal)
	return principal
}

func WithPrincipal(ctx context.Context, principal *model.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}
