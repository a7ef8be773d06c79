package middleware

import (
	"context"

	"github.com/Devaraju89/OneKart-sub000/internal/identity"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// IdentityFromContext returns the resolved identity seeded by Auth.
func IdentityFromContext(ctx context.Context) (*identity.Identity, bool) {
	if ctx == nil {
		return nil, false
	}
	id, ok := ctx.Value(ctxIdentity).(*identity.Identity)
	return id, ok
}

// WithIdentity injects a resolved identity into the context. Exposed for
// handler tests.
func WithIdentity(ctx context.Context, id *identity.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, id)
}
