package middleware

import (
	"net/http"
	"strings"

	"github.com/Devaraju89/OneKart-sub000/api/responses"
	"github.com/Devaraju89/OneKart-sub000/internal/identity"
	pkgerrors "github.com/Devaraju89/OneKart-sub000/pkg/errors"
	"github.com/Devaraju89/OneKart-sub000/pkg/logger"
)

// Auth resolves the bearer token to an identity and seeds the request
// context with it. A token referencing a deleted record fails here, which
// gives deletion the effect of immediate revocation.
func Auth(resolver identity.Resolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			id, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithIdentity(r.Context(), id)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"actor_id":   id.ID.String(),
					"actor_role": string(id.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
