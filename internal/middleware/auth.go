package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Strob0t/clientdesk/internal/domain/user"
)

type actorCtxKey struct{}

// DefaultActor is injected on every request when authentication is disabled.
var DefaultActor = user.Actor{UserID: 1, Role: user.RoleAdmin}

// TokenValidator turns a bearer token into the actor it was issued for.
type TokenValidator interface {
	ValidateToken(token string) (user.Actor, error)
}

// Auth returns middleware that resolves the request actor from an
// "Authorization: Bearer <jwt>" header. Requests without the header carry
// the anonymous actor; each operation decides whether that is enough.
// A present but invalid credential is rejected with 401.
// When enabled is false, DefaultActor is injected.
func Auth(v TokenValidator, enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), DefaultActor)))
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				writeEnvelope(w, http.StatusUnauthorized, "Invalid authorization header.")
				return
			}

			actor, err := v.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				slog.DebugContext(r.Context(), "token rejected", "error", err)
				writeEnvelope(w, http.StatusUnauthorized, "Invalid or expired token.")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor user.Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}

// ActorFromContext returns the request actor, or the anonymous actor when
// none was resolved.
func ActorFromContext(ctx context.Context) user.Actor {
	a, _ := ctx.Value(actorCtxKey{}).(user.Actor)
	return a
}
