// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/metro-bond/internal/core"
)

type contextKey string

const ClaimsKey contextKey = "jwt_claims"

const RoleAdmin = "admin"

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

// AccessTokenClaims is the identity decoded from a verified bearer token.
type AccessTokenClaims struct {
	Email string
	Name  string
}

// RoleLookup resolves the stored role of an account. It returns an error
// wrapping core.ErrNotFound when no account exists for the email.
type RoleLookup interface {
	GetRoleByEmail(ctx context.Context, email string) (string, error)
}

func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("missing authorization token"),
				)
				return
			}

			claims, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// AdminGate must run after Authenticator. The role is read from the store
// on every request so a demotion takes effect immediately.
func AdminGate(lookup RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := GetUserEmail(r.Context())
			if email == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			role, err := lookup.GetRoleByEmail(r.Context(), email)
			if err != nil {
				if errors.Is(err, core.ErrNotFound) {
					core.Forbidden(w, "")
					return
				}
				core.InternalServerError(w, r, err)
				return
			}

			if role != RoleAdmin {
				core.Forbidden(w, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SelfParam restricts a route to the account named by the {param} path
// segment.
func SelfParam(param string) func(http.Handler) http.Handler {
	return requireSelf(func(r *http.Request) string {
		return chi.URLParam(r, param)
	})
}

// SelfQuery restricts a route to the account named by a query parameter.
func SelfQuery(param string) func(http.Handler) http.Handler {
	return requireSelf(func(r *http.Request) string {
		return r.URL.Query().Get(param)
	})
}

func requireSelf(target func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := GetUserEmail(r.Context())
			if email == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			if !strings.EqualFold(target(r), email) {
				core.Forbidden(w, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

func GetUserEmail(ctx context.Context) string {
	if claims := GetClaims(ctx); claims != nil {
		return claims.Email
	}
	return ""
}

func GetClaims(ctx context.Context) *AccessTokenClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*AccessTokenClaims); ok {
		return claims
	}
	return nil
}

func WithClaims(ctx context.Context, claims *AccessTokenClaims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}
