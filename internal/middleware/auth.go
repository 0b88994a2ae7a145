package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ayush/food-ratings/internal/auth"
	"github.com/ayush/food-ratings/internal/httpx"
	"github.com/ayush/food-ratings/internal/models"
)

// TokenResolver maps an access token to its user.
type TokenResolver interface {
	FindByToken(ctx context.Context, token string) (*models.User, error)
}

// RequireAuth is middleware that resolves the Authorization header to a
// user and injects it into the request context. Every rejection carries
// the same body.
func RequireAuth(users TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if !auth.WellFormed(token) {
				httpx.WriteError(w, http.StatusUnauthorized, auth.UnauthorizedMessage)
				return
			}

			user, err := users.FindByToken(r.Context(), token)
			if err != nil {
				if !errors.Is(err, models.ErrNotFound) {
					slog.Error("token lookup", "error", err)
				}
				httpx.WriteError(w, http.StatusUnauthorized, auth.UnauthorizedMessage)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

// bearerToken accepts both "Authorization: <token>" and
// "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return h
}
