package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/response"
)

type ctxKey string

const UserIDKey ctxKey = "uid"

// UserID returns the authenticated user id placed in the context by Auth.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

type TokenParser interface {
	Parse(raw string) (string, error)
}

type UserGetter interface {
	UserByID(ctx context.Context, id string) (*model.User, error)
}

// Auth guards a route group. A token authenticates only if its signature
// verifies, it is unexpired, and its subject still resolves to a stored
// user.
func Auth(log *slog.Logger, tokens TokenParser, users UserGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}

			userID, err := tokens.Parse(raw)
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			if _, err := users.UserByID(r.Context(), userID); err != nil {
				log.Warn("token subject does not resolve", slog.String("uid", userID))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
