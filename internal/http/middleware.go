package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dfarias/fincontrol/internal/auth"
)

type contextKey string

const userEmailKey contextKey = "userEmail"

// RequireAuth validates the Bearer token and injects the user email
// into the request context.
func RequireAuth(authSvc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "missing credentials", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			email, err := authSvc.ValidateToken(parts[1])
			if err != nil {
				slog.Warn("rejected token", "path", r.URL.Path, "error", err)
				http.Error(w, "invalid or expired credentials", http.StatusUnauthorized)

				return
			}

			ctx := context.WithValue(r.Context(), userEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserEmailFromContext returns the authenticated user's email, if any.
func UserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(userEmailKey).(string)
	return email
}
