package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/ariefcatur/go-shop-backend/internal/auth"
)

type ctxKey int

const userKey ctxKey = iota

// requireUser resolves the bearer token to a user and puts it on the request
// context. 401 when the token is missing or has no session.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			return
		}
		u, err := h.Auth.UserByToken(r.Context(), token)
		if err != nil {
			h.logger().Error("session lookup failed", "err", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an unexpected error occurred"})
			return
		}
		if u == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

// UserFrom returns the authenticated user requireUser stored on the context.
func UserFrom(ctx context.Context) *auth.User {
	u, _ := ctx.Value(userKey).(*auth.User)
	return u
}

func bearerToken(r *http.Request) string {
	v := r.Header.Get("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(v, "Bearer "))
}
