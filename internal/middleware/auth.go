package middleware

import (
	"net/http"

	"github.com/mwalczyk/taskboard/internal/apperr"
	"github.com/mwalczyk/taskboard/internal/auth"
)

// RequireAuth validates the bearer token on each request and injects the
// verified identity into the request context. A missing header and a failed
// verification are distinct outcomes (401 vs 403).
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := auth.BearerFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				apperr.Write(w, apperr.Unauthenticated("Access denied, token missing!"), false)
				return
			}

			id, err := tokens.Verify(raw)
			if err != nil {
				apperr.Write(w, apperr.Forbidden("Invalid token"), false)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}
