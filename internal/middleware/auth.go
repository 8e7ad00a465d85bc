package middleware

import (
	"net/http"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/httputil"
)

// Auth validates the bearer token on every request and stores the resolved
// owner id in the request context. Requests without a valid token get a
// 401 problem response with code "unauthorized".
func Auth(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Liveness probes carry no credentials.
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondUnauthorized(w, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithOwnerID(r, claims.Subject))
		})
	}
}

// StaticAuth resolves every request to a fixed owner id. Used in local
// development when no identity provider is configured.
func StaticAuth(ownerID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, httputil.WithOwnerID(r, ownerID))
		})
	}
}

func respondUnauthorized(w http.ResponseWriter, detail string) {
	httputil.RespondErrorWithExtras(w, http.StatusUnauthorized, detail, map[string]interface{}{
		"code": "unauthorized",
	})
}
