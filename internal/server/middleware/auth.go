package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/regretshq/regrets/internal/server/handlers"
	"github.com/regretshq/regrets/internal/server/token"
)

// RequireAuth creates middleware that rejects requests without a valid
// bearer token. On success the verified claims are attached to the
// request context.
func RequireAuth(logger *slog.Logger, codec *token.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := extractBearerToken(r)
			if !ok {
				logger.Warn("missing or malformed Authorization header")
				http.Error(w, "Unauthorized: missing token", http.StatusUnauthorized)
				return
			}

			claims, err := codec.Verify(tokenString)
			if err != nil {
				logger.Warn("invalid bearer token", "error", err)
				http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			ctx := handlers.ContextWithClaims(r.Context(), claims)

			logger.Debug("request authenticated", "username", claims.Username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth creates middleware that attaches claims when a valid
// bearer token is present and otherwise lets the request through as
// anonymous. A missing header, a malformed header and a token that fails
// verification all degrade to anonymous; none of them fail the request.
func OptionalAuth(logger *slog.Logger, codec *token.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := extractBearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := codec.Verify(tokenString)
			if err != nil {
				logger.Debug("ignoring invalid bearer token on optional route", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := handlers.ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls the token out of the Authorization header.
// ok is false when the header is absent, not in "Bearer <token>" form,
// or has an empty token segment.
func extractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	if parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
