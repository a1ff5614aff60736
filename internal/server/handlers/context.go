package handlers

import (
	"context"

	"github.com/regretshq/regrets/internal/server/token"
)

// contextKey is the type for request context keys
type contextKey string

// ClaimsKey holds the verified identity claims for one request
const ClaimsKey contextKey = "claims"

// ContextWithClaims returns a context carrying the verified claims
func ContextWithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// ClaimsFromContext extracts the verified claims from the request context.
// ok is false for anonymous requests.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*token.Claims)
	return claims, ok
}
