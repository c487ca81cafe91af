package auth

import (
	"context"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// tokenContextKey is the context key for storing the bearer token.
	tokenContextKey contextKey = "bearer_token"
)

// ContextWithToken adds the bearer token to the context.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext retrieves the bearer token from the context.
// The second return value is false when no token was stored.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok
}

// IsAuthenticated reports whether a bearer token was accepted for the request.
func IsAuthenticated(ctx context.Context) bool {
	_, ok := TokenFromContext(ctx)
	return ok
}
