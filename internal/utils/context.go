package utils

import (
	"context"
	"errors"

	"github.com/familychef/familychef/internal/auth"
)

// Key type for context values
type contextKey string

// Constant for auth context key
const authContextKey contextKey = "authContext"

// GetAuthContext extracts the authorization context from the request context
func GetAuthContext(ctx context.Context) (auth.Context, error) {
	ac, ok := ctx.Value(authContextKey).(auth.Context)
	if !ok {
		return auth.Context{}, errors.New("auth context not found in context")
	}
	return ac, nil
}

// SetAuthContext adds the authorization context to the context
func SetAuthContext(ctx context.Context, ac auth.Context) context.Context {
	return context.WithValue(ctx, authContextKey, ac)
}
