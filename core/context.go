package core

import "context"

// contextKey is an unexported type for context keys so that no other package
// can collide with, or forge, the claims entry.
type contextKey int

const claimsKey contextKey = iota

// SetClaims stores claims in the context. Transports call this exactly once
// per request, and only after successful authentication.
func SetClaims(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaims retrieves claims from the context, asserting them to T.
//
//	claims, err := core.GetClaims[*validator.Claims](r.Context())
func GetClaims[T any](ctx context.Context) (T, error) {
	var zero T

	val := ctx.Value(claimsKey)
	if val == nil {
		return zero, ErrClaimsNotFound
	}

	claims, ok := val.(T)
	if !ok {
		return zero, ErrClaimsNotFound
	}

	return claims, nil
}

// HasClaims reports whether claims exist in the context without retrieving
// them.
func HasClaims(ctx context.Context) bool {
	return ctx.Value(claimsKey) != nil
}
