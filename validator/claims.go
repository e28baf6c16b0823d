package validator

// Claims is the normalized, immutable result of a successful token
// validation. It is what gets attached to the request context.
//
// Normalization rules:
//   - Subject is the empty string when the token carries no sub claim.
//   - Audience preserves the token's aud values in order; a bare string
//     audience becomes a one-element slice.
//   - Scopes is the token's space-delimited scope claim split into tokens,
//     in order; an absent scope claim yields an empty slice, never nil.
//   - Expiry is unix seconds, 0 when the token carries no exp claim.
type Claims struct {
	Subject  string
	Issuer   string
	Audience []string
	Scopes   []string
	Expiry   int64
}

// HasScope reports whether the token was granted the given scope.
func (c *Claims) HasScope(scope string) bool {
	if c == nil {
		return false
	}
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// HasAnyScope reports whether the token was granted at least one of the
// given scopes. An empty argument list yields false.
func (c *Claims) HasAnyScope(scopes ...string) bool {
	for _, scope := range scopes {
		if c.HasScope(scope) {
			return true
		}
	}
	return false
}

// HasAllScopes reports whether the token was granted every one of the given
// scopes. An empty argument list yields true.
func (c *Claims) HasAllScopes(scopes ...string) bool {
	for _, scope := range scopes {
		if !c.HasScope(scope) {
			return false
		}
	}
	return true
}
