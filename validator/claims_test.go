package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Claims_ScopeHelpers(t *testing.T) {
	claims := &Claims{Scopes: []string{"files:read", "files:write"}}

	assert.True(t, claims.HasScope("files:read"))
	assert.False(t, claims.HasScope("admin"))

	assert.True(t, claims.HasAnyScope("admin", "files:write"))
	assert.False(t, claims.HasAnyScope("admin", "root"))
	assert.False(t, claims.HasAnyScope())

	assert.True(t, claims.HasAllScopes("files:read", "files:write"))
	assert.False(t, claims.HasAllScopes("files:read", "admin"))
	assert.True(t, claims.HasAllScopes())
}

func Test_Claims_ScopeHelpersNil(t *testing.T) {
	var claims *Claims

	assert.False(t, claims.HasScope("files:read"))
	assert.False(t, claims.HasAnyScope("files:read"))
	assert.False(t, claims.HasAllScopes("files:read"))
}
