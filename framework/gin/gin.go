// Package authgin adapts the authware middleware to the Gin framework.
package authgin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/authware/authware/core"
	"github.com/authware/authware/oauth"
)

// DefaultClaimsKey is the gin context key claims are stored under.
const DefaultClaimsKey = "authware/claims"

var (
	ErrMissingClaims = errors.New("no claims found in context")
	ErrInvalidClaims = errors.New("invalid claims type")
)

type middlewareConfig struct {
	errorHandler   func(c *gin.Context, err error)
	contextKey     string
	resourceServer *oauth.ResourceServerConfig
}

// New returns a gin.HandlerFunc that authenticates every request with the
// given authenticator. On success the claims land both in the gin context
// under the configured key and in the request context for core.GetClaims;
// on failure the chain is aborted with 401.
func New(authenticator core.Authenticator, opts ...Option) gin.HandlerFunc {
	config := &middlewareConfig{
		contextKey: DefaultClaimsKey,
	}

	for _, opt := range opts {
		opt(config)
	}

	if config.errorHandler == nil {
		config.errorHandler = config.defaultErrorHandler
	}

	return func(c *gin.Context) {
		claims, err := authenticator.Authenticate(c.Request.Context(), c.Request.Header)
		if err != nil {
			config.errorHandler(c, err)
			if !c.IsAborted() {
				c.Abort()
			}
			return
		}

		c.Set(config.contextKey, claims)
		c.Request = c.Request.Clone(core.SetClaims(c.Request.Context(), claims))
		c.Next()
	}
}

func (config *middlewareConfig) defaultErrorHandler(c *gin.Context, err error) {
	if config.resourceServer != nil {
		c.Header("WWW-Authenticate", oauth.WWWAuthenticate401(config.resourceServer))
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": err.Error(),
	})
}

// GetClaims retrieves typed claims previously stored by the middleware.
// Pass an empty contextKey to use DefaultClaimsKey.
func GetClaims[T any](c *gin.Context, contextKey string) (T, error) {
	var zero T
	if contextKey == "" {
		contextKey = DefaultClaimsKey
	}

	claims, exists := c.Get(contextKey)
	if !exists {
		return zero, ErrMissingClaims
	}

	typed, ok := claims.(T)
	if !ok {
		return zero, ErrInvalidClaims
	}

	return typed, nil
}
