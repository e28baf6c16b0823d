// Package authecho adapts the authware middleware to the Echo framework.
package authecho

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/authware/authware/core"
	"github.com/authware/authware/oauth"
)

// DefaultClaimsKey is the echo context key claims are stored under.
const DefaultClaimsKey = "authware/claims"

type middlewareConfig struct {
	errorHandler   func(c echo.Context, err error) error
	contextKey     string
	resourceServer *oauth.ResourceServerConfig
}

// New returns an echo.MiddlewareFunc that authenticates every request with
// the given authenticator. On success the claims land both in the echo
// context under the configured key and in the request context for
// core.GetClaims.
func New(authenticator core.Authenticator, opts ...Option) echo.MiddlewareFunc {
	config := &middlewareConfig{
		contextKey: DefaultClaimsKey,
	}

	for _, opt := range opts {
		opt(config)
	}

	if config.errorHandler == nil {
		config.errorHandler = config.defaultErrorHandler
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			request := c.Request()

			claims, err := authenticator.Authenticate(request.Context(), request.Header)
			if err != nil {
				return config.errorHandler(c, err)
			}

			c.Set(config.contextKey, claims)
			c.SetRequest(request.Clone(core.SetClaims(request.Context(), claims)))
			return next(c)
		}
	}
}

func (config *middlewareConfig) defaultErrorHandler(c echo.Context, err error) error {
	if config.resourceServer != nil {
		c.Response().Header().Set("WWW-Authenticate", oauth.WWWAuthenticate401(config.resourceServer))
	}
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error": err.Error(),
	})
}

// GetClaims retrieves typed claims previously stored by the middleware.
// Pass an empty contextKey to use DefaultClaimsKey.
func GetClaims[T any](c echo.Context, contextKey string) (T, bool) {
	var zero T
	if contextKey == "" {
		contextKey = DefaultClaimsKey
	}

	claims := c.Get(contextKey)
	if claims == nil {
		return zero, false
	}

	typed, ok := claims.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
