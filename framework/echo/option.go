package authecho

import (
	"github.com/labstack/echo/v4"

	"github.com/authware/authware/oauth"
)

// Option configures the echo middleware.
type Option func(*middlewareConfig)

// WithErrorHandler sets a custom error handler. The returned error is
// propagated to echo's error handling.
func WithErrorHandler(handler func(c echo.Context, err error) error) Option {
	return func(config *middlewareConfig) {
		config.errorHandler = handler
	}
}

// WithContextKey sets the echo context key claims are stored under.
func WithContextKey(key string) Option {
	return func(config *middlewareConfig) {
		config.contextKey = key
	}
}

// WithResourceServer enables WWW-Authenticate challenges on 401 responses
// from the default error handler.
func WithResourceServer(config *oauth.ResourceServerConfig) Option {
	return func(c *middlewareConfig) {
		c.resourceServer = config
	}
}
