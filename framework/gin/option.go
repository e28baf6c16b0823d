package authgin

import (
	"github.com/gin-gonic/gin"

	"github.com/authware/authware/oauth"
)

// Option configures the gin middleware.
type Option func(*middlewareConfig)

// WithErrorHandler sets a custom error handler. The handler is responsible
// for aborting the chain; if it does not, the middleware aborts for it.
func WithErrorHandler(handler func(c *gin.Context, err error)) Option {
	return func(config *middlewareConfig) {
		config.errorHandler = handler
	}
}

// WithContextKey sets the gin context key claims are stored under.
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
