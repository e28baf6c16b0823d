package authgrpc

import (
	"errors"

	"github.com/authware/authware/core"
)

// Option configures an Interceptor.
type Option func(*Interceptor) error

// WithAuthenticator sets the authentication strategy. Required.
func WithAuthenticator(a core.Authenticator) Option {
	return func(i *Interceptor) error {
		if a == nil {
			return errors.New("authenticator cannot be nil")
		}
		i.authenticator = a
		return nil
	}
}

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(i *Interceptor) error {
		if h == nil {
			return errors.New("error handler cannot be nil")
		}
		i.errorHandler = h
		return nil
	}
}

// WithExcludedMethods exempts full method names, e.g.
// "/grpc.health.v1.Health/Check", from authentication.
func WithExcludedMethods(methods ...string) Option {
	return func(i *Interceptor) error {
		for _, method := range methods {
			i.excludedMethods[method] = true
		}
		return nil
	}
}

// WithLogger sets an optional structured logger.
func WithLogger(l core.Logger) Option {
	return func(i *Interceptor) error {
		i.logger = l
		return nil
	}
}
