package core

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Validator turns a raw credential string into application-defined claims or
// an error. Implementations must be safe for concurrent use without external
// synchronization; any locking they need is internal.
type Validator interface {
	Validate(ctx context.Context, credential string) (any, error)
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(ctx context.Context, credential string) (any, error)

// Validate calls f.
func (f ValidatorFunc) Validate(ctx context.Context, credential string) (any, error) {
	return f(ctx, credential)
}

// Authenticator produces claims from request head metadata, or an error.
// *Core is the stock implementation; supply an AuthenticatorFunc for fully
// custom strategies.
type Authenticator interface {
	Authenticate(ctx context.Context, h http.Header) (any, error)
}

// AuthenticatorFunc adapts a plain function to the Authenticator interface.
type AuthenticatorFunc func(ctx context.Context, h http.Header) (any, error)

// Authenticate calls f.
func (f AuthenticatorFunc) Authenticate(ctx context.Context, h http.Header) (any, error) {
	return f(ctx, h)
}

// Logger is an optional structured logging interface compatible with
// log/slog-style key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Core composes an Extractor and a Validator into an Authenticator. It is
// transport-agnostic; exactly one validation attempt is made per call.
type Core struct {
	extractor Extractor
	validator Validator
	logger    Logger
}

// Option configures a Core. Options return errors so misconfiguration is
// caught at construction time.
type Option func(*Core) error

// WithValidator sets the credential validator. Required.
func WithValidator(v Validator) Option {
	return func(c *Core) error {
		if v == nil {
			return errors.New("validator cannot be nil")
		}
		c.validator = v
		return nil
	}
}

// WithExtractor sets the credential extractor. Defaults to BearerExtractor.
func WithExtractor(e Extractor) Option {
	return func(c *Core) error {
		if e == nil {
			return errors.New("extractor cannot be nil")
		}
		c.extractor = e
		return nil
	}
}

// WithLogger sets an optional structured logger.
func WithLogger(l Logger) Option {
	return func(c *Core) error {
		c.logger = l
		return nil
	}
}

// New builds a Core from the supplied options. WithValidator is required.
func New(opts ...Option) (*Core, error) {
	c := &Core{
		extractor: BearerExtractor,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.validator == nil {
		return nil, errors.New("validator is required, use WithValidator")
	}

	return c, nil
}

// Authenticate extracts a credential from the headers and validates it.
// Extraction errors and validation errors propagate unchanged so callers can
// inspect them with errors.Is.
func (c *Core) Authenticate(ctx context.Context, h http.Header) (any, error) {
	credential, err := c.extractor(h)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("credential extraction failed", "error", err)
		}
		return nil, err
	}

	start := time.Now()
	claims, err := c.validator.Validate(ctx, credential)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("credential validation failed", "error", err, "duration", time.Since(start))
		}
		return nil, err
	}

	if c.logger != nil {
		c.logger.Debug("credential validated", "duration", time.Since(start))
	}

	return claims, nil
}
