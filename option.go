package authware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/authware/authware/core"
	"github.com/authware/authware/oauth"
)

// Option configures a Middleware. Options return errors so misconfiguration
// is caught at construction time.
type Option func(*Middleware) error

// WithAuthenticator supplies a fully custom authentication strategy. Mutually
// exclusive with WithValidator and WithExtractor.
func WithAuthenticator(a core.Authenticator) Option {
	return func(m *Middleware) error {
		if a == nil {
			return errors.New("authenticator cannot be nil")
		}
		m.authenticator = a
		return nil
	}
}

// WithValidator supplies the credential validator. The middleware composes
// it with an extractor (default core.BearerExtractor) into the stock
// authenticator.
func WithValidator(v core.Validator) Option {
	return func(m *Middleware) error {
		if v == nil {
			return errors.New("validator cannot be nil")
		}
		m.coreValidator = v
		return nil
	}
}

// WithExtractor overrides the credential extractor used with WithValidator,
// e.g. core.HeaderExtractor("X-API-Key") for API-key authentication.
func WithExtractor(e core.Extractor) Option {
	return func(m *Middleware) error {
		if e == nil {
			return errors.New("extractor cannot be nil")
		}
		m.coreExtractor = e
		return nil
	}
}

// WithResourceServer configures the OAuth resource-server identity used to
// build WWW-Authenticate challenges on 401 responses.
func WithResourceServer(config *oauth.ResourceServerConfig) Option {
	return func(m *Middleware) error {
		if config == nil {
			return errors.New("resource server config cannot be nil")
		}
		if config.ResourceMetadataURL == "" {
			return errors.New("resource metadata URL cannot be empty")
		}
		m.resourceServer = config
		return nil
	}
}

// WithErrorHandler replaces the default 401 error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *Middleware) error {
		if h == nil {
			return errors.New("error handler cannot be nil")
		}
		m.errorHandler = h
		return nil
	}
}

// WithExclusionURLs leaves requests whose path matches one of the given
// prefixes unauthenticated. Use this to keep discovery and health endpoints
// reachable without credentials.
func WithExclusionURLs(urls []string) Option {
	return func(m *Middleware) error {
		if len(urls) == 0 {
			return errors.New("exclusion URLs cannot be empty")
		}
		prefixes := append([]string(nil), urls...)
		m.exclude = func(r *http.Request) bool {
			for _, prefix := range prefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					return true
				}
			}
			return false
		}
		return nil
	}
}

// WithExclusionHandler leaves requests unauthenticated when the given
// predicate returns true.
func WithExclusionHandler(h func(r *http.Request) bool) Option {
	return func(m *Middleware) error {
		if h == nil {
			return errors.New("exclusion handler cannot be nil")
		}
		m.exclude = h
		return nil
	}
}

// WithValidateOnOptions controls whether OPTIONS requests are authenticated.
// Default true; set false to let CORS preflights through.
func WithValidateOnOptions(value bool) Option {
	return func(m *Middleware) error {
		m.validateOnOptions = value
		return nil
	}
}

// WithLogger sets an optional structured logger.
func WithLogger(l Logger) Option {
	return func(m *Middleware) error {
		m.logger = l
		return nil
	}
}

// WithMetrics sets the metrics sink. Default NoopMetrics.
func WithMetrics(metrics Metrics) Option {
	return func(m *Middleware) error {
		if metrics == nil {
			return errors.New("metrics cannot be nil")
		}
		m.metrics = metrics
		return nil
	}
}

// WithTracer sets the tracer. Default NoopTracer.
func WithTracer(tracer Tracer) Option {
	return func(m *Middleware) error {
		if tracer == nil {
			return errors.New("tracer cannot be nil")
		}
		m.tracer = tracer
		return nil
	}
}
