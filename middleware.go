package authware

import (
	"errors"
	"net/http"
	"time"

	"github.com/authware/authware/core"
	"github.com/authware/authware/jwks"
	"github.com/authware/authware/oauth"
	"github.com/authware/authware/validator"
)

// ErrorHandler is called when authentication fails. The default handler
// responds 401 with a plain-text error string and, when a resource server is
// configured, a WWW-Authenticate challenge. Custom handlers must not surface
// a 5xx for an authentication failure.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Middleware authenticates requests ahead of the wrapped handler. On success
// the claims are attached to the request context; on failure the request is
// rejected without ever reaching the wrapped handler. Exactly one validation
// attempt is made per request.
type Middleware struct {
	authenticator     core.Authenticator
	errorHandler      ErrorHandler
	resourceServer    *oauth.ResourceServerConfig
	exclude           func(r *http.Request) bool
	validateOnOptions bool
	logger            Logger
	metrics           Metrics
	tracer            Tracer

	// construction-only fields consumed by New
	coreValidator core.Validator
	coreExtractor core.Extractor
}

// New builds a Middleware from the supplied options. Either WithAuthenticator
// or WithValidator is required.
func New(opts ...Option) (*Middleware, error) {
	m := &Middleware{
		validateOnOptions: true,
		metrics:           &NoopMetrics{},
		tracer:            &NoopTracer{},
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	if m.authenticator == nil {
		if m.coreValidator == nil {
			return nil, errors.New("an authenticator or validator is required")
		}

		coreOpts := []core.Option{core.WithValidator(m.coreValidator)}
		if m.coreExtractor != nil {
			coreOpts = append(coreOpts, core.WithExtractor(m.coreExtractor))
		}
		if m.logger != nil {
			coreOpts = append(coreOpts, core.WithLogger(m.logger))
		}

		authenticator, err := core.New(coreOpts...)
		if err != nil {
			return nil, err
		}
		m.authenticator = authenticator
	} else if m.coreValidator != nil || m.coreExtractor != nil {
		return nil, errors.New("WithAuthenticator cannot be combined with WithValidator or WithExtractor")
	}

	if m.errorHandler == nil {
		m.errorHandler = m.defaultErrorHandler
	}

	return m, nil
}

// Handler wraps next with authentication. Excluded URLs pass through
// untouched, as do OPTIONS requests when WithValidateOnOptions(false) is
// set.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.exclude != nil && m.exclude(r) {
			if m.logger != nil {
				m.logger.Debug("skipping authentication for excluded URL",
					"method", r.Method,
					"path", r.URL.Path)
			}
			next.ServeHTTP(w, r)
			return
		}

		if !m.validateOnOptions && r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		ctx, span := m.tracer.StartSpan(r.Context(), "authware.authenticate")
		start := time.Now()
		claims, err := m.authenticator.Authenticate(ctx, r.Header)
		m.metrics.ObserveHistogram("authware_authenticate_duration_seconds",
			time.Since(start).Seconds(), map[string]string{})

		if err != nil {
			code := errorCode(err)
			span.SetTag("auth.result", code)
			span.Finish()
			m.metrics.IncCounter("authware_requests_total", map[string]string{"result": code})
			if m.logger != nil {
				m.logger.Warn("authentication failed",
					"error", err,
					"code", code,
					"method", r.Method,
					"path", r.URL.Path)
			}
			m.errorHandler(w, r, err)
			return
		}

		span.SetTag("auth.result", "ok")
		span.Finish()
		m.metrics.IncCounter("authware_requests_total", map[string]string{"result": "ok"})

		r = r.Clone(core.SetClaims(r.Context(), claims))
		next.ServeHTTP(w, r)
	})
}

// defaultErrorHandler rejects the request with 401. The body carries only
// the error's display string, never structured internals.
func (m *Middleware) defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if m.resourceServer != nil {
		w.Header().Set("WWW-Authenticate", oauth.WWWAuthenticate401(m.resourceServer))
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(err.Error()))
}

// errorCode maps an authentication error to its machine-readable code for
// metric and log tags.
func errorCode(err error) string {
	switch {
	case errors.Is(err, core.ErrCredentialMissing):
		return core.CodeCredentialMissing
	case errors.Is(err, core.ErrCredentialMalformed),
		errors.Is(err, validator.ErrTokenMalformed):
		return core.CodeCredentialMalformed
	case errors.Is(err, validator.ErrMissingKeyID):
		return core.CodeMissingKeyID
	case errors.Is(err, validator.ErrKeyNotFound):
		return core.CodeKeyNotFound
	case errors.Is(err, validator.ErrSignatureInvalid):
		return core.CodeSignatureInvalid
	case errors.Is(err, validator.ErrClaimsInvalid):
		return core.CodeClaimsInvalid
	case errors.Is(err, jwks.ErrFetchFailed):
		return core.CodeJWKSFetchFailed
	case errors.Is(err, jwks.ErrParseFailed):
		return core.CodeJWKSParseFailed
	default:
		return core.CodeAuthFailed
	}
}
