package jwks

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Option configures a CachingProvider. Options return errors so
// misconfiguration is caught at construction time.
type Option func(*CachingProvider) error

// WithJWKSURL sets the JWKS endpoint keys are fetched from. Required.
func WithJWKSURL(jwksURL string) Option {
	return func(p *CachingProvider) error {
		if jwksURL == "" {
			return errors.New("jwks URL cannot be empty")
		}
		u, err := url.Parse(jwksURL)
		if err != nil {
			return fmt.Errorf("invalid jwks URL: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("jwks URL must be absolute: %q", jwksURL)
		}
		p.jwksURL = jwksURL
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for JWKS fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(p *CachingProvider) error {
		if client == nil {
			return errors.New("http client cannot be nil")
		}
		p.client = client
		return nil
	}
}
