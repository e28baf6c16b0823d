package jwks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// Sentinel errors for key set retrieval.
var (
	// ErrFetchFailed is returned when the JWKS endpoint cannot be reached or
	// responds with a non-200 status.
	ErrFetchFailed = errors.New("jwks fetch failed")

	// ErrParseFailed is returned when the JWKS endpoint responds with a body
	// that is not a valid JSON Web Key Set.
	ErrParseFailed = errors.New("jwks parse failed")
)

// maxResponseSize bounds the JWKS response body. Real key sets are a few
// kilobytes; 1MB leaves plenty of headroom.
const maxResponseSize = 1 << 20

// CachingProvider fetches a key set from a JWKS URL and caches it for
// concurrent signature-key lookups. The zero value is not usable; construct
// with NewCachingProvider.
type CachingProvider struct {
	jwksURL string
	client  *http.Client

	mu  sync.RWMutex
	set jwk.Set
}

// NewCachingProvider builds a CachingProvider and performs the initial fetch.
// A fetch or parse failure here is returned outright so that a misconfigured
// service cannot start silently unable to authenticate anyone.
//
// Required options:
//   - WithJWKSURL: the JWKS endpoint to fetch keys from
//
// Optional options:
//   - WithHTTPClient: custom HTTP client (default: 30 second timeout)
func NewCachingProvider(ctx context.Context, opts ...Option) (*CachingProvider, error) {
	p := &CachingProvider{
		client: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if p.jwksURL == "" {
		return nil, errors.New("jwks URL is required, use WithJWKSURL")
	}

	if err := p.Refresh(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

// KeySet returns the current cached key set. The returned set is a snapshot:
// it is never mutated after being installed, so callers may use it without
// holding any lock.
func (p *CachingProvider) KeySet() jwk.Set {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.set
}

// Refresh fetches a fresh key set from the JWKS URL and swaps it into the
// cache wholesale. On failure the previous set is retained and remains in use
// for all other callers.
func (p *CachingProvider) Refresh(ctx context.Context) error {
	set, err := p.fetch(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.set = set
	p.mu.Unlock()

	return nil
}

// KeepFresh refreshes the key set on the given interval until ctx is
// cancelled. Refresh failures are tolerated; the stale set stays in place
// until the next attempt succeeds.
func (p *CachingProvider) KeepFresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = p.Refresh(ctx)
		}
	}
}

func (p *CachingProvider) fetch(ctx context.Context) (jwk.Set, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: endpoint returned status %d", ErrFetchFailed, resp.StatusCode)
	}

	set, err := jwk.ParseReader(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	return set, nil
}

// StaticProvider serves a fixed key set. It satisfies the same contract as
// CachingProvider for deployments with pinned verification keys; Refresh is
// a no-op.
type StaticProvider struct {
	set jwk.Set
}

// NewStaticProvider wraps the given key set.
func NewStaticProvider(set jwk.Set) *StaticProvider {
	return &StaticProvider{set: set}
}

// KeySet returns the fixed key set.
func (p *StaticProvider) KeySet() jwk.Set { return p.set }

// Refresh does nothing; a static key set has no source to refresh from.
func (p *StaticProvider) Refresh(context.Context) error { return nil }
