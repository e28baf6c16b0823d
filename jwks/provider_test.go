package jwks

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeySet(t *testing.T, kid string) jwk.Set {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	key, err := jwk.FromRaw(privateKey.Public())
	require.NoError(t, err)
	require.NoError(t, key.Set(jwk.KeyIDKey, kid))
	require.NoError(t, key.Set(jwk.AlgorithmKey, jwa.RS256))

	set := jwk.NewSet()
	require.NoError(t, set.AddKey(key))

	return set
}

func Test_NewCachingProvider(t *testing.T) {
	t.Run("it fetches the key set at construction", func(t *testing.T) {
		var fetchCount atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fetchCount.Add(1)
			w.Header().Set("Content-Type", "application/json")
			require.NoError(t, json.NewEncoder(w).Encode(testKeySet(t, "kid-1")))
		}))
		defer server.Close()

		provider, err := NewCachingProvider(context.Background(), WithJWKSURL(server.URL))
		require.NoError(t, err)
		assert.EqualValues(t, 1, fetchCount.Load())

		_, found := provider.KeySet().LookupKeyID("kid-1")
		assert.True(t, found)
	})

	t.Run("it fails outright when the endpoint errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewCachingProvider(context.Background(), WithJWKSURL(server.URL))
		assert.ErrorIs(t, err, ErrFetchFailed)
	})

	t.Run("it fails outright when the body is not a key set", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		_, err := NewCachingProvider(context.Background(), WithJWKSURL(server.URL))
		assert.ErrorIs(t, err, ErrParseFailed)
	})

	t.Run("it requires a jwks URL", func(t *testing.T) {
		_, err := NewCachingProvider(context.Background())
		assert.EqualError(t, err, "jwks URL is required, use WithJWKSURL")
	})

	t.Run("it rejects a relative jwks URL", func(t *testing.T) {
		_, err := NewCachingProvider(context.Background(), WithJWKSURL("/keys"))
		assert.ErrorContains(t, err, "must be absolute")
	})
}

func Test_CachingProvider_Refresh(t *testing.T) {
	t.Run("it swaps the key set wholesale", func(t *testing.T) {
		var serveKid atomic.Value
		serveKid.Store("kid-1")
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewEncoder(w).Encode(testKeySet(t, serveKid.Load().(string))))
		}))
		defer server.Close()

		provider, err := NewCachingProvider(context.Background(), WithJWKSURL(server.URL))
		require.NoError(t, err)

		serveKid.Store("kid-2")
		require.NoError(t, provider.Refresh(context.Background()))

		_, found := provider.KeySet().LookupKeyID("kid-2")
		assert.True(t, found)
		_, found = provider.KeySet().LookupKeyID("kid-1")
		assert.False(t, found, "old key should be gone after the swap")
	})

	t.Run("it retains the previous set when the refresh fails", func(t *testing.T) {
		var failing atomic.Bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if failing.Load() {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			require.NoError(t, json.NewEncoder(w).Encode(testKeySet(t, "kid-1")))
		}))
		defer server.Close()

		provider, err := NewCachingProvider(context.Background(), WithJWKSURL(server.URL))
		require.NoError(t, err)

		failing.Store(true)
		err = provider.Refresh(context.Background())
		assert.ErrorIs(t, err, ErrFetchFailed)

		_, found := provider.KeySet().LookupKeyID("kid-1")
		assert.True(t, found, "stale set must stay usable after a failed refresh")
	})
}

func Test_CachingProvider_ConcurrentAccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(testKeySet(t, "kid-1")))
	}))
	defer server.Close()

	provider, err := NewCachingProvider(context.Background(), WithJWKSURL(server.URL))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				set := provider.KeySet()
				_, found := set.LookupKeyID("kid-1")
				assert.True(t, found)
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				require.NoError(t, provider.Refresh(context.Background()))
			}
		}()
	}
	wg.Wait()
}

func Test_StaticProvider(t *testing.T) {
	set := testKeySet(t, "pinned")
	provider := NewStaticProvider(set)

	require.NoError(t, provider.Refresh(context.Background()))

	_, found := provider.KeySet().LookupKeyID("pinned")
	assert.True(t, found)
}

func Test_CachingProvider_KeepFresh(t *testing.T) {
	var fetchCount atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetchCount.Add(1)
		require.NoError(t, json.NewEncoder(w).Encode(testKeySet(t, "kid-1")))
	}))
	defer server.Close()

	provider, err := NewCachingProvider(context.Background(), WithJWKSURL(server.URL))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		provider.KeepFresh(ctx, 10*time.Millisecond)
	}()

	assert.Eventually(t, func() bool {
		return fetchCount.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
