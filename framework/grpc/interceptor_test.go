package authgrpc

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/authware/authware/core"
	"github.com/authware/authware/jwks"
)

type testClaims struct {
	Subject string
}

func newTestInterceptor(t *testing.T, opts ...Option) *Interceptor {
	t.Helper()

	authenticator := core.AuthenticatorFunc(func(ctx context.Context, h http.Header) (any, error) {
		if h.Get("Authorization") != "Bearer good-token" {
			return nil, core.ErrCredentialMissing
		}
		return testClaims{Subject: "user-123"}, nil
	})

	interceptor, err := New(append([]Option{WithAuthenticator(authenticator)}, opts...)...)
	require.NoError(t, err)
	return interceptor
}

func incomingContext(pairs ...string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(pairs...))
}

func TestUnaryServerInterceptor(t *testing.T) {
	unaryInfo := &grpc.UnaryServerInfo{FullMethod: "/test.Service/Method"}

	t.Run("valid credential reaches the handler with claims", func(t *testing.T) {
		interceptor := newTestInterceptor(t)

		handlerCalled := false
		handler := func(ctx context.Context, req any) (any, error) {
			handlerCalled = true
			claims, err := core.GetClaims[testClaims](ctx)
			require.NoError(t, err)
			assert.Equal(t, "user-123", claims.Subject)
			return "response", nil
		}

		ctx := incomingContext("authorization", "Bearer good-token")
		resp, err := interceptor.UnaryServerInterceptor()(ctx, "request", unaryInfo, handler)
		require.NoError(t, err)
		assert.True(t, handlerCalled)
		assert.Equal(t, "response", resp)
	})

	t.Run("missing credential returns Unauthenticated", func(t *testing.T) {
		interceptor := newTestInterceptor(t)

		handler := func(ctx context.Context, req any) (any, error) {
			t.Fatal("handler must not run on authentication failure")
			return nil, nil
		}

		_, err := interceptor.UnaryServerInterceptor()(context.Background(), "request", unaryInfo, handler)
		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("key set failure returns Internal", func(t *testing.T) {
		authenticator := core.AuthenticatorFunc(func(ctx context.Context, h http.Header) (any, error) {
			return nil, jwks.ErrFetchFailed
		})
		interceptor, err := New(WithAuthenticator(authenticator))
		require.NoError(t, err)

		handler := func(ctx context.Context, req any) (any, error) { return nil, nil }
		_, err = interceptor.UnaryServerInterceptor()(
			incomingContext("authorization", "Bearer token"), "request", unaryInfo, handler)
		require.Error(t, err)
		assert.Equal(t, codes.Internal, status.Code(err))
	})

	t.Run("excluded method skips authentication", func(t *testing.T) {
		interceptor := newTestInterceptor(t, WithExcludedMethods("/grpc.health.v1.Health/Check"))

		handlerCalled := false
		handler := func(ctx context.Context, req any) (any, error) {
			handlerCalled = true
			return nil, nil
		}

		healthInfo := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
		_, err := interceptor.UnaryServerInterceptor()(context.Background(), "request", healthInfo, handler)
		require.NoError(t, err)
		assert.True(t, handlerCalled)
	})
}

type stubServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *stubServerStream) Context() context.Context { return s.ctx }

func TestStreamServerInterceptor(t *testing.T) {
	streamInfo := &grpc.StreamServerInfo{FullMethod: "/test.Service/Stream"}

	t.Run("valid credential reaches the handler with claims", func(t *testing.T) {
		interceptor := newTestInterceptor(t)

		handlerCalled := false
		handler := func(srv any, ss grpc.ServerStream) error {
			handlerCalled = true
			claims, err := core.GetClaims[testClaims](ss.Context())
			require.NoError(t, err)
			assert.Equal(t, "user-123", claims.Subject)
			return nil
		}

		stream := &stubServerStream{ctx: incomingContext("authorization", "Bearer good-token")}
		err := interceptor.StreamServerInterceptor()(nil, stream, streamInfo, handler)
		require.NoError(t, err)
		assert.True(t, handlerCalled)
	})

	t.Run("missing credential returns Unauthenticated", func(t *testing.T) {
		interceptor := newTestInterceptor(t)

		handler := func(srv any, ss grpc.ServerStream) error {
			t.Fatal("handler must not run on authentication failure")
			return nil
		}

		stream := &stubServerStream{ctx: context.Background()}
		err := interceptor.StreamServerInterceptor()(nil, stream, streamInfo, handler)
		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})
}

func TestNewRequiresAuthenticator(t *testing.T) {
	_, err := New()
	assert.EqualError(t, err, "authenticator is required, use WithAuthenticator")
}

func TestHeadersFromMetadata(t *testing.T) {
	ctx := incomingContext("authorization", "Bearer token", "x-api-key", "secret")
	h := headersFromMetadata(ctx)

	assert.Equal(t, "Bearer token", h.Get("Authorization"))
	assert.Equal(t, "secret", h.Get("X-Api-Key"))

	assert.Empty(t, headersFromMetadata(context.Background()))
}
