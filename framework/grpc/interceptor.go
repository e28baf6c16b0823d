// Package authgrpc adapts the authware middleware to gRPC servers as unary
// and stream interceptors.
package authgrpc

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/authware/authware/core"
)

// Interceptor authenticates incoming gRPC calls with a core.Authenticator.
// Credentials travel in the "authorization" metadata entry, which gRPC
// exposes lowercased.
type Interceptor struct {
	authenticator   core.Authenticator
	errorHandler    ErrorHandler
	excludedMethods map[string]bool
	logger          core.Logger
}

// New builds an Interceptor. WithAuthenticator is required.
func New(opts ...Option) (*Interceptor, error) {
	interceptor := &Interceptor{
		errorHandler:    DefaultErrorHandler,
		excludedMethods: make(map[string]bool),
	}

	for _, opt := range opts {
		if err := opt(interceptor); err != nil {
			return nil, err
		}
	}

	if interceptor.authenticator == nil {
		return nil, errors.New("authenticator is required, use WithAuthenticator")
	}

	return interceptor, nil
}

// UnaryServerInterceptor returns a grpc.UnaryServerInterceptor that
// authenticates each call and attaches the claims to the handler context.
func (i *Interceptor) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if i.excludedMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		authenticatedCtx, err := i.authenticate(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}

		return handler(authenticatedCtx, req)
	}
}

// StreamServerInterceptor returns a grpc.StreamServerInterceptor that
// authenticates each stream and attaches the claims to the stream context.
func (i *Interceptor) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		if i.excludedMethods[info.FullMethod] {
			return handler(srv, ss)
		}

		authenticatedCtx, err := i.authenticate(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}

		return handler(srv, &wrappedServerStream{ServerStream: ss, ctx: authenticatedCtx})
	}
}

func (i *Interceptor) authenticate(ctx context.Context, method string) (context.Context, error) {
	claims, err := i.authenticator.Authenticate(ctx, headersFromMetadata(ctx))
	if err != nil {
		if i.logger != nil {
			i.logger.Warn("authentication failed",
				"error", err,
				"method", method)
		}
		return ctx, i.errorHandler(err)
	}

	return core.SetClaims(ctx, claims), nil
}

// headersFromMetadata converts incoming gRPC metadata to an http.Header so
// the stock extractors work unchanged. http.Header.Add canonicalizes the
// keys, mapping "authorization" back to "Authorization".
func headersFromMetadata(ctx context.Context) http.Header {
	h := http.Header{}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return h
	}
	for key, values := range md {
		for _, value := range values {
			h.Add(key, value)
		}
	}
	return h
}

type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}
