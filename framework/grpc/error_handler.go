package authgrpc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/authware/authware/core"
	"github.com/authware/authware/jwks"
)

// ErrorHandler converts an authentication error into the gRPC status error
// returned to the client.
type ErrorHandler func(err error) error

// DefaultErrorHandler maps authentication failures to Unauthenticated.
// Key-set fetch and parse failures are server-side faults and map to
// Internal so clients do not discard a valid token.
func DefaultErrorHandler(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, jwks.ErrFetchFailed), errors.Is(err, jwks.ErrParseFailed):
		return status.Error(codes.Internal, "key set unavailable")
	case errors.Is(err, core.ErrCredentialMissing):
		return status.Error(codes.Unauthenticated, "credential missing")
	default:
		return status.Error(codes.Unauthenticated, err.Error())
	}
}
