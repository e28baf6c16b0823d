package validator

import (
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
)

// Option configures a Validator. Options return errors so misconfiguration
// is caught at construction time.
type Option func(*Validator) error

// WithKeyProvider sets the source of verification keys. Required.
func WithKeyProvider(keys KeyProvider) Option {
	return func(v *Validator) error {
		if keys == nil {
			return errors.New("key provider cannot be nil")
		}
		v.keys = keys
		return nil
	}
}

// WithIssuer requires the iss claim to match the given value. Tokens from
// any other issuer are rejected. Leave unset to skip issuer checking.
func WithIssuer(issuer string) Option {
	return func(v *Validator) error {
		if issuer == "" {
			return errors.New("issuer cannot be empty")
		}
		v.issuer = issuer
		return nil
	}
}

// WithAudience requires the aud claim to contain the given value. Leave
// unset to skip audience checking.
func WithAudience(audience string) Option {
	return func(v *Validator) error {
		if audience == "" {
			return errors.New("audience cannot be empty")
		}
		v.audience = audience
		return nil
	}
}

// WithAllowedClockSkew sets the tolerance applied to time-based claims, to
// absorb clock drift between this service and the token issuer. Default 0.
func WithAllowedClockSkew(skew time.Duration) Option {
	return func(v *Validator) error {
		if skew < 0 {
			return errors.New("clock skew cannot be negative")
		}
		v.clockSkew = skew
		return nil
	}
}

// WithDefaultAlgorithm sets the algorithm assumed for keys that carry no alg
// field of their own. Default RS256.
func WithDefaultAlgorithm(alg jwa.SignatureAlgorithm) Option {
	return func(v *Validator) error {
		if !allowedSignatureAlgorithms[alg] {
			return fmt.Errorf("unsupported signature algorithm: %s", alg.String())
		}
		v.defaultAlg = alg
		return nil
	}
}
