package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Sentinel errors for JWT validation.
var (
	// ErrTokenMalformed is returned when the credential is not a parseable
	// signed token.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrMissingKeyID is returned when the token header carries no kid.
	ErrMissingKeyID = errors.New("token missing kid header")

	// ErrKeyNotFound is returned when the token's kid matches no key in the
	// key set, even after one refresh.
	ErrKeyNotFound = errors.New("no matching key in key set")

	// ErrSignatureInvalid is returned when the token signature does not
	// verify against its key.
	ErrSignatureInvalid = errors.New("signature invalid")

	// ErrClaimsInvalid is returned when the token is expired or its issuer
	// or audience does not match the configured policy.
	ErrClaimsInvalid = errors.New("claims invalid")
)

// KeyProvider supplies the current verification key set and a way to refresh
// it. jwks.CachingProvider and jwks.StaticProvider both satisfy it.
type KeyProvider interface {
	KeySet() jwk.Set
	Refresh(ctx context.Context) error
}

var allowedSignatureAlgorithms = map[jwa.SignatureAlgorithm]bool{
	jwa.EdDSA: true,
	jwa.HS256: true,
	jwa.HS384: true,
	jwa.HS512: true,
	jwa.RS256: true,
	jwa.RS384: true,
	jwa.RS512: true,
	jwa.ES256: true,
	jwa.ES384: true,
	jwa.ES512: true,
	jwa.PS256: true,
	jwa.PS384: true,
	jwa.PS512: true,
}

// Validator validates signed tokens against a cached key set. The validation
// policy (issuer, audience, clock skew) is fixed at construction. A single
// Validator is safe for concurrent use; the key set is shared across all
// in-flight validations and swapped wholesale on refresh.
type Validator struct {
	keys       KeyProvider
	issuer     string
	audience   string
	clockSkew  time.Duration
	defaultAlg jwa.SignatureAlgorithm
}

// New builds a Validator from the supplied options. WithKeyProvider is
// required; everything else is policy.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		defaultAlg: jwa.RS256,
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if v.keys == nil {
		return nil, errors.New("key provider is required, use WithKeyProvider")
	}

	return v, nil
}

// Validate checks the token's signature and claims and returns normalized
// *Claims. It implements core.Validator.
//
// When the token names a key ID absent from the cached set, exactly one
// synchronous refresh is performed and the lookup retried once. A failed
// refresh fails only this validation; the previous key set stays in place
// for everyone else.
func (v *Validator) Validate(ctx context.Context, tokenString string) (any, error) {
	kid, err := keyID(tokenString)
	if err != nil {
		return nil, err
	}

	key, found := v.keys.KeySet().LookupKeyID(kid)
	if !found {
		if err := v.keys.Refresh(ctx); err != nil {
			return nil, err
		}
		key, found = v.keys.KeySet().LookupKeyID(kid)
		if !found {
			return nil, fmt.Errorf("%w: kid %q", ErrKeyNotFound, kid)
		}
	}

	alg, err := v.signatureAlgorithm(key)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse([]byte(tokenString), jwt.WithKey(alg, key))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}

	if err := v.validateClaims(token); err != nil {
		return nil, err
	}

	return normalizeClaims(token), nil
}

// keyID decodes only the token's protected header. No signature check
// happens here.
func keyID(tokenString string) (string, error) {
	msg, err := jws.Parse([]byte(tokenString))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	signatures := msg.Signatures()
	if len(signatures) == 0 {
		return "", fmt.Errorf("%w: no signature", ErrTokenMalformed)
	}

	kid := signatures[0].ProtectedHeaders().KeyID()
	if kid == "" {
		return "", ErrMissingKeyID
	}

	return kid, nil
}

// signatureAlgorithm derives the verification algorithm from the key's own
// alg field, falling back to the configured default for keys without one.
func (v *Validator) signatureAlgorithm(key jwk.Key) (jwa.SignatureAlgorithm, error) {
	alg := v.defaultAlg
	if keyAlg, ok := key.Algorithm().(jwa.SignatureAlgorithm); ok && keyAlg.String() != "" {
		alg = keyAlg
	}

	if !allowedSignatureAlgorithms[alg] {
		return "", fmt.Errorf("%w: unsupported signature algorithm %q", ErrSignatureInvalid, alg.String())
	}

	return alg, nil
}

func (v *Validator) validateClaims(token jwt.Token) error {
	validateOpts := []jwt.ValidateOption{}
	if v.issuer != "" {
		validateOpts = append(validateOpts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		validateOpts = append(validateOpts, jwt.WithAudience(v.audience))
	}
	if v.clockSkew > 0 {
		validateOpts = append(validateOpts, jwt.WithAcceptableSkew(v.clockSkew))
	}

	if err := jwt.Validate(token, validateOpts...); err != nil {
		return fmt.Errorf("%w: %v", ErrClaimsInvalid, err)
	}

	return nil
}

func normalizeClaims(token jwt.Token) *Claims {
	claims := &Claims{
		Subject:  token.Subject(),
		Issuer:   token.Issuer(),
		Audience: token.Audience(),
		Scopes:   []string{},
	}

	if exp := token.Expiration(); !exp.IsZero() {
		claims.Expiry = exp.Unix()
	}

	if raw, ok := token.Get("scope"); ok {
		if scope, ok := raw.(string); ok {
			claims.Scopes = strings.Fields(scope)
		}
	}

	return claims
}
