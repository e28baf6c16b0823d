package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Extractor pulls a raw credential string out of request header metadata.
// It returns ErrCredentialMissing (possibly wrapped) when no credential is
// present, and ErrCredentialMalformed when one is present but incorrectly
// framed. The credential is otherwise passed through untouched.
type Extractor func(h http.Header) (string, error)

const bearerPrefix = "Bearer "

// BearerExtractor extracts a bearer token from the Authorization header.
// The header value must start with "Bearer " exactly; anything else present
// in the header is treated as malformed rather than missing.
func BearerExtractor(h http.Header) (string, error) {
	authHeader := h.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("%w: no Authorization header", ErrCredentialMissing)
	}

	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", fmt.Errorf("%w: Authorization header format must be Bearer {token}", ErrCredentialMalformed)
	}

	return authHeader[len(bearerPrefix):], nil
}

// HeaderExtractor builds an Extractor that reads an API key from the named
// header. The value is not transformed in any way.
func HeaderExtractor(name string) Extractor {
	return func(h http.Header) (string, error) {
		value := h.Get(name)
		if value == "" {
			return "", fmt.Errorf("%w: no %s header", ErrCredentialMissing, name)
		}
		return value, nil
	}
}

// MultiExtractor returns an Extractor that tries each extractor in order and
// returns the first credential found. Malformed-credential errors stop the
// chain immediately; missing-credential errors move on to the next extractor.
func MultiExtractor(extractors ...Extractor) Extractor {
	return func(h http.Header) (string, error) {
		for _, ex := range extractors {
			credential, err := ex(h)
			if err == nil {
				return credential, nil
			}
			if !errors.Is(err, ErrCredentialMissing) {
				return "", err
			}
		}
		return "", ErrCredentialMissing
	}
}
