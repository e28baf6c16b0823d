package core

import "errors"

// Sentinel errors for credential extraction and claims retrieval.
var (
	// ErrCredentialMissing is returned when no credential is present in the
	// request headers.
	ErrCredentialMissing = errors.New("credential missing")

	// ErrCredentialMalformed is returned when a credential was supplied but
	// its framing is wrong (e.g. an Authorization header without the
	// "Bearer " prefix).
	ErrCredentialMalformed = errors.New("credential malformed")

	// ErrClaimsNotFound is returned when claims cannot be retrieved from a
	// context.
	ErrClaimsNotFound = errors.New("claims not found in context")
)

// Machine-readable error codes covering the full authentication failure
// taxonomy. Transports use these as metric and log tags; they never appear
// in response bodies.
const (
	CodeCredentialMissing   = "credential_missing"
	CodeCredentialMalformed = "credential_malformed"
	CodeMissingKeyID        = "missing_key_id"
	CodeKeyNotFound         = "key_not_found"
	CodeSignatureInvalid    = "signature_invalid"
	CodeClaimsInvalid       = "claims_invalid"
	CodeJWKSFetchFailed     = "jwks_fetch_failed"
	CodeJWKSParseFailed     = "jwks_parse_failed"
	CodeAuthFailed          = "auth_failed"
)
