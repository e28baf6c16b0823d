// Package jwks manages the set of JSON Web Keys used to verify token
// signatures.
//
// CachingProvider holds the current key set fetched from a remote JWKS
// endpoint (RFC 7517). The set is shared by all in-flight validations:
// readers take a snapshot without blocking each other, and a refresh swaps
// in a fully parsed replacement set under a brief exclusive lock. The cache
// is never patched incrementally, so a reader always observes either the
// previous complete set or the new complete set.
//
// Refresh is exposed for proactive use; the JWT validator also calls it
// lazily, at most once per validation, when it encounters an unknown key ID.
// A failed refresh leaves the previous set in place.
package jwks
