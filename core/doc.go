// Package core provides the transport-agnostic authentication contracts and
// their composition: credential extraction from request headers, pluggable
// credential validation, and the Authenticator that joins the two.
//
// The HTTP middleware in the root package and the interceptors under
// framework/ are thin transports over this package. Claims produced by a
// successful authentication travel in a request-scoped, type-keyed context
// value; see SetClaims and GetClaims.
package core
