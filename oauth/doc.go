// Package oauth implements the resource-server side of the OAuth 2.1
// authorization flow: spec-compliant WWW-Authenticate challenges for 401 and
// 403 responses (RFC 6750 §3, RFC 9728 §5.1) and the Protected Resource
// Metadata discovery document (RFC 9728).
//
// The challenge builders are pure formatting; they hold no state. The
// metadata document is constructed and validated once, then served read-only
// for the life of the process. The discovery endpoint must stay outside any
// authentication middleware: clients consult it precisely because they do
// not yet hold a token.
package oauth
