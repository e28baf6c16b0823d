// Package validator validates JSON Web Tokens against a (usually remote,
// rotating) set of verification keys and produces normalized Claims.
//
// The validator implements the core.Validator contract. Each validation
// decodes only the token header to find the signing key ID, looks the key up
// in the provider's cached set, and on a miss performs exactly one
// synchronous refresh before looking up once more. This bounds worst-case
// latency per request: there is never a second refresh within a single
// validation.
package validator
