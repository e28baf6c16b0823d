package oauth

import (
	"fmt"
	"net/http"
)

// ResourceServerConfig describes this service in its role as an OAuth 2.1
// resource server. It is immutable and shared by reference; only the
// challenge builders consume it.
type ResourceServerConfig struct {
	// ResourceMetadataURL is the URL of the Protected Resource Metadata
	// document (RFC 9728), advertised as resource_metadata="..." in
	// WWW-Authenticate headers.
	ResourceMetadataURL string

	// DefaultScope, when non-empty, is advertised as scope="..." in 401
	// challenges to tell clients which scopes to request.
	DefaultScope string
}

// WWWAuthenticate401 builds the WWW-Authenticate value for a 401 response:
//
//	Bearer resource_metadata="<url>"[, scope="<scope>"]
func WWWAuthenticate401(config *ResourceServerConfig) string {
	value := fmt.Sprintf("Bearer resource_metadata=%q", config.ResourceMetadataURL)
	if config.DefaultScope != "" {
		value += fmt.Sprintf(", scope=%q", config.DefaultScope)
	}
	return value
}

// WWWAuthenticate403 builds the WWW-Authenticate value for a 403
// insufficient-scope response:
//
//	Bearer error="insufficient_scope", scope="<required>", resource_metadata="<url>"
func WWWAuthenticate403(config *ResourceServerConfig, requiredScope string) string {
	return fmt.Sprintf(
		"Bearer error=\"insufficient_scope\", scope=%q, resource_metadata=%q",
		requiredScope,
		config.ResourceMetadataURL,
	)
}

// WriteInsufficientScope writes a 403 response with the insufficient_scope
// challenge. Handlers call this explicitly when a request carries valid
// claims that lack a scope the operation needs; the authentication
// middleware never issues 403s on its own.
func WriteInsufficientScope(w http.ResponseWriter, config *ResourceServerConfig, requiredScope string) {
	w.Header().Set("WWW-Authenticate", WWWAuthenticate403(config, requiredScope))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte("insufficient scope"))
}
