package oauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// MetadataPath is the well-known discovery path for Protected Resource
// Metadata (RFC 9728).
const MetadataPath = "/.well-known/oauth-protected-resource"

// ProtectedResourceMetadata is the OAuth 2.0 Protected Resource Metadata
// document (RFC 9728). It tells clients which authorization servers issue
// tokens for this resource.
type ProtectedResourceMetadata struct {
	// Resource is the canonical URI of this resource server. Access tokens
	// must name it in their aud claim.
	Resource string `json:"resource"`

	// AuthorizationServers lists the authorization servers that can issue
	// tokens for this resource. Must contain at least one entry.
	AuthorizationServers []string `json:"authorization_servers"`

	// ScopesSupported optionally lists the scopes this resource understands.
	ScopesSupported []string `json:"scopes_supported,omitempty"`

	// BearerMethodsSupported optionally lists how bearer tokens may be
	// presented (e.g. ["header"]).
	BearerMethodsSupported []string `json:"bearer_methods_supported,omitempty"`

	// ResourceDocumentation is an optional URL of human-readable docs.
	ResourceDocumentation string `json:"resource_documentation,omitempty"`
}

// Validate checks the document's RFC 9728 invariants.
func (m *ProtectedResourceMetadata) Validate() error {
	if m.Resource == "" {
		return errors.New("resource identifier is required")
	}
	if len(m.AuthorizationServers) == 0 {
		return errors.New("at least one authorization server is required")
	}
	for i, server := range m.AuthorizationServers {
		if server == "" {
			return fmt.Errorf("authorization server at index %d is empty", i)
		}
	}
	return nil
}

// MetadataHandler serves a Protected Resource Metadata document. The
// document is validated and marshaled once at construction and never
// mutated afterwards.
type MetadataHandler struct {
	body []byte
}

// NewMetadataHandler validates the document and returns a handler for it.
// Mount the handler at MetadataPath, outside any authentication middleware.
func NewMetadataHandler(metadata ProtectedResourceMetadata) (*MetadataHandler, error) {
	if err := metadata.Validate(); err != nil {
		return nil, fmt.Errorf("invalid protected resource metadata: %w", err)
	}

	body, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("could not marshal protected resource metadata: %w", err)
	}

	return &MetadataHandler{body: body}, nil
}

// ServeHTTP implements http.Handler.
func (h *MetadataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(h.body)
}
