package oauth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ProtectedResourceMetadata_Validate(t *testing.T) {
	testCases := []struct {
		name     string
		metadata ProtectedResourceMetadata
		wantErr  string
	}{
		{
			name: "it accepts a minimal valid document",
			metadata: ProtectedResourceMetadata{
				Resource:             "https://mcp.example.com",
				AuthorizationServers: []string{"https://auth.example.com"},
			},
		},
		{
			name: "it requires a resource identifier",
			metadata: ProtectedResourceMetadata{
				AuthorizationServers: []string{"https://auth.example.com"},
			},
			wantErr: "resource identifier is required",
		},
		{
			name: "it requires at least one authorization server",
			metadata: ProtectedResourceMetadata{
				Resource: "https://mcp.example.com",
			},
			wantErr: "at least one authorization server is required",
		},
		{
			name: "it rejects an empty authorization server entry",
			metadata: ProtectedResourceMetadata{
				Resource:             "https://mcp.example.com",
				AuthorizationServers: []string{"https://auth.example.com", ""},
			},
			wantErr: "authorization server at index 1 is empty",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := testCase.metadata.Validate()
			if testCase.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, testCase.wantErr)
		})
	}
}

func Test_MetadataHandler(t *testing.T) {
	metadata := ProtectedResourceMetadata{
		Resource:               "https://mcp.example.com",
		AuthorizationServers:   []string{"https://auth.example.com"},
		ScopesSupported:        []string{"mcp:tools"},
		BearerMethodsSupported: []string{"header"},
	}

	handler, err := NewMetadataHandler(metadata)
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	defer server.Close()

	t.Run("it serves the document as JSON", func(t *testing.T) {
		response, err := server.Client().Get(server.URL + MetadataPath)
		require.NoError(t, err)
		defer response.Body.Close()

		assert.Equal(t, http.StatusOK, response.StatusCode)
		assert.Equal(t, "application/json", response.Header.Get("Content-Type"))

		var got ProtectedResourceMetadata
		require.NoError(t, json.NewDecoder(response.Body).Decode(&got))

		if diff := cmp.Diff(metadata, got); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("it rejects non-GET methods", func(t *testing.T) {
		response, err := server.Client().Post(server.URL+MetadataPath, "application/json", nil)
		require.NoError(t, err)
		defer response.Body.Close()

		assert.Equal(t, http.StatusMethodNotAllowed, response.StatusCode)
	})

	t.Run("it refuses construction from an invalid document", func(t *testing.T) {
		_, err := NewMetadataHandler(ProtectedResourceMetadata{Resource: "https://mcp.example.com"})
		assert.ErrorContains(t, err, "at least one authorization server")
	})
}
