package authcode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/authcode-grabber/internal/config"
)

func newDiscoveryServer(t *testing.T, authorizationEndpoint string) *httptest.Server {
	t.Helper()

	var server *httptest.Server

	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/.well-known/openid-configuration" {
			http.NotFound(w, r)

			return
		}

		w.Header().Set("Content-Type", "application/json")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 server.URL,
			"authorization_endpoint": authorizationEndpoint,
			"token_endpoint":         server.URL + "/token",
			"jwks_uri":               server.URL + "/keys",
		})
	}))

	t.Cleanup(server.Close)

	return server
}

// TestOIDCDiscovery tests reading the authorization endpoint from the discovery document.
func TestOIDCDiscovery(t *testing.T) {
	t.Parallel()

	server := newDiscoveryServer(t, "https://login.example.com/authorize")

	endpoint, err := NewOIDCDiscovery(server.URL, server.Client()).ResolveAuthorizationEndpoint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://login.example.com/authorize", endpoint)
}

// TestOIDCDiscovery_Errors tests discovery failures.
func TestOIDCDiscovery_Errors(t *testing.T) {
	t.Parallel()

	t.Run("no authorization endpoint", func(t *testing.T) {
		t.Parallel()

		server := newDiscoveryServer(t, "")

		_, err := NewOIDCDiscovery(server.URL, nil).ResolveAuthorizationEndpoint(context.Background())
		require.ErrorIs(t, err, ErrNoAuthorizationEndpoint)
	})

	t.Run("missing document", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		t.Cleanup(server.Close)

		_, err := NewOIDCDiscovery(server.URL, server.Client()).ResolveAuthorizationEndpoint(context.Background())
		require.ErrorIs(t, err, ErrDiscoveryFailed)
	})
}

// TestNewEndpointResolver tests resolver selection.
func TestNewEndpointResolver(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	resolver := NewEndpointResolver(cfg, nil)
	assert.Equal(t, StaticEndpoint(config.DefaultAuthorizationURL), resolver)

	endpoint, err := resolver.ResolveAuthorizationEndpoint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAuthorizationURL, endpoint)

	cfg.IssuerURL = "https://issuer.example.com"

	discovery, ok := NewEndpointResolver(cfg, nil).(*OIDCDiscovery)
	require.True(t, ok)
	assert.Equal(t, "https://issuer.example.com", discovery.issuerURL)
	assert.Equal(t, http.DefaultClient, discovery.httpClient)
}
