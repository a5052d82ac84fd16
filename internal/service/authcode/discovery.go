package authcode

//go:generate $MOCKGEN -source=discovery.go -destination=mocks/discovery_mock.go

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/oshokin/authcode-grabber/internal/config"
	"github.com/oshokin/authcode-grabber/internal/logger"
)

var (
	// ErrDiscoveryFailed is returned when the issuer's discovery document cannot be used.
	ErrDiscoveryFailed = errors.New("OpenID Connect discovery failed")

	// ErrNoAuthorizationEndpoint is returned when discovery yields no authorization endpoint.
	ErrNoAuthorizationEndpoint = errors.New("issuer does not advertise an authorization endpoint")
)

// EndpointResolver supplies the authorization endpoint of a session.
type EndpointResolver interface {
	// ResolveAuthorizationEndpoint returns the absolute URL of the authorization endpoint.
	ResolveAuthorizationEndpoint(ctx context.Context) (string, error)
}

// NewEndpointResolver uses discovery when an issuer is configured and the fixed endpoint otherwise.
func NewEndpointResolver(cfg *config.Config, httpClient *http.Client) EndpointResolver {
	if cfg.IssuerURL != "" {
		return NewOIDCDiscovery(cfg.IssuerURL, httpClient)
	}

	return StaticEndpoint(cfg.AuthorizationURL)
}

// StaticEndpoint is a fixed authorization endpoint.
type StaticEndpoint string

// ResolveAuthorizationEndpoint implements EndpointResolver.
func (e StaticEndpoint) ResolveAuthorizationEndpoint(context.Context) (string, error) {
	return string(e), nil
}

// OIDCDiscovery reads the authorization endpoint from the issuer's
// /.well-known/openid-configuration document.
type OIDCDiscovery struct {
	issuerURL  string
	httpClient *http.Client
}

// NewOIDCDiscovery creates a resolver for issuerURL. A nil client means http.DefaultClient.
func NewOIDCDiscovery(issuerURL string, httpClient *http.Client) *OIDCDiscovery {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &OIDCDiscovery{
		issuerURL:  issuerURL,
		httpClient: httpClient,
	}
}

// ResolveAuthorizationEndpoint implements EndpointResolver.
func (d *OIDCDiscovery) ResolveAuthorizationEndpoint(ctx context.Context) (string, error) {
	logger.Debugf(ctx, "Discovering authorization endpoint of %s", d.issuerURL)

	provider, err := oidc.NewProvider(oidc.ClientContext(ctx, d.httpClient), d.issuerURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDiscoveryFailed, err)
	}

	authURL := provider.Endpoint().AuthURL
	if authURL == "" {
		return "", fmt.Errorf("%w: %s", ErrNoAuthorizationEndpoint, d.issuerURL)
	}

	logger.Debugf(ctx, "Discovered authorization endpoint: %s", authURL)

	return authURL, nil
}
