package utils

//go:generate $MOCKGEN -source=user_agent_provider.go -destination=mocks/user_agent_provider_mock.go

// UserAgentProvider is an interface that defines a method for retrieving a User-Agent string.
type UserAgentProvider interface {
	// GetUserAgent returns a User-Agent string.
	GetUserAgent() string
}

// ApplicationUserAgentProvider identifies requests as coming from this application.
type ApplicationUserAgentProvider struct {
	userAgent string
}

// NewApplicationUserAgentProvider returns a provider producing "<name>/<version>".
func NewApplicationUserAgentProvider(name, version string) UserAgentProvider {
	return &ApplicationUserAgentProvider{userAgent: name + "/" + version}
}

// GetUserAgent returns a User-Agent string.
func (p *ApplicationUserAgentProvider) GetUserAgent() string {
	return p.userAgent
}
