package http

import (
	"net/http"

	"github.com/oshokin/authcode-grabber/internal/utils"
)

// NewClient returns an HTTP client whose transport injects the User-Agent and,
// at debug level, dumps every exchange.
func NewClient(userAgentProvider utils.UserAgentProvider) *http.Client {
	transport := NewLogTransport(
		NewUserAgentInjector(http.DefaultTransport, userAgentProvider),
		0)

	return &http.Client{
		Transport: transport,
		Timeout:   DefaultTimeout,
	}
}
