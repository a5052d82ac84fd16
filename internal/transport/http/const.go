package http

import "time"

const (
	// DefaultTimeout is the default timeout for outbound HTTP requests such as discovery.
	DefaultTimeout = 15 * time.Second

	// userAgentHeader is the HTTP header name for User-Agent.
	userAgentHeader = "User-Agent"
)
