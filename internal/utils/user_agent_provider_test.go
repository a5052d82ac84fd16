package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestApplicationUserAgentProvider tests the ApplicationUserAgentProvider type.
func TestApplicationUserAgentProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		appName  string
		version  string
		expected string
	}{
		{
			name:     "release version",
			appName:  "authcode-grabber",
			version:  "1.2.3",
			expected: "authcode-grabber/1.2.3",
		},
		{
			name:     "development build",
			appName:  "authcode-grabber",
			version:  "0.1.0-dev",
			expected: "authcode-grabber/0.1.0-dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := NewApplicationUserAgentProvider(tt.appName, tt.version)

			assert.Implements(t, (*UserAgentProvider)(nil), provider)
			assert.Equal(t, tt.expected, provider.GetUserAgent())
		})
	}
}
