package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/authcode-grabber/internal/config"
)

// TestNewAuthorizationService tests wiring of the service from configuration.
func TestNewAuthorizationService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		modify       func(*config.Config)
		expectsError bool
	}{
		{
			name:   "defaults",
			modify: func(*config.Config) {},
		},
		{
			name: "progress and manual browser",
			modify: func(c *config.Config) {
				c.ShowProgress = true
				c.Browser = config.BrowserNone
			},
		},
		{
			name:   "issuer discovery",
			modify: func(c *config.Config) { c.IssuerURL = "https://issuer.example.com" },
		},
		{
			name:         "unknown browser",
			modify:       func(c *config.Config) { c.Browser = "lynx" },
			expectsError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			tt.modify(cfg)

			service, err := newAuthorizationService(cfg, &bytes.Buffer{})
			if tt.expectsError {
				require.Error(t, err)
				assert.Nil(t, service)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, service)
		})
	}
}

// TestDumpConfig tests the JSON configuration dump.
func TestDumpConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	require.NoError(t, config.ValidateConfig(cfg))

	var buf bytes.Buffer
	require.NoError(t, dumpConfig(&buf, cfg))

	var dumped map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &dumped))

	assert.Equal(t, "9", dumped["client_id"])
	assert.InDelta(t, 8000, dumped["callback_port"], 0)
	assert.NotContains(t, dumped, "ParsedTimeout")
}
