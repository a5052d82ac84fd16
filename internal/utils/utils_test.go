package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsTextContentType tests the IsTextContentType function.
func TestIsTextContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		expected    bool
	}{
		{
			name:        "text/plain",
			contentType: "text/plain",
			expected:    true,
		},
		{
			name:        "text/html with charset",
			contentType: "text/html; charset=utf-8",
			expected:    true,
		},
		{
			name:        "application/json",
			contentType: "application/json",
			expected:    true,
		},
		{
			name:        "jwk set",
			contentType: "application/jwk-set+json",
			expected:    true,
		},
		{
			name:        "image/png",
			contentType: "image/png",
			expected:    false,
		},
		{
			name:        "text with invalid charset",
			contentType: "text/plain; charset=invalid",
			expected:    false,
		},
		{
			name:        "malformed content type",
			contentType: "text/",
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, IsTextContentType(tt.contentType))
		})
	}
}

// TestRandomURLSafeString tests the RandomURLSafeString function.
func TestRandomURLSafeString(t *testing.T) {
	t.Parallel()

	first, err := RandomURLSafeString(16)
	require.NoError(t, err)

	second, err := RandomURLSafeString(16)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, first, 22)
	assert.NotContains(t, first, "=")
	assert.NotContains(t, first, "+")
	assert.NotContains(t, first, "/")

	decoded, err := base64.RawURLEncoding.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, decoded, 16)
}

// TestRedactURL tests the RedactURL function.
func TestRedactURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "callback with code and state",
			input:    "/callback?code=XYZ&state=abc123",
			expected: "/callback?code=REDACTED&state=REDACTED",
		},
		{
			name:     "keeps non-sensitive params",
			input:    "http://localhost:8000/callback?error=access_denied&state=abc",
			expected: "http://localhost:8000/callback?error=access_denied&state=REDACTED",
		},
		{
			name:     "no query",
			input:    "http://localhost:8000/callback",
			expected: "http://localhost:8000/callback",
		},
		{
			name:     "unparsable",
			input:    "http://[::1",
			expected: "http://[::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, RedactURL(tt.input))
		})
	}
}
