package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"mime"
	"net/url"
	"regexp"
	"strings"
)

// textContentTypePatterns is a slice of regular expressions that match content types
// considered to be text-based: "text/*", JSON documents and JSON variants such as
// "application/jwk-set+json".
//
//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
var textContentTypePatterns = []*regexp.Regexp{
	regexp.MustCompile("^text/.+"),
	regexp.MustCompile("^application/json$"),
	regexp.MustCompile(`^application/[a-z0-9.\-]+\+json$`),
}

// sensitiveQueryParams are redacted by RedactURL.
//
//nolint:gochecknoglobals // Immutable lookup table.
var sensitiveQueryParams = map[string]struct{}{
	"code":          {},
	"state":         {},
	"access_token":  {},
	"id_token":      {},
	"refresh_token": {},
	"client_secret": {},
}

const redactedValue = "REDACTED"

// IsTextContentType checks if the given content type represents a text-based format.
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}

// RandomURLSafeString returns byteLen random bytes from crypto/rand encoded with unpadded base64url.
func RandomURLSafeString(byteLen int) (string, error) {
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// RedactURL replaces values of credential-bearing query parameters so the URL can be logged.
// Unparsable input is returned unchanged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return raw
	}

	query := u.Query()
	for key := range query {
		if _, ok := sensitiveQueryParams[strings.ToLower(key)]; ok {
			query.Set(key, redactedValue)
		}
	}

	u.RawQuery = query.Encode()

	return u.String()
}
