// Package utils provides small helpers shared across the application:
// content type checks, random token generation, URL redaction for logs
// and local port selection.
package utils
