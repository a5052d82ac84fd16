package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/oshokin/authcode-grabber/internal/logger"
)

// securityHeaders are set on every response of the local listener.
//
//nolint:gochecknoglobals // Immutable header table.
var securityHeaders = map[string]string{
	"X-Content-Type-Options":  "nosniff",
	"X-Frame-Options":         "DENY",
	"Referrer-Policy":         "no-referrer",
	"Content-Security-Policy": "default-src 'none'; style-src 'unsafe-inline'",
	"Cache-Control":           "no-store",
}

// SecurityHeaders adds headers that keep the callback pages from being framed, sniffed or cached.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for name, value := range securityHeaders {
			w.Header().Set(name, value)
		}

		next.ServeHTTP(w, r)
	})
}

// RequestLogger logs every inbound request at debug level.
// Only the path is logged: the callback query carries the authorization code.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			ww        = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			startTime = time.Now()
		)

		next.ServeHTTP(ww, r)

		logger.DebugKV(r.Context(), "Inbound request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(startTime),
			"remote", r.RemoteAddr)
	})
}
