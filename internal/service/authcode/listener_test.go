package authcode

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/authcode-grabber/internal/utils"
)

func newTestListener(state string) (*CallbackListener, *CallbackResult) {
	session := newSessionWithState("9", "http://127.0.0.1:1240/oauth2/authorize",
		"http://localhost:8000/callback", nil, state)
	result := NewCallbackResult()

	return NewCallbackListener(session, result, "/callback"), result
}

// TestCallbackListener_HandleCallback tests the callback checks and the recorded outcome.
func TestCallbackListener_HandleCallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedCode   string
		expectedErr    error
		expectedBody   string
	}{
		{
			name:           "code with matching state",
			query:          "code=XYZ&state=abc123",
			expectedStatus: http.StatusOK,
			expectedCode:   "XYZ",
			expectedBody:   "Authorization Successful",
		},
		{
			name:           "server error",
			query:          "error=access_denied&state=abc123",
			expectedStatus: http.StatusBadRequest,
			expectedErr:    ErrAuthorizationDenied,
			expectedBody:   "access_denied",
		},
		{
			name:           "server error wins over wrong state",
			query:          "error=access_denied&state=wrong",
			expectedStatus: http.StatusBadRequest,
			expectedErr:    ErrAuthorizationDenied,
		},
		{
			name:           "state mismatch",
			query:          "code=XYZ&state=wrong",
			expectedStatus: http.StatusBadRequest,
			expectedErr:    ErrStateMismatch,
		},
		{
			name:           "missing state",
			query:          "code=XYZ",
			expectedStatus: http.StatusBadRequest,
			expectedErr:    ErrStateMismatch,
		},
		{
			name:           "missing code",
			query:          "state=abc123",
			expectedStatus: http.StatusBadRequest,
			expectedErr:    ErrMissingCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			listener, result := newTestListener("abc123")

			req := httptest.NewRequest(http.MethodGet, "/callback?"+tt.query, nil)
			rec := httptest.NewRecorder()

			listener.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}

			outcome, ok := result.Load()
			require.True(t, ok)
			assert.Equal(t, tt.expectedCode, outcome.Code)

			if tt.expectedErr == nil {
				assert.NoError(t, outcome.Err())
			} else {
				assert.ErrorIs(t, outcome.Err(), tt.expectedErr)
			}
		})
	}
}

// TestCallbackListener_RepeatedCallback tests that only the first callback is recorded.
func TestCallbackListener_RepeatedCallback(t *testing.T) {
	t.Parallel()

	listener, result := newTestListener("abc123")
	handler := listener.Handler()

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/callback?code=XYZ&state=abc123", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	for _, query := range []string{
		"code=OTHER&state=abc123",
		"error=access_denied&state=abc123",
		"code=XYZ&state=abc123",
	} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?"+query, nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	}

	outcome, ok := result.Load()
	require.True(t, ok)
	assert.Equal(t, "XYZ", outcome.Code)
	assert.NoError(t, outcome.Err())
}

// TestCallbackListener_EscapesServerError tests that reflected parameters are HTML-escaped.
func TestCallbackListener_EscapesServerError(t *testing.T) {
	t.Parallel()

	listener, _ := newTestListener("abc123")

	req := httptest.NewRequest(http.MethodGet,
		"/callback?error=%3Cscript%3Ealert(1)%3C%2Fscript%3E&state=abc123", nil)
	rec := httptest.NewRecorder()

	listener.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}

// TestCallbackListener_Routes tests requests outside the callback route.
func TestCallbackListener_Routes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
	}{
		{
			name:           "root page",
			method:         http.MethodGet,
			target:         "/",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown path",
			method:         http.MethodGet,
			target:         "/favicon.ico",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "post to callback",
			method:         http.MethodPost,
			target:         "/callback?code=XYZ&state=abc123",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			listener, result := newTestListener("abc123")

			rec := httptest.NewRecorder()
			listener.Handler().ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)

			_, ok := result.Load()
			assert.False(t, ok)
		})
	}
}

// TestCallbackListener_ServeAndShutdown tests serving on a bound listener and releasing the port.
func TestCallbackListener_ServeAndShutdown(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	netListener, err := utils.ListenLocal(ctx, "127.0.0.1", 0)
	require.NoError(t, err)

	port := utils.ListenerPort(netListener)
	listener, result := newTestListener("abc123")
	listener.Serve(ctx, netListener)

	target := "http://" + netListener.Addr().String() + "/callback?code=XYZ&state=abc123"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "close this window")

	select {
	case <-result.Done():
	case <-time.After(time.Second):
		t.Fatal("result was not recorded")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, listenerShutdownTimeout)
	defer cancel()

	require.NoError(t, listener.Shutdown(shutdownCtx))

	// The port is free again.
	rebound, err := utils.ListenLocal(ctx, "127.0.0.1", port)
	require.NoError(t, err)
	require.NoError(t, rebound.Close())
}

// TestCallbackListener_ShutdownWithoutServe tests that Shutdown is a no-op before Serve.
func TestCallbackListener_ShutdownWithoutServe(t *testing.T) {
	t.Parallel()

	listener, _ := newTestListener("abc123")
	assert.NoError(t, listener.Shutdown(context.Background()))
}
