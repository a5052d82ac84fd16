package authcode

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_authcode "github.com/oshokin/authcode-grabber/internal/service/authcode/mocks"
)

// TestLogObserver tests that every notification can be logged.
func TestLogObserver(t *testing.T) {
	t.Parallel()

	var (
		ctx      = context.Background()
		observer = LogObserver{}
		authURL  = "http://127.0.0.1:1240/oauth2/authorize?client_id=9&state=secret"
	)

	assert.NotPanics(t, func() {
		observer.ListenerStarted(ctx, "http://localhost:8000/callback")
		observer.AuthorizationURLReady(ctx, authURL)
		observer.BrowserOpened(ctx, authURL, nil)
		observer.BrowserOpened(ctx, authURL, ErrBrowserSkipped)
		observer.BrowserOpened(ctx, authURL, errors.New("no display"))
		observer.Waiting(ctx, 3*time.Second, time.Minute)
		observer.Completed(ctx, nil)
		observer.Completed(ctx, ErrTimeout)
	})
}

// TestProgressObserver tests that the spinner is drawn and notifications are forwarded.
func TestProgressObserver(t *testing.T) {
	t.Parallel()

	var (
		ctx  = context.Background()
		ctrl = gomock.NewController(t)
		next = mock_authcode.NewMockObserver(ctrl)
		out  bytes.Buffer
	)

	next.EXPECT().ListenerStarted(ctx, "http://localhost:8000/callback")
	next.EXPECT().Waiting(ctx, time.Second, time.Minute)
	next.EXPECT().Waiting(ctx, 2*time.Second, time.Minute)
	next.EXPECT().Completed(ctx, ErrTimeout)

	observer := NewProgressObserver(next, &out)
	observer.now = func() time.Time {
		return time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	observer.ListenerStarted(ctx, "http://localhost:8000/callback")
	observer.Waiting(ctx, time.Second, time.Minute)
	observer.Waiting(ctx, 2*time.Second, time.Minute)

	assert.Contains(t, out.String(), "Waiting for authorization callback")

	observer.Completed(ctx, ErrTimeout)
	assert.Nil(t, observer.bar)
}

// TestProgressObserver_ClearsBeforeForwarding tests that the spinner line is
// erased before the wrapped observer writes its own output.
func TestProgressObserver_ClearsBeforeForwarding(t *testing.T) {
	t.Parallel()

	var (
		ctx     = context.Background()
		ctrl    = gomock.NewController(t)
		next    = mock_authcode.NewMockObserver(ctrl)
		out     bytes.Buffer
		authURL = "http://127.0.0.1:1240/oauth2/authorize"
		openErr = errors.New("no display")
	)

	assertCleared := func() {
		assert.True(t, strings.HasSuffix(out.String(), "\r"), "spinner line is not cleared: %q", out.String())
	}

	gomock.InOrder(
		next.EXPECT().Waiting(ctx, time.Second, time.Minute),
		next.EXPECT().BrowserOpened(ctx, authURL, openErr).Do(func(context.Context, string, error) {
			assertCleared()
		}),
		next.EXPECT().Waiting(ctx, 2*time.Second, time.Minute).Do(func(context.Context, time.Duration, time.Duration) {
			assertCleared()
		}),
		next.EXPECT().Completed(ctx, nil).Do(func(context.Context, error) {
			assertCleared()
		}),
	)

	observer := NewProgressObserver(next, &out)

	observer.Waiting(ctx, time.Second, time.Minute)
	assert.Contains(t, out.String(), "Waiting for authorization callback")

	observer.BrowserOpened(ctx, authURL, openErr)
	observer.Waiting(ctx, 2*time.Second, time.Minute)
	observer.Completed(ctx, nil)
}

// TestProgressObserver_CompletedWithoutWaiting tests completion before any poll.
func TestProgressObserver_CompletedWithoutWaiting(t *testing.T) {
	t.Parallel()

	var (
		ctx  = context.Background()
		ctrl = gomock.NewController(t)
		next = mock_authcode.NewMockObserver(ctrl)
		out  bytes.Buffer
	)

	next.EXPECT().Completed(ctx, nil)

	NewProgressObserver(next, &out).Completed(ctx, nil)

	assert.Empty(t, out.String())
}
