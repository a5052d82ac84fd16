package authcode

//go:generate $MOCKGEN -source=observer.go -destination=mocks/observer_mock.go

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/oshokin/authcode-grabber/internal/logger"
	"github.com/oshokin/authcode-grabber/internal/utils"
)

// progressSpinnerType is the progressbar spinner style used while waiting.
const progressSpinnerType = 14

// Observer receives progress notifications of an authorization attempt.
type Observer interface {
	// ListenerStarted is called once the callback listener accepts connections.
	ListenerStarted(ctx context.Context, redirectURL string)
	// AuthorizationURLReady is called with the URL the user must visit.
	AuthorizationURLReady(ctx context.Context, authURL string)
	// BrowserOpened reports the browser launch; err is ErrBrowserSkipped when
	// the user has to open the URL manually.
	BrowserOpened(ctx context.Context, authURL string, err error)
	// Waiting is called on every poll while no callback has arrived.
	Waiting(ctx context.Context, elapsed, timeout time.Duration)
	// Completed is called exactly once with the final error, nil on success.
	Completed(ctx context.Context, err error)
}

// LogObserver narrates the flow through the application logger.
type LogObserver struct{}

// ListenerStarted implements Observer.
func (LogObserver) ListenerStarted(ctx context.Context, redirectURL string) {
	logger.Infof(ctx, "Callback listener is ready at %s", redirectURL)
}

// AuthorizationURLReady implements Observer.
func (LogObserver) AuthorizationURLReady(ctx context.Context, authURL string) {
	logger.Debugf(ctx, "Authorization URL: %s", utils.RedactURL(authURL))
}

// BrowserOpened implements Observer.
func (LogObserver) BrowserOpened(ctx context.Context, authURL string, err error) {
	switch {
	case err == nil:
		logger.Info(ctx, "Browser opened, complete the authorization there")
	case errors.Is(err, ErrBrowserSkipped):
		logger.Infof(ctx, "Open this URL in your browser: %s", authURL)
	default:
		logger.Warnf(ctx, "Failed to open browser: %v", err)
		logger.Infof(ctx, "Please manually open this URL in your browser: %s", authURL)
	}
}

// Waiting implements Observer.
func (LogObserver) Waiting(ctx context.Context, elapsed, timeout time.Duration) {
	logger.Debugf(ctx, "Waiting for authorization callback (%s of %s elapsed)",
		elapsed.Round(time.Second), timeout)
}

// Completed implements Observer.
func (LogObserver) Completed(ctx context.Context, err error) {
	if err != nil {
		logger.Debugf(ctx, "Authorization attempt finished: %v", err)

		return
	}

	logger.Info(ctx, "Authorization attempt finished successfully")
}

// ProgressObserver decorates another Observer with a terminal spinner
// showing when the attempt expires.
type ProgressObserver struct {
	Observer

	writer io.Writer
	now    func() time.Time

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// NewProgressObserver wraps next; the spinner is drawn on writer.
func NewProgressObserver(next Observer, writer io.Writer) *ProgressObserver {
	return &ProgressObserver{
		Observer: next,
		writer:   writer,
		now:      time.Now,
	}
}

// BrowserOpened implements Observer.
func (p *ProgressObserver) BrowserOpened(ctx context.Context, authURL string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clearBar(ctx)
	p.Observer.BrowserOpened(ctx, authURL, err)
}

// Waiting implements Observer.
func (p *ProgressObserver) Waiting(ctx context.Context, elapsed, timeout time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clearBar(ctx)
	p.Observer.Waiting(ctx, elapsed, timeout)

	if p.bar == nil {
		p.bar = progressbar.NewOptions64(-1,
			progressbar.OptionSetWriter(p.writer),
			progressbar.OptionSpinnerType(progressSpinnerType),
			progressbar.OptionClearOnFinish())
	}

	expiresAt := p.now().Add(timeout - elapsed)
	p.bar.Describe(fmt.Sprintf("Waiting for authorization callback, expires %s", humanize.Time(expiresAt)))

	if err := p.bar.Add(1); err != nil {
		logger.Debugf(ctx, "Failed to update progress: %v", err)
	}
}

// clearBar erases the spinner line so the next log entry starts on a clean line.
// The caller must hold p.mu.
func (p *ProgressObserver) clearBar(ctx context.Context) {
	if p.bar == nil {
		return
	}

	if err := p.bar.Clear(); err != nil {
		logger.Debugf(ctx, "Failed to clear progress: %v", err)
	}
}

// Completed implements Observer.
func (p *ProgressObserver) Completed(ctx context.Context, err error) {
	p.mu.Lock()

	if p.bar != nil {
		if finishErr := p.bar.Finish(); finishErr != nil {
			logger.Debugf(ctx, "Failed to finish progress: %v", finishErr)
		}

		p.bar = nil
	}

	p.mu.Unlock()

	p.Observer.Completed(ctx, err)
}
