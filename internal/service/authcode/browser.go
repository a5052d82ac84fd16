package authcode

//go:generate $MOCKGEN -source=browser.go -destination=mocks/browser_mock.go

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
	"github.com/pkg/browser"

	"github.com/oshokin/authcode-grabber/internal/config"
	"github.com/oshokin/authcode-grabber/internal/constants"
	"github.com/oshokin/authcode-grabber/internal/logger"
)

const (
	// browserSlowMotionDelay is the delay between browser actions in debug mode.
	browserSlowMotionDelay = 200 * time.Millisecond

	// browserCleanupDelay gives Chrome a moment to release profile file locks.
	browserCleanupDelay = 500 * time.Millisecond
)

var (
	// ErrBrowserSkipped is returned by openers that leave opening the URL to the user.
	ErrBrowserSkipped = errors.New("browser launch skipped")

	// ErrUnknownBrowserMode is returned for unsupported browser modes.
	ErrUnknownBrowserMode = errors.New("unknown browser mode")
)

// BrowserOpener shows the authorization URL to the user.
type BrowserOpener interface {
	// Open displays authURL. Failures are not fatal to the flow.
	Open(ctx context.Context, authURL string) error
	// Close releases whatever Open started. It is safe to call without Open.
	Close(ctx context.Context)
}

// NewBrowserOpener returns the opener for one of the config.Browser* modes.
func NewBrowserOpener(mode string) (BrowserOpener, error) {
	switch mode {
	case config.BrowserSystem:
		return NewSystemBrowser(), nil
	case config.BrowserIsolated:
		return NewIsolatedBrowser(), nil
	case config.BrowserNone:
		return ManualBrowser{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBrowserMode, mode)
	}
}

// SystemBrowser opens the URL in the platform default browser.
type SystemBrowser struct {
	openURL func(url string) error
}

// NewSystemBrowser creates a SystemBrowser.
func NewSystemBrowser() *SystemBrowser {
	return &SystemBrowser{openURL: browser.OpenURL}
}

// Open implements BrowserOpener.
func (b *SystemBrowser) Open(ctx context.Context, authURL string) error {
	logger.Debug(ctx, "Opening authorization URL in the default browser")

	if err := b.openURL(authURL); err != nil {
		return fmt.Errorf("failed to open default browser: %w", err)
	}

	return nil
}

// Close implements BrowserOpener. The system browser belongs to the user and is left running.
func (*SystemBrowser) Close(context.Context) {}

// ManualBrowser never launches anything; the user opens the URL by hand.
type ManualBrowser struct{}

// Open implements BrowserOpener.
func (ManualBrowser) Open(context.Context, string) error {
	return ErrBrowserSkipped
}

// Close implements BrowserOpener.
func (ManualBrowser) Close(context.Context) {}

// IsolatedBrowser launches Chromium with a throwaway profile, so no existing
// browser session leaks into the authorization.
type IsolatedBrowser struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	tempDir  string
}

// NewIsolatedBrowser creates an IsolatedBrowser.
func NewIsolatedBrowser() *IsolatedBrowser {
	return &IsolatedBrowser{}
}

// Open implements BrowserOpener.
func (b *IsolatedBrowser) Open(ctx context.Context, authURL string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tempDir, err := os.MkdirTemp("", constants.BrowserProfileDirPattern)
	if err != nil {
		return fmt.Errorf("failed to create temporary user data directory: %w", err)
	}

	b.tempDir = tempDir

	logger.Debugf(ctx, "Using temporary profile directory: %s", tempDir)

	// User needs to see the browser to log in. The context bounds the
	// Chromium download and the wait for the DevTools URL.
	browserLauncher := launcher.New().
		Context(ctx).
		Headless(false).
		UserDataDir(tempDir)

	// Prefer an installed Chrome, otherwise rod downloads Chromium.
	if chromePath, exists := launcher.LookPath(); exists {
		logger.Debugf(ctx, "Using system Chrome installation at: %s", chromePath)
		browserLauncher = browserLauncher.Bin(chromePath)
	}

	// Kept so Close can kill the process even if connecting fails.
	b.launcher = browserLauncher

	controlURL, err := browserLauncher.Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	browserInstance := rod.New().ControlURL(controlURL)

	if logger.IsDebugLevel() {
		browserInstance = browserInstance.
			Trace(true).
			SlowMotion(browserSlowMotionDelay)
	}

	if err = browserInstance.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}

	b.browser = browserInstance

	page, err := stealth.Page(browserInstance.Context(ctx))
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}

	if err = page.Navigate(authURL); err != nil {
		return fmt.Errorf("failed to navigate to authorization URL: %w", err)
	}

	return nil
}

// Close implements BrowserOpener.
func (b *IsolatedBrowser) Close(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	isClosed := false

	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			logger.Debugf(ctx, "Browser close error (expected): %v", err)
		} else {
			isClosed = true
		}

		b.browser = nil
	}

	if b.launcher != nil {
		if !isClosed {
			b.launcher.Kill()
		}

		b.launcher = nil
	}

	if b.tempDir != "" {
		time.Sleep(browserCleanupDelay)

		if err := os.RemoveAll(b.tempDir); err != nil {
			// Chrome may still hold locks on Windows; not critical.
			logger.Debugf(ctx, "Could not clean up temp directory %s: %v", b.tempDir, err)
		}

		b.tempDir = ""
	}
}
