package authcode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/authcode-grabber/internal/config"
	"github.com/oshokin/authcode-grabber/internal/logger"
	"github.com/oshokin/authcode-grabber/internal/utils"
)

var (
	// ErrAuthorizationDenied is returned when the authorization server redirects back with an error.
	ErrAuthorizationDenied = errors.New("authorization denied")

	// ErrStateMismatch is returned when the callback's state differs from the session's.
	// This is treated as a possible forged request.
	ErrStateMismatch = errors.New("state parameter mismatch")

	// ErrMissingCode is returned when the callback carries neither a code nor an error.
	ErrMissingCode = errors.New("authorization code missing from callback")

	// ErrTimeout is returned when no callback arrives in time.
	ErrTimeout = errors.New("timed out waiting for authorization callback")

	// ErrNilDependency is returned by NewService when a collaborator is missing.
	ErrNilDependency = errors.New("nil dependency")
)

// Service obtains authorization codes.
type Service interface {
	// RequestAuthorizationCode runs one authorization attempt and returns the code.
	// A non-positive timeout means the configured one.
	RequestAuthorizationCode(ctx context.Context, timeout time.Duration) (string, error)
}

// ServiceImpl runs the browser-based authorization code flow.
type ServiceImpl struct {
	cfg      *config.Config
	opener   BrowserOpener
	observer Observer
	resolver EndpointResolver
}

// NewService creates the service. cfg must have passed config.ValidateConfig.
func NewService(
	cfg *config.Config,
	opener BrowserOpener,
	observer Observer,
	resolver EndpointResolver,
) (*ServiceImpl, error) {
	switch {
	case cfg == nil:
		return nil, fmt.Errorf("%w: config", ErrNilDependency)
	case opener == nil:
		return nil, fmt.Errorf("%w: browser opener", ErrNilDependency)
	case observer == nil:
		return nil, fmt.Errorf("%w: observer", ErrNilDependency)
	case resolver == nil:
		return nil, fmt.Errorf("%w: endpoint resolver", ErrNilDependency)
	}

	return &ServiceImpl{
		cfg:      cfg,
		opener:   opener,
		observer: observer,
		resolver: resolver,
	}, nil
}

// RequestAuthorizationCode implements Service.
//
// The listener is bound before the browser is opened, and it is shut down
// before this method returns. The timeout covers the browser launch too:
// the opener runs in the background on a context that expires with the attempt.
func (s *ServiceImpl) RequestAuthorizationCode(ctx context.Context, timeout time.Duration) (string, error) {
	timeout = firstPositive(timeout, s.cfg.ParsedTimeout, config.DefaultTimeout)
	pollInterval := firstPositive(s.cfg.ParsedPollInterval, config.DefaultPollInterval)

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint, err := s.resolver.ResolveAuthorizationEndpoint(attemptCtx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve authorization endpoint: %w", err)
	}

	netListener, err := utils.ListenLocal(attemptCtx, s.cfg.CallbackHost, s.cfg.CallbackPort)
	if err != nil {
		return "", fmt.Errorf("failed to start callback listener: %w", err)
	}

	redirectURL := s.cfg.RedirectURL(utils.ListenerPort(netListener))

	session, err := NewSession(s.cfg.ClientID, endpoint, redirectURL, s.cfg.Scopes)
	if err != nil {
		_ = netListener.Close()

		return "", fmt.Errorf("failed to create session: %w", err)
	}

	ctx = logger.WithKV(ctx, "session_id", session.ID())
	attemptCtx = logger.WithKV(attemptCtx, "session_id", session.ID())

	result := NewCallbackResult()
	listener := NewCallbackListener(session, result, s.cfg.CallbackPath)
	listener.Serve(ctx, netListener)

	defer s.shutdownListener(ctx, listener)

	s.observer.ListenerStarted(ctx, redirectURL)

	authURL := session.AuthorizationURL()
	s.observer.AuthorizationURLReady(ctx, authURL)

	opened := make(chan error, 1)

	go func() {
		opened <- s.opener.Open(attemptCtx, authURL)
	}()

	code, err := s.waitForCode(ctx, attemptCtx, result, opened, authURL, timeout, pollInterval)

	// Stops a launch that is still in progress before releasing the browser.
	cancel()
	s.opener.Close(ctx)

	s.observer.Completed(ctx, err)

	return code, err
}

// waitForCode polls result until it holds an outcome, attemptCtx expires or ctx is done.
// Closing of result.Done() wakes the loop early, so the poll interval only paces
// progress notifications. The outcome of the browser launch is reported as soon as
// it arrives on opened.
func (s *ServiceImpl) waitForCode(
	ctx, attemptCtx context.Context,
	result *CallbackResult,
	opened <-chan error,
	authURL string,
	timeout, pollInterval time.Duration,
) (string, error) {
	var (
		startTime = time.Now()
		ticker    = time.NewTicker(pollInterval)
	)

	defer ticker.Stop()

	for {
		if outcome, ok := result.Load(); ok {
			return outcome.Code, outcome.Err()
		}

		select {
		case <-attemptCtx.Done():
			if err := ctx.Err(); err != nil {
				return "", fmt.Errorf("authorization cancelled: %w", err)
			}

			// A callback recorded in the same instant still wins.
			if outcome, ok := result.Load(); ok {
				return outcome.Code, outcome.Err()
			}

			return "", fmt.Errorf("%w after %s", ErrTimeout, timeout)
		case <-result.Done():
		case err := <-opened:
			s.observer.BrowserOpened(ctx, authURL, err)

			opened = nil
		case <-ticker.C:
			s.observer.Waiting(ctx, time.Since(startTime), timeout)
		}
	}
}

func (s *ServiceImpl) shutdownListener(ctx context.Context, listener *CallbackListener) {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listenerShutdownTimeout)
	defer cancel()

	if err := listener.Shutdown(shutdownCtx); err != nil {
		logger.Warnf(ctx, "Failed to shutdown callback listener: %v", err)
	}
}

func firstPositive(values ...time.Duration) time.Duration {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}

	return 0
}
