package authcode

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/oshokin/authcode-grabber/internal/logger"
	http_transport "github.com/oshokin/authcode-grabber/internal/transport/http"
)

const (
	// readHeaderTimeout bounds slow clients on the callback listener.
	readHeaderTimeout = 10 * time.Second

	// listenerShutdownTimeout bounds the graceful shutdown of the callback listener.
	listenerShutdownTimeout = 5 * time.Second
)

// CallbackListener serves the redirect URI and records the first callback it receives.
type CallbackListener struct {
	session *Session
	result  *CallbackResult
	path    string
	server  *http.Server
}

// NewCallbackListener creates a listener for session that writes into result.
// path is the route of the redirect URI, for example "/callback".
func NewCallbackListener(session *Session, result *CallbackResult, path string) *CallbackListener {
	return &CallbackListener{
		session: session,
		result:  result,
		path:    path,
	}
}

// Handler returns the HTTP handler of the listener.
func (l *CallbackListener) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(
		middleware.Recoverer,
		http_transport.RequestLogger,
		http_transport.SecurityHeaders)

	if l.path != "/" {
		router.Get("/", l.handleRoot)
	}

	router.Get(l.path, l.handleCallback)

	return router
}

// Serve starts serving on an already bound listener in the background.
// The listener is bound before Serve is called, so the redirect URI is reachable
// as soon as this returns.
func (l *CallbackListener) Serve(ctx context.Context, listener net.Listener) {
	l.server = &http.Server{
		Handler:           l.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	server := l.server

	go func() {
		logger.Debugf(ctx, "Callback listener serving on %s", listener.Addr())

		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "Callback listener stopped: %v", err)
		}
	}()
}

// Shutdown stops the listener and releases its port.
func (l *CallbackListener) Shutdown(ctx context.Context) error {
	if l.server == nil {
		return nil
	}

	return l.server.Shutdown(ctx)
}

func (*CallbackListener) handleRoot(w http.ResponseWriter, r *http.Request) {
	writePage(r.Context(), w, http.StatusOK, waitingPage())
}

func (l *CallbackListener) handleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	outcome := l.evaluate(r.URL.Query())

	if !l.result.Store(outcome) {
		logger.Warn(ctx, "Ignoring repeated authorization callback")
		writePage(ctx, w, http.StatusForbidden, alreadyHandledPage())

		return
	}

	if err := outcome.Err(); err != nil {
		logger.Warnf(ctx, "Authorization callback rejected: %v", err)
		writePage(ctx, w, http.StatusBadRequest, failurePage(err))

		return
	}

	logger.InfoKV(ctx, "Authorization code received", "code_length", len(outcome.Code))
	writePage(ctx, w, http.StatusOK, successPage())
}

// evaluate applies the callback checks in order; the first failing check decides the outcome.
func (l *CallbackListener) evaluate(query url.Values) Outcome {
	if errorCode := query.Get("error"); errorCode != "" {
		return failureOutcome(ErrAuthorizationDenied, errorCode, query.Get("error_description"))
	}

	if !l.session.matchesState(query.Get("state")) {
		return failureOutcome(ErrStateMismatch, stateMismatchErrorCode, "")
	}

	code := query.Get("code")
	if code == "" {
		return failureOutcome(ErrMissingCode, missingCodeErrorCode, "")
	}

	return successOutcome(code)
}
