// Package logger wraps a global zap SugaredLogger with an atomic level.
// Every helper takes a context, so fields attached with WithKV (for example the
// session identifier of an authorization attempt) follow the call chain.
package logger
