// Package authcode obtains an OAuth 2.0 authorization code for a locally run application.
//
// A Session carries the per-attempt state token and builds the authorization URL.
// The CallbackListener serves the redirect URI on a local port and records the
// first callback into a CallbackResult. ServiceImpl ties them together: it binds
// the listener, opens the browser and waits for the result until a timeout.
//
// Progress narration goes through an Observer so the flow can be driven without
// writing to the terminal.
package authcode
