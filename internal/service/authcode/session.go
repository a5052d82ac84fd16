package authcode

import (
	"crypto/subtle"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/oshokin/authcode-grabber/internal/utils"
)

// stateEntropyBytes is the number of random bytes behind the state parameter.
const stateEntropyBytes = 16

// Session is a single authorization attempt. It is immutable once created.
type Session struct {
	id           string
	state        string
	oauth2Config oauth2.Config
}

// NewSession creates a session with a fresh random state.
func NewSession(clientID, authorizationURL, redirectURL string, scopes []string) (*Session, error) {
	state, err := utils.RandomURLSafeString(stateEntropyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	return newSessionWithState(clientID, authorizationURL, redirectURL, scopes, state), nil
}

func newSessionWithState(clientID, authorizationURL, redirectURL string, scopes []string, state string) *Session {
	return &Session{
		id:    uuid.NewString(),
		state: state,
		oauth2Config: oauth2.Config{
			ClientID:    clientID,
			RedirectURL: redirectURL,
			Scopes:      append([]string(nil), scopes...),
			Endpoint: oauth2.Endpoint{
				AuthURL: authorizationURL,
			},
		},
	}
}

// ID returns the session identifier used to correlate log entries.
func (s *Session) ID() string {
	return s.id
}

// ClientID returns the OAuth client identifier.
func (s *Session) ClientID() string {
	return s.oauth2Config.ClientID
}

// RedirectURL returns the redirect URI the authorization server sends the browser back to.
func (s *Session) RedirectURL() string {
	return s.oauth2Config.RedirectURL
}

// State returns the anti-forgery state token.
func (s *Session) State() string {
	return s.state
}

// AuthorizationURL returns the URL the user must visit.
// Parameters are query-encoded: client_id, redirect_uri, response_type=code, state and,
// when configured, scope.
func (s *Session) AuthorizationURL() string {
	return s.oauth2Config.AuthCodeURL(s.state)
}

// matchesState compares in constant time.
func (s *Session) matchesState(state string) bool {
	return subtle.ConstantTimeCompare([]byte(s.state), []byte(state)) == 1
}
