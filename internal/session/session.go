// Package session implements the console's auth gate.
//
// There is no login endpoint on the API — authentication is HTTP Basic, so a
// "login" is one authenticated probe against a protected resource. On success
// the gate derives the reusable token (base64 of username:password, exactly
// the Basic credential) and persists it so later commands stay signed in.
//
// The gate holds zero or one token. Absence of a token IS the unauthenticated
// state; protected console commands check Authenticated() up front and bounce
// the user to login instead of firing doomed requests.
package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tharindu/classtrack/internal/apperror"
	"github.com/tharindu/classtrack/internal/kvstore"
)

const tokenKey = "token"

// probePath is the protected resource used to verify credentials at login.
// Any class mutation endpoint would do; a single-record GET is the cheapest.
const probePath = "/api/classes"

// Session holds the credential token and attaches it to outbound requests.
type Session struct {
	store   kvstore.Store
	baseURL string
	client  *http.Client
	token   string
}

// New restores a session from the store. A missing token simply means the
// user is logged out; that is not an error.
func New(store kvstore.Store, baseURL string, client *http.Client) *Session {
	if client == nil {
		client = http.DefaultClient
	}
	s := &Session{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
	if tok, err := store.Get(tokenKey); err == nil {
		s.token = tok
	}
	return s
}

// EncodeToken derives the credential token from a username/password pair.
// It is the standard Basic credential: base64("user:pass"). Reversible by
// design — the API re-verifies the raw credentials on every request.
func EncodeToken(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// Authenticated reports whether a token is held. Synchronous: navigation
// gating must not wait on the network.
func (s *Session) Authenticated() bool { return s.token != "" }

// Token returns the held token, or "" when logged out.
func (s *Session) Token() string { return s.token }

// Username recovers the account name from the held token, or "" when logged
// out or the token is unreadable.
func (s *Session) Username() string {
	raw, err := base64.StdEncoding.DecodeString(s.token)
	if err != nil {
		return ""
	}
	name, _, ok := strings.Cut(string(raw), ":")
	if !ok {
		return ""
	}
	return name
}

// Apply attaches the Authorization header to req when a token is held.
func (s *Session) Apply(req *http.Request) {
	if s.token != "" {
		req.Header.Set("Authorization", "Basic "+s.token)
	}
}

// Login verifies the credentials with one probe request and, on success,
// stores the derived token. Failures keep the previous state:
//   - 401/403 → apperror.ErrUnauthorized with the upstream status and body
//     passed through verbatim
//   - network failure or any other upstream status → apperror.ErrUnavailable
func (s *Session) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+probePath, nil)
	if err != nil {
		return fmt.Errorf("session: building probe request: %w", err)
	}
	candidate := EncodeToken(username, password)
	req.Header.Set("Authorization", "Basic "+candidate)

	resp, err := s.client.Do(req)
	if err != nil {
		return apperror.Unavailable("login failed: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		// Only an explicit rejection means the credentials are bad. A 502
		// from a dead upstream is an outage, not a wrong password.
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return apperror.Unauthorized(fmt.Sprintf("login failed: %d %s", resp.StatusCode, msg))
		}
		return apperror.Unavailable(fmt.Sprintf("login failed: %d %s", resp.StatusCode, msg))
	}

	s.token = candidate
	if err := s.store.Set(tokenKey, s.token); err != nil {
		return fmt.Errorf("session: persisting token: %w", err)
	}
	return nil
}

// Logout clears the token from memory and from the store. Logging out while
// already logged out is a no-op.
func (s *Session) Logout() error {
	s.token = ""
	if err := s.store.Delete(tokenKey); err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		return fmt.Errorf("session: clearing token: %w", err)
	}
	return nil
}
