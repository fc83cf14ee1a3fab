package auth

import (
	"context"
	"net/http"

	"github.com/tharindu/classtrack/internal/model"
)

// contextKey is an unexported type for context keys in this package.
// A package-private key type means no other package can read or shadow the
// values this middleware stores in the request context.
type contextKey string

const userKey contextKey = "user"

// CredentialChecker verifies a username/password pair and returns the
// matching account. Implemented by the user service; the middleware doesn't
// know or care where accounts live.
type CredentialChecker interface {
	CheckCredentials(ctx context.Context, username, password string) (*model.User, error)
}

// RequireBasic is the middleware protecting mutation endpoints. It reads the
// Authorization: Basic header, verifies the credentials against the checker,
// and stores the account in the request context. Missing or wrong
// credentials end the chain with 401.
//
// Credentials are re-verified on every request — there is no session state
// on the server. Stateless by construction: the client's "token" is just the
// Basic credential itself.
func RequireBasic(checker CredentialChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w)
				return
			}

			user, err := checker.CheckCredentials(r.Context(), username, password)
			if err != nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// ContextWithUser stores an authenticated account on the context. The
// middleware uses it; tests use it to fake an authenticated request.
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext retrieves the authenticated account set by RequireBasic.
// Returns (nil, false) on public routes or anonymous requests.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

func unauthorized(w http.ResponseWriter) {
	// WWW-Authenticate advertises the scheme; curl and browsers use it to
	// prompt for credentials.
	w.Header().Set("WWW-Authenticate", `Basic realm="classtrack"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized","message":"valid credentials required"}`))
}
