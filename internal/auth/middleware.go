package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sakif/linkdeck/internal/model"
)

// SessionCookie is the name of the cookie carrying the raw session token.
const SessionCookie = "session"

// contextKey is an unexported type used for context keys in this package.
// Using a package-private type means only this package can read or write the
// authenticated user in a request context — no key collisions with other
// packages.
type contextKey string

const userKey contextKey = "user"

// SessionValidator is the slice of the session service the middleware needs.
// Declaring the interface here (at the consumer) keeps auth free of a
// dependency on the service package.
type SessionValidator interface {
	// Validate resolves a raw cookie token to its session, or returns an
	// error when the token is unknown or the session has expired.
	Validate(ctx context.Context, token string) (*model.Session, error)
}

// RequireLogin enforces authentication on protected routes.
//
// It reads the session cookie, validates the token, and stores the user in
// the request context. Failures are channel-aware:
//
//   - API clients (Accept: application/json, or ?json_mode=1) get a 401 JSON
//     body they can parse
//   - Browsers get their stale cookie cleared and a redirect to the external
//     portal at redirectURL
//
// A missing cookie and an invalid or expired session deliberately produce
// the same observable outcome — the response never reveals whether a
// presented token used to be valid.
func RequireLogin(sessions SessionValidator, redirectURL string, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				denyRequest(w, r, redirectURL, secure, "not authenticated")
				return
			}

			session, err := sessions.Validate(r.Context(), cookie.Value)
			if err != nil {
				denyRequest(w, r, redirectURL, secure, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, session.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated user set by RequireLogin.
// Returns ("", false) when the request never passed the middleware.
func UserFromContext(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(userKey).(string)
	return user, ok && user != ""
}

// WantsJSON reports whether the requester asked for a structured JSON error
// instead of a browser redirect.
func WantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	switch r.URL.Query().Get("json_mode") {
	case "1", "true":
		return true
	}
	return false
}

// ClearSessionCookie tells the browser to drop the session cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// denyRequest answers an unauthenticated request on the right channel.
func denyRequest(w http.ResponseWriter, r *http.Request, redirectURL string, secure bool, message string) {
	if WantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":   "unauthorized",
			"message": message,
		})
		return
	}
	ClearSessionCookie(w, secure)
	http.Redirect(w, r, redirectURL, http.StatusFound)
}
