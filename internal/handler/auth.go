package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/linkdeck/internal/auth"
	"github.com/sakif/linkdeck/internal/service"
)

// defaultNext is where a browser login lands when no next parameter is given.
const defaultNext = "/manager"

// AuthHandler manages the login/logout flow and the /auth/me probe.
//
// The credential arrives in the query string because the external portal
// builds a plain link: /auth/login?user=alice&ts=...&sig=...&next=/manager.
// Every endpoint here is channel-aware — the same failure turns into a JSON
// 401 for API clients and a redirect-with-cookie-clear for browsers.
type AuthHandler struct {
	sessions    *service.SessionService
	ttl         time.Duration // cookie max-age, matches the session TTL
	secure      bool          // Secure flag on the cookie, for HTTPS deployments
	redirectURL string        // external portal for failed/ended browser sessions
	logger      *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(
	sessions *service.SessionService,
	ttl time.Duration,
	secure bool,
	redirectURL string,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		sessions:    sessions,
		ttl:         ttl,
		secure:      secure,
		redirectURL: redirectURL,
		logger:      logger,
	}
}

// HandleLogin verifies the credential and establishes a session.
//
// HTTP: GET /auth/login?user&ts&sig&key&next&json_mode
//
// On success the raw session token is set as an HttpOnly, SameSite=Lax
// cookie whose max-age matches the session TTL, and the browser is sent to
// next (default /manager); JSON clients get {"status":"ok","user":...}.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	creds := service.Credentials{
		User: q.Get("user"),
		TS:   q.Get("ts"),
		Sig:  q.Get("sig"),
		Key:  q.Get("key"),
	}

	token, session, err := h.sessions.Login(r.Context(), creds)
	if err != nil {
		if auth.WantsJSON(r) {
			writeError(w, err)
			return
		}
		auth.ClearSessionCookie(w, h.secure)
		http.Redirect(w, r, h.redirectURL, http.StatusFound)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	if auth.WantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"user":   session.User,
		})
		return
	}

	next := q.Get("next")
	if next == "" {
		next = defaultNext
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// HandleLogout ends the session, whether or not one exists.
//
// HTTP: GET /auth/logout?next&json_mode
//
// Logout is idempotent: the session record is removed if present, the cookie
// is cleared either way, and the response is always success. Browsers are
// sent to next when given, otherwise back to the external portal.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.sessions.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Error("logout failed", slog.String("error", err.Error()))
		}
	}

	auth.ClearSessionCookie(w, h.secure)

	if auth.WantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	next := r.URL.Query().Get("next")
	if next == "" {
		next = h.redirectURL
	}
	http.Redirect(w, r, next, http.StatusFound)
}

// HandleMe returns the currently authenticated user.
//
// HTTP: GET /auth/me
// Auth: Required (RequireLogin sets the user in context)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		// Should never happen on a protected route, but be safe.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "not authenticated",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"user": user})
}
