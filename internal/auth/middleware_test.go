package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/linkdeck/internal/apperror"
	"github.com/sakif/linkdeck/internal/auth"
	"github.com/sakif/linkdeck/internal/model"
)

const redirectURL = "https://portal.test/login"

// stubValidator accepts exactly one token.
type stubValidator struct {
	token string
	user  string
}

func (s *stubValidator) Validate(_ context.Context, token string) (*model.Session, error) {
	if token != s.token {
		return nil, apperror.Unauthorized("invalid or expired session")
	}
	return &model.Session{User: s.user}, nil
}

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			t.Error("handler reached without a user in context")
		}
		w.Write([]byte(user))
	})
}

func TestRequireLogin(t *testing.T) {
	sessions := &stubValidator{token: "good-token", user: "alice"}
	mw := auth.RequireLogin(sessions, redirectURL, false)

	t.Run("valid cookie passes through with user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/manager", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "good-token"})
		rr := httptest.NewRecorder()

		mw(protectedEcho(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "alice", rr.Body.String())
	})

	t.Run("browser without cookie is redirected to the portal", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/manager", nil)
		rr := httptest.NewRecorder()

		mw(protectedEcho(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, redirectURL, rr.Header().Get("Location"))
	})

	t.Run("browser with bad cookie gets it cleared", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/manager", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "stale"})
		rr := httptest.NewRecorder()

		mw(protectedEcho(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		cookies := rr.Result().Cookies()
		if assert.Len(t, cookies, 1) {
			assert.Equal(t, auth.SessionCookie, cookies[0].Name)
			assert.Equal(t, -1, cookies[0].MaxAge)
		}
	})

	t.Run("json client gets a structured 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/screens/save", nil)
		req.Header.Set("Accept", "application/json")
		rr := httptest.NewRecorder()

		mw(protectedEcho(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "unauthorized", body["error"])
		assert.Equal(t, "not authenticated", body["message"])
	})

	t.Run("json_mode query flag selects the json channel", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/manager?json_mode=1", nil)
		rr := httptest.NewRecorder()

		mw(protectedEcho(t)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		name   string
		target string
		accept string
		want   bool
	}{
		{"plain browser", "/manager", "text/html", false},
		{"accept json", "/manager", "application/json", true},
		{"accept json among others", "/manager", "text/html, application/json;q=0.9", true},
		{"json_mode=1", "/manager?json_mode=1", "", true},
		{"json_mode=true", "/manager?json_mode=true", "", true},
		{"json_mode=0", "/manager?json_mode=0", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			assert.Equal(t, tt.want, auth.WantsJSON(req))
		})
	}
}
