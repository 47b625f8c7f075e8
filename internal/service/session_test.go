package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/sakif/linkdeck/internal/apperror"
	"github.com/sakif/linkdeck/internal/auth"
)

const sessionTestSecret = "unit-test-secret-value"

func newSessionTestService(t *testing.T) (*SessionService, *mockStore) {
	t.Helper()
	verifier, err := auth.NewVerifier(sessionTestSecret, 5*time.Minute)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	st := newMockStore()
	svc := NewSessionService(st, verifier, sessionTestSecret, 12*time.Hour, testLogger())
	return svc, st
}

func timestampedCreds(user string, at time.Time) Credentials {
	ts := strconv.FormatInt(at.Unix(), 10)
	return Credentials{
		User: user,
		TS:   ts,
		Sig:  auth.SignTimestamped(user, ts, sessionTestSecret),
	}
}

func TestLogin_Timestamped(t *testing.T) {
	svc, st := newSessionTestService(t)
	ctx := context.Background()

	now := time.Unix(1_700_000_000, 0)
	svc.now = func() time.Time { return now }

	token, session, err := svc.Login(ctx, timestampedCreds("alice", now))
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if session.User != "alice" {
		t.Errorf("session user: got %q", session.User)
	}
	if session.ExpiresAt != now.Add(12*time.Hour).Unix() {
		t.Errorf("expiry: got %d, want now+ttl", session.ExpiresAt)
	}

	// The document stores the hash, never the raw token.
	if _, ok := st.doc.Sessions[token]; ok {
		t.Error("raw token must not be a storage key")
	}
	if _, ok := st.doc.Sessions[auth.HashToken(token, sessionTestSecret)]; !ok {
		t.Error("hashed token missing from document")
	}
}

func TestLogin_SimpleKey(t *testing.T) {
	svc, _ := newSessionTestService(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, Credentials{
		User: "alice",
		Key:  auth.SimpleKey("alice", sessionTestSecret),
	})
	if err != nil {
		t.Fatalf("Login with simple key: %v", err)
	}
	if token == "" {
		t.Error("expected a session token")
	}
}

func TestLogin_Rejections(t *testing.T) {
	svc, st := newSessionTestService(t)
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	svc.now = func() time.Time { return now }

	good := timestampedCreds("alice", now)

	tests := []struct {
		name  string
		creds Credentials
	}{
		{"no user", Credentials{TS: good.TS, Sig: good.Sig}},
		{"no credential at all", Credentials{User: "alice"}},
		{"tampered signature", Credentials{User: "alice", TS: good.TS, Sig: "00" + good.Sig[2:]}},
		{"stale timestamp", timestampedCreds("alice", now.Add(-6*time.Minute))},
		{"wrong simple key", Credentials{User: "alice", Key: "bogus"}},
		{"key for another user", Credentials{User: "alice", Key: auth.SimpleKey("bob", sessionTestSecret)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(ctx, tt.creds)
			if !errors.Is(err, apperror.ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
		})
	}

	if st.saveCount != 0 {
		t.Errorf("rejected logins must not write; saveCount = %d", st.saveCount)
	}
}

func TestValidate(t *testing.T) {
	svc, _ := newSessionTestService(t)
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	svc.now = func() time.Time { return now }

	token, _, err := svc.Login(ctx, timestampedCreds("alice", now))
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	session, err := svc.Validate(ctx, token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if session.User != "alice" {
		t.Errorf("user: got %q", session.User)
	}

	if _, err := svc.Validate(ctx, ""); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("empty token: expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Validate(ctx, "never-issued"); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("unknown token: expected ErrUnauthorized, got %v", err)
	}
}

func TestValidate_ExpiredSessionIsRemoved(t *testing.T) {
	svc, st := newSessionTestService(t)
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	svc.now = func() time.Time { return now }

	token, _, err := svc.Login(ctx, timestampedCreds("alice", now))
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Jump past the TTL.
	svc.now = func() time.Time { return now.Add(13 * time.Hour) }

	if _, err := svc.Validate(ctx, token); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired session, got %v", err)
	}
	if len(st.doc.Sessions) != 0 {
		t.Error("expired session record must be removed from the document")
	}
}

func TestLogout(t *testing.T) {
	svc, st := newSessionTestService(t)
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	svc.now = func() time.Time { return now }

	token, _, err := svc.Login(ctx, timestampedCreds("alice", now))
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(st.doc.Sessions) != 0 {
		t.Error("session record must be removed on logout")
	}
	if _, err := svc.Validate(ctx, token); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Error("token must stop validating after logout")
	}

	// Idempotent: a second logout and a logout with no session both succeed.
	if err := svc.Logout(ctx, token); err != nil {
		t.Errorf("second Logout: %v", err)
	}
	if err := svc.Logout(ctx, ""); err != nil {
		t.Errorf("Logout with empty token: %v", err)
	}
}
