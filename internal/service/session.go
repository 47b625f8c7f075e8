// Package service contains the business logic layer of the application.
//
// Handlers parse HTTP and write responses; services enforce the rules and
// orchestrate the store; the store persists the document. Services accept
// primitives and domain types — never *http.Request — and return apperror
// domain errors, never status codes. The handler layer translates.
//
// Every service holds the store as the store.DocumentStore interface, so
// tests inject an in-memory fake and production injects the jsonfile store.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/linkdeck/internal/apperror"
	"github.com/sakif/linkdeck/internal/auth"
	"github.com/sakif/linkdeck/internal/model"
	"github.com/sakif/linkdeck/internal/store"
)

// Credentials is what a login request carries. Exactly one of the two modes
// should be populated: (TS, Sig) for the timestamped mode, Key for the
// simple fallback.
type Credentials struct {
	User string
	TS   string
	Sig  string
	Key  string
}

// SessionService owns the session lifecycle: login mints sessions, Validate
// gates protected requests, Logout removes them. Session records live inside
// the document, keyed by a one-way hash of the token — the raw token exists
// only in the client's cookie.
type SessionService struct {
	store    store.DocumentStore
	verifier *auth.Verifier
	secret   string
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time // injectable for expiry tests
}

// NewSessionService creates a SessionService. secret is the shared secret
// used for both credential verification and token hashing; ttl is the
// session (and cookie) lifetime.
func NewSessionService(
	st store.DocumentStore,
	verifier *auth.Verifier,
	secret string,
	ttl time.Duration,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		store:    st,
		verifier: verifier,
		secret:   secret,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Login verifies an externally-issued credential and, on success, mints a new
// session. It returns the raw token (for the cookie) and the stored record.
//
// Credential selection: the timestamped pair wins when present, the simple
// key is the fallback, and supplying neither is rejected before any
// verification work happens.
func (s *SessionService) Login(ctx context.Context, creds Credentials) (string, *model.Session, error) {
	user := strings.TrimSpace(creds.User)
	if user == "" {
		return "", nil, apperror.Unauthorized("missing credentials")
	}

	now := s.now()
	switch {
	case creds.TS != "" && creds.Sig != "":
		if err := s.verifier.VerifyTimestamped(user, creds.TS, creds.Sig, now); err != nil {
			s.logger.Warn("timestamped login rejected",
				slog.String("user", user),
				slog.String("error", err.Error()),
			)
			return "", nil, apperror.Unauthorized("invalid credentials")
		}
	case creds.Key != "":
		if err := s.verifier.VerifySimple(user, creds.Key); err != nil {
			s.logger.Warn("simple login rejected", slog.String("user", user))
			return "", nil, apperror.Unauthorized("invalid credentials")
		}
	default:
		return "", nil, apperror.Unauthorized("missing credentials")
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return "", nil, err
	}

	session := model.Session{
		User:      user,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return "", nil, err
	}
	doc.Sessions[auth.HashToken(token, s.secret)] = session
	if err := s.store.Save(ctx, doc); err != nil {
		return "", nil, err
	}

	s.logger.Info("user logged in",
		slog.String("user", user),
		slog.Int64("expiresAt", session.ExpiresAt),
	)

	return token, &session, nil
}

// Validate resolves a raw cookie token to its session.
//
// Expiry is handled lazily here: an expired record found during validation is
// removed and persisted on the spot, and the caller gets the same error as
// for a token that never existed. There is no background sweep — this check
// plus the store's load-time pruning are the only cleanup paths.
func (s *SessionService) Validate(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, apperror.Unauthorized("not authenticated")
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	hash := auth.HashToken(token, s.secret)
	session, ok := doc.Sessions[hash]
	if !ok {
		return nil, apperror.Unauthorized("invalid or expired session")
	}

	if session.Expired(s.now()) {
		delete(doc.Sessions, hash)
		if err := s.store.Save(ctx, doc); err != nil {
			s.logger.Error("failed to persist expired session removal",
				slog.String("error", err.Error()),
			)
		}
		return nil, apperror.Unauthorized("invalid or expired session")
	}

	return &session, nil
}

// Logout removes the session behind the token, if any. It is idempotent:
// logging out twice, or with a cookie that never matched a session, succeeds
// quietly.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	hash := auth.HashToken(token, s.secret)
	session, ok := doc.Sessions[hash]
	if !ok {
		return nil
	}

	delete(doc.Sessions, hash)
	if err := s.store.Save(ctx, doc); err != nil {
		return err
	}

	s.logger.Info("user logged out", slog.String("user", session.User))
	return nil
}
