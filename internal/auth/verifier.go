// Package auth implements credential verification and session tokens.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. An external portal shares a secret with this service and sends users to
//    /auth/login with a signed credential in the query string
// 2. The Verifier checks the credential against the shared secret
// 3. On success the server mints an opaque random session token, stores a
//    record keyed by HashToken(token) in the document, and sets the raw token
//    as an HttpOnly cookie
// 4. On protected requests the RequireLogin middleware hashes the cookie
//    value, looks the session up, and puts the user in the request context
//
// Two credential modes are supported:
//
//   - TIMESTAMPED (preferred): sig = hex(HMAC-SHA256("user:ts", secret)).
//     The timestamp bounds replay — an intercepted URL goes stale after the
//     configured window.
//   - SIMPLE (fallback): key = hex(SHA256("user:secret")). No time bound, so
//     a captured key works forever. Kept because existing issuers depend on
//     it; new integrations should use the timestamped mode.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Verifier checks externally-issued login credentials against the shared
// secret. It holds no per-user state — everything derives from the secret.
type Verifier struct {
	secret []byte
	window time.Duration
}

// NewVerifier creates a Verifier. The secret must be at least 16 characters;
// the window bounds how far a timestamped credential may drift from now.
func NewVerifier(secret string, window time.Duration) (*Verifier, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: shared secret must be at least 16 characters")
	}
	if window <= 0 {
		return nil, errors.New("auth: login window must be positive")
	}
	return &Verifier{secret: []byte(secret), window: window}, nil
}

// VerifyTimestamped checks the replay-resistant credential mode.
//
// The signature covers "user:ts" so neither the user nor the timestamp can
// be swapped without invalidating it. The window check runs even when the
// signature is valid — a correct but stale credential is still rejected.
func (v *Verifier) VerifyTimestamped(user, ts, sig string, now time.Time) error {
	issued, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return fmt.Errorf("auth: invalid timestamp %q", ts)
	}

	drift := now.Unix() - issued
	if drift < 0 {
		drift = -drift
	}
	if drift > int64(v.window.Seconds()) {
		return errors.New("auth: credential timestamp outside allowed window")
	}

	expected := SignTimestamped(user, ts, string(v.secret))
	if subtle.ConstantTimeCompare([]byte(expected), []byte(sig)) != 1 {
		return errors.New("auth: invalid signature")
	}
	return nil
}

// VerifySimple checks the fallback credential mode.
//
// There is no timestamp, so this credential never expires — it is documented
// as the weaker, replayable mode. The comparison is still constant-time.
func (v *Verifier) VerifySimple(user, key string) error {
	expected := SimpleKey(user, string(v.secret))
	if subtle.ConstantTimeCompare([]byte(expected), []byte(key)) != 1 {
		return errors.New("auth: invalid key")
	}
	return nil
}

// SignTimestamped computes the hex HMAC-SHA256 signature of "user:ts".
// Exported so issuers and tests can produce valid credentials.
func SignTimestamped(user, ts, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s:%s", user, ts)
	return hex.EncodeToString(mac.Sum(nil))
}

// SimpleKey computes the hex SHA-256 of "user:secret" for the fallback mode.
func SimpleKey(user, secret string) string {
	sum := sha256.Sum256([]byte(user + ":" + secret))
	return hex.EncodeToString(sum[:])
}
