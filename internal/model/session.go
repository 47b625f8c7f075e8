package model

import "time"

// Session is the server-side record behind a login cookie.
//
// Sessions live in Document.Sessions keyed by a one-way hash of
// "token:secret" — the plaintext token the browser holds is never written to
// disk, so a leaked document file does not leak usable cookies.
//
// Timestamps are unix seconds rather than time.Time so the persisted JSON
// stays plain integers, matching the rest of the document format.
type Session struct {
	User      string `json:"user"`
	CreatedAt int64  `json:"created_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// Expired reports whether the session is no longer valid at the given time.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt <= now.Unix()
}
