package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// NewSessionToken returns a fresh opaque session token: 32 bytes from
// crypto/rand, hex encoded. The token carries no structure — it is only ever
// looked up by its hash.
func NewSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: generating session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashToken derives the storage key for a session token.
//
// The document persists sessions under hex(SHA256("token:secret")), never
// under the raw token, so someone who reads the document file cannot forge a
// working cookie. Mixing in the secret also stops an attacker who can write
// the document from inserting a session for a token they chose.
func HashToken(token, secret string) string {
	sum := sha256.Sum256([]byte(token + ":" + secret))
	return hex.EncodeToString(sum[:])
}
