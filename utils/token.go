package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
)

// SecureToken returns a random hex string of 2*n characters, used for the
// secondary session and CSRF tokens.
func SecureToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ConstantTimeEquals compares two tokens without leaking the mismatch
// position.
func ConstantTimeEquals(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
