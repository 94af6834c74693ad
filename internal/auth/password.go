package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// HashPassword returns a salted hash encoded as "salt$hash". Listing
// accounts are low-value demo identities; the salted digest exists so the
// stored credential is never the raw password.
func HashPassword(password string) string {
	salt := randomHex(16)
	return salt + "$" + digest(salt, password)
}

// CheckPassword validates a password against a stored "salt$hash" value.
func CheckPassword(password, stored string) bool {
	salt, want, ok := strings.Cut(stored, "$")
	if !ok {
		return false
	}
	got := digest(salt, password)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func digest(salt, password string) string {
	h := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(h[:])
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "salt"
	}
	return hex.EncodeToString(buf)
}
