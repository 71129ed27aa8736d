// Package admin guards the statistics endpoints behind the shared admin
// secret and short-lived bearer tokens.
package admin

import (
	"crypto/subtle"
)

// Gate checks a submitted credential against the configured secret.
type Gate struct {
	secret string
}

func NewGate(secret string) *Gate {
	return &Gate{secret: secret}
}

// Verify reports whether password matches the configured secret. The check is
// fail-closed: empty input is rejected outright, even when the secret itself
// is empty, and the comparison runs in constant time.
func (g *Gate) Verify(password string) bool {
	if password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(g.secret)) == 1
}
