package kiosk

import "golang.org/x/crypto/bcrypt"

// Guard gates the kiosk's exit path behind a staff PIN. The PIN is stored as
// a bcrypt hash in configuration, never in the clear.
type Guard struct {
	hash []byte
}

// NewGuard accepts a bcrypt hash. An empty hash disables the guard, which is
// the development default.
func NewGuard(bcryptHash string) *Guard {
	return &Guard{hash: []byte(bcryptHash)}
}

// Enabled reports whether an exit PIN is configured.
func (g *Guard) Enabled() bool {
	return len(g.hash) > 0
}

// Verify checks a PIN attempt. A disabled guard admits everything.
func (g *Guard) Verify(pin string) bool {
	if !g.Enabled() {
		return true
	}
	return bcrypt.CompareHashAndPassword(g.hash, []byte(pin)) == nil
}
