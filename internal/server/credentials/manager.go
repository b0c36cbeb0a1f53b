// Package credentials implements the password hashing pipeline.
//
// A raw password never reaches storage. It passes through three stages:
// a SHA-512/256 digest over password ‖ salt ‖ pepper, base64 encoding of
// that digest, and finally bcrypt with a fixed cost. The bcrypt output is
// what gets persisted. The per-user salt defeats precomputed lookup
// tables; the server-wide pepper raises the cost of an offline attack when
// only the database leaks.
package credentials

import (
	"crypto/sha512"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/twinsight/dashboard-auth/internal/shared"
)

const (
	// SaltLength is the length of generated per-user salts.
	SaltLength = 16

	// bcryptCost is the fixed bcrypt cost factor.
	bcryptCost = 10
)

// Manager derives and verifies password hashes using a server-wide pepper.
type Manager struct {
	pepper string
}

// NewManager creates a Manager keyed with the given pepper.
func NewManager(pepper string) *Manager {
	return &Manager{pepper: pepper}
}

// GenerateSalt returns a fresh random alphanumeric salt of SaltLength
// characters, drawn from a cryptographically secure source.
func (m *Manager) GenerateSalt() (string, error) {
	salt, err := shared.MakeRandAlphanumericString(SaltLength)
	if err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}
	return salt, nil
}

// DeriveHash computes the deterministic digest stage of the pipeline:
// base64(SHA-512/256(password ‖ salt ‖ pepper)). The same inputs always
// yield the same output; it is computed both at registration and at login.
func (m *Manager) DeriveHash(password, salt string) string {
	h := sha512.New512_256()
	h.Write([]byte(password))
	h.Write([]byte(salt))
	h.Write([]byte(m.pepper))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// HashForStorage runs the adaptive stage: bcrypt over the derived digest.
// The salt is required to be well-formed here; a wrong-length salt is a
// programmer/configuration error, not a recoverable condition.
func (m *Manager) HashForStorage(derived, salt string) (string, error) {
	if len(salt) != SaltLength {
		return "", fmt.Errorf("%w: expected %d characters, got %d", shared.ErrorInvalidSalt, SaltLength, len(salt))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(derived), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error computing bcrypt hash: %w", err)
	}

	return string(hash), nil
}

// Verify checks a derived digest against the stored bcrypt hash. The
// comparison is constant-time inside bcrypt.
func (m *Manager) Verify(derived, stored string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(derived))
	return err == nil
}
