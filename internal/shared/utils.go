// Package shared provides utility functions and sentinel errors used
// across the server components.
package shared

import (
	"crypto/rand"
	"math/big"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// MakeRandAlphanumericString generates a random alphanumeric string of the
// given length using a cryptographically secure random source. Identifiers
// (user ids, session ids) and per-user salts are produced with this helper.
//
// It returns an error if the random number generator fails.
func MakeRandAlphanumericString(length int) (string, error) {

	b := make([]byte, length)
	max := big.NewInt(int64(len(alphanumeric)))

	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphanumeric[n.Int64()]
	}

	return string(b), nil
}
