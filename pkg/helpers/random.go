package helpers

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// KeyLength is the length of every generated key and password.
const KeyLength = 20

const keyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var keyAlphabetSize = big.NewInt(int64(len(keyAlphabet)))

// RandomAlphanumeric draws n characters uniformly from [A-Za-z0-9] using crypto/rand.
func RandomAlphanumeric(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, keyAlphabetSize)
		if err != nil {
			return "", err
		}
		b.WriteByte(keyAlphabet[idx.Int64()])
	}
	return b.String(), nil
}

// GenerateActivationKey returns a new activation key.
func GenerateActivationKey() (string, error) { return RandomAlphanumeric(KeyLength) }

// GenerateResetKey returns a new password reset key.
func GenerateResetKey() (string, error) { return RandomAlphanumeric(KeyLength) }

// GeneratePassword returns a random password, e.g. for seeded accounts.
func GeneratePassword() (string, error) { return RandomAlphanumeric(KeyLength) }

// KeyGenerator adapts the package functions for services that take their key source as a dependency.
type KeyGenerator struct{}

func (KeyGenerator) ActivationKey() (string, error) { return GenerateActivationKey() }
func (KeyGenerator) ResetKey() (string, error)      { return GenerateResetKey() }
