package referralcode

import (
	"crypto/rand"
	"fmt"
)

// Codes look like "EB7KQ2ZX": a fixed prefix plus six random uppercase
// alphanumeric characters. A code is assigned once at affiliate creation and
// never changes.
const (
	Prefix    = "EB"
	randomLen = 6
	charset   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	maxAttempts = 10
)

// Generate returns one candidate code.
func Generate() (string, error) {
	b := make([]byte, randomLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return Prefix + string(b), nil
}

// Issue generates codes until taken reports one as unused.
func Issue(taken func(code string) (bool, error)) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		code, err := Generate()
		if err != nil {
			return "", err
		}
		inUse, err := taken(code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", fmt.Errorf("referralcode: no unique code after %d attempts", maxAttempts)
}
