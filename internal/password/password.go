// Package password is the one-way credential codec.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrMismatch = errors.New("password and confirm password do not match")

// Hash returns a bcrypt hash of password. The two plaintext inputs are
// compared before anything is hashed; a mismatch returns ErrMismatch.
func Hash(password, confirmPassword string) (string, error) {
	if password != confirmPassword {
		return "", ErrMismatch
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether candidate matches storedHash. Cost and salt are
// read from the hash's own encoding, so no parameters are needed here.
func Verify(candidate, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)) == nil
}
