// Package password hashes admin passwords with bcrypt.
package password

import (
	"equipment-reservation/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

const cost = bcrypt.DefaultCost

func Hash(plain string) (string, error) {
	if plain == "" {
		return "", errs.New("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", errs.Wrap(err, "bcrypt")
	}
	return string(hashed), nil
}

// Matches reports whether plain hashes to hashed. Malformed hashes never match.
func Matches(hashed, plain string) bool {
	if hashed == "" || plain == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
