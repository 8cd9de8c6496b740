package util

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor used for both account passwords and
// reset OTPs.
const bcryptCost = 8

const minPasswordLength = 7

var (
	ErrPasswordTooShort  = errors.New("password must be at least 7 characters long")
	ErrPasswordForbidden = errors.New("password cannot contain 'password'")
)

// ValidatePassword applies the account password rules. It runs before
// hashing so rejected values never reach the hasher.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return ErrPasswordForbidden
	}
	return nil
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
