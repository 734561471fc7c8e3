// Package authutil holds the password policy shared by account creation and
// the profile page.
package authutil

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72
)

var (
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordTooLong  = fmt.Errorf("password must be at most %d bytes", MaxPasswordLength)
	ErrPasswordCommon   = errors.New("password is too common; choose another")
)

// commonPasswords are refused regardless of case.
var commonPasswords = map[string]bool{
	"password":   true,
	"password1":  true,
	"12345678":   true,
	"123456789":  true,
	"1234567890": true,
	"qwertyuiop": true,
	"iloveyou":   true,
	"sunshine":   true,
	"football":   true,
	"welcome1":   true,
	"letmein1":   true,
	"contraseña": true,
	"alquiler":   true,
}

// ValidatePassword checks pw against the password policy.
func ValidatePassword(pw string) error {
	switch {
	case utf8.RuneCountInString(pw) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(pw) > MaxPasswordLength:
		return ErrPasswordTooLong
	case commonPasswords[strings.ToLower(pw)]:
		return ErrPasswordCommon
	}
	return nil
}

// PasswordRules describes the policy for form hints.
func PasswordRules() string {
	return fmt.Sprintf("At least %d characters. Very common passwords are not accepted.", MinPasswordLength)
}

// HashPassword returns the bcrypt hash of pw.
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether pw matches hash. An empty hash never matches.
func CheckPassword(pw, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
