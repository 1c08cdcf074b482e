package auth

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength applies to both signup and profile updates.
const MinPasswordLength = 6

// dummyHash is compared against when the account does not exist so that
// unknown emails take as long as wrong passwords.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8eW"

var (
	ErrSignupPassword = errors.New("Password must contain at least one lowercase letter, one uppercase letter, one number, one special character, and be at least 6 characters long.")
	ErrUpdatePassword = errors.New("Password must be at least 6 characters long, contain at least one uppercase letter and one special character.")
)

// HashPassword creates a bcrypt hash from the given plaintext password.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword checks if the provided plaintext password matches the stored bcrypt hash.
func VerifyPassword(hashedPassword, providedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword))
}

// CompareDummy burns one bcrypt comparison.
func CompareDummy(providedPassword string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(providedPassword))
}

type passwordClasses struct {
	lower, upper, digit, special bool
}

func classify(password string) passwordClasses {
	var c passwordClasses
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			c.lower = true
		case unicode.IsUpper(r):
			c.upper = true
		case unicode.IsDigit(r):
			c.digit = true
		case unicode.IsSpace(r):
		default:
			c.special = true
		}
	}
	return c
}

// ValidateSignupPassword requires lowercase, uppercase, digit and special characters.
func ValidateSignupPassword(password string) error {
	c := classify(password)
	if len(password) < MinPasswordLength || !c.lower || !c.upper || !c.digit || !c.special {
		return ErrSignupPassword
	}
	return nil
}

// ValidateUpdatePassword is the looser rule used when changing a password.
func ValidateUpdatePassword(password string) error {
	c := classify(password)
	if len(password) < MinPasswordLength || !c.upper || !c.special {
		return ErrUpdatePassword
	}
	return nil
}
