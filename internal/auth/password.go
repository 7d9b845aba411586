package auth

import (
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword generates a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plaintext password with a stored bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// PasswordPolicy checks new passwords against a configured pattern. An empty
// pattern only enforces the minimum length.
type PasswordPolicy struct {
	pattern *regexp.Regexp
}

const minPasswordLength = 8

// NewPasswordPolicy compiles pattern.
func NewPasswordPolicy(pattern string) (*PasswordPolicy, error) {
	if pattern == "" {
		return &PasswordPolicy{}, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid password pattern: %w", err)
	}
	return &PasswordPolicy{pattern: re}, nil
}

// Allows reports whether password satisfies the policy.
func (p *PasswordPolicy) Allows(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}
	return p.pattern == nil || p.pattern.MatchString(password)
}
