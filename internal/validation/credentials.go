// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 30
	// MaxPasswordBytes matches the bcrypt input limit.
	MaxPasswordBytes = 72
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateUsername checks an already trimmed username. Usernames are case-sensitive.
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}
	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores, and hyphens")
	}
	return nil
}

// ValidatePassword only enforces presence and the bcrypt length limit.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("password must not exceed %d bytes", MaxPasswordBytes)
	}
	return nil
}
