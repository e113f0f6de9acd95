// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks the basic local@domain.tld shape.
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove leading/trailing spaces
	return strings.TrimSpace(input)
}

// OptionalString returns nil for blank input so optional columns stay NULL.
func OptionalString(input string) *string {
	v := SanitizeInput(input)
	if v == "" {
		return nil
	}
	return &v
}
