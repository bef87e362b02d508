// utils/validation.go
package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var clockRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ValidClock reports whether s is a valid HH:MM time string.
func ValidClock(s string) bool {
	return clockRegex.MatchString(s)
}

// ParseClock converts an HH:MM string into minutes since midnight.
func ParseClock(s string) (int, error) {
	if !ValidClock(s) {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	parts := strings.SplitN(s, ":", 2)
	var h, m int
	fmt.Sscanf(parts[0], "%d", &h)
	fmt.Sscanf(parts[1], "%d", &m)
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
