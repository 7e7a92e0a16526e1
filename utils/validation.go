package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number looks dialable. Spaces, dashes and
// parentheses are stripped before matching.
func ValidatePhone(phone string) bool {
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	regex := `^\+?[0-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}
