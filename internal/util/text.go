package util

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// NormalizeComment canonicalizes an attachment comment for supplier
// grouping: case-insensitive, whitespace-insensitive.
func NormalizeComment(input string) string {
	s := strings.ToLower(input)
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func CollapseSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// LooksLikeCode reports whether a token is shaped like a type code or
// article number: at least three characters, letters and digits mixed.
func LooksLikeCode(input string) bool {
	if len(strings.TrimSpace(input)) < 3 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, r := range input {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			hasLetter = true
		}
		if r >= '0' && r <= '9' {
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// DigitsOnly reports whether the string is non-empty and all ASCII digits.
func DigitsOnly(input string) bool {
	if input == "" {
		return false
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func StringPtr(v string) *string { return &v }

func FloatPtr(v float64) *float64 { return &v }
