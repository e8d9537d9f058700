package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// SanitizeString trims whitespace and escapes HTML
func SanitizeString(input string) string {
	return html.EscapeString(strings.TrimSpace(input))
}

// SanitizeName trims, strips tags and control characters from a display name.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = stripHTML(name)
	return removeControlChars(name)
}

// SanitizeEmail trims and strips tags and control characters. Case is
// preserved: invitation and driver emails are joined by exact match.
func SanitizeEmail(email string) string {
	email = strings.TrimSpace(email)
	email = stripHTML(email)
	return removeControlChars(email)
}

// SanitizePhone keeps digits and common phone punctuation
func SanitizePhone(phone string) string {
	phone = stripHTML(strings.TrimSpace(phone))

	var result strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) || r == '+' || r == '-' || r == ' ' || r == '(' || r == ')' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

func stripHTML(input string) string {
	return htmlTagPattern.ReplaceAllString(input, "")
}

func removeControlChars(input string) string {
	var result strings.Builder
	for _, r := range input {
		if unicode.IsPrint(r) || r == ' ' {
			result.WriteRune(r)
		}
	}
	return result.String()
}
