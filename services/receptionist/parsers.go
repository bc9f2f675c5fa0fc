package receptionist

import (
	"regexp"
	"strings"
)

// namePattern accepts two or more whitespace-separated words of letters,
// case-insensitively ("John Smith", "mary ann parker"). Nothing else may
// surround them.
var namePattern = regexp.MustCompile(`(?i)^\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\s*$`)

// phonePattern accepts a US-style phone number: three digits (optionally
// parenthesized), three digits, four digits, separated by dash, dot, or
// space. The first occurrence anywhere in the message is taken.
var phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

// ParseFullName extracts a customer name, or reports failure.
func ParseFullName(text string) (string, bool) {
	m := namePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// ParsePhone extracts a phone number, or reports failure.
func ParsePhone(text string) (string, bool) {
	m := phonePattern.FindString(text)
	if m == "" {
		return "", false
	}
	return m, true
}

// isConfirmation reports whether the message is the exact confirmation
// phrase, ignoring case and surrounding whitespace.
func isConfirmation(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), confirmationPhrase)
}

// containsTriggerPhrase reports whether the message asks to enter booking
// mode. Both apostrophe variants are accepted, case-insensitively.
func containsTriggerPhrase(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "lets book") || strings.Contains(lower, "let's book")
}
