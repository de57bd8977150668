// Package redact masks secrets for display. It guards what the reporter
// prints, nothing more: .env files and registry env blocks still receive the
// real values.
package redact

import (
	"regexp"
	"strings"
)

// secretPrefixes are the key shapes we know leak through logs.
var secretPrefixes = []string{
	"sk-ant-",
	"sk-",
	"vo-",
	"AKIA",
	"ghp_",
	"gho_",
}

// tokenPattern matches a whole secret-shaped token so Sanitize can replace
// it in place. Longest prefixes first, mirroring secretPrefixes.
var tokenPattern = regexp.MustCompile(`(sk-ant-|sk-|vo-|AKIA|ghp_|gho_)[A-Za-z0-9_-]+`)

// Redact formats a secret for console output: "[EMPTY]" for empty input,
// "[REDACTED]" when the secret is too short to partially show, otherwise the
// first six and last four characters.
func Redact(secret string) string {
	if secret == "" {
		return "[EMPTY]"
	}
	if len(secret) <= 10 {
		return "[REDACTED]"
	}
	return secret[:6] + "..." + secret[len(secret)-4:]
}

// ContainsSecret reports whether text carries any known secret prefix.
func ContainsSecret(text string) bool {
	for _, prefix := range secretPrefixes {
		if strings.Contains(text, prefix) {
			return true
		}
	}
	return false
}

// Sanitize replaces every secret-shaped token in text with its redacted
// form, leaving the rest of the line intact.
func Sanitize(text string) string {
	if !ContainsSecret(text) {
		return text
	}
	return tokenPattern.ReplaceAllStringFunc(text, Redact)
}
