// Package redact keeps credentials out of logs and error text.
package redact

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

var (
	// OpenAI API keys (sk-..., sk-proj-...) and ephemeral realtime secrets (ek_...).
	apiKeyPattern = regexp.MustCompile(`\b(?:sk-[A-Za-z0-9_\-*]{8,}|ek_[A-Za-z0-9_\-]{8,})`)
	bearerPattern = regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9._\-~+/=]+`)
)

// Secrets replaces API keys, ephemeral secrets and bearer tokens in s.
func Secrets(s string) string {
	s = bearerPattern.ReplaceAllString(s, "Bearer [REDACTED]")
	return apiKeyPattern.ReplaceAllStringFunc(s, func(match string) string {
		return "[KEY:" + Fingerprint(match) + "]"
	})
}

// Fingerprint returns a short stable hash of secret, or "" for an empty secret.
// It identifies which key was used without revealing it.
func Fingerprint(secret string) string {
	if secret == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])[:8]
}
