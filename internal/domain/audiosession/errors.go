package audiosession

import "errors"

var (
	// ErrAPIKeyNotConfigured means no usable OpenAI key is available.
	ErrAPIKeyNotConfigured = errors.New("API key not configured")
	// ErrUpstream means the upstream session endpoint failed or returned something unusable.
	ErrUpstream = errors.New("failed to create audio session")
	// ErrSessionNotFound is returned when a ledger entry does not exist.
	ErrSessionNotFound = errors.New("session not found")
)
