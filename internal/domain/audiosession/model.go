package audiosession

import "time"

// KeySource records which credential minted a session.
type KeySource string

const (
	// KeySourceServer means the server's OPENAI_API_KEY was used.
	KeySourceServer KeySource = "server"
	// KeySourceClient means the key came from the caller's x-chat-ollama-keys header.
	KeySourceClient KeySource = "client"
)

// Session is a ledger entry for one issued ephemeral credential.
// The secret itself is never recorded.
type Session struct {
	ID        string    `json:"id"`
	Object    string    `json:"object"` // "realtime.session"
	Model     string    `json:"model,omitempty"`
	Voice     string    `json:"voice,omitempty"`
	KeySource KeySource `json:"key_source"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// ListSessionsResponse is the response for listing sessions.
type ListSessionsResponse struct {
	Object string     `json:"object"` // "list"
	Data   []*Session `json:"data"`
}

// UpstreamRequest is what the upstream session endpoint needs.
type UpstreamRequest struct {
	APIKey  string
	BaseURL string // empty means the configured default
	Model   string
	Voice   string
}

// upstreamSession is the subset of the upstream response kept in the ledger.
type upstreamSession struct {
	ID           string `json:"id"`
	Model        string `json:"model"`
	Voice        string `json:"voice"`
	ClientSecret *struct {
		ExpiresAt int64 `json:"expires_at"`
	} `json:"client_secret"`
}
