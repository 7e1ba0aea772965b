// Package sessionres contains HTTP response DTOs for the session ledger.
package sessionres

import (
	"time"

	"jojo-client/internal/domain/audiosession"
)

// SessionResponse is a ledger entry in API responses. It never carries the secret.
type SessionResponse struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Model     string `json:"model,omitempty"`
	Voice     string `json:"voice,omitempty"`
	KeySource string `json:"key_source"`
	CreatedAt int64  `json:"created_at"`
	ExpiresAt int64  `json:"expires_at"`
	ExpiresIn int64  `json:"expires_in"` // seconds, at response time
}

// ListSessionsResponse represents the response for listing sessions.
type ListSessionsResponse struct {
	Object string             `json:"object"`
	Data   []*SessionResponse `json:"data"`
}

// NewSessionResponse creates a SessionResponse from a ledger entry.
func NewSessionResponse(sess *audiosession.Session, now time.Time) *SessionResponse {
	expiresIn := int64(sess.ExpiresAt.Sub(now).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}
	return &SessionResponse{
		ID:        sess.ID,
		Object:    sess.Object,
		Model:     sess.Model,
		Voice:     sess.Voice,
		KeySource: string(sess.KeySource),
		CreatedAt: sess.CreatedAt.Unix(),
		ExpiresAt: sess.ExpiresAt.Unix(),
		ExpiresIn: expiresIn,
	}
}

// NewListSessionsResponse creates a ListSessionsResponse from ledger entries.
func NewListSessionsResponse(sessions []*audiosession.Session, now time.Time) *ListSessionsResponse {
	data := make([]*SessionResponse, len(sessions))
	for i, s := range sessions {
		data[i] = NewSessionResponse(s, now)
	}

	return &ListSessionsResponse{
		Object: "list",
		Data:   data,
	}
}
