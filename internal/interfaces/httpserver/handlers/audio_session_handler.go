package handlers

import (
	"context"
	"encoding/json"

	"jojo-client/internal/domain/audiosession"
	"jojo-client/internal/domain/settings"
)

// AudioSessionHandler handles audio session HTTP requests.
type AudioSessionHandler struct {
	service audiosession.Service
}

// NewAudioSessionHandler creates a new audio session handler.
func NewAudioSessionHandler(service audiosession.Service) *AudioSessionHandler {
	return &AudioSessionHandler{service: service}
}

// CreateSession mints an ephemeral realtime session.
func (h *AudioSessionHandler) CreateSession(ctx context.Context, clientKeys *settings.Keys) (json.RawMessage, error) {
	return h.service.CreateSession(ctx, clientKeys)
}

// GetSession retrieves a ledger entry by ID.
func (h *AudioSessionHandler) GetSession(ctx context.Context, id string) (*audiosession.Session, error) {
	return h.service.GetSession(ctx, id)
}

// ListSessions returns all unexpired ledger entries.
func (h *AudioSessionHandler) ListSessions(ctx context.Context) ([]*audiosession.Session, error) {
	return h.service.ListSessions(ctx)
}
