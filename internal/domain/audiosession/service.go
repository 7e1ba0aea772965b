package audiosession

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"jojo-client/internal/domain/settings"
	"jojo-client/internal/utils/idgen"
	"jojo-client/internal/utils/redact"
)

// Upstream calls the realtime session endpoint and returns the raw response body.
type Upstream interface {
	CreateRealtimeSession(ctx context.Context, req UpstreamRequest) ([]byte, error)
}

// Service defines the business operations for the session proxy.
type Service interface {
	// CreateSession mints an ephemeral session and returns the upstream JSON unchanged.
	// clientKeys is the decoded x-chat-ollama-keys header, or nil when absent.
	CreateSession(ctx context.Context, clientKeys *settings.Keys) (json.RawMessage, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	ListSessions(ctx context.Context) ([]*Session, error)
}

// Options carries the server-side defaults for minting sessions.
type Options struct {
	APIKey          string
	Model           string
	Voice           string
	AllowClientKeys bool
	FallbackTTL     time.Duration
}

type service struct {
	store    Store
	upstream Upstream
	opts     Options
	now      func() time.Time
	log      zerolog.Logger
}

// NewService creates a new session proxy service.
func NewService(store Store, upstream Upstream, opts Options, log zerolog.Logger) Service {
	if opts.FallbackTTL <= 0 {
		opts.FallbackTTL = time.Minute
	}
	return &service{
		store:    store,
		upstream: upstream,
		opts:     opts,
		now:      time.Now,
		log:      log.With().Str("component", "audio-session-service").Logger(),
	}
}

func (s *service) CreateSession(ctx context.Context, clientKeys *settings.Keys) (json.RawMessage, error) {
	req, source, err := s.resolve(clientKeys)
	if err != nil {
		return nil, err
	}

	body, err := s.upstream.CreateRealtimeSession(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: upstream body is not JSON", ErrUpstream)
	}

	s.record(ctx, body, req, source)
	return json.RawMessage(body), nil
}

func (s *service) GetSession(ctx context.Context, id string) (*Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// Expired entries may linger until the janitor sweeps them.
	if sess.Expired(s.now()) {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *service) ListSessions(ctx context.Context) ([]*Session, error) {
	sessions, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	live := make([]*Session, 0, len(sessions))
	for _, sess := range sessions {
		if !sess.Expired(now) {
			live = append(live, sess)
		}
	}
	return live, nil
}

// resolve picks the key and base URL. The server key always wins; the client's
// key and endpoint are only honored when client keys are allowed, and the
// endpoint only together with the client's own key.
func (s *service) resolve(clientKeys *settings.Keys) (UpstreamRequest, KeySource, error) {
	req := UpstreamRequest{
		APIKey: strings.TrimSpace(s.opts.APIKey),
		Model:  s.opts.Model,
		Voice:  s.opts.Voice,
	}
	source := KeySourceServer

	if s.opts.AllowClientKeys && clientKeys != nil {
		client := clientKeys.OpenAI
		if req.APIKey == "" && strings.TrimSpace(client.Key) != "" {
			req.APIKey = strings.TrimSpace(client.Key)
			source = KeySourceClient
		}
		// The server key is never sent to a client-chosen endpoint.
		if source == KeySourceClient && client.Proxy && strings.TrimSpace(client.Endpoint) != "" {
			req.BaseURL = strings.TrimSpace(client.Endpoint)
		}
	}

	if req.APIKey == "" {
		return UpstreamRequest{}, "", ErrAPIKeyNotConfigured
	}
	return req, source, nil
}

// record adds the session to the ledger. Ledger failures never fail the request.
func (s *service) record(ctx context.Context, body []byte, req UpstreamRequest, source KeySource) {
	var up upstreamSession
	if err := json.Unmarshal(body, &up); err != nil {
		s.log.Debug().Err(err).Msg("upstream session body has unexpected shape, recording defaults")
	}

	now := s.now()
	sess := &Session{
		ID:        up.ID,
		Object:    "realtime.session",
		Model:     up.Model,
		Voice:     up.Voice,
		KeySource: source,
		CreatedAt: now,
		ExpiresAt: now.Add(s.opts.FallbackTTL),
	}
	if sess.Model == "" {
		sess.Model = req.Model
	}
	if sess.Voice == "" {
		sess.Voice = req.Voice
	}
	if up.ClientSecret != nil && up.ClientSecret.ExpiresAt > 0 {
		sess.ExpiresAt = time.Unix(up.ClientSecret.ExpiresAt, 0)
	}
	if sess.ID == "" {
		id, err := idgen.GenerateSecureID("sess", 24)
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to generate ledger id")
			return
		}
		sess.ID = id
	}

	if err := s.store.Create(ctx, sess); err != nil {
		s.log.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to record session")
		return
	}

	s.log.Info().
		Str("session_id", sess.ID).
		Str("model", sess.Model).
		Str("key_source", string(source)).
		Str("key_fingerprint", redact.Fingerprint(req.APIKey)).
		Time("expires_at", sess.ExpiresAt).
		Msg("session issued")
}
