package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Service reads and updates the persisted provider keys.
// Construct one per process and pass it to whatever issues credential requests.
type Service struct {
	kv  KV
	log zerolog.Logger
	mu  sync.Mutex
}

// NewService creates a settings service over kv.
func NewService(kv KV, log zerolog.Logger) *Service {
	return &Service{
		kv:  kv,
		log: log.With().Str("component", "settings").Logger(),
	}
}

// Read returns the persisted keys. When nothing is stored yet the defaults are
// persisted and returned. Malformed stored data yields the defaults without error.
func (s *Service) Read(ctx context.Context) (Keys, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked(ctx, true)
}

// Update merges patch onto the current keys and persists the result.
func (s *Service) Update(ctx context.Context, patch Patch) (Keys, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.readLocked(ctx, false)
	if err != nil {
		return Keys{}, err
	}

	updated := current.Apply(patch)
	if err := s.write(ctx, updated); err != nil {
		return Keys{}, err
	}
	return updated, nil
}

// Headers returns the request header carrying the current keys. It never writes.
func (s *Service) Headers(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	keys, err := s.readLocked(ctx, false)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	value, err := EncodeHeader(keys)
	if err != nil {
		return nil, err
	}
	return map[string]string{HeaderName: value}, nil
}

func (s *Service) readLocked(ctx context.Context, persistDefaults bool) (Keys, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return Keys{}, fmt.Errorf("read settings: %w", err)
	}

	if !ok {
		defaults, err := s.defaults(ctx)
		if err != nil {
			return Keys{}, err
		}
		if persistDefaults {
			if err := s.write(ctx, defaults); err != nil {
				return Keys{}, err
			}
			s.log.Debug().Msg("initialized settings with defaults")
		}
		return defaults, nil
	}

	var keys Keys
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		s.log.Warn().Err(err).Msg("stored settings are malformed, using defaults")
		return s.defaults(ctx)
	}
	return keys, nil
}

// defaults are empty except for values found under the legacy single-value entries.
func (s *Service) defaults(ctx context.Context) (Keys, error) {
	var keys Keys

	key, _, err := s.kv.Get(ctx, LegacyOpenAIKey)
	if err != nil {
		return Keys{}, fmt.Errorf("read legacy key: %w", err)
	}
	host, _, err := s.kv.Get(ctx, LegacyOpenAIHost)
	if err != nil {
		return Keys{}, fmt.Errorf("read legacy host: %w", err)
	}

	keys.OpenAI.Key = key
	keys.OpenAI.Endpoint = host
	return keys, nil
}

func (s *Service) write(ctx context.Context, keys Keys) error {
	data, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// EncodeHeader returns the URL-encoded JSON form of keys, matching encodeURIComponent.
func EncodeHeader(keys Keys) (string, error) {
	data, err := json.Marshal(keys)
	if err != nil {
		return "", fmt.Errorf("encode settings header: %w", err)
	}
	return strings.ReplaceAll(url.QueryEscape(string(data)), "+", "%20"), nil
}

// DecodeHeader parses a header value produced by EncodeHeader.
func DecodeHeader(value string) (Keys, error) {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return Keys{}, fmt.Errorf("unescape settings header: %w", err)
	}

	var keys Keys
	if err := json.Unmarshal([]byte(decoded), &keys); err != nil {
		return Keys{}, fmt.Errorf("decode settings header: %w", err)
	}
	return keys, nil
}
