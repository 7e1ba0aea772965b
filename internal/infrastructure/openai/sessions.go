// Package openai talks to the OpenAI Realtime API: minting ephemeral sessions
// on the server side and exchanging SDP on the client side.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"jojo-client/internal/domain/audiosession"
	"jojo-client/internal/infrastructure/metrics"
	"jojo-client/internal/utils/redact"
)

// DefaultBaseURL is the public OpenAI API root.
const DefaultBaseURL = "https://api.openai.com/v1"

// SessionsClient implements audiosession.Upstream.
type SessionsClient struct {
	httpClient *resty.Client
	baseURL    string
}

type createSessionBody struct {
	Model string `json:"model"`
	Voice string `json:"voice,omitempty"`
}

// NewSessionsClient creates a Resty-backed client for <baseURL>/realtime/sessions.
// A zero timeout disables the client timeout.
func NewSessionsClient(baseURL string, timeout time.Duration) *SessionsClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		httpClient.SetTimeout(timeout)
	}
	return &SessionsClient{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// CreateRealtimeSession posts {model, voice} and returns the raw response body.
func (c *SessionsClient) CreateRealtimeSession(ctx context.Context, req audiosession.UpstreamRequest) ([]byte, error) {
	base := c.baseURL
	if req.BaseURL != "" {
		base = req.BaseURL
	}
	url := strings.TrimRight(base, "/") + "/realtime/sessions"

	start := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(req.APIKey).
		SetBody(createSessionBody{Model: req.Model, Voice: req.Voice}).
		Post(url)
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RecordUpstreamError("transport")
		return nil, fmt.Errorf("post realtime session: %w", err)
	}
	if resp.IsError() {
		metrics.RecordUpstreamError("status")
		return nil, fmt.Errorf("openai sessions error: %d %s", resp.StatusCode(), upstreamMessage(resp.Body()))
	}

	body := resp.Body()
	if !json.Valid(body) {
		metrics.RecordUpstreamError("body")
		return nil, errors.New("openai sessions returned a non-JSON body")
	}
	return body, nil
}

const maxMessageRunes = 256

// upstreamMessage extracts error.message from an OpenAI error body, falling back
// to the raw text. Keys echoed back by the upstream are redacted.
func upstreamMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return redact.Secrets(payload.Error.Message)
	}
	text := strings.TrimSpace(string(body))
	if utf8.RuneCountInString(text) > maxMessageRunes {
		text = string([]rune(text)[:maxMessageRunes]) + "..."
	}
	return redact.Secrets(text)
}

// Ensure interface compliance.
var _ audiosession.Upstream = (*SessionsClient)(nil)
