// Package tokenclient fetches ephemeral realtime credentials from the session proxy.
package tokenclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"jojo-client/internal/utils/redact"
)

// HeaderSource supplies the auth headers sent with every credential request.
// *settings.Service satisfies it.
type HeaderSource interface {
	Headers(ctx context.Context) (map[string]string, error)
}

// ErrMissingSecret is returned when the response lacks client_secret.value.
var ErrMissingSecret = errors.New("response has no client_secret.value")

// Client implements voice.CredentialFetcher.
type Client struct {
	httpClient *resty.Client
	endpoint   string
	headers    HeaderSource
}

type sessionResponse struct {
	ClientSecret *struct {
		Value     string `json:"value"`
		ExpiresAt int64  `json:"expires_at"`
	} `json:"client_secret"`
}

// New creates a credential client posting to endpoint. A zero timeout disables
// the client timeout.
func New(endpoint string, headers HeaderSource, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		httpClient.SetTimeout(timeout)
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		headers:    headers,
	}
}

// SetAuthToken sends token as a bearer token with every request.
func (c *Client) SetAuthToken(token string) *Client {
	if strings.TrimSpace(token) != "" {
		c.httpClient.SetAuthToken(token)
	}
	return c
}

// FetchCredential posts to the session endpoint and returns client_secret.value.
func (c *Client) FetchCredential(ctx context.Context) (string, error) {
	request := c.httpClient.R().SetContext(ctx)
	if c.headers != nil {
		headers, err := c.headers.Headers(ctx)
		if err != nil {
			return "", fmt.Errorf("load settings headers: %w", err)
		}
		request.SetHeaders(headers)
	}

	resp, err := request.Post(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("post session request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("session endpoint returned %d: %s", resp.StatusCode(), errorText(resp.Body()))
	}

	var payload sessionResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return "", fmt.Errorf("decode session response: %w", err)
	}
	if payload.ClientSecret == nil || strings.TrimSpace(payload.ClientSecret.Value) == "" {
		return "", ErrMissingSecret
	}
	return payload.ClientSecret.Value, nil
}

// errorText pulls the proxy's {"error": "..."} message out of a failure body.
func errorText(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return redact.Secrets(strings.TrimSpace(string(body)))
}
