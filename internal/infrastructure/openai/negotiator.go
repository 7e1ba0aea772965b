package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultRealtimeURL is the SDP exchange endpoint.
const DefaultRealtimeURL = "https://api.openai.com/v1/realtime"

// ErrNotSDP is returned when the answer body is not a session description.
var ErrNotSDP = errors.New("answer is not an SDP document")

// RealtimeNegotiator posts an SDP offer with an ephemeral key and returns the answer.
type RealtimeNegotiator struct {
	httpClient *resty.Client
	url        string
	model      string
}

// NewRealtimeNegotiator creates a negotiator for url?model=<model>.
// A zero timeout disables the client timeout.
func NewRealtimeNegotiator(url, model string, timeout time.Duration) *RealtimeNegotiator {
	if strings.TrimSpace(url) == "" {
		url = DefaultRealtimeURL
	}
	httpClient := resty.New()
	if timeout > 0 {
		httpClient.SetTimeout(timeout)
	}
	return &RealtimeNegotiator{
		httpClient: httpClient,
		url:        url,
		model:      model,
	}
}

// Negotiate implements voice.Negotiator.
func (n *RealtimeNegotiator) Negotiate(ctx context.Context, credential, offerSDP string) (string, error) {
	req := n.httpClient.R().
		SetContext(ctx).
		SetAuthToken(credential).
		SetHeader("Content-Type", "application/sdp").
		SetBody(offerSDP)
	if n.model != "" {
		req.SetQueryParam("model", n.model)
	}

	resp, err := req.Post(n.url)
	if err != nil {
		return "", fmt.Errorf("post sdp offer: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("realtime endpoint returned %d: %s", resp.StatusCode(), upstreamMessage(resp.Body()))
	}

	// resp.String() trims the body; SDP must keep its trailing CRLF.
	answer := string(resp.Body())
	if !strings.HasPrefix(strings.TrimSpace(answer), "v=") {
		return "", ErrNotSDP
	}
	return answer, nil
}
