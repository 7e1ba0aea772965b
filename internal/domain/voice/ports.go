package voice

import (
	"context"
	"time"
)

// CredentialFetcher obtains a short-lived credential for one session.
type CredentialFetcher interface {
	FetchCredential(ctx context.Context) (string, error)
}

// Negotiator exchanges the local SDP offer for the remote answer.
type Negotiator interface {
	Negotiate(ctx context.Context, credential, offerSDP string) (answerSDP string, err error)
}

// Sample is one encoded audio frame.
type Sample struct {
	Data     []byte
	Duration time.Duration
}

// AudioSource yields encoded Opus samples until Close or io.EOF.
type AudioSource interface {
	ReadSample() (Sample, error)
	Close() error
}

// Microphone opens local audio capture.
type Microphone interface {
	Open(ctx context.Context) (AudioSource, error)
}

// TransportState mirrors the peer connection state.
type TransportState string

const (
	TransportNew          TransportState = "new"
	TransportConnecting   TransportState = "connecting"
	TransportConnected    TransportState = "connected"
	TransportDisconnected TransportState = "disconnected"
	TransportFailed       TransportState = "failed"
	TransportClosed       TransportState = "closed"
)

// Terminal reports whether the state ends the session.
func (s TransportState) Terminal() bool {
	switch s {
	case TransportDisconnected, TransportFailed, TransportClosed:
		return true
	default:
		return false
	}
}

// Channel is the bidirectional message channel paired with a transport.
type Channel interface {
	Label() string
	Close() error
}

// Transport is one peer connection.
type Transport interface {
	// AttachAudio starts sending src as the local audio track.
	AttachAudio(src AudioSource) error
	// OpenChannel creates the data channel; onMessage receives every inbound payload.
	OpenChannel(label string, onMessage func([]byte)) (Channel, error)
	// CreateOffer returns the local SDP offer once it is complete.
	CreateOffer(ctx context.Context) (string, error)
	// ApplyAnswer sets the remote SDP answer.
	ApplyAnswer(answerSDP string) error
	// OnStateChange subscribes fn to state changes. After the returned func
	// is called fn is never invoked again.
	OnStateChange(fn func(TransportState)) (unsubscribe func())
	Close() error
}

// TransportFactory creates transports.
type TransportFactory interface {
	NewTransport(ctx context.Context) (Transport, error)
}

// Observer receives controller notifications in the order the changes happened.
// Implementations must not call Connect or Disconnect synchronously.
type Observer interface {
	StatusChanged(status Status)
	ErrorChanged(text string)
	TranscriptChanged(text string)
	MessageAdded(msg Message)
}

type nopObserver struct{}

func (nopObserver) StatusChanged(Status)     {}
func (nopObserver) ErrorChanged(string)      {}
func (nopObserver) TranscriptChanged(string) {}
func (nopObserver) MessageAdded(Message)     {}
