package voice

import "errors"

var (
	// ErrBusy is returned by Connect when a session is connecting or connected.
	ErrBusy = errors.New("a session is already active")
	// ErrCredentialExchange covers any failure to obtain an ephemeral credential.
	ErrCredentialExchange = errors.New("credential exchange failed")
	// ErrMicrophoneUnavailable covers permission and device failures when capturing audio.
	ErrMicrophoneUnavailable = errors.New("microphone unavailable")
	// ErrNegotiation covers a rejected or malformed offer/answer exchange.
	ErrNegotiation = errors.New("session negotiation failed")
	// ErrTransport covers peer connection and data channel setup failures.
	ErrTransport = errors.New("transport setup failed")
)
