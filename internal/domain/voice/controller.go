package voice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// DefaultChannelLabel is the data channel label the realtime endpoint expects.
const DefaultChannelLabel = "oai-events"

// Deps are the collaborators of a Controller.
type Deps struct {
	Credentials CredentialFetcher
	Negotiator  Negotiator
	Transports  TransportFactory
	Microphone  Microphone

	// Optional
	Observer     Observer
	Conversation *Conversation
	ChannelLabel string
}

// Controller owns the lifecycle of a single voice session: credential exchange,
// microphone capture, peer connection setup and teardown, and the conversation
// log fed by the data channel.
type Controller struct {
	credentials  CredentialFetcher
	negotiator   Negotiator
	transports   TransportFactory
	microphone   Microphone
	channelLabel string
	conversation *Conversation
	observer     Observer
	log          zerolog.Logger

	mu      sync.Mutex
	status  Status
	errText string
	active  *session
	pending *attempt

	// emitMu keeps observer callbacks in the order the changes were made.
	emitMu sync.Mutex
}

type attempt struct {
	cancel context.CancelFunc
}

// session groups everything one connection holds. release is safe to call more than once.
type session struct {
	transport   Transport
	channel     Channel
	mic         AudioSource
	unsubscribe func()

	released atomic.Bool
}

func (s *session) release(log zerolog.Logger) {
	if !s.released.CompareAndSwap(false, true) {
		return
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	if s.channel != nil {
		if err := s.channel.Close(); err != nil {
			log.Debug().Err(err).Msg("close data channel")
		}
	}
	if s.transport != nil {
		if err := s.transport.Close(); err != nil {
			log.Debug().Err(err).Msg("close transport")
		}
	}
	if s.mic != nil {
		if err := s.mic.Close(); err != nil {
			log.Debug().Err(err).Msg("close microphone")
		}
	}
}

type notification func(Observer)

// NewController wires a controller. It starts disconnected.
func NewController(deps Deps, log zerolog.Logger) (*Controller, error) {
	if deps.Credentials == nil || deps.Negotiator == nil || deps.Transports == nil || deps.Microphone == nil {
		return nil, errors.New("voice: credentials, negotiator, transports and microphone are required")
	}

	c := &Controller{
		credentials:  deps.Credentials,
		negotiator:   deps.Negotiator,
		transports:   deps.Transports,
		microphone:   deps.Microphone,
		channelLabel: deps.ChannelLabel,
		conversation: deps.Conversation,
		observer:     deps.Observer,
		log:          log.With().Str("component", "voice").Logger(),
		status:       StatusDisconnected,
	}
	if c.channelLabel == "" {
		c.channelLabel = DefaultChannelLabel
	}
	if c.conversation == nil {
		c.conversation = NewConversation(nil)
	}
	if c.observer == nil {
		c.observer = nopObserver{}
	}
	return c, nil
}

// Status returns the current status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Error returns the user-visible error text from the last failed connect, or "".
func (c *Controller) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errText
}

// Conversation returns the conversation log fed by this controller.
func (c *Controller) Conversation() *Conversation {
	return c.conversation
}

// Toggle connects when disconnected and disconnects when connected.
// It is a no-op while connecting.
func (c *Controller) Toggle(ctx context.Context) error {
	switch c.Status() {
	case StatusDisconnected:
		return c.Connect(ctx)
	case StatusConnected:
		c.Disconnect()
	}
	return nil
}

// Connect establishes a session. It returns ErrBusy unless the controller is
// disconnected. On failure every partially acquired resource is released, the
// status returns to disconnected and Error reports what went wrong. If
// Disconnect is called while connecting, Connect returns context.Canceled.
func (c *Controller) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.status != StatusDisconnected {
		c.mu.Unlock()
		return ErrBusy
	}

	attemptCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	att := &attempt{cancel: cancel}
	c.pending = att

	var notes []notification
	if c.errText != "" {
		c.errText = ""
		notes = append(notes, func(o Observer) { o.ErrorChanged("") })
	}
	notes = append(notes, c.setStatusLocked(StatusConnecting)...)
	c.emitLocked(notes)

	c.log.Info().Msg("connecting")
	sess, err := c.establish(attemptCtx)

	c.mu.Lock()
	if c.pending != att {
		// Disconnect ran while we were connecting.
		c.mu.Unlock()
		if sess != nil {
			sess.release(c.log)
		}
		c.log.Info().Msg("connect abandoned")
		return context.Canceled
	}
	c.pending = nil

	if err != nil {
		c.errText = "Failed to connect: " + err.Error()
		text := c.errText
		notes := append(c.setStatusLocked(StatusDisconnected), func(o Observer) { o.ErrorChanged(text) })
		c.emitLocked(notes)
		c.log.Error().Err(err).Msg("connect failed")
		return err
	}

	c.active = sess
	sess.unsubscribe = sess.transport.OnStateChange(func(state TransportState) {
		c.handleTransportState(sess, state)
	})
	c.emitLocked(c.setStatusLocked(StatusConnected))
	c.log.Info().Msg("connected")
	return nil
}

// Disconnect tears down the active session, or abandons an in-flight connect.
// It is idempotent.
func (c *Controller) Disconnect() {
	c.mu.Lock()
	sess := c.active
	c.active = nil
	if c.pending != nil {
		c.pending.cancel()
		c.pending = nil
	}
	c.emitLocked(c.setStatusLocked(StatusDisconnected))

	if sess != nil {
		sess.release(c.log)
		c.log.Info().Msg("disconnected")
	}
}

// establish runs the connect sequence. On error it has already released
// whatever it acquired.
func (c *Controller) establish(ctx context.Context) (_ *session, err error) {
	credential, err := c.credentials.FetchCredential(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCredentialExchange, err)
	}
	if strings.TrimSpace(credential) == "" {
		return nil, fmt.Errorf("%w: empty credential", ErrCredentialExchange)
	}

	transport, err := c.transports.NewTransport(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	sess := &session{transport: transport}
	defer func() {
		if err != nil {
			sess.release(c.log)
		}
	}()

	mic, err := c.microphone.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v (check that a microphone is connected and that permission to use it is granted)",
			ErrMicrophoneUnavailable, err)
	}
	sess.mic = mic

	if err := transport.AttachAudio(mic); err != nil {
		return nil, fmt.Errorf("%w: attach audio: %w", ErrTransport, err)
	}

	channel, err := transport.OpenChannel(c.channelLabel, func(data []byte) {
		c.handleMessage(sess, data)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open data channel: %w", ErrTransport, err)
	}
	sess.channel = channel

	offer, err := transport.CreateOffer(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create offer: %w", ErrTransport, err)
	}

	answer, err := c.negotiator.Negotiate(ctx, credential, offer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNegotiation, err)
	}

	if err := transport.ApplyAnswer(answer); err != nil {
		return nil, fmt.Errorf("%w: apply answer: %w", ErrNegotiation, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sess, nil
}

func (c *Controller) handleTransportState(sess *session, state TransportState) {
	if !state.Terminal() {
		return
	}

	c.mu.Lock()
	if c.active != sess {
		c.mu.Unlock()
		return
	}
	c.active = nil
	c.emitLocked(c.setStatusLocked(StatusDisconnected))

	c.log.Warn().Str("state", string(state)).Msg("transport ended, session torn down")
	// Transports report state from their own goroutines; closing from inside
	// that callback can block on it.
	go sess.release(c.log)
}

func (c *Controller) handleMessage(sess *session, data []byte) {
	if sess.released.Load() {
		return
	}

	ev := DecodeEvent(data)
	if u, ok := ev.(Unrecognized); ok {
		if u.Err != nil {
			c.log.Warn().Err(u.Err).Int("bytes", len(data)).Msg("malformed data channel message")
		} else {
			c.log.Debug().Str("type", u.Type).Msg("ignoring data channel message")
		}
		return
	}

	appended, transcriptChanged := c.conversation.Apply(ev)
	transcript := c.conversation.Transcript()

	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	if transcriptChanged {
		c.observer.TranscriptChanged(transcript)
	}
	if appended != nil {
		c.observer.MessageAdded(*appended)
	}
}

// setStatusLocked changes the status and returns the notification for it.
// Callers hold c.mu.
func (c *Controller) setStatusLocked(to Status) []notification {
	from := c.status
	if from == to {
		return nil
	}
	if !CanTransition(from, to) {
		c.log.Error().Str("from", string(from)).Str("to", string(to)).Msg("illegal status transition")
	}
	c.status = to
	return []notification{func(o Observer) { o.StatusChanged(to) }}
}

// emitLocked releases c.mu and delivers notes in order.
func (c *Controller) emitLocked(notes []notification) {
	c.emitMu.Lock()
	c.mu.Unlock()
	defer c.emitMu.Unlock()
	for _, n := range notes {
		n(c.observer)
	}
}
