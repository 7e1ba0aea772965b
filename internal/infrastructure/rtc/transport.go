// Package rtc implements the voice transport on a pion peer connection.
package rtc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4"
	"github.com/pion/webrtc/v4/pkg/media"
	"github.com/rs/zerolog"

	"jojo-client/internal/domain/voice"
)

// Sink consumes the packets of one remote audio track.
type Sink interface {
	WriteRTP(pkt *rtp.Packet) error
	Close() error
}

// SinkFactory opens a Sink when a remote audio track arrives.
type SinkFactory func() (Sink, error)

// Factory creates peer connection transports.
type Factory struct {
	iceServers []string
	sinks      SinkFactory
	log        zerolog.Logger
}

// NewFactory creates a transport factory. sinks may be nil, in which case
// remote audio is read and discarded.
func NewFactory(iceServers []string, sinks SinkFactory, log zerolog.Logger) *Factory {
	return &Factory{
		iceServers: iceServers,
		sinks:      sinks,
		log:        log.With().Str("component", "rtc").Logger(),
	}
}

// NewTransport implements voice.TransportFactory.
func (f *Factory) NewTransport(ctx context.Context) (voice.Transport, error) {
	cfg := webrtc.Configuration{}
	var urls []string
	for _, u := range f.iceServers {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) > 0 {
		cfg.ICEServers = []webrtc.ICEServer{{URLs: urls}}
	}

	pc, err := webrtc.NewPeerConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("create peer connection: %w", err)
	}

	t := &Transport{
		pc:        pc,
		sinks:     f.sinks,
		log:       f.log,
		listeners: make(map[int]func(voice.TransportState)),
	}
	pc.OnConnectionStateChange(t.handleState)
	pc.OnTrack(t.handleTrack)
	return t, nil
}

// Transport is one pion peer connection.
type Transport struct {
	pc    *webrtc.PeerConnection
	sinks SinkFactory
	log   zerolog.Logger

	mu        sync.Mutex
	listeners map[int]func(voice.TransportState)
	nextID    int
	closed    bool
}

// AttachAudio adds a local Opus track and pumps samples from src into it.
func (t *Transport) AttachAudio(src voice.AudioSource) error {
	track, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus, ClockRate: 48000, Channels: 2},
		"audio", "jojo-client",
	)
	if err != nil {
		return fmt.Errorf("create audio track: %w", err)
	}

	sender, err := t.pc.AddTrack(track)
	if err != nil {
		return fmt.Errorf("add audio track: %w", err)
	}

	// RTCP has to be read for interceptors to run.
	go func() {
		buf := make([]byte, 1500)
		for {
			if _, _, err := sender.Read(buf); err != nil {
				return
			}
		}
	}()

	go t.pump(src, track)
	return nil
}

func (t *Transport) pump(src voice.AudioSource, track *webrtc.TrackLocalStaticSample) {
	for {
		sample, err := src.ReadSample()
		if err != nil {
			if !errors.Is(err, io.EOF) && !t.isClosed() {
				t.log.Warn().Err(err).Msg("microphone stream ended")
			}
			return
		}
		if err := track.WriteSample(media.Sample{Data: sample.Data, Duration: sample.Duration}); err != nil {
			if errors.Is(err, io.ErrClosedPipe) {
				return
			}
			t.log.Debug().Err(err).Msg("write audio sample")
		}
	}
}

// OpenChannel creates a data channel delivering every message to onMessage.
func (t *Transport) OpenChannel(label string, onMessage func([]byte)) (voice.Channel, error) {
	dc, err := t.pc.CreateDataChannel(label, nil)
	if err != nil {
		return nil, fmt.Errorf("create data channel %q: %w", label, err)
	}
	dc.OnOpen(func() {
		t.log.Debug().Str("label", label).Msg("data channel open")
	})
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		onMessage(msg.Data)
	})
	return dataChannel{dc: dc}, nil
}

// CreateOffer creates the local offer and waits for ICE gathering to finish.
func (t *Transport) CreateOffer(ctx context.Context) (string, error) {
	offer, err := t.pc.CreateOffer(nil)
	if err != nil {
		return "", fmt.Errorf("create offer: %w", err)
	}

	gathered := webrtc.GatheringCompletePromise(t.pc)
	if err := t.pc.SetLocalDescription(offer); err != nil {
		return "", fmt.Errorf("set local description: %w", err)
	}

	select {
	case <-gathered:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	local := t.pc.LocalDescription()
	if local == nil {
		return "", errors.New("local description missing after gathering")
	}
	return local.SDP, nil
}

// ApplyAnswer sets the remote answer.
func (t *Transport) ApplyAnswer(answerSDP string) error {
	return t.pc.SetRemoteDescription(webrtc.SessionDescription{
		Type: webrtc.SDPTypeAnswer,
		SDP:  answerSDP,
	})
}

// OnStateChange subscribes fn to connection state changes.
func (t *Transport) OnStateChange(fn func(voice.TransportState)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	return func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	}
}

// Close closes the peer connection. Listeners are dropped first.
func (t *Transport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.listeners = make(map[int]func(voice.TransportState))
	t.mu.Unlock()

	return t.pc.Close()
}

func (t *Transport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func (t *Transport) handleState(state webrtc.PeerConnectionState) {
	mapped := MapState(state)
	t.log.Debug().Str("state", string(mapped)).Msg("peer connection state")

	t.mu.Lock()
	fns := make([]func(voice.TransportState), 0, len(t.listeners))
	for _, fn := range t.listeners {
		fns = append(fns, fn)
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(mapped)
	}
}

func (t *Transport) handleTrack(track *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
	t.log.Debug().
		Str("kind", track.Kind().String()).
		Str("codec", track.Codec().MimeType).
		Msg("remote track")

	var sink Sink
	if t.sinks != nil && track.Kind() == webrtc.RTPCodecTypeAudio {
		s, err := t.sinks()
		if err != nil {
			t.log.Warn().Err(err).Msg("audio playback unavailable")
		} else {
			sink = s
		}
	}
	defer func() {
		if sink != nil {
			_ = sink.Close()
		}
	}()

	for {
		pkt, _, err := track.ReadRTP()
		if err != nil {
			return
		}
		if sink == nil {
			continue
		}
		if err := sink.WriteRTP(pkt); err != nil {
			t.log.Debug().Err(err).Msg("playback write failed, discarding remote audio")
			_ = sink.Close()
			sink = nil
		}
	}
}

// MapState converts a pion connection state.
func MapState(state webrtc.PeerConnectionState) voice.TransportState {
	switch state {
	case webrtc.PeerConnectionStateConnecting:
		return voice.TransportConnecting
	case webrtc.PeerConnectionStateConnected:
		return voice.TransportConnected
	case webrtc.PeerConnectionStateDisconnected:
		return voice.TransportDisconnected
	case webrtc.PeerConnectionStateFailed:
		return voice.TransportFailed
	case webrtc.PeerConnectionStateClosed:
		return voice.TransportClosed
	default:
		return voice.TransportNew
	}
}

type dataChannel struct {
	dc *webrtc.DataChannel
}

func (d dataChannel) Label() string { return d.dc.Label() }
func (d dataChannel) Close() error  { return d.dc.Close() }

// Ensure interface compliance.
var (
	_ voice.TransportFactory = (*Factory)(nil)
	_ voice.Transport        = (*Transport)(nil)
)
