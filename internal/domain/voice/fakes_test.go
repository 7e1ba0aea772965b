package voice

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
)

type fakeCredentials struct {
	value string
	err   error
	block bool // wait for ctx cancellation
	calls atomic.Int32
}

func (f *fakeCredentials) FetchCredential(ctx context.Context) (string, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.value, f.err
}

type fakeNegotiator struct {
	answer string
	err    error

	mu         sync.Mutex
	credential string
	offer      string
}

func (f *fakeNegotiator) Negotiate(_ context.Context, credential, offerSDP string) (string, error) {
	f.mu.Lock()
	f.credential = credential
	f.offer = offerSDP
	f.mu.Unlock()
	return f.answer, f.err
}

type fakeSource struct {
	closed atomic.Bool
}

func (s *fakeSource) ReadSample() (Sample, error) { return Sample{}, io.EOF }
func (s *fakeSource) Close() error {
	s.closed.Store(true)
	return nil
}

type fakeMicrophone struct {
	err error

	mu      sync.Mutex
	sources []*fakeSource
}

func (m *fakeMicrophone) Open(context.Context) (AudioSource, error) {
	if m.err != nil {
		return nil, m.err
	}
	src := &fakeSource{}
	m.mu.Lock()
	m.sources = append(m.sources, src)
	m.mu.Unlock()
	return src, nil
}

func (m *fakeMicrophone) last() *fakeSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sources) == 0 {
		return nil
	}
	return m.sources[len(m.sources)-1]
}

type fakeChannel struct {
	label  string
	closed atomic.Bool
}

func (c *fakeChannel) Label() string { return c.label }
func (c *fakeChannel) Close() error {
	c.closed.Store(true)
	return nil
}

type fakeTransport struct {
	offerErr  error
	answerErr error

	mu        sync.Mutex
	attached  AudioSource
	channel   *fakeChannel
	onMessage func([]byte)
	answer    string
	listeners map[int]func(TransportState)
	nextID    int
	closed    atomic.Bool
}

func (t *fakeTransport) AttachAudio(src AudioSource) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attached = src
	return nil
}

func (t *fakeTransport) OpenChannel(label string, onMessage func([]byte)) (Channel, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.channel = &fakeChannel{label: label}
	t.onMessage = onMessage
	return t.channel, nil
}

func (t *fakeTransport) CreateOffer(context.Context) (string, error) {
	if t.offerErr != nil {
		return "", t.offerErr
	}
	return "v=0\r\no=- offer\r\n", nil
}

func (t *fakeTransport) ApplyAnswer(sdp string) error {
	if t.answerErr != nil {
		return t.answerErr
	}
	t.mu.Lock()
	t.answer = sdp
	t.mu.Unlock()
	return nil
}

func (t *fakeTransport) OnStateChange(fn func(TransportState)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.listeners == nil {
		t.listeners = make(map[int]func(TransportState))
	}
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	return func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	}
}

func (t *fakeTransport) Close() error {
	t.closed.Store(true)
	return nil
}

func (t *fakeTransport) fire(state TransportState) {
	t.mu.Lock()
	fns := make([]func(TransportState), 0, len(t.listeners))
	for _, fn := range t.listeners {
		fns = append(fns, fn)
	}
	t.mu.Unlock()
	for _, fn := range fns {
		fn(state)
	}
}

func (t *fakeTransport) deliver(data string) {
	t.mu.Lock()
	fn := t.onMessage
	t.mu.Unlock()
	if fn != nil {
		fn([]byte(data))
	}
}

func (t *fakeTransport) listenerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}

type fakeFactory struct {
	err       error
	offerErr  error
	answerErr error

	mu         sync.Mutex
	transports []*fakeTransport
}

func (f *fakeFactory) NewTransport(context.Context) (Transport, error) {
	if f.err != nil {
		return nil, f.err
	}
	t := &fakeTransport{offerErr: f.offerErr, answerErr: f.answerErr}
	f.mu.Lock()
	f.transports = append(f.transports, t)
	f.mu.Unlock()
	return t, nil
}

func (f *fakeFactory) last() *fakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.transports) == 0 {
		return nil
	}
	return f.transports[len(f.transports)-1]
}

func (f *fakeFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.transports)
}

type recordingObserver struct {
	mu          sync.Mutex
	statuses    []Status
	errors      []string
	transcripts []string
	messages    []Message
}

func (o *recordingObserver) StatusChanged(s Status) {
	o.mu.Lock()
	o.statuses = append(o.statuses, s)
	o.mu.Unlock()
}

func (o *recordingObserver) ErrorChanged(text string) {
	o.mu.Lock()
	o.errors = append(o.errors, text)
	o.mu.Unlock()
}

func (o *recordingObserver) TranscriptChanged(text string) {
	o.mu.Lock()
	o.transcripts = append(o.transcripts, text)
	o.mu.Unlock()
}

func (o *recordingObserver) MessageAdded(msg Message) {
	o.mu.Lock()
	o.messages = append(o.messages, msg)
	o.mu.Unlock()
}

func (o *recordingObserver) statusHistory() []Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Status(nil), o.statuses...)
}

var errUpstream = errors.New("upstream said no")
