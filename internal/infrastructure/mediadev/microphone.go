package mediadev

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"jojo-client/internal/domain/voice"
)

// Microphone captures audio by running ffmpeg.
type Microphone struct {
	ffmpegPath string
	format     string
	device     string
	log        zerolog.Logger
}

// NewMicrophone creates a microphone using ffmpegPath. Empty format and device
// select the platform default input.
func NewMicrophone(ffmpegPath, format, device string, log zerolog.Logger) *Microphone {
	if strings.TrimSpace(ffmpegPath) == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Microphone{
		ffmpegPath: ffmpegPath,
		format:     format,
		device:     device,
		log:        log.With().Str("component", "microphone").Logger(),
	}
}

// Open starts capture and waits for the first Ogg page, so a missing device or
// denied permission surfaces here rather than as silence.
func (m *Microphone) Open(ctx context.Context) (voice.AudioSource, error) {
	args := CaptureArgs(m.format, m.device)
	cmd := exec.Command(m.ffmpegPath, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr := &tailBuffer{limit: 2048}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", m.ffmpegPath, err)
	}
	m.log.Debug().Int("pid", cmd.Process.Pid).Strs("args", args).Msg("ffmpeg capture started")

	proc := &captureProcess{cmd: cmd, stdout: stdout}

	type headerResult struct {
		src *OggSource
		err error
	}
	ready := make(chan headerResult, 1)
	go func() {
		src, err := NewOggSource(stdout)
		ready <- headerResult{src: src, err: err}
	}()

	select {
	case res := <-ready:
		if res.err != nil {
			_ = proc.Close()
			if msg := stderr.String(); msg != "" {
				return nil, fmt.Errorf("%w: %s", res.err, msg)
			}
			return nil, res.err
		}
		proc.OggSource = res.src
		return proc, nil
	case <-ctx.Done():
		_ = proc.Close()
		<-ready
		return nil, ctx.Err()
	}
}

// captureProcess is an OggSource bound to the ffmpeg process producing it.
type captureProcess struct {
	*OggSource
	cmd    *exec.Cmd
	stdout io.ReadCloser
	once   sync.Once
}

func (p *captureProcess) ReadSample() (voice.Sample, error) {
	sample, err := p.OggSource.ReadSample()
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return sample, err
}

func (p *captureProcess) Close() error {
	p.once.Do(func() {
		if p.cmd.Process != nil {
			_ = p.cmd.Process.Kill()
		}
		_ = p.stdout.Close()
		_ = p.cmd.Wait()
	})
	return nil
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	buf   []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.limit; over > 0 {
		t.buf = t.buf[over:]
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.TrimSpace(string(t.buf))
}
