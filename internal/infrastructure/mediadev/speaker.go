package mediadev

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4/pkg/media/oggwriter"
	"github.com/rs/zerolog"
)

// Speaker plays remote audio by piping Ogg/Opus into ffplay.
type Speaker struct {
	ffplayPath string
	log        zerolog.Logger
}

// NewSpeaker creates a speaker using ffplayPath.
func NewSpeaker(ffplayPath string, log zerolog.Logger) *Speaker {
	if strings.TrimSpace(ffplayPath) == "" {
		ffplayPath = "ffplay"
	}
	return &Speaker{
		ffplayPath: ffplayPath,
		log:        log.With().Str("component", "speaker").Logger(),
	}
}

// NewSink starts one ffplay process for a remote track.
func (s *Speaker) NewSink() (*Sink, error) {
	cmd := exec.Command(s.ffplayPath, PlaybackArgs()...)
	if runtime.GOOS == "darwin" && os.Getenv("SDL_AUDIODRIVER") == "" {
		// SDL may otherwise pick a silent dummy backend.
		cmd.Env = append(os.Environ(), "SDL_AUDIODRIVER=coreaudio")
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		return nil, fmt.Errorf("start %s: %w", s.ffplayPath, err)
	}

	sink, err := newSink(stdin)
	if err != nil {
		_ = stdin.Close()
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}
	sink.cmd = cmd
	s.log.Debug().Int("pid", cmd.Process.Pid).Msg("ffplay started")
	return sink, nil
}

// Sink writes RTP packets of one Opus track as an Ogg stream.
type Sink struct {
	writer *oggwriter.OggWriter
	out    io.WriteCloser
	cmd    *exec.Cmd
	once   sync.Once
}

func newSink(out io.WriteCloser) (*Sink, error) {
	writer, err := oggwriter.NewWith(out, SampleRate, 2)
	if err != nil {
		return nil, fmt.Errorf("create ogg writer: %w", err)
	}
	return &Sink{writer: writer, out: out}, nil
}

// WriteRTP appends one packet to the stream.
func (s *Sink) WriteRTP(pkt *rtp.Packet) error {
	return s.writer.WriteRTP(pkt)
}

// Close ends the stream and stops the player.
func (s *Sink) Close() error {
	s.once.Do(func() {
		_ = s.writer.Close()
		_ = s.out.Close()
		if s.cmd != nil && s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
			_ = s.cmd.Wait()
		}
	})
	return nil
}
