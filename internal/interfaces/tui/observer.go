package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"jojo-client/internal/domain/voice"
)

// StatusMsg reports a controller status change.
type StatusMsg struct{ Status voice.Status }

// ErrorMsg reports a new error line; empty text clears it.
type ErrorMsg struct{ Text string }

// TranscriptMsg reports the current in-progress transcript.
type TranscriptMsg struct{ Text string }

// MessageMsg reports a finalized conversation message.
type MessageMsg struct{ Message voice.Message }

// Observer forwards controller notifications into a running program.
// Notifications arriving before Attach are dropped.
type Observer struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// NewObserver returns an observer that is not yet attached.
func NewObserver() *Observer {
	return &Observer{}
}

// Attach routes notifications to send, usually (*tea.Program).Send.
func (o *Observer) Attach(send func(tea.Msg)) {
	o.mu.Lock()
	o.send = send
	o.mu.Unlock()
}

func (o *Observer) forward(msg tea.Msg) {
	o.mu.RLock()
	send := o.send
	o.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}

func (o *Observer) StatusChanged(status voice.Status) { o.forward(StatusMsg{Status: status}) }
func (o *Observer) ErrorChanged(text string)          { o.forward(ErrorMsg{Text: text}) }
func (o *Observer) TranscriptChanged(text string)     { o.forward(TranscriptMsg{Text: text}) }
func (o *Observer) MessageAdded(msg voice.Message)    { o.forward(MessageMsg{Message: msg}) }

var _ voice.Observer = (*Observer)(nil)
