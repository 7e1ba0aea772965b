package voice

import (
	"sync"
	"time"
)

// Role identifies who produced a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one finalized transcript entry.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is the append-only message log plus the current-transcript slot.
type Conversation struct {
	mu         sync.RWMutex
	messages   []Message
	transcript string
	now        func() time.Time
}

// NewConversation creates an empty conversation. A nil clock uses time.Now.
func NewConversation(now func() time.Time) *Conversation {
	if now == nil {
		now = time.Now
	}
	return &Conversation{now: now}
}

// Apply folds ev into the conversation. It returns the message appended, if any,
// and whether the current transcript changed.
func (c *Conversation) Apply(ev Event) (appended *Message, transcriptChanged bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e := ev.(type) {
	case PartialTranscript:
		if e.Delta {
			c.transcript += e.Text
		} else {
			c.transcript = e.Text
		}
		return nil, true
	case FinalTranscript:
		msg := c.appendLocked(RoleUser, e.Text)
		changed := c.transcript != ""
		c.transcript = ""
		return &msg, changed
	case AssistantResponse:
		msg := c.appendLocked(RoleAssistant, e.Text)
		return &msg, false
	default:
		return nil, false
	}
}

func (c *Conversation) appendLocked(role Role, content string) Message {
	msg := Message{Role: role, Content: content, Timestamp: c.now()}
	c.messages = append(c.messages, msg)
	return msg
}

// Messages returns a copy of the message log.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Transcript returns the current in-progress transcript.
func (c *Conversation) Transcript() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.transcript
}
