package voice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	t0 := time.Date(2024, 12, 17, 9, 30, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Second)
	}
}

func TestConversation_PartialThenFinal(t *testing.T) {
	c := NewConversation(fixedClock())

	_, changed := c.Apply(PartialTranscript{Text: "hel"})
	assert.True(t, changed)
	assert.Equal(t, "hel", c.Transcript())

	c.Apply(PartialTranscript{Text: "hello"})
	assert.Equal(t, "hello", c.Transcript())

	msg, changed := c.Apply(FinalTranscript{Text: "hello"})
	require.NotNil(t, msg)
	assert.True(t, changed)
	assert.Equal(t, RoleUser, msg.Role)
	assert.Equal(t, "hello", msg.Content)
	assert.Empty(t, c.Transcript())

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, *msg, msgs[0])
}

func TestConversation_DeltasAppend(t *testing.T) {
	c := NewConversation(nil)

	c.Apply(PartialTranscript{Text: "hel", Delta: true})
	c.Apply(PartialTranscript{Text: "lo", Delta: true})
	assert.Equal(t, "hello", c.Transcript())

	c.Apply(PartialTranscript{Text: "reset"})
	assert.Equal(t, "reset", c.Transcript())
}

func TestConversation_AssistantKeepsTranscript(t *testing.T) {
	c := NewConversation(fixedClock())
	c.Apply(PartialTranscript{Text: "still talking"})

	msg, changed := c.Apply(AssistantResponse{Text: "hi"})
	require.NotNil(t, msg)
	assert.False(t, changed)
	assert.Equal(t, RoleAssistant, msg.Role)
	assert.Equal(t, "still talking", c.Transcript())
}

func TestConversation_OrderAndTimestamps(t *testing.T) {
	c := NewConversation(fixedClock())
	c.Apply(FinalTranscript{Text: "one"})
	c.Apply(AssistantResponse{Text: "two"})
	c.Apply(FinalTranscript{Text: "three"})

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, []string{"one", "two", "three"}, []string{msgs[0].Content, msgs[1].Content, msgs[2].Content})
	assert.True(t, msgs[0].Timestamp.Before(msgs[1].Timestamp))
	assert.True(t, msgs[1].Timestamp.Before(msgs[2].Timestamp))
}

func TestConversation_MessagesIsACopy(t *testing.T) {
	c := NewConversation(nil)
	c.Apply(FinalTranscript{Text: "original"})

	msgs := c.Messages()
	msgs[0].Content = "mutated"
	assert.Equal(t, "original", c.Messages()[0].Content)
}

func TestConversation_UnrecognizedIsNoop(t *testing.T) {
	c := NewConversation(nil)
	msg, changed := c.Apply(Unrecognized{Type: "session.created"})
	assert.Nil(t, msg)
	assert.False(t, changed)
	assert.Empty(t, c.Messages())
}
