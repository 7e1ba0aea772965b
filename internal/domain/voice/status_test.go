package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	all := []Status{StatusDisconnected, StatusConnecting, StatusConnected}
	legal := map[[2]Status]bool{
		{StatusDisconnected, StatusConnecting}: true,
		{StatusConnecting, StatusConnected}:    true,
		{StatusConnecting, StatusDisconnected}: true,
		{StatusConnected, StatusDisconnected}:  true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equalf(t, legal[[2]Status{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Press space to start conversation", StatusDisconnected.Label())
	assert.Equal(t, "Initializing connection...", StatusConnecting.Label())
	assert.Equal(t, "Press space to end conversation", StatusConnected.Label())
}

func TestToggleEnabled(t *testing.T) {
	assert.True(t, StatusDisconnected.ToggleEnabled())
	assert.False(t, StatusConnecting.ToggleEnabled())
	assert.True(t, StatusConnected.ToggleEnabled())
}
