package voice

// Status is the connection state of the controller.
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
)

// allowedTransitions lists every status change the controller may perform.
var allowedTransitions = map[Status][]Status{
	StatusDisconnected: {StatusConnecting},
	StatusConnecting:   {StatusConnected, StatusDisconnected},
	StatusConnected:    {StatusDisconnected},
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Label is the short status line shown under the microphone toggle.
func (s Status) Label() string {
	switch s {
	case StatusConnecting:
		return "Initializing connection..."
	case StatusConnected:
		return "Press space to end conversation"
	default:
		return "Press space to start conversation"
	}
}

// ToggleEnabled reports whether the microphone toggle accepts input.
func (s Status) ToggleEnabled() bool {
	return s != StatusConnecting
}
