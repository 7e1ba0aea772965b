// Package tui is the terminal front end of the voice chat client.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jojo-client/internal/domain/voice"
)

// Controller is the part of voice.Controller the UI drives.
type Controller interface {
	Status() voice.Status
	Toggle(ctx context.Context) error
}

// toggleDoneMsg is sent when a Toggle started from the UI returns.
type toggleDoneMsg struct{ err error }

// Model renders the microphone toggle, the status line and the conversation.
type Model struct {
	ctx        context.Context
	controller Controller

	status     voice.Status
	errText    string
	transcript string
	messages   []voice.Message

	spinner spinner.Model
	width   int
	height  int
}

// NewModel creates the UI model. ctx bounds every connect started from the UI.
func NewModel(ctx context.Context, controller Controller) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	return Model{
		ctx:        ctx,
		controller: controller,
		status:     controller.Status(),
		spinner:    sp,
		width:      80,
		height:     24,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "enter":
			if !m.status.ToggleEnabled() {
				return m, nil
			}
			return m, m.toggle()
		}
		return m, nil

	case StatusMsg:
		m.status = msg.Status
		return m, nil

	case ErrorMsg:
		m.errText = msg.Text
		return m, nil

	case TranscriptMsg:
		m.transcript = msg.Text
		return m, nil

	case MessageMsg:
		m.messages = append(m.messages, msg.Message)
		return m, nil

	case toggleDoneMsg:
		// Connect failures already arrive as ErrorMsg.
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// toggle runs off the event loop: the controller notifies the program while
// it works, and Send would block if called from inside Update.
func (m Model) toggle() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		err := controller.Toggle(ctx)
		if errors.Is(err, voice.ErrBusy) || errors.Is(err, context.Canceled) {
			err = nil
		}
		return toggleDoneMsg{err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Jojo voice chat"))
	b.WriteString("\n")

	button := buttonStyle(m.status).Render(buttonText(m.status))
	if m.status == voice.StatusConnecting {
		button = m.spinner.View() + " " + button
	}
	b.WriteString(button)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.status.Label()))
	b.WriteString("\n")

	if m.errText != "" {
		b.WriteString(errorStyle.Width(max(m.width, 20)).Render(m.errText))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, line := range m.visibleMessages() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.transcript != "" {
		b.WriteString(transcriptStyle.Render(m.transcript))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("space toggle • q quit"))
	return b.String()
}

// visibleMessages keeps the tail of the conversation that fits the window.
func (m Model) visibleMessages() []string {
	rows := m.height - 10
	if rows < 3 {
		rows = 3
	}
	msgs := m.messages
	if len(msgs) > rows {
		msgs = msgs[len(msgs)-rows:]
	}

	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		lines = append(lines, formatMessage(msg))
	}
	return lines
}

func formatMessage(msg voice.Message) string {
	who := userStyle.Render("You")
	if msg.Role == voice.RoleAssistant {
		who = assistantStyle.Render("Assistant")
	}
	return fmt.Sprintf("%s %s: %s", dimStyle.Render(msg.Timestamp.Format("15:04:05")), who, msg.Content)
}

// Status is the status the UI last rendered.
func (m Model) Status() voice.Status { return m.status }

// Messages returns the messages the UI has received.
func (m Model) Messages() []voice.Message { return m.messages }
