package command

import (
	"fmt"

	"github.com/atomicstack/psim-config/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler performs the work behind a request and reports its outcome as a
// message for the model.
type Handler func() tea.Msg

// Request encapsulates a unit of work run off the event loop.
type Request struct {
	ID      string
	Handler Handler
}

// Failure is implemented by result messages that carry an error.
type Failure interface {
	Failed() error
}

// Bus coordinates asynchronous work such as probing dropped files and
// writing the payload.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID)
	return func() tea.Msg {
		if req.Handler == nil {
			return nil
		}
		msg := req.Handler()
		if f, ok := msg.(Failure); ok && f.Failed() != nil {
			events.Command.Error(req.ID, f.Failed())
		}
		events.Command.Result(req.ID, fmt.Sprintf("%T", msg))
		return msg
	}
}
