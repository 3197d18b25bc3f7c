package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atomicstack/psim-config/internal/backend"
	"github.com/atomicstack/psim-config/internal/form"
	"github.com/atomicstack/psim-config/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Width         int
	Height        int
	ShowFooter    bool
	Verbose       bool
	Initial       form.SimulatorConfig
	Output        string
	Format        form.Format
	WatchInterval time.Duration
}

// ErrCancelled is returned when the user leaves without running.
var ErrCancelled = errors.New("configuration cancelled")

// Run bootstraps and executes the Bubble Tea program, then writes the
// payload the user confirmed.
func Run(cfg Config) error {
	watcher := backend.NewWatcher(cfg.WatchInterval)
	defer watcher.Stop()
	model := ui.NewModel(ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Initial:    cfg.Initial,
		Format:     cfg.Format,
	}, watcher)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return ErrCancelled
	}
	if err != nil {
		return err
	}
	result, ok := final.(*ui.Model)
	if !ok {
		return fmt.Errorf("unexpected model %T", final)
	}
	payload, ok := result.Payload()
	if !ok {
		return ErrCancelled
	}
	return writePayload(cfg.Output, payload)
}

func writePayload(output string, payload []byte) error {
	if output == "" || output == "-" {
		return copyPayload(os.Stdout, payload)
	}
	if err := os.WriteFile(output, payload, 0o644); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

func copyPayload(w io.Writer, payload []byte) error {
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}
