package main

import (
	"fmt"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"jojo-client/internal/interfaces/tui"
)

func runChat(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	app, err := newClientApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	observer := tui.NewObserver()
	controller, err := app.newController(observer)
	if err != nil {
		return fmt.Errorf("create controller: %w", err)
	}

	p := tea.NewProgram(tui.NewModel(ctx, controller), tea.WithAltScreen(), tea.WithContext(ctx))
	observer.Attach(p.Send)

	app.log.Info().Str("session_endpoint", app.cfg.SessionEndpoint).Msg("voice chat started")
	_, runErr := p.Run()

	observer.Attach(nil)
	controller.Disconnect()
	app.log.Info().Msg("voice chat stopped")

	if runErr != nil && ctx.Err() == nil {
		return runErr
	}
	return nil
}
