package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/alc-ux/plugman/internal/tui"
)

// manageCmd represents the manage command.
var manageCmd = &cobra.Command{
	Use:   "manage",
	Short: "Manage plugins interactively",
	Long: `Open an interactive screen listing all configured plugins. Plugins can
be expanded for details, installed and removed. Edits to the plugin list
file are picked up while the screen is open.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		// The TUI owns the terminal; suppress logs underneath it.
		log.Logger = log.Logger.Level(zerolog.Disabled)

		registry, lifecycle := newManagerKit()

		p := tea.NewProgram(tui.NewModel(registry, lifecycle))

		// reload the screen when the plugin list file changes.
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			_ = registry.Watch(stop, func() {
				p.Send(tui.ReloadMsg{})
			})
		}()

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run plugin manager: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(manageCmd)
}
