package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// showCmd represents the show command.
var showCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show details for one plugin",
	Long:  `Show the package, import name, description and install state of a single plugin.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !debug {
			log.Logger = log.Logger.Level(zerolog.WarnLevel)
		}

		registry, _ := newManagerKit()

		d, ok := registry.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown plugin %q", args[0])
		}

		installed := "no"
		if d.Installed() {
			installed = "yes"
		}

		cmd.Printf("Name:        %s\n", d.Name)
		cmd.Printf("Package:     %s\n", d.Package)
		cmd.Printf("Import name: %s\n", d.ProbeTarget)
		cmd.Printf("Installed:   %s\n", installed)
		cmd.Printf("Description: %s\n", d.Description)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
