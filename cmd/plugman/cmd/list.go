package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var refresh bool

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available plugins",
	Long:  `List all configured AiiDA plugins with their install state.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Keep warnings visible but drop info noise from the listing.
		if !debug {
			log.Logger = log.Logger.Level(zerolog.WarnLevel)
		}

		registry, _ := newManagerKit()
		if refresh {
			registry.Refresh()
		}

		// Create tabwriter for aligned output
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "Name\tPackage\tInstalled\tDescription")
		fmt.Fprintln(w, "----\t-------\t---------\t-----------")

		for _, d := range registry.List() {
			installed := "no"
			if d.Installed() {
				installed = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				d.Name,
				d.Package,
				installed,
				d.Description)
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&refresh, "refresh", false, "Re-probe install state before listing")
}
