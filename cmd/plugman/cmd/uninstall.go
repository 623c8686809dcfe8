package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alc-ux/plugman/internal/logging"
)

// uninstallCmd represents the uninstall command.
var uninstallCmd = &cobra.Command{
	Use:   "uninstall NAME",
	Short: "Remove a plugin's backing package",
	Long:  `Uninstall the Python package backing the named plugin.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, lifecycle := newManagerKit()

		d, ok := registry.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown plugin %q", args[0])
		}

		logging.LogInstallAction("uninstall", d.Name, d.Package)

		res, err := lifecycle.Uninstall(d)
		if err != nil {
			return err
		}

		if res.ExitCode != 0 {
			if report := strings.TrimSpace(res.Report()); report != "" {
				cmd.Println(report)
			}

			return fmt.Errorf("uninstall of %s failed with exit code %d", d.Package, res.ExitCode)
		}

		cmd.Printf("plugin %s removed\n", d.Name)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}
