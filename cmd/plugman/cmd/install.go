package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alc-ux/plugman/internal/logging"
)

// installCmd represents the install command.
var installCmd = &cobra.Command{
	Use:   "install NAME",
	Short: "Install a plugin's backing package",
	Long: `Install the Python package backing the named plugin through the
configured package manager. The package manager's own output is printed
verbatim.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, lifecycle := newManagerKit()

		d, ok := registry.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown plugin %q", args[0])
		}

		logging.LogInstallAction("install", d.Name, d.Package)

		res, err := lifecycle.Install(d)
		if err != nil {
			return err
		}

		if report := strings.TrimSpace(res.Report()); report != "" {
			cmd.Println(report)
		}

		if res.ExitCode != 0 {
			return fmt.Errorf("install of %s failed with exit code %d", d.Package, res.ExitCode)
		}

		cmd.Printf("plugin %s installed\n", d.Name)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
