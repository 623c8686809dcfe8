// Package cmd provides the CLI commands for the plugman application.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alc-ux/plugman/internal/approot"
	"github.com/alc-ux/plugman/internal/config"
	"github.com/alc-ux/plugman/internal/logging"
	"github.com/alc-ux/plugman/internal/plugins"
	"github.com/alc-ux/plugman/internal/probe"
	"github.com/alc-ux/plugman/internal/runner"
)

var (
	debug      bool
	human      bool
	pluginList string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "plugman",
	Short: "Manage ALC developed AiiDA plugins",
	Long: `Plugin manager for the ALC AiiDAlab application. Lists the available
AiiDA workflow plugins, shows whether their backing Python packages are
installed, and installs or removes them through the configured package
manager.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize configuration: %w", err)
		}

		cfg := config.Get()
		logging.InitLogger(debug || cfg.Log.Level == "debug", human || cfg.Log.Format == "human")

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&human, "human", false, "Enable human-readable logs")
	rootCmd.PersistentFlags().
		StringVar(&pluginList, "plugin-list", "", "Path to the plugin list file (default: derived from the app root)")
}

// pluginListPath resolves the plugin list location from the flag, the
// configuration, or the application root, in that order.
func pluginListPath() string {
	if pluginList != "" {
		return pluginList
	}

	if p := config.Get().Plugins.ListPath; p != "" {
		return p
	}

	return approot.PluginListPath()
}

// newManagerKit wires the registry and lifecycle manager from configuration
// and loads the plugin list.
func newManagerKit() (*plugins.Registry, *plugins.Lifecycle) {
	cfg := config.Get()
	run := runner.New()

	registry := plugins.NewRegistry(probe.NewInterpreterProber(cfg.Probe.Interpreter, run))
	registry.LoadAll(pluginListPath())

	lifecycle := plugins.NewLifecycle(run, cfg.PackageManager.Binary, cfg.PackageManager.UserFlag)

	return registry, lifecycle
}
