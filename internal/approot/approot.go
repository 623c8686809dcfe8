// Package approot resolves the root directory of the AiiDAlab application.
package approot

import (
	"os"
	"path/filepath"
)

// appsEnv points at the directory containing AiiDAlab app checkouts.
const appsEnv = "AIIDALAB_APPS"

// appDirName is the checkout directory of this application under the apps root.
const appDirName = "alc-ux"

// Dir returns the application's installation root. It honours AIIDALAB_APPS
// and falls back to $HOME/apps when unset.
func Dir() string {
	apps := os.Getenv(appsEnv)
	if apps == "" {
		apps = filepath.Join(os.Getenv("HOME"), "apps")
	}

	return filepath.Join(apps, appDirName)
}

// PluginListPath returns the default location of the plugin list file.
func PluginListPath() string {
	return filepath.Join(Dir(), "resources", "plugin_list.yml")
}
