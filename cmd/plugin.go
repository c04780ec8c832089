package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wildabeast/cordova-android/internal/errors"
	"github.com/wildabeast/cordova-android/internal/i18n"
	"github.com/wildabeast/cordova-android/pkg/platform"
	"github.com/wildabeast/cordova-android/pkg/pluginman"
)

var (
	pluginProject   string
	pluginVariables []string
	pluginLink      bool
)

var pluginCmd = &cobra.Command{
	Use:   "plugin",
	Short: "Install and remove plugins",
}

var pluginAddCmd = &cobra.Command{
	Use:   "add <plugin-dir>",
	Short: "Install a plugin from a local directory",
	Long: `Install a plugin into the project from a directory containing a
plugin.xml. Variables referenced by the plugin's files are substituted at
install time; PACKAGE_NAME is always available.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := platform.NewApi(pluginProject, appConfig, logger)
		if err != nil {
			return err
		}

		vars, err := parseVariables(pluginVariables)
		if err != nil {
			return err
		}

		if _, err := api.AddPlugin(pluginman.InstallRequest{
			Dir:       args[0],
			Variables: vars,
			Link:      pluginLink,
		}); err != nil {
			return err
		}

		plugin, err := pluginman.LoadPlugin(args[0])
		if err == nil {
			fmt.Println(i18n.T("PluginInstalled", map[string]interface{}{"ID": plugin.ID}))
		}
		return nil
	},
}

var pluginRemoveCmd = &cobra.Command{
	Use:   "remove <plugin-id>",
	Short: "Remove an installed plugin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := platform.NewApi(pluginProject, appConfig, logger)
		if err != nil {
			return err
		}

		if _, err := api.RemovePlugin(args[0]); err != nil {
			return err
		}

		fmt.Println(i18n.T("PluginRemoved", map[string]interface{}{"ID": args[0]}))
		return nil
	},
}

// parseVariables turns repeated NAME=value flags into a map.
func parseVariables(raw []string) (map[string]string, error) {
	vars := make(map[string]string, len(raw))
	for _, entry := range raw {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			return nil, errors.NewValidationError("BAD_VARIABLE",
				fmt.Sprintf("variable %q is not in NAME=value form", entry))
		}
		vars[name] = value
	}
	return vars, nil
}

func init() {
	rootCmd.AddCommand(pluginCmd)
	pluginCmd.AddCommand(pluginAddCmd)
	pluginCmd.AddCommand(pluginRemoveCmd)

	pluginCmd.PersistentFlags().StringVar(&pluginProject, "project", ".", "Platform project directory")
	pluginAddCmd.Flags().StringArrayVar(&pluginVariables, "variable", nil, "Plugin variable as NAME=value (repeatable)")
	pluginAddCmd.Flags().BoolVar(&pluginLink, "link", false, "Symlink plugin files instead of copying them")
}
