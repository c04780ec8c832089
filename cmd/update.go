package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wildabeast/cordova-android/internal/i18n"
	"github.com/wildabeast/cordova-android/pkg/platform"
)

var (
	updateLink      bool
	updateFramework string
)

var updateCmd = &cobra.Command{
	Use:   "update [path]",
	Short: "Update an existing project's build files and scripts",
	Long: `Update an existing Android platform project in place: refresh its
build scripts, shared framework and tooling scripts, and re-apply the
manifest invariants. The project's identity (package ID, name) is kept.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := "."
		if len(args) == 1 {
			dest = args[0]
		}

		api, err := platform.Update(dest, platform.CreateOptions{
			Link:         updateLink,
			FrameworkDir: updateFramework,
		}, appConfig, logger)
		if err != nil {
			return err
		}

		fmt.Println(i18n.T("UpdateSuccess", map[string]interface{}{"Path": api.Root}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVar(&updateLink, "link", false, "Symlink the shared framework instead of copying it")
	updateCmd.Flags().StringVar(&updateFramework, "framework", "", "Path to an on-disk shared framework")
}
