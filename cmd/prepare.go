package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wildabeast/cordova-android/internal/i18n"
	"github.com/wildabeast/cordova-android/pkg/platform"
)

var prepareApp string

var prepareCmd = &cobra.Command{
	Use:   "prepare [path]",
	Short: "Copy the application's web assets into the project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := "."
		if len(args) == 1 {
			dest = args[0]
		}

		api, err := platform.NewApi(dest, appConfig, logger)
		if err != nil {
			return err
		}

		if err := api.Prepare(prepareApp); err != nil {
			return err
		}

		loc := api.GetPlatformInfo().Locations
		fmt.Println(i18n.T("PrepareSuccess", map[string]interface{}{"Path": loc.WWW}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(prepareCmd)

	prepareCmd.Flags().StringVar(&prepareApp, "app", ".", "Application source root containing the web asset directory")
}
