package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wildabeast/cordova-android/internal/i18n"
	"github.com/wildabeast/cordova-android/pkg/platform"
)

var cleanKeepWWW bool

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove build output and prepared web assets",
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

		if err := api.Clean(cmd.Context(), platform.CleanOptions{KeepWWW: cleanKeepWWW}); err != nil {
			return err
		}

		fmt.Println(i18n.T("CleanSuccess"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().BoolVar(&cleanKeepWWW, "keep-www", false, "Keep the prepared web assets")
}
