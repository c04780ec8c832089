package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wildabeast/cordova-android/internal/i18n"
	"github.com/wildabeast/cordova-android/pkg/platform"
)

var requirementsCmd = &cobra.Command{
	Use:   "requirements [path]",
	Short: "Check the external Android toolchain",
	Long: `Check that the tools this project needs are installed: a JDK, the
Android SDK, adb and gradle. Each requirement is reported individually;
the command itself never fails on a missing tool.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := "."
		if len(args) == 1 {
			dest = args[0]
		}

		api, err := platform.NewApi(dest, appConfig, logger)
		if err != nil {
			return err
		}

		fmt.Println(i18n.T("RequirementsHeader"))
		for _, req := range api.Requirements(cmd.Context()) {
			if req.Installed {
				status := i18n.T("RequirementPassed")
				if req.Version != "" {
					status += " " + req.Version
				}
				fmt.Printf("  [ok]      %-16s %s\n", req.Name, status)
			} else {
				fmt.Printf("  [missing] %-16s %s: %s\n", req.Name, i18n.T("RequirementFailed"), req.Reason)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(requirementsCmd)
}
