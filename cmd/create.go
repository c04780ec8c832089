package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/wildabeast/cordova-android/internal/errors"
	"github.com/wildabeast/cordova-android/internal/i18n"
	"github.com/wildabeast/cordova-android/pkg/platform"
	"github.com/wildabeast/cordova-android/pkg/project"
	"github.com/wildabeast/cordova-android/pkg/utils"
)

var (
	createActivity  string
	createTargetAPI int
	createLink      bool
	createFramework string
)

var createCmd = &cobra.Command{
	Use:   "create <path> <package-id> <name>",
	Short: "Create a new Android platform project",
	Long: `Create a new Android platform project at the given path.

The package ID must be a valid reverse-domain Java package name, and the
project name must be a legal basis for the generated activity class.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, packageID, name := args[0], args[1], args[2]

		if utils.Exists(dest) {
			return apperrors.NewValidationError("PATH_EXISTS",
				i18n.T("CreateExists", map[string]interface{}{"Path": dest}))
		}

		pcfg := &project.Config{
			PackageName:  packageID,
			Name:         name,
			ActivityName: createActivity,
			TargetAPI:    createTargetAPI,
		}

		api, err := platform.Create(dest, pcfg, platform.CreateOptions{
			Link:         createLink,
			FrameworkDir: createFramework,
		}, appConfig, logger)
		if err != nil {
			return err
		}

		fmt.Println(i18n.T("CreateSuccess", map[string]interface{}{"Path": api.Root}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVar(&createActivity, "activity-name", "", "Launch activity class name (default: MainActivity)")
	createCmd.Flags().IntVar(&createTargetAPI, "target-api", 0, "Android platform API level")
	createCmd.Flags().BoolVar(&createLink, "link", false, "Symlink the shared framework instead of copying it")
	createCmd.Flags().StringVar(&createFramework, "framework", "", "Path to an on-disk shared framework")
}
