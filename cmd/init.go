package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wildabeast/cordova-android/internal/config"
	"github.com/wildabeast/cordova-android/internal/errors"
	"github.com/wildabeast/cordova-android/pkg/utils"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented configuration template",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = "cordova-android.yaml"
		}

		if utils.Exists(path) && !initForce {
			return errors.NewFileSystemError("CONFIG_EXISTS",
				fmt.Sprintf("config file already exists: %s", path)).
				WithSuggestion("Pass --force to overwrite it")
		}

		if err := config.SaveTemplate(path); err != nil {
			return err
		}

		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}
