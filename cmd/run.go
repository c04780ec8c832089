package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wildabeast/cordova-android/internal/i18n"
	"github.com/wildabeast/cordova-android/pkg/platform"
)

var (
	runRelease  bool
	runArgs     []string
	runDevice   string
	runEmulator bool
)

var runCmd = &cobra.Command{
	Use:   "run [path]",
	Short: "Build, install and launch the app on a device",
	Long: `Build the project, install the resulting APK on a target and start
its launch activity. Without --device or --emulator, a connected physical
device is preferred over a running emulator.`,
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

		opts, err := buildOptions(runRelease, runArgs)
		if err != nil {
			return err
		}

		deviceID := runDevice
		if deviceID == "" {
			deviceID = appConfig.ADB.DefaultDevice
		}

		result, err := api.Run(cmd.Context(), platform.RunOptions{
			Build:    opts,
			DeviceID: deviceID,
			Emulator: runEmulator,
		})
		if err != nil {
			return err
		}

		fmt.Println(i18n.T("RunLaunched", map[string]interface{}{
			"Package": result.PackageID,
			"Device":  result.DeviceID,
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runRelease, "release", false, "Build and run the release variant")
	runCmd.Flags().StringArrayVar(&runArgs, "gradle-arg", nil, "Extra gradle argument (repeatable)")
	runCmd.Flags().StringVar(&runDevice, "device", "", "Target device serial")
	runCmd.Flags().BoolVar(&runEmulator, "emulator", false, "Prefer a running emulator")
}
