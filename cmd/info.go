package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wildabeast/cordova-android/pkg/platform"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info [path]",
	Short: "Show the computed layout of a project",
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
		info := api.GetPlatformInfo()

		if infoJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}

		fmt.Printf("Platform:  %s %s\n", info.Name, info.Version)
		fmt.Printf("Root:      %s\n", info.Root)
		fmt.Printf("Layout:    %s\n", info.Locations.Layout)
		fmt.Printf("Manifest:  %s\n", info.Locations.Manifest)
		fmt.Printf("Java:      %s\n", info.Locations.JavaSrc)
		fmt.Printf("Resources: %s\n", info.Locations.Res)
		fmt.Printf("Assets:    %s\n", info.Locations.WWW)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Emit machine-readable JSON")
}
