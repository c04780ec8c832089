package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wildabeast/cordova-android/internal/i18n"
	"github.com/wildabeast/cordova-android/pkg/gradle"
	"github.com/wildabeast/cordova-android/pkg/platform"
)

var (
	buildRelease bool
	buildArgs    []string
)

var buildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Build the project with gradle",
	Long: `Build the project's APKs. The build type defaults to debug; pass
--release for a release build. Extra gradle arguments can be appended
with --gradle-arg.`,
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

		opts, err := buildOptions(buildRelease, buildArgs)
		if err != nil {
			return err
		}

		artifacts, err := api.Build(cmd.Context(), opts)
		if err != nil {
			return err
		}

		fmt.Println(i18n.T("BuildSuccess", map[string]interface{}{"Count": len(artifacts)}))
		for _, a := range artifacts {
			line := fmt.Sprintf("  %s (%s", a.Path, a.Type)
			if a.Arch != "" {
				line += ", " + a.Arch
			}
			line += ")"
			fmt.Println(line)
		}
		return nil
	},
}

// buildOptions resolves the requested build type against the configured
// default.
func buildOptions(release bool, extraArgs []string) (gradle.BuildOptions, error) {
	name := appConfig.Build.DefaultType
	if release {
		name = "release"
	}

	t, err := gradle.ParseBuildType(name)
	if err != nil {
		return gradle.BuildOptions{}, err
	}

	return gradle.BuildOptions{Type: t, ExtraArgs: extraArgs}, nil
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().BoolVar(&buildRelease, "release", false, "Build the release variant")
	buildCmd.Flags().StringArrayVar(&buildArgs, "gradle-arg", nil, "Extra gradle argument (repeatable)")
}
