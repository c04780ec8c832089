package cmd

import (
	"fmt"
	"os"

	goerrors "errors"

	"github.com/spf13/cobra"

	"github.com/wildabeast/cordova-android/internal/config"
	"github.com/wildabeast/cordova-android/internal/errors"
	"github.com/wildabeast/cordova-android/internal/i18n"
	"github.com/wildabeast/cordova-android/internal/version"
	"github.com/wildabeast/cordova-android/pkg/utils"
)

var (
	cfgFile  string
	verbose  bool
	langFlag string

	appConfig *config.Config
	logger    utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cordova-android",
	Short: "Android platform tooling for hybrid web applications",
	Long: `cordova-android manages the native Android shell of a hybrid web
application: it scaffolds the project, keeps its build files current,
installs plugins, synchronizes web assets, and drives gradle and adb.`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := i18n.Init(langFlag); err != nil {
			return err
		}

		var err error
		appConfig, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		logCfg := utils.DefaultLoggerConfig()
		if verbose {
			logCfg.Level = utils.LogLevelDebug
		}
		logger = utils.NewLogger(logCfg)

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var perr *errors.PlatformError
		if goerrors.As(err, &perr) {
			fmt.Fprintln(os.Stderr, perr.FormatDetailed())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./cordova-android.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "Override the display language")
}
