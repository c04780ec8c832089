package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config enumerates every recognized tool option with its documented
// default. There is no pass-through option bag; unknown keys are ignored.
type Config struct {
	Project ProjectConfig `mapstructure:"project"`
	Build   BuildConfig   `mapstructure:"build"`
	ADB     ADBConfig     `mapstructure:"adb"`
	Prepare PrepareConfig `mapstructure:"prepare"`
}

// ProjectConfig holds scaffolding defaults.
type ProjectConfig struct {
	// ActivityName is the launch activity class used when the caller does
	// not supply one.
	ActivityName string `mapstructure:"activity_name"`
	// TargetAPI is the android platform level written to project.properties.
	TargetAPI int `mapstructure:"target_api"`
	// Link controls whether the shared framework is symlinked instead of
	// copied into new projects.
	Link bool `mapstructure:"link"`
}

// BuildConfig holds build tool options.
type BuildConfig struct {
	// GradlePath overrides the gradle wrapper lookup. Empty means use the
	// project's gradlew script.
	GradlePath string `mapstructure:"gradle_path"`
	// ExtraArgs are appended to every gradle invocation.
	ExtraArgs []string `mapstructure:"extra_args"`
	// DefaultType is the build type used when none is requested.
	DefaultType string `mapstructure:"default_type"`
}

// ADBConfig holds device tool options.
type ADBConfig struct {
	Path          string `mapstructure:"path"`
	DefaultDevice string `mapstructure:"default_device"`
}

// PrepareConfig holds web asset pipeline options.
type PrepareConfig struct {
	// WWWDir is the web asset directory name inside the app source root.
	WWWDir string `mapstructure:"www_dir"`
	// IconSource is the path of the source launcher icon, relative to the
	// app source root. Empty disables icon generation.
	IconSource string `mapstructure:"icon_source"`
}

var defaultConfig = Config{
	Project: ProjectConfig{
		ActivityName: "MainActivity",
		TargetAPI:    34,
		Link:         false,
	},
	Build: BuildConfig{
		GradlePath:  "",
		ExtraArgs:   []string{},
		DefaultType: "debug",
	},
	ADB: ADBConfig{
		Path: "adb",
	},
	Prepare: PrepareConfig{
		WWWDir:     "www",
		IconSource: "",
	},
}

// Default returns a copy of the built-in defaults.
func Default() *Config {
	cfg := defaultConfig
	return &cfg
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	viper.SetConfigType("yaml")

	// Set defaults
	viper.SetDefault("project.activity_name", defaultConfig.Project.ActivityName)
	viper.SetDefault("project.target_api", defaultConfig.Project.TargetAPI)
	viper.SetDefault("project.link", defaultConfig.Project.Link)
	viper.SetDefault("build.gradle_path", defaultConfig.Build.GradlePath)
	viper.SetDefault("build.extra_args", defaultConfig.Build.ExtraArgs)
	viper.SetDefault("build.default_type", defaultConfig.Build.DefaultType)
	viper.SetDefault("adb.path", defaultConfig.ADB.Path)
	viper.SetDefault("adb.default_device", defaultConfig.ADB.DefaultDevice)
	viper.SetDefault("prepare.www_dir", defaultConfig.Prepare.WWWDir)
	viper.SetDefault("prepare.icon_source", defaultConfig.Prepare.IconSource)

	// Try to load config file
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		// Look for config in the current directory
		viper.SetConfigName("cordova-android")
		viper.AddConfigPath(".")

		// Also check in user's home directory
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cordova-android"))
		}
	}

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is not an error, we'll use defaults
	}

	// Bind environment variables
	viper.SetEnvPrefix("CORDOVA_ANDROID")
	viper.AutomaticEnv()

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// SaveTemplate saves a configuration template
func SaveTemplate(path string) error {
	templateContent := `# cordova-android configuration file

project:
  # Launch activity class name used when create is not given one
  activity_name: "MainActivity"

  # Android platform API level written to project.properties
  target_api: 34

  # Symlink the shared framework into new projects instead of copying it
  link: false

build:
  # Override the gradle executable (empty = use the project gradlew)
  gradle_path: ""

  # Extra arguments appended to every gradle invocation
  extra_args: []

  # Build type used when none is requested: debug or release
  default_type: "debug"

adb:
  # adb executable
  path: "adb"

  # Preferred device serial (empty = auto-select)
  default_device: ""

prepare:
  # Web asset directory inside the app source root
  www_dir: "www"

  # Source launcher icon, relative to the app source root (empty = skip)
  icon_source: ""
`

	return os.WriteFile(path, []byte(templateContent), 0644)
}
