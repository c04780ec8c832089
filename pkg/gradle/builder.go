// Package gradle drives the external build tool and maps its output into
// artifact descriptors.
package gradle

import (
	"context"
	"fmt"

	"github.com/wildabeast/cordova-android/pkg/project"
	"github.com/wildabeast/cordova-android/pkg/utils"
)

// BuildType selects the artifact flavor.
type BuildType int

const (
	BuildTypeDebug BuildType = iota
	BuildTypeRelease
)

// String returns the string representation of the build type
func (t BuildType) String() string {
	if t == BuildTypeRelease {
		return "release"
	}
	return "debug"
}

// ParseBuildType maps a user-supplied build type name.
func ParseBuildType(s string) (BuildType, error) {
	switch s {
	case "", "debug":
		return BuildTypeDebug, nil
	case "release":
		return BuildTypeRelease, nil
	default:
		return BuildTypeDebug, fmt.Errorf("unknown build type %q (want debug or release)", s)
	}
}

// Strategy identifies a build-system implementation. The set is closed;
// there is no dynamic lookup.
type Strategy int

const (
	StrategyGradle Strategy = iota
)

// BuildOptions controls a single build invocation.
type BuildOptions struct {
	Type      BuildType
	ExtraArgs []string
}

// BuildArtifact describes one produced output.
type BuildArtifact struct {
	Path        string `json:"path"`
	Type        string `json:"type"`
	Method      string `json:"method"`
	Arch        string `json:"arch,omitempty"`
	PackageID   string `json:"package_id,omitempty"`
	VersionName string `json:"version_name,omitempty"`
	VersionCode int64  `json:"version_code,omitempty"`
}

// Builder is the closed contract every build strategy implements.
type Builder interface {
	// Build produces artifacts for the requested build type. Tool
	// diagnostics are carried inside the returned error on failure.
	Build(ctx context.Context, opts BuildOptions) ([]BuildArtifact, error)
	// Clean removes build output via the build tool.
	Clean(ctx context.Context) error
	// CleanArtifacts removes build output directly, without invoking the
	// build tool. Never touches prepared web assets.
	CleanArtifacts() error
}

// NewBuilder selects a build strategy by explicit enum.
func NewBuilder(strategy Strategy, loc *project.Locations, gradlePath string, extraArgs []string, log utils.Logger) (Builder, error) {
	switch strategy {
	case StrategyGradle:
		return NewGradleBuilder(loc, gradlePath, extraArgs, log), nil
	default:
		return nil, fmt.Errorf("unknown build strategy %d", strategy)
	}
}
