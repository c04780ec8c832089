// Package platform exposes the fixed lifecycle contract an external
// orchestrator drives: create, update, prepare, addPlugin, removePlugin,
// build, run, clean and requirements.
package platform

import (
	"context"
	"fmt"

	"github.com/wildabeast/cordova-android/internal/config"
	"github.com/wildabeast/cordova-android/internal/errors"
	"github.com/wildabeast/cordova-android/internal/version"
	"github.com/wildabeast/cordova-android/pkg/assets"
	"github.com/wildabeast/cordova-android/pkg/device"
	"github.com/wildabeast/cordova-android/pkg/gradle"
	"github.com/wildabeast/cordova-android/pkg/manifest"
	"github.com/wildabeast/cordova-android/pkg/pluginman"
	"github.com/wildabeast/cordova-android/pkg/project"
	"github.com/wildabeast/cordova-android/pkg/sdk"
	"github.com/wildabeast/cordova-android/pkg/utils"
)

// PlatformName is the platform this layer implements.
const PlatformName = "android"

// Api is the lifecycle facade for one platform project directory. No two
// mutating operations on the same directory may run concurrently within a
// process; cross-process coordination is not attempted.
type Api struct {
	Root string

	loc     *project.Locations
	cfg     *config.Config
	log     utils.Logger
	builder gradle.Builder

	// projectCfg is the config the project was created or updated with,
	// when known in this process.
	projectCfg *project.Config
}

// NewApi binds a facade to an existing project directory, probing its
// layout once. The logger defaults to a console logger when nil.
func NewApi(root string, cfg *config.Config, log utils.Logger) (*Api, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = utils.NewLogger(utils.DefaultLoggerConfig())
	}

	loc := project.NewLocations(root)

	builder, err := gradle.NewBuilder(gradle.StrategyGradle, loc,
		cfg.Build.GradlePath, cfg.Build.ExtraArgs, log)
	if err != nil {
		return nil, err
	}

	return &Api{
		Root:    loc.Root,
		loc:     loc,
		cfg:     cfg,
		log:     log,
		builder: builder,
	}, nil
}

// Info is the descriptor returned by GetPlatformInfo.
type Info struct {
	Name      string             `json:"name"`
	Root      string             `json:"root"`
	Version   string             `json:"version"`
	Locations *project.Locations `json:"locations"`
	Config    *project.Config    `json:"config,omitempty"`
}

// GetPlatformInfo returns the computed locations and metadata for this
// project. Pure read; the only I/O is the layout probe at construction.
func (a *Api) GetPlatformInfo() Info {
	return Info{
		Name:      PlatformName,
		Root:      a.Root,
		Version:   version.Short(),
		Locations: a.loc,
		Config:    a.projectCfg,
	}
}

// CreateOptions controls platform creation.
type CreateOptions struct {
	// Link symlinks the shared framework instead of copying it.
	Link bool
	// FrameworkDir optionally points at an on-disk shared framework.
	FrameworkDir string
}

// Create scaffolds a new platform project at dest and returns a facade
// bound to it. Fails without touching dest when it already exists or the
// config does not validate.
func Create(dest string, pcfg *project.Config, opts CreateOptions, cfg *config.Config, log utils.Logger) (*Api, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = utils.NewLogger(utils.DefaultLoggerConfig())
	}

	if pcfg.ActivityName == "" {
		pcfg.ActivityName = cfg.Project.ActivityName
	}
	if pcfg.TargetAPI == 0 {
		pcfg.TargetAPI = cfg.Project.TargetAPI
	}

	scaffolder := project.NewScaffolder(log)
	scaffolder.FrameworkDir = opts.FrameworkDir

	if _, err := scaffolder.Create(dest, pcfg, project.CreateOptions{Link: opts.Link}); err != nil {
		return nil, err
	}

	api, err := NewApi(dest, cfg, log)
	if err != nil {
		return nil, err
	}
	api.projectCfg = pcfg
	return api, nil
}

// Update refreshes an existing platform project's scripts, build files and
// manifest invariants, then returns a facade bound to it.
func Update(dest string, opts CreateOptions, cfg *config.Config, log utils.Logger) (*Api, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = utils.NewLogger(utils.DefaultLoggerConfig())
	}

	scaffolder := project.NewScaffolder(log)
	scaffolder.FrameworkDir = opts.FrameworkDir

	if err := scaffolder.Update(dest, project.UpdateOptions{Link: opts.Link}); err != nil {
		return nil, err
	}

	return NewApi(dest, cfg, log)
}

// Prepare synchronizes the application's web assets into the project.
func (a *Api) Prepare(appRoot string) error {
	preparer := assets.NewPreparer(a.loc, a.log)
	return preparer.Prepare(appRoot, assets.Options{
		WWWDir:     a.cfg.Prepare.WWWDir,
		IconSource: a.cfg.Prepare.IconSource,
	})
}

// AddPlugin installs a plugin into the project. Returns true on success so
// the caller can skip a redundant prepare pass.
func (a *Api) AddPlugin(req pluginman.InstallRequest) (bool, error) {
	orch := pluginman.NewOrchestrator(a.loc, a.builder, a.log)
	return orch.AddPlugin(req)
}

// RemovePlugin removes an installed plugin from the project.
func (a *Api) RemovePlugin(id string) (bool, error) {
	orch := pluginman.NewOrchestrator(a.loc, a.builder, a.log)
	return orch.RemovePlugin(pluginman.RemoveRequest{ID: id})
}

// checker builds the requirements checker for this project.
func (a *Api) checker() *sdk.Checker {
	c := sdk.NewChecker(a.log)
	c.ADBPath = a.cfg.ADB.Path
	c.ProjectRoot = a.Root
	c.TargetAPI = a.cfg.Project.TargetAPI
	return c
}

// Requirements probes the external toolchain. Missing components are
// reported as failed entries, never as an error.
func (a *Api) Requirements(ctx context.Context) []sdk.Requirement {
	return a.checker().Check(ctx)
}

// Build checks requirements, runs the build tool and maps its output into
// artifact records.
func (a *Api) Build(ctx context.Context, opts gradle.BuildOptions) ([]gradle.BuildArtifact, error) {
	if err := a.checker().Gate(ctx); err != nil {
		return nil, err
	}

	artifacts, err := a.builder.Build(ctx, opts)
	if err != nil {
		return nil, err
	}

	a.log.Info("Built %d artifact(s)", len(artifacts))
	return artifacts, nil
}

// RunOptions controls Run's target selection and build.
type RunOptions struct {
	Build gradle.BuildOptions
	// DeviceID pins an exact target serial.
	DeviceID string
	// Emulator prefers an emulator over a physical device.
	Emulator bool
}

// RunResult reports what Run deployed and where.
type RunResult struct {
	PackageID string               `json:"package_id"`
	Activity  string               `json:"activity"`
	DeviceID  string               `json:"device_id"`
	Artifact  gradle.BuildArtifact `json:"artifact"`
}

// Run builds, deploys and launches the app. Without an explicit target, a
// connected physical device is preferred over an emulator.
func (a *Api) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if err := a.checker().Gate(ctx); err != nil {
		return nil, err
	}

	artifacts, err := a.builder.Build(ctx, opts.Build)
	if err != nil {
		return nil, err
	}

	target, err := a.selectDeployable(artifacts)
	if err != nil {
		return nil, err
	}

	mgr := device.NewManager(a.cfg.ADB.Path, a.log)
	dev, err := mgr.SelectTarget(ctx, device.TargetSpec{
		DeviceID: opts.DeviceID,
		Emulator: opts.Emulator,
	})
	if err != nil {
		return nil, err
	}

	if err := mgr.Install(ctx, dev.ID, target.Path); err != nil {
		return nil, err
	}

	packageID := target.PackageID
	activity := ""
	if m, err := manifest.Load(a.loc.Manifest); err == nil {
		if packageID == "" {
			packageID = m.PackageID()
		}
		if act := m.LaunchActivity(); act != nil {
			activity = act.Name()
		}
	}
	if packageID == "" || activity == "" {
		return nil, errors.NewNotFoundError("NO_LAUNCH_ACTIVITY",
			"could not determine the launch activity for this project")
	}

	a.log.Info("Launching %s on %s", packageID, dev.ID)
	if err := mgr.Launch(ctx, dev.ID, packageID, activity); err != nil {
		return nil, err
	}

	return &RunResult{
		PackageID: packageID,
		Activity:  activity,
		DeviceID:  dev.ID,
		Artifact:  target,
	}, nil
}

// selectDeployable picks the APK to install: the universal artifact when
// present, otherwise the first one.
func (a *Api) selectDeployable(artifacts []gradle.BuildArtifact) (gradle.BuildArtifact, error) {
	if len(artifacts) == 0 {
		return gradle.BuildArtifact{}, errors.NewToolError("NO_ARTIFACTS",
			"the build produced no installable artifact")
	}

	for _, artifact := range artifacts {
		if artifact.Arch == "" {
			return artifact, nil
		}
	}
	return artifacts[0], nil
}

// CleanOptions controls Clean.
type CleanOptions struct {
	// KeepWWW leaves the prepared web assets in place.
	KeepWWW bool
}

// Clean removes build artifacts and, unless restricted, the prepared web
// assets.
func (a *Api) Clean(ctx context.Context, opts CleanOptions) error {
	if err := a.checker().Gate(ctx); err != nil {
		return err
	}

	if err := a.builder.Clean(ctx); err != nil {
		return err
	}

	if !opts.KeepWWW {
		preparer := assets.NewPreparer(a.loc, a.log)
		if err := preparer.CleanWWW(); err != nil {
			return fmt.Errorf("failed to remove prepared assets: %w", err)
		}
	}

	a.log.Info("Cleaned project at %s", a.Root)
	return nil
}
