package gradle

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/wildabeast/cordova-android/internal/errors"
	"github.com/wildabeast/cordova-android/pkg/project"
	"github.com/wildabeast/cordova-android/pkg/utils"
)

// GradleBuilder builds via the project's gradle wrapper, falling back to a
// configured gradle executable.
type GradleBuilder struct {
	loc        *project.Locations
	gradlePath string
	extraArgs  []string
	log        utils.Logger
}

// NewGradleBuilder creates a GradleBuilder.
func NewGradleBuilder(loc *project.Locations, gradlePath string, extraArgs []string, log utils.Logger) *GradleBuilder {
	if log == nil {
		log = utils.NopLogger{}
	}
	return &GradleBuilder{loc: loc, gradlePath: gradlePath, extraArgs: extraArgs, log: log}
}

// gradle returns the executable used for this project.
func (b *GradleBuilder) gradle() (string, error) {
	if b.gradlePath != "" {
		return b.gradlePath, nil
	}

	script := "gradlew"
	if runtime.GOOS == "windows" {
		script = "gradlew.bat"
	}
	wrapper := filepath.Join(b.loc.Root, script)
	if utils.Exists(wrapper) {
		return wrapper, nil
	}

	path, err := exec.LookPath("gradle")
	if err != nil {
		return "", errors.NewRequirementError("NO_GRADLE",
			fmt.Sprintf("neither %s nor gradle in PATH is available", wrapper))
	}
	return path, nil
}

// run executes gradle with the given task, streaming output while also
// capturing it for error reporting.
func (b *GradleBuilder) run(ctx context.Context, task string, extra []string) error {
	gradle, err := b.gradle()
	if err != nil {
		return err
	}

	args := append([]string{task}, b.extraArgs...)
	args = append(args, extra...)

	cmd := exec.CommandContext(ctx, gradle, args...)
	cmd.Dir = b.loc.Root

	var captured bytes.Buffer
	cmd.Stdout = io.MultiWriter(&captured, os.Stdout)
	cmd.Stderr = io.MultiWriter(&captured, os.Stderr)

	b.log.Debug("Running %s", cmd.String())

	if err := cmd.Run(); err != nil {
		return errors.WrapError(err, errors.ErrorTypeTool, "GRADLE_FAILED",
			fmt.Sprintf("gradle %s failed:\n%s", task, captured.String()))
	}
	return nil
}

// Build runs the assemble task for the requested type and maps the outputs
// into artifact records.
func (b *GradleBuilder) Build(ctx context.Context, opts BuildOptions) ([]BuildArtifact, error) {
	task := "assembleDebug"
	if opts.Type == BuildTypeRelease {
		task = "assembleRelease"
	}

	if err := b.run(ctx, task, opts.ExtraArgs); err != nil {
		return nil, err
	}

	artifacts, err := b.collectArtifacts(opts.Type)
	if err != nil {
		return nil, err
	}
	if len(artifacts) == 0 {
		return nil, errors.NewToolError("NO_ARTIFACTS",
			fmt.Sprintf("gradle %s reported success but produced no APKs", task))
	}

	return artifacts, nil
}

// outputDirs returns the APK output directories for the active layout.
func (b *GradleBuilder) outputDirs(t BuildType) []string {
	if b.loc.Layout == project.LayoutStudio {
		return []string{filepath.Join(b.loc.Build, "outputs", "apk", t.String())}
	}
	return []string{
		filepath.Join(b.loc.Build, "outputs", "apk", t.String()),
		filepath.Join(b.loc.Build, "outputs", "apk"),
	}
}

// Clean removes build output via gradle, falling back to direct removal
// when no build tool is reachable.
func (b *GradleBuilder) Clean(ctx context.Context) error {
	if _, err := b.gradle(); err != nil {
		b.log.Warn("Build tool unavailable; removing build directories directly")
		return b.CleanArtifacts()
	}
	return b.run(ctx, "clean", nil)
}

// CleanArtifacts removes build directories without invoking the build tool.
func (b *GradleBuilder) CleanArtifacts() error {
	dirs := []string{
		b.loc.Build,
		filepath.Join(b.loc.Root, "build"),
		filepath.Join(b.loc.Framework, "build"),
	}

	for _, dir := range dirs {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove %s: %w", dir, err)
		}
	}
	return nil
}
