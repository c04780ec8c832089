// Package sdk probes the external Android toolchain. Probes report absence
// as data, never as an error; callers decide whether absence blocks them.
package sdk

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/wildabeast/cordova-android/internal/errors"
	"github.com/wildabeast/cordova-android/pkg/utils"
)

// Requirement is the structured result of a single toolchain probe.
type Requirement struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Installed bool   `json:"installed"`
	Version   string `json:"version,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Checker runs toolchain probes for one project.
type Checker struct {
	log utils.Logger

	// ADBPath overrides adb lookup; empty means PATH plus the SDK root.
	ADBPath string
	// TargetAPI, when nonzero, adds a probe for the matching platform.
	TargetAPI int
	// ProjectRoot, when set, lets the gradle probe accept the project's
	// own wrapper script.
	ProjectRoot string
}

// NewChecker creates a Checker.
func NewChecker(log utils.Logger) *Checker {
	if log == nil {
		log = utils.NopLogger{}
	}
	return &Checker{log: log}
}

// Check runs every probe and returns the full pass/fail list. It never
// returns an error for a missing component.
func (c *Checker) Check(ctx context.Context) []Requirement {
	reqs := []Requirement{
		c.checkJava(ctx),
		c.checkSDKRoot(),
		c.checkADB(ctx),
		c.checkGradle(ctx),
	}

	if c.TargetAPI > 0 {
		reqs = append(reqs, c.checkPlatform())
	}

	return reqs
}

// Gate returns an error when any requirement is unsatisfied, for operations
// that refuse to start on an incomplete toolchain.
func (c *Checker) Gate(ctx context.Context) error {
	var missing []string
	for _, req := range c.Check(ctx) {
		if !req.Installed {
			missing = append(missing, fmt.Sprintf("%s (%s)", req.Name, req.Reason))
		}
	}

	if len(missing) > 0 {
		return errors.NewRequirementError("REQUIREMENTS_FAILED",
			"some requirements are not met: "+strings.Join(missing, "; "))
	}
	return nil
}

func (c *Checker) checkJava(ctx context.Context) Requirement {
	req := Requirement{ID: "java", Name: "Java JDK"}

	path, err := exec.LookPath(exeName("java"))
	if err != nil {
		if home := os.Getenv("JAVA_HOME"); home != "" {
			path = filepath.Join(home, "bin", exeName("java"))
			if !utils.Exists(path) {
				req.Reason = "java not found in PATH or JAVA_HOME"
				return req
			}
		} else {
			req.Reason = "java not found in PATH and JAVA_HOME is not set"
			return req
		}
	}

	req.Installed = true
	req.Version = toolVersion(ctx, path, "-version")
	return req
}

// SDKRoot resolves the Android SDK root from the conventional environment
// variables, preferring ANDROID_SDK_ROOT.
func SDKRoot() string {
	for _, key := range []string{"ANDROID_SDK_ROOT", "ANDROID_HOME"} {
		if root := os.Getenv(key); root != "" {
			return root
		}
	}
	return ""
}

func (c *Checker) checkSDKRoot() Requirement {
	req := Requirement{ID: "android-sdk", Name: "Android SDK"}

	root := SDKRoot()
	if root == "" {
		req.Reason = "ANDROID_SDK_ROOT is not set"
		return req
	}
	if !utils.IsDir(root) {
		req.Reason = fmt.Sprintf("ANDROID_SDK_ROOT does not exist: %s", root)
		return req
	}
	if !utils.IsDir(filepath.Join(root, "platform-tools")) {
		req.Reason = fmt.Sprintf("no platform-tools in %s", root)
		return req
	}

	req.Installed = true
	req.Version = root
	return req
}

func (c *Checker) checkADB(ctx context.Context) Requirement {
	req := Requirement{ID: "adb", Name: "Android Debug Bridge"}

	path := c.ADBPath
	if path == "" || path == "adb" {
		found, err := exec.LookPath(exeName("adb"))
		if err != nil {
			if root := SDKRoot(); root != "" {
				found = filepath.Join(root, "platform-tools", exeName("adb"))
			}
		}
		path = found
	}

	if path == "" || !utils.Exists(path) {
		req.Reason = "adb not found in PATH or the SDK platform-tools"
		return req
	}

	req.Installed = true
	req.Version = toolVersion(ctx, path, "version")
	return req
}

func (c *Checker) checkGradle(ctx context.Context) Requirement {
	req := Requirement{ID: "gradle", Name: "Gradle"}

	if c.ProjectRoot != "" {
		wrapper := filepath.Join(c.ProjectRoot, gradlewName())
		if utils.Exists(wrapper) {
			req.Installed = true
			req.Version = "project wrapper"
			return req
		}
	}

	path, err := exec.LookPath(exeName("gradle"))
	if err != nil {
		req.Reason = "no gradlew in the project and gradle not found in PATH"
		return req
	}

	req.Installed = true
	req.Version = toolVersion(ctx, path, "--version")
	return req
}

func (c *Checker) checkPlatform() Requirement {
	req := Requirement{
		ID:   fmt.Sprintf("android-%d", c.TargetAPI),
		Name: fmt.Sprintf("Android target platform %d", c.TargetAPI),
	}

	root := SDKRoot()
	if root == "" {
		req.Reason = "ANDROID_SDK_ROOT is not set"
		return req
	}

	platform := filepath.Join(root, "platforms", fmt.Sprintf("android-%d", c.TargetAPI))
	if !utils.Exists(filepath.Join(platform, "android.jar")) {
		req.Reason = fmt.Sprintf("platform android-%d is not installed", c.TargetAPI)
		return req
	}

	req.Installed = true
	req.Version = platform
	return req
}

// toolVersion runs a tool with its version argument and extracts the first
// output line. Returns "unknown" when the tool runs but prints nothing.
func toolVersion(ctx context.Context, toolPath string, args ...string) string {
	cmd := exec.CommandContext(ctx, toolPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "unknown"
	}

	lines := strings.Split(string(output), "\n")
	if len(lines) > 0 {
		if version := strings.TrimSpace(lines[0]); version != "" {
			return version
		}
	}
	return "unknown"
}

func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func gradlewName() string {
	if runtime.GOOS == "windows" {
		return "gradlew.bat"
	}
	return "gradlew"
}
