// Package device talks to connected Android devices and emulators over adb.
package device

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/wildabeast/cordova-android/internal/errors"
	"github.com/wildabeast/cordova-android/pkg/utils"
)

// Device represents one adb-visible device.
type Device struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Model      string `json:"model"`
	Product    string `json:"product"`
	IsEmulator bool   `json:"is_emulator"`
}

// Manager wraps the adb executable.
type Manager struct {
	adbPath string
	log     utils.Logger
}

// NewManager creates a Manager. An empty adbPath means "adb" from PATH.
func NewManager(adbPath string, log utils.Logger) *Manager {
	if adbPath == "" {
		adbPath = "adb"
	}
	if log == nil {
		log = utils.NopLogger{}
	}
	return &Manager{adbPath: adbPath, log: log}
}

// List returns the devices adb currently sees.
func (m *Manager) List(ctx context.Context) ([]Device, error) {
	cmd := exec.CommandContext(ctx, m.adbPath, "devices", "-l")
	output, err := cmd.Output()
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeDevice, "ADB_FAILED",
			"failed to run adb devices")
	}

	return parseDeviceList(string(output)), nil
}

// parseDeviceList parses `adb devices -l` output.
func parseDeviceList(output string) []Device {
	var devices []Device

	lines := strings.Split(output, "\n")
	for _, line := range lines[1:] { // Skip header
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		device := Device{
			ID:     parts[0],
			Status: parts[1],
		}
		device.IsEmulator = strings.HasPrefix(device.ID, "emulator-")

		for _, part := range parts[2:] {
			if strings.HasPrefix(part, "model:") {
				device.Model = strings.TrimPrefix(part, "model:")
			} else if strings.HasPrefix(part, "product:") {
				device.Product = strings.TrimPrefix(part, "product:")
			}
		}

		devices = append(devices, device)
	}

	return devices
}

// TargetSpec narrows device selection for SelectTarget.
type TargetSpec struct {
	// DeviceID pins an exact serial.
	DeviceID string
	// Emulator prefers an emulator even when a physical device is online.
	Emulator bool
}

// SelectTarget picks a deployment target. With no explicit request, a
// connected physical device wins over an emulator.
func (m *Manager) SelectTarget(ctx context.Context, spec TargetSpec) (Device, error) {
	devices, err := m.List(ctx)
	if err != nil {
		return Device{}, err
	}
	return selectTarget(devices, spec)
}

// selectTarget applies the selection policy to an already-listed device set.
func selectTarget(devices []Device, spec TargetSpec) (Device, error) {
	var online []Device
	for _, d := range devices {
		if d.Status == "device" {
			online = append(online, d)
		}
	}

	if spec.DeviceID != "" {
		for _, d := range online {
			if d.ID == spec.DeviceID {
				return d, nil
			}
		}
		return Device{}, errors.NewDeviceError("DEVICE_NOT_FOUND",
			fmt.Sprintf("device %s is not connected", spec.DeviceID))
	}

	if len(online) == 0 {
		return Device{}, errors.NewDeviceError("NO_DEVICES",
			"no connected devices or running emulators")
	}

	if spec.Emulator {
		for _, d := range online {
			if d.IsEmulator {
				return d, nil
			}
		}
		return Device{}, errors.NewDeviceError("NO_EMULATOR",
			"no running emulator found")
	}

	for _, d := range online {
		if !d.IsEmulator {
			return d, nil
		}
	}
	return online[0], nil
}

// Install installs an APK on a device, replacing any existing install.
func (m *Manager) Install(ctx context.Context, deviceID, apkPath string) error {
	args := []string{"-s", deviceID, "install", "-r", apkPath}

	cmd := exec.CommandContext(ctx, m.adbPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeDevice, "INSTALL_FAILED",
			fmt.Sprintf("adb install failed: %s", string(output)))
	}

	if !strings.Contains(string(output), "Success") {
		return errors.NewDeviceError("INSTALL_FAILED",
			fmt.Sprintf("installation failed: %s", string(output)))
	}

	m.log.Debug("Installed %s on %s", apkPath, deviceID)
	return nil
}

// Launch starts the app's launch activity on a device.
func (m *Manager) Launch(ctx context.Context, deviceID, packageID, activity string) error {
	component := fmt.Sprintf("%s/%s", packageID, qualifyActivity(packageID, activity))
	args := []string{"-s", deviceID, "shell", "am", "start", "-n", component}

	cmd := exec.CommandContext(ctx, m.adbPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeDevice, "LAUNCH_FAILED",
			fmt.Sprintf("am start failed: %s", string(output)))
	}

	if strings.Contains(string(output), "Error") {
		return errors.NewDeviceError("LAUNCH_FAILED",
			fmt.Sprintf("activity launch failed: %s", string(output)))
	}

	m.log.Debug("Launched %s on %s", component, deviceID)
	return nil
}

// qualifyActivity turns a bare activity class name into the component form
// am expects. Already-qualified names pass through.
func qualifyActivity(packageID, activity string) string {
	if strings.Contains(activity, ".") {
		return activity
	}
	return packageID + "." + activity
}
