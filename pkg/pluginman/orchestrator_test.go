package pluginman

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wildabeast/cordova-android/internal/errors"
	"github.com/wildabeast/cordova-android/pkg/project"
)

const testPluginXML = `<?xml version="1.0" encoding="UTF-8"?>
<plugin xmlns="http://apache.org/cordova/ns/plugins/1.0" id="cordova-plugin-device" version="2.1.0">
    <platform name="android">
        <source-file src="src/android/Device.java" target-dir="src/org/apache/cordova/device"/>
        <resource-file src="res/values/device.xml" target="res/values/device.xml"/>
        <lib-file src="libs/device-support.jar"/>
    </platform>
    <platform name="ios">
        <source-file src="src/ios/CDVDevice.m"/>
    </platform>
</plugin>
`

const testPluginJava = `package org.apache.cordova.device;

public class Device {
    public static final String APP_PACKAGE = "$PACKAGE_NAME";
}
`

// newTestProject lays out a minimal studio-layout project.
func newTestProject(t *testing.T) *project.Locations {
	t.Helper()
	root := t.TempDir()

	manifest := filepath.Join(root, "app", "src", "main", "AndroidManifest.xml")
	require.NoError(t, os.MkdirAll(filepath.Dir(manifest), 0755))
	content := `<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="com.example.hello">` +
		`<application/></manifest>`
	require.NoError(t, os.WriteFile(manifest, []byte(content), 0644))

	return project.NewLocations(root)
}

// newTestPlugin writes a plugin directory with the given descriptor.
func newTestPlugin(t *testing.T, pluginXML string) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, PluginFileName), []byte(pluginXML), 0644))

	files := map[string]string{
		"src/android/Device.java": testPluginJava,
		"res/values/device.xml":   `<resources><string name="pkg">$PACKAGE_NAME</string></resources>`,
		"libs/device-support.jar": "jar-bytes",
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	return dir
}

func TestLoadPlugin(t *testing.T) {
	dir := newTestPlugin(t, testPluginXML)

	plugin, err := LoadPlugin(dir)
	require.NoError(t, err)

	require.Equal(t, "cordova-plugin-device", plugin.ID)
	require.Equal(t, "2.1.0", plugin.Version)
	require.Len(t, plugin.SourceFiles, 1)
	require.Len(t, plugin.ResourceFiles, 1)
	require.Len(t, plugin.LibFiles, 1)
	require.False(t, plugin.HasFrameworks())

	// The ios section contributes nothing.
	require.Equal(t, "src/android/Device.java", plugin.SourceFiles[0].Src)
}

func TestLoadPluginMissingDescriptor(t *testing.T) {
	_, err := LoadPlugin(t.TempDir())
	require.Error(t, err)
}

func TestLoadPluginRequiresID(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PluginFileName),
		[]byte(`<plugin version="1.0.0"/>`), 0644))

	_, err := LoadPlugin(dir)
	require.Error(t, err)
}

func TestAddPluginInstallsFiles(t *testing.T) {
	loc := newTestProject(t)
	dir := newTestPlugin(t, testPluginXML)

	o := NewOrchestrator(loc, nil, nil)
	ok, err := o.AddPlugin(InstallRequest{Dir: dir})
	require.NoError(t, err)
	require.True(t, ok)

	source := filepath.Join(loc.JavaSrc, "org", "apache", "cordova", "device", "Device.java")
	data, err := os.ReadFile(source)
	require.NoError(t, err)
	require.Contains(t, string(data), `"com.example.hello"`, "PACKAGE_NAME should come from the manifest")
	require.NotContains(t, string(data), "$PACKAGE_NAME")

	resource := filepath.Join(loc.Res, "values", "device.xml")
	_, err = os.Stat(resource)
	require.NoError(t, err)

	lib := filepath.Join(loc.Libs, "device-support.jar")
	_, err = os.Stat(lib)
	require.NoError(t, err)
}

func TestAddPluginExplicitVariableWins(t *testing.T) {
	loc := newTestProject(t)
	dir := newTestPlugin(t, testPluginXML)

	o := NewOrchestrator(loc, nil, nil)
	_, err := o.AddPlugin(InstallRequest{
		Dir:       dir,
		Variables: map[string]string{"PACKAGE_NAME": "com.override.pkg"},
	})
	require.NoError(t, err)

	source := filepath.Join(loc.JavaSrc, "org", "apache", "cordova", "device", "Device.java")
	data, err := os.ReadFile(source)
	require.NoError(t, err)
	require.Contains(t, string(data), `"com.override.pkg"`)
}

func TestAddPluginRecordsRegistry(t *testing.T) {
	loc := newTestProject(t)
	dir := newTestPlugin(t, testPluginXML)

	o := NewOrchestrator(loc, nil, nil)
	_, err := o.AddPlugin(InstallRequest{Dir: dir})
	require.NoError(t, err)

	reg, err := LoadRegistry(loc.Root)
	require.NoError(t, err)

	entry, ok := reg.Get("cordova-plugin-device")
	require.True(t, ok)
	require.Equal(t, "2.1.0", entry.Version)
	require.Len(t, entry.Files, 3)
	require.Equal(t, "com.example.hello", entry.Variables["PACKAGE_NAME"])
}

func TestRemovePluginRoundTrip(t *testing.T) {
	loc := newTestProject(t)
	dir := newTestPlugin(t, testPluginXML)

	o := NewOrchestrator(loc, nil, nil)
	_, err := o.AddPlugin(InstallRequest{Dir: dir})
	require.NoError(t, err)

	ok, err := o.RemovePlugin(RemoveRequest{ID: "cordova-plugin-device"})
	require.NoError(t, err)
	require.True(t, ok)

	// Every installed file is gone, and so are the directories installation
	// introduced.
	source := filepath.Join(loc.JavaSrc, "org", "apache", "cordova", "device", "Device.java")
	_, err = os.Stat(source)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(loc.JavaSrc, "org"))
	require.True(t, os.IsNotExist(err))

	reg, err := LoadRegistry(loc.Root)
	require.NoError(t, err)
	require.Empty(t, reg.IDs())
}

func TestRemovePluginNotInstalled(t *testing.T) {
	loc := newTestProject(t)

	o := NewOrchestrator(loc, nil, nil)
	_, err := o.RemovePlugin(RemoveRequest{ID: "cordova-plugin-camera"})
	require.Error(t, err)

	var perr *errors.PlatformError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "PLUGIN_NOT_INSTALLED", perr.Code)
}

const frameworkPluginXML = `<?xml version="1.0" encoding="UTF-8"?>
<plugin id="cordova-plugin-push" version="1.0.0">
    <platform name="android">
        <framework src="com.google.firebase:firebase-messaging:23.0.0"/>
        <framework src="src/android/push.gradle" custom="true"/>
    </platform>
</plugin>
`

func TestAddPluginRegeneratesBuildFilesForFrameworks(t *testing.T) {
	loc := newTestProject(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PluginFileName),
		[]byte(frameworkPluginXML), 0644))

	o := NewOrchestrator(loc, nil, nil)
	_, err := o.AddPlugin(InstallRequest{Dir: dir})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(loc.Root, PluginGradleName))
	require.NoError(t, err)
	require.Contains(t, string(data), "implementation 'com.google.firebase:firebase-messaging:23.0.0'")
	require.Contains(t, string(data), "apply from: 'src/android/push.gradle'")
}

func TestAddPluginSkipsBuildFilesWithoutFrameworks(t *testing.T) {
	loc := newTestProject(t)
	dir := newTestPlugin(t, testPluginXML)

	o := NewOrchestrator(loc, nil, nil)
	_, err := o.AddPlugin(InstallRequest{Dir: dir})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(loc.Root, PluginGradleName))
	require.True(t, os.IsNotExist(err), "no framework means no build-file regeneration")
}

func TestRemovePluginRegeneratesBuildFiles(t *testing.T) {
	loc := newTestProject(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PluginFileName),
		[]byte(frameworkPluginXML), 0644))

	o := NewOrchestrator(loc, nil, nil)
	_, err := o.AddPlugin(InstallRequest{Dir: dir})
	require.NoError(t, err)

	_, err = o.RemovePlugin(RemoveRequest{ID: "cordova-plugin-push"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(loc.Root, PluginGradleName))
	require.NoError(t, err)
	require.NotContains(t, string(data), "firebase-messaging")
}

type recordingCleaner struct {
	calls int
}

func (c *recordingCleaner) CleanArtifacts() error {
	c.calls++
	return nil
}

func TestAddPluginFlushesLegacyBuildOutput(t *testing.T) {
	// Legacy layout: manifest at the root, stale output under build/.
	root := t.TempDir()
	content := `<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="com.example.hello">` +
		`<application/></manifest>`
	require.NoError(t, os.WriteFile(filepath.Join(root, "AndroidManifest.xml"), []byte(content), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "build"), 0755))

	loc := project.NewLocations(root)
	require.Equal(t, project.LayoutLegacy, loc.Layout)

	cleaner := &recordingCleaner{}
	o := NewOrchestrator(loc, cleaner, nil)

	dir := newTestPlugin(t, testPluginXML)
	_, err := o.AddPlugin(InstallRequest{Dir: dir})
	require.NoError(t, err)
	require.Equal(t, 1, cleaner.calls)
}

func TestAddPluginKeepsStudioBuildOutput(t *testing.T) {
	loc := newTestProject(t)
	require.NoError(t, os.MkdirAll(loc.Build, 0755))

	cleaner := &recordingCleaner{}
	o := NewOrchestrator(loc, cleaner, nil)

	dir := newTestPlugin(t, testPluginXML)
	_, err := o.AddPlugin(InstallRequest{Dir: dir})
	require.NoError(t, err)
	require.Zero(t, cleaner.calls, "studio layout isolates module output")
}

func TestSubstituteVars(t *testing.T) {
	vars := map[string]string{"PACKAGE_NAME": "com.example.hello", "API_KEY": "xyz"}

	require.Equal(t, "com.example.hello", substituteVars("$PACKAGE_NAME", vars))
	require.Equal(t, "key=xyz;", substituteVars("key=$API_KEY;", vars))
	require.Equal(t, "$UNKNOWN stays", substituteVars("$UNKNOWN stays", vars))
	require.Equal(t, "$lowercase", substituteVars("$lowercase", vars))
}

func TestSubstitutable(t *testing.T) {
	require.True(t, substitutable("a/b/Device.java"))
	require.True(t, substitutable("res/values/strings.XML"))
	require.False(t, substitutable("libs/device.jar"))
	require.False(t, substitutable("native/lib.so"))
}

func TestRegistryRoundTrip(t *testing.T) {
	root := t.TempDir()

	reg, err := LoadRegistry(root)
	require.NoError(t, err)

	reg.Put(RegistryEntry{ID: "b-plugin", Files: []string{"x"}})
	reg.Put(RegistryEntry{ID: "a-plugin", Files: []string{"y"}, Frameworks: []string{"dep:1.0"}})
	require.NoError(t, reg.Save())

	loaded, err := LoadRegistry(root)
	require.NoError(t, err)
	require.Equal(t, []string{"a-plugin", "b-plugin"}, loaded.IDs())
	require.Equal(t, []string{"dep:1.0"}, loaded.FrameworkSpecs())

	entry, ok := loaded.Get("b-plugin")
	require.True(t, ok)
	require.Equal(t, []string{"x"}, entry.Files)
}
