package gradle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wildabeast/cordova-android/pkg/project"
)

func TestParseBuildType(t *testing.T) {
	for input, want := range map[string]BuildType{
		"":        BuildTypeDebug,
		"debug":   BuildTypeDebug,
		"release": BuildTypeRelease,
	} {
		got, err := ParseBuildType(input)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseBuildType("profile")
	require.Error(t, err)
}

func TestBuildTypeString(t *testing.T) {
	require.Equal(t, "debug", BuildTypeDebug.String())
	require.Equal(t, "release", BuildTypeRelease.String())
}

func TestNewBuilderUnknownStrategy(t *testing.T) {
	_, err := NewBuilder(Strategy(99), project.NewLocations(t.TempDir()), "", nil, nil)
	require.Error(t, err)
}

func TestArchFromName(t *testing.T) {
	require.Equal(t, "arm64-v8a", archFromName("app-arm64-v8a-debug.apk"))
	require.Equal(t, "armeabi-v7a", archFromName("app-armeabi-v7a-release.apk"))
	require.Equal(t, "x86_64", archFromName("app-x86_64-debug.apk"))
	require.Equal(t, "", archFromName("app-debug.apk"), "universal APK carries no ABI")
}

func TestOutputDirsStudio(t *testing.T) {
	root := t.TempDir()
	marker := filepath.Join(root, "app", "src", "main", "AndroidManifest.xml")
	require.NoError(t, os.MkdirAll(filepath.Dir(marker), 0755))
	require.NoError(t, os.WriteFile(marker, []byte("<manifest/>"), 0644))

	b := NewGradleBuilder(project.NewLocations(root), "", nil, nil)
	dirs := b.outputDirs(BuildTypeDebug)
	require.Equal(t, []string{filepath.Join(root, "app", "build", "outputs", "apk", "debug")}, dirs)
}

func TestOutputDirsLegacy(t *testing.T) {
	root := t.TempDir()

	b := NewGradleBuilder(project.NewLocations(root), "", nil, nil)
	dirs := b.outputDirs(BuildTypeRelease)
	require.Equal(t, []string{
		filepath.Join(root, "build", "outputs", "apk", "release"),
		filepath.Join(root, "build", "outputs", "apk"),
	}, dirs)
}

func TestCollectArtifacts(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "build", "outputs", "apk", "debug")
	require.NoError(t, os.MkdirAll(out, 0755))

	for _, name := range []string{"app-debug.apk", "app-arm64-v8a-debug.apk"} {
		require.NoError(t, os.WriteFile(filepath.Join(out, name), []byte("not a real apk"), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(out, "output-metadata.json"), []byte("{}"), 0644))

	b := NewGradleBuilder(project.NewLocations(root), "", nil, nil)
	artifacts, err := b.collectArtifacts(BuildTypeDebug)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)

	byArch := map[string]BuildArtifact{}
	for _, a := range artifacts {
		byArch[a.Arch] = a
		require.Equal(t, "debug", a.Type)
		require.Equal(t, "gradle", a.Method)
		// The file is not parseable as an APK; path and type survive anyway.
		require.NotEmpty(t, a.Path)
	}
	require.Contains(t, byArch, "")
	require.Contains(t, byArch, "arm64-v8a")
}

func TestCleanArtifacts(t *testing.T) {
	root := t.TempDir()
	build := filepath.Join(root, "build")
	fwBuild := filepath.Join(root, "CordovaLib", "build")
	require.NoError(t, os.MkdirAll(filepath.Join(build, "outputs"), 0755))
	require.NoError(t, os.MkdirAll(fwBuild, 0755))

	b := NewGradleBuilder(project.NewLocations(root), "", nil, nil)
	require.NoError(t, b.CleanArtifacts())

	for _, dir := range []string{build, fwBuild} {
		_, err := os.Stat(dir)
		require.True(t, os.IsNotExist(err), "expected %s to be removed", dir)
	}
}
