package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadProjectPropertiesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.properties")

	props, err := LoadProjectProperties(path)
	require.NoError(t, err)
	require.Empty(t, props.Target())
	require.Empty(t, props.LibraryRefs())
}

func TestSetTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.properties")

	props, err := LoadProjectProperties(path)
	require.NoError(t, err)

	props.SetTarget(34)
	require.Equal(t, "android-34", props.Target())
}

func TestResetFrameworkRef(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.properties")

	content := "target=android-30\n" +
		"android.library.reference.1=SomeOtherLib\n" +
		"android.library.reference.2=CordovaLib\n" +
		"android.library.reference.3=ThirdLib\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	props, err := LoadProjectProperties(path)
	require.NoError(t, err)

	props.ResetFrameworkRef("CordovaLib")

	// The framework moves to slot 1; the rest keep their relative order.
	require.Equal(t, []string{"CordovaLib", "SomeOtherLib", "ThirdLib"}, props.LibraryRefs())
}

func TestResetFrameworkRefIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.properties")

	props, err := LoadProjectProperties(path)
	require.NoError(t, err)

	props.ResetFrameworkRef("CordovaLib")
	props.ResetFrameworkRef("CordovaLib")
	require.Equal(t, []string{"CordovaLib"}, props.LibraryRefs())
}

func TestAddAndRemoveLibraryRef(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.properties")

	props, err := LoadProjectProperties(path)
	require.NoError(t, err)

	props.ResetFrameworkRef("CordovaLib")
	props.AddLibraryRef("plugins/lib-a")
	props.AddLibraryRef("plugins/lib-b")
	props.AddLibraryRef("plugins/lib-a") // duplicate is a no-op
	require.Equal(t, []string{"CordovaLib", "plugins/lib-a", "plugins/lib-b"}, props.LibraryRefs())

	props.RemoveLibraryRef("plugins/lib-a")
	require.Equal(t, []string{"CordovaLib", "plugins/lib-b"}, props.LibraryRefs())
}

func TestPropertiesWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.properties")

	props, err := LoadProjectProperties(path)
	require.NoError(t, err)
	props.SetTarget(33)
	props.ResetFrameworkRef("CordovaLib")
	require.NoError(t, props.Write())

	loaded, err := LoadProjectProperties(path)
	require.NoError(t, err)
	require.Equal(t, "android-33", loaded.Target())
	require.Equal(t, []string{"CordovaLib"}, loaded.LibraryRefs())
}
