package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleManifest = `<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="com.example.app">
    <uses-sdk android:minSdkVersion="14" android:targetSdkVersion="30"/>
    <application android:label="@string/app_name" android:debuggable="true">
        <activity android:name=".MainActivity">
            <intent-filter>
                <action android:name="android.intent.action.MAIN"/>
                <category android:name="android.intent.category.LAUNCHER"/>
            </intent-filter>
        </activity>
        <activity android:name=".SettingsActivity"/>
    </application>
</manifest>
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "AndroidManifest.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0644))
	return path
}

func TestLoadAndAccessors(t *testing.T) {
	m, err := Load(writeSample(t))
	require.NoError(t, err)

	require.Equal(t, "com.example.app", m.PackageID())
	require.Equal(t, 14, m.MinSDKVersion())
	require.Equal(t, 30, m.TargetSDKVersion())
	require.True(t, m.Debuggable())
}

func TestLoadRejectsNonManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AndroidManifest.xml")
	require.NoError(t, os.WriteFile(path, []byte("<resources/>"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)
	require.Equal(t, "com.example.app", m.PackageID())

	_, err = Parse([]byte("not xml at all <"))
	require.Error(t, err)
}

func TestSetters(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	m.SetPackageID("org.other.app").
		SetMinSDKVersion(19).
		SetTargetSDKVersion(34).
		SetDebuggable(false)

	require.Equal(t, "org.other.app", m.PackageID())
	require.Equal(t, 19, m.MinSDKVersion())
	require.Equal(t, 34, m.TargetSDKVersion())
	require.False(t, m.Debuggable())
}

func TestSettersCreateMissingElements(t *testing.T) {
	m, err := Parse([]byte(`<manifest package="com.example.app"/>`))
	require.NoError(t, err)

	require.Equal(t, 0, m.MinSDKVersion())

	m.SetMinSDKVersion(19).SetDebuggable(false)
	require.Equal(t, 19, m.MinSDKVersion())
	require.False(t, m.Debuggable())
}

func TestLaunchActivity(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	act := m.LaunchActivity()
	require.NotNil(t, act)
	require.Equal(t, ".MainActivity", act.Name())

	act.SetName("com.example.app.HomeActivity")
	require.Equal(t, "com.example.app.HomeActivity", m.LaunchActivity().Name())
}

func TestLaunchActivityAbsent(t *testing.T) {
	m, err := Parse([]byte(`<manifest package="com.example.app"><application/></manifest>`))
	require.NoError(t, err)
	require.Nil(t, m.LaunchActivity())
}

func TestWriteRoundTrip(t *testing.T) {
	path := writeSample(t)

	m, err := Load(path)
	require.NoError(t, err)
	m.SetMinSDKVersion(21).SetDebuggable(false)
	require.NoError(t, m.Write())

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 21, reloaded.MinSDKVersion())
	require.False(t, reloaded.Debuggable())
	require.Equal(t, ".MainActivity", reloaded.LaunchActivity().Name())
}

func TestWriteToAlternatePath(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	// A parsed document has no origin path; writing needs an explicit one.
	require.Error(t, m.Write())

	target := filepath.Join(t.TempDir(), "AndroidManifest.xml")
	require.NoError(t, m.Write(target))
	require.Equal(t, target, m.Path())
}

func TestEnsureNamespace(t *testing.T) {
	m, err := Parse([]byte(`<manifest package="com.example.app"/>`))
	require.NoError(t, err)

	m.EnsureNamespace()
	data, err := m.Bytes()
	require.NoError(t, err)
	require.Contains(t, string(data), `xmlns:android="http://schemas.android.com/apk/res/android"`)
}
