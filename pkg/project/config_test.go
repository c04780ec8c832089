package project

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePackageName(t *testing.T) {
	valid := []string{
		"com.example.app",
		"com.example",
		"io.cordova.hellocordova",
		"com.example.my_app",
		"com.Example2.App3",
	}
	for _, name := range valid {
		require.NoError(t, ValidatePackageName(name), "expected %q to validate", name)
	}

	invalid := []string{
		"",
		"com",
		"com.",
		".com.example",
		"com..example",
		"com.1example",
		"1com.example",
		"com.example.app!",
		"com example.app",
	}
	for _, name := range invalid {
		require.Error(t, ValidatePackageName(name), "expected %q to be rejected", name)
	}
}

func TestValidatePackageNameReservedWord(t *testing.T) {
	for _, name := range []string{"com.class.app", "com.example.class", "com.CLASS.app"} {
		err := ValidatePackageName(name)
		require.Error(t, err, "expected %q to be rejected", name)
	}

	// "class" as a substring of a longer segment is fine.
	require.NoError(t, ValidatePackageName("com.classic.app"))
	require.NoError(t, ValidatePackageName("com.subclass.app"))
}

func TestValidateProjectName(t *testing.T) {
	require.NoError(t, ValidateProjectName("HelloCordova"))
	require.NoError(t, ValidateProjectName("Hello World"))

	require.Error(t, ValidateProjectName(""))
	require.Error(t, ValidateProjectName("CordovaActivity"))
	require.Error(t, ValidateProjectName("123App"))
}

func TestSanitizeName(t *testing.T) {
	require.Equal(t, "Hello World", SanitizeName("Hello, World!"))
	require.Equal(t, "App", SanitizeName("  App  "))
	require.Equal(t, "My_App 2", SanitizeName("My_App (2)"))
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{PackageName: "com.example.app", Name: "Hello"}
	require.NoError(t, cfg.Validate())

	// The display name is sanitized before validation, so decoration does
	// not break an otherwise legal name.
	cfg = &Config{PackageName: "com.example.app", Name: "Hello!"}
	require.NoError(t, cfg.Validate())

	cfg = &Config{PackageName: "bad", Name: "Hello"}
	require.Error(t, cfg.Validate())

	cfg = &Config{PackageName: "com.example.app", Name: "9Lives"}
	require.Error(t, cfg.Validate())
}

func TestJavaPackagePath(t *testing.T) {
	cfg := &Config{PackageName: "com.example.app"}
	require.Equal(t, "com/example/app", cfg.JavaPackagePath())
}
