package project

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/wildabeast/cordova-android/internal/errors"
)

// Config describes the app a project is scaffolded for. It is built once at
// create time and treated as immutable; update receives a fresh instance.
type Config struct {
	// PackageName is the reverse-DNS application id, e.g. com.example.app.
	PackageName string
	// Name is the display name of the application.
	Name string
	// ActivityName is the launch activity class name.
	ActivityName string
	// TargetAPI is the android platform API level the project targets.
	TargetAPI int
}

// packageNamePattern is the Java-package-like grammar accepted for
// application ids: at least two segments, each starting with a letter.
var packageNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]+(\.[a-zA-Z][a-zA-Z0-9_]*)+$`)

// reservedWordPattern rejects the Java keyword "class" appearing as a whole
// segment anywhere in the package id.
var reservedWordPattern = regexp.MustCompile(`(?i)\bclass\b`)

// ValidatePackageName checks that name is usable as an Android package id.
// It never touches the filesystem.
func ValidatePackageName(name string) error {
	if !packageNamePattern.MatchString(name) {
		return errors.NewValidationError("BAD_PACKAGE",
			"package name must look like: com.company.Name and start each segment with a letter: "+name)
	}

	if reservedWordPattern.MatchString(name) {
		return errors.NewValidationError("RESERVED_PACKAGE",
			"package name must not contain the reserved word \"class\": "+name)
	}

	return nil
}

// ValidateProjectName checks that name is usable as a project display name.
func ValidateProjectName(name string) error {
	if name == "" {
		return errors.NewValidationError("EMPTY_NAME", "project name must not be empty")
	}

	if name == "CordovaActivity" {
		return errors.NewValidationError("RESERVED_NAME",
			"project name must not be \"CordovaActivity\"")
	}

	if unicode.IsDigit(rune(name[0])) {
		return errors.NewValidationError("NUMERIC_NAME",
			"project name must not begin with a digit: "+name)
	}

	return nil
}

// SanitizeName strips characters that cannot appear in generated identifiers
// and resource values.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Validate checks the full config, sanitizing the display name first.
func (c *Config) Validate() error {
	if err := ValidatePackageName(c.PackageName); err != nil {
		return err
	}
	return ValidateProjectName(SanitizeName(c.Name))
}

// JavaPackagePath returns the package id as a relative source path,
// e.g. com.example.app -> com/example/app.
func (c *Config) JavaPackagePath() string {
	return strings.ReplaceAll(c.PackageName, ".", "/")
}
