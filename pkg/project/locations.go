package project

import (
	"path/filepath"

	"github.com/wildabeast/cordova-android/pkg/utils"
)

// Layout identifies the on-disk shape of a platform project.
type Layout int

const (
	// LayoutLegacy is the flat project layout with sources and the manifest
	// at the project root.
	LayoutLegacy Layout = iota
	// LayoutStudio is the nested Android Studio layout under app/src/main.
	LayoutStudio
)

// String returns the string representation of the layout
func (l Layout) String() string {
	if l == LayoutStudio {
		return "studio"
	}
	return "legacy"
}

// studioMarker is the file whose presence selects the Studio layout.
const studioMarker = "app/src/main/AndroidManifest.xml"

// Locations maps every logical project resource to an absolute path.
// It is computed once from the project root; exactly one layout is active.
type Locations struct {
	Root       string
	Layout     Layout
	Manifest   string
	Strings    string
	JavaSrc    string
	Res        string
	Assets     string
	WWW        string
	Build      string
	Libs       string
	Properties string
	Framework  string
	Scripts    string
}

// NewLocations probes root for the layout marker and derives all resource
// paths deterministically from root plus the detected layout.
func NewLocations(root string) *Locations {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	layout := LayoutLegacy
	if utils.Exists(filepath.Join(abs, filepath.FromSlash(studioMarker))) {
		layout = LayoutStudio
	}

	return newLocationsWithLayout(abs, layout)
}

// NewStudioLocations returns locations for a project that is about to be
// created, where the marker file does not exist yet.
func NewStudioLocations(root string) *Locations {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	return newLocationsWithLayout(abs, LayoutStudio)
}

func newLocationsWithLayout(root string, layout Layout) *Locations {
	loc := &Locations{
		Root:       root,
		Layout:     layout,
		Properties: filepath.Join(root, "project.properties"),
		Framework:  filepath.Join(root, "CordovaLib"),
		Scripts:    filepath.Join(root, "cordova"),
	}

	switch layout {
	case LayoutStudio:
		main := filepath.Join(root, "app", "src", "main")
		loc.Manifest = filepath.Join(main, "AndroidManifest.xml")
		loc.Strings = filepath.Join(main, "res", "values", "strings.xml")
		loc.JavaSrc = filepath.Join(main, "java")
		loc.Res = filepath.Join(main, "res")
		loc.Assets = filepath.Join(main, "assets")
		loc.WWW = filepath.Join(main, "assets", "www")
		loc.Build = filepath.Join(root, "app", "build")
		loc.Libs = filepath.Join(root, "app", "libs")
	default:
		loc.Manifest = filepath.Join(root, "AndroidManifest.xml")
		loc.Strings = filepath.Join(root, "res", "values", "strings.xml")
		loc.JavaSrc = filepath.Join(root, "src")
		loc.Res = filepath.Join(root, "res")
		loc.Assets = filepath.Join(root, "assets")
		loc.WWW = filepath.Join(root, "assets", "www")
		loc.Build = filepath.Join(root, "build")
		loc.Libs = filepath.Join(root, "libs")
	}

	return loc
}

// HasBuildOutput reports whether the build directory contains anything.
// Used to decide whether a plugin change needs an artifact clean first.
func (l *Locations) HasBuildOutput() bool {
	return utils.IsDir(l.Build)
}
