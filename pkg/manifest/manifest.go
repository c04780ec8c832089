// Package manifest edits AndroidManifest.xml documents. All operations are
// pure in-memory mutations; nothing reaches disk until Write is called, and
// Write re-serializes the whole document in one pass.
package manifest

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/wildabeast/cordova-android/pkg/utils"
)

const androidNS = "http://schemas.android.com/apk/res/android"

// Manifest is the in-memory representation of an AndroidManifest.xml.
type Manifest struct {
	doc  *etree.Document
	path string
}

// Load parses the manifest at path.
func Load(path string) (*Manifest, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if doc.SelectElement("manifest") == nil {
		return nil, fmt.Errorf("%s has no manifest root element", path)
	}

	return &Manifest{doc: doc, path: path}, nil
}

// Parse reads a manifest from raw XML. Used by tests and template rendering.
func Parse(data []byte) (*Manifest, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if doc.SelectElement("manifest") == nil {
		return nil, fmt.Errorf("manifest root element missing")
	}

	return &Manifest{doc: doc}, nil
}

func (m *Manifest) root() *etree.Element {
	return m.doc.SelectElement("manifest")
}

// PackageID returns the application package id.
func (m *Manifest) PackageID() string {
	return m.root().SelectAttrValue("package", "")
}

// SetPackageID sets the application package id.
func (m *Manifest) SetPackageID(id string) *Manifest {
	m.root().CreateAttr("package", id)
	return m
}

// usesSdk returns the uses-sdk element, creating it when absent.
func (m *Manifest) usesSdk() *etree.Element {
	if el := m.root().SelectElement("uses-sdk"); el != nil {
		return el
	}
	return m.root().CreateElement("uses-sdk")
}

// MinSDKVersion returns the declared minimum SDK version, 0 when unset.
// Values are stored textually but compared as integers.
func (m *Manifest) MinSDKVersion() int {
	el := m.root().SelectElement("uses-sdk")
	if el == nil {
		return 0
	}
	v, _ := strconv.Atoi(el.SelectAttrValue("android:minSdkVersion", "0"))
	return v
}

// SetMinSDKVersion sets the minimum SDK version.
func (m *Manifest) SetMinSDKVersion(version int) *Manifest {
	m.usesSdk().CreateAttr("android:minSdkVersion", strconv.Itoa(version))
	return m
}

// TargetSDKVersion returns the declared target SDK version, 0 when unset.
func (m *Manifest) TargetSDKVersion() int {
	el := m.root().SelectElement("uses-sdk")
	if el == nil {
		return 0
	}
	v, _ := strconv.Atoi(el.SelectAttrValue("android:targetSdkVersion", "0"))
	return v
}

// SetTargetSDKVersion sets the target SDK version.
func (m *Manifest) SetTargetSDKVersion(version int) *Manifest {
	m.usesSdk().CreateAttr("android:targetSdkVersion", strconv.Itoa(version))
	return m
}

func (m *Manifest) application() *etree.Element {
	if el := m.root().SelectElement("application"); el != nil {
		return el
	}
	return m.root().CreateElement("application")
}

// Debuggable returns the application debuggable flag.
func (m *Manifest) Debuggable() bool {
	el := m.root().SelectElement("application")
	if el == nil {
		return false
	}
	return el.SelectAttrValue("android:debuggable", "false") == "true"
}

// SetDebuggable sets the application debuggable flag.
func (m *Manifest) SetDebuggable(debuggable bool) *Manifest {
	m.application().CreateAttr("android:debuggable", strconv.FormatBool(debuggable))
	return m
}

// Activity is a view over the launch activity element.
type Activity struct {
	el *etree.Element
}

// LaunchActivity returns the activity whose intent filter declares the MAIN
// action, or nil when the manifest has none.
func (m *Manifest) LaunchActivity() *Activity {
	app := m.root().SelectElement("application")
	if app == nil {
		return nil
	}

	for _, activity := range app.SelectElements("activity") {
		for _, filter := range activity.SelectElements("intent-filter") {
			for _, action := range filter.SelectElements("action") {
				if action.SelectAttrValue("android:name", "") == "android.intent.action.MAIN" {
					return &Activity{el: activity}
				}
			}
		}
	}

	return nil
}

// Name returns the activity class name as written in the manifest.
func (a *Activity) Name() string {
	return a.el.SelectAttrValue("android:name", "")
}

// SetName sets the activity class name.
func (a *Activity) SetName(name string) {
	a.el.CreateAttr("android:name", name)
}

// Path returns the path the manifest was loaded from.
func (m *Manifest) Path() string {
	return m.path
}

// Bytes serializes the document without writing it.
func (m *Manifest) Bytes() ([]byte, error) {
	return m.doc.WriteToBytes()
}

// Write persists the document to the given path, defaulting to the path it
// was loaded from. The file is replaced atomically.
func (m *Manifest) Write(path ...string) error {
	target := m.path
	if len(path) > 0 && path[0] != "" {
		target = path[0]
	}
	if target == "" {
		return fmt.Errorf("manifest has no destination path")
	}

	data, err := m.doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}

	if err := utils.WriteFileAtomic(target, data, 0644); err != nil {
		return err
	}

	m.path = target
	return nil
}

// EnsureNamespace makes sure the android XML namespace is declared on the
// root element. Templates always carry it; plugin-edited documents may not.
func (m *Manifest) EnsureNamespace() *Manifest {
	root := m.root()
	if root.SelectAttrValue("xmlns:android", "") == "" {
		root.CreateAttr("xmlns:android", androidNS)
	}
	return m
}
