// Package pluginman installs and removes plugin native assets in a platform
// project. Dependency resolution and config-xml merging stay with the
// calling plugin manager; this layer owns file placement, variable
// injection and build-file regeneration.
package pluginman

import (
	"fmt"
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/wildabeast/cordova-android/internal/errors"
)

// PluginFileName is the descriptor file every plugin carries at its root.
const PluginFileName = "plugin.xml"

// SourceFile is a native source file contributed by a plugin.
type SourceFile struct {
	Src       string
	TargetDir string
}

// ResourceFile is a resource contributed by a plugin.
type ResourceFile struct {
	Src    string
	Target string
}

// LibFile is a prebuilt library contributed by a plugin.
type LibFile struct {
	Src string
}

// Framework is a native build-system dependency declared by a plugin.
// Any framework forces build-file regeneration on install and removal.
type Framework struct {
	Src    string
	Custom bool
}

// Plugin is the android section of a parsed plugin descriptor.
type Plugin struct {
	ID      string
	Version string
	Dir     string

	SourceFiles   []SourceFile
	ResourceFiles []ResourceFile
	LibFiles      []LibFile
	Frameworks    []Framework
}

// HasFrameworks reports whether the plugin declares at least one native
// framework dependency.
func (p *Plugin) HasFrameworks() bool {
	return len(p.Frameworks) > 0
}

// LoadPlugin parses dir/plugin.xml and extracts the android platform
// section. A plugin without an android section is valid and installs
// nothing.
func LoadPlugin(dir string) (*Plugin, error) {
	path := filepath.Join(dir, PluginFileName)

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeNotFound, "NO_PLUGIN_XML",
			fmt.Sprintf("failed to read %s", path))
	}

	root := doc.SelectElement("plugin")
	if root == nil {
		return nil, errors.NewValidationError("BAD_PLUGIN_XML",
			fmt.Sprintf("%s has no plugin root element", path))
	}

	plugin := &Plugin{
		ID:      root.SelectAttrValue("id", ""),
		Version: root.SelectAttrValue("version", ""),
		Dir:     dir,
	}

	if plugin.ID == "" {
		return nil, errors.NewValidationError("BAD_PLUGIN_XML",
			fmt.Sprintf("%s declares no plugin id", path))
	}

	for _, platform := range root.SelectElements("platform") {
		if platform.SelectAttrValue("name", "") != "android" {
			continue
		}

		for _, el := range platform.SelectElements("source-file") {
			plugin.SourceFiles = append(plugin.SourceFiles, SourceFile{
				Src:       el.SelectAttrValue("src", ""),
				TargetDir: el.SelectAttrValue("target-dir", ""),
			})
		}

		for _, el := range platform.SelectElements("resource-file") {
			plugin.ResourceFiles = append(plugin.ResourceFiles, ResourceFile{
				Src:    el.SelectAttrValue("src", ""),
				Target: el.SelectAttrValue("target", ""),
			})
		}

		for _, el := range platform.SelectElements("lib-file") {
			plugin.LibFiles = append(plugin.LibFiles, LibFile{
				Src: el.SelectAttrValue("src", ""),
			})
		}

		for _, el := range platform.SelectElements("framework") {
			plugin.Frameworks = append(plugin.Frameworks, Framework{
				Src:    el.SelectAttrValue("src", ""),
				Custom: el.SelectAttrValue("custom", "false") == "true",
			})
		}
	}

	return plugin, nil
}
