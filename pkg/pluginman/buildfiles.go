package pluginman

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wildabeast/cordova-android/pkg/utils"
)

// PluginGradleName is the generated build configuration file carrying
// plugin-contributed dependencies. The application build script applies it
// when present.
const PluginGradleName = "plugin-dependencies.gradle"

// regenerateBuildFiles rewrites the plugin dependency gradle file from the
// framework declarations of every installed plugin. Called only when the
// plugin that changed declares at least one framework dependency.
func (o *Orchestrator) regenerateBuildFiles(reg *Registry) error {
	var b strings.Builder
	b.WriteString("// GENERATED FILE - regenerated on every plugin change.\n")
	b.WriteString("dependencies {\n")

	var custom []string
	for _, id := range reg.IDs() {
		entry := reg.Plugins[id]
		for _, spec := range entry.Frameworks {
			if strings.HasSuffix(spec, ".gradle") {
				custom = append(custom, spec)
				continue
			}
			fmt.Fprintf(&b, "    implementation '%s'\n", spec)
		}
	}
	b.WriteString("}\n")

	for _, path := range custom {
		fmt.Fprintf(&b, "apply from: '%s'\n", path)
	}

	target := filepath.Join(o.loc.Root, PluginGradleName)
	return utils.WriteFileAtomic(target, []byte(b.String()), 0644)
}
