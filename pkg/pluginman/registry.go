package pluginman

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/wildabeast/cordova-android/pkg/utils"
)

// registryFile records installed plugins inside the project tree, so
// removal can delete exactly the files installation copied.
const registryFile = "plugins/android.yaml"

// RegistryEntry records one installed plugin.
type RegistryEntry struct {
	ID        string            `yaml:"id"`
	Version   string            `yaml:"version,omitempty"`
	Variables map[string]string `yaml:"variables,omitempty"`
	// Files are project-root-relative paths copied during install.
	Files []string `yaml:"files"`
	// Frameworks are the declared native build-system dependencies.
	Frameworks []string `yaml:"frameworks,omitempty"`
}

// Registry is the persisted set of installed plugins for one project.
type Registry struct {
	path    string
	Plugins map[string]RegistryEntry `yaml:"plugins"`
}

// LoadRegistry reads the registry for the project at root, returning an
// empty one when none exists yet.
func LoadRegistry(root string) (*Registry, error) {
	path := filepath.Join(root, filepath.FromSlash(registryFile))

	reg := &Registry{
		path:    path,
		Plugins: make(map[string]RegistryEntry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, reg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if reg.Plugins == nil {
		reg.Plugins = make(map[string]RegistryEntry)
	}

	return reg, nil
}

// Get returns the entry for a plugin id.
func (r *Registry) Get(id string) (RegistryEntry, bool) {
	entry, ok := r.Plugins[id]
	return entry, ok
}

// Put records an installed plugin, replacing any previous entry. Duplicate
// installs are not deduplicated; the latest install wins.
func (r *Registry) Put(entry RegistryEntry) {
	r.Plugins[entry.ID] = entry
}

// Remove drops a plugin entry.
func (r *Registry) Remove(id string) {
	delete(r.Plugins, id)
}

// IDs returns installed plugin ids in stable order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.Plugins))
	for id := range r.Plugins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FrameworkSpecs collects the framework dependencies of every installed
// plugin, in stable order, for build-file regeneration.
func (r *Registry) FrameworkSpecs() []string {
	var specs []string
	for _, id := range r.IDs() {
		specs = append(specs, r.Plugins[id].Frameworks...)
	}
	return specs
}

// Save writes the registry back to disk.
func (r *Registry) Save() error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to serialize plugin registry: %w", err)
	}

	return utils.WriteFileAtomic(r.path, data, 0644)
}
