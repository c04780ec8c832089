package pluginman

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/wildabeast/cordova-android/internal/errors"
	"github.com/wildabeast/cordova-android/pkg/manifest"
	"github.com/wildabeast/cordova-android/pkg/project"
	"github.com/wildabeast/cordova-android/pkg/utils"
)

// PackageNameVar is the variable guaranteed to be present in every
// install's substitution map.
const PackageNameVar = "PACKAGE_NAME"

// Cleaner removes build artifacts only; it never touches prepared web
// assets. Wired in by the facade so plugin changes can flush stale build
// output before the build tool sees them.
type Cleaner interface {
	CleanArtifacts() error
}

// InstallRequest describes one plugin installation. It is consumed by a
// single AddPlugin call.
type InstallRequest struct {
	// Dir is the plugin source directory containing plugin.xml.
	Dir string
	// Variables is the name to value substitution map. PACKAGE_NAME is
	// filled in from the project manifest when absent.
	Variables map[string]string
	// Link symlinks plugin files into the project instead of copying.
	// Linked files receive no content substitution.
	Link bool
}

// RemoveRequest describes one plugin removal.
type RemoveRequest struct {
	ID string
}

// Orchestrator installs and removes plugins in one platform project.
type Orchestrator struct {
	log     utils.Logger
	loc     *project.Locations
	cleaner Cleaner
}

// NewOrchestrator creates an Orchestrator for the project described by loc.
func NewOrchestrator(loc *project.Locations, cleaner Cleaner, log utils.Logger) *Orchestrator {
	if log == nil {
		log = utils.NopLogger{}
	}
	return &Orchestrator{log: log, loc: loc, cleaner: cleaner}
}

var varPattern = regexp.MustCompile(`\$([A-Z][A-Z0-9_]*)`)

// substituteVars expands $NAME references from the variable map. Unknown
// names are left as-is.
func substituteVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		if value, ok := vars[match[1:]]; ok {
			return value
		}
		return match
	})
}

// substitutable reports whether a file's contents take variable
// substitution during copy.
func substitutable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".java", ".kt", ".xml", ".gradle", ".json", ".properties":
		return true
	}
	return false
}

// AddPlugin installs a plugin's native assets. It returns true on success
// so callers can skip a redundant prepare pass. Duplicate installs are not
// deduplicated; files are copied again and the registry keeps the latest.
func (o *Orchestrator) AddPlugin(req InstallRequest) (bool, error) {
	plugin, err := LoadPlugin(req.Dir)
	if err != nil {
		return false, err
	}

	vars := make(map[string]string, len(req.Variables)+1)
	for k, v := range req.Variables {
		vars[k] = v
	}
	if _, ok := vars[PackageNameVar]; !ok {
		m, err := manifest.Load(o.loc.Manifest)
		if err != nil {
			return false, err
		}
		vars[PackageNameVar] = m.PackageID()
	}

	// Stale build output confuses the legacy build tooling once plugin
	// sources change underneath it; flush artifacts first. The Studio
	// layout keeps module outputs isolated and does not need this.
	if o.loc.HasBuildOutput() && o.loc.Layout != project.LayoutStudio && o.cleaner != nil {
		o.log.Debug("Flushing stale build output before plugin install")
		if err := o.cleaner.CleanArtifacts(); err != nil {
			return false, err
		}
	}

	o.log.Info("Installing %q for android", plugin.ID)

	files, err := o.installFiles(plugin, vars, req.Link)
	if err != nil {
		return false, err
	}

	reg, err := LoadRegistry(o.loc.Root)
	if err != nil {
		return false, err
	}

	entry := RegistryEntry{
		ID:        plugin.ID,
		Version:   plugin.Version,
		Variables: vars,
		Files:     files,
	}
	for _, fw := range plugin.Frameworks {
		entry.Frameworks = append(entry.Frameworks, fw.Src)
	}
	reg.Put(entry)
	if err := reg.Save(); err != nil {
		return false, err
	}

	if plugin.HasFrameworks() {
		o.log.Debug("Plugin %q declares framework dependencies; regenerating build files", plugin.ID)
		if err := o.regenerateBuildFiles(reg); err != nil {
			return false, err
		}
	}

	return true, nil
}

// RemovePlugin removes an installed plugin's files, keyed by the identity
// used at install time.
func (o *Orchestrator) RemovePlugin(req RemoveRequest) (bool, error) {
	reg, err := LoadRegistry(o.loc.Root)
	if err != nil {
		return false, err
	}

	entry, ok := reg.Get(req.ID)
	if !ok {
		return false, errors.NewNotFoundError("PLUGIN_NOT_INSTALLED",
			fmt.Sprintf("plugin %q is not installed in this project", req.ID))
	}

	o.log.Info("Uninstalling %q from android", req.ID)

	for _, rel := range entry.Files {
		path := filepath.Join(o.loc.Root, filepath.FromSlash(rel))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return false, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		o.pruneEmptyDirs(filepath.Dir(path))
	}

	reg.Remove(req.ID)
	if err := reg.Save(); err != nil {
		return false, err
	}

	if len(entry.Frameworks) > 0 {
		o.log.Debug("Plugin %q declared framework dependencies; regenerating build files", req.ID)
		if err := o.regenerateBuildFiles(reg); err != nil {
			return false, err
		}
	}

	return true, nil
}

// installFiles copies every declared plugin file into the project and
// returns the root-relative destinations that were written.
func (o *Orchestrator) installFiles(plugin *Plugin, vars map[string]string, link bool) ([]string, error) {
	var installed []string

	record := func(dst string) error {
		rel, err := filepath.Rel(o.loc.Root, dst)
		if err != nil {
			return err
		}
		installed = append(installed, filepath.ToSlash(rel))
		return nil
	}

	for _, sf := range plugin.SourceFiles {
		src := filepath.Join(plugin.Dir, filepath.FromSlash(sf.Src))

		targetDir := substituteVars(sf.TargetDir, vars)
		targetDir = strings.TrimPrefix(filepath.ToSlash(targetDir), "src/")
		dst := filepath.Join(o.loc.JavaSrc, filepath.FromSlash(targetDir), filepath.Base(src))

		if err := o.placeFile(src, dst, vars, link); err != nil {
			return installed, err
		}
		if err := record(dst); err != nil {
			return installed, err
		}
	}

	for _, rf := range plugin.ResourceFiles {
		src := filepath.Join(plugin.Dir, filepath.FromSlash(rf.Src))

		target := substituteVars(rf.Target, vars)
		var dst string
		if rest, ok := strings.CutPrefix(filepath.ToSlash(target), "res/"); ok {
			dst = filepath.Join(o.loc.Res, filepath.FromSlash(rest))
		} else {
			dst = filepath.Join(o.loc.Root, filepath.FromSlash(target))
		}

		if err := o.placeFile(src, dst, vars, link); err != nil {
			return installed, err
		}
		if err := record(dst); err != nil {
			return installed, err
		}
	}

	for _, lf := range plugin.LibFiles {
		src := filepath.Join(plugin.Dir, filepath.FromSlash(lf.Src))
		dst := filepath.Join(o.loc.Libs, filepath.Base(src))

		// Binary payloads are never substituted.
		if err := o.placeFile(src, dst, nil, link); err != nil {
			return installed, err
		}
		if err := record(dst); err != nil {
			return installed, err
		}
	}

	return installed, nil
}

// placeFile links or copies one plugin file into the project, substituting
// variables in text content when copying.
func (o *Orchestrator) placeFile(src, dst string, vars map[string]string, link bool) error {
	if !utils.Exists(src) {
		return errors.NewFileSystemError("PLUGIN_FILE_MISSING",
			fmt.Sprintf("plugin file does not exist: %s", src))
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}

	if link {
		abs, err := filepath.Abs(src)
		if err != nil {
			return err
		}
		os.Remove(dst)
		return os.Symlink(abs, dst)
	}

	if vars != nil && substitutable(src) {
		raw, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", src, err)
		}
		return os.WriteFile(dst, []byte(substituteVars(string(raw), vars)), 0644)
	}

	return utils.CopyFile(src, dst)
}

// pruneEmptyDirs removes now-empty directories left behind by an uninstall,
// walking up but never past the project root.
func (o *Orchestrator) pruneEmptyDirs(dir string) {
	for {
		if dir == o.loc.Root || len(dir) <= len(o.loc.Root) {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
