// Package project scaffolds and maintains the on-disk Android project an
// application is packaged into.
package project

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/wildabeast/cordova-android/internal/errors"
	"github.com/wildabeast/cordova-android/pkg/manifest"
	"github.com/wildabeast/cordova-android/pkg/utils"
)

// MinSDKVersion is the floor enforced on update: a manifest declaring a
// lower minimum is raised to this value.
const MinSDKVersion = 19

// FrameworkName is the directory name of the shared framework inside a
// generated project, and the value of its library reference.
const FrameworkName = "CordovaLib"

//go:embed templates
var templateFS embed.FS

// Scaffolder creates and updates platform projects from the template store.
type Scaffolder struct {
	log utils.Logger

	// FrameworkDir optionally points at an on-disk shared framework used
	// instead of the embedded one. Linking requires it.
	FrameworkDir string
}

// NewScaffolder creates a Scaffolder.
func NewScaffolder(log utils.Logger) *Scaffolder {
	if log == nil {
		log = utils.NopLogger{}
	}
	return &Scaffolder{log: log}
}

// CreateOptions controls project creation.
type CreateOptions struct {
	// Link symlinks the shared framework instead of copying it. Only
	// honored when the scaffolder has an on-disk FrameworkDir.
	Link bool
}

// UpdateOptions controls project refresh.
type UpdateOptions struct {
	Link bool
}

// templateData is the substitution context for template rendering.
type templateData struct {
	ProjectName  string
	PackageName  string
	ActivityName string
	TargetAPI    int
	MinSDK       int
}

// Create scaffolds a new project at dest. Validation happens before any
// filesystem mutation; a failure leaves dest untouched. Returns the created
// project root.
func (s *Scaffolder) Create(dest string, cfg *Config, opts CreateOptions) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	if utils.Exists(dest) {
		return "", errors.NewValidationError("PATH_EXISTS",
			fmt.Sprintf("destination already exists: %s", dest))
	}

	data := templateData{
		ProjectName:  SanitizeName(cfg.Name),
		PackageName:  cfg.PackageName,
		ActivityName: cfg.ActivityName,
		TargetAPI:    cfg.TargetAPI,
		MinSDK:       MinSDKVersion,
	}

	s.log.Info("Creating Cordova project for the Android platform:")
	s.log.Info("\tPath: %s", dest)
	s.log.Info("\tPackage: %s", cfg.PackageName)
	s.log.Info("\tName: %s", data.ProjectName)
	s.log.Info("\tActivity: %s", cfg.ActivityName)

	if err := s.renderTree("templates/project", dest, data); err != nil {
		return "", err
	}

	loc := NewStudioLocations(dest)

	if err := s.writeActivity(loc, data); err != nil {
		return "", err
	}

	// The rendered manifest is passed back through the editor so the same
	// code path enforces identity and SDK fields on create and update.
	m, err := manifest.Load(loc.Manifest)
	if err != nil {
		return "", err
	}
	m.SetPackageID(cfg.PackageName).
		SetMinSDKVersion(MinSDKVersion).
		SetTargetSDKVersion(cfg.TargetAPI).
		SetDebuggable(false)
	if act := m.LaunchActivity(); act != nil {
		act.SetName(cfg.ActivityName)
	}
	if err := m.Write(); err != nil {
		return "", err
	}

	if err := s.installFramework(loc, opts.Link); err != nil {
		return "", err
	}

	if err := s.writeProperties(loc, cfg.TargetAPI); err != nil {
		return "", err
	}

	if err := s.writeScripts(loc); err != nil {
		return "", err
	}

	s.log.Info("Android project created with cordova-android")
	return dest, nil
}

// Update refreshes script and build files of an existing project without
// re-deriving identity fields or touching user sources. It also raises the
// manifest's minimum SDK to the floor and forces debuggable off.
func (s *Scaffolder) Update(root string, opts UpdateOptions) error {
	loc := NewLocations(root)

	if !utils.Exists(loc.Manifest) {
		return errors.NewNotFoundError("NO_PROJECT",
			fmt.Sprintf("no Android project found at %s", root))
	}

	s.log.Info("Updating Android project at %s (%s layout)", root, loc.Layout)

	for _, name := range []string{"build.gradle", "gradle.properties"} {
		data, err := templateFS.ReadFile(path.Join("templates/project", name))
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", name, err)
		}
		if err := utils.WriteFileAtomic(filepath.Join(root, name), data, 0644); err != nil {
			return err
		}
	}

	if err := s.installFramework(loc, opts.Link); err != nil {
		return err
	}

	props, err := LoadProjectProperties(loc.Properties)
	if err != nil {
		return err
	}
	props.ResetFrameworkRef(FrameworkName)
	if err := props.Write(); err != nil {
		return err
	}

	if err := s.writeScripts(loc); err != nil {
		return err
	}

	m, err := manifest.Load(loc.Manifest)
	if err != nil {
		return err
	}
	if min := m.MinSDKVersion(); min < MinSDKVersion {
		s.log.Warn("Raising minSdkVersion from %d to %d", min, MinSDKVersion)
		m.SetMinSDKVersion(MinSDKVersion)
	}
	m.SetDebuggable(false)
	return m.Write()
}

// renderTree copies an embedded template tree to dest, rendering files with
// a .tmpl suffix and copying everything else verbatim.
func (s *Scaffolder) renderTree(srcRoot, dest string, data templateData) error {
	return fs.WalkDir(templateFS, srcRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, srcRoot+"/")
		target := filepath.Join(dest, filepath.FromSlash(rel))

		raw, err := templateFS.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", p, err)
		}

		if strings.HasSuffix(target, ".tmpl") {
			target = strings.TrimSuffix(target, ".tmpl")
			raw, err = renderTemplate(p, raw, data)
			if err != nil {
				return err
			}
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
		}
		return os.WriteFile(target, raw, 0644)
	})
}

// renderTemplate executes a single template with the sprig helper set.
func renderTemplate(name string, raw []byte, data templateData) ([]byte, error) {
	tmpl, err := template.New(path.Base(name)).Funcs(sprig.TxtFuncMap()).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// writeActivity renders the launch activity stub into the package directory.
func (s *Scaffolder) writeActivity(loc *Locations, data templateData) error {
	raw, err := templateFS.ReadFile("templates/activity/Activity.java.tmpl")
	if err != nil {
		return fmt.Errorf("failed to read activity template: %w", err)
	}

	rendered, err := renderTemplate("Activity.java.tmpl", raw, data)
	if err != nil {
		return err
	}

	pkgPath := strings.ReplaceAll(data.PackageName, ".", string(filepath.Separator))
	target := filepath.Join(loc.JavaSrc, pkgPath, data.ActivityName+".java")

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
	}
	return os.WriteFile(target, rendered, 0644)
}

// installFramework places the shared framework at loc.Framework, linking
// when requested and possible, copying otherwise.
func (s *Scaffolder) installFramework(loc *Locations, link bool) error {
	if s.FrameworkDir != "" {
		if link {
			s.log.Debug("Linking framework from %s", s.FrameworkDir)
		}
		return utils.LinkOrCopyDir(s.FrameworkDir, loc.Framework, link)
	}

	if link {
		s.log.Warn("--link requires an on-disk framework; copying the bundled one instead")
	}

	if err := os.RemoveAll(loc.Framework); err != nil {
		return fmt.Errorf("failed to remove %s: %w", loc.Framework, err)
	}

	return fs.WalkDir(templateFS, "templates/cordovalib", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, "templates/cordovalib/")
		target := filepath.Join(loc.Framework, filepath.FromSlash(rel))

		raw, err := templateFS.ReadFile(p)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		return os.WriteFile(target, raw, 0644)
	})
}

// writeProperties writes project.properties with the framework reference
// first and stale references pruned.
func (s *Scaffolder) writeProperties(loc *Locations, targetAPI int) error {
	props, err := LoadProjectProperties(loc.Properties)
	if err != nil {
		return err
	}

	props.SetTarget(targetAPI)
	props.ResetFrameworkRef(FrameworkName)
	return props.Write()
}

// writeScripts copies the in-project command scripts, mirroring the tool's
// own command surface for in-project invocation.
func (s *Scaffolder) writeScripts(loc *Locations) error {
	entries, err := templateFS.ReadDir("templates/scripts")
	if err != nil {
		return fmt.Errorf("failed to read scripts: %w", err)
	}

	for _, entry := range entries {
		raw, err := templateFS.ReadFile(path.Join("templates/scripts", entry.Name()))
		if err != nil {
			return err
		}

		target := filepath.Join(loc.Scripts, entry.Name())
		if err := os.MkdirAll(loc.Scripts, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", loc.Scripts, err)
		}
		if err := os.WriteFile(target, raw, 0755); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
	}

	return nil
}
