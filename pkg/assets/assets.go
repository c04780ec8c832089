// Package assets synchronizes the application's web content into the
// platform project and generates launcher icons.
package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wildabeast/cordova-android/internal/errors"
	"github.com/wildabeast/cordova-android/pkg/project"
	"github.com/wildabeast/cordova-android/pkg/utils"
)

// Preparer copies web assets into one platform project.
type Preparer struct {
	loc *project.Locations
	log utils.Logger
}

// NewPreparer creates a Preparer.
func NewPreparer(loc *project.Locations, log utils.Logger) *Preparer {
	if log == nil {
		log = utils.NopLogger{}
	}
	return &Preparer{loc: loc, log: log}
}

// Options controls one prepare pass.
type Options struct {
	// WWWDir is the web asset directory name inside the app root.
	WWWDir string
	// IconSource is a launcher icon path relative to the app root; empty
	// skips icon generation.
	IconSource string
}

// Prepare replaces the project's www tree with the app's web assets and
// regenerates launcher icons when a source icon is configured.
func (p *Preparer) Prepare(appRoot string, opts Options) error {
	wwwDir := opts.WWWDir
	if wwwDir == "" {
		wwwDir = "www"
	}

	src := filepath.Join(appRoot, wwwDir)
	if !utils.IsDir(src) {
		return errors.NewNotFoundError("NO_WWW",
			fmt.Sprintf("web asset directory does not exist: %s", src))
	}

	p.log.Info("Copying web assets from %s", src)

	if err := os.RemoveAll(p.loc.WWW); err != nil {
		return fmt.Errorf("failed to remove %s: %w", p.loc.WWW, err)
	}
	if err := utils.CopyDir(src, p.loc.WWW); err != nil {
		return err
	}

	if opts.IconSource != "" {
		icon := filepath.Join(appRoot, opts.IconSource)
		if err := p.GenerateIcons(icon); err != nil {
			return err
		}
	}

	return nil
}

// CleanWWW removes the prepared web assets from the project.
func (p *Preparer) CleanWWW() error {
	return os.RemoveAll(p.loc.WWW)
}
