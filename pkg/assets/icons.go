package assets

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"

	_ "image/jpeg"

	_ "golang.org/x/image/webp"
)

// iconDensities maps the res directory suffix to the launcher icon size in
// pixels for that density bucket.
var iconDensities = map[string]uint{
	"mdpi":    48,
	"hdpi":    72,
	"xhdpi":   96,
	"xxhdpi":  144,
	"xxxhdpi": 192,
}

// GenerateIcons scales the source image into every density bucket as
// res/mipmap-<density>/ic_launcher.png.
func (p *Preparer) GenerateIcons(srcPath string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open icon %s: %w", srcPath, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode icon %s: %w", srcPath, err)
	}
	p.log.Debug("Generating launcher icons from %s (%s)", srcPath, format)

	for density, size := range iconDensities {
		scaled := resize.Resize(size, size, img, resize.Lanczos3)

		dir := filepath.Join(p.loc.Res, "mipmap-"+density)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}

		target := filepath.Join(dir, "ic_launcher.png")
		out, err := os.Create(target)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", target, err)
		}

		if err := png.Encode(out, scaled); err != nil {
			out.Close()
			return fmt.Errorf("failed to encode %s: %w", target, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", target, err)
		}
	}

	return nil
}
