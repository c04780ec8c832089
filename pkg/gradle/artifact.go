package gradle

import (
	"path/filepath"
	"strings"

	"github.com/shogo82148/androidbinary/apk"
)

// knownABIs are the architecture segments gradle embeds in split APK names.
var knownABIs = []string{"arm64-v8a", "armeabi-v7a", "x86_64", "x86"}

// collectArtifacts walks the output directories for the requested build
// type and describes every APK found.
func (b *GradleBuilder) collectArtifacts(t BuildType) ([]BuildArtifact, error) {
	seen := make(map[string]bool)
	var artifacts []BuildArtifact

	for _, dir := range b.outputDirs(t) {
		matches, err := filepath.Glob(filepath.Join(dir, "*.apk"))
		if err != nil {
			continue
		}

		for _, path := range matches {
			if seen[path] {
				continue
			}
			seen[path] = true
			artifacts = append(artifacts, b.describeArtifact(path, t))
		}
	}

	return artifacts, nil
}

// describeArtifact builds an artifact record for one APK, enriching it from
// the binary manifest when the file parses. Parse failures are non-fatal;
// the path and build type are always reported.
func (b *GradleBuilder) describeArtifact(path string, t BuildType) BuildArtifact {
	artifact := BuildArtifact{
		Path:   path,
		Type:   t.String(),
		Method: "gradle",
		Arch:   archFromName(filepath.Base(path)),
	}

	pkg, err := apk.OpenFile(path)
	if err != nil {
		b.log.Debug("Could not parse %s: %v", path, err)
		return artifact
	}
	defer pkg.Close()

	manifest := pkg.Manifest()
	artifact.PackageID, _ = manifest.Package.String()
	artifact.VersionName, _ = manifest.VersionName.String()
	if code, err := manifest.VersionCode.Int32(); err == nil {
		artifact.VersionCode = int64(code)
	}

	return artifact
}

// archFromName extracts the ABI segment from a split APK filename, e.g.
// app-arm64-v8a-debug.apk. Universal APKs have none.
func archFromName(name string) string {
	for _, abi := range knownABIs {
		if strings.Contains(name, abi) {
			return abi
		}
	}
	return ""
}
