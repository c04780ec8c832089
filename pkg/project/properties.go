package project

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/magiconair/properties"

	"github.com/wildabeast/cordova-android/pkg/utils"
)

// libraryRefPrefix is the key prefix for sub-library references in
// project.properties. References are numbered from 1; the first entry is
// always the shared framework.
const libraryRefPrefix = "android.library.reference."

// ProjectProperties wraps the generated project.properties file.
type ProjectProperties struct {
	props *properties.Properties
	path  string
}

// LoadProjectProperties reads project.properties from path. A missing file
// yields an empty document bound to the same path.
func LoadProjectProperties(path string) (*ProjectProperties, error) {
	if !utils.Exists(path) {
		return &ProjectProperties{props: properties.NewProperties(), path: path}, nil
	}

	props, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return &ProjectProperties{props: props, path: path}, nil
}

// Target returns the android platform target, e.g. "android-34".
func (p *ProjectProperties) Target() string {
	return p.props.GetString("target", "")
}

// SetTarget sets the android platform target from an API level.
func (p *ProjectProperties) SetTarget(api int) {
	p.props.Set("target", fmt.Sprintf("android-%d", api))
}

// LibraryRefs returns the ordered list of sub-library reference paths.
func (p *ProjectProperties) LibraryRefs() []string {
	type ref struct {
		n    int
		path string
	}

	var refs []ref
	for _, key := range p.props.Keys() {
		if !strings.HasPrefix(key, libraryRefPrefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(key, libraryRefPrefix))
		if err != nil {
			continue
		}
		value, _ := p.props.Get(key)
		refs = append(refs, ref{n: n, path: value})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].n < refs[j].n })

	paths := make([]string, 0, len(refs))
	for _, r := range refs {
		paths = append(paths, r.path)
	}
	return paths
}

// ResetFrameworkRef prunes stale references to the shared framework and
// prepends a fresh one, renumbering the remaining references after it.
func (p *ProjectProperties) ResetFrameworkRef(framework string) {
	var kept []string
	for _, ref := range p.LibraryRefs() {
		if ref == framework {
			continue
		}
		kept = append(kept, ref)
	}

	for _, key := range p.props.Keys() {
		if strings.HasPrefix(key, libraryRefPrefix) {
			p.props.Delete(key)
		}
	}

	p.props.Set(libraryRefPrefix+"1", framework)
	for i, ref := range kept {
		p.props.Set(fmt.Sprintf("%s%d", libraryRefPrefix, i+2), ref)
	}
}

// AddLibraryRef appends a sub-library reference unless it is already listed.
func (p *ProjectProperties) AddLibraryRef(path string) {
	refs := p.LibraryRefs()
	for _, ref := range refs {
		if ref == path {
			return
		}
	}
	p.props.Set(fmt.Sprintf("%s%d", libraryRefPrefix, len(refs)+1), path)
}

// RemoveLibraryRef deletes a sub-library reference and renumbers the rest.
func (p *ProjectProperties) RemoveLibraryRef(path string) {
	var kept []string
	for _, ref := range p.LibraryRefs() {
		if ref == path {
			continue
		}
		kept = append(kept, ref)
	}

	for _, key := range p.props.Keys() {
		if strings.HasPrefix(key, libraryRefPrefix) {
			p.props.Delete(key)
		}
	}

	for i, ref := range kept {
		p.props.Set(fmt.Sprintf("%s%d", libraryRefPrefix, i+1), ref)
	}
}

// Write serializes the whole document back to its path in one pass.
func (p *ProjectProperties) Write() error {
	var buf bytes.Buffer
	if _, err := p.props.Write(&buf, properties.UTF8); err != nil {
		return fmt.Errorf("failed to serialize %s: %w", p.path, err)
	}

	return utils.WriteFileAtomic(p.path, buf.Bytes(), 0644)
}

// WriteTo serializes the document to an alternate path.
func (p *ProjectProperties) WriteTo(path string) error {
	var buf bytes.Buffer
	if _, err := p.props.Write(&buf, properties.UTF8); err != nil {
		return fmt.Errorf("failed to serialize %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
