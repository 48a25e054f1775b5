package template

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed files
var bundledFS embed.FS

// DescriptorFile is the template-root file read by LoadDescriptor.
// It is never copied into the project.
const DescriptorFile = "template.yaml"

// DefaultManifest is the manifest file name used when the descriptor
// does not name one.
const DefaultManifest = "package.json"

// DefaultExclude lists path segments that are never copied: build and
// dependency output, plus version-control metadata of cloned templates.
var DefaultExclude = []string{"node_modules", "dist", ".git"}

// Descriptor is the parsed form of template.yaml.
type Descriptor struct {
	// Manifest is the slash-separated path of the JSON manifest whose
	// name field is rewritten.
	Manifest string `yaml:"manifest"`

	// Exclude lists extra path segments (or slash-separated sub-paths)
	// to skip, on top of DefaultExclude.
	Exclude []string `yaml:"exclude"`

	// Rename maps template-relative paths to project-relative paths.
	// Renaming a directory moves its whole subtree.
	Rename map[string]string `yaml:"rename"`
}

// Bundled returns the template compiled into the binary.
func Bundled() fs.FS {
	sub, err := fs.Sub(bundledFS, "files")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}

// Dir returns a template rooted at a directory on disk.
func Dir(path string) (fs.FS, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template %s is not a directory", path)
	}
	return os.DirFS(path), nil
}

// LoadDescriptor reads template.yaml from the template root.
// A template without a descriptor gets the defaults: package.json as the
// manifest and gitignore renamed to .gitignore.
func LoadDescriptor(src fs.FS) (*Descriptor, error) {
	d := &Descriptor{}

	data, err := fs.ReadFile(src, DescriptorFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No descriptor: defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", DescriptorFile, err)
	default:
		if err := yaml.Unmarshal(data, d); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", DescriptorFile, err)
		}
	}

	if d.Manifest == "" {
		d.Manifest = DefaultManifest
	}
	if d.Rename == nil {
		d.Rename = map[string]string{"gitignore": ".gitignore"}
	}
	for from, to := range d.Rename {
		if !fs.ValidPath(from) || !fs.ValidPath(to) {
			return nil, fmt.Errorf("%s: invalid rename %q -> %q", DescriptorFile, from, to)
		}
	}
	if !fs.ValidPath(d.Manifest) {
		return nil, fmt.Errorf("%s: invalid manifest path %q", DescriptorFile, d.Manifest)
	}
	return d, nil
}

// CopyOptions builds the options for Copy from the descriptor plus any
// caller-supplied exclusions.
func (d *Descriptor) CopyOptions(extraExclude ...string) CopyOptions {
	exclude := make([]string, 0, len(DefaultExclude)+len(d.Exclude)+len(extraExclude))
	exclude = append(exclude, DefaultExclude...)
	exclude = append(exclude, d.Exclude...)
	exclude = append(exclude, extraExclude...)
	return CopyOptions{Exclude: exclude, Rename: d.Rename}
}
