// Package template materializes a project template into a target directory.
//
// A template is any fs.FS: the tree bundled into the binary, a directory on
// disk, or a temporary git checkout. An optional template.yaml descriptor at
// the template root lists extra exclusions, files to rename on the way out
// (npm strips .gitignore from published packages, so templates ship it as
// "gitignore"), and the manifest file name.
package template
