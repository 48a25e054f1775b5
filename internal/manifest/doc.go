// Package manifest rewrites and checks the package.json of a generated project.
//
// Patch replaces the top-level "name" field and leaves every other field
// as it was, in its original order, re-indented with two spaces. Comments
// (JSONC) are tolerated on input via github.com/tidwall/jsonc and dropped
// on output, because npm rejects them.
//
// Validate reports npm-level problems (an unpublishable name, a version
// that is not semver) as warnings. A scaffolded project is still usable
// with such a manifest, so nothing here is fatal.
package manifest
