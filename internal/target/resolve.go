package target

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/canseyran/create-ts-cli-app/internal/model"
)

// ignorableEntries do not make a directory count as non-empty.
var ignorableEntries = map[string]bool{
	".git":      true,
	".DS_Store": true,
	"Thumbs.db": true,
}

// Resolve turns a valid result into an absolute target path.
//
// The "." sentinel resolves to cwd itself. A named target is joined onto
// cwd and must stay a strict descendant of it; Validate already rejects
// separators, so an escape here means the platform interpreted the name
// in a way Validate did not anticipate.
func Resolve(result ValidationResult, cwd string) (string, error) {
	base, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("resolving working directory %s: %w", cwd, err)
	}

	switch result.Kind {
	case KindCurrentDir:
		return base, nil
	case KindNamed:
		path := filepath.Join(base, result.Name)
		if !isDescendant(base, path) {
			return "", model.NewCLIError(model.ErrPathEscapesWorkingDirectory, result.Name)
		}
		return path, nil
	default:
		return "", errors.New("cannot resolve an invalid project directory")
	}
}

// isDescendant reports whether path lies strictly below base.
func isDescendant(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	if rel == "." || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// CheckCollision refuses targets that already hold work.
//
// A missing path or an empty directory is accepted. Entries such as .git
// do not count, so `git init && create-ts-cli-app .` works. Anything else,
// including a regular file at path, fails with ErrDirectoryAlreadyExists.
// The same policy applies to the current directory and to named targets.
func CheckCollision(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("inspecting %s: %w", path, err)
	}

	if !info.IsDir() {
		return model.NewCLIError(model.ErrDirectoryAlreadyExists, path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	for _, e := range entries {
		if !ignorableEntries[e.Name()] {
			return model.NewCLIError(model.ErrDirectoryAlreadyExists, path)
		}
	}
	return nil
}

// CheckOverlap refuses a template directory that is the target, lies
// inside it, or contains it. Copying in any of those shapes either walks
// into its own output or truncates template files while reading them.
//
// Both paths are compared after resolving symlinks, so a link to the
// working directory is caught too. The target does not have to exist yet.
func CheckOverlap(templateDir, path string) error {
	src, err := canonicalPath(templateDir)
	if err != nil {
		return model.WrapCLIError(model.ErrConfigFailure, "template directory "+templateDir, err)
	}
	dst, err := canonicalPath(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	if src == dst || isDescendant(src, dst) || isDescendant(dst, src) {
		return model.NewCLIError(model.ErrConfigFailure,
			fmt.Sprintf("template directory %s overlaps the project directory %s", templateDir, path))
	}
	return nil
}

// canonicalPath returns the absolute, symlink-free form of p. Missing
// trailing components are kept as written below the deepest existing parent.
func canonicalPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}

	var missing []string
	for {
		resolved, err := filepath.EvalSymlinks(abs)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", err
		}
		missing = append(missing, filepath.Base(abs))
		abs = parent
	}
}
