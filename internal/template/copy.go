package template

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// CopyOptions controls which template entries are copied and where.
type CopyOptions struct {
	// Exclude holds path segments ("node_modules") and slash-separated
	// sub-paths ("src/generated"). A matching directory is skipped with
	// all of its descendants.
	Exclude []string

	// Rename maps template-relative paths to project-relative paths.
	// A directory entry moves everything below it.
	Rename map[string]string
}

// CopyStats counts what Copy wrote.
type CopyStats struct {
	Files int
	Dirs  int
}

// Copy recursively copies src into dstDir, creating dstDir if needed.
//
// The root template.yaml is never copied. Symbolic links are skipped to
// keep the copy predictable. Files are written at least 0644, since embedded
// files report read-only modes; executable bits of disk templates survive.
// Existing files in dstDir are overwritten.
func Copy(src fs.FS, dstDir string, opts CopyOptions) (CopyStats, error) {
	var stats CopyStats

	// Create the root up front so an empty template still yields a directory.
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return stats, fmt.Errorf("failed to create directory %s: %w", dstDir, err)
	}

	// WalkDir visits entries in lexical order, parents before children, so
	// directories always exist before their files are written.

	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error walking template at %s: %w", p, walkErr)
		}
		if p == "." {
			return nil
		}

		// Returning fs.SkipDir drops an excluded directory with its whole
		// subtree. Only the root descriptor is skipped; nested template.yaml
		// files are ordinary content.
		if isExcluded(p, opts.Exclude) || p == DescriptorFile {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		// Symlinks could point outside the template; they are skipped
		// rather than followed.
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		dstPath := filepath.Join(dstDir, filepath.FromSlash(renamePath(p, opts.Rename)))

		if d.IsDir() {
			if err := os.MkdirAll(dstPath, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dstPath, err)
			}
			stats.Dirs++
			return nil
		}

		// Devices, sockets and pipes have no place in a project template.
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", dstPath, err)
		}
		if err := copyFile(src, p, dstPath, info.Mode().Perm()|0644); err != nil {
			return err
		}
		stats.Files++
		return nil
	})
	return stats, err
}

// isExcluded reports whether the slash-separated path p matches an
// exclusion, either as one of its segments or as a sub-path prefix.
func isExcluded(p string, exclude []string) bool {
	segments := strings.Split(p, "/")
	for _, ex := range exclude {
		ex = strings.Trim(path.Clean(ex), "/")
		if ex == "" || ex == "." {
			continue
		}
		if strings.Contains(ex, "/") {
			if p == ex || strings.HasPrefix(p, ex+"/") {
				return true
			}
			continue
		}
		for _, seg := range segments {
			if seg == ex {
				return true
			}
		}
	}
	return false
}

// renamePath applies the longest rename whose source is p itself or one
// of its parent directories, keeping the remainder of p. Rename keys are
// clean slash paths (LoadDescriptor enforces fs.ValidPath).
func renamePath(p string, rename map[string]string) string {
	best := ""
	for from := range rename {
		if p != from && !strings.HasPrefix(p, from+"/") {
			continue
		}
		if len(from) > len(best) {
			best = from
		}
	}
	if best == "" {
		return p
	}
	return rename[best] + p[len(best):]
}

// copyFile streams a single file out of src into dst with the given mode.
func copyFile(src fs.FS, name, dst string, mode fs.FileMode) error {
	srcFile, err := src.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open template file %s: %w", name, err)
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dst, err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", name, dst, err)
	}
	return dstFile.Close()
}
