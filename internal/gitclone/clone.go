package gitclone

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/canseyran/create-ts-cli-app/internal/model"
)

// Cloner clones template repositories with the git CLI.
type Cloner struct {
	// GitPath is the git executable. Empty means "git" from PATH.
	GitPath string
}

// NewCloner creates a Cloner that uses git from PATH.
func NewCloner() *Cloner {
	return &Cloner{}
}

// Clone makes a shallow clone of repoURL into dest, which must not exist
// or be empty. If ref is non-empty, that branch or tag is checked out
// instead of the remote's default branch.
//
// Returns a CLIError with ErrCloneFailure including git's stderr.
func (c *Cloner) Clone(ctx context.Context, repoURL, ref, dest string) error {
	args := []string{"clone", "--depth", "1", "--quiet"}
	if ref != "" {
		args = append(args, "--branch", ref)
	}
	// "--" stops option parsing, so a URL starting with "-" cannot be
	// mistaken for a flag.
	args = append(args, "--", repoURL, dest)

	if _, err := c.runGit(ctx, args...); err != nil {
		return model.WrapCLIError(model.ErrCloneFailure, repoURL, err)
	}
	return nil
}

// HeadCommit returns the commit SHA checked out in dir.
func (c *Cloner) HeadCommit(ctx context.Context, dir string) (string, error) {
	out, err := c.runGit(ctx, "-C", dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// runGit executes a git command and returns its stdout.
//
// On failure, the error message contains the git subcommand and its
// trimmed stderr for diagnostics.
func (c *Cloner) runGit(ctx context.Context, args ...string) (string, error) {
	gitPath := c.GitPath
	if gitPath == "" {
		gitPath = "git"
	}

	// #nosec G204: arguments are assembled here, the URL follows "--"
	cmd := exec.CommandContext(ctx, gitPath, args...)
	// Never block on a credential prompt.
	cmd.Env = append(cmd.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("git %s failed", args[0])
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", fmt.Errorf("%s: %w", message, err)
	}
	return stdout.String(), nil
}
