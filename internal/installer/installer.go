package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/canseyran/create-ts-cli-app/internal/model"
)

// DefaultManager is the package manager used when none is configured.
const DefaultManager = "npm"

// managers maps each supported package manager to its install arguments.
var managers = map[string][]string{
	"npm":  {"install"},
	"pnpm": {"install"},
	"yarn": {"install"},
	"bun":  {"install"},
}

// Managers returns the supported package manager names, sorted.
func Managers() []string {
	names := make([]string, 0, len(managers))
	for name := range managers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateManager returns a config error for an unsupported package manager.
func ValidateManager(name string) error {
	if _, ok := managers[name]; !ok {
		return model.NewCLIError(model.ErrConfigFailure,
			fmt.Sprintf("unsupported package manager %q (supported: %s)", name, strings.Join(Managers(), ", ")))
	}
	return nil
}

// RunOpts holds the parameters of a single command execution.
type RunOpts struct {
	Dir    string    // working directory
	Stdin  io.Reader // nil means no input
	Stdout io.Writer // nil discards output
	Stderr io.Writer // nil discards output
}

// Runner is the interface for running external commands.
type Runner interface {
	// Run executes a command to completion. A non-zero exit is returned
	// as an error (*exec.ExitError for ExecRunner).
	Run(ctx context.Context, name string, args []string, opts RunOpts) error
}

// ExecRunner is the production Runner based on os/exec.
type ExecRunner struct{}

// Run executes the command and waits for it to finish.
func (ExecRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) error {
	// #nosec G204: name is one of the validated package managers
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	return cmd.Run()
}

// Installer installs the dependencies of a project.
type Installer struct {
	// Manager is the package manager executable, e.g. "npm".
	Manager string

	// Inherit streams the child's output to the terminal when true and
	// discards it otherwise.
	Inherit bool

	// Runner executes the command. Nil means ExecRunner.
	Runner Runner
}

// New creates an Installer for a supported package manager.
func New(manager string, inherit bool) (*Installer, error) {
	if manager == "" {
		manager = DefaultManager
	}
	if err := ValidateManager(manager); err != nil {
		return nil, err
	}
	return &Installer{Manager: manager, Inherit: inherit, Runner: ExecRunner{}}, nil
}

// Install runs "<manager> install" in dir and blocks until it exits.
//
// Returns a CLIError with ErrSubprocessFailure when the manager cannot be
// started or exits non-zero. Whether that is fatal is the caller's call.
func (i *Installer) Install(ctx context.Context, dir string) error {
	args, ok := managers[i.Manager]
	if !ok {
		return ValidateManager(i.Manager)
	}

	runner := i.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	opts := RunOpts{Dir: dir}
	if i.Inherit {
		opts.Stdin = os.Stdin
		opts.Stdout = os.Stdout
		opts.Stderr = os.Stderr
	}

	if err := runner.Run(ctx, i.Manager, args, opts); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = fmt.Errorf("exit status %d: %w", exitErr.ExitCode(), err)
		}
		return model.WrapCLIError(model.ErrSubprocessFailure, i.Manager, err)
	}
	return nil
}
