// create.go implements the scaffolding pipeline behind the root command.
//
// Orchestration steps:
//  1. Validate the project-directory argument
//  2. Load settings and resolve the target path
//  3. Refuse non-empty targets (unless --force)
//  4. Open the template source (bundled, --template dir, or --repo clone)
//  5. Copy the template, honouring exclusions and renames
//  6. Rewrite the manifest name and report schema warnings
//  7. Run the package manager
//  8. Print the result and next steps
//
// Steps 1-4 never touch the target directory.
package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/canseyran/create-ts-cli-app/internal/config"
	"github.com/canseyran/create-ts-cli-app/internal/installer"
	"github.com/canseyran/create-ts-cli-app/internal/manifest"
	"github.com/canseyran/create-ts-cli-app/internal/model"
	"github.com/canseyran/create-ts-cli-app/internal/target"
	"github.com/canseyran/create-ts-cli-app/internal/template"
)

// createFlags holds the flag values that are not routed through config.
// Everything else is read back from config.Settings.
type createFlags struct {
	configFile string // --config: explicit config file
}

// bundledSource names the built-in template in results.
const bundledSource = "bundled"

func registerCreateFlags(cmd *cobra.Command, flags *createFlags) {
	cmd.Flags().StringVar(&flags.configFile, "config", "", "Config file (default: ~/.create-ts-cli-app/config.yaml)")
	cmd.Flags().String("template", "", "Copy a template directory instead of the bundled template")
	cmd.Flags().String("repo", "", "Clone a git repository as the template")
	cmd.Flags().String("ref", "", "Branch or tag to clone with --repo")
	cmd.Flags().String("package-manager", installer.DefaultManager, "Package manager: npm, pnpm, yarn or bun")
	cmd.Flags().Bool("skip-install", false, "Do not install dependencies")
	cmd.Flags().Bool("strict-install", false, "Fail when dependency installation fails")
	cmd.Flags().Bool("quiet-install", false, "Hide package manager output")
	cmd.Flags().Bool("force", false, "Copy into a non-empty directory")
	cmd.Flags().StringSlice("exclude", nil, "Additional path segment to skip when copying (repeatable)")
}

// templateSource is an opened template plus how to release it.
type templateSource struct {
	fsys    fs.FS
	name    string
	commit  string // checked-out commit, for cloned templates
	cleanup func()
}

// runCreate is the main orchestration function.
func (d *deps) runCreate(cmd *cobra.Command, args []string, flags *createFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Validate the argument before anything else.
	// A missing argument gets its own message with a usage example; cobra
	// only rejects extra arguments.
	rawArg := ""
	if len(args) > 0 {
		rawArg = args[0]
	}
	result := target.Validate(rawArg)
	if !result.IsValid() {
		if result.Reason == target.ReasonMissing {
			return model.NewCLIError(model.ErrMissingArgument, "")
		}
		return model.NewCLIError(model.ErrInvalidDirectoryName, rawArg)
	}

	// Step 2: Load settings and resolve the target path.
	// Flags win over environment variables, which win over the config file.
	settings, err := config.Load(flags.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if settings.ConfigFile != "" {
		VerboseLog("Loaded config file: %s", settings.ConfigFile)
	}

	cwd, err := d.getwd()
	if err != nil {
		return model.WrapCLIError(model.ErrConfigFailure, "cannot determine the current directory", err)
	}

	projectDir, err := target.Resolve(result, cwd)
	if err != nil {
		return err
	}
	// The "." sentinel takes its package name from the current directory.
	projectName := result.Name
	if result.Kind == target.KindCurrentDir {
		projectName = filepath.Base(projectDir)
	}
	VerboseLog("Project %q at %s", projectName, projectDir)

	// Step 3: Refuse a target that already holds work.
	// CheckCollision ignores .git and OS metadata files, so a freshly
	// initialized repository is still a valid target.
	if settings.Force {
		VerboseLog("Skipping collision check (--force)")
	} else if err := target.CheckCollision(projectDir); err != nil {
		return err
	}

	// The package manager is validated here, before any mutation. Its output
	// is only passed through in text mode so it cannot corrupt --json.
	inst, err := installer.New(settings.PackageManager, !settings.QuietInstall && !jsonOutput)
	if err != nil {
		return err
	}
	inst.Runner = d.runner

	rep := newReporter(cmd.OutOrStdout(), cmd.ErrOrStderr(), jsonOutput)
	rep.status(model.StatusStart, projectDir)

	// Step 4: Open the template source.
	// Cloning happens in a temporary directory, never in projectDir.
	src, err := d.openSource(ctx, settings, cwd, projectDir, rep)
	if err != nil {
		return err
	}
	// defer ensures a cloned checkout is removed on every return path.
	defer src.cleanup()

	desc, err := template.LoadDescriptor(src.fsys)
	if err != nil {
		return model.WrapCLIError(model.ErrCopyFailure, projectDir, err)
	}

	// Step 5: Copy the template.
	// This is the first write to projectDir; failures from here on may leave
	// a partial tree behind.
	rep.status(model.StatusCopying)
	stats, err := template.Copy(src.fsys, projectDir, desc.CopyOptions(settings.Exclude...))
	if err != nil {
		return model.WrapCLIError(model.ErrCopyFailure, projectDir, err)
	}
	rep.status(model.StatusFilesCopied, stats.Files)
	VerboseLog("Copied %d files and %d directories from %s", stats.Files, stats.Dirs, src.name)

	// Step 6: Rewrite the manifest name.
	manifestPath := filepath.Join(projectDir, filepath.FromSlash(desc.Manifest))
	if err := manifest.Patch(manifestPath, projectName); err != nil {
		return err
	}
	VerboseLog("Set %s name to %q", desc.Manifest, projectName)

	// Schema issues are warnings only: "My App" is a fine directory name
	// even though npm would not publish it under that name.
	check, err := manifest.ValidateFile(manifestPath)
	if err != nil {
		VerboseLog("Could not validate %s: %v", desc.Manifest, err)
	} else {
		for _, issue := range check.Issues {
			rep.warn("%s: %s", desc.Manifest, issue)
		}
	}

	// Step 7: Install dependencies according to the install policy.
	installed, err := install(ctx, inst, settings, projectDir, rep)
	if err != nil {
		return err
	}

	// Step 8: Print the result.
	// Only a named target needs a "cd" hint.
	changeDir := ""
	if result.Kind == target.KindNamed {
		changeDir = result.Name
	}
	rep.done(&createResult{
		Name:           projectName,
		Path:           projectDir,
		Source:         src.name,
		Commit:         src.commit,
		FilesCopied:    stats.Files,
		PackageManager: inst.Manager,
		Installed:      installed,
		NextSteps:      model.NextSteps(changeDir, inst.Manager, installed),
	})
	return nil
}

// openSource opens the configured template. Cloned templates live in a
// temporary directory that cleanup removes. Nothing here writes to
// projectDir.
func (d *deps) openSource(ctx context.Context, s *config.Settings, cwd, projectDir string, rep *reporter) (*templateSource, error) {
	switch {
	case s.Repo != "":
		rep.status(model.StatusCloning, s.Repo)

		tmp, err := os.MkdirTemp("", programName+"-*")
		if err != nil {
			return nil, model.WrapCLIError(model.ErrCloneFailure, s.Repo, err)
		}
		cleanup := func() { _ = os.RemoveAll(tmp) }

		checkout := filepath.Join(tmp, "template")
		if err := d.cloner.Clone(ctx, s.Repo, s.Ref, checkout); err != nil {
			cleanup()
			var cliErr *model.CLIError
			if errors.As(err, &cliErr) {
				return nil, err
			}
			return nil, model.WrapCLIError(model.ErrCloneFailure, s.Repo, err)
		}
		commit, err := d.cloner.HeadCommit(ctx, checkout)
		if err != nil {
			VerboseLog("Could not read cloned commit: %v", err)
		}
		VerboseLog("Cloned %s at %s into %s", s.Repo, commit, checkout)
		return &templateSource{fsys: os.DirFS(checkout), name: s.Repo, commit: commit, cleanup: cleanup}, nil

	case s.Template != "":
		dir := s.Template
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cwd, dir)
		}
		fsys, err := template.Dir(dir)
		if err != nil {
			return nil, model.WrapCLIError(model.ErrConfigFailure, "template directory "+dir, err)
		}
		// A template that overlaps the target would be copied into itself,
		// or read from the files Copy is truncating.
		if err := target.CheckOverlap(dir, projectDir); err != nil {
			return nil, err
		}
		return &templateSource{fsys: fsys, name: dir, cleanup: func() {}}, nil

	default:
		return &templateSource{fsys: template.Bundled(), name: bundledSource, cleanup: func() {}}, nil
	}
}

// install runs the package manager according to the install policy:
// skipped, strict (failure is fatal), or lenient (failure is a warning).
func install(ctx context.Context, inst *installer.Installer, s *config.Settings, dir string, rep *reporter) (bool, error) {
	if s.SkipInstall {
		rep.status(model.StatusInstallSkipped)
		return false, nil
	}

	rep.status(model.StatusInstalling, inst.Manager)
	if err := inst.Install(ctx, dir); err != nil {
		if s.StrictInstall {
			return false, err
		}
		cause := errors.Unwrap(err)
		if cause == nil {
			cause = err
		}
		rep.warn(model.StatusInstallFailed.Format(), cause, inst.Manager)
		return false, nil
	}

	rep.status(model.StatusPackagesInstalled)
	return true, nil
}
