// Package cli implements the cobra command for create-ts-cli-app.
//
// The root command is the whole tool: it takes the project directory as
// its only positional argument. This file defines the command, its global
// flags, and the translation of errors into output and exit codes.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/canseyran/create-ts-cli-app/internal/gitclone"
	"github.com/canseyran/create-ts-cli-app/internal/installer"
	"github.com/canseyran/create-ts-cli-app/internal/model"
)

// programName is the binary name used in usage hints.
const programName = "create-ts-cli-app"

// Global flag variables, bound to persistent flags on the root command.
var (
	// jsonOutput switches result and error output to JSON and silences
	// progress lines and package-manager output.
	jsonOutput bool

	// verbose enables [verbose] trace lines on stderr.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// cloner fetches a template repository into dest.
type cloner interface {
	Clone(ctx context.Context, repoURL, ref, dest string) error
	HeadCommit(ctx context.Context, dir string) (string, error)
}

// deps holds the collaborators of the create pipeline that tests replace.
type deps struct {
	getwd  func() (string, error)
	runner installer.Runner
	cloner cloner
}

func defaultDeps() *deps {
	return &deps{
		getwd:  os.Getwd,
		runner: installer.ExecRunner{},
		cloner: gitclone.NewCloner(),
	}
}

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(defaultDeps())
}

func newRootCommand(d *deps) *cobra.Command {
	flags := &createFlags{}

	rootCmd := &cobra.Command{
		Use:   programName + " <project-directory>",
		Short: "Scaffold a new TypeScript CLI application",
		Long: `create-ts-cli-app copies a TypeScript CLI template into a new directory,
sets the package name, and installs dependencies.

Pass "." as the project directory to scaffold into the current directory.

Examples:
  create-ts-cli-app my-app
  create-ts-cli-app .
  create-ts-cli-app my-app --package-manager pnpm
  create-ts-cli-app my-app --repo https://github.com/acme/cli-template.git --ref v2
  create-ts-cli-app my-app --template ~/templates/cli --skip-install`,

		// The missing-argument case is reported by runCreate with a usage
		// example, so cobra only guards against extra arguments.
		Args: cobra.MaximumNArgs(1),

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return d.runCreate(cmd, args, flags)
		},
	}

	// PersistentFlags would be inherited by subcommands; the tool has none
	// today, but --json and --verbose are global by nature.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	registerCreateFlags(rootCmd, flags)

	return rootCmd
}

// Run executes the command, prints any error to the command's error
// stream, and returns the exit code for main to exit with.
func Run(rootCmd *cobra.Command) model.ExitCode {
	err := rootCmd.Execute()
	if err == nil {
		return model.ExitSuccess
	}

	// Errors go to the command's error stream so tests can capture them.
	w := rootCmd.ErrOrStderr()

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(w, cliErr.Kind, cliErr.Message, cliErr.Err)
		return cliErr.Code()
	}

	// Generic error (cobra argument or flag errors) exit with code 1.
	printError(w, "", err.Error(), nil)
	return model.ExitGeneralError
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, kind model.ErrorKind, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"message": message,
		}
		if kind != "" {
			errObj["kind"] = kind.String()
		}
		if underlying != nil {
			errObj["detail"] = underlying.Error()
		}
		if kind != "" {
			errObj["changed"] = !kind.IsValidation()
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(map[string]interface{}{"error": errObj}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}

	// Validation kinds are raised before the target is touched, so the
	// user can rerun without cleaning up.
	if kind.IsValidation() {
		fmt.Fprintln(w, "No files were changed.")
	}

	if hint := model.Hint(kind, programName); hint != "" {
		fmt.Fprintf(w, "\n%s\n", hint)
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}
