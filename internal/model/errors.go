package model

import (
	"fmt"
)

// ErrorKind classifies every failure the scaffolder can report.
// The string value is stable and appears in --json error output.
type ErrorKind string

const (
	// ErrMissingArgument means no project directory was given.
	ErrMissingArgument ErrorKind = "missing-argument"

	// ErrInvalidDirectoryName means the argument is not a safe directory name.
	ErrInvalidDirectoryName ErrorKind = "invalid-directory-name"

	// ErrDirectoryAlreadyExists means the target exists and is not empty
	// (or exists as something other than a directory).
	ErrDirectoryAlreadyExists ErrorKind = "directory-already-exists"

	// ErrPathEscapesWorkingDirectory means the resolved target is not a
	// descendant of the working directory.
	ErrPathEscapesWorkingDirectory ErrorKind = "path-escapes-working-directory"

	// ErrCopyFailure means materializing the template tree failed.
	ErrCopyFailure ErrorKind = "copy-failure"

	// ErrCloneFailure means cloning the remote template repository failed.
	ErrCloneFailure ErrorKind = "clone-failure"

	// ErrManifestReadOrParseFailure means package.json could not be read,
	// parsed, or written back.
	ErrManifestReadOrParseFailure ErrorKind = "manifest-failure"

	// ErrSubprocessFailure means the package manager exited non-zero or
	// could not be started.
	ErrSubprocessFailure ErrorKind = "subprocess-failure"

	// ErrConfigFailure means flags, environment, or the config file hold
	// an unusable combination of settings.
	ErrConfigFailure ErrorKind = "config-failure"
)

// String returns the stable identifier of the kind.
func (k ErrorKind) String() string {
	return string(k)
}

// IsValidation reports whether the kind is detected before any filesystem
// mutation happens.
func (k ErrorKind) IsValidation() bool {
	switch k {
	case ErrMissingArgument, ErrInvalidDirectoryName, ErrDirectoryAlreadyExists,
		ErrPathEscapesWorkingDirectory, ErrConfigFailure:
		return true
	default:
		return false
	}
}

// Message renders the human-readable message for a failure kind.
// subject is the directory name, path, URL or tool name the failure is
// about; kinds that need no subject ignore it.
func Message(kind ErrorKind, subject string) string {
	switch kind {
	case ErrMissingArgument:
		return "please specify the project directory"
	case ErrInvalidDirectoryName:
		return fmt.Sprintf("%q is not a valid directory name", subject)
	case ErrDirectoryAlreadyExists:
		return fmt.Sprintf("the directory %s already exists and is not empty", subject)
	case ErrPathEscapesWorkingDirectory:
		return fmt.Sprintf("%s resolves outside the current directory", subject)
	case ErrCopyFailure:
		return fmt.Sprintf("failed to copy template files into %s", subject)
	case ErrCloneFailure:
		return fmt.Sprintf("failed to clone %s", subject)
	case ErrManifestReadOrParseFailure:
		return fmt.Sprintf("failed to update %s", subject)
	case ErrSubprocessFailure:
		return fmt.Sprintf("%s install failed", subject)
	case ErrConfigFailure:
		return fmt.Sprintf("invalid configuration: %s", subject)
	default:
		return fmt.Sprintf("unexpected error: %s", subject)
	}
}

// Hint returns the follow-up lines printed after the error message, telling
// the user what was expected. Kinds with nothing actionable return "".
func Hint(kind ErrorKind, program string) string {
	switch kind {
	case ErrMissingArgument, ErrInvalidDirectoryName, ErrPathEscapesWorkingDirectory:
		return fmt.Sprintf(`Usage:
  %[1]s <project-directory>

For example:
  %[1]s my-app
  %[1]s .      (initialize in the current directory)

Directory names must not start or end with a dot or whitespace and must
not contain any of: \ / ? * : " < > |`, program)
	case ErrDirectoryAlreadyExists:
		return "Choose a different project name, empty the directory, or pass --force to copy into it anyway."
	default:
		return ""
	}
}

// ExitCode is the process exit status for a finished command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError is used for every failure. Scripts that need to
	// tell failures apart read the kind from --json output.
	ExitGeneralError ExitCode = 1
)

// CLIError is a custom error type that carries a failure kind.
// This allows the CLI layer to translate domain errors into
// the right message, hint and process exit code.
type CLIError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// Code returns the exit code the process should terminate with.
func (e *CLIError) Code() ExitCode {
	return ExitGeneralError
}

// NewCLIError creates a CLIError whose message is rendered from kind and subject.
func NewCLIError(kind ErrorKind, subject string) *CLIError {
	return &CLIError{Kind: kind, Message: Message(kind, subject)}
}

// WrapCLIError creates a CLIError that wraps an existing error.
func WrapCLIError(kind ErrorKind, subject string, err error) *CLIError {
	return &CLIError{Kind: kind, Message: Message(kind, subject), Err: err}
}
