package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMessage verifies that every kind renders a message that mentions
// its subject where one is expected.
func TestMessage(t *testing.T) {
	tests := []struct {
		kind    ErrorKind
		subject string
		want    string
	}{
		{ErrMissingArgument, "", "please specify the project directory"},
		{ErrInvalidDirectoryName, "../evil", `"../evil" is not a valid directory name`},
		{ErrDirectoryAlreadyExists, "/tmp/my-app", "the directory /tmp/my-app already exists and is not empty"},
		{ErrPathEscapesWorkingDirectory, "x", "x resolves outside the current directory"},
		{ErrCopyFailure, "/tmp/my-app", "failed to copy template files into /tmp/my-app"},
		{ErrCloneFailure, "https://example.com/t.git", "failed to clone https://example.com/t.git"},
		{ErrManifestReadOrParseFailure, "package.json", "failed to update package.json"},
		{ErrSubprocessFailure, "npm", "npm install failed"},
		{ErrConfigFailure, "bad", "invalid configuration: bad"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.kind, tt.subject))
		})
	}
}

// TestMessage_UnknownKind checks the fallback for kinds outside the taxonomy.
func TestMessage_UnknownKind(t *testing.T) {
	assert.Equal(t, "unexpected error: boom", Message(ErrorKind("other"), "boom"))
}

// TestHint verifies that validation failures carry a usage example and
// that I/O failures carry no hint.
func TestHint(t *testing.T) {
	assert.Contains(t, Hint(ErrMissingArgument, "create-ts-cli-app"), "create-ts-cli-app my-app")
	assert.Contains(t, Hint(ErrInvalidDirectoryName, "create-ts-cli-app"), "<project-directory>")
	assert.Contains(t, Hint(ErrDirectoryAlreadyExists, "create-ts-cli-app"), "--force")
	assert.Empty(t, Hint(ErrCopyFailure, "create-ts-cli-app"))
	assert.Empty(t, Hint(ErrSubprocessFailure, "create-ts-cli-app"))
}

// TestErrorKind_IsValidation separates pre-mutation failures from I/O failures.
func TestErrorKind_IsValidation(t *testing.T) {
	for _, k := range []ErrorKind{ErrMissingArgument, ErrInvalidDirectoryName, ErrDirectoryAlreadyExists, ErrPathEscapesWorkingDirectory, ErrConfigFailure} {
		assert.True(t, k.IsValidation(), k.String())
	}
	for _, k := range []ErrorKind{ErrCopyFailure, ErrCloneFailure, ErrManifestReadOrParseFailure, ErrSubprocessFailure} {
		assert.False(t, k.IsValidation(), k.String())
	}
}

// TestCLIError verifies message formatting, unwrapping and exit codes.
func TestCLIError(t *testing.T) {
	t.Run("without underlying error", func(t *testing.T) {
		err := NewCLIError(ErrMissingArgument, "")
		assert.Equal(t, "please specify the project directory", err.Error())
		assert.Nil(t, err.Unwrap())
		assert.Equal(t, ExitGeneralError, err.Code())
	})

	t.Run("with underlying error", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := WrapCLIError(ErrCopyFailure, "/tmp/x", cause)
		assert.Equal(t, "failed to copy template files into /tmp/x: permission denied", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("errors.As through joined errors", func(t *testing.T) {
		wrapped := errors.Join(errors.New("context"), NewCLIError(ErrConfigFailure, "x"))
		var cliErr *CLIError
		require.True(t, errors.As(wrapped, &cliErr))
		assert.Equal(t, ErrConfigFailure, cliErr.Kind)
	})
}

// TestStatusFormat verifies that every status has a format string.
func TestStatusFormat(t *testing.T) {
	for s := StatusStart; s <= StatusDone; s++ {
		assert.NotEmpty(t, s.Format(), "status %d", s)
	}
	assert.Empty(t, Status(99).Format())
}

// TestNextSteps covers the directory and install variations of the hints.
func TestNextSteps(t *testing.T) {
	assert.Equal(t,
		[]string{"cd my-app", "npm run build", "npm start"},
		NextSteps("my-app", "npm", true))
	assert.Equal(t,
		[]string{"pnpm install", "pnpm run build", "pnpm start"},
		NextSteps("", "pnpm", false))
}
