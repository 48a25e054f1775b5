package target

import (
	"regexp"
	"strings"
)

// Kind tags the outcome of Validate.
type Kind int

const (
	// KindInvalid means the argument must be rejected.
	KindInvalid Kind = iota

	// KindNamed means the argument names a directory below the working directory.
	KindNamed

	// KindCurrentDir means the argument is the "." sentinel.
	KindCurrentDir
)

// Reason explains why an argument is invalid.
type Reason string

const (
	ReasonMissing           Reason = "missing"
	ReasonInvalidCharacters Reason = "invalid-characters"
)

// CurrentDirSentinel is the argument that selects the working directory.
const CurrentDirSentinel = "."

// ValidationResult is the outcome of validating a project-directory argument.
type ValidationResult struct {
	Kind Kind

	// Name is the argument as given. It is only meaningful for KindNamed.
	Name string

	// Reason is set when Kind is KindInvalid.
	Reason Reason
}

// IsValid reports whether the pipeline may continue.
func (r ValidationResult) IsValid() bool {
	return r.Kind == KindNamed || r.Kind == KindCurrentDir
}

// namePattern accepts cross-platform safe directory names. The first and
// last characters may be neither whitespace nor a dot; no character may be
// a path separator, a Windows reserved character or a C0 control.
var namePattern = regexp.MustCompile(
	`^[^\s\p{Z}\x{85}.\\?*:"<>|/\x00-\x1f]` +
		`(?:[^\\?*:"<>|/\x00-\x1f]*[^\s\p{Z}\x{85}.\\?*:"<>|/\x00-\x1f])?$`,
)

// Validate classifies a raw project-directory argument.
func Validate(raw string) ValidationResult {
	if raw == "" {
		return ValidationResult{Kind: KindInvalid, Reason: ReasonMissing}
	}
	if strings.TrimSpace(raw) == CurrentDirSentinel {
		return ValidationResult{Kind: KindCurrentDir}
	}
	if !namePattern.MatchString(raw) {
		return ValidationResult{Kind: KindInvalid, Name: raw, Reason: ReasonInvalidCharacters}
	}
	return ValidationResult{Kind: KindNamed, Name: raw}
}
