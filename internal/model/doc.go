// Package model defines the error taxonomy, exit codes, and status
// messages shared by the create-ts-cli-app packages.
//
// This package contains pure data with no external dependencies. Message
// text is computed here and never printed here: the cli package decides
// where a message goes and when the process terminates, which keeps the
// mapping from failure kind to user-facing text independently testable.
package model
