// Package target decides where a new project goes.
//
// It validates the raw project-directory argument, resolves it against the
// working directory, and refuses targets that would overwrite existing
// work. Nothing in this package mutates the filesystem: every check runs
// before the template is materialized.
package target
