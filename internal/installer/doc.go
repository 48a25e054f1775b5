// Package installer runs the package manager inside a freshly scaffolded project.
//
// Commands go through the Runner interface so tests can substitute a stub;
// ExecRunner is the os/exec implementation used by the CLI. The child runs
// synchronously with its working directory set to the project, and its
// output is either streamed to the terminal or discarded.
package installer
