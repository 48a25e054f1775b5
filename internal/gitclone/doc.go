// Package gitclone fetches a template from a git repository.
//
// Git operations are performed via os/exec calls to the git binary rather
// than a Go git library, so clones honour the user's credential helpers,
// SSH configuration and proxies exactly as their terminal does.
package gitclone
