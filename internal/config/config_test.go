package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canseyran/create-ts-cli-app/internal/model"
)

// isolate points HOME at an empty directory so a developer's own config
// file cannot leak into the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	return home
}

// newFlags builds a flag set shaped like the CLI's.
func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("package-manager", "npm", "")
	fs.Bool("skip-install", false, "")
	fs.Bool("strict-install", false, "")
	fs.Bool("quiet-install", false, "")
	fs.String("template", "", "")
	fs.String("repo", "", "")
	fs.String("ref", "", "")
	fs.StringSlice("exclude", nil, "")
	fs.Bool("force", false, "")
	return fs
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	s, err := Load("", newFlags())
	require.NoError(t, err)

	assert.Equal(t, "npm", s.PackageManager)
	assert.False(t, s.SkipInstall)
	assert.False(t, s.StrictInstall)
	assert.Empty(t, s.Template)
	assert.Empty(t, s.Exclude)
	assert.Empty(t, s.ConfigFile)
}

func TestLoad_NilFlags(t *testing.T) {
	isolate(t)

	s, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "npm", s.PackageManager)
}

func TestLoad_DefaultConfigFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".create-ts-cli-app", "config.yaml")
	writeConfig(t, path, "package_manager: pnpm\nstrict_install: true\nexclude:\n  - coverage\n")

	s, err := Load("", newFlags())
	require.NoError(t, err)

	assert.Equal(t, "pnpm", s.PackageManager)
	assert.True(t, s.StrictInstall)
	assert.Equal(t, []string{"coverage"}, s.Exclude)
	assert.Equal(t, path, s.ConfigFile)
}

func TestLoad_Precedence(t *testing.T) {
	home := isolate(t)
	writeConfig(t, filepath.Join(home, ".create-ts-cli-app", "config.yaml"), "package_manager: pnpm\nquiet_install: true\n")

	t.Run("env beats file", func(t *testing.T) {
		t.Setenv("CREATE_TS_CLI_APP_PACKAGE_MANAGER", "yarn")

		s, err := Load("", newFlags())
		require.NoError(t, err)
		assert.Equal(t, "yarn", s.PackageManager)
		assert.True(t, s.QuietInstall)
	})

	t.Run("flag beats env", func(t *testing.T) {
		t.Setenv("CREATE_TS_CLI_APP_PACKAGE_MANAGER", "yarn")
		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"--package-manager", "bun", "--exclude", "tmp,coverage"}))

		s, err := Load("", flags)
		require.NoError(t, err)
		assert.Equal(t, "bun", s.PackageManager)
		assert.Equal(t, []string{"tmp", "coverage"}, s.Exclude)
	})
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, path, "skip_install: true\ntemplate: /srv/templates/cli\n")

	s, err := Load(path, newFlags())
	require.NoError(t, err)
	assert.True(t, s.SkipInstall)
	assert.Equal(t, "/srv/templates/cli", s.Template)
	assert.Equal(t, path, s.ConfigFile)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name  string
		file  string
		write string
		args  []string
	}{
		{name: "explicit file missing", file: "missing.yaml"},
		{name: "malformed file", file: "bad.yaml", write: "package_manager: [\n"},
		{name: "unsupported manager", args: []string{"--package-manager", "pip"}},
		{name: "template with repo", args: []string{"--template", "x", "--repo", "y"}},
		{name: "ref without repo", args: []string{"--ref", "main"}},
		{name: "skip with strict", args: []string{"--skip-install", "--strict-install"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := ""
			if tt.file != "" {
				file = filepath.Join(t.TempDir(), tt.file)
				if tt.write != "" {
					writeConfig(t, file, tt.write)
				}
			}
			flags := newFlags()
			require.NoError(t, flags.Parse(tt.args))

			_, err := Load(file, flags)
			var cliErr *model.CLIError
			require.True(t, errors.As(err, &cliErr), "got %v", err)
			assert.Equal(t, model.ErrConfigFailure, cliErr.Kind)
		})
	}
}
