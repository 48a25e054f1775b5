package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/canseyran/create-ts-cli-app/internal/installer"
	"github.com/canseyran/create-ts-cli-app/internal/model"
)

const (
	dirName   = ".create-ts-cli-app"
	fileName  = "config"
	fileType  = "yaml"
	envPrefix = "CREATE_TS_CLI_APP"
)

// Config keys. Each key is also the suffix of its environment variable.
const (
	KeyPackageManager = "package_manager"
	KeySkipInstall    = "skip_install"
	KeyStrictInstall  = "strict_install"
	KeyQuietInstall   = "quiet_install"
	KeyTemplate       = "template"
	KeyRepo           = "repo"
	KeyRef            = "ref"
	KeyExclude        = "exclude"
	KeyForce          = "force"
)

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"package-manager": KeyPackageManager,
	"skip-install":    KeySkipInstall,
	"strict-install":  KeyStrictInstall,
	"quiet-install":   KeyQuietInstall,
	"template":        KeyTemplate,
	"repo":            KeyRepo,
	"ref":             KeyRef,
	"exclude":         KeyExclude,
	"force":           KeyForce,
}

// Settings is the resolved configuration of one run.
type Settings struct {
	PackageManager string   `mapstructure:"package_manager"`
	SkipInstall    bool     `mapstructure:"skip_install"`
	StrictInstall  bool     `mapstructure:"strict_install"`
	QuietInstall   bool     `mapstructure:"quiet_install"`
	Template       string   `mapstructure:"template"`
	Repo           string   `mapstructure:"repo"`
	Ref            string   `mapstructure:"ref"`
	Exclude        []string `mapstructure:"exclude"`
	Force          bool     `mapstructure:"force"`

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `mapstructure:"-"`
}

// Dir returns the path to the config directory (~/.create-ts-cli-app/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", dirName)
	}
	return filepath.Join(home, dirName)
}

// FilePath returns the default config file path.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load resolves settings from flags, environment and config file.
//
// configFile overrides the default location; unlike the default file, an
// explicitly named file must exist. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetDefault(KeyPackageManager, installer.DefaultManager)
	v.SetDefault(KeySkipInstall, false)
	v.SetDefault(KeyStrictInstall, false)
	v.SetDefault(KeyQuietInstall, false)
	v.SetDefault(KeyTemplate, "")
	v.SetDefault(KeyRepo, "")
	v.SetDefault(KeyRef, "")
	v.SetDefault(KeyExclude, []string{})
	v.SetDefault(KeyForce, false)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for flagName, key := range flagKeys {
			if f := flags.Lookup(flagName); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", flagName, err)
				}
			}
		}
	}

	explicit := configFile != ""
	if !explicit {
		configFile = FilePath()
	}
	v.SetConfigFile(configFile)
	v.SetConfigType(fileType)

	loadedFrom := ""
	if err := v.ReadInConfig(); err != nil {
		if explicit || !isNotExist(err) {
			return nil, model.WrapCLIError(model.ErrConfigFailure, configFile, err)
		}
	} else {
		loadedFrom = configFile
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, model.WrapCLIError(model.ErrConfigFailure, "decoding settings", err)
	}
	s.ConfigFile = loadedFrom

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate rejects contradictory or unsupported settings.
func (s *Settings) Validate() error {
	if err := installer.ValidateManager(s.PackageManager); err != nil {
		return err
	}
	if s.Template != "" && s.Repo != "" {
		return model.NewCLIError(model.ErrConfigFailure, "--template and --repo cannot be used together")
	}
	if s.Ref != "" && s.Repo == "" {
		return model.NewCLIError(model.ErrConfigFailure, "--ref requires --repo")
	}
	if s.SkipInstall && s.StrictInstall {
		return model.NewCLIError(model.ErrConfigFailure, "--skip-install and --strict-install cannot be used together")
	}
	return nil
}

// isNotExist reports whether a ReadInConfig error means the file is absent.
func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
