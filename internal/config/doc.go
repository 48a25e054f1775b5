// Package config loads create-ts-cli-app settings.
//
// Precedence, highest first: command-line flags, CREATE_TS_CLI_APP_*
// environment variables, the YAML config file
// (~/.create-ts-cli-app/config.yaml unless --config names another), and
// built-in defaults.
package config
