// Config loading for the omebridge CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeyUsername = "username"

	defaultBackend = "sqlite"

	envConfigDir = "OMEBRIDGE_CONFIG_DIR"
	envDataDir   = "OMEBRIDGE_DATA_DIR"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# omebridge CLI configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Username to act as (optional; overridable by --user flag)
# username:
`

// loadConfig reads config.yaml from the resolved config directory. It
// creates the directory and a default config.yaml on first run; a
// missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if none exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// resolveConfigDir follows the precedence --config-dir flag >
// OMEBRIDGE_CONFIG_DIR env > $(CWD)/.omebridge.
func resolveConfigDir() (string, error) {
	if flagConfigDir != "" {
		return flagConfigDir, nil
	}
	if dir := os.Getenv(envConfigDir); dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(cwd, ".omebridge"), nil
}

// resolveDataDir follows the precedence --data-dir flag > config.yaml
// data_dir > OMEBRIDGE_DATA_DIR env > $(CWD)/.omebridge-db.
func resolveDataDir() (string, error) {
	if flagDataDir != "" {
		return flagDataDir, nil
	}
	if configDataDir != "" {
		return configDataDir, nil
	}
	if dir := os.Getenv(envDataDir); dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(cwd, ".omebridge-db"), nil
}

// resolveUsername follows the precedence --user flag > config.yaml
// username; empty means the backend default account.
func resolveUsername() string {
	if flagUser != "" {
		return flagUser
	}
	return configUsername
}
