/*
Package config manages TOML config for the gazetteer builder and server.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/lexigraph/gazetteer/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Build  BuildConfig  `toml:"build"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// BuildConfig carries every model construction option.
type BuildConfig struct {
	UseLowercase            bool     `toml:"use_lowercase"`
	Language                string   `toml:"language"`
	MinVariantLength        int      `toml:"min_variant_length"`
	AllSkips                bool     `toml:"all_skips"`
	SplitHyphen             bool     `toml:"split_hyphen"`
	AddAbbreviatedEntries   bool     `toml:"add_abbreviated_entries"`
	MinWordCountForVariants int      `toml:"min_word_count_for_variants"`
	TokenBoundaryPattern    string   `toml:"token_boundary_pattern"`
	MaxCombinations         int      `toml:"max_combinations"`
	Stoplist                []string `toml:"stoplist"`
	StoplistFile            string   `toml:"stoplist_file"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	MaxLimit  int `toml:"max_limit"`
	MinPrefix int `toml:"min_prefix"`
	MaxPrefix int `toml:"max_prefix"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/gazetteer
// 2. Current working directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return os.Getwd()
	}
	primaryPath := filepath.Join(homeDir, ".config", "gazetteer")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	return os.Getwd()
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: ~/.config/gazetteer/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	if !utils.FileExists(defaultPath) {
		return DefaultConfig(), "", nil
	}
	config, err := LoadConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{
			UseLowercase:            false,
			Language:                "de",
			MinVariantLength:        5,
			AllSkips:                false,
			SplitHyphen:             true,
			AddAbbreviatedEntries:   false,
			MinWordCountForVariants: 3,
			TokenBoundaryPattern:    `\s+`,
			MaxCombinations:         0,
		},
		Server: ServerConfig{
			MaxLimit:  64,
			MinPrefix: 1,
			MaxPrefix: 60,
		},
		CLI: CliConfig{
			DefaultLimit: 10,
		},
	}
}

// LoadConfig loads from a TOML file, overlaying the builtin defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
