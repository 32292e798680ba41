/*
Package config manages TOML config for wordtree.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordtree/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
	Server ServerConfig `toml:"server"`
}

// StoreConfig locates the word file.
type StoreConfig struct {
	Path       string `toml:"path"`
	TempSuffix string `toml:"temp_suffix"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	MaxResults int `toml:"max_results"`
	MaxWordLen int `toml:"max_word_len"`
}

// CliConfig holds line interface options.
type CliConfig struct {
	DefaultLimit  int `toml:"default_limit"`
	DefaultMinLen int `toml:"default_min_len"`
	DefaultMaxLen int `toml:"default_max_len"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit int `toml:"max_limit"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.ExecutableDir()
	}
	for _, dir := range []string{
		filepath.Join(homeDir, ".config", "wordtree"),
		filepath.Join(homeDir, "Library", "Application Support", "wordtree"),
	} {
		if utils.WritableDir(dir) {
			return dir, nil
		}
	}
	execDir, err := utils.ExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
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
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/wordtree/config.toml
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

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path:       "dicionario.dat",
			TempSuffix: ".tmp",
		},
		Dict: DictConfig{
			MaxResults: 100,
			MaxWordLen: 99,
		},
		CLI: CliConfig{
			DefaultLimit:  24,
			DefaultMinLen: 1,
			DefaultMaxLen: 99,
		},
		Server: ServerConfig{
			MaxLimit: 100,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	if !utils.CheckFile(configPath, 0).Exists {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	unknown, err := utils.DecodeTOMLFile(configPath, config)
	if err != nil {
		return tryPartialParse(configPath)
	}
	for _, key := range unknown {
		log.Warnf("Ignoring unknown config key %s in %s", key, configPath)
	}
	config.sanitize()
	return config, nil
}

// tryPartialParse keeps every well-typed value it can find and defaults the rest.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	doc, err := utils.LooseTOML(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	pickString(doc, "store", "path", &config.Store.Path)
	pickString(doc, "store", "temp_suffix", &config.Store.TempSuffix)
	pickInt(doc, "dict", "max_results", &config.Dict.MaxResults)
	pickInt(doc, "dict", "max_word_len", &config.Dict.MaxWordLen)
	pickInt(doc, "cli", "default_limit", &config.CLI.DefaultLimit)
	pickInt(doc, "cli", "default_min_len", &config.CLI.DefaultMinLen)
	pickInt(doc, "cli", "default_max_len", &config.CLI.DefaultMaxLen)
	pickInt(doc, "server", "max_limit", &config.Server.MaxLimit)
	config.sanitize()
	return config, nil
}

func pickInt(doc map[string]any, section, key string, dst *int) {
	if val, ok := utils.Lookup[int](doc, section, key); ok {
		*dst = val
	}
}

func pickString(doc map[string]any, section, key string, dst *string) {
	if val, ok := utils.Lookup[string](doc, section, key); ok {
		*dst = val
	}
}

// sanitize puts unusable values back to their defaults.
func (c *Config) sanitize() {
	def := DefaultConfig()
	if c.Store.Path == "" {
		c.Store.Path = def.Store.Path
	}
	if c.Store.TempSuffix == "" {
		c.Store.TempSuffix = def.Store.TempSuffix
	}
	if c.Dict.MaxResults <= 0 {
		log.Warnf("Invalid dict.max_results %d, using %d", c.Dict.MaxResults, def.Dict.MaxResults)
		c.Dict.MaxResults = def.Dict.MaxResults
	}
	if c.Dict.MaxWordLen <= 0 {
		log.Warnf("Invalid dict.max_word_len %d, using %d", c.Dict.MaxWordLen, def.Dict.MaxWordLen)
		c.Dict.MaxWordLen = def.Dict.MaxWordLen
	}
	if c.CLI.DefaultLimit <= 0 {
		c.CLI.DefaultLimit = def.CLI.DefaultLimit
	}
	if c.CLI.DefaultMinLen <= 0 {
		c.CLI.DefaultMinLen = def.CLI.DefaultMinLen
	}
	if c.CLI.DefaultMaxLen < c.CLI.DefaultMinLen {
		c.CLI.DefaultMaxLen = def.CLI.DefaultMaxLen
	}
	if c.Server.MaxLimit <= 0 {
		c.Server.MaxLimit = def.Server.MaxLimit
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	if abs, err := filepath.Abs(configPath); err == nil {
		return abs
	}
	return configPath
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
