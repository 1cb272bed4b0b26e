/*
Package config manages TOML config for wordfix.

A missing config file is created with the defaults. A malformed one is parsed
section by section so that the valid values survive; everything else falls
back to the defaults with a warning.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/dictionary"
	"github.com/bastiangx/wordfix/pkg/distance"
	"github.com/bastiangx/wordfix/pkg/index"
	"github.com/bastiangx/wordfix/pkg/phonetic"
)

// Config holds the entire config structure
type Config struct {
	Engine       EngineConfig       `toml:"engine"`
	Dictionaries []DictionaryConfig `toml:"dictionaries"`
	Server       ServerConfig       `toml:"server"`
	CLI          CliConfig          `toml:"cli"`
}

// EngineConfig selects the matching algorithms shared by every dictionary.
type EngineConfig struct {
	Hash            string `toml:"hash"`
	Distance        string `toml:"distance"`
	Threshold       int    `toml:"threshold"`
	MaxBucketScan   int    `toml:"max_bucket_scan"`
	StripNonLetters bool   `toml:"strip_non_letters"`
	Encoding        string `toml:"encoding"`
}

// DictionaryConfig describes one word list.
type DictionaryConfig struct {
	Path string `toml:"path"`
	// Encoding overrides the engine encoding when set.
	Encoding string `toml:"encoding"`
	Writable bool   `toml:"writable"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxWordLen   int  `toml:"max_word_len"`
	MaxProposals int  `toml:"max_proposals"`
	Watch        bool `toml:"watch"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Hash:            phonetic.NameFolding,
			Distance:        distance.NameWeighted,
			Threshold:       distance.DefaultThreshold,
			MaxBucketScan:   index.DefaultScanLimit,
			StripNonLetters: true,
			Encoding:        "utf-8",
		},
		Dictionaries: []DictionaryConfig{
			{Path: "words.txt"},
			{Path: "user.txt", Writable: true},
		},
		Server: ServerConfig{
			MaxWordLen:   64,
			MaxProposals: 20,
			Watch:        true,
		},
		CLI: CliConfig{
			DefaultLimit: 10,
		},
	}
}

// Options converts the engine section into dictionary options. The encoding
// is per word list and left unset, see BuildCollection.
func (e EngineConfig) Options() (dictionary.Options, error) {
	provider, err := phonetic.New(e.Hash)
	if err != nil {
		return dictionary.Options{}, err
	}
	algo, err := distance.New(e.Distance)
	if err != nil {
		return dictionary.Options{}, err
	}
	return dictionary.Options{
		Provider:        provider,
		Distance:        algo,
		Threshold:       e.Threshold,
		ScanLimit:       e.MaxBucketScan,
		StripNonLetters: e.StripNonLetters,
	}, nil
}

// EncodingLabel returns the label to use for d, falling back to the engine encoding.
func (e EngineConfig) EncodingLabel(d DictionaryConfig) string {
	if strings.TrimSpace(d.Encoding) != "" {
		return d.Encoding
	}
	return e.Encoding
}

// Validate reports values no dictionary can be built from.
func (c *Config) Validate() error {
	if _, err := c.Engine.Options(); err != nil {
		return err
	}
	if _, err := dictionary.LookupEncoding(c.Engine.Encoding); err != nil && !strings.EqualFold(c.Engine.Encoding, dictionary.AutoEncoding) {
		return err
	}
	for i, d := range c.Dictionaries {
		if strings.TrimSpace(d.Path) == "" {
			return fmt.Errorf("dictionary %d has no path", i+1)
		}
	}
	return nil
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/wordfix
// 2. ~/Library/Application Support/wordfix (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", utils.AppName)
	if utils.WritableDir(primaryPath) {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", utils.AppName)
	if utils.WritableDir(macOSPath) {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
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
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordfix/config.toml
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

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Values that are present but unusable,
// such as an unknown hash name, are replaced by their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	// a file listing dictionaries replaces the default list
	config.Dictionaries = nil

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	if config.Dictionaries == nil {
		config.Dictionaries = DefaultConfig().Dictionaries
	}
	config.sanitize()
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if engineSection, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(engineSection, &config.Engine)
	}
	if tables, ok := utils.ExtractTables(tempConfig, "dictionaries"); ok {
		if dicts := extractDictionaries(tables); len(dicts) > 0 {
			config.Dictionaries = dicts
		}
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	config.sanitize()
	return config, nil
}

// sanitize replaces unusable values with their defaults.
func (c *Config) sanitize() {
	defaults := DefaultConfig()
	if _, err := phonetic.New(c.Engine.Hash); err != nil {
		log.Warnf("%v. Using %s", err, defaults.Engine.Hash)
		c.Engine.Hash = defaults.Engine.Hash
	}
	if _, err := distance.New(c.Engine.Distance); err != nil {
		log.Warnf("%v. Using %s", err, defaults.Engine.Distance)
		c.Engine.Distance = defaults.Engine.Distance
	}
	if c.Engine.Threshold <= 0 {
		c.Engine.Threshold = defaults.Engine.Threshold
	}
	if c.Engine.MaxBucketScan <= 0 {
		c.Engine.MaxBucketScan = defaults.Engine.MaxBucketScan
	}
	if c.Server.MaxWordLen <= 0 {
		c.Server.MaxWordLen = defaults.Server.MaxWordLen
	}
	if c.Server.MaxProposals <= 0 {
		c.Server.MaxProposals = defaults.Server.MaxProposals
	}
	if c.CLI.DefaultLimit <= 0 {
		c.CLI.DefaultLimit = defaults.CLI.DefaultLimit
	}
}

// extractEngineConfig extracts engine configuration from a map
func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractString(data, "hash"); ok {
		engine.Hash = val
	}
	if val, ok := utils.ExtractString(data, "distance"); ok {
		engine.Distance = val
	}
	if val, ok := utils.ExtractInt64(data, "threshold"); ok {
		engine.Threshold = val
	}
	if val, ok := utils.ExtractInt64(data, "max_bucket_scan"); ok {
		engine.MaxBucketScan = val
	}
	if val, ok := utils.ExtractBool(data, "strip_non_letters"); ok {
		engine.StripNonLetters = val
	}
	if val, ok := utils.ExtractString(data, "encoding"); ok {
		engine.Encoding = val
	}
}

// extractDictionaries keeps every table that names a path
func extractDictionaries(tables []map[string]any) []DictionaryConfig {
	var dicts []DictionaryConfig
	for _, table := range tables {
		path, ok := utils.ExtractString(table, "path")
		if !ok || path == "" {
			continue
		}
		d := DictionaryConfig{Path: path}
		if val, ok := utils.ExtractString(table, "encoding"); ok {
			d.Encoding = val
		}
		if val, ok := utils.ExtractBool(table, "writable"); ok {
			d.Writable = val
		}
		dicts = append(dicts, d)
	}
	return dicts
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_word_len"); ok {
		server.MaxWordLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_proposals"); ok {
		server.MaxProposals = val
	}
	if val, ok := utils.ExtractBool(data, "watch"); ok {
		server.Watch = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
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
