package config

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/rfdash/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".rfdash.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/rfdash"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Create .rfdash.yaml, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .rfdash.yaml in current directory
// 3. .rfdash.yaml in parent directories (stops at git root or home)
// 4. ~/.config/rfdash/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	if found := searchUp(cwd); found != "" {
		return found, nil
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// searchUp looks for ConfigFileName in dir and its parents, stopping at the
// filesystem root, the home directory, or the first git root.
func searchUp(dir string) string {
	home, _ := os.UserHomeDir()
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		if isGitRoot(dir) {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir || (home != "" && parent == home) {
			return ""
		}
		dir = parent
	}
}

// LoadOrDefault loads config from the found path, or returns defaults if not found.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	if path == "" {
		cfg := DefaultConfig()
		cfg.Prefs = ExpandTilde(cfg.Prefs)
		return cfg, nil
	}

	return Load(path)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	setDefaults(v, cfg)

	// Viper decodes "1s"-style strings into time.Duration fields.
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	cfg.Prefs = ExpandTilde(cfg.Prefs)
	cfg.Source.Path = ExpandTilde(cfg.Source.Path)

	return cfg, nil
}

// setDefaults seeds viper from the built-in defaults so partial files merge.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("version", cfg.Version)
	v.SetDefault("source.kind", cfg.Source.Kind)
	v.SetDefault("source.address", cfg.Source.Address)
	v.SetDefault("source.enable", cfg.Source.Enable)
	v.SetDefault("source.timeout", cfg.Source.Timeout.String())
	v.SetDefault("refresh", cfg.Refresh.String())
	v.SetDefault("history", cfg.History)
	v.SetDefault("prefs", cfg.Prefs)
	v.SetDefault("output.color", cfg.Output.Color)
}

// isGitRoot checks if a directory is a git repository root.
func isGitRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}
