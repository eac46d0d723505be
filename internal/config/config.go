package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/getlawrence/cyconfig/internal/cypress"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. CYCONFIG_E2E_BASE_URL.
const EnvPrefix = "CYCONFIG"

// Config represents the cyconfig configuration
type Config struct {
	// Settings for the e2e preset injection
	E2E E2EConfig `mapstructure:"e2e" yaml:"e2e"`

	// Settings for the component testing preset injection
	Component ComponentConfig `mapstructure:"component" yaml:"component"`

	// Settings for the mount command injection
	Mount MountConfig `mapstructure:"mount" yaml:"mount"`

	// How modified files are written
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// PresetConfig names a preset function and the module exporting it
type PresetConfig struct {
	Name   string `mapstructure:"name" yaml:"name"`
	Module string `mapstructure:"module" yaml:"module"`
}

// E2EConfig contains defaults for e2e injection
type E2EConfig struct {
	Preset PresetConfig `mapstructure:"preset" yaml:"preset"`

	// Directory holding the cypress sources, relative to the project root
	CypressDir string `mapstructure:"cypress_dir" yaml:"cypress_dir"`

	Bundler string `mapstructure:"bundler" yaml:"bundler"`

	// Injected as e2e.baseUrl when non-empty
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Named dev server commands, e.g. default and production
	WebServerCommands map[string]string `mapstructure:"web_server_commands" yaml:"web_server_commands"`

	CIWebServerCommand string `mapstructure:"ci_web_server_command" yaml:"ci_web_server_command"`
	CIBaseURL          string `mapstructure:"ci_base_url" yaml:"ci_base_url"`

	// Seconds the preset waits for the dev server; 0 keeps the preset default
	WebServerTimeout    int  `mapstructure:"web_server_timeout" yaml:"web_server_timeout"`
	ReuseExistingServer bool `mapstructure:"reuse_existing_server" yaml:"reuse_existing_server"`

	JSX         bool   `mapstructure:"jsx" yaml:"jsx"`
	TestingType string `mapstructure:"testing_type" yaml:"testing_type"`
}

// ComponentConfig contains defaults for component testing injection
type ComponentConfig struct {
	Preset PresetConfig `mapstructure:"preset" yaml:"preset"`

	Bundler  string `mapstructure:"bundler" yaml:"bundler"`
	Compiler string `mapstructure:"compiler" yaml:"compiler"`

	// Whether to also import the preset function
	AddImport bool `mapstructure:"add_import" yaml:"add_import"`
}

// MountConfig contains defaults for mount injection
type MountConfig struct {
	// Module the mount function is imported from
	Module string `mapstructure:"module" yaml:"module"`
}

// OutputConfig contains file writing settings
type OutputConfig struct {
	DryRun bool `mapstructure:"dry_run" yaml:"dry_run"`

	// Keep a <file>.backup copy before overwriting
	Backup bool `mapstructure:"backup" yaml:"backup"`

	// Maximum number of projects processed at once
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`

	// Optional rotated log file; empty logs to stderr only
	File       string `mapstructure:"file" yaml:"file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		E2E: E2EConfig{
			Preset: PresetConfig{
				Name:   cypress.DefaultE2EPreset.Name,
				Module: cypress.DefaultE2EPreset.Module,
			},
			CypressDir:        "src",
			WebServerCommands: map[string]string{},
		},
		Component: ComponentConfig{
			Preset: PresetConfig{
				Name:   cypress.DefaultComponentPreset.Name,
				Module: cypress.DefaultComponentPreset.Module,
			},
			Bundler:   cypress.DefaultBundler,
			AddImport: true,
		},
		Mount: MountConfig{
			Module: "cypress/react",
		},
		Output: OutputConfig{
			DryRun:      false,
			Backup:      true,
			Concurrency: 4,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// LoadConfig loads configuration from a file, falling back to the defaults
// when no file is found. Environment variables override file values.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// If no config file specified, try to find one
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, configPath string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("e2e.preset.name", d.E2E.Preset.Name)
	v.SetDefault("e2e.preset.module", d.E2E.Preset.Module)
	v.SetDefault("e2e.cypress_dir", d.E2E.CypressDir)
	v.SetDefault("e2e.bundler", d.E2E.Bundler)
	v.SetDefault("e2e.base_url", d.E2E.BaseURL)
	v.SetDefault("e2e.web_server_commands", d.E2E.WebServerCommands)
	v.SetDefault("e2e.ci_web_server_command", d.E2E.CIWebServerCommand)
	v.SetDefault("e2e.ci_base_url", d.E2E.CIBaseURL)
	v.SetDefault("e2e.web_server_timeout", d.E2E.WebServerTimeout)
	v.SetDefault("e2e.reuse_existing_server", d.E2E.ReuseExistingServer)
	v.SetDefault("e2e.jsx", d.E2E.JSX)
	v.SetDefault("e2e.testing_type", d.E2E.TestingType)

	v.SetDefault("component.preset.name", d.Component.Preset.Name)
	v.SetDefault("component.preset.module", d.Component.Preset.Module)
	v.SetDefault("component.bundler", d.Component.Bundler)
	v.SetDefault("component.compiler", d.Component.Compiler)
	v.SetDefault("component.add_import", d.Component.AddImport)

	v.SetDefault("mount.module", d.Mount.Module)

	v.SetDefault("output.dry_run", d.Output.DryRun)
	v.SetDefault("output.backup", d.Output.Backup)
	v.SetDefault("output.concurrency", d.Output.Concurrency)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("log.compress", d.Log.Compress)
}

// findConfigFile looks for config files in common locations
func findConfigFile() string {
	candidates := []string{
		".cyconfig.yaml",
		".cyconfig.yml",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		for _, candidate := range candidates {
			path := filepath.Join(homeDir, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// GetConfigPath returns the config file path to use
func GetConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	if found := findConfigFile(); found != "" {
		return found
	}

	return ".cyconfig.yaml"
}
