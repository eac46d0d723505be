package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/getlawrence/cyconfig/internal/cypress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().E2E.Preset, cfg.E2E.Preset)
	assert.Equal(t, "src", cfg.E2E.CypressDir)
	assert.Equal(t, "vite", cfg.Component.Bundler)
	assert.True(t, cfg.Output.Backup)
	assert.Equal(t, 4, cfg.Output.Concurrency)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestDefaultConfig_Presets(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, cypress.DefaultE2EPreset, cypress.Preset(cfg.E2E.Preset))
	assert.Equal(t, cypress.DefaultComponentPreset, cypress.Preset(cfg.Component.Preset))
	assert.Equal(t, cypress.DefaultBundler, cfg.Component.Bundler)
}

func TestLoadConfig_WebServerSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cyconfig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
e2e:
  web_server_timeout: 120
  jsx: true
`), 0o644))

	t.Setenv("CYCONFIG_E2E_REUSE_EXISTING_SERVER", "true")
	t.Setenv("CYCONFIG_E2E_TESTING_TYPE", "e2e")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.E2E.WebServerTimeout)
	assert.True(t, cfg.E2E.ReuseExistingServer)
	assert.True(t, cfg.E2E.JSX)
	assert.Equal(t, "e2e", cfg.E2E.TestingType)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cyconfig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
e2e:
  base_url: http://localhost:4200
  web_server_commands:
    default: nx run app:serve
component:
  bundler: webpack
output:
  backup: false
`), 0o644))

	t.Setenv("CYCONFIG_OUTPUT_CONCURRENCY", "8")
	t.Setenv("CYCONFIG_MOUNT_MODULE", "cypress/vue")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4200", cfg.E2E.BaseURL)
	assert.Equal(t, "nx run app:serve", cfg.E2E.WebServerCommands["default"])
	assert.Equal(t, "nxE2EPreset", cfg.E2E.Preset.Name)
	assert.Equal(t, "webpack", cfg.Component.Bundler)
	assert.False(t, cfg.Output.Backup)
	assert.Equal(t, 8, cfg.Output.Concurrency)
	assert.Equal(t, "cypress/vue", cfg.Mount.Module)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("e2e: [unterminated"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".cyconfig.yaml")

	cfg := DefaultConfig()
	cfg.Mount.Module = "cypress/angular"
	require.NoError(t, SaveConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "module: cypress/angular")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "cypress/angular", loaded.Mount.Module)
}

func TestGetConfigPath(t *testing.T) {
	assert.Equal(t, "custom.yaml", GetConfigPath("custom.yaml"))
}
