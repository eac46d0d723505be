package cypress

import (
	"context"
	"strings"
	"testing"

	"github.com/getlawrence/cyconfig/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTSInjector(opts ...Option) *ConfigInjector {
	return NewConfigInjector(source.NewTypeScriptEngine(), opts...)
}

func newJSInjector(opts ...Option) *ConfigInjector {
	return NewConfigInjector(source.NewEngineForPath("cypress.config.js"), opts...)
}

func TestAddDefaultE2EConfig_DefineConfig(t *testing.T) {
	t.Parallel()

	input := `import { defineConfig } from 'cypress';

export default defineConfig({
  video: false,
});
`
	want := `import { nxE2EPreset } from '@nx/cypress/plugins/cypress-preset';
import { defineConfig } from 'cypress';

export default defineConfig({
  video: false,
  e2e: {
    ...nxE2EPreset(__filename, {
      "cypressDir": "src"
    }),
    baseUrl: 'http://localhost:4200'
  }
});
`

	res, err := newTSInjector().AddDefaultE2EConfig(context.Background(), input, E2EPresetOptions{CypressDir: "src"}, "http://localhost:4200")
	require.NoError(t, err)
	assert.Equal(t, StatusInjected, res.Status)
	assert.True(t, res.Changed())
	assert.Equal(t, want, res.Content)
}

func TestAddDefaultE2EConfig_CommonJSEmptyObject(t *testing.T) {
	t.Parallel()

	input := `const { defineConfig } = require('cypress');

module.exports = defineConfig({});
`

	res, err := newJSInjector().AddDefaultE2EConfig(context.Background(), input, E2EPresetOptions{}, "")
	require.NoError(t, err)
	require.Equal(t, StatusInjected, res.Status)

	assert.True(t, strings.HasPrefix(res.Content,
		"const { nxE2EPreset } = require('@nx/cypress/plugins/cypress-preset');\n"))
	assert.Contains(t, res.Content, "module.exports = defineConfig({\n  e2e: {\n    ...nxE2EPreset(__filename, {})\n  }\n});")
	assert.NotContains(t, res.Content, "baseUrl")
	assert.NotContains(t, res.Content, "{\n  ,")
}

func TestAddDefaultE2EConfig_AlreadyConfigured(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		injector *ConfigInjector
		input    string
	}{
		{
			name:     "esm",
			injector: newTSInjector(),
			input: `import { defineConfig } from 'cypress';
export default defineConfig({ e2e: { baseUrl: 'http://localhost:3000' } });
`,
		},
		{
			name:     "commonjs",
			injector: newJSInjector(),
			input: `module.exports = {
  e2e: {},
};
`,
		},
		{
			name:     "quoted key",
			injector: newTSInjector(),
			input:    `export default { 'e2e': {} };`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			res, err := tc.injector.AddDefaultE2EConfig(context.Background(), tc.input, E2EPresetOptions{CypressDir: "src"}, "http://localhost:4200")
			require.NoError(t, err)
			assert.Equal(t, StatusAlreadyConfigured, res.Status)
			assert.False(t, res.Changed())
			assert.Equal(t, tc.input, res.Content)
		})
	}
}

func TestAddDefaultE2EConfig_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := newTSInjector().AddDefaultE2EConfig(context.Background(), "", E2EPresetOptions{}, "")
	require.ErrorIs(t, err, ErrEmptyConfig)
}

func TestAddDefaultE2EConfig_IdentifierExport(t *testing.T) {
	t.Parallel()

	input := `const config = {
  video: true,
};

export default config;
`

	res, err := newTSInjector().AddDefaultE2EConfig(context.Background(), input, E2EPresetOptions{}, "")
	require.NoError(t, err)
	require.Equal(t, StatusInjected, res.Status)
	assert.Contains(t, res.Content, "const config = {\n  video: true,\n  e2e: {")
	assert.Contains(t, res.Content, "export default config;")
}

func TestAddDefaultE2EConfig_WrappedObjectFallback(t *testing.T) {
	t.Parallel()

	input := `export default withPlugins({ video: false });`

	res, err := newTSInjector().AddDefaultE2EConfig(context.Background(), input, E2EPresetOptions{}, "")
	require.NoError(t, err)
	require.Equal(t, StatusInjected, res.Status)
	assert.Contains(t, res.Content, "withPlugins({\n  video: false,\n  e2e: {")
}

func TestAddDefaultE2EConfig_Unresolved(t *testing.T) {
	t.Parallel()

	cases := []string{
		"export default makeConfig();\n",
		"const x = 1;\n",
	}
	for _, input := range cases {
		res, err := newTSInjector().AddDefaultE2EConfig(context.Background(), input, E2EPresetOptions{}, "")
		require.NoError(t, err)
		assert.Equal(t, StatusUnresolved, res.Status)
		assert.Equal(t, input, res.Content)
	}
}

func TestAddDefaultE2EConfig_Idempotent(t *testing.T) {
	t.Parallel()

	inj := newTSInjector()
	input := `import { defineConfig } from 'cypress';

export default defineConfig({
  // recorded runs
  video: false,
  setupNodeEvents(on) {
    return on;
  },
});
`

	first, err := inj.AddDefaultE2EConfig(context.Background(), input, E2EPresetOptions{CypressDir: "cypress"}, "")
	require.NoError(t, err)
	require.Equal(t, StatusInjected, first.Status)
	assert.Contains(t, first.Content, "// recorded runs")
	assert.Contains(t, first.Content, "setupNodeEvents(on) {\n    return on;\n  },")

	second, err := inj.AddDefaultE2EConfig(context.Background(), first.Content, E2EPresetOptions{CypressDir: "cypress"}, "")
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyConfigured, second.Status)
	assert.Equal(t, first.Content, second.Content)
}

func TestAddDefaultE2EConfig_ExistingPresetImport(t *testing.T) {
	t.Parallel()

	input := `import { nxE2EPreset } from '@nx/cypress/plugins/cypress-preset';
import { defineConfig } from 'cypress';

export default defineConfig({});
`

	res, err := newTSInjector().AddDefaultE2EConfig(context.Background(), input, E2EPresetOptions{}, "")
	require.NoError(t, err)
	require.Equal(t, StatusInjected, res.Status)
	assert.Equal(t, 1, strings.Count(res.Content, "import { nxE2EPreset }"))
}

func TestAddDefaultE2EConfig_CustomPreset(t *testing.T) {
	t.Parallel()

	inj := newTSInjector(WithE2EPreset(Preset{Name: "e2ePreset", Module: "@acme/cypress"}))
	res, err := inj.AddDefaultE2EConfig(context.Background(), "export default {};\n", E2EPresetOptions{
		WebServerCommands:  map[string]string{"default": "nx run app:serve", "production": "nx run app:serve:production"},
		CIWebServerCommand: "nx run app:serve-static",
	}, "http://localhost:4200")
	require.NoError(t, err)
	require.Equal(t, StatusInjected, res.Status)

	assert.True(t, strings.HasPrefix(res.Content, "import { e2ePreset } from '@acme/cypress';\n"))
	assert.Contains(t, res.Content, `"webServerCommands": {`)
	assert.Contains(t, res.Content, `"default": "nx run app:serve",`)
	assert.Contains(t, res.Content, `"ciWebServerCommand": "nx run app:serve-static"`)
	assert.Contains(t, res.Content, "baseUrl: 'http://localhost:4200'")
}

func TestAddDefaultE2EConfig_SyntaxError(t *testing.T) {
	t.Parallel()

	input := "export default defineConfig({\n  @@@ retries: 2,\n});\n"

	res, err := newTSInjector().AddDefaultE2EConfig(context.Background(), input, E2EPresetOptions{}, "http://localhost:4200")
	require.NoError(t, err)
	assert.Equal(t, StatusUnresolved, res.Status)
	assert.Equal(t, input, res.Content)
}

func TestAddDefaultE2EConfig_WebServerOptions(t *testing.T) {
	t.Parallel()

	options := E2EPresetOptions{
		CypressDir:      "src",
		WebServerConfig: &WebServerConfig{Timeout: 120, ReuseExistingServer: true},
		JSX:             true,
		TestingType:     "e2e",
	}

	res, err := newTSInjector().AddDefaultE2EConfig(context.Background(), "export default {};\n", options, "")
	require.NoError(t, err)
	assert.Equal(t, StatusInjected, res.Status)
	assert.Contains(t, res.Content, `"webServerConfig": {
        "timeout": 120,
        "reuseExistingServer": true
      },
      "jsx": true,
      "testingType": "e2e"`)
}
